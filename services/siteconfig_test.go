package services

import (
	"context"
	"testing"

	"github.com/cmspro/cmspro-api/model"
)

func TestSiteConfigGetCreatesSingleton(t *testing.T) {
	db := openTestDB(t)
	if err := db.AutoMigrate(&model.SiteConfig{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc := NewSiteConfigService(db, nil)
	ctx := context.Background()

	cfg, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if cfg.ID != model.SiteConfigID {
		t.Errorf("config ID = %d, want fixed key %d", cfg.ID, model.SiteConfigID)
	}
	if cfg.CompanyName != "My Company" {
		t.Errorf("default company name = %q", cfg.CompanyName)
	}

	// Repeated reads must not create more rows.
	if _, err := svc.Get(ctx); err != nil {
		t.Fatalf("second get: %v", err)
	}
	var count int64
	if err := db.Model(&model.SiteConfig{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected one config row, got %d", count)
	}
}

func TestSiteConfigUpdateKeepsFixedKey(t *testing.T) {
	db := openTestDB(t)
	if err := db.AutoMigrate(&model.SiteConfig{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc := NewSiteConfigService(db, nil)
	ctx := context.Background()

	for _, name := range []string{"Acme Corp", "Acme Holdings", "Acme Group"} {
		cfg, err := svc.Update(ctx, nil, func(cfg *model.SiteConfig) error {
			cfg.CompanyName = name
			return nil
		})
		if err != nil {
			t.Fatalf("update to %q: %v", name, err)
		}
		if cfg.ID != model.SiteConfigID {
			t.Errorf("update moved the row to ID %d", cfg.ID)
		}
	}

	var count int64
	if err := db.Model(&model.SiteConfig{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("repeated updates created %d rows, want 1", count)
	}

	cfg, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if cfg.CompanyName != "Acme Group" {
		t.Errorf("company name = %q, want last update", cfg.CompanyName)
	}
}

func TestSiteConfigUpdateCleansReplacedLogo(t *testing.T) {
	db := openTestDB(t)
	if err := db.AutoMigrate(&model.SiteConfig{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc := NewSiteConfigService(db, nil)
	storage := &fakeStorage{}
	ctx := context.Background()

	if _, err := svc.Update(ctx, storage, func(cfg *model.SiteConfig) error {
		cfg.Logo = "site/config/old.png"
		return nil
	}); err != nil {
		t.Fatalf("first update: %v", err)
	}
	if len(storage.deleted) != 0 {
		t.Errorf("nothing should be deleted on first upload, got %v", storage.deleted)
	}

	if _, err := svc.Update(ctx, storage, func(cfg *model.SiteConfig) error {
		cfg.Logo = "site/config/new.png"
		return nil
	}); err != nil {
		t.Fatalf("second update: %v", err)
	}
	if len(storage.deleted) != 1 || storage.deleted[0] != "site/config/old.png" {
		t.Errorf("replaced logo should be removed from storage, got %v", storage.deleted)
	}

	// Updates that do not touch the logo leave the file alone.
	if _, err := svc.Update(ctx, storage, func(cfg *model.SiteConfig) error {
		cfg.Phone = "+1 555 0100"
		return nil
	}); err != nil {
		t.Fatalf("third update: %v", err)
	}
	if len(storage.deleted) != 1 {
		t.Errorf("unrelated update deleted files: %v", storage.deleted)
	}
}
