package services

import (
	"context"
	"io"
	"testing"

	"github.com/cmspro/cmspro-api/model"
	"gorm.io/gorm"
)

// fakeStorage records deletions so tests can assert on file cleanup.
type fakeStorage struct {
	deleted []string
}

func (f *fakeStorage) UploadFile(_ context.Context, key string, _ io.Reader, _ string) (string, error) {
	return key, nil
}

func (f *fakeStorage) DeleteFile(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStorage) GetFileURL(key string) string {
	return "https://cdn.test/" + key
}

func TestSiteLogoReplaceKeepsSingleRow(t *testing.T) {
	db := openTestDB(t)
	if err := db.AutoMigrate(&model.SiteLogo{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc := NewSiteLogoService(db)
	storage := &fakeStorage{}
	ctx := context.Background()

	if _, err := svc.Replace(ctx, storage, "site/logos/first.png", "First"); err != nil {
		t.Fatalf("first replace: %v", err)
	}
	if _, err := svc.Replace(ctx, storage, "site/logos/second.png", "Second"); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	var count int64
	if err := db.Model(&model.SiteLogo{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected a single logo row, got %d", count)
	}

	logo, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if logo.Logo != "site/logos/second.png" {
		t.Errorf("current logo = %q, want the replacement", logo.Logo)
	}

	if len(storage.deleted) != 1 || storage.deleted[0] != "site/logos/first.png" {
		t.Errorf("replaced file should be removed from storage, got %v", storage.deleted)
	}
}

func TestSiteLogoDefaultAltText(t *testing.T) {
	db := openTestDB(t)
	if err := db.AutoMigrate(&model.SiteLogo{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc := NewSiteLogoService(db)
	logo, err := svc.Replace(context.Background(), nil, "site/logos/plain.png", "")
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if logo.AltText != "Site Logo" {
		t.Errorf("alt text = %q, want default", logo.AltText)
	}
}

func TestSiteLogoDeleteWhenUnset(t *testing.T) {
	db := openTestDB(t)
	if err := db.AutoMigrate(&model.SiteLogo{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc := NewSiteLogoService(db)
	if err := svc.Delete(context.Background(), nil); err != gorm.ErrRecordNotFound {
		t.Errorf("deleting an unset logo should report not found, got %v", err)
	}
}

func TestSiteLogoDeleteRemovesFiles(t *testing.T) {
	db := openTestDB(t)
	if err := db.AutoMigrate(&model.SiteLogo{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc := NewSiteLogoService(db)
	storage := &fakeStorage{}
	ctx := context.Background()

	if _, err := svc.Replace(ctx, storage, "site/logos/current.png", ""); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := svc.Delete(ctx, storage); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := svc.Get(ctx); err != gorm.ErrRecordNotFound {
		t.Errorf("logo should be gone after delete, got %v", err)
	}
	if len(storage.deleted) != 1 || storage.deleted[0] != "site/logos/current.png" {
		t.Errorf("stored file should be removed on delete, got %v", storage.deleted)
	}
}
