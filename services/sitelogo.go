package services

import (
	"context"

	"github.com/cmspro/cmspro-api/model"
	"gorm.io/gorm"
)

// SiteLogoService keeps the logo table at a single row. Uploading a new
// logo replaces any existing rows and removes the replaced files from
// storage.
type SiteLogoService struct {
	db *gorm.DB
}

func NewSiteLogoService(db *gorm.DB) *SiteLogoService {
	return &SiteLogoService{db: db}
}

// Get returns the current logo, or gorm.ErrRecordNotFound when none is set.
func (s *SiteLogoService) Get(ctx context.Context) (*model.SiteLogo, error) {
	var logo model.SiteLogo
	if err := s.db.WithContext(ctx).First(&logo).Error; err != nil {
		return nil, err
	}
	return &logo, nil
}

// GetByID returns the logo row with the given primary key.
func (s *SiteLogoService) GetByID(ctx context.Context, id string) (*model.SiteLogo, error) {
	var logo model.SiteLogo
	if err := s.db.WithContext(ctx).First(&logo, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &logo, nil
}

// Replace deletes every existing row and inserts the new logo in one
// transaction. Old storage keys are cleaned up after commit so a failed
// transaction never orphans the current file.
func (s *SiteLogoService) Replace(ctx context.Context, storage FileStorage, logoKey, altText string) (*model.SiteLogo, error) {
	var oldKeys []string

	logo := model.SiteLogo{Logo: logoKey, AltText: altText}
	if logo.AltText == "" {
		logo.AltText = "Site Logo"
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []model.SiteLogo
		if err := tx.Find(&existing).Error; err != nil {
			return err
		}
		for _, e := range existing {
			if e.Logo != "" && e.Logo != logoKey {
				oldKeys = append(oldKeys, e.Logo)
			}
		}

		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&model.SiteLogo{}).Error; err != nil {
			return err
		}

		return tx.Create(&logo).Error
	})
	if err != nil {
		return nil, err
	}

	if storage != nil {
		for _, key := range oldKeys {
			_ = storage.DeleteFile(ctx, key)
		}
	}

	return &logo, nil
}

// Delete removes the logo row(s) and the stored files.
func (s *SiteLogoService) Delete(ctx context.Context, storage FileStorage) error {
	var oldKeys []string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []model.SiteLogo
		if err := tx.Find(&existing).Error; err != nil {
			return err
		}
		if len(existing) == 0 {
			return gorm.ErrRecordNotFound
		}
		for _, e := range existing {
			if e.Logo != "" {
				oldKeys = append(oldKeys, e.Logo)
			}
		}

		return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&model.SiteLogo{}).Error
	})
	if err != nil {
		return err
	}

	if storage != nil {
		for _, key := range oldKeys {
			_ = storage.DeleteFile(ctx, key)
		}
	}

	return nil
}
