package services

import (
	"context"
	"time"

	"github.com/cmspro/cmspro-api/model"
	"github.com/cmspro/cmspro-api/utils/cache"
	"gorm.io/gorm"
)

// SiteConfigCacheKey is the redis key holding the cached configuration row.
const SiteConfigCacheKey = "site_config:v1"

// SiteConfigCacheTTL bounds staleness when invalidation is missed.
const SiteConfigCacheTTL = 10 * time.Minute

// SiteConfigService owns the singleton configuration row. All reads and
// writes funnel through it so the fixed primary key and the cache stay
// consistent.
type SiteConfigService struct {
	db    *gorm.DB
	cache *cache.RedisCache
}

// NewSiteConfigService creates a site config service. cache may be nil,
// in which case every read hits the database.
func NewSiteConfigService(db *gorm.DB, c *cache.RedisCache) *SiteConfigService {
	return &SiteConfigService{db: db, cache: c}
}

// Get returns the configuration row, creating it with defaults when the
// table is empty. Cache hits skip the database entirely.
func (s *SiteConfigService) Get(ctx context.Context) (*model.SiteConfig, error) {
	if s.cache != nil {
		var cached model.SiteConfig
		if err := s.cache.GetJSON(ctx, SiteConfigCacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	var cfg model.SiteConfig
	err := s.db.WithContext(ctx).
		Where(model.SiteConfig{ID: model.SiteConfigID}).
		Attrs(model.SiteConfig{CompanyName: "My Company"}).
		FirstOrCreate(&cfg).Error
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, SiteConfigCacheKey, &cfg, SiteConfigCacheTTL)
	}

	return &cfg, nil
}

// GetByID returns the configuration row with the given primary key,
// bypassing the cache. Any id other than the fixed key is not found.
func (s *SiteConfigService) GetByID(ctx context.Context, id string) (*model.SiteConfig, error) {
	var cfg model.SiteConfig
	if err := s.db.WithContext(ctx).First(&cfg, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Update applies changes to the singleton row inside a transaction and
// invalidates the cache. When the logo key changes, the previous object
// is removed from storage after commit.
func (s *SiteConfigService) Update(ctx context.Context, storage FileStorage, apply func(cfg *model.SiteConfig) error) (*model.SiteConfig, error) {
	var cfg model.SiteConfig
	var oldLogo string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where(model.SiteConfig{ID: model.SiteConfigID}).
			FirstOrCreate(&cfg).Error; err != nil {
			return err
		}

		oldLogo = cfg.Logo
		if err := apply(&cfg); err != nil {
			return err
		}

		cfg.ID = model.SiteConfigID
		return tx.Save(&cfg).Error
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, SiteConfigCacheKey)
	}

	if storage != nil && oldLogo != "" && oldLogo != cfg.Logo {
		_ = storage.DeleteFile(ctx, oldLogo)
	}

	return &cfg, nil
}
