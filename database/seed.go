package database

import (
	"fmt"
	"log"

	"github.com/cmspro/cmspro-api/config"
	"github.com/cmspro/cmspro-api/model"
	"github.com/cmspro/cmspro-api/utils/auth"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("🌱 Starting database seeding...")

	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := s.SeedSiteConfig(); err != nil {
		return fmt.Errorf("failed to seed site configuration: %w", err)
	}

	log.Println("✅ Database seeding completed successfully!")
	return nil
}

// SeedAdminUser creates the default admin user from ADMIN_EMAIL and
// ADMIN_PASSWORD. Skips silently when either variable is unset or an admin
// already exists.
func (s *Seeder) SeedAdminUser() error {
	var count int64
	if err := s.db.Model(&model.User{}).Where("role = ?", "admin").Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Admin user already exists, skipping...")
		return nil
	}

	env, err := config.Get()
	if err != nil {
		return err
	}

	if env.ADMIN_EMAIL == "" || env.ADMIN_PASSWORD == "" {
		log.Println("⚠️  ADMIN_EMAIL and ADMIN_PASSWORD environment variables not set, skipping admin user creation")
		return nil
	}

	passwordHash, err := auth.HashPassword(env.ADMIN_PASSWORD)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.User{
		Email:        env.ADMIN_EMAIL,
		PasswordHash: passwordHash,
		Name:         "System Administrator",
		Role:         "admin",
		TokenVersion: 0,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Created admin user: %s\n", admin.Email)
	return nil
}

// SeedSiteConfig ensures the single site configuration row exists.
func (s *Seeder) SeedSiteConfig() error {
	var count int64
	if err := s.db.Model(&model.SiteConfig{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Site configuration already exists, skipping...")
		return nil
	}

	cfg := &model.SiteConfig{
		ID:          model.SiteConfigID,
		CompanyName: "My Company",
	}
	if err := s.db.Create(cfg).Error; err != nil {
		return err
	}

	log.Println("✅ Created default site configuration")
	return nil
}

// RunSeeds is a convenience function to run all seeds
func RunSeeds(db *gorm.DB) error {
	seeder := NewSeeder(db)
	return seeder.SeedAll()
}
