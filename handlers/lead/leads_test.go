package lead

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/cmspro/cmspro-api/model"
	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeStorage struct{}

func (fakeStorage) UploadFile(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	return key, nil
}
func (fakeStorage) DeleteFile(ctx context.Context, key string) error { return nil }
func (fakeStorage) GetFileURL(key string) string                     { return "https://cdn.test/" + key }

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.Lead{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	h := NewLeadHandler(db, fakeStorage{})
	app := fiber.New()
	app.Post("/leads/mark-read", h.MarkAllLeadsRead)
	app.Post("/leads/:id/mark-read", h.MarkLeadRead)
	return app, db
}

func seedLead(t *testing.T, db *gorm.DB, name string, read bool) model.Lead {
	t.Helper()
	lead := model.Lead{
		Name:    name,
		Email:   name + "@example.com",
		Message: "Interested in your services.",
		IsRead:  read,
	}
	if err := db.Create(&lead).Error; err != nil {
		t.Fatalf("seed lead: %v", err)
	}
	return lead
}

func TestMarkAllLeadsRead(t *testing.T) {
	app, db := setupApp(t)

	seedLead(t, db, "alice", false)
	seedLead(t, db, "bob", false)
	seedLead(t, db, "carol", true)

	resp, err := app.Test(httptest.NewRequest("POST", "/leads/mark-read", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var env struct {
		Success bool `json:"success"`
		Data    struct {
			Updated int64 `json:"updated"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.Updated != 2 {
		t.Errorf("updated = %d, want 2", env.Data.Updated)
	}

	var unread int64
	if err := db.Model(&model.Lead{}).Where("is_read = ?", false).Count(&unread).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if unread != 0 {
		t.Errorf("%d leads still unread", unread)
	}
}

func TestMarkAllLeadsReadIdempotent(t *testing.T) {
	app, db := setupApp(t)

	seedLead(t, db, "dave", true)

	resp, err := app.Test(httptest.NewRequest("POST", "/leads/mark-read", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var env struct {
		Data struct {
			Updated int64 `json:"updated"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.Updated != 0 {
		t.Errorf("updated = %d, want 0", env.Data.Updated)
	}
}

func TestMarkSingleLeadRead(t *testing.T) {
	app, db := setupApp(t)

	target := seedLead(t, db, "erin", false)
	other := seedLead(t, db, "frank", false)

	resp, err := app.Test(httptest.NewRequest("POST", fmt.Sprintf("/leads/%d/mark-read", other.ID), nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var stored model.Lead
	if err := db.First(&stored, other.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !stored.IsRead {
		t.Error("lead should be read after mark-read")
	}

	stored = model.Lead{}
	if err := db.First(&stored, target.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.IsRead {
		t.Error("other lead should stay unread")
	}
}
