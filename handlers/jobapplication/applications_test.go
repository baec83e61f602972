package jobapplication

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmspro/cmspro-api/model"
	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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

func setupApp(t *testing.T) (*fiber.App, *gorm.DB, *fakeStorage) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.Career{}, &model.JobApplication{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	storage := &fakeStorage{}
	h := NewApplicationHandler(db, storage)
	app := fiber.New()
	app.Put("/job-applications/:id", h.UpdateApplication)
	app.Delete("/job-applications/:id", h.DeleteApplication)
	return app, db, storage
}

func seedApplication(t *testing.T, db *gorm.DB) model.JobApplication {
	t.Helper()
	career := model.Career{
		Title:        "Engineer",
		Slug:         "engineer",
		Location:     "Remote",
		Requirements: "Go.",
		Status:       model.CareerStatusActive,
	}
	if err := db.Create(&career).Error; err != nil {
		t.Fatalf("seed career: %v", err)
	}
	app := model.JobApplication{
		CareerID: career.ID,
		FullName: "Jordan Doe",
		Email:    "jordan@example.com",
		Phone:    "555-0101",
		Resume:   "applications/resumes/jordan.pdf",
		Status:   model.ApplicationStatusPending,
	}
	if err := db.Create(&app).Error; err != nil {
		t.Fatalf("seed application: %v", err)
	}
	return app
}

func putJSON(t *testing.T, app *fiber.App, target string, body interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatalf("encode: %v", err)
	}
	req := httptest.NewRequest("PUT", target, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestStatusChangeStampsReviewedAtOnce(t *testing.T) {
	app, db, _ := setupApp(t)
	seeded := seedApplication(t, db)

	if status := putJSON(t, app, "/job-applications/1", fiber.Map{"status": "reviewing"}); status != fiber.StatusOK {
		t.Fatalf("update status = %d", status)
	}

	var afterFirst model.JobApplication
	if err := db.First(&afterFirst, seeded.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if afterFirst.ReviewedAt == nil {
		t.Fatal("leaving pending should stamp the review timestamp")
	}
	firstStamp := *afterFirst.ReviewedAt

	time.Sleep(5 * time.Millisecond)
	if status := putJSON(t, app, "/job-applications/1", fiber.Map{"status": "shortlisted"}); status != fiber.StatusOK {
		t.Fatalf("second update status = %d", status)
	}

	var afterSecond model.JobApplication
	if err := db.First(&afterSecond, seeded.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if afterSecond.Status != model.ApplicationStatusShortlisted {
		t.Errorf("status = %q", afterSecond.Status)
	}
	if afterSecond.ReviewedAt == nil || !afterSecond.ReviewedAt.Equal(firstStamp) {
		t.Error("later transitions must not move the review timestamp")
	}
}

func TestNotesOnlyUpdateLeavesReviewedAtUnset(t *testing.T) {
	app, db, _ := setupApp(t)
	seeded := seedApplication(t, db)

	if status := putJSON(t, app, "/job-applications/1", fiber.Map{"admin_notes": "strong portfolio"}); status != fiber.StatusOK {
		t.Fatalf("update status = %d", status)
	}

	var reloaded model.JobApplication
	if err := db.First(&reloaded, seeded.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.ReviewedAt != nil {
		t.Error("notes update should not stamp the review timestamp")
	}
	if reloaded.AdminNotes != "strong portfolio" {
		t.Errorf("admin notes = %q", reloaded.AdminNotes)
	}
	if reloaded.Status != model.ApplicationStatusPending {
		t.Errorf("status = %q, want pending", reloaded.Status)
	}
}

func TestInvalidStatusRejected(t *testing.T) {
	app, db, _ := setupApp(t)
	seedApplication(t, db)

	if status := putJSON(t, app, "/job-applications/1", fiber.Map{"status": "hired"}); status != fiber.StatusBadRequest {
		t.Errorf("unknown status accepted, got %d", status)
	}
}

func TestDeleteApplicationRemovesResume(t *testing.T) {
	app, db, storage := setupApp(t)
	seeded := seedApplication(t, db)

	req := httptest.NewRequest("DELETE", "/job-applications/1", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}

	var count int64
	if err := db.Model(&model.JobApplication{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Error("application row should be gone")
	}
	if len(storage.deleted) != 1 || storage.deleted[0] != seeded.Resume {
		t.Errorf("resume file should be removed from storage, got %v", storage.deleted)
	}
}
