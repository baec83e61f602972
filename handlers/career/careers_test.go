package career

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/cmspro/cmspro-api/model"
	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
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

	h := NewCareerHandler(db)
	app := fiber.New()
	app.Get("/careers", h.ListCareers)
	app.Get("/careers/slug/:slug", h.GetCareerBySlug)
	app.Post("/careers", h.CreateCareer)
	app.Put("/careers/:id", h.UpdateCareer)
	app.Delete("/careers/:id", h.DeleteCareer)
	return app, db
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, env
}

func TestCreateCareerGeneratesSlugAndDefaults(t *testing.T) {
	app, _ := setupApp(t)

	status, env := doJSON(t, app, "POST", "/careers", fiber.Map{
		"title":        "Senior Go Engineer",
		"location":     "Remote",
		"requirements": "Five years of backend experience.",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", status)
	}

	var career CareerResponse
	if err := json.Unmarshal(env.Data, &career); err != nil {
		t.Fatalf("decode career: %v", err)
	}
	if career.Slug != "senior-go-engineer" {
		t.Errorf("slug = %q", career.Slug)
	}
	if career.Status != model.CareerStatusDraft {
		t.Errorf("default status = %q, want draft", career.Status)
	}
	if career.JobType != model.JobTypeFullTime {
		t.Errorf("default job type = %q, want full_time", career.JobType)
	}
	if career.PublishedAt != nil {
		t.Error("draft career should have no publish timestamp")
	}
}

func TestCreateCareerSlugCollision(t *testing.T) {
	app, _ := setupApp(t)

	for _, want := range []string{"designer", "designer-1"} {
		_, env := doJSON(t, app, "POST", "/careers", fiber.Map{
			"title":        "Designer",
			"location":     "Onsite",
			"requirements": "Portfolio required.",
		})
		var career CareerResponse
		if err := json.Unmarshal(env.Data, &career); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if career.Slug != want {
			t.Errorf("slug = %q, want %q", career.Slug, want)
		}
	}
}

func TestGetCareerBySlugBumpsViewCount(t *testing.T) {
	app, db := setupApp(t)

	career := model.Career{
		Title:        "Backend Engineer",
		Slug:         "backend-engineer",
		Location:     "Remote",
		Requirements: "Go.",
		Status:       model.CareerStatusActive,
	}
	if err := db.Create(&career).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	for i := 1; i <= 3; i++ {
		status, env := doJSON(t, app, "GET", "/careers/slug/backend-engineer", nil)
		if status != fiber.StatusOK {
			t.Fatalf("status = %d", status)
		}
		var got CareerResponse
		if err := json.Unmarshal(env.Data, &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.ViewCount != uint(i) {
			t.Errorf("view count after %d hits = %d", i, got.ViewCount)
		}
	}

	var stored model.Career
	if err := db.First(&stored, career.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.ViewCount != 3 {
		t.Errorf("stored view count = %d, want 3", stored.ViewCount)
	}
}

func TestGetCareerBySlugHidesDrafts(t *testing.T) {
	app, db := setupApp(t)

	if err := db.Create(&model.Career{
		Title:        "Hidden Role",
		Slug:         "hidden-role",
		Location:     "Remote",
		Requirements: "n/a",
		Status:       model.CareerStatusDraft,
	}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	status, _ := doJSON(t, app, "GET", "/careers/slug/hidden-role", nil)
	if status != fiber.StatusNotFound {
		t.Errorf("draft career served publicly, status = %d", status)
	}
}

func TestUpdateCareerPublishLifecycle(t *testing.T) {
	app, db := setupApp(t)

	_, env := doJSON(t, app, "POST", "/careers", fiber.Map{
		"title":        "Ops Lead",
		"location":     "Hybrid",
		"requirements": "Ops background.",
	})
	var created CareerResponse
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// Activating stamps the publish timestamp.
	_, env = doJSON(t, app, "PUT", "/careers/1", fiber.Map{"status": "active"})
	var active CareerResponse
	if err := json.Unmarshal(env.Data, &active); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if active.PublishedAt == nil {
		t.Fatal("activating should set the publish timestamp")
	}

	// Closing clears it again.
	_, env = doJSON(t, app, "PUT", "/careers/1", fiber.Map{"status": "closed"})
	var closed CareerResponse
	if err := json.Unmarshal(env.Data, &closed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if closed.PublishedAt != nil {
		t.Error("closing should clear the publish timestamp")
	}

	// Slug never changes across updates.
	if closed.Slug != created.Slug {
		t.Errorf("slug changed from %q to %q", created.Slug, closed.Slug)
	}

	var stored model.Career
	if err := db.First(&stored, 1).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.PublishedAt != nil {
		t.Error("stored publish timestamp should be cleared")
	}
}

func TestDeleteCareerCascadesApplications(t *testing.T) {
	app, db := setupApp(t)

	career := model.Career{
		Title:        "QA Engineer",
		Slug:         "qa-engineer",
		Location:     "Remote",
		Requirements: "Testing.",
		Status:       model.CareerStatusActive,
	}
	if err := db.Create(&career).Error; err != nil {
		t.Fatalf("seed career: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := db.Create(&model.JobApplication{
			CareerID: career.ID,
			FullName: "Applicant",
			Email:    "applicant@example.com",
			Phone:    "555-0100",
			Resume:   "applications/resumes/r.pdf",
		}).Error; err != nil {
			t.Fatalf("seed application: %v", err)
		}
	}

	status, _ := doJSON(t, app, "DELETE", "/careers/1", nil)
	if status != fiber.StatusOK {
		t.Fatalf("delete status = %d", status)
	}

	var count int64
	if err := db.Model(&model.JobApplication{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("%d applications survived the career delete", count)
	}
}

func TestListCareersFeaturedFirst(t *testing.T) {
	app, db := setupApp(t)

	plain := model.Career{
		Title:        "Plain Role",
		Slug:         "plain-role",
		Location:     "Remote",
		Requirements: "Go.",
		Status:       model.CareerStatusActive,
	}
	featured := model.Career{
		Title:        "Featured Role",
		Slug:         "featured-role",
		Location:     "Remote",
		Requirements: "Go.",
		Status:       model.CareerStatusActive,
		IsFeatured:   true,
		Order:        1,
	}
	if err := db.Create(&plain).Error; err != nil {
		t.Fatalf("seed plain: %v", err)
	}
	if err := db.Create(&featured).Error; err != nil {
		t.Fatalf("seed featured: %v", err)
	}

	status, env := doJSON(t, app, "GET", "/careers", nil)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d", status)
	}

	var got []CareerResponse
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d careers, want 2", len(got))
	}
	if got[0].Title != "Featured Role" {
		t.Errorf("first career = %q, featured roles must sort before the rest", got[0].Title)
	}
}

func TestGetCareerBySlugConcurrentViews(t *testing.T) {
	app, db := setupApp(t)

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// One connection keeps the in-memory database shared across goroutines.
	sqlDB.SetMaxOpenConns(1)

	career := model.Career{
		Title:        "Platform Engineer",
		Slug:         "platform-engineer",
		Location:     "Remote",
		Requirements: "Go.",
		Status:       model.CareerStatusActive,
	}
	if err := db.Create(&career).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	const hits = 8
	errs := make(chan error, hits)
	var wg sync.WaitGroup
	for i := 0; i < hits; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest("GET", "/careers/slug/platform-engineer", nil)
			resp, err := app.Test(req, -1)
			if err != nil {
				errs <- err
				return
			}
			resp.Body.Close()
			if resp.StatusCode != fiber.StatusOK {
				errs <- fmt.Errorf("status = %d", resp.StatusCode)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("request: %v", err)
	}

	var stored model.Career
	if err := db.First(&stored, career.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.ViewCount != hits {
		t.Errorf("view count after %d concurrent hits = %d", hits, stored.ViewCount)
	}
}

func TestListCareersOrderingParam(t *testing.T) {
	app, db := setupApp(t)

	first := model.Career{
		Title:        "Oldest Role",
		Slug:         "oldest-role",
		Location:     "Remote",
		Requirements: "Go.",
		Status:       model.CareerStatusActive,
		Order:        2,
	}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	second := model.Career{
		Title:        "Newest Role",
		Slug:         "newest-role",
		Location:     "Remote",
		Requirements: "Go.",
		Status:       model.CareerStatusActive,
		IsFeatured:   true,
		CreatedAt:    first.CreatedAt.Add(time.Hour),
	}
	if err := db.Create(&second).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	fetch := func(target string) []CareerResponse {
		t.Helper()
		status, env := doJSON(t, app, "GET", target, nil)
		if status != fiber.StatusOK {
			t.Fatalf("GET %s status = %d", target, status)
		}
		var got []CareerResponse
		if err := json.Unmarshal(env.Data, &got); err != nil {
			t.Fatalf("decode list: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d careers, want 2", len(got))
		}
		return got
	}

	// Whitelisted field overrides the default ordering.
	if got := fetch("/careers?ordering=created_at"); got[0].Title != "Oldest Role" {
		t.Errorf("ordering=created_at put %q first", got[0].Title)
	}
	if got := fetch("/careers?ordering=-order"); got[0].Title != "Oldest Role" {
		t.Errorf("ordering=-order put %q first", got[0].Title)
	}

	// Unknown fields fall back to the default, featured first.
	if got := fetch("/careers?ordering=title"); got[0].Title != "Newest Role" {
		t.Errorf("unknown ordering field put %q first", got[0].Title)
	}
}
