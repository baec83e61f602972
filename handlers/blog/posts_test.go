package blog

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmspro/cmspro-api/model"
	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeStorage struct{}

func (fakeStorage) UploadFile(_ context.Context, key string, _ io.Reader, _ string) (string, error) {
	return key, nil
}
func (fakeStorage) DeleteFile(_ context.Context, _ string) error { return nil }
func (fakeStorage) GetFileURL(key string) string                 { return "https://cdn.test/" + key }

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.BlogCategory{}, &model.BlogPost{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	h := NewBlogHandler(db, fakeStorage{})
	app := fiber.New()
	app.Post("/blog-posts", h.CreatePost)
	app.Put("/blog-posts/:id", h.UpdatePost)
	app.Get("/blog-posts/slug/:slug", h.GetPostBySlug)
	app.Post("/blog-posts/:id/increment-view", h.IncrementPostView)
	return app, db
}

func postJSON(t *testing.T, app *fiber.App, method, target string, body interface{}) (int, json.RawMessage) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.StatusCode, env.Data
}

func TestCreatePostComputesSlugAndReadingTime(t *testing.T) {
	app, _ := setupApp(t)

	content := strings.TrimSpace(strings.Repeat("word ", 600))
	status, data := postJSON(t, app, "POST", "/blog-posts", fiber.Map{
		"title":   "How We Build Websites",
		"content": content,
		"status":  "published",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", status)
	}

	var post PostResponse
	if err := json.Unmarshal(data, &post); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if post.Slug != "how-we-build-websites" {
		t.Errorf("slug = %q", post.Slug)
	}
	if post.ReadingTimeMinutes != 3 {
		t.Errorf("reading time = %d, want 3", post.ReadingTimeMinutes)
	}
	if post.PublishedAt == nil {
		t.Error("published post should carry a publish timestamp")
	}
	if post.RobotsMeta != model.RobotsDefault {
		t.Errorf("robots meta = %q", post.RobotsMeta)
	}
}

func TestCreatePostRejectsDuplicateTitle(t *testing.T) {
	app, _ := setupApp(t)

	body := fiber.Map{"title": "Annual Review", "content": "Year in review."}
	if status, _ := postJSON(t, app, "POST", "/blog-posts", body); status != fiber.StatusCreated {
		t.Fatalf("first create failed with %d", status)
	}
	if status, _ := postJSON(t, app, "POST", "/blog-posts", body); status != fiber.StatusBadRequest {
		t.Errorf("duplicate title accepted, status = %d", status)
	}
}

func TestGetPostBySlugBumpsViewsAndHidesDrafts(t *testing.T) {
	app, db := setupApp(t)

	if _, data := postJSON(t, app, "POST", "/blog-posts", fiber.Map{
		"title":   "Launch Notes",
		"content": "We launched.",
		"status":  "published",
	}); data == nil {
		t.Fatal("create returned no data")
	}
	postJSON(t, app, "POST", "/blog-posts", fiber.Map{
		"title":   "Unfinished Draft",
		"content": "wip",
	})

	status, data := postJSON(t, app, "GET", "/blog-posts/slug/launch-notes", nil)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d", status)
	}
	var post PostResponse
	if err := json.Unmarshal(data, &post); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if post.ViewCount != 1 {
		t.Errorf("view count = %d, want 1", post.ViewCount)
	}

	var stored model.BlogPost
	if err := db.Where("slug = ?", "launch-notes").First(&stored).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.ViewCount != 1 {
		t.Errorf("stored view count = %d", stored.ViewCount)
	}

	if status, _ := postJSON(t, app, "GET", "/blog-posts/slug/unfinished-draft", nil); status != fiber.StatusNotFound {
		t.Errorf("draft served publicly, status = %d", status)
	}
}

func TestIncrementPostView(t *testing.T) {
	app, _ := setupApp(t)

	postJSON(t, app, "POST", "/blog-posts", fiber.Map{"title": "Counted", "content": "body"})

	status, data := postJSON(t, app, "POST", "/blog-posts/1/increment-view", nil)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d", status)
	}
	var body struct {
		ViewCount uint `json:"view_count"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.ViewCount != 1 {
		t.Errorf("view count = %d, want 1", body.ViewCount)
	}

	if status, _ := postJSON(t, app, "POST", "/blog-posts/999/increment-view", nil); status != fiber.StatusNotFound {
		t.Errorf("missing post increment returned %d", status)
	}
}

func TestUpdatePostKeepsSlugAndRecomputesReadingTime(t *testing.T) {
	app, _ := setupApp(t)

	postJSON(t, app, "POST", "/blog-posts", fiber.Map{"title": "Original Title", "content": "short"})

	longContent := strings.TrimSpace(strings.Repeat("word ", 1000))
	status, data := postJSON(t, app, "PUT", "/blog-posts/1", fiber.Map{
		"title":   "A Completely New Title",
		"content": longContent,
	})
	if status != fiber.StatusOK {
		t.Fatalf("status = %d", status)
	}

	var post PostResponse
	if err := json.Unmarshal(data, &post); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if post.Slug != "original-title" {
		t.Errorf("slug changed on update: %q", post.Slug)
	}
	if post.Title != "A Completely New Title" {
		t.Errorf("title = %q", post.Title)
	}
	if post.ReadingTimeMinutes != 5 {
		t.Errorf("reading time = %d, want 5", post.ReadingTimeMinutes)
	}
}
