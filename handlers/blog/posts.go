package blog

import (
	"github.com/cmspro/cmspro-api/model"
	"github.com/cmspro/cmspro-api/services"
	"github.com/cmspro/cmspro-api/utils/query"
	"github.com/cmspro/cmspro-api/utils/response"
	"github.com/cmspro/cmspro-api/utils/uploadvalidation"
	"github.com/cmspro/cmspro-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BlogHandler handles blog post and category requests
type BlogHandler struct {
	db        *gorm.DB
	validator *validation.Validator
	storage   services.FileStorage
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(db *gorm.DB, storage services.FileStorage) *BlogHandler {
	return &BlogHandler{
		db:        db,
		validator: validation.NewValidator(),
		storage:   storage,
	}
}

// PostRequest represents the request body for creating or updating a post
type PostRequest struct {
	Title            string `json:"title" form:"title" validate:"omitempty,max=255"`
	Author           string `json:"author" form:"author" validate:"omitempty,max=150"`
	FeaturedImageAlt string `json:"featured_image_alt" form:"featured_image_alt" validate:"omitempty,max=255"`
	Excerpt          string `json:"excerpt" form:"excerpt" validate:"omitempty,max=500"`
	Content          string `json:"content" form:"content"`
	Status           string `json:"status" form:"status" validate:"omitempty,oneof=draft published archived"`
	Tags             string `json:"tags" form:"tags" validate:"omitempty,max=255"`
	CategoryID       *uint  `json:"category_id" form:"category_id"`
	MetaDescription  string `json:"meta_description" form:"meta_description" validate:"omitempty,max=160"`
	MetaKeywords     string `json:"meta_keywords" form:"meta_keywords" validate:"omitempty,max=255"`
	FocusKeyword     string `json:"focus_keyword" form:"focus_keyword" validate:"omitempty,max=100"`
	OGTitle          string `json:"og_title" form:"og_title" validate:"omitempty,max=100"`
	OGDescription    string `json:"og_description" form:"og_description" validate:"omitempty,max=160"`
	CanonicalURL     string `json:"canonical_url" form:"canonical_url" validate:"omitempty,url,max=255"`
	RobotsMeta       string `json:"robots_meta" form:"robots_meta" validate:"omitempty,max=50"`
	IsFeatured       *bool  `json:"is_featured" form:"is_featured"`
	IsDeleted        *bool  `json:"is_deleted" form:"is_deleted"`
}

// PostResponse wraps a post with resolved media URLs
type PostResponse struct {
	model.BlogPost
	FeaturedImageURL *string `json:"featured_image_url"`
	ThumbnailURL     *string `json:"thumbnail_url"`
}

func (h *BlogHandler) toResponse(p *model.BlogPost) PostResponse {
	return PostResponse{
		BlogPost:         *p,
		FeaturedImageURL: services.ResolveFileURL(h.storage, p.FeaturedImage),
		ThumbnailURL:     services.ResolveFileURL(h.storage, p.Thumbnail),
	}
}

func (h *BlogHandler) toResponseList(posts []model.BlogPost) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, h.toResponse(&posts[i]))
	}
	return out
}

// ListPosts handles GET /api/v1/blog-posts
func (h *BlogHandler) ListPosts(c *fiber.Ctx) error {
	page, limit := query.Pagination(c)

	q := h.db.Model(&model.BlogPost{}).Preload("Category")
	q = query.FilterEqual(c, q, map[string]string{
		"status":   "status",
		"category": "category_id",
	})
	if tags := c.Query("tags"); tags != "" {
		q = q.Where("tags ILIKE ?", "%"+tags+"%")
	}
	if featured, ok := query.ParseBool(c, "is_featured"); ok {
		q = q.Where("is_featured = ?", featured)
	}
	if deleted, ok := query.ParseBool(c, "is_deleted"); ok {
		q = q.Where("is_deleted = ?", deleted)
	}
	q = query.ApplySearch(c, q, "title", "excerpt", "content")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count posts")
	}

	var posts []model.BlogPost
	q = query.ApplyOrdering(c, q, []string{"published_at", "created_at", "view_count"}, "published_at DESC, created_at DESC")
	if err := q.Limit(limit).Offset((page - 1) * limit).Find(&posts).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch posts")
	}

	return response.Paginated(c, h.toResponseList(posts), response.CalculatePagination(page, limit, total))
}

// ListPublishedPosts handles GET /api/v1/blog-posts/published
func (h *BlogHandler) ListPublishedPosts(c *fiber.Ctx) error {
	page, limit := query.Pagination(c)

	q := h.db.Model(&model.BlogPost{}).
		Preload("Category").
		Where("status = ? AND is_deleted = ?", model.StatusPublished, false)
	if category := c.Query("category"); category != "" {
		q = q.Where("category_id = ?", category)
	}
	if tags := c.Query("tags"); tags != "" {
		q = q.Where("tags ILIKE ?", "%"+tags+"%")
	}
	q = query.ApplySearch(c, q, "title", "excerpt")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count posts")
	}

	var posts []model.BlogPost
	q = query.ApplyOrdering(c, q, []string{"published_at", "created_at", "view_count"}, "published_at DESC, created_at DESC")
	if err := q.Limit(limit).Offset((page - 1) * limit).Find(&posts).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch posts")
	}

	return response.Paginated(c, h.toResponseList(posts), response.CalculatePagination(page, limit, total))
}

// GetPostBySlug handles GET /api/v1/blog-posts/slug/:slug and atomically
// bumps the view counter on every hit.
func (h *BlogHandler) GetPostBySlug(c *fiber.Ctx) error {
	var post model.BlogPost
	if err := h.db.Preload("Category").
		Where("slug = ? AND status = ? AND is_deleted = ?",
			c.Params("slug"), model.StatusPublished, false).
		First(&post).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Post not found")
		}
		return response.InternalServerError(c, "Failed to fetch post")
	}

	if err := h.db.Model(&post).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error; err != nil {
		return response.InternalServerError(c, "Failed to record view")
	}
	post.ViewCount++

	return response.Success(c, h.toResponse(&post))
}

// GetPost handles GET /api/v1/blog-posts/:id
func (h *BlogHandler) GetPost(c *fiber.Ctx) error {
	var post model.BlogPost
	if err := h.db.Preload("Category").First(&post, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Post not found")
		}
		return response.InternalServerError(c, "Failed to fetch post")
	}
	return response.Success(c, h.toResponse(&post))
}

// IncrementPostView handles POST /api/v1/blog-posts/:id/increment-view
func (h *BlogHandler) IncrementPostView(c *fiber.Ctx) error {
	result := h.db.Model(&model.BlogPost{}).
		Where("id = ?", c.Params("id")).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to record view")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Post not found")
	}

	var post model.BlogPost
	if err := h.db.First(&post, "id = ?", c.Params("id")).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch post")
	}
	return response.Success(c, fiber.Map{"view_count": post.ViewCount})
}

// CreatePost handles POST /api/v1/blog-posts
func (h *BlogHandler) CreatePost(c *fiber.Ctx) error {
	var req PostRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	if req.Title == "" {
		return response.FieldError(c, "title", "Title is required")
	}
	if req.Content == "" {
		return response.FieldError(c, "content", "Content is required")
	}

	var existing model.BlogPost
	if err := h.db.Where("title = ?", req.Title).First(&existing).Error; err == nil {
		return response.FieldError(c, "title", "A post with this title already exists")
	}

	slug, err := services.UniqueSlug(h.db, "blog_posts", req.Title, 0)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate slug")
	}

	post := model.BlogPost{
		Title:              validation.SanitizeString(req.Title),
		Slug:               slug,
		Author:             validation.SanitizeString(req.Author),
		FeaturedImageAlt:   req.FeaturedImageAlt,
		Excerpt:            req.Excerpt,
		Content:            req.Content,
		ReadingTimeMinutes: services.EstimateReadingTime(req.Content),
		Status:             model.StatusDraft,
		Tags:               req.Tags,
		CategoryID:         req.CategoryID,
		MetaDescription:    req.MetaDescription,
		MetaKeywords:       req.MetaKeywords,
		FocusKeyword:       req.FocusKeyword,
		OGTitle:            req.OGTitle,
		OGDescription:      req.OGDescription,
		CanonicalURL:       req.CanonicalURL,
		RobotsMeta:         model.RobotsDefault,
	}
	if req.Status != "" {
		post.Status = req.Status
	}
	if req.RobotsMeta != "" {
		post.RobotsMeta = req.RobotsMeta
	}
	if req.IsFeatured != nil {
		post.IsFeatured = *req.IsFeatured
	}
	post.PublishedAt = services.ResolvePublishedAt(post.Status, model.StatusPublished, nil)

	if err := h.savePostImages(c, &post); err != nil {
		return err
	}

	if err := h.db.Create(&post).Error; err != nil {
		return response.InternalServerError(c, "Failed to create post")
	}

	return response.Created(c, h.toResponse(&post))
}

// UpdatePost handles PUT/PATCH /api/v1/blog-posts/:id
// The slug never changes after creation; reading time and published_at
// are recomputed from the updated fields.
func (h *BlogHandler) UpdatePost(c *fiber.Ctx) error {
	var post model.BlogPost
	if err := h.db.First(&post, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Post not found")
		}
		return response.InternalServerError(c, "Failed to fetch post")
	}

	var req PostRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	if req.Title != "" && req.Title != post.Title {
		var existing model.BlogPost
		if err := h.db.Where("title = ? AND id <> ?", req.Title, post.ID).First(&existing).Error; err == nil {
			return response.FieldError(c, "title", "A post with this title already exists")
		}
		post.Title = validation.SanitizeString(req.Title)
	}
	if req.Author != "" {
		post.Author = validation.SanitizeString(req.Author)
	}
	if req.FeaturedImageAlt != "" {
		post.FeaturedImageAlt = req.FeaturedImageAlt
	}
	if req.Excerpt != "" {
		post.Excerpt = req.Excerpt
	}
	if req.Content != "" {
		post.Content = req.Content
		post.ReadingTimeMinutes = services.EstimateReadingTime(req.Content)
	}
	if req.Status != "" {
		post.Status = req.Status
	}
	if req.Tags != "" {
		post.Tags = req.Tags
	}
	if req.CategoryID != nil {
		post.CategoryID = req.CategoryID
	}
	if req.MetaDescription != "" {
		post.MetaDescription = req.MetaDescription
	}
	if req.MetaKeywords != "" {
		post.MetaKeywords = req.MetaKeywords
	}
	if req.FocusKeyword != "" {
		post.FocusKeyword = req.FocusKeyword
	}
	if req.OGTitle != "" {
		post.OGTitle = req.OGTitle
	}
	if req.OGDescription != "" {
		post.OGDescription = req.OGDescription
	}
	if req.CanonicalURL != "" {
		post.CanonicalURL = req.CanonicalURL
	}
	if req.RobotsMeta != "" {
		post.RobotsMeta = req.RobotsMeta
	}
	if req.IsFeatured != nil {
		post.IsFeatured = *req.IsFeatured
	}
	if req.IsDeleted != nil {
		post.IsDeleted = *req.IsDeleted
	}
	post.PublishedAt = services.ResolvePublishedAt(post.Status, model.StatusPublished, post.PublishedAt)

	oldFeatured, oldThumb := post.FeaturedImage, post.Thumbnail
	if err := h.savePostImages(c, &post); err != nil {
		return err
	}

	if err := h.db.Save(&post).Error; err != nil {
		return response.InternalServerError(c, "Failed to update post")
	}

	if oldFeatured != "" && oldFeatured != post.FeaturedImage {
		_ = h.storage.DeleteFile(c.Context(), oldFeatured)
	}
	if oldThumb != "" && oldThumb != post.Thumbnail {
		_ = h.storage.DeleteFile(c.Context(), oldThumb)
	}

	return response.SuccessWithMessage(c, "Post updated successfully", h.toResponse(&post))
}

// DeletePost handles DELETE /api/v1/blog-posts/:id
func (h *BlogHandler) DeletePost(c *fiber.Ctx) error {
	var post model.BlogPost
	if err := h.db.First(&post, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Post not found")
		}
		return response.InternalServerError(c, "Failed to fetch post")
	}

	if err := h.db.Delete(&post).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete post")
	}

	if post.FeaturedImage != "" {
		_ = h.storage.DeleteFile(c.Context(), post.FeaturedImage)
	}
	if post.Thumbnail != "" {
		_ = h.storage.DeleteFile(c.Context(), post.Thumbnail)
	}

	return response.SuccessWithMessage(c, "Post deleted successfully", nil)
}

func (h *BlogHandler) savePostImages(c *fiber.Ctx, post *model.BlogPost) error {
	if file, err := c.FormFile("featured_image"); err == nil {
		result := uploadvalidation.ValidateUpload(file, uploadvalidation.ImageLimits)
		if !result.Valid {
			return response.FieldError(c, "featured_image", result.Error)
		}
		key, err := services.StoreUpload(c.Context(), h.storage, "blog/featured", file)
		if err != nil {
			return response.InternalServerError(c, "Failed to store featured image")
		}
		post.FeaturedImage = key
	}

	if file, err := c.FormFile("thumbnail"); err == nil {
		result := uploadvalidation.ValidateUpload(file, uploadvalidation.ImageLimits)
		if !result.Valid {
			return response.FieldError(c, "thumbnail", result.Error)
		}
		key, err := services.StoreUpload(c.Context(), h.storage, "blog/thumbnails", file)
		if err != nil {
			return response.InternalServerError(c, "Failed to store thumbnail")
		}
		post.Thumbnail = key
	}

	return nil
}
