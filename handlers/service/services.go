package service

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

// ServiceHandler handles service page and category requests
type ServiceHandler struct {
	db        *gorm.DB
	validator *validation.Validator
	storage   services.FileStorage
}

// NewServiceHandler creates a new service handler
func NewServiceHandler(db *gorm.DB, storage services.FileStorage) *ServiceHandler {
	return &ServiceHandler{
		db:        db,
		validator: validation.NewValidator(),
		storage:   storage,
	}
}

// ServiceRequest represents the request body for creating or updating a service
type ServiceRequest struct {
	Title            string `json:"title" form:"title" validate:"omitempty,max=255"`
	Excerpt          string `json:"excerpt" form:"excerpt" validate:"omitempty,max=500"`
	FeaturedImageAlt string `json:"featured_image_alt" form:"featured_image_alt" validate:"omitempty,max=255"`
	Content          string `json:"content" form:"content"`
	Status           string `json:"status" form:"status" validate:"omitempty,oneof=draft published archived"`
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
	Order            *uint  `json:"order" form:"order"`
}

// ServiceResponse wraps a service with its resolved image URL
type ServiceResponse struct {
	model.Service
	FeaturedImageURL *string `json:"featured_image_url"`
}

func (h *ServiceHandler) toResponse(s *model.Service) ServiceResponse {
	return ServiceResponse{
		Service:          *s,
		FeaturedImageURL: services.ResolveFileURL(h.storage, s.FeaturedImage),
	}
}

func (h *ServiceHandler) toResponseList(items []model.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(items))
	for i := range items {
		out = append(out, h.toResponse(&items[i]))
	}
	return out
}

// ListServices handles GET /api/v1/services
func (h *ServiceHandler) ListServices(c *fiber.Ctx) error {
	page, limit := query.Pagination(c)

	q := h.db.Model(&model.Service{}).Preload("Category")
	q = query.FilterEqual(c, q, map[string]string{
		"status":   "status",
		"category": "category_id",
	})
	if featured, ok := query.ParseBool(c, "is_featured"); ok {
		q = q.Where("is_featured = ?", featured)
	}
	if deleted, ok := query.ParseBool(c, "is_deleted"); ok {
		q = q.Where("is_deleted = ?", deleted)
	}
	q = query.ApplySearch(c, q, "title", "excerpt", "content")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count services")
	}

	var items []model.Service
	q = query.ApplyOrdering(c, q, []string{"published_at", "created_at", "order", "is_featured"}, `is_featured DESC, "order" ASC, created_at DESC`)
	if err := q.Limit(limit).Offset((page - 1) * limit).Find(&items).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch services")
	}

	return response.Paginated(c, h.toResponseList(items), response.CalculatePagination(page, limit, total))
}

// ListPublishedServices handles GET /api/v1/services/published
func (h *ServiceHandler) ListPublishedServices(c *fiber.Ctx) error {
	page, limit := query.Pagination(c)

	q := h.db.Model(&model.Service{}).
		Preload("Category").
		Where("status = ? AND is_deleted = ?", model.StatusPublished, false)
	if category := c.Query("category"); category != "" {
		q = q.Where("category_id = ?", category)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count services")
	}

	var items []model.Service
	if err := q.Order(`is_featured DESC, "order" ASC, created_at DESC`).
		Limit(limit).Offset((page - 1) * limit).
		Find(&items).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch services")
	}

	return response.Paginated(c, h.toResponseList(items), response.CalculatePagination(page, limit, total))
}

// GetServiceBySlug handles GET /api/v1/services/slug/:slug
func (h *ServiceHandler) GetServiceBySlug(c *fiber.Ctx) error {
	var svc model.Service
	if err := h.db.Preload("Category").
		Where("slug = ? AND status = ? AND is_deleted = ?",
			c.Params("slug"), model.StatusPublished, false).
		First(&svc).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Service not found")
		}
		return response.InternalServerError(c, "Failed to fetch service")
	}
	return response.Success(c, h.toResponse(&svc))
}

// GetService handles GET /api/v1/services/:id
func (h *ServiceHandler) GetService(c *fiber.Ctx) error {
	var svc model.Service
	if err := h.db.Preload("Category").First(&svc, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Service not found")
		}
		return response.InternalServerError(c, "Failed to fetch service")
	}
	return response.Success(c, h.toResponse(&svc))
}

// CreateService handles POST /api/v1/services
func (h *ServiceHandler) CreateService(c *fiber.Ctx) error {
	var req ServiceRequest
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

	var existing model.Service
	if err := h.db.Where("title = ?", req.Title).First(&existing).Error; err == nil {
		return response.FieldError(c, "title", "A service with this title already exists")
	}

	slug, err := services.UniqueSlug(h.db, "services", req.Title, 0)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate slug")
	}

	svc := model.Service{
		Title:              validation.SanitizeString(req.Title),
		Slug:               slug,
		Excerpt:            req.Excerpt,
		FeaturedImageAlt:   req.FeaturedImageAlt,
		Content:            req.Content,
		ReadingTimeMinutes: services.EstimateReadingTime(req.Content),
		Status:             model.StatusDraft,
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
		svc.Status = req.Status
	}
	if req.RobotsMeta != "" {
		svc.RobotsMeta = req.RobotsMeta
	}
	if req.IsFeatured != nil {
		svc.IsFeatured = *req.IsFeatured
	}
	if req.Order != nil {
		svc.Order = *req.Order
	}
	svc.PublishedAt = services.ResolvePublishedAt(svc.Status, model.StatusPublished, nil)

	if file, err := c.FormFile("featured_image"); err == nil {
		result := uploadvalidation.ValidateUpload(file, uploadvalidation.ImageLimits)
		if !result.Valid {
			return response.FieldError(c, "featured_image", result.Error)
		}
		key, err := services.StoreUpload(c.Context(), h.storage, "services", file)
		if err != nil {
			return response.InternalServerError(c, "Failed to store image")
		}
		svc.FeaturedImage = key
	}

	if err := h.db.Create(&svc).Error; err != nil {
		return response.InternalServerError(c, "Failed to create service")
	}

	return response.Created(c, h.toResponse(&svc))
}

// UpdateService handles PUT/PATCH /api/v1/services/:id
func (h *ServiceHandler) UpdateService(c *fiber.Ctx) error {
	var svc model.Service
	if err := h.db.First(&svc, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Service not found")
		}
		return response.InternalServerError(c, "Failed to fetch service")
	}

	var req ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	if req.Title != "" && req.Title != svc.Title {
		var existing model.Service
		if err := h.db.Where("title = ? AND id <> ?", req.Title, svc.ID).First(&existing).Error; err == nil {
			return response.FieldError(c, "title", "A service with this title already exists")
		}
		svc.Title = validation.SanitizeString(req.Title)
	}
	if req.Excerpt != "" {
		svc.Excerpt = req.Excerpt
	}
	if req.FeaturedImageAlt != "" {
		svc.FeaturedImageAlt = req.FeaturedImageAlt
	}
	if req.Content != "" {
		svc.Content = req.Content
		svc.ReadingTimeMinutes = services.EstimateReadingTime(req.Content)
	}
	if req.Status != "" {
		svc.Status = req.Status
	}
	if req.CategoryID != nil {
		svc.CategoryID = req.CategoryID
	}
	if req.MetaDescription != "" {
		svc.MetaDescription = req.MetaDescription
	}
	if req.MetaKeywords != "" {
		svc.MetaKeywords = req.MetaKeywords
	}
	if req.FocusKeyword != "" {
		svc.FocusKeyword = req.FocusKeyword
	}
	if req.OGTitle != "" {
		svc.OGTitle = req.OGTitle
	}
	if req.OGDescription != "" {
		svc.OGDescription = req.OGDescription
	}
	if req.CanonicalURL != "" {
		svc.CanonicalURL = req.CanonicalURL
	}
	if req.RobotsMeta != "" {
		svc.RobotsMeta = req.RobotsMeta
	}
	if req.IsFeatured != nil {
		svc.IsFeatured = *req.IsFeatured
	}
	if req.IsDeleted != nil {
		svc.IsDeleted = *req.IsDeleted
	}
	if req.Order != nil {
		svc.Order = *req.Order
	}
	svc.PublishedAt = services.ResolvePublishedAt(svc.Status, model.StatusPublished, svc.PublishedAt)

	oldImage := svc.FeaturedImage
	if file, err := c.FormFile("featured_image"); err == nil {
		result := uploadvalidation.ValidateUpload(file, uploadvalidation.ImageLimits)
		if !result.Valid {
			return response.FieldError(c, "featured_image", result.Error)
		}
		key, err := services.StoreUpload(c.Context(), h.storage, "services", file)
		if err != nil {
			return response.InternalServerError(c, "Failed to store image")
		}
		svc.FeaturedImage = key
	}

	if err := h.db.Save(&svc).Error; err != nil {
		return response.InternalServerError(c, "Failed to update service")
	}

	if oldImage != "" && oldImage != svc.FeaturedImage {
		_ = h.storage.DeleteFile(c.Context(), oldImage)
	}

	return response.SuccessWithMessage(c, "Service updated successfully", h.toResponse(&svc))
}

// DeleteService handles DELETE /api/v1/services/:id
func (h *ServiceHandler) DeleteService(c *fiber.Ctx) error {
	var svc model.Service
	if err := h.db.First(&svc, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Service not found")
		}
		return response.InternalServerError(c, "Failed to fetch service")
	}

	if err := h.db.Delete(&svc).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete service")
	}

	if svc.FeaturedImage != "" {
		_ = h.storage.DeleteFile(c.Context(), svc.FeaturedImage)
	}

	return response.SuccessWithMessage(c, "Service deleted successfully", nil)
}
