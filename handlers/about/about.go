package about

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

// AboutHandler handles about-page content requests
type AboutHandler struct {
	db        *gorm.DB
	validator *validation.Validator
	storage   services.FileStorage
}

// NewAboutHandler creates a new about handler
func NewAboutHandler(db *gorm.DB, storage services.FileStorage) *AboutHandler {
	return &AboutHandler{
		db:        db,
		validator: validation.NewValidator(),
		storage:   storage,
	}
}

// AboutRequest represents the request body for creating or updating the
// about page. Images travel as multipart files alongside these fields.
type AboutRequest struct {
	Title   string `json:"title" form:"title" validate:"omitempty,max=200"`
	Content string `json:"content" form:"content"`

	MissionTitle   string `json:"mission_title" form:"mission_title" validate:"omitempty,max=200"`
	MissionContent string `json:"mission_content" form:"mission_content"`

	VisionTitle   string `json:"vision_title" form:"vision_title" validate:"omitempty,max=200"`
	VisionContent string `json:"vision_content" form:"vision_content"`

	GoalsTitle   string `json:"goals_title" form:"goals_title" validate:"omitempty,max=200"`
	GoalsContent string `json:"goals_content" form:"goals_content"`

	AchievementsTitle   string `json:"achievements_title" form:"achievements_title" validate:"omitempty,max=200"`
	AchievementsContent string `json:"achievements_content" form:"achievements_content"`

	IsPublished *bool `json:"is_published" form:"is_published"`
}

// AboutResponse wraps the about record with resolved image URLs
type AboutResponse struct {
	model.About
	ImageURL             *string `json:"image_url"`
	MissionImageURL      *string `json:"mission_image_url"`
	VisionImageURL       *string `json:"vision_image_url"`
	GoalsImageURL        *string `json:"goals_image_url"`
	AchievementsImageURL *string `json:"achievements_image_url"`
}

func (h *AboutHandler) toResponse(a *model.About) AboutResponse {
	return AboutResponse{
		About:                *a,
		ImageURL:             services.ResolveFileURL(h.storage, a.Image),
		MissionImageURL:      services.ResolveFileURL(h.storage, a.MissionImage),
		VisionImageURL:       services.ResolveFileURL(h.storage, a.VisionImage),
		GoalsImageURL:        services.ResolveFileURL(h.storage, a.GoalsImage),
		AchievementsImageURL: services.ResolveFileURL(h.storage, a.AchievementsImage),
	}
}

// imageFields maps multipart field names to the model's storage keys.
func imageFields(a *model.About) map[string]*string {
	return map[string]*string{
		"image":              &a.Image,
		"mission_image":      &a.MissionImage,
		"vision_image":       &a.VisionImage,
		"goals_image":        &a.GoalsImage,
		"achievements_image": &a.AchievementsImage,
	}
}

// ListAbout handles GET /api/v1/about
func (h *AboutHandler) ListAbout(c *fiber.Ctx) error {
	page, limit := query.Pagination(c)

	q := h.db.Model(&model.About{})
	if published, ok := query.ParseBool(c, "is_published"); ok {
		q = q.Where("is_published = ?", published)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count about entries")
	}

	var entries []model.About
	if err := q.Order("updated_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&entries).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch about entries")
	}

	out := make([]AboutResponse, 0, len(entries))
	for i := range entries {
		out = append(out, h.toResponse(&entries[i]))
	}
	return response.Paginated(c, out, response.CalculatePagination(page, limit, total))
}

// GetActiveAbout handles GET /api/v1/about/active
func (h *AboutHandler) GetActiveAbout(c *fiber.Ctx) error {
	var about model.About
	if err := h.db.Where("is_published = ?", true).
		Order("updated_at DESC").
		First(&about).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "About content not found")
		}
		return response.InternalServerError(c, "Failed to fetch about content")
	}
	return response.Success(c, h.toResponse(&about))
}

// GetAbout handles GET /api/v1/about/:id
func (h *AboutHandler) GetAbout(c *fiber.Ctx) error {
	var about model.About
	if err := h.db.First(&about, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "About content not found")
		}
		return response.InternalServerError(c, "Failed to fetch about content")
	}
	return response.Success(c, h.toResponse(&about))
}

// CreateAbout handles POST /api/v1/about
func (h *AboutHandler) CreateAbout(c *fiber.Ctx) error {
	var req AboutRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	if req.Title == "" || req.Content == "" {
		return response.BadRequest(c, "Title and content are required")
	}

	about := model.About{
		Title:               validation.SanitizeString(req.Title),
		Content:             req.Content,
		MissionContent:      req.MissionContent,
		VisionContent:       req.VisionContent,
		GoalsContent:        req.GoalsContent,
		AchievementsContent: req.AchievementsContent,
		IsPublished:         true,
	}
	applyTitles(&about, &req)

	if err := h.saveImages(c, &about); err != nil {
		return err
	}

	if err := h.db.Create(&about).Error; err != nil {
		return response.InternalServerError(c, "Failed to create about content")
	}

	return response.Created(c, h.toResponse(&about))
}

// UpdateAbout handles PUT/PATCH /api/v1/about/:id
func (h *AboutHandler) UpdateAbout(c *fiber.Ctx) error {
	var about model.About
	if err := h.db.First(&about, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "About content not found")
		}
		return response.InternalServerError(c, "Failed to fetch about content")
	}

	var req AboutRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	if req.Title != "" {
		about.Title = validation.SanitizeString(req.Title)
	}
	if req.Content != "" {
		about.Content = req.Content
	}
	if req.MissionContent != "" {
		about.MissionContent = req.MissionContent
	}
	if req.VisionContent != "" {
		about.VisionContent = req.VisionContent
	}
	if req.GoalsContent != "" {
		about.GoalsContent = req.GoalsContent
	}
	if req.AchievementsContent != "" {
		about.AchievementsContent = req.AchievementsContent
	}
	applyTitles(&about, &req)

	old := make(map[string]string)
	for field, key := range imageFields(&about) {
		old[field] = *key
	}

	if err := h.saveImages(c, &about); err != nil {
		return err
	}

	if err := h.db.Save(&about).Error; err != nil {
		return response.InternalServerError(c, "Failed to update about content")
	}

	for field, key := range imageFields(&about) {
		if old[field] != "" && old[field] != *key {
			_ = h.storage.DeleteFile(c.Context(), old[field])
		}
	}

	return response.SuccessWithMessage(c, "About content updated successfully", h.toResponse(&about))
}

// DeleteAbout handles DELETE /api/v1/about/:id
func (h *AboutHandler) DeleteAbout(c *fiber.Ctx) error {
	var about model.About
	if err := h.db.First(&about, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "About content not found")
		}
		return response.InternalServerError(c, "Failed to fetch about content")
	}

	if err := h.db.Delete(&about).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete about content")
	}

	for _, key := range imageFields(&about) {
		if *key != "" {
			_ = h.storage.DeleteFile(c.Context(), *key)
		}
	}

	return response.SuccessWithMessage(c, "About content deleted successfully", nil)
}

func (h *AboutHandler) saveImages(c *fiber.Ctx, about *model.About) error {
	for field, key := range imageFields(about) {
		file, err := c.FormFile(field)
		if err != nil {
			continue
		}
		result := uploadvalidation.ValidateUpload(file, uploadvalidation.ImageLimits)
		if !result.Valid {
			return response.FieldError(c, field, result.Error)
		}
		stored, err := services.StoreUpload(c.Context(), h.storage, "about", file)
		if err != nil {
			return response.InternalServerError(c, "Failed to store image")
		}
		*key = stored
	}
	return nil
}

func applyTitles(about *model.About, req *AboutRequest) {
	if req.MissionTitle != "" {
		about.MissionTitle = validation.SanitizeString(req.MissionTitle)
	}
	if req.VisionTitle != "" {
		about.VisionTitle = validation.SanitizeString(req.VisionTitle)
	}
	if req.GoalsTitle != "" {
		about.GoalsTitle = validation.SanitizeString(req.GoalsTitle)
	}
	if req.AchievementsTitle != "" {
		about.AchievementsTitle = validation.SanitizeString(req.AchievementsTitle)
	}
	if req.IsPublished != nil {
		about.IsPublished = *req.IsPublished
	}
}
