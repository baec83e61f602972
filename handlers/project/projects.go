package project

import (
	"time"

	"github.com/cmspro/cmspro-api/model"
	"github.com/cmspro/cmspro-api/services"
	"github.com/cmspro/cmspro-api/utils/query"
	"github.com/cmspro/cmspro-api/utils/response"
	"github.com/cmspro/cmspro-api/utils/uploadvalidation"
	"github.com/cmspro/cmspro-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProjectHandler handles portfolio project requests
type ProjectHandler struct {
	db        *gorm.DB
	validator *validation.Validator
	storage   services.FileStorage
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(db *gorm.DB, storage services.FileStorage) *ProjectHandler {
	return &ProjectHandler{
		db:        db,
		validator: validation.NewValidator(),
		storage:   storage,
	}
}

// ProjectRequest represents the request body for creating or updating a project
type ProjectRequest struct {
	Title            string `json:"title" form:"title" validate:"omitempty,max=255"`
	ShortDescription string `json:"short_description" form:"short_description" validate:"omitempty,max=500"`
	LongDescription  string `json:"long_description" form:"long_description"`
	Status           string `json:"status" form:"status" validate:"omitempty,oneof=planned ongoing completed"`
	StartDate        string `json:"start_date" form:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate          string `json:"end_date" form:"end_date" validate:"omitempty,datetime=2006-01-02"`
	IsFeatured       *bool  `json:"is_featured" form:"is_featured"`
	IsDeleted        *bool  `json:"is_deleted" form:"is_deleted"`
	CategoryID       *uint  `json:"category_id" form:"category_id"`
}

// ProjectResponse wraps a project with its resolved cover image URL
type ProjectResponse struct {
	model.Project
	CoverImageURL *string                `json:"cover_image_url"`
	Images        []ProjectImageResponse `json:"images,omitempty"`
}

func (h *ProjectHandler) toResponse(p *model.Project) ProjectResponse {
	res := ProjectResponse{
		Project:       *p,
		CoverImageURL: services.ResolveFileURL(h.storage, p.CoverImage),
	}
	for i := range p.Images {
		res.Images = append(res.Images, h.toImageResponse(&p.Images[i]))
	}
	res.Project.Images = nil
	return res
}

func (h *ProjectHandler) toResponseList(projects []model.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, h.toResponse(&projects[i]))
	}
	return out
}

// ListProjects handles GET /api/v1/projects
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	page, limit := query.Pagination(c)

	q := h.db.Model(&model.Project{}).Preload("Category")
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
	q = query.ApplySearch(c, q, "title", "short_description")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count projects")
	}

	var projects []model.Project
	q = query.ApplyOrdering(c, q, []string{"start_date", "end_date", "created_at"}, "is_featured DESC, created_at DESC")
	if err := q.Limit(limit).Offset((page - 1) * limit).Find(&projects).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch projects")
	}

	return response.Paginated(c, h.toResponseList(projects), response.CalculatePagination(page, limit, total))
}

// ListCompletedProjects handles GET /api/v1/projects/completed
func (h *ProjectHandler) ListCompletedProjects(c *fiber.Ctx) error {
	page, limit := query.Pagination(c)

	q := h.db.Model(&model.Project{}).
		Preload("Category").
		Where("status = ? AND is_deleted = ?", model.ProjectStatusCompleted, false)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count projects")
	}

	var projects []model.Project
	if err := q.Order("is_featured DESC, created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&projects).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch projects")
	}

	return response.Paginated(c, h.toResponseList(projects), response.CalculatePagination(page, limit, total))
}

// GetProjectBySlug handles GET /api/v1/projects/slug/:slug
func (h *ProjectHandler) GetProjectBySlug(c *fiber.Ctx) error {
	var project model.Project
	if err := h.db.Preload("Category").Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order(`"order" ASC`)
	}).Where("slug = ? AND is_deleted = ?", c.Params("slug"), false).
		First(&project).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Project not found")
		}
		return response.InternalServerError(c, "Failed to fetch project")
	}
	return response.Success(c, h.toResponse(&project))
}

// GetProject handles GET /api/v1/projects/:id
func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	var project model.Project
	if err := h.db.Preload("Category").Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order(`"order" ASC`)
	}).First(&project, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Project not found")
		}
		return response.InternalServerError(c, "Failed to fetch project")
	}
	return response.Success(c, h.toResponse(&project))
}

// CreateProject handles POST /api/v1/projects
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var req ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	if req.Title == "" {
		return response.FieldError(c, "title", "Title is required")
	}

	slug, err := services.UniqueSlug(h.db, "projects", req.Title, 0)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate slug")
	}

	project := model.Project{
		Title:            validation.SanitizeString(req.Title),
		Slug:             slug,
		ShortDescription: validation.SanitizeString(req.ShortDescription),
		LongDescription:  req.LongDescription,
		Status:           model.ProjectStatusPlanned,
		CategoryID:       req.CategoryID,
	}
	if req.Status != "" {
		project.Status = req.Status
	}
	if req.IsFeatured != nil {
		project.IsFeatured = *req.IsFeatured
	}
	if d, err := parseDate(req.StartDate); err == nil {
		project.StartDate = d
	}
	if d, err := parseDate(req.EndDate); err == nil {
		project.EndDate = d
	}

	if file, err := c.FormFile("cover_image"); err == nil {
		result := uploadvalidation.ValidateUpload(file, uploadvalidation.ImageLimits)
		if !result.Valid {
			return response.FieldError(c, "cover_image", result.Error)
		}
		key, err := services.StoreUpload(c.Context(), h.storage, "projects/covers", file)
		if err != nil {
			return response.InternalServerError(c, "Failed to store cover image")
		}
		project.CoverImage = key
	}

	if err := h.db.Create(&project).Error; err != nil {
		return response.InternalServerError(c, "Failed to create project")
	}

	return response.Created(c, h.toResponse(&project))
}

// UpdateProject handles PUT/PATCH /api/v1/projects/:id
// The slug is fixed at creation and never regenerated on update.
func (h *ProjectHandler) UpdateProject(c *fiber.Ctx) error {
	var project model.Project
	if err := h.db.First(&project, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Project not found")
		}
		return response.InternalServerError(c, "Failed to fetch project")
	}

	var req ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	if req.Title != "" {
		project.Title = validation.SanitizeString(req.Title)
	}
	if req.ShortDescription != "" {
		project.ShortDescription = validation.SanitizeString(req.ShortDescription)
	}
	if req.LongDescription != "" {
		project.LongDescription = req.LongDescription
	}
	if req.Status != "" {
		project.Status = req.Status
	}
	if req.CategoryID != nil {
		project.CategoryID = req.CategoryID
	}
	if req.IsFeatured != nil {
		project.IsFeatured = *req.IsFeatured
	}
	if req.IsDeleted != nil {
		project.IsDeleted = *req.IsDeleted
	}
	if d, err := parseDate(req.StartDate); err == nil {
		project.StartDate = d
	}
	if d, err := parseDate(req.EndDate); err == nil {
		project.EndDate = d
	}

	oldCover := project.CoverImage
	if file, err := c.FormFile("cover_image"); err == nil {
		result := uploadvalidation.ValidateUpload(file, uploadvalidation.ImageLimits)
		if !result.Valid {
			return response.FieldError(c, "cover_image", result.Error)
		}
		key, err := services.StoreUpload(c.Context(), h.storage, "projects/covers", file)
		if err != nil {
			return response.InternalServerError(c, "Failed to store cover image")
		}
		project.CoverImage = key
	}

	if err := h.db.Save(&project).Error; err != nil {
		return response.InternalServerError(c, "Failed to update project")
	}

	if oldCover != "" && oldCover != project.CoverImage {
		_ = h.storage.DeleteFile(c.Context(), oldCover)
	}

	return response.SuccessWithMessage(c, "Project updated successfully", h.toResponse(&project))
}

// DeleteProject handles DELETE /api/v1/projects/:id
func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	var project model.Project
	if err := h.db.Preload("Images").First(&project, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Project not found")
		}
		return response.InternalServerError(c, "Failed to fetch project")
	}

	if err := h.db.Select("Images").Delete(&project).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete project")
	}

	if project.CoverImage != "" {
		_ = h.storage.DeleteFile(c.Context(), project.CoverImage)
	}
	for _, img := range project.Images {
		if img.Image != "" {
			_ = h.storage.DeleteFile(c.Context(), img.Image)
		}
	}

	return response.SuccessWithMessage(c, "Project deleted successfully", nil)
}

// parseDate converts a YYYY-MM-DD string into a date column value.
// Empty input yields (nil, error) so callers can skip the assignment.
func parseDate(s string) (*datatypes.Date, error) {
	if s == "" {
		return nil, gorm.ErrInvalidValue
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	d := datatypes.Date(t)
	return &d, nil
}
