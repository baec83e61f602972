package career

import (
	"time"

	"github.com/cmspro/cmspro-api/model"
	"github.com/cmspro/cmspro-api/services"
	"github.com/cmspro/cmspro-api/utils/query"
	"github.com/cmspro/cmspro-api/utils/response"
	"github.com/cmspro/cmspro-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CareerHandler handles job opening requests
type CareerHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewCareerHandler creates a new career handler
func NewCareerHandler(db *gorm.DB) *CareerHandler {
	return &CareerHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CareerRequest represents the request body for creating or updating a job opening
type CareerRequest struct {
	Title               string `json:"title" form:"title" validate:"omitempty,max=255"`
	Location            string `json:"location" form:"location" validate:"omitempty,max=200"`
	JobType             string `json:"job_type" form:"job_type" validate:"omitempty,oneof=full_time part_time contract internship"`
	Department          string `json:"department" form:"department" validate:"omitempty,max=100"`
	ExperienceRequired  string `json:"experience_required" form:"experience_required" validate:"omitempty,max=100"`
	SalaryRange         string `json:"salary_range" form:"salary_range" validate:"omitempty,max=100"`
	ShortDescription    string `json:"short_description" form:"short_description" validate:"omitempty,max=500"`
	Requirements        string `json:"requirements" form:"requirements"`
	Responsibilities    string `json:"responsibilities" form:"responsibilities"`
	Qualifications      string `json:"qualifications" form:"qualifications"`
	Benefits            string `json:"benefits" form:"benefits"`
	ApplicationEmail    string `json:"application_email" form:"application_email" validate:"omitempty,email"`
	ApplicationURL      string `json:"application_url" form:"application_url" validate:"omitempty,url,max=255"`
	ApplicationDeadline string `json:"application_deadline" form:"application_deadline" validate:"omitempty,datetime=2006-01-02"`
	Status              string `json:"status" form:"status" validate:"omitempty,oneof=draft active closed"`
	IsFeatured          *bool  `json:"is_featured" form:"is_featured"`
	Order               *uint  `json:"order" form:"order"`
}

// CareerResponse augments a career with the derived expiry flag
type CareerResponse struct {
	model.Career
	IsExpired bool `json:"is_expired"`
}

func toResponse(c *model.Career) CareerResponse {
	return CareerResponse{Career: *c, IsExpired: c.IsExpired()}
}

func toResponseList(careers []model.Career) []CareerResponse {
	out := make([]CareerResponse, 0, len(careers))
	for i := range careers {
		out = append(out, toResponse(&careers[i]))
	}
	return out
}

// ListCareers handles GET /api/v1/careers
func (h *CareerHandler) ListCareers(c *fiber.Ctx) error {
	page, limit := query.Pagination(c)

	q := h.db.Model(&model.Career{})
	q = query.FilterEqual(c, q, map[string]string{
		"status":   "status",
		"job_type": "job_type",
	})
	q = query.FilterContains(c, q, "location", "location")
	if featured, ok := query.ParseBool(c, "is_featured"); ok {
		q = q.Where("is_featured = ?", featured)
	}
	q = query.ApplySearch(c, q, "title", "short_description", "department")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count careers")
	}

	var careers []model.Career
	q = query.ApplyOrdering(c, q, []string{"created_at", "updated_at", "published_at", "order"}, `is_featured DESC, "order" ASC, created_at DESC`)
	if err := q.Limit(limit).Offset((page - 1) * limit).Find(&careers).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch careers")
	}

	return response.Paginated(c, toResponseList(careers), response.CalculatePagination(page, limit, total))
}

// ListActiveCareers handles GET /api/v1/careers/active
func (h *CareerHandler) ListActiveCareers(c *fiber.Ctx) error {
	page, limit := query.Pagination(c)

	q := h.db.Model(&model.Career{}).Where("status = ?", model.CareerStatusActive)
	if jobType := c.Query("job_type"); jobType != "" {
		q = q.Where("job_type = ?", jobType)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count careers")
	}

	var careers []model.Career
	if err := q.Order(`is_featured DESC, "order" ASC, created_at DESC`).
		Limit(limit).Offset((page - 1) * limit).
		Find(&careers).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch careers")
	}

	return response.Paginated(c, toResponseList(careers), response.CalculatePagination(page, limit, total))
}

// GetCareerBySlug handles GET /api/v1/careers/slug/:slug and atomically
// bumps the view counter on every hit.
func (h *CareerHandler) GetCareerBySlug(c *fiber.Ctx) error {
	var career model.Career
	if err := h.db.Where("slug = ? AND status = ?", c.Params("slug"), model.CareerStatusActive).
		First(&career).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Career not found")
		}
		return response.InternalServerError(c, "Failed to fetch career")
	}

	if err := h.db.Model(&career).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error; err != nil {
		return response.InternalServerError(c, "Failed to record view")
	}
	career.ViewCount++

	return response.Success(c, toResponse(&career))
}

// GetCareer handles GET /api/v1/careers/:id
func (h *CareerHandler) GetCareer(c *fiber.Ctx) error {
	var career model.Career
	if err := h.db.First(&career, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Career not found")
		}
		return response.InternalServerError(c, "Failed to fetch career")
	}
	return response.Success(c, toResponse(&career))
}

// IncrementCareerView handles POST /api/v1/careers/:id/increment-view
func (h *CareerHandler) IncrementCareerView(c *fiber.Ctx) error {
	result := h.db.Model(&model.Career{}).
		Where("id = ?", c.Params("id")).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to record view")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Career not found")
	}

	var career model.Career
	if err := h.db.First(&career, "id = ?", c.Params("id")).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch career")
	}
	return response.Success(c, fiber.Map{"view_count": career.ViewCount})
}

// CreateCareer handles POST /api/v1/careers
func (h *CareerHandler) CreateCareer(c *fiber.Ctx) error {
	var req CareerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	if req.Title == "" {
		return response.FieldError(c, "title", "Title is required")
	}
	if req.Location == "" {
		return response.FieldError(c, "location", "Location is required")
	}
	if req.Requirements == "" {
		return response.FieldError(c, "requirements", "Requirements are required")
	}

	slug, err := services.UniqueSlug(h.db, "careers", req.Title, 0)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate slug")
	}

	career := model.Career{
		Title:              validation.SanitizeString(req.Title),
		Slug:               slug,
		Location:           validation.SanitizeString(req.Location),
		JobType:            model.JobTypeFullTime,
		Department:         validation.SanitizeString(req.Department),
		ExperienceRequired: req.ExperienceRequired,
		SalaryRange:        req.SalaryRange,
		ShortDescription:   req.ShortDescription,
		Requirements:       req.Requirements,
		Responsibilities:   req.Responsibilities,
		Qualifications:     req.Qualifications,
		Benefits:           req.Benefits,
		ApplicationEmail:   req.ApplicationEmail,
		ApplicationURL:     req.ApplicationURL,
		Status:             model.CareerStatusDraft,
	}
	if req.JobType != "" {
		career.JobType = req.JobType
	}
	if req.Status != "" {
		career.Status = req.Status
	}
	if req.IsFeatured != nil {
		career.IsFeatured = *req.IsFeatured
	}
	if req.Order != nil {
		career.Order = *req.Order
	}
	if d, err := parseDate(req.ApplicationDeadline); err == nil {
		career.ApplicationDeadline = d
	}
	career.PublishedAt = services.ResolvePublishedAt(career.Status, model.CareerStatusActive, nil)

	if err := h.db.Create(&career).Error; err != nil {
		return response.InternalServerError(c, "Failed to create career")
	}

	return response.Created(c, toResponse(&career))
}

// UpdateCareer handles PUT/PATCH /api/v1/careers/:id
// The slug is fixed at creation; published_at follows the status.
func (h *CareerHandler) UpdateCareer(c *fiber.Ctx) error {
	var career model.Career
	if err := h.db.First(&career, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Career not found")
		}
		return response.InternalServerError(c, "Failed to fetch career")
	}

	var req CareerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	if req.Title != "" {
		career.Title = validation.SanitizeString(req.Title)
	}
	if req.Location != "" {
		career.Location = validation.SanitizeString(req.Location)
	}
	if req.JobType != "" {
		career.JobType = req.JobType
	}
	if req.Department != "" {
		career.Department = validation.SanitizeString(req.Department)
	}
	if req.ExperienceRequired != "" {
		career.ExperienceRequired = req.ExperienceRequired
	}
	if req.SalaryRange != "" {
		career.SalaryRange = req.SalaryRange
	}
	if req.ShortDescription != "" {
		career.ShortDescription = req.ShortDescription
	}
	if req.Requirements != "" {
		career.Requirements = req.Requirements
	}
	if req.Responsibilities != "" {
		career.Responsibilities = req.Responsibilities
	}
	if req.Qualifications != "" {
		career.Qualifications = req.Qualifications
	}
	if req.Benefits != "" {
		career.Benefits = req.Benefits
	}
	if req.ApplicationEmail != "" {
		career.ApplicationEmail = req.ApplicationEmail
	}
	if req.ApplicationURL != "" {
		career.ApplicationURL = req.ApplicationURL
	}
	if req.Status != "" {
		career.Status = req.Status
	}
	if req.IsFeatured != nil {
		career.IsFeatured = *req.IsFeatured
	}
	if req.Order != nil {
		career.Order = *req.Order
	}
	if d, err := parseDate(req.ApplicationDeadline); err == nil {
		career.ApplicationDeadline = d
	}
	career.PublishedAt = services.ResolvePublishedAt(career.Status, model.CareerStatusActive, career.PublishedAt)

	if err := h.db.Save(&career).Error; err != nil {
		return response.InternalServerError(c, "Failed to update career")
	}

	return response.SuccessWithMessage(c, "Career updated successfully", toResponse(&career))
}

// DeleteCareer handles DELETE /api/v1/careers/:id
// Applications cascade with the opening.
func (h *CareerHandler) DeleteCareer(c *fiber.Ctx) error {
	var career model.Career
	if err := h.db.First(&career, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Career not found")
		}
		return response.InternalServerError(c, "Failed to fetch career")
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("career_id = ?", career.ID).
			Delete(&model.JobApplication{}).Error; err != nil {
			return err
		}
		return tx.Delete(&career).Error
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to delete career")
	}

	return response.SuccessWithMessage(c, "Career deleted successfully", nil)
}

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
