package jobapplication

import (
	"io"
	"time"

	"github.com/cmspro/cmspro-api/model"
	"github.com/cmspro/cmspro-api/services"
	"github.com/cmspro/cmspro-api/utils/query"
	"github.com/cmspro/cmspro-api/utils/response"
	"github.com/cmspro/cmspro-api/utils/sanitize"
	"github.com/cmspro/cmspro-api/utils/uploadvalidation"
	"github.com/cmspro/cmspro-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ApplicationHandler handles job application requests
type ApplicationHandler struct {
	db        *gorm.DB
	validator *validation.Validator
	storage   services.FileStorage
}

// NewApplicationHandler creates a new job application handler
func NewApplicationHandler(db *gorm.DB, storage services.FileStorage) *ApplicationHandler {
	return &ApplicationHandler{
		db:        db,
		validator: validation.NewValidator(),
		storage:   storage,
	}
}

// CreateApplicationRequest is the public submission form. The resume comes
// in as a multipart file, not a body field.
type CreateApplicationRequest struct {
	CareerID    uint   `json:"career_id" form:"career_id" validate:"required"`
	FullName    string `json:"full_name" form:"full_name" validate:"required,max=255"`
	Email       string `json:"email" form:"email" validate:"required,email"`
	Phone       string `json:"phone" form:"phone" validate:"required,max=50"`
	CoverLetter string `json:"cover_letter" form:"cover_letter"`
}

// UpdateApplicationRequest is the admin-side update for notes and status.
type UpdateApplicationRequest struct {
	Status     string `json:"status" form:"status" validate:"omitempty,oneof=pending reviewing shortlisted rejected accepted"`
	AdminNotes string `json:"admin_notes" form:"admin_notes"`
}

// ApplicationResponse augments an application with a resolved resume URL.
type ApplicationResponse struct {
	model.JobApplication
	ResumeURL *string `json:"resume_url"`
}

func (h *ApplicationHandler) toResponse(a *model.JobApplication) ApplicationResponse {
	return ApplicationResponse{
		JobApplication: *a,
		ResumeURL:      services.ResolveFileURL(h.storage, a.Resume),
	}
}

func (h *ApplicationHandler) toResponseList(apps []model.JobApplication) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for i := range apps {
		out = append(out, h.toResponse(&apps[i]))
	}
	return out
}

// CreateApplication handles POST /api/v1/job-applications — the public
// submission endpoint. The target career must exist, be active and not be
// past its deadline.
func (h *ApplicationHandler) CreateApplication(c *fiber.Ctx) error {
	var req CreateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	var career model.Career
	if err := h.db.First(&career, "id = ?", req.CareerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Career not found")
		}
		return response.InternalServerError(c, "Failed to fetch career")
	}
	if career.Status != model.CareerStatusActive {
		return response.FieldError(c, "career_id", "This position is not accepting applications")
	}
	if career.IsExpired() {
		return response.FieldError(c, "career_id", "The application deadline for this position has passed")
	}

	file, err := c.FormFile("resume")
	if err != nil {
		return response.FieldError(c, "resume", "Resume file is required")
	}

	src, err := file.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to read resume")
	}
	content, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		return response.InternalServerError(c, "Failed to read resume")
	}

	result := uploadvalidation.ValidateResume(file, content)
	if !result.Valid {
		return response.FieldError(c, "resume", result.Error)
	}

	key, err := services.StoreUpload(c.Context(), h.storage, "applications/resumes", file)
	if err != nil {
		return response.InternalServerError(c, "Failed to store resume")
	}

	app := model.JobApplication{
		CareerID:    career.ID,
		FullName:    validation.SanitizeString(req.FullName),
		Email:       req.Email,
		Phone:       validation.SanitizeString(req.Phone),
		Resume:      key,
		CoverLetter: sanitize.StripHTML(req.CoverLetter),
		Status:      model.ApplicationStatusPending,
	}

	if err := h.db.Create(&app).Error; err != nil {
		_ = h.storage.DeleteFile(c.Context(), key)
		return response.InternalServerError(c, "Failed to submit application")
	}

	return response.Created(c, h.toResponse(&app))
}

// ListApplications handles GET /api/v1/job-applications
func (h *ApplicationHandler) ListApplications(c *fiber.Ctx) error {
	page, limit := query.Pagination(c)

	q := h.db.Model(&model.JobApplication{})
	q = query.FilterEqual(c, q, map[string]string{
		"status": "status",
		"career": "career_id",
		"email":  "email",
	})
	q = query.ApplySearch(c, q, "full_name", "email", "phone")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count applications")
	}

	var apps []model.JobApplication
	q = query.ApplyOrdering(c, q, []string{"created_at", "updated_at", "reviewed_at", "status"}, "created_at DESC")
	if err := q.Preload("Career").Limit(limit).Offset((page - 1) * limit).Find(&apps).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch applications")
	}

	return response.Paginated(c, h.toResponseList(apps), response.CalculatePagination(page, limit, total))
}

// ListApplicationsByCareer handles GET /api/v1/job-applications/by-career/:careerID
func (h *ApplicationHandler) ListApplicationsByCareer(c *fiber.Ctx) error {
	var career model.Career
	if err := h.db.First(&career, "id = ?", c.Params("careerID")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Career not found")
		}
		return response.InternalServerError(c, "Failed to fetch career")
	}

	page, limit := query.Pagination(c)

	q := h.db.Model(&model.JobApplication{}).Where("career_id = ?", career.ID)
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count applications")
	}

	var apps []model.JobApplication
	if err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&apps).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch applications")
	}

	return response.Paginated(c, h.toResponseList(apps), response.CalculatePagination(page, limit, total))
}

// GetApplication handles GET /api/v1/job-applications/:id
func (h *ApplicationHandler) GetApplication(c *fiber.Ctx) error {
	var app model.JobApplication
	if err := h.db.Preload("Career").First(&app, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Application not found")
		}
		return response.InternalServerError(c, "Failed to fetch application")
	}
	return response.Success(c, h.toResponse(&app))
}

// UpdateApplication handles PUT/PATCH /api/v1/job-applications/:id. The
// first transition away from pending stamps ReviewedAt; later transitions
// leave the original timestamp alone.
func (h *ApplicationHandler) UpdateApplication(c *fiber.Ctx) error {
	var app model.JobApplication
	if err := h.db.First(&app, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Application not found")
		}
		return response.InternalServerError(c, "Failed to fetch application")
	}

	var req UpdateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	if req.Status != "" {
		if app.ReviewedAt == nil && req.Status != model.ApplicationStatusPending {
			now := time.Now()
			app.ReviewedAt = &now
		}
		app.Status = req.Status
	}
	if req.AdminNotes != "" {
		app.AdminNotes = req.AdminNotes
	}

	if err := h.db.Save(&app).Error; err != nil {
		return response.InternalServerError(c, "Failed to update application")
	}

	return response.SuccessWithMessage(c, "Application updated successfully", h.toResponse(&app))
}

// DeleteApplication handles DELETE /api/v1/job-applications/:id
func (h *ApplicationHandler) DeleteApplication(c *fiber.Ctx) error {
	var app model.JobApplication
	if err := h.db.First(&app, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Application not found")
		}
		return response.InternalServerError(c, "Failed to fetch application")
	}

	if err := h.db.Delete(&app).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete application")
	}

	if app.Resume != "" {
		_ = h.storage.DeleteFile(c.Context(), app.Resume)
	}

	return response.SuccessWithMessage(c, "Application deleted successfully", nil)
}
