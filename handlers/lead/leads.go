package lead

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

// LeadHandler handles contact-form lead requests
type LeadHandler struct {
	db        *gorm.DB
	validator *validation.Validator
	storage   services.FileStorage
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(db *gorm.DB, storage services.FileStorage) *LeadHandler {
	return &LeadHandler{
		db:        db,
		validator: validation.NewValidator(),
		storage:   storage,
	}
}

// CreateLeadRequest is the public contact-form payload
type CreateLeadRequest struct {
	Name    string `json:"name" form:"name" validate:"required,max=200"`
	Email   string `json:"email" form:"email" validate:"required,email"`
	Phone   string `json:"phone" form:"phone" validate:"omitempty,max=50"`
	Message string `json:"message" form:"message" validate:"required"`
	Source  string `json:"source" form:"source" validate:"omitempty,max=100"`
}

// UpdateLeadRequest is the admin triage payload
type UpdateLeadRequest struct {
	Status string `json:"status" validate:"omitempty,oneof=new contacted qualified lost"`
	IsRead *bool  `json:"is_read"`
}

// LeadResponse wraps a lead with its resolved attachment URL
type LeadResponse struct {
	model.Lead
	AttachedFileURL *string `json:"attached_file_url"`
}

func (h *LeadHandler) toResponse(l *model.Lead) LeadResponse {
	return LeadResponse{
		Lead:            *l,
		AttachedFileURL: services.ResolveFileURL(h.storage, l.AttachedFile),
	}
}

// ListLeads handles GET /api/v1/leads
func (h *LeadHandler) ListLeads(c *fiber.Ctx) error {
	page, limit := query.Pagination(c)

	q := h.db.Model(&model.Lead{})
	q = query.FilterEqual(c, q, map[string]string{
		"status": "status",
		"email":  "email",
	})
	if read, ok := query.ParseBool(c, "is_read"); ok {
		q = q.Where("is_read = ?", read)
	}
	q = query.ApplySearch(c, q, "name", "email", "message")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count leads")
	}

	var leads []model.Lead
	q = query.ApplyOrdering(c, q, []string{"created_at", "name", "status"}, "created_at DESC")
	if err := q.Limit(limit).Offset((page - 1) * limit).Find(&leads).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch leads")
	}

	out := make([]LeadResponse, 0, len(leads))
	for i := range leads {
		out = append(out, h.toResponse(&leads[i]))
	}
	return response.Paginated(c, out, response.CalculatePagination(page, limit, total))
}

// GetLead handles GET /api/v1/leads/:id
func (h *LeadHandler) GetLead(c *fiber.Ctx) error {
	var lead model.Lead
	if err := h.db.First(&lead, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Lead not found")
		}
		return response.InternalServerError(c, "Failed to fetch lead")
	}
	return response.Success(c, h.toResponse(&lead))
}

// CreateLead handles POST /api/v1/leads — the public contact form.
func (h *LeadHandler) CreateLead(c *fiber.Ctx) error {
	var req CreateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	lead := model.Lead{
		Name:    validation.SanitizeString(req.Name),
		Email:   validation.SanitizeString(req.Email),
		Phone:   validation.SanitizeString(req.Phone),
		Message: req.Message,
		Source:  validation.SanitizeString(req.Source),
		Status:  model.LeadStatusNew,
	}

	if file, err := c.FormFile("attached_file"); err == nil {
		result := uploadvalidation.ValidateUpload(file, uploadvalidation.AttachmentLimits)
		if !result.Valid {
			return response.FieldError(c, "attached_file", result.Error)
		}
		key, err := services.StoreUpload(c.Context(), h.storage, "leads", file)
		if err != nil {
			return response.InternalServerError(c, "Failed to store attachment")
		}
		lead.AttachedFile = key
	}

	if err := h.db.Create(&lead).Error; err != nil {
		return response.InternalServerError(c, "Failed to create lead")
	}

	return response.Created(c, h.toResponse(&lead))
}

// UpdateLead handles PUT/PATCH /api/v1/leads/:id
func (h *LeadHandler) UpdateLead(c *fiber.Ctx) error {
	var lead model.Lead
	if err := h.db.First(&lead, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Lead not found")
		}
		return response.InternalServerError(c, "Failed to fetch lead")
	}

	var req UpdateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	if req.Status != "" {
		lead.Status = req.Status
	}
	if req.IsRead != nil {
		lead.IsRead = *req.IsRead
	}

	if err := h.db.Save(&lead).Error; err != nil {
		return response.InternalServerError(c, "Failed to update lead")
	}

	return response.SuccessWithMessage(c, "Lead updated successfully", h.toResponse(&lead))
}

// MarkAllLeadsRead handles POST /api/v1/leads/mark-read. It flips every
// unread lead to read in a single update.
func (h *LeadHandler) MarkAllLeadsRead(c *fiber.Ctx) error {
	result := h.db.Model(&model.Lead{}).Where("is_read = ?", false).Update("is_read", true)
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to update leads")
	}

	return response.SuccessWithMessage(c, "All leads marked as read", fiber.Map{
		"updated": result.RowsAffected,
	})
}

// MarkLeadRead handles POST /api/v1/leads/:id/mark-read
func (h *LeadHandler) MarkLeadRead(c *fiber.Ctx) error {
	var lead model.Lead
	if err := h.db.First(&lead, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Lead not found")
		}
		return response.InternalServerError(c, "Failed to fetch lead")
	}

	if !lead.IsRead {
		if err := h.db.Model(&lead).Update("is_read", true).Error; err != nil {
			return response.InternalServerError(c, "Failed to update lead")
		}
		lead.IsRead = true
	}

	return response.SuccessWithMessage(c, "Lead marked as read", h.toResponse(&lead))
}

// DeleteLead handles DELETE /api/v1/leads/:id
func (h *LeadHandler) DeleteLead(c *fiber.Ctx) error {
	var lead model.Lead
	if err := h.db.First(&lead, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Lead not found")
		}
		return response.InternalServerError(c, "Failed to fetch lead")
	}

	if err := h.db.Delete(&lead).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete lead")
	}

	if lead.AttachedFile != "" {
		_ = h.storage.DeleteFile(c.Context(), lead.AttachedFile)
	}

	return response.SuccessWithMessage(c, "Lead deleted successfully", nil)
}
