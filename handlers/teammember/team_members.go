package teammember

import (
	"github.com/cmspro/cmspro-api/model"
	"github.com/cmspro/cmspro-api/services"
	"github.com/cmspro/cmspro-api/utils/middleware"
	"github.com/cmspro/cmspro-api/utils/query"
	"github.com/cmspro/cmspro-api/utils/response"
	"github.com/cmspro/cmspro-api/utils/uploadvalidation"
	"github.com/cmspro/cmspro-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TeamMemberHandler handles team member requests
type TeamMemberHandler struct {
	db        *gorm.DB
	validator *validation.Validator
	storage   services.FileStorage
}

// NewTeamMemberHandler creates a new team member handler
func NewTeamMemberHandler(db *gorm.DB, storage services.FileStorage) *TeamMemberHandler {
	return &TeamMemberHandler{
		db:        db,
		validator: validation.NewValidator(),
		storage:   storage,
	}
}

// TeamMemberRequest represents the request body for team members
type TeamMemberRequest struct {
	Name         string `json:"name" form:"name" validate:"omitempty,max=150"`
	Position     string `json:"position" form:"position" validate:"omitempty,max=150"`
	Bio          string `json:"bio" form:"bio"`
	LinkedinURL  string `json:"linkedin_url" form:"linkedin_url" validate:"omitempty,url,max=255"`
	FacebookURL  string `json:"facebook_url" form:"facebook_url" validate:"omitempty,url,max=255"`
	InstagramURL string `json:"instagram_url" form:"instagram_url" validate:"omitempty,url,max=255"`
	IsActive     *bool  `json:"is_active" form:"is_active"`
	Order        *uint  `json:"order" form:"order"`
}

// TeamMemberResponse wraps a team member with the resolved photo URL
type TeamMemberResponse struct {
	model.TeamMember
	PhotoURL *string `json:"photo_url"`
}

func (h *TeamMemberHandler) toResponse(m *model.TeamMember) TeamMemberResponse {
	return TeamMemberResponse{
		TeamMember: *m,
		PhotoURL:   services.ResolveFileURL(h.storage, m.Photo),
	}
}

// ListTeamMembers handles GET /api/v1/team-members
func (h *TeamMemberHandler) ListTeamMembers(c *fiber.Ctx) error {
	page, limit := query.Pagination(c)

	q := h.db.Model(&model.TeamMember{})
	if _, authed := middleware.GetUserID(c); !authed {
		// Anonymous visitors only see active members.
		q = q.Where("is_active = ?", true)
	} else if active, ok := query.ParseBool(c, "is_active"); ok {
		q = q.Where("is_active = ?", active)
	}
	q = query.ApplySearch(c, q, "name", "position")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count team members")
	}

	var members []model.TeamMember
	q = query.ApplyOrdering(c, q, []string{"order", "name"}, `"order" ASC, name ASC`)
	if err := q.Limit(limit).Offset((page - 1) * limit).Find(&members).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch team members")
	}

	out := make([]TeamMemberResponse, 0, len(members))
	for i := range members {
		out = append(out, h.toResponse(&members[i]))
	}
	return response.Paginated(c, out, response.CalculatePagination(page, limit, total))
}

// GetTeamMember handles GET /api/v1/team-members/:id
func (h *TeamMemberHandler) GetTeamMember(c *fiber.Ctx) error {
	var member model.TeamMember
	if err := h.db.First(&member, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Team member not found")
		}
		return response.InternalServerError(c, "Failed to fetch team member")
	}
	return response.Success(c, h.toResponse(&member))
}

// CreateTeamMember handles POST /api/v1/team-members
func (h *TeamMemberHandler) CreateTeamMember(c *fiber.Ctx) error {
	var req TeamMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	if req.Name == "" || req.Position == "" {
		return response.BadRequest(c, "Name and position are required")
	}

	member := model.TeamMember{
		Name:         validation.SanitizeString(req.Name),
		Position:     validation.SanitizeString(req.Position),
		Bio:          req.Bio,
		LinkedinURL:  req.LinkedinURL,
		FacebookURL:  req.FacebookURL,
		InstagramURL: req.InstagramURL,
		IsActive:     true,
	}
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}
	if req.Order != nil {
		member.Order = *req.Order
	}

	if file, err := c.FormFile("photo"); err == nil {
		result := uploadvalidation.ValidateUpload(file, uploadvalidation.ImageLimits)
		if !result.Valid {
			return response.FieldError(c, "photo", result.Error)
		}
		key, err := services.StoreUpload(c.Context(), h.storage, "team", file)
		if err != nil {
			return response.InternalServerError(c, "Failed to store photo")
		}
		member.Photo = key
	}

	if err := h.db.Create(&member).Error; err != nil {
		return response.InternalServerError(c, "Failed to create team member")
	}

	return response.Created(c, h.toResponse(&member))
}

// UpdateTeamMember handles PUT/PATCH /api/v1/team-members/:id
func (h *TeamMemberHandler) UpdateTeamMember(c *fiber.Ctx) error {
	var member model.TeamMember
	if err := h.db.First(&member, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Team member not found")
		}
		return response.InternalServerError(c, "Failed to fetch team member")
	}

	var req TeamMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	if req.Name != "" {
		member.Name = validation.SanitizeString(req.Name)
	}
	if req.Position != "" {
		member.Position = validation.SanitizeString(req.Position)
	}
	if req.Bio != "" {
		member.Bio = req.Bio
	}
	if req.LinkedinURL != "" {
		member.LinkedinURL = req.LinkedinURL
	}
	if req.FacebookURL != "" {
		member.FacebookURL = req.FacebookURL
	}
	if req.InstagramURL != "" {
		member.InstagramURL = req.InstagramURL
	}
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}
	if req.Order != nil {
		member.Order = *req.Order
	}

	oldPhoto := member.Photo
	if file, err := c.FormFile("photo"); err == nil {
		result := uploadvalidation.ValidateUpload(file, uploadvalidation.ImageLimits)
		if !result.Valid {
			return response.FieldError(c, "photo", result.Error)
		}
		key, err := services.StoreUpload(c.Context(), h.storage, "team", file)
		if err != nil {
			return response.InternalServerError(c, "Failed to store photo")
		}
		member.Photo = key
	}

	if err := h.db.Save(&member).Error; err != nil {
		return response.InternalServerError(c, "Failed to update team member")
	}

	if oldPhoto != "" && oldPhoto != member.Photo {
		_ = h.storage.DeleteFile(c.Context(), oldPhoto)
	}

	return response.SuccessWithMessage(c, "Team member updated successfully", h.toResponse(&member))
}

// DeleteTeamMember handles DELETE /api/v1/team-members/:id
func (h *TeamMemberHandler) DeleteTeamMember(c *fiber.Ctx) error {
	var member model.TeamMember
	if err := h.db.First(&member, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Team member not found")
		}
		return response.InternalServerError(c, "Failed to fetch team member")
	}

	if err := h.db.Delete(&member).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete team member")
	}

	if member.Photo != "" {
		_ = h.storage.DeleteFile(c.Context(), member.Photo)
	}

	return response.SuccessWithMessage(c, "Team member deleted successfully", nil)
}
