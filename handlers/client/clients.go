package client

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

// ClientHandler handles client company requests
type ClientHandler struct {
	db        *gorm.DB
	validator *validation.Validator
	storage   services.FileStorage
}

// NewClientHandler creates a new client handler
func NewClientHandler(db *gorm.DB, storage services.FileStorage) *ClientHandler {
	return &ClientHandler{
		db:        db,
		validator: validation.NewValidator(),
		storage:   storage,
	}
}

// ClientRequest represents the request body for client companies
type ClientRequest struct {
	Name     string `json:"name" form:"name" validate:"omitempty,max=255"`
	Address  string `json:"address" form:"address"`
	Phone    string `json:"phone" form:"phone" validate:"omitempty,max=50"`
	About    string `json:"about" form:"about"`
	Website  string `json:"website" form:"website" validate:"omitempty,url,max=255"`
	IsActive *bool  `json:"is_active" form:"is_active"`
	Order    *uint  `json:"order" form:"order"`
}

// ClientResponse wraps a client with the resolved logo URL
type ClientResponse struct {
	model.Client
	LogoURL *string `json:"logo_url"`
}

func (h *ClientHandler) toResponse(cl *model.Client) ClientResponse {
	return ClientResponse{
		Client:  *cl,
		LogoURL: services.ResolveFileURL(h.storage, cl.Logo),
	}
}

// ListClients handles GET /api/v1/clients
func (h *ClientHandler) ListClients(c *fiber.Ctx) error {
	page, limit := query.Pagination(c)

	q := h.db.Model(&model.Client{})
	if _, authed := middleware.GetUserID(c); !authed {
		// Anonymous visitors only see active clients.
		q = q.Where("is_active = ?", true)
	} else if active, ok := query.ParseBool(c, "is_active"); ok {
		q = q.Where("is_active = ?", active)
	}
	q = query.ApplySearch(c, q, "name", "about")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count clients")
	}

	var clients []model.Client
	q = query.ApplyOrdering(c, q, []string{"order", "name", "created_at"}, `"order" ASC, name ASC`)
	if err := q.Limit(limit).Offset((page - 1) * limit).Find(&clients).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch clients")
	}

	out := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		out = append(out, h.toResponse(&clients[i]))
	}
	return response.Paginated(c, out, response.CalculatePagination(page, limit, total))
}

// GetClient handles GET /api/v1/clients/:id
func (h *ClientHandler) GetClient(c *fiber.Ctx) error {
	var cl model.Client
	if err := h.db.First(&cl, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Client not found")
		}
		return response.InternalServerError(c, "Failed to fetch client")
	}
	return response.Success(c, h.toResponse(&cl))
}

// CreateClient handles POST /api/v1/clients
func (h *ClientHandler) CreateClient(c *fiber.Ctx) error {
	var req ClientRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	if req.Name == "" {
		return response.FieldError(c, "name", "Name is required")
	}

	var existing model.Client
	if err := h.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return response.Conflict(c, "Client with this name already exists")
	}

	cl := model.Client{
		Name:     validation.SanitizeString(req.Name),
		Address:  req.Address,
		Phone:    validation.SanitizeString(req.Phone),
		About:    req.About,
		Website:  req.Website,
		IsActive: true,
	}
	if req.IsActive != nil {
		cl.IsActive = *req.IsActive
	}
	if req.Order != nil {
		cl.Order = *req.Order
	}

	if file, err := c.FormFile("logo"); err == nil {
		result := uploadvalidation.ValidateUpload(file, uploadvalidation.ImageLimits)
		if !result.Valid {
			return response.FieldError(c, "logo", result.Error)
		}
		key, err := services.StoreUpload(c.Context(), h.storage, "clients", file)
		if err != nil {
			return response.InternalServerError(c, "Failed to store logo")
		}
		cl.Logo = key
	}

	if err := h.db.Create(&cl).Error; err != nil {
		return response.InternalServerError(c, "Failed to create client")
	}

	return response.Created(c, h.toResponse(&cl))
}

// UpdateClient handles PUT/PATCH /api/v1/clients/:id
func (h *ClientHandler) UpdateClient(c *fiber.Ctx) error {
	var cl model.Client
	if err := h.db.First(&cl, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Client not found")
		}
		return response.InternalServerError(c, "Failed to fetch client")
	}

	var req ClientRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	if req.Name != "" && req.Name != cl.Name {
		var existing model.Client
		if err := h.db.Where("name = ? AND id <> ?", req.Name, cl.ID).First(&existing).Error; err == nil {
			return response.Conflict(c, "Client with this name already exists")
		}
		cl.Name = validation.SanitizeString(req.Name)
	}
	if req.Address != "" {
		cl.Address = req.Address
	}
	if req.Phone != "" {
		cl.Phone = validation.SanitizeString(req.Phone)
	}
	if req.About != "" {
		cl.About = req.About
	}
	if req.Website != "" {
		cl.Website = req.Website
	}
	if req.IsActive != nil {
		cl.IsActive = *req.IsActive
	}
	if req.Order != nil {
		cl.Order = *req.Order
	}

	oldLogo := cl.Logo
	if file, err := c.FormFile("logo"); err == nil {
		result := uploadvalidation.ValidateUpload(file, uploadvalidation.ImageLimits)
		if !result.Valid {
			return response.FieldError(c, "logo", result.Error)
		}
		key, err := services.StoreUpload(c.Context(), h.storage, "clients", file)
		if err != nil {
			return response.InternalServerError(c, "Failed to store logo")
		}
		cl.Logo = key
	}

	if err := h.db.Save(&cl).Error; err != nil {
		return response.InternalServerError(c, "Failed to update client")
	}

	if oldLogo != "" && oldLogo != cl.Logo {
		_ = h.storage.DeleteFile(c.Context(), oldLogo)
	}

	return response.SuccessWithMessage(c, "Client updated successfully", h.toResponse(&cl))
}

// DeleteClient handles DELETE /api/v1/clients/:id
func (h *ClientHandler) DeleteClient(c *fiber.Ctx) error {
	var cl model.Client
	if err := h.db.First(&cl, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Client not found")
		}
		return response.InternalServerError(c, "Failed to fetch client")
	}

	if err := h.db.Delete(&cl).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete client")
	}

	if cl.Logo != "" {
		_ = h.storage.DeleteFile(c.Context(), cl.Logo)
	}

	return response.SuccessWithMessage(c, "Client deleted successfully", nil)
}
