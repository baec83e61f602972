package site

import (
	"github.com/cmspro/cmspro-api/model"
	"github.com/cmspro/cmspro-api/services"
	"github.com/cmspro/cmspro-api/utils/response"
	"github.com/cmspro/cmspro-api/utils/uploadvalidation"
	"github.com/cmspro/cmspro-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SiteHandler handles the site logo and configuration singletons
type SiteHandler struct {
	logos     *services.SiteLogoService
	config    *services.SiteConfigService
	storage   services.FileStorage
	validator *validation.Validator
}

// NewSiteHandler creates a new site handler
func NewSiteHandler(logos *services.SiteLogoService, config *services.SiteConfigService, storage services.FileStorage) *SiteHandler {
	return &SiteHandler{
		logos:     logos,
		config:    config,
		storage:   storage,
		validator: validation.NewValidator(),
	}
}

// SiteLogoResponse wraps the logo with its resolved URL
type SiteLogoResponse struct {
	model.SiteLogo
	LogoURL *string `json:"logo_url"`
}

func (h *SiteHandler) toLogoResponse(l *model.SiteLogo) SiteLogoResponse {
	return SiteLogoResponse{
		SiteLogo: *l,
		LogoURL:  services.ResolveFileURL(h.storage, l.Logo),
	}
}

// GetLogo handles GET /api/v1/site-logo — public, 404 when unset.
func (h *SiteHandler) GetLogo(c *fiber.Ctx) error {
	logo, err := h.logos.Get(c.Context())
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Site logo not set")
		}
		return response.InternalServerError(c, "Failed to fetch site logo")
	}
	return response.Success(c, h.toLogoResponse(logo))
}

// GetLogoByID handles GET /api/v1/site-logo/:id
func (h *SiteHandler) GetLogoByID(c *fiber.Ctx) error {
	logo, err := h.logos.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Site logo not found")
		}
		return response.InternalServerError(c, "Failed to fetch site logo")
	}
	return response.Success(c, h.toLogoResponse(logo))
}

// UploadLogo handles POST /api/v1/site-logo. Uploading replaces whatever
// logo exists, so the table never holds more than one row.
func (h *SiteHandler) UploadLogo(c *fiber.Ctx) error {
	file, err := c.FormFile("logo")
	if err != nil {
		return response.FieldError(c, "logo", "Logo file is required")
	}

	result := uploadvalidation.ValidateUpload(file, uploadvalidation.ImageLimits)
	if !result.Valid {
		return response.FieldError(c, "logo", result.Error)
	}

	key, err := services.StoreUpload(c.Context(), h.storage, "site/logos", file)
	if err != nil {
		return response.InternalServerError(c, "Failed to store logo")
	}

	altText := validation.SanitizeString(c.FormValue("alt_text"))
	logo, err := h.logos.Replace(c.Context(), h.storage, key, altText)
	if err != nil {
		return response.InternalServerError(c, "Failed to save logo")
	}

	return response.Created(c, h.toLogoResponse(logo))
}

// DeleteLogo handles DELETE /api/v1/site-logo
func (h *SiteHandler) DeleteLogo(c *fiber.Ctx) error {
	if err := h.logos.Delete(c.Context(), h.storage); err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Site logo not set")
		}
		return response.InternalServerError(c, "Failed to delete site logo")
	}
	return response.SuccessWithMessage(c, "Site logo deleted successfully", nil)
}
