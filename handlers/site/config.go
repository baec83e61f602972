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

// SiteConfigRequest represents the writable fields of the configuration
// singleton. Every field is optional; absent fields keep their value.
type SiteConfigRequest struct {
	CompanyName   string `json:"company_name" form:"company_name" validate:"omitempty,max=255"`
	AboutExcerpt  string `json:"about_excerpt" form:"about_excerpt"`
	Address       string `json:"address" form:"address"`
	Phone         string `json:"phone" form:"phone" validate:"omitempty,max=50"`
	Email         string `json:"email" form:"email" validate:"omitempty,email"`
	Website       string `json:"website" form:"website" validate:"omitempty,url,max=255"`
	BusinessHours string `json:"business_hours" form:"business_hours" validate:"omitempty,max=200"`
	LogoAltText   string `json:"logo_alt_text" form:"logo_alt_text" validate:"omitempty,max=255"`

	FacebookURL  string `json:"facebook_url" form:"facebook_url" validate:"omitempty,url,max=255"`
	InstagramURL string `json:"instagram_url" form:"instagram_url" validate:"omitempty,url,max=255"`
	YoutubeURL   string `json:"youtube_url" form:"youtube_url" validate:"omitempty,url,max=255"`
	XURL         string `json:"x_url" form:"x_url" validate:"omitempty,url,max=255"`
	LinkedinURL  string `json:"linkedin_url" form:"linkedin_url" validate:"omitempty,url,max=255"`

	CustomLinkURL  string `json:"custom_link_url" form:"custom_link_url" validate:"omitempty,url,max=255"`
	CustomLinkText string `json:"custom_link_text" form:"custom_link_text" validate:"omitempty,max=255"`

	GoogleAnalyticsID  string `json:"google_analytics_id" form:"google_analytics_id" validate:"omitempty,max=100"`
	GoogleTagManagerID string `json:"google_tag_manager_id" form:"google_tag_manager_id" validate:"omitempty,max=100"`
	FacebookPixelID    string `json:"facebook_pixel_id" form:"facebook_pixel_id" validate:"omitempty,max=100"`
	HotjarID           string `json:"hotjar_id" form:"hotjar_id" validate:"omitempty,max=100"`
	ClarityID          string `json:"clarity_id" form:"clarity_id" validate:"omitempty,max=100"`
	CustomTrackingCode string `json:"custom_tracking_code" form:"custom_tracking_code"`

	EnableAnalytics    *bool  `json:"enable_analytics" form:"enable_analytics"`
	EnableTracking     *bool  `json:"enable_tracking" form:"enable_tracking"`
	RecaptchaSiteKey   string `json:"recaptcha_site_key" form:"recaptcha_site_key" validate:"omitempty,max=255"`
	RecaptchaSecretKey string `json:"recaptcha_secret_key" form:"recaptcha_secret_key" validate:"omitempty,max=255"`
}

// SiteConfigResponse wraps the configuration with the resolved logo URL
type SiteConfigResponse struct {
	model.SiteConfig
	LogoURL *string `json:"logo_url"`
}

func (h *SiteHandler) toConfigResponse(cfg *model.SiteConfig) SiteConfigResponse {
	return SiteConfigResponse{
		SiteConfig: *cfg,
		LogoURL:    services.ResolveFileURL(h.storage, cfg.Logo),
	}
}

// GetConfig handles GET /api/v1/site-config — admin view.
func (h *SiteHandler) GetConfig(c *fiber.Ctx) error {
	cfg, err := h.config.Get(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch site configuration")
	}
	return response.Success(c, h.toConfigResponse(cfg))
}

// GetConfigByID handles GET /api/v1/site-config/:id
func (h *SiteHandler) GetConfigByID(c *fiber.Ctx) error {
	cfg, err := h.config.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Site configuration not found")
		}
		return response.InternalServerError(c, "Failed to fetch site configuration")
	}
	return response.Success(c, h.toConfigResponse(cfg))
}

// GetActiveConfig handles GET /api/v1/site-config/active — the public
// view. Same row; secret fields are already stripped by JSON tags.
func (h *SiteHandler) GetActiveConfig(c *fiber.Ctx) error {
	cfg, err := h.config.Get(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch site configuration")
	}
	return response.Success(c, h.toConfigResponse(cfg))
}

// UpsertConfig handles POST, PUT and PATCH /api/v1/site-config. All
// verbs converge on the same row; there is never more than one.
func (h *SiteHandler) UpsertConfig(c *fiber.Ctx) error {
	var req SiteConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	var logoKey string
	if file, err := c.FormFile("logo"); err == nil {
		result := uploadvalidation.ValidateUpload(file, uploadvalidation.ImageLimits)
		if !result.Valid {
			return response.FieldError(c, "logo", result.Error)
		}
		key, err := services.StoreUpload(c.Context(), h.storage, "site/config", file)
		if err != nil {
			return response.InternalServerError(c, "Failed to store logo")
		}
		logoKey = key
	}

	cfg, err := h.config.Update(c.Context(), h.storage, func(cfg *model.SiteConfig) error {
		applyConfig(cfg, &req)
		if logoKey != "" {
			cfg.Logo = logoKey
		}
		return nil
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to save site configuration")
	}

	return response.SuccessWithMessage(c, "Site configuration saved", h.toConfigResponse(cfg))
}

func applyConfig(cfg *model.SiteConfig, req *SiteConfigRequest) {
	if req.CompanyName != "" {
		cfg.CompanyName = validation.SanitizeString(req.CompanyName)
	}
	if req.AboutExcerpt != "" {
		cfg.AboutExcerpt = req.AboutExcerpt
	}
	if req.Address != "" {
		cfg.Address = req.Address
	}
	if req.Phone != "" {
		cfg.Phone = validation.SanitizeString(req.Phone)
	}
	if req.Email != "" {
		cfg.Email = validation.SanitizeString(req.Email)
	}
	if req.Website != "" {
		cfg.Website = req.Website
	}
	if req.BusinessHours != "" {
		cfg.BusinessHours = req.BusinessHours
	}
	if req.LogoAltText != "" {
		cfg.LogoAltText = validation.SanitizeString(req.LogoAltText)
	}
	if req.FacebookURL != "" {
		cfg.FacebookURL = req.FacebookURL
	}
	if req.InstagramURL != "" {
		cfg.InstagramURL = req.InstagramURL
	}
	if req.YoutubeURL != "" {
		cfg.YoutubeURL = req.YoutubeURL
	}
	if req.XURL != "" {
		cfg.XURL = req.XURL
	}
	if req.LinkedinURL != "" {
		cfg.LinkedinURL = req.LinkedinURL
	}
	if req.CustomLinkURL != "" {
		cfg.CustomLinkURL = req.CustomLinkURL
	}
	if req.CustomLinkText != "" {
		cfg.CustomLinkText = req.CustomLinkText
	}
	if req.GoogleAnalyticsID != "" {
		cfg.GoogleAnalyticsID = req.GoogleAnalyticsID
	}
	if req.GoogleTagManagerID != "" {
		cfg.GoogleTagManagerID = req.GoogleTagManagerID
	}
	if req.FacebookPixelID != "" {
		cfg.FacebookPixelID = req.FacebookPixelID
	}
	if req.HotjarID != "" {
		cfg.HotjarID = req.HotjarID
	}
	if req.ClarityID != "" {
		cfg.ClarityID = req.ClarityID
	}
	if req.CustomTrackingCode != "" {
		cfg.CustomTrackingCode = req.CustomTrackingCode
	}
	if req.EnableAnalytics != nil {
		cfg.EnableAnalytics = *req.EnableAnalytics
	}
	if req.EnableTracking != nil {
		cfg.EnableTracking = *req.EnableTracking
	}
	if req.RecaptchaSiteKey != "" {
		cfg.RecaptchaSiteKey = req.RecaptchaSiteKey
	}
	if req.RecaptchaSecretKey != "" {
		cfg.RecaptchaSecretKey = req.RecaptchaSecretKey
	}
}
