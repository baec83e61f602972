package banner

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

// BannerHandler handles homepage banner requests
type BannerHandler struct {
	db        *gorm.DB
	validator *validation.Validator
	storage   services.FileStorage
}

// NewBannerHandler creates a new banner handler
func NewBannerHandler(db *gorm.DB, storage services.FileStorage) *BannerHandler {
	return &BannerHandler{
		db:        db,
		validator: validation.NewValidator(),
		storage:   storage,
	}
}

// CreateBannerRequest represents the request body for creating a banner
type CreateBannerRequest struct {
	Title         string `json:"title" form:"title" validate:"omitempty,max=200"`
	Subtitle      string `json:"subtitle" form:"subtitle" validate:"omitempty,max=400"`
	Description   string `json:"description" form:"description"`
	VideoAutoplay *bool  `json:"video_autoplay" form:"video_autoplay"`
	VideoMuted    *bool  `json:"video_muted" form:"video_muted"`
	VideoLoop     *bool  `json:"video_loop" form:"video_loop"`
	IsActive      *bool  `json:"is_active" form:"is_active"`
	Order         *uint  `json:"order" form:"order"`
}

// BannerResponse wraps a banner with resolved media URLs
type BannerResponse struct {
	model.Banner
	VideoURL       *string `json:"video_url"`
	VideoPosterURL *string `json:"video_poster_url"`
}

func (h *BannerHandler) toResponse(b *model.Banner) BannerResponse {
	return BannerResponse{
		Banner:         *b,
		VideoURL:       services.ResolveFileURL(h.storage, b.Video),
		VideoPosterURL: services.ResolveFileURL(h.storage, b.VideoPoster),
	}
}

func (h *BannerHandler) toResponseList(banners []model.Banner) []BannerResponse {
	out := make([]BannerResponse, 0, len(banners))
	for i := range banners {
		out = append(out, h.toResponse(&banners[i]))
	}
	return out
}

// ListBanners handles GET /api/v1/banners
func (h *BannerHandler) ListBanners(c *fiber.Ctx) error {
	page, limit := query.Pagination(c)

	q := h.db.Model(&model.Banner{})
	if active, ok := query.ParseBool(c, "is_active"); ok {
		q = q.Where("is_active = ?", active)
	}
	q = query.ApplySearch(c, q, "title", "subtitle")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count banners")
	}

	var banners []model.Banner
	q = query.ApplyOrdering(c, q, []string{"order", "updated_at"}, `"order" ASC, updated_at DESC`)
	if err := q.Limit(limit).Offset((page - 1) * limit).Find(&banners).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch banners")
	}

	return response.Paginated(c, h.toResponseList(banners), response.CalculatePagination(page, limit, total))
}

// ListActiveBanners handles GET /api/v1/banners/active
func (h *BannerHandler) ListActiveBanners(c *fiber.Ctx) error {
	page, limit := query.Pagination(c)

	q := h.db.Model(&model.Banner{}).Where("is_active = ?", true)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count banners")
	}

	var banners []model.Banner
	if err := q.Order(`"order" ASC, updated_at DESC`).
		Limit(limit).Offset((page - 1) * limit).
		Find(&banners).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch banners")
	}

	return response.Paginated(c, h.toResponseList(banners), response.CalculatePagination(page, limit, total))
}

// GetBanner handles GET /api/v1/banners/:id
func (h *BannerHandler) GetBanner(c *fiber.Ctx) error {
	var banner model.Banner
	if err := h.db.First(&banner, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Banner not found")
		}
		return response.InternalServerError(c, "Failed to fetch banner")
	}
	return response.Success(c, h.toResponse(&banner))
}

// CreateBanner handles POST /api/v1/banners
func (h *BannerHandler) CreateBanner(c *fiber.Ctx) error {
	var req CreateBannerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	banner := model.Banner{
		Title:         validation.SanitizeString(req.Title),
		Subtitle:      validation.SanitizeString(req.Subtitle),
		Description:   req.Description,
		VideoAutoplay: true,
		VideoMuted:    true,
		VideoLoop:     true,
		IsActive:      true,
	}
	applyFlags(&banner, &req)

	if file, err := c.FormFile("video"); err == nil {
		result := uploadvalidation.ValidateUpload(file, uploadvalidation.VideoLimits)
		if !result.Valid {
			return response.FieldError(c, "video", result.Error)
		}
		key, err := services.StoreUpload(c.Context(), h.storage, "banners/videos", file)
		if err != nil {
			return response.InternalServerError(c, "Failed to store video")
		}
		banner.Video = key
	} else {
		return response.FieldError(c, "video", "Banner video is required")
	}

	if file, err := c.FormFile("video_poster"); err == nil {
		result := uploadvalidation.ValidateUpload(file, uploadvalidation.ImageLimits)
		if !result.Valid {
			return response.FieldError(c, "video_poster", result.Error)
		}
		key, err := services.StoreUpload(c.Context(), h.storage, "banners/posters", file)
		if err != nil {
			return response.InternalServerError(c, "Failed to store poster")
		}
		banner.VideoPoster = key
	}

	if err := h.db.Create(&banner).Error; err != nil {
		return response.InternalServerError(c, "Failed to create banner")
	}

	return response.Created(c, h.toResponse(&banner))
}

// UpdateBanner handles PUT/PATCH /api/v1/banners/:id
func (h *BannerHandler) UpdateBanner(c *fiber.Ctx) error {
	var banner model.Banner
	if err := h.db.First(&banner, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Banner not found")
		}
		return response.InternalServerError(c, "Failed to fetch banner")
	}

	var req CreateBannerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	if req.Title != "" {
		banner.Title = validation.SanitizeString(req.Title)
	}
	if req.Subtitle != "" {
		banner.Subtitle = validation.SanitizeString(req.Subtitle)
	}
	if req.Description != "" {
		banner.Description = req.Description
	}
	applyFlags(&banner, &req)

	oldVideo, oldPoster := banner.Video, banner.VideoPoster

	if file, err := c.FormFile("video"); err == nil {
		result := uploadvalidation.ValidateUpload(file, uploadvalidation.VideoLimits)
		if !result.Valid {
			return response.FieldError(c, "video", result.Error)
		}
		key, err := services.StoreUpload(c.Context(), h.storage, "banners/videos", file)
		if err != nil {
			return response.InternalServerError(c, "Failed to store video")
		}
		banner.Video = key
	}

	if file, err := c.FormFile("video_poster"); err == nil {
		result := uploadvalidation.ValidateUpload(file, uploadvalidation.ImageLimits)
		if !result.Valid {
			return response.FieldError(c, "video_poster", result.Error)
		}
		key, err := services.StoreUpload(c.Context(), h.storage, "banners/posters", file)
		if err != nil {
			return response.InternalServerError(c, "Failed to store poster")
		}
		banner.VideoPoster = key
	}

	if err := h.db.Save(&banner).Error; err != nil {
		return response.InternalServerError(c, "Failed to update banner")
	}

	if oldVideo != "" && oldVideo != banner.Video {
		_ = h.storage.DeleteFile(c.Context(), oldVideo)
	}
	if oldPoster != "" && oldPoster != banner.VideoPoster {
		_ = h.storage.DeleteFile(c.Context(), oldPoster)
	}

	return response.SuccessWithMessage(c, "Banner updated successfully", h.toResponse(&banner))
}

// DeleteBanner handles DELETE /api/v1/banners/:id
func (h *BannerHandler) DeleteBanner(c *fiber.Ctx) error {
	var banner model.Banner
	if err := h.db.First(&banner, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Banner not found")
		}
		return response.InternalServerError(c, "Failed to fetch banner")
	}

	if err := h.db.Delete(&banner).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete banner")
	}

	if banner.Video != "" {
		_ = h.storage.DeleteFile(c.Context(), banner.Video)
	}
	if banner.VideoPoster != "" {
		_ = h.storage.DeleteFile(c.Context(), banner.VideoPoster)
	}

	return response.SuccessWithMessage(c, "Banner deleted successfully", nil)
}

func applyFlags(banner *model.Banner, req *CreateBannerRequest) {
	if req.VideoAutoplay != nil {
		banner.VideoAutoplay = *req.VideoAutoplay
	}
	if req.VideoMuted != nil {
		banner.VideoMuted = *req.VideoMuted
	}
	if req.VideoLoop != nil {
		banner.VideoLoop = *req.VideoLoop
	}
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}
	if req.Order != nil {
		banner.Order = *req.Order
	}
}
