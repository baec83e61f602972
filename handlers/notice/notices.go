package notice

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

// NoticeHandler handles announcement requests
type NoticeHandler struct {
	db        *gorm.DB
	validator *validation.Validator
	storage   services.FileStorage
}

// NewNoticeHandler creates a new notice handler
func NewNoticeHandler(db *gorm.DB, storage services.FileStorage) *NoticeHandler {
	return &NoticeHandler{
		db:        db,
		validator: validation.NewValidator(),
		storage:   storage,
	}
}

// NoticeRequest represents the request body for creating or updating a notice
type NoticeRequest struct {
	Title      string `json:"title" form:"title" validate:"omitempty,max=255"`
	Content    string `json:"content" form:"content"`
	Excerpt    string `json:"excerpt" form:"excerpt" validate:"omitempty,max=500"`
	Status     string `json:"status" form:"status" validate:"omitempty,oneof=draft published archived"`
	Priority   string `json:"priority" form:"priority" validate:"omitempty,oneof=low normal high urgent"`
	NoticeDate string `json:"notice_date" form:"notice_date" validate:"omitempty,datetime=2006-01-02"`
	ExpiryDate string `json:"expiry_date" form:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	IsFeatured *bool  `json:"is_featured" form:"is_featured"`
	IsSticky   *bool  `json:"is_sticky" form:"is_sticky"`
	Order      *uint  `json:"order" form:"order"`
}

// NoticeResponse augments a notice with resolved URLs and the derived
// expiry flag
type NoticeResponse struct {
	model.Notice
	AttachmentURL    *string `json:"attachment_url"`
	FeaturedImageURL *string `json:"featured_image_url"`
	IsExpired        bool    `json:"is_expired"`
}

func (h *NoticeHandler) toResponse(n *model.Notice) NoticeResponse {
	return NoticeResponse{
		Notice:           *n,
		AttachmentURL:    services.ResolveFileURL(h.storage, n.Attachment),
		FeaturedImageURL: services.ResolveFileURL(h.storage, n.FeaturedImage),
		IsExpired:        n.IsExpired(),
	}
}

func (h *NoticeHandler) toResponseList(notices []model.Notice) []NoticeResponse {
	out := make([]NoticeResponse, 0, len(notices))
	for i := range notices {
		out = append(out, h.toResponse(&notices[i]))
	}
	return out
}

// ListNotices handles GET /api/v1/notices
func (h *NoticeHandler) ListNotices(c *fiber.Ctx) error {
	page, limit := query.Pagination(c)

	q := h.db.Model(&model.Notice{})
	q = query.FilterEqual(c, q, map[string]string{
		"status":   "status",
		"priority": "priority",
	})
	if sticky, ok := query.ParseBool(c, "is_sticky"); ok {
		q = q.Where("is_sticky = ?", sticky)
	}
	q = query.ApplySearch(c, q, "title", "content")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count notices")
	}

	var notices []model.Notice
	q = query.ApplyOrdering(c, q, []string{"notice_date", "created_at", "updated_at", "order"}, "is_sticky DESC, is_featured DESC, notice_date DESC, created_at DESC")
	if err := q.Limit(limit).Offset((page - 1) * limit).Find(&notices).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch notices")
	}

	return response.Paginated(c, h.toResponseList(notices), response.CalculatePagination(page, limit, total))
}

// ListPublishedNotices handles GET /api/v1/notices/published — the public
// feed, sticky and featured notices first, newest notice date next.
func (h *NoticeHandler) ListPublishedNotices(c *fiber.Ctx) error {
	page, limit := query.Pagination(c)

	q := h.db.Model(&model.Notice{}).Where("status = ?", model.StatusPublished)
	if priority := c.Query("priority"); priority != "" {
		q = q.Where("priority = ?", priority)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count notices")
	}

	var notices []model.Notice
	if err := q.Order("is_sticky DESC, is_featured DESC, notice_date DESC, created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&notices).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch notices")
	}

	return response.Paginated(c, h.toResponseList(notices), response.CalculatePagination(page, limit, total))
}

// GetNotice handles GET /api/v1/notices/:id
func (h *NoticeHandler) GetNotice(c *fiber.Ctx) error {
	var notice model.Notice
	if err := h.db.First(&notice, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Notice not found")
		}
		return response.InternalServerError(c, "Failed to fetch notice")
	}
	return response.Success(c, h.toResponse(&notice))
}

// IncrementNoticeView handles POST /api/v1/notices/:id/increment-view
func (h *NoticeHandler) IncrementNoticeView(c *fiber.Ctx) error {
	result := h.db.Model(&model.Notice{}).
		Where("id = ?", c.Params("id")).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to record view")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Notice not found")
	}

	var notice model.Notice
	if err := h.db.First(&notice, "id = ?", c.Params("id")).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch notice")
	}
	return response.Success(c, fiber.Map{"view_count": notice.ViewCount})
}

// CreateNotice handles POST /api/v1/notices
func (h *NoticeHandler) CreateNotice(c *fiber.Ctx) error {
	var req NoticeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	if req.Title == "" {
		return response.FieldError(c, "title", "Title is required")
	}
	if req.Content == "" {
		return response.FieldError(c, "content", "Content is required")
	}
	if req.NoticeDate == "" {
		return response.FieldError(c, "notice_date", "Notice date is required")
	}

	noticeDate, err := time.Parse("2006-01-02", req.NoticeDate)
	if err != nil {
		return response.FieldError(c, "notice_date", "Invalid date format, expected YYYY-MM-DD")
	}

	slug, err := services.UniqueSlug(h.db, "notices", req.Title, 0)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate slug")
	}

	notice := model.Notice{
		Title:      validation.SanitizeString(req.Title),
		Slug:       slug,
		Content:    req.Content,
		Excerpt:    req.Excerpt,
		Status:     model.StatusDraft,
		Priority:   model.PriorityNormal,
		NoticeDate: datatypes.Date(noticeDate),
	}
	if req.Status != "" {
		notice.Status = req.Status
	}
	if req.Priority != "" {
		notice.Priority = req.Priority
	}
	if req.IsFeatured != nil {
		notice.IsFeatured = *req.IsFeatured
	}
	if req.IsSticky != nil {
		notice.IsSticky = *req.IsSticky
	}
	if req.Order != nil {
		notice.Order = *req.Order
	}
	if req.ExpiryDate != "" {
		if t, err := time.Parse("2006-01-02", req.ExpiryDate); err == nil {
			d := datatypes.Date(t)
			notice.ExpiryDate = &d
		}
	}
	notice.PublishedAt = services.ResolvePublishedAt(notice.Status, model.StatusPublished, nil)

	if err := h.saveFiles(c, &notice); err != nil {
		return err
	}

	if err := h.db.Create(&notice).Error; err != nil {
		return response.InternalServerError(c, "Failed to create notice")
	}

	return response.Created(c, h.toResponse(&notice))
}

// UpdateNotice handles PUT/PATCH /api/v1/notices/:id
func (h *NoticeHandler) UpdateNotice(c *fiber.Ctx) error {
	var notice model.Notice
	if err := h.db.First(&notice, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Notice not found")
		}
		return response.InternalServerError(c, "Failed to fetch notice")
	}

	var req NoticeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	if req.Title != "" {
		notice.Title = validation.SanitizeString(req.Title)
	}
	if req.Content != "" {
		notice.Content = req.Content
	}
	if req.Excerpt != "" {
		notice.Excerpt = req.Excerpt
	}
	if req.Status != "" {
		notice.Status = req.Status
	}
	if req.Priority != "" {
		notice.Priority = req.Priority
	}
	if req.IsFeatured != nil {
		notice.IsFeatured = *req.IsFeatured
	}
	if req.IsSticky != nil {
		notice.IsSticky = *req.IsSticky
	}
	if req.Order != nil {
		notice.Order = *req.Order
	}
	if req.NoticeDate != "" {
		if t, err := time.Parse("2006-01-02", req.NoticeDate); err == nil {
			notice.NoticeDate = datatypes.Date(t)
		}
	}
	if req.ExpiryDate != "" {
		if t, err := time.Parse("2006-01-02", req.ExpiryDate); err == nil {
			d := datatypes.Date(t)
			notice.ExpiryDate = &d
		}
	}
	notice.PublishedAt = services.ResolvePublishedAt(notice.Status, model.StatusPublished, notice.PublishedAt)

	oldAttachment, oldImage := notice.Attachment, notice.FeaturedImage
	if err := h.saveFiles(c, &notice); err != nil {
		return err
	}

	if err := h.db.Save(&notice).Error; err != nil {
		return response.InternalServerError(c, "Failed to update notice")
	}

	if oldAttachment != "" && oldAttachment != notice.Attachment {
		_ = h.storage.DeleteFile(c.Context(), oldAttachment)
	}
	if oldImage != "" && oldImage != notice.FeaturedImage {
		_ = h.storage.DeleteFile(c.Context(), oldImage)
	}

	return response.SuccessWithMessage(c, "Notice updated successfully", h.toResponse(&notice))
}

// DeleteNotice handles DELETE /api/v1/notices/:id
func (h *NoticeHandler) DeleteNotice(c *fiber.Ctx) error {
	var notice model.Notice
	if err := h.db.First(&notice, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Notice not found")
		}
		return response.InternalServerError(c, "Failed to fetch notice")
	}

	if err := h.db.Delete(&notice).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete notice")
	}

	if notice.Attachment != "" {
		_ = h.storage.DeleteFile(c.Context(), notice.Attachment)
	}
	if notice.FeaturedImage != "" {
		_ = h.storage.DeleteFile(c.Context(), notice.FeaturedImage)
	}

	return response.SuccessWithMessage(c, "Notice deleted successfully", nil)
}

func (h *NoticeHandler) saveFiles(c *fiber.Ctx, notice *model.Notice) error {
	if file, err := c.FormFile("attachment"); err == nil {
		result := uploadvalidation.ValidateUpload(file, uploadvalidation.AttachmentLimits)
		if !result.Valid {
			return response.FieldError(c, "attachment", result.Error)
		}
		key, err := services.StoreUpload(c.Context(), h.storage, "notices/attachments", file)
		if err != nil {
			return response.InternalServerError(c, "Failed to store attachment")
		}
		notice.Attachment = key
	}

	if file, err := c.FormFile("featured_image"); err == nil {
		result := uploadvalidation.ValidateUpload(file, uploadvalidation.ImageLimits)
		if !result.Valid {
			return response.FieldError(c, "featured_image", result.Error)
		}
		key, err := services.StoreUpload(c.Context(), h.storage, "notices/images", file)
		if err != nil {
			return response.InternalServerError(c, "Failed to store image")
		}
		notice.FeaturedImage = key
	}

	return nil
}
