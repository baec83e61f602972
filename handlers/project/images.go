package project

import (
	"github.com/cmspro/cmspro-api/model"
	"github.com/cmspro/cmspro-api/services"
	"github.com/cmspro/cmspro-api/utils/response"
	"github.com/cmspro/cmspro-api/utils/uploadvalidation"
	"github.com/cmspro/cmspro-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ProjectImageRequest represents the request body for gallery images
type ProjectImageRequest struct {
	Caption string `json:"caption" form:"caption" validate:"omitempty,max=255"`
	AltText string `json:"alt_text" form:"alt_text" validate:"omitempty,max=255"`
	Order   *uint  `json:"order" form:"order"`
}

// ProjectImageResponse wraps a gallery image with its resolved URL
type ProjectImageResponse struct {
	model.ProjectImage
	ImageURL *string `json:"image_url"`
}

func (h *ProjectHandler) toImageResponse(img *model.ProjectImage) ProjectImageResponse {
	return ProjectImageResponse{
		ProjectImage: *img,
		ImageURL:     services.ResolveFileURL(h.storage, img.Image),
	}
}

// ListProjectImages handles GET /api/v1/projects/:id/images
func (h *ProjectHandler) ListProjectImages(c *fiber.Ctx) error {
	var project model.Project
	if err := h.db.First(&project, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Project not found")
		}
		return response.InternalServerError(c, "Failed to fetch project")
	}

	var images []model.ProjectImage
	if err := h.db.Where("project_id = ?", project.ID).
		Order(`"order" ASC`).
		Find(&images).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch images")
	}

	out := make([]ProjectImageResponse, 0, len(images))
	for i := range images {
		out = append(out, h.toImageResponse(&images[i]))
	}
	return response.Success(c, out)
}

// AddProjectImage handles POST /api/v1/projects/:id/images
func (h *ProjectHandler) AddProjectImage(c *fiber.Ctx) error {
	var project model.Project
	if err := h.db.First(&project, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Project not found")
		}
		return response.InternalServerError(c, "Failed to fetch project")
	}

	var req ProjectImageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return response.FieldError(c, "image", "Image file is required")
	}

	result := uploadvalidation.ValidateUpload(file, uploadvalidation.ImageLimits)
	if !result.Valid {
		return response.FieldError(c, "image", result.Error)
	}

	key, err := services.StoreUpload(c.Context(), h.storage, "projects/gallery", file)
	if err != nil {
		return response.InternalServerError(c, "Failed to store image")
	}

	image := model.ProjectImage{
		ProjectID: project.ID,
		Image:     key,
		Caption:   validation.SanitizeString(req.Caption),
		AltText:   validation.SanitizeString(req.AltText),
	}
	if req.Order != nil {
		image.Order = *req.Order
	}

	if err := h.db.Create(&image).Error; err != nil {
		return response.InternalServerError(c, "Failed to create image")
	}

	return response.Created(c, h.toImageResponse(&image))
}

// UpdateProjectImage handles PUT/PATCH /api/v1/projects/:id/images/:imageID
func (h *ProjectHandler) UpdateProjectImage(c *fiber.Ctx) error {
	var image model.ProjectImage
	if err := h.db.Where("id = ? AND project_id = ?", c.Params("imageID"), c.Params("id")).
		First(&image).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Image not found")
		}
		return response.InternalServerError(c, "Failed to fetch image")
	}

	var req ProjectImageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Caption != "" {
		image.Caption = validation.SanitizeString(req.Caption)
	}
	if req.AltText != "" {
		image.AltText = validation.SanitizeString(req.AltText)
	}
	if req.Order != nil {
		image.Order = *req.Order
	}

	oldKey := image.Image
	if file, err := c.FormFile("image"); err == nil {
		result := uploadvalidation.ValidateUpload(file, uploadvalidation.ImageLimits)
		if !result.Valid {
			return response.FieldError(c, "image", result.Error)
		}
		key, err := services.StoreUpload(c.Context(), h.storage, "projects/gallery", file)
		if err != nil {
			return response.InternalServerError(c, "Failed to store image")
		}
		image.Image = key
	}

	if err := h.db.Save(&image).Error; err != nil {
		return response.InternalServerError(c, "Failed to update image")
	}

	if oldKey != "" && oldKey != image.Image {
		_ = h.storage.DeleteFile(c.Context(), oldKey)
	}

	return response.SuccessWithMessage(c, "Image updated successfully", h.toImageResponse(&image))
}

// DeleteProjectImage handles DELETE /api/v1/projects/:id/images/:imageID
func (h *ProjectHandler) DeleteProjectImage(c *fiber.Ctx) error {
	var image model.ProjectImage
	if err := h.db.Where("id = ? AND project_id = ?", c.Params("imageID"), c.Params("id")).
		First(&image).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Image not found")
		}
		return response.InternalServerError(c, "Failed to fetch image")
	}

	if err := h.db.Delete(&image).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete image")
	}

	if image.Image != "" {
		_ = h.storage.DeleteFile(c.Context(), image.Image)
	}

	return response.SuccessWithMessage(c, "Image deleted successfully", nil)
}
