package project

import (
	"github.com/cmspro/cmspro-api/model"
	"github.com/cmspro/cmspro-api/services"
	"github.com/cmspro/cmspro-api/utils/query"
	"github.com/cmspro/cmspro-api/utils/response"
	"github.com/cmspro/cmspro-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CategoryRequest represents the request body for project categories
type CategoryRequest struct {
	Name        string `json:"name" form:"name" validate:"omitempty,max=100"`
	Description string `json:"description" form:"description"`
	IsActive    *bool  `json:"is_active" form:"is_active"`
}

// ListCategories handles GET /api/v1/project-categories
func (h *ProjectHandler) ListCategories(c *fiber.Ctx) error {
	page, limit := query.Pagination(c)

	q := h.db.Model(&model.ProjectCategory{})
	if active, ok := query.ParseBool(c, "is_active"); ok {
		q = q.Where("is_active = ?", active)
	}
	q = query.ApplySearch(c, q, "name")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count categories")
	}

	var categories []model.ProjectCategory
	if err := q.Order("name ASC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&categories).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch categories")
	}

	return response.Paginated(c, categories, response.CalculatePagination(page, limit, total))
}

// GetCategory handles GET /api/v1/project-categories/:id
func (h *ProjectHandler) GetCategory(c *fiber.Ctx) error {
	var category model.ProjectCategory
	if err := h.db.First(&category, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Category not found")
		}
		return response.InternalServerError(c, "Failed to fetch category")
	}
	return response.Success(c, category)
}

// CreateCategory handles POST /api/v1/project-categories
func (h *ProjectHandler) CreateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Name == "" {
		return response.FieldError(c, "name", "Name is required")
	}

	var existing model.ProjectCategory
	if err := h.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return response.Conflict(c, "Category with this name already exists")
	}

	slug, err := services.UniqueSlug(h.db, "project_categories", req.Name, 0)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate slug")
	}

	category := model.ProjectCategory{
		Name:        validation.SanitizeString(req.Name),
		Slug:        slug,
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := h.db.Create(&category).Error; err != nil {
		return response.InternalServerError(c, "Failed to create category")
	}

	return response.Created(c, category)
}

// UpdateCategory handles PUT/PATCH /api/v1/project-categories/:id
func (h *ProjectHandler) UpdateCategory(c *fiber.Ctx) error {
	var category model.ProjectCategory
	if err := h.db.First(&category, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Category not found")
		}
		return response.InternalServerError(c, "Failed to fetch category")
	}

	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Name != "" && req.Name != category.Name {
		var existing model.ProjectCategory
		if err := h.db.Where("name = ? AND id <> ?", req.Name, category.ID).First(&existing).Error; err == nil {
			return response.Conflict(c, "Category with this name already exists")
		}
		category.Name = validation.SanitizeString(req.Name)
	}
	if req.Description != "" {
		category.Description = req.Description
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := h.db.Save(&category).Error; err != nil {
		return response.InternalServerError(c, "Failed to update category")
	}

	return response.SuccessWithMessage(c, "Category updated successfully", category)
}

// DeleteCategory handles DELETE /api/v1/project-categories/:id
// Projects referencing the category keep existing with a null category.
func (h *ProjectHandler) DeleteCategory(c *fiber.Ctx) error {
	var category model.ProjectCategory
	if err := h.db.First(&category, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Category not found")
		}
		return response.InternalServerError(c, "Failed to fetch category")
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Project{}).
			Where("category_id = ?", category.ID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to delete category")
	}

	return response.SuccessWithMessage(c, "Category deleted successfully", nil)
}
