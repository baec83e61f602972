package dashboard

import (
	"github.com/cmspro/cmspro-api/model"
	"github.com/cmspro/cmspro-api/utils/response"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DashboardHandler serves aggregate counts for the admin overview page.
type DashboardHandler struct {
	db *gorm.DB
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// GetStats handles GET /api/v1/dashboard/stats
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats := fiber.Map{}

	counts := []struct {
		name  string
		query *gorm.DB
	}{
		{"leads_total", h.db.Model(&model.Lead{})},
		{"leads_unread", h.db.Model(&model.Lead{}).Where("is_read = ?", false)},
		{"leads_new", h.db.Model(&model.Lead{}).Where("status = ?", model.LeadStatusNew)},
		{"blog_posts_total", h.db.Model(&model.BlogPost{}).Where("is_deleted = ?", false)},
		{"blog_posts_published", h.db.Model(&model.BlogPost{}).Where("status = ? AND is_deleted = ?", model.StatusPublished, false)},
		{"blog_posts_draft", h.db.Model(&model.BlogPost{}).Where("status = ? AND is_deleted = ?", model.StatusDraft, false)},
		{"services_total", h.db.Model(&model.Service{}).Where("is_deleted = ?", false)},
		{"projects_total", h.db.Model(&model.Project{}).Where("is_deleted = ?", false)},
		{"projects_completed", h.db.Model(&model.Project{}).Where("status = ? AND is_deleted = ?", model.ProjectStatusCompleted, false)},
		{"careers_active", h.db.Model(&model.Career{}).Where("status = ?", model.CareerStatusActive)},
		{"applications_pending", h.db.Model(&model.JobApplication{}).Where("status = ?", model.ApplicationStatusPending)},
		{"notices_published", h.db.Model(&model.Notice{}).Where("status = ?", model.StatusPublished)},
		{"team_members", h.db.Model(&model.TeamMember{})},
		{"clients", h.db.Model(&model.Client{})},
		{"banners_active", h.db.Model(&model.Banner{}).Where("is_active = ?", true)},
	}

	for _, item := range counts {
		var n int64
		if err := item.query.Count(&n).Error; err != nil {
			return response.InternalServerError(c, "Failed to load dashboard stats")
		}
		stats[item.name] = n
	}

	return response.Success(c, stats)
}
