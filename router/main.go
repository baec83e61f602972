package router

import (
	"log"
	"os"
	"time"

	"github.com/cmspro/cmspro-api/config"
	"github.com/cmspro/cmspro-api/database"
	"github.com/cmspro/cmspro-api/handlers"
	about_handlers "github.com/cmspro/cmspro-api/handlers/about"
	auth_handlers "github.com/cmspro/cmspro-api/handlers/auth"
	banner_handlers "github.com/cmspro/cmspro-api/handlers/banner"
	blog_handlers "github.com/cmspro/cmspro-api/handlers/blog"
	career_handlers "github.com/cmspro/cmspro-api/handlers/career"
	client_handlers "github.com/cmspro/cmspro-api/handlers/client"
	dashboard_handlers "github.com/cmspro/cmspro-api/handlers/dashboard"
	jobapplication_handlers "github.com/cmspro/cmspro-api/handlers/jobapplication"
	lead_handlers "github.com/cmspro/cmspro-api/handlers/lead"
	notice_handlers "github.com/cmspro/cmspro-api/handlers/notice"
	project_handlers "github.com/cmspro/cmspro-api/handlers/project"
	service_handlers "github.com/cmspro/cmspro-api/handlers/service"
	site_handlers "github.com/cmspro/cmspro-api/handlers/site"
	teammember_handlers "github.com/cmspro/cmspro-api/handlers/teammember"
	"github.com/cmspro/cmspro-api/services"
	"github.com/cmspro/cmspro-api/services/spaces"
	"github.com/cmspro/cmspro-api/utils/auth"
	"github.com/cmspro/cmspro-api/utils/cache"
	"github.com/cmspro/cmspro-api/utils/middleware"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, store database.Storage) {
	getEnv, err := config.Get()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	if getEnv.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := getEnv.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "cmspro-api"
	}

	// Initialize JWT manager with config
	jwtConfig := auth.JWTConfig{
		Secret:        getEnv.JWT_SECRET,
		Expiry:        24 * time.Hour,     // Access token expires in 24 hours
		RefreshExpiry: 7 * 24 * time.Hour, // Refresh token expires in 7 days
		Issuer:        jwtIssuer,
	}
	jwtManager := auth.NewJWTManager(jwtConfig)

	// Get DB instance (type assert from interface)
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	// Initialize Spaces storage for uploaded media
	storage, err := spaces.NewSpacesClient(spaces.SpacesConfig{
		AccessKey: getEnv.SPACES_ACCESS_KEY,
		SecretKey: getEnv.SPACES_SECRET_KEY,
		Bucket:    getEnv.SPACES_BUCKET,
		Region:    getEnv.SPACES_REGION,
		Endpoint:  getEnv.SPACES_ENDPOINT,
		CDNURL:    getEnv.SPACES_CDN_URL,
	})
	if err != nil {
		log.Fatal("Failed to initialize Spaces storage: ", err)
	}

	// Redis is optional; the site config service falls back to the
	// database when the cache is unavailable.
	redisCache, err := cache.NewRedisCache(getEnv.REDIS_URL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Site config caching will be disabled.", err)
		redisCache = nil
	}

	// Initialize auth middleware with DB for blacklist checking
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)
	adminOnly := middleware.RequireAdmin(store)

	// Initialize services
	siteConfigService := services.NewSiteConfigService(db, redisCache)
	siteLogoService := services.NewSiteLogoService(db)

	// Initialize handlers
	authHandler := auth_handlers.NewAuthHandler(db, jwtManager)
	bannerHandler := banner_handlers.NewBannerHandler(db, storage)
	aboutHandler := about_handlers.NewAboutHandler(db, storage)
	teamMemberHandler := teammember_handlers.NewTeamMemberHandler(db, storage)
	clientHandler := client_handlers.NewClientHandler(db, storage)
	leadHandler := lead_handlers.NewLeadHandler(db, storage)
	projectHandler := project_handlers.NewProjectHandler(db, storage)
	blogHandler := blog_handlers.NewBlogHandler(db, storage)
	serviceHandler := service_handlers.NewServiceHandler(db, storage)
	careerHandler := career_handlers.NewCareerHandler(db)
	applicationHandler := jobapplication_handlers.NewApplicationHandler(db, storage)
	noticeHandler := notice_handlers.NewNoticeHandler(db, storage)
	siteHandler := site_handlers.NewSiteHandler(siteLogoService, siteConfigService, storage)
	dashboardHandler := dashboard_handlers.NewDashboardHandler(db)

	// Apply security middleware
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins: allowedOrigins,
	})

	// Health check endpoint (public)
	app.Get("/ping", handlers.HandlePing(store))

	// API v1 group
	api := app.Group("/api/v1")

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)
	authGroup.Get("/csrf", authHandler.GetCSRFToken)
	authGroup.Post("/register", authMiddleware.Required(), adminOnly, authHandler.Register)
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	authGroup.Post("/verify", authMiddleware.Required(), authHandler.VerifyToken)
	authGroup.Get("/profile", authMiddleware.Required(), authHandler.GetProfile)
	authGroup.Put("/profile", authMiddleware.Required(), authHandler.UpdateProfile)
	authGroup.Post("/change-password", authMiddleware.Required(), authHandler.ChangePassword)

	// Banners
	banners := api.Group("/banners")
	banners.Get("/active", bannerHandler.ListActiveBanners) // Public: live banners for the landing page
	banners.Get("/", authMiddleware.Required(), adminOnly, bannerHandler.ListBanners)
	banners.Get("/:id", authMiddleware.Required(), adminOnly, bannerHandler.GetBanner)
	banners.Post("/", authMiddleware.Required(), adminOnly, bannerHandler.CreateBanner)
	banners.Put("/:id", authMiddleware.Required(), adminOnly, bannerHandler.UpdateBanner)
	banners.Patch("/:id", authMiddleware.Required(), adminOnly, bannerHandler.UpdateBanner)
	banners.Delete("/:id", authMiddleware.Required(), adminOnly, bannerHandler.DeleteBanner)

	// About sections
	about := api.Group("/about")
	about.Get("/active", aboutHandler.GetActiveAbout) // Public: latest published section
	about.Get("/", authMiddleware.Required(), adminOnly, aboutHandler.ListAbout)
	about.Get("/:id", authMiddleware.Required(), adminOnly, aboutHandler.GetAbout)
	about.Post("/", authMiddleware.Required(), adminOnly, aboutHandler.CreateAbout)
	about.Put("/:id", authMiddleware.Required(), adminOnly, aboutHandler.UpdateAbout)
	about.Patch("/:id", authMiddleware.Required(), adminOnly, aboutHandler.UpdateAbout)
	about.Delete("/:id", authMiddleware.Required(), adminOnly, aboutHandler.DeleteAbout)

	// Team members
	team := api.Group("/team-members")
	team.Get("/", authMiddleware.Optional(), teamMemberHandler.ListTeamMembers) // Public: anonymous callers see active members only
	team.Get("/:id", teamMemberHandler.GetTeamMember)
	team.Post("/", authMiddleware.Required(), adminOnly, teamMemberHandler.CreateTeamMember)
	team.Put("/:id", authMiddleware.Required(), adminOnly, teamMemberHandler.UpdateTeamMember)
	team.Patch("/:id", authMiddleware.Required(), adminOnly, teamMemberHandler.UpdateTeamMember)
	team.Delete("/:id", authMiddleware.Required(), adminOnly, teamMemberHandler.DeleteTeamMember)

	// Clients
	clients := api.Group("/clients")
	clients.Get("/", authMiddleware.Optional(), clientHandler.ListClients) // Public: anonymous callers see active clients only
	clients.Get("/:id", clientHandler.GetClient)
	clients.Post("/", authMiddleware.Required(), adminOnly, clientHandler.CreateClient)
	clients.Put("/:id", authMiddleware.Required(), adminOnly, clientHandler.UpdateClient)
	clients.Patch("/:id", authMiddleware.Required(), adminOnly, clientHandler.UpdateClient)
	clients.Delete("/:id", authMiddleware.Required(), adminOnly, clientHandler.DeleteClient)

	// Leads (contact form submissions)
	leads := api.Group("/leads")
	leads.Post("/", leadHandler.CreateLead) // Public: contact form
	leads.Get("/", authMiddleware.Required(), adminOnly, leadHandler.ListLeads)
	leads.Get("/:id", authMiddleware.Required(), adminOnly, leadHandler.GetLead)
	leads.Put("/:id", authMiddleware.Required(), adminOnly, leadHandler.UpdateLead)
	leads.Patch("/:id", authMiddleware.Required(), adminOnly, leadHandler.UpdateLead)
	leads.Post("/mark-read", authMiddleware.Required(), adminOnly, leadHandler.MarkAllLeadsRead)
	leads.Post("/:id/mark-read", authMiddleware.Required(), adminOnly, leadHandler.MarkLeadRead)
	leads.Delete("/:id", authMiddleware.Required(), adminOnly, leadHandler.DeleteLead)

	// Project categories
	projectCategories := api.Group("/project-categories")
	projectCategories.Get("/", projectHandler.ListCategories) // Public
	projectCategories.Get("/:id", projectHandler.GetCategory)
	projectCategories.Post("/", authMiddleware.Required(), adminOnly, projectHandler.CreateCategory)
	projectCategories.Put("/:id", authMiddleware.Required(), adminOnly, projectHandler.UpdateCategory)
	projectCategories.Delete("/:id", authMiddleware.Required(), adminOnly, projectHandler.DeleteCategory)

	// Projects
	projects := api.Group("/projects")
	projects.Get("/completed", projectHandler.ListCompletedProjects) // Public: portfolio page
	projects.Get("/slug/:slug", projectHandler.GetProjectBySlug)     // Public
	projects.Get("/", projectHandler.ListProjects)
	projects.Get("/:id", projectHandler.GetProject)
	projects.Post("/", authMiddleware.Required(), adminOnly, projectHandler.CreateProject)
	projects.Put("/:id", authMiddleware.Required(), adminOnly, projectHandler.UpdateProject)
	projects.Patch("/:id", authMiddleware.Required(), adminOnly, projectHandler.UpdateProject)
	projects.Delete("/:id", authMiddleware.Required(), adminOnly, projectHandler.DeleteProject)

	// Project gallery images (nested under projects)
	projectImages := projects.Group("/:id/images", authMiddleware.Required(), adminOnly)
	projectImages.Get("/", projectHandler.ListProjectImages)
	projectImages.Post("/", projectHandler.AddProjectImage)
	projectImages.Put("/:imageID", projectHandler.UpdateProjectImage)
	projectImages.Delete("/:imageID", projectHandler.DeleteProjectImage)

	// Blog categories
	blogCategories := api.Group("/blog-categories")
	blogCategories.Get("/", blogHandler.ListCategories) // Public
	blogCategories.Get("/:id", blogHandler.GetCategory)
	blogCategories.Post("/", authMiddleware.Required(), adminOnly, blogHandler.CreateCategory)
	blogCategories.Put("/:id", authMiddleware.Required(), adminOnly, blogHandler.UpdateCategory)
	blogCategories.Delete("/:id", authMiddleware.Required(), adminOnly, blogHandler.DeleteCategory)

	// Blog posts
	blogPosts := api.Group("/blog-posts")
	blogPosts.Get("/published", blogHandler.ListPublishedPosts) // Public
	blogPosts.Get("/slug/:slug", blogHandler.GetPostBySlug)     // Public: bumps the view counter
	blogPosts.Get("/", blogHandler.ListPosts)
	blogPosts.Get("/:id", blogHandler.GetPost)
	blogPosts.Post("/", authMiddleware.Required(), adminOnly, blogHandler.CreatePost)
	blogPosts.Put("/:id", authMiddleware.Required(), adminOnly, blogHandler.UpdatePost)
	blogPosts.Patch("/:id", authMiddleware.Required(), adminOnly, blogHandler.UpdatePost)
	blogPosts.Post("/:id/increment-view", authMiddleware.Required(), adminOnly, blogHandler.IncrementPostView)
	blogPosts.Delete("/:id", authMiddleware.Required(), adminOnly, blogHandler.DeletePost)

	// Service categories
	serviceCategories := api.Group("/service-categories")
	serviceCategories.Get("/", serviceHandler.ListCategories) // Public
	serviceCategories.Get("/:id", serviceHandler.GetCategory)
	serviceCategories.Post("/", authMiddleware.Required(), adminOnly, serviceHandler.CreateCategory)
	serviceCategories.Put("/:id", authMiddleware.Required(), adminOnly, serviceHandler.UpdateCategory)
	serviceCategories.Delete("/:id", authMiddleware.Required(), adminOnly, serviceHandler.DeleteCategory)

	// Services
	servicesGroup := api.Group("/services")
	servicesGroup.Get("/published", serviceHandler.ListPublishedServices) // Public
	servicesGroup.Get("/slug/:slug", serviceHandler.GetServiceBySlug)     // Public
	servicesGroup.Get("/", serviceHandler.ListServices)
	servicesGroup.Get("/:id", serviceHandler.GetService)
	servicesGroup.Post("/", authMiddleware.Required(), adminOnly, serviceHandler.CreateService)
	servicesGroup.Put("/:id", authMiddleware.Required(), adminOnly, serviceHandler.UpdateService)
	servicesGroup.Patch("/:id", authMiddleware.Required(), adminOnly, serviceHandler.UpdateService)
	servicesGroup.Delete("/:id", authMiddleware.Required(), adminOnly, serviceHandler.DeleteService)

	// Careers
	careers := api.Group("/careers")
	careers.Get("/active", careerHandler.ListActiveCareers)   // Public: open positions
	careers.Get("/slug/:slug", careerHandler.GetCareerBySlug) // Public: bumps the view counter
	careers.Get("/", authMiddleware.Required(), adminOnly, careerHandler.ListCareers)
	careers.Get("/:id", authMiddleware.Required(), adminOnly, careerHandler.GetCareer)
	careers.Post("/", authMiddleware.Required(), adminOnly, careerHandler.CreateCareer)
	careers.Put("/:id", authMiddleware.Required(), adminOnly, careerHandler.UpdateCareer)
	careers.Patch("/:id", authMiddleware.Required(), adminOnly, careerHandler.UpdateCareer)
	careers.Post("/:id/increment-view", authMiddleware.Required(), adminOnly, careerHandler.IncrementCareerView)
	careers.Delete("/:id", authMiddleware.Required(), adminOnly, careerHandler.DeleteCareer)

	// Job applications
	applications := api.Group("/job-applications")
	applications.Post("/", applicationHandler.CreateApplication) // Public: submission form
	applications.Get("/", authMiddleware.Required(), adminOnly, applicationHandler.ListApplications)
	applications.Get("/by-career/:careerID", authMiddleware.Required(), adminOnly, applicationHandler.ListApplicationsByCareer)
	applications.Get("/:id", authMiddleware.Required(), adminOnly, applicationHandler.GetApplication)
	applications.Put("/:id", authMiddleware.Required(), adminOnly, applicationHandler.UpdateApplication)
	applications.Patch("/:id", authMiddleware.Required(), adminOnly, applicationHandler.UpdateApplication)
	applications.Patch("/:id/update-status", authMiddleware.Required(), adminOnly, applicationHandler.UpdateApplication)
	applications.Delete("/:id", authMiddleware.Required(), adminOnly, applicationHandler.DeleteApplication)

	// Notices
	notices := api.Group("/notices")
	notices.Get("/published", noticeHandler.ListPublishedNotices) // Public
	notices.Get("/", authMiddleware.Required(), adminOnly, noticeHandler.ListNotices)
	notices.Get("/:id", authMiddleware.Required(), adminOnly, noticeHandler.GetNotice)
	notices.Post("/", authMiddleware.Required(), adminOnly, noticeHandler.CreateNotice)
	notices.Put("/:id", authMiddleware.Required(), adminOnly, noticeHandler.UpdateNotice)
	notices.Patch("/:id", authMiddleware.Required(), adminOnly, noticeHandler.UpdateNotice)
	notices.Post("/:id/increment-view", authMiddleware.Required(), adminOnly, noticeHandler.IncrementNoticeView)
	notices.Delete("/:id", authMiddleware.Required(), adminOnly, noticeHandler.DeleteNotice)

	// Site logo
	api.Get("/site-logo", siteHandler.GetLogo) // Public
	api.Get("/site-logo/:id", siteHandler.GetLogoByID)
	api.Post("/site-logo", authMiddleware.Required(), adminOnly, siteHandler.UploadLogo)
	api.Delete("/site-logo", authMiddleware.Required(), adminOnly, siteHandler.DeleteLogo)

	// Site configuration (singleton)
	siteConfig := api.Group("/site-config")
	siteConfig.Get("/active", siteHandler.GetActiveConfig) // Public: secrets stripped
	siteConfig.Get("/", authMiddleware.Required(), adminOnly, siteHandler.GetConfig)
	siteConfig.Get("/:id", authMiddleware.Required(), adminOnly, siteHandler.GetConfigByID)
	siteConfig.Post("/", authMiddleware.Required(), adminOnly, siteHandler.UpsertConfig)
	siteConfig.Put("/", authMiddleware.Required(), adminOnly, siteHandler.UpsertConfig)
	siteConfig.Patch("/", authMiddleware.Required(), adminOnly, siteHandler.UpsertConfig)

	// Admin dashboard
	api.Get("/dashboard/stats", authMiddleware.Required(), adminOnly, dashboardHandler.GetStats)
}
