package app

import (
	"fmt"

	"github.com/cmspro/cmspro-api/api"
	"github.com/cmspro/cmspro-api/config"
	"github.com/cmspro/cmspro-api/database"
	"github.com/cmspro/cmspro-api/router"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Initialize GORM database connection
	store, err := database.StartGORM()
	if err != nil {
		print("Check whether the Postgres is running or not\n")
		print("If not running, run the following command:\n")
		print("  make docker-up   (for Docker setup)\n")
		print("  make db-up       (for local PostgreSQL)\n")
		return err
	}

	if err := store.Init(); err != nil {
		print("Failed to initialize database tables\n")
		print("Error running migrations:\n")
		return err
	}

	// Seed the admin account and the site config singleton
	if db, ok := store.GetDB().(*gorm.DB); ok {
		if err := database.RunSeeds(db); err != nil {
			print("Warning: seeding failed\n")
			print("Error: ", err.Error(), "\n")
		}
	}

	// Defer Closing DB
	defer store.Close()

	// Init API
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Attach Middleware
	// Custom Logger
	app.Use(logger.New())

	app.Use(recover.New())

	// Setup Routes
	router.SetupRoutes(app, store)

	// Get the PORT & Start the Server
	return server.Run()

}
