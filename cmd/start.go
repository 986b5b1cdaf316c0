package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"craftdex/core/config"
	"craftdex/core/database"
	"craftdex/core/loader"
	"craftdex/core/logger"
	"craftdex/core/middleware/rayid"
	"craftdex/core/storage"
	"craftdex/feature/catalog"
	"craftdex/feature/transfer"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "craftdex/docs/swagger"
)

// @title Craftdex API
// @version 1.0
// @description API for browsing the crafting catalog and importing/exporting it.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the craftdex server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}

		// Create the schema on first run.
		if missing := database.MissingTables(db, catalog.Tables()); len(missing) > 0 {
			logg.Info("Migrating schema", zap.Strings("missing_tables", missing))
			if err := catalog.Migrate(db); err != nil {
				logg.Fatal("Failed to migrate schema", zap.Error(err))
			}
		}

		store := catalog.NewStore(db)

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 5. Build the transfer service, with object storage backups when
		// enabled.
		transferSvc := transfer.NewService(store, cfg.Transfer, logg)
		if cfg.Storage.Enabled {
			client, err := storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
			transferSvc.EnableBackups(client, cfg.Storage.Bucket)
		}

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(catalog.NewFeature(store, logg))
		mgr.Register(transfer.NewFeature(transferSvc))

		// Middleware Registration
		// RayID must be first to trace everything.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 7. Load Features
		loaded, err := mgr.LoadAll(app)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
