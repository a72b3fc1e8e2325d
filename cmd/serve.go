package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"tablediff/core/loader"
	"tablediff/core/logger"
	"tablediff/core/middleware/auth"
	"tablediff/core/middleware/rayid"
	"tablediff/core/storage"
	"tablediff/feature/compare"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "tablediff/docs/swagger"
)

// @title tablediff API
// @version 1.0
// @description Key-based comparison of spreadsheets and delimited files.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the comparison HTTP server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := setup(false)
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		logg := a.log
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if a.store != nil {
			if err := storage.EnsureBucket(context.Background(), a.store, a.cfg.Storage.Bucket); err != nil {
				logg.Warn("Report bucket unavailable", zap.Error(err))
			}
		}
		if a.runs == nil {
			logg.Info("Run history disabled")
		}
		if !a.cfg.Server.IsAuthEnabled() {
			logg.Warn("API key not set, requests are not authenticated")
		}
		if a.cfg.Server.DataDir == "" {
			logg.Info("Data directory not set, requests may only use object storage locations")
		}

		app := newServer(a, compare.NewFeature(a.service(), a.cfg.Server.DataDir))

		go func() {
			logg.Info("Starting server", zap.String("port", a.cfg.Server.Port))
			if err := app.Listen(a.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

// newServer builds the fiber app with middleware and the given features.
func newServer(a *app, features ...loader.Feature) *fiber.App {
	logg := a.log
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// RayID first so every later log line carries it
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

	// Docs stay public
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey, Skip: []string{"/swagger"}}))

	mgr := loader.NewManager()
	for _, f := range features {
		mgr.Register(f)
	}
	loaded, err := mgr.LoadAll(app)
	if err != nil {
		logg.Fatal("Failed to load features", zap.Error(err))
	}
	logg.Info("Features loaded", zap.Strings("features", loaded))

	return app
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
