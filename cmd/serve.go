package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Zurki/immich-avif-generator/core/loader"
	"github.com/Zurki/immich-avif-generator/core/logger"
	"github.com/Zurki/immich-avif-generator/core/middleware/rayid"
	"github.com/Zurki/immich-avif-generator/feature/library"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Starts the HTTP server over the local library without running a sync pass.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := initApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		return serveHTTP(a)
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}

// buildHTTPApp assembles the fiber app: ray id first so every later log
// line can be traced, then request logging, then the features.
func buildHTTPApp(a *app) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true, // We log our own startup message
	})

	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(a.logger, c)
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

	mgr := loader.NewManager()
	mgr.Register(library.NewFeature(a.store, a.logger))

	if err := mgr.LoadAll(app); err != nil {
		return nil, err
	}
	return app, nil
}

// serveHTTP heals the store, starts the server, and blocks until an
// interrupt arrives.
func serveHTTP(a *app) error {
	if err := a.store.Sweep(); err != nil {
		a.logger.Warn("Temp file sweep failed", zap.Error(err))
	}
	if healed, err := a.store.Verify(); err != nil {
		a.logger.Warn("Index verification failed", zap.Error(err))
	} else if healed > 0 {
		a.logger.Info("Healed index entries with missing variants", zap.Int("healed", healed))
	}

	app, err := buildHTTPApp(a)
	if err != nil {
		a.logger.Error("Failed to load features", zap.Error(err))
		return err
	}

	go func() {
		addr := a.cfg.Server.Addr()
		a.logger.Info("Starting server", zap.String("addr", addr))
		if err := app.Listen(addr); err != nil {
			a.logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	a.logger.Info("Shutting down server...")
	return app.Shutdown()
}
