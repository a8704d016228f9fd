package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"docupload/docs"
	"docupload/internal/config"
	handlers "docupload/internal/http/handler"
	"docupload/internal/http/middleware"
	"docupload/internal/logging"
	"docupload/internal/metrics"
	"docupload/internal/otel"
	"docupload/internal/remote"
	"docupload/internal/service"
	"docupload/internal/session"
)

// @title Document Upload Form API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := cfg.Location()
	logger := logging.Stdout(loc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	domainMetrics, err := metrics.New(reg)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register http metrics: %v", err)
	}

	// Remote employee/document API client (traced via otelhttp)
	api, err := remote.NewHTTP(cfg.Remote)
	if err != nil {
		log.Fatalf("failed to initialize remote api client: %v", err)
	}

	reader := session.NewReader(api, cfg.Form.PlaceholderName, logger, domainMetrics)
	forms := service.NewRegistry(domainMetrics)
	formSvc := service.NewFormService(reader, api, forms, service.FormOptions{
		LoginPath:     cfg.Form.LoginPath,
		ResultsPath:   cfg.Form.ResultsPath,
		RedirectDelay: cfg.Form.RedirectDelay(),
		Placeholder:   cfg.Form.PlaceholderName,
		Logger:        logger,
		Metrics:       domainMetrics,
	})
	go forms.RunSweeper(ctx, time.Minute, cfg.Form.FormTTL(), logger)

	maxUpload := int64(cfg.Form.MaxUploadMB) << 20
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// One document per request plus multipart overhead
		BodyLimit: int(maxUpload) + 1<<20,
	})

	app.Use(otelfiber.Middleware())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))
	app.Use(middleware.RequestID())
	app.Use(middleware.LoggerWithWriter(os.Stdout, loc))
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, handlers.Deps{
		Forms:          formSvc,
		Remote:         api,
		Gatherer:       reg,
		MaxUploadBytes: maxUpload,
	})

	if cfg.Swagger {
		// Swagger UI with dynamic host and scheme
		app.Get("/swagger/*", func(c *fiber.Ctx) error {
			scheme := c.Protocol()
			if proto := c.Get("X-Forwarded-Proto"); proto != "" {
				scheme = strings.Split(proto, ",")[0]
			}

			docs.SwaggerInfo.Host = c.Get("Host")
			docs.SwaggerInfo.Schemes = []string{scheme}

			return swagger.HandlerDefault(c)
		})
	}

	go func() {
		<-ctx.Done()
		logger.Info("server_shutdown", nil)
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	addr := ":" + cfg.Port
	logger.Info("server_starting", map[string]any{"addr": addr, "remote_api": cfg.Remote.BaseURL})
	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
