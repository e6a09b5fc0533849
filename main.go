package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"

	"videoable/config"
	"videoable/handlers"
	"videoable/internal/editor"
	"videoable/internal/ffmpeg"
	"videoable/internal/jobs"
	"videoable/internal/llm"
	"videoable/internal/store"
	"videoable/internal/store/sqlitestore"
	"videoable/internal/store/supastore"
	"videoable/internal/transcribe"
	"videoable/internal/worker"
)

const exportQueueSize = 100

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg := config.NewLogger(cfg.LogLevel)

	if err := cfg.EnsureDirectories(); err != nil {
		logg.Fatalf("Failed to create working directories: %v", err)
	}

	var st store.Store
	switch cfg.StoreBackend {
	case config.StoreSupabase:
		st, err = supastore.New(cfg.SupabaseURL, cfg.SupabaseServiceKey)
	default:
		st, err = sqlitestore.Open(cfg.DataDir)
	}
	if err != nil {
		logg.Fatalf("Failed to open %s store: %v", cfg.StoreBackend, err)
	}

	chat := llm.New(cfg.OpenAIAPIKey, cfg.ChatModel, cfg.OpenAIBaseURL)
	whisper := transcribe.New(cfg.OpenAIAPIKey, cfg.WhisperModel, cfg.OpenAIBaseURL)
	media := ffmpeg.NewTool(cfg.FFmpegPath, cfg.FFprobePath, logg)
	engine := editor.NewEngine(chat, whisper, media, logg)

	registry := jobs.NewRegistry()
	dispatcher := worker.NewDispatcher(cfg.ExportWorkers, exportQueueSize, logg)
	dispatcher.Run()

	h := handlers.NewApplicationHandler(st, engine, media, registry, dispatcher, logg, cfg)

	app := fiber.New(fiber.Config{
		BodyLimit: 500 * 1024 * 1024, // large enough for video uploads
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(fiberlogger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "Videoable API is healthy",
		})
	})

	apiV1 := app.Group("/api/v1")

	// Video session routes
	apiV1.Post("/videos/upload", h.UploadVideo)
	apiV1.Get("/videos", h.ListVideos)
	apiV1.Get("/videos/:sessionId", h.GetVideo)
	apiV1.Delete("/videos/:sessionId", h.DeleteVideo)

	// Chat routes
	apiV1.Post("/chat/message", h.PostChatMessage)
	apiV1.Get("/chat/:sessionId/history", h.GetChatHistory)
	apiV1.Get("/chat/:sessionId/latest", h.GetLatestEdit)

	// Export routes
	apiV1.Post("/export/:sessionId", h.ExportVideo)
	apiV1.Post("/export/:sessionId/async", h.ExportVideoAsync)
	apiV1.Get("/export/:sessionId/status", h.GetExportStatus)
	apiV1.Get("/jobs/:jobId", h.GetJobStatus)

	// Serve uploaded videos and exported results
	app.Static("/"+cfg.UploadsDir, cfg.UploadsDir)
	app.Static("/"+cfg.OutputsDir, cfg.OutputsDir)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logg.Infof("Starting Videoable API on %s", addr)
		if err := app.Listen(addr); err != nil {
			logg.Fatalf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("Shutting down")
	dispatcher.Stop()
	if err := app.Shutdown(); err != nil {
		logg.Errorf("Server shutdown: %v", err)
	}
	if err := st.Close(); err != nil {
		logg.Errorf("Store close: %v", err)
	}
}
