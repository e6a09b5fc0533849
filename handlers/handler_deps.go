package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"videoable/config"
	"videoable/internal/editor"
	"videoable/internal/ffmpeg"
	"videoable/internal/jobs"
	"videoable/internal/store"
	"videoable/internal/worker"
	"videoable/models"
)

// ChatEngine is the operation the chat handler needs from the editor.
// Declared here so tests can substitute a scripted engine.
type ChatEngine interface {
	ProcessMessage(ctx context.Context, videoPath string, prior *models.Edit, message string) editor.Result
}

// ApplicationHandler holds shared dependencies for all handlers.
type ApplicationHandler struct {
	Store      store.Store
	Engine     ChatEngine
	Media      *ffmpeg.Tool
	Jobs       *jobs.Registry
	Dispatcher *worker.Dispatcher
	Logger     *logrus.Logger
	Config     *config.Config

	validate *validator.Validate
}

// NewApplicationHandler creates an ApplicationHandler with the given
// dependencies.
func NewApplicationHandler(st store.Store, engine ChatEngine, media *ffmpeg.Tool, registry *jobs.Registry, dispatcher *worker.Dispatcher, logger *logrus.Logger, cfg *config.Config) *ApplicationHandler {
	return &ApplicationHandler{
		Store:      st,
		Engine:     engine,
		Media:      media,
		Jobs:       registry,
		Dispatcher: dispatcher,
		Logger:     logger,
		Config:     cfg,
		validate:   validator.New(),
	}
}
