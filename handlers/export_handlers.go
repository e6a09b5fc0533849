package handlers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"videoable/internal/jobs"
	"videoable/internal/store"
	"videoable/models"
	"videoable/utils"
)

// ExportVideo burns the session's latest edit into the source video
// and returns a download URL for the result.
// POST /api/v1/export/:sessionId
func (h *ApplicationHandler) ExportVideo(c *fiber.Ctx) error {
	session, edit, err := h.exportPrereqs(c)
	if session == nil {
		return err
	}

	outputName := uuid.NewString() + ".mp4"
	outputPath := filepath.Join(h.Config.OutputsDir, outputName)

	if err := h.Media.Overlay(c.Context(), session.VideoPath, edit.SubtitleData, edit.StyleConfig, outputPath); err != nil {
		h.Logger.Errorf("Export for session %d failed: %v", session.ID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Video processing failed: %v", err))
	}

	h.Logger.Infof("Exported session %d to %s", session.ID, outputPath)
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"message":      "Video exported successfully",
		"download_url": "/" + h.Config.OutputsDir + "/" + outputName,
	})
}

// ExportVideoAsync queues the export on the worker pool and returns a
// job id for polling.
// POST /api/v1/export/:sessionId/async
func (h *ApplicationHandler) ExportVideoAsync(c *fiber.Ctx) error {
	session, edit, err := h.exportPrereqs(c)
	if session == nil {
		return err
	}

	outputName := uuid.NewString() + ".mp4"
	jobID := uuid.NewString()
	status := h.Jobs.Create(jobID, session.ID)

	job := &jobs.ExportJob{
		JobID:       jobID,
		SessionID:   session.ID,
		VideoPath:   session.VideoPath,
		Subtitles:   edit.SubtitleData,
		Style:       edit.StyleConfig,
		OutputPath:  filepath.Join(h.Config.OutputsDir, outputName),
		DownloadURL: "/" + h.Config.OutputsDir + "/" + outputName,
		Renderer:    h.Media,
		Registry:    h.Jobs,
	}

	if err := h.Dispatcher.Submit(job); err != nil {
		h.Jobs.MarkFailed(jobID, err.Error())
		return utils.RespondWithError(c, fiber.StatusServiceUnavailable, "Export queue is full, try again later")
	}

	return utils.RespondWithJSON(c, fiber.StatusAccepted, status)
}

// GetJobStatus returns the state of a background export job.
// GET /api/v1/jobs/:jobId
func (h *ApplicationHandler) GetJobStatus(c *fiber.Ctx) error {
	jobID := c.Params("jobId")
	if _, err := uuid.Parse(jobID); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid job ID format")
	}

	status, ok := h.Jobs.Get(jobID)
	if !ok {
		return utils.RespondWithError(c, fiber.StatusNotFound, "Job not found")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, status)
}

// GetExportStatus reports whether a session is ready for export.
// GET /api/v1/export/:sessionId/status
func (h *ApplicationHandler) GetExportStatus(c *fiber.Ctx) error {
	sessionID, err := parseSessionID(c)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid session ID format")
	}

	if _, err := h.Store.GetSession(c.Context(), sessionID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.RespondWithError(c, fiber.StatusNotFound, "Session not found")
		}
		h.Logger.Errorf("Fetching session %d failed: %v", sessionID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not retrieve session")
	}

	subtitleCount := 0
	ready := false
	if edit, err := h.Store.LatestEdit(c.Context(), sessionID); err == nil {
		ready = true
		subtitleCount = len(edit.SubtitleData)
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"session_id":       sessionID,
		"ready_for_export": ready,
		"has_subtitles":    subtitleCount > 0,
		"subtitle_count":   subtitleCount,
	})
}

// exportPrereqs validates the common export preconditions: the
// session exists, it has at least one edit, and the source video is
// still on disk. On failure the response has already been written and
// the session pointer is nil.
func (h *ApplicationHandler) exportPrereqs(c *fiber.Ctx) (*models.Session, *models.Edit, error) {
	sessionID, err := parseSessionID(c)
	if err != nil {
		return nil, nil, utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid session ID format")
	}

	session, err := h.Store.GetSession(c.Context(), sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil, utils.RespondWithError(c, fiber.StatusNotFound, "Session not found")
	}
	if err != nil {
		h.Logger.Errorf("Fetching session %d failed: %v", sessionID, err)
		return nil, nil, utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not retrieve session")
	}

	edit, err := h.Store.LatestEdit(c.Context(), sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil, utils.RespondWithError(c, fiber.StatusBadRequest, "No edits found. Please add subtitles first.")
	}
	if err != nil {
		h.Logger.Errorf("Fetching latest edit for session %d failed: %v", sessionID, err)
		return nil, nil, utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not retrieve latest edit")
	}

	if _, err := os.Stat(session.VideoPath); err != nil {
		return nil, nil, utils.RespondWithError(c, fiber.StatusNotFound, "Video file not found")
	}

	return &session, &edit, nil
}
