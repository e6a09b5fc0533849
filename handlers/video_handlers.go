package handlers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"videoable/internal/ffmpeg"
	"videoable/internal/store"
	"videoable/models"
	"videoable/utils"
)

// UploadVideo accepts a multipart video upload and creates a new
// editing session for it.
// POST /api/v1/videos/upload
func (h *ApplicationHandler) UploadVideo(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "No file provided")
	}

	if !ffmpeg.ValidateExtension(file.Filename) {
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			"Invalid video format. Supported: mp4, avi, mov, mkv, webm")
	}

	storedName := uuid.NewString() + filepath.Ext(file.Filename)
	videoPath := filepath.Join(h.Config.UploadsDir, storedName)

	if err := c.SaveFile(file, videoPath); err != nil {
		h.Logger.Errorf("Saving uploaded file failed: %v", err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Upload failed: %v", err))
	}

	session, err := h.Store.CreateSession(c.Context(), file.Filename, videoPath)
	if err != nil {
		// The session is the owner of the file; without one the
		// upload is orphaned.
		os.Remove(videoPath)
		h.Logger.Errorf("Creating session for upload %s failed: %v", file.Filename, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Upload failed: %v", err))
	}

	// Duration is best-effort metadata; a probe failure does not fail
	// the upload.
	var duration float64
	if d, err := h.Media.ProbeDuration(c.Context(), videoPath); err == nil {
		duration = d
	} else {
		h.Logger.Warnf("Could not probe duration of %s: %v", videoPath, err)
	}

	h.Logger.Infof("Created session %d for upload %s", session.ID, file.Filename)
	return utils.RespondWithJSON(c, fiber.StatusCreated, fiber.Map{
		"id":               session.ID,
		"video_filename":   session.VideoFilename,
		"video_url":        "/" + h.Config.UploadsDir + "/" + storedName,
		"duration_seconds": duration,
		"created_at":       session.CreatedAt,
	})
}

// GetVideo returns one session's details.
// GET /api/v1/videos/:sessionId
func (h *ApplicationHandler) GetVideo(c *fiber.Ctx) error {
	sessionID, err := parseSessionID(c)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid session ID format")
	}

	session, err := h.Store.GetSession(c.Context(), sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return utils.RespondWithError(c, fiber.StatusNotFound, "Session not found")
	}
	if err != nil {
		h.Logger.Errorf("Fetching session %d failed: %v", sessionID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not retrieve session")
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, sessionView(h, session))
}

// ListVideos returns all sessions.
// GET /api/v1/videos
func (h *ApplicationHandler) ListVideos(c *fiber.Ctx) error {
	sessions, err := h.Store.ListSessions(c.Context())
	if err != nil {
		h.Logger.Errorf("Listing sessions failed: %v", err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not retrieve sessions")
	}

	views := make([]fiber.Map, 0, len(sessions))
	for _, session := range sessions {
		views = append(views, sessionView(h, session))
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, views)
}

// DeleteVideo deletes a session, its edit history and the source
// video file.
// DELETE /api/v1/videos/:sessionId
func (h *ApplicationHandler) DeleteVideo(c *fiber.Ctx) error {
	sessionID, err := parseSessionID(c)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid session ID format")
	}

	session, err := h.Store.GetSession(c.Context(), sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return utils.RespondWithError(c, fiber.StatusNotFound, "Session not found")
	}
	if err != nil {
		h.Logger.Errorf("Fetching session %d failed: %v", sessionID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not retrieve session")
	}

	if err := os.Remove(session.VideoPath); err != nil && !os.IsNotExist(err) {
		h.Logger.Warnf("Could not remove video file %s: %v", session.VideoPath, err)
	}

	deleted, err := h.Store.DeleteEdits(c.Context(), sessionID)
	if err != nil {
		h.Logger.Errorf("Deleting edits for session %d failed: %v", sessionID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not delete session data")
	}

	if err := h.Store.DeleteSession(c.Context(), sessionID); err != nil && !errors.Is(err, store.ErrNotFound) {
		h.Logger.Errorf("Deleting session %d failed: %v", sessionID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not delete session")
	}

	h.Logger.Infof("Deleted session %d and %d edits", sessionID, deleted)
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"message": "Session deleted successfully",
	})
}

func sessionView(h *ApplicationHandler, session models.Session) fiber.Map {
	return fiber.Map{
		"id":             session.ID,
		"video_filename": session.VideoFilename,
		"video_url":      "/" + h.Config.UploadsDir + "/" + filepath.Base(session.VideoPath),
		"created_at":     session.CreatedAt,
	}
}

func parseSessionID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("sessionId"), 10, 64)
}
