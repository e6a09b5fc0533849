package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"videoable/internal/store"
	"videoable/models"
	"videoable/utils"
)

// ChatMessageRequest is the payload for processing a chat message.
type ChatMessageRequest struct {
	SessionID int64  `json:"session_id" validate:"required"`
	Message   string `json:"message" validate:"required,min=1"`
}

// PostChatMessage processes one chat message: resolve the intent, run
// the operation against the latest edit, append the result to the
// session's edit log.
// POST /api/v1/chat/message
func (h *ApplicationHandler) PostChatMessage(c *fiber.Ctx) error {
	var payload ChatMessageRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse JSON: %v", err))
	}
	if err := h.validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, strings.Join(utils.FormatValidationErrors(err), ", "))
	}

	session, err := h.Store.GetSession(c.Context(), payload.SessionID)
	if errors.Is(err, store.ErrNotFound) {
		return utils.RespondWithError(c, fiber.StatusNotFound, "Session not found")
	}
	if err != nil {
		h.Logger.Errorf("Fetching session %d failed: %v", payload.SessionID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not retrieve session")
	}

	var prior *models.Edit
	latest, err := h.Store.LatestEdit(c.Context(), session.ID)
	switch {
	case err == nil:
		prior = &latest
	case errors.Is(err, store.ErrNotFound):
		// First message of the session; handlers start from defaults.
	default:
		h.Logger.Errorf("Fetching latest edit for session %d failed: %v", session.ID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not retrieve edit history")
	}

	result := h.Engine.ProcessMessage(c.Context(), session.VideoPath, prior, payload.Message)

	edit, err := h.Store.AppendEdit(c.Context(), session.ID, payload.Message, result.Subtitles, result.Style)
	if err != nil {
		h.Logger.Errorf("Appending edit for session %d failed: %v", session.ID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not save edit")
	}

	h.Logger.Infof("Session %d: %s -> edit %d (%d subtitles)", session.ID, result.Intent, edit.ID, len(result.Subtitles))
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"response":  result.Response,
		"subtitles": result.Subtitles,
		"style":     result.Style,
	})
}

// GetChatHistory returns a session's full edit log.
// GET /api/v1/chat/:sessionId/history
func (h *ApplicationHandler) GetChatHistory(c *fiber.Ctx) error {
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

	edits, err := h.Store.ListEdits(c.Context(), sessionID)
	if err != nil {
		h.Logger.Errorf("Listing edits for session %d failed: %v", sessionID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not retrieve edit history")
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"session_id":  sessionID,
		"total_edits": len(edits),
		"edits":       edits,
	})
}

// GetLatestEdit returns the most recent edit of a session.
// GET /api/v1/chat/:sessionId/latest
func (h *ApplicationHandler) GetLatestEdit(c *fiber.Ctx) error {
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

	edit, err := h.Store.LatestEdit(c.Context(), sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return utils.RespondWithError(c, fiber.StatusNotFound, "No edits found for this session")
	}
	if err != nil {
		h.Logger.Errorf("Fetching latest edit for session %d failed: %v", sessionID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not retrieve latest edit")
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, edit)
}
