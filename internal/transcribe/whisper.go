// Package transcribe calls a Whisper-compatible speech-to-text API
// with segment-level timestamps.
package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"videoable/models"
)

const requestTimeout = 5 * time.Minute

// Client is a speech-to-text client against the OpenAI audio
// transcriptions endpoint.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// New creates a Client. An empty model or base URL falls back to
// whisper-1 against the OpenAI API.
func New(apiKey, model, baseURL string) *Client {
	if model == "" {
		model = "whisper-1"
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// Transcribe uploads the audio file at audioPath and returns the
// transcription with segment timestamps when the backend provides
// them.
func (c *Client) Transcribe(ctx context.Context, audioPath string) (models.TranscriptionData, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return models.TranscriptionData{}, fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return models.TranscriptionData{}, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return models.TranscriptionData{}, fmt.Errorf("read audio file: %w", err)
	}
	fields := [][2]string{
		{"model", c.model},
		{"response_format", "verbose_json"},
		{"timestamp_granularities[]", "segment"},
	}
	for _, fv := range fields {
		if err := mw.WriteField(fv[0], fv[1]); err != nil {
			return models.TranscriptionData{}, err
		}
	}
	if err := mw.Close(); err != nil {
		return models.TranscriptionData{}, err
	}

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.baseURL+"/v1/audio/transcriptions", &body)
	if err != nil {
		return models.TranscriptionData{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return models.TranscriptionData{}, fmt.Errorf("transcription timeout after %s", requestTimeout)
		}
		return models.TranscriptionData{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(resp.Body)
		return models.TranscriptionData{}, fmt.Errorf("transcription status %d: %s", resp.StatusCode, string(rb))
	}

	var out models.TranscriptionData
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.TranscriptionData{}, fmt.Errorf("decode transcription response: %w", err)
	}
	return out, nil
}
