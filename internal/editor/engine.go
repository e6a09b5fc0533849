// Package editor implements the conversational subtitle-editing state
// machine: a chat message is classified into one of four operation
// kinds, the matching handler transforms the session's latest
// (subtitles, style) state, and a summary is produced for the user.
//
// Every capability failure degrades to a documented fallback so the
// conversation never blocks on a misbehaving backend; ProcessMessage
// therefore returns a Result unconditionally.
package editor

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"videoable/internal/llm"
	"videoable/models"
)

// Fallback subtitle texts.
const (
	sampleSubtitleText      = "Sample subtitle"
	transcriptionFailedText = "Transcription failed"
)

// LanguageModel produces a free-text completion for a system+user
// prompt pair.
type LanguageModel interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Transcriber converts an audio file into a timed transcription.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (models.TranscriptionData, error)
}

// AudioExtractor pulls the audio track out of a video file.
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, videoPath, wavPath string) error
}

// Engine runs the edit operations against injected capabilities.
type Engine struct {
	llm   LanguageModel
	asr   Transcriber
	media AudioExtractor
	log   *logrus.Logger
}

// NewEngine creates an Engine.
func NewEngine(lm LanguageModel, asr Transcriber, media AudioExtractor, log *logrus.Logger) *Engine {
	return &Engine{llm: lm, asr: asr, media: media, log: log}
}

// Result is the outcome of processing one chat message: the new edit
// state plus a human-readable summary.
type Result struct {
	Intent    models.Intent            `json:"intent"`
	Subtitles []models.SubtitleSegment `json:"subtitles"`
	Style     models.StyleConfig       `json:"style"`
	Response  string                   `json:"response"`
}

// ProcessMessage classifies the message, runs the matching operation
// handler against the most recent prior edit (nil means no history)
// and returns the new state. videoPath is only used by transcription.
func (e *Engine) ProcessMessage(ctx context.Context, videoPath string, prior *models.Edit, message string) Result {
	intent := e.resolveIntent(ctx, message)

	var subtitles []models.SubtitleSegment
	var style models.StyleConfig

	switch intent {
	case models.IntentTranscribeAudio:
		subtitles, style = e.transcribeAudio(ctx, videoPath, prior)
	case models.IntentModifyStyle:
		subtitles, style = e.modifyStyle(ctx, message, prior)
	case models.IntentModifyContent:
		subtitles, style = e.modifyContent(ctx, message, prior)
	default:
		subtitles, style = e.generateSubtitles(ctx, message, prior)
	}

	return Result{
		Intent:    intent,
		Subtitles: subtitles,
		Style:     style,
		Response:  Summarize(intent, subtitles, style),
	}
}

// resolveIntent maps the message to one of the four operation kinds.
// Out-of-set responses and transport errors both resolve to
// add_subtitles so classification never blocks an edit.
func (e *Engine) resolveIntent(ctx context.Context, message string) models.Intent {
	response, err := e.llm.Complete(ctx, llm.IntentPrompt, message)
	if err != nil {
		e.log.Warnf("Intent resolution failed, defaulting to add_subtitles: %v", err)
		return models.IntentAddSubtitles
	}

	intent := strings.ToLower(strings.TrimSpace(response))
	if !models.ValidIntent(intent) {
		e.log.Infof("Unrecognized intent %q, defaulting to add_subtitles", intent)
		return models.IntentAddSubtitles
	}
	return models.Intent(intent)
}

// generateSubtitles builds a subtitle list from the message text. Any
// parse failure falls back to a single sample segment; style carries
// forward from the prior edit.
func (e *Engine) generateSubtitles(ctx context.Context, message string, prior *models.Edit) ([]models.SubtitleSegment, models.StyleConfig) {
	_, style := priorState(prior)

	response, err := e.llm.Complete(ctx, llm.GenerationPrompt, message)
	if err != nil {
		e.log.Warnf("Subtitle generation failed, using sample fallback: %v", err)
		return sampleSubtitles(), style
	}

	subtitles := parseSegments(response)
	if len(subtitles) == 0 {
		e.log.Infof("No valid subtitles in generation response, using sample fallback")
		return sampleSubtitles(), style
	}
	return subtitles, style
}

// transcribeAudio extracts the session video's audio and transcribes
// it. Any failure along the path yields the fixed failure segment and
// resets style to the canonical default.
func (e *Engine) transcribeAudio(ctx context.Context, videoPath string, prior *models.Edit) ([]models.SubtitleSegment, models.StyleConfig) {
	subtitles, err := e.runTranscription(ctx, videoPath)
	if err != nil {
		e.log.Warnf("Transcription failed for %s: %v", videoPath, err)
		return []models.SubtitleSegment{{Start: 0.0, End: 5.0, Text: transcriptionFailedText}}, models.DefaultStyle()
	}

	_, style := priorState(prior)
	return subtitles, style
}

func (e *Engine) runTranscription(ctx context.Context, videoPath string) ([]models.SubtitleSegment, error) {
	wavPath := filepath.Join(os.TempDir(), "videoable-"+uuid.NewString()+".wav")
	if err := e.media.ExtractAudio(ctx, videoPath, wavPath); err != nil {
		os.Remove(wavPath)
		return nil, err
	}
	defer os.Remove(wavPath)

	transcription, err := e.asr.Transcribe(ctx, wavPath)
	if err != nil {
		return nil, err
	}

	if len(transcription.Segments) == 0 {
		return []models.SubtitleSegment{{Start: 0.0, End: 5.0, Text: transcription.Text}}, nil
	}

	subtitles := make([]models.SubtitleSegment, 0, len(transcription.Segments))
	for _, seg := range transcription.Segments {
		subtitles = append(subtitles, models.SubtitleSegment{
			Start: seg.Start,
			End:   seg.End,
			Text:  strings.TrimSpace(seg.Text),
		})
	}
	return subtitles, nil
}

// modifyStyle applies the instruction to the prior style. The model's
// response is treated as a set of optional field deltas over the
// prior style rather than trusted wholesale: missing fields keep
// their prior values, an invalid position keeps the prior position,
// and numeric fields are clamped after the merge. Subtitles pass
// through unchanged.
func (e *Engine) modifyStyle(ctx context.Context, message string, prior *models.Edit) ([]models.SubtitleSegment, models.StyleConfig) {
	subtitles, current := priorState(prior)

	response, err := e.llm.Complete(ctx, llm.StylePrompt(current), message)
	if err != nil {
		e.log.Warnf("Style modification failed, keeping prior style: %v", err)
		return subtitles, current
	}

	merged, ok := mergeStyle(response, current)
	if !ok {
		e.log.Infof("Unparseable style response, keeping prior style")
		return subtitles, current
	}
	return subtitles, merged
}

// modifyContent replaces the subtitle list per the instruction. A
// response with no valid elements leaves the prior list untouched;
// style always passes through.
func (e *Engine) modifyContent(ctx context.Context, message string, prior *models.Edit) ([]models.SubtitleSegment, models.StyleConfig) {
	current, style := priorState(prior)

	currentJSON, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return current, style
	}

	response, err := e.llm.Complete(ctx, llm.ContentPrompt(string(currentJSON)), message)
	if err != nil {
		e.log.Warnf("Content modification failed, keeping prior subtitles: %v", err)
		return current, style
	}

	subtitles := parseSegments(response)
	if len(subtitles) == 0 {
		e.log.Infof("No valid subtitles in content response, keeping prior subtitles")
		return current, style
	}
	return subtitles, style
}

// priorState returns the subtitles and style of the latest edit, or
// empty subtitles with the default style when there is no history.
func priorState(prior *models.Edit) ([]models.SubtitleSegment, models.StyleConfig) {
	if prior == nil {
		return []models.SubtitleSegment{}, models.DefaultStyle()
	}
	return prior.SubtitleData, prior.StyleConfig
}

func sampleSubtitles() []models.SubtitleSegment {
	return []models.SubtitleSegment{{Start: 0.0, End: 5.0, Text: sampleSubtitleText}}
}
