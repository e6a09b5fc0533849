package editor

import (
	"fmt"
	"strings"

	"videoable/models"
)

// Summarize renders a deterministic, human-readable description of
// the applied change. It is a pure function of its inputs.
func Summarize(intent models.Intent, subtitles []models.SubtitleSegment, style models.StyleConfig) string {
	switch intent {
	case models.IntentAddSubtitles:
		return fmt.Sprintf("Added %d subtitle%s to your video.", len(subtitles), plural(len(subtitles)))
	case models.IntentTranscribeAudio:
		return fmt.Sprintf("Generated %d subtitle%s from your video audio using AI transcription.", len(subtitles), plural(len(subtitles)))
	case models.IntentModifyStyle:
		return summarizeStyle(style)
	default:
		return "Subtitles updated successfully!"
	}
}

func summarizeStyle(style models.StyleConfig) string {
	parts := []string{
		fmt.Sprintf("Font: %s %dpx", style.FontFamily, style.FontSize),
		fmt.Sprintf("Color: %s", style.FontColor),
	}

	position := fmt.Sprintf("Position: %s", capitalize(style.Position))
	if style.MarginVertical != models.DefaultMarginVertical {
		position += fmt.Sprintf(" (Margin: %dpx)", style.MarginVertical)
	}
	parts = append(parts, position)

	if bg := style.BackgroundColor; bg != "" && bg != models.TransparentBackground && bg != "transparent" {
		parts = append(parts, fmt.Sprintf("Background: %s", bg))
	}
	if style.OutlineWidth > 0 {
		parts = append(parts, fmt.Sprintf("Outline: %dpx %s", style.OutlineWidth, style.OutlineColor))
	}

	return "Style updated:\n" + strings.Join(parts, "\n")
}

func plural(n int) string {
	if n != 1 {
		return "s"
	}
	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
