package editor

import (
	"encoding/json"
	"strings"

	"videoable/models"
)

// Structured responses from the generation capability are untrusted
// input: models wrap JSON in code fences, preface it with prose, drop
// fields, or return garbage. Everything here validates before use and
// reports failure through zero values; callers pick the fallback.

// stripCodeFences removes a surrounding markdown code fence, if any.
func stripCodeFences(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	if i := strings.Index(t, "\n"); i >= 0 {
		t = t[i+1:]
	}
	if j := strings.LastIndex(t, "```"); j >= 0 {
		t = t[:j]
	}
	return strings.TrimSpace(t)
}

// extractJSONArray returns the first bracket-delimited array substring.
func extractJSONArray(s string) (string, bool) {
	t := stripCodeFences(s)
	start := strings.Index(t, "[")
	end := strings.LastIndex(t, "]")
	if start < 0 || end <= start {
		return "", false
	}
	return t[start : end+1], true
}

// extractJSONObject returns the first brace-delimited object substring.
func extractJSONObject(s string) (string, bool) {
	t := stripCodeFences(s)
	start := strings.Index(t, "{")
	end := strings.LastIndex(t, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return t[start : end+1], true
}

// parseSegments parses a capability response into subtitle segments.
// Elements missing any of start/end/text, or with unusable values
// (negative start, non-positive end, empty text), are dropped;
// a nil result means nothing survived and the caller should fall
// back.
func parseSegments(response string) []models.SubtitleSegment {
	raw, ok := extractJSONArray(response)
	if !ok {
		return nil
	}

	var elements []map[string]any
	if err := json.Unmarshal([]byte(raw), &elements); err != nil {
		return nil
	}

	var out []models.SubtitleSegment
	for _, el := range elements {
		start, okStart := el["start"].(float64)
		end, okEnd := el["end"].(float64)
		text, okText := el["text"].(string)
		if !okStart || !okEnd || !okText {
			continue
		}
		if start < 0 || end <= 0 || strings.TrimSpace(text) == "" {
			continue
		}
		out = append(out, models.SubtitleSegment{Start: start, End: end, Text: text})
	}
	return out
}

// styleDelta mirrors StyleConfig with every field optional, so a
// response that drops fields merges instead of zeroing them.
type styleDelta struct {
	FontFamily       *string `json:"font_family"`
	FontSize         *int    `json:"font_size"`
	FontColor        *string `json:"font_color"`
	BackgroundColor  *string `json:"background_color"`
	Position         *string `json:"position"`
	OutlineColor     *string `json:"outline_color"`
	OutlineWidth     *int    `json:"outline_width"`
	MarginVertical   *int    `json:"margin_vertical"`
	MarginHorizontal *int    `json:"margin_horizontal"`
}

// mergeStyle applies a capability response over the prior style.
// Echoing unchanged fields is a best-effort convention of the
// capability, so the merge is defensive: absent fields keep prior
// values, an unknown position keeps the prior position, and numeric
// fields are clamped after the merge. Returns false when the response
// holds no parseable object at all.
func mergeStyle(response string, prior models.StyleConfig) (models.StyleConfig, bool) {
	raw, ok := extractJSONObject(response)
	if !ok {
		return prior, false
	}

	var delta styleDelta
	if err := json.Unmarshal([]byte(raw), &delta); err != nil {
		return prior, false
	}

	merged := prior
	if delta.FontFamily != nil && *delta.FontFamily != "" {
		merged.FontFamily = *delta.FontFamily
	}
	if delta.FontSize != nil {
		merged.FontSize = *delta.FontSize
	}
	if delta.FontColor != nil && *delta.FontColor != "" {
		merged.FontColor = *delta.FontColor
	}
	if delta.BackgroundColor != nil {
		// Empty string is meaningful here: transparent background.
		merged.BackgroundColor = *delta.BackgroundColor
	}
	if delta.Position != nil && models.ValidPosition(*delta.Position) {
		merged.Position = *delta.Position
	}
	if delta.OutlineColor != nil && *delta.OutlineColor != "" {
		merged.OutlineColor = *delta.OutlineColor
	}
	if delta.OutlineWidth != nil {
		merged.OutlineWidth = *delta.OutlineWidth
	}
	if delta.MarginVertical != nil {
		merged.MarginVertical = *delta.MarginVertical
	}
	if delta.MarginHorizontal != nil {
		merged.MarginHorizontal = *delta.MarginHorizontal
	}

	merged.Clamp()
	return merged, true
}
