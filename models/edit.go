package models

import "time"

// Edit is one immutable snapshot of (subtitles, style) produced by
// processing a single chat message. Edits form an append-only log per
// session ordered by creation time; the entry with the latest
// creation time is the session's current state.
type Edit struct {
	ID           int64             `json:"id"`
	SessionID    int64             `json:"session_id"`
	UserMessage  string            `json:"user_message"`
	SubtitleData []SubtitleSegment `json:"subtitle_data"`
	StyleConfig  StyleConfig       `json:"style_config"`
	CreatedAt    time.Time         `json:"created_at"`
}
