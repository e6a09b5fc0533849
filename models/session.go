package models

import "time"

// Session represents one uploaded video and owns its edit history.
// Deleting a session cascades to its edits and the source video file.
type Session struct {
	ID            int64     `json:"id"`
	VideoFilename string    `json:"video_filename"`
	VideoPath     string    `json:"video_path"`
	CreatedAt     time.Time `json:"created_at"`
}
