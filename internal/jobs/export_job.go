package jobs

import (
	"context"
	"fmt"

	"videoable/models"
)

// Renderer burns subtitles into a video file.
type Renderer interface {
	Overlay(ctx context.Context, videoPath string, subtitles []models.SubtitleSegment, style models.StyleConfig, outputPath string) error
}

// ExportJob burns one session's latest edit into its video in the
// background, reporting progress through the registry.
type ExportJob struct {
	JobID       string
	SessionID   int64
	VideoPath   string
	Subtitles   []models.SubtitleSegment
	Style       models.StyleConfig
	OutputPath  string
	DownloadURL string
	Renderer    Renderer
	Registry    *Registry
}

// ID returns the job's identifier.
func (j *ExportJob) ID() string { return j.JobID }

// Execute runs the overlay pipeline and records the outcome.
func (j *ExportJob) Execute() error {
	j.Registry.MarkProcessing(j.JobID)

	if err := j.Renderer.Overlay(context.Background(), j.VideoPath, j.Subtitles, j.Style, j.OutputPath); err != nil {
		j.Registry.MarkFailed(j.JobID, err.Error())
		return fmt.Errorf("export job %s: %w", j.JobID, err)
	}

	j.Registry.MarkCompleted(j.JobID, j.DownloadURL)
	return nil
}
