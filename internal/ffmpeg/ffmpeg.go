// Package ffmpeg wraps the ffmpeg and ffprobe binaries for the
// operations the editor needs: probing duration, extracting audio for
// transcription, and burning a styled caption track into a video.
package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"videoable/models"
)

var allowedExtensions = map[string]bool{
	".mp4":  true,
	".avi":  true,
	".mov":  true,
	".mkv":  true,
	".webm": true,
}

// ValidateExtension reports whether filename has an accepted video
// extension. Matching is case-insensitive.
func ValidateExtension(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Tool runs ffmpeg/ffprobe commands.
type Tool struct {
	ffmpeg  string
	ffprobe string
	log     *logrus.Logger
}

// NewTool creates a Tool. Empty paths fall back to the binaries on
// PATH.
func NewTool(ffmpegPath, ffprobePath string, log *logrus.Logger) *Tool {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Tool{ffmpeg: ffmpegPath, ffprobe: ffprobePath, log: log}
}

type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// ProbeDuration returns the duration of the video at path in seconds.
func (t *Tool) ProbeDuration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, t.ffprobe,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w\n%s", err, string(out))
	}

	var probe ffprobeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return 0, fmt.Errorf("unmarshal ffprobe output: %w\n%s", err, string(out))
	}
	if probe.Format.Duration == "" {
		return 0, fmt.Errorf("no duration in ffprobe output: %s", string(out))
	}

	duration, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", probe.Format.Duration, err)
	}
	return duration, nil
}

// ExtractAudio extracts the audio track of videoPath to wavPath as
// 16 kHz mono PCM, the input format the transcription backend wants.
func (t *Tool) ExtractAudio(ctx context.Context, videoPath, wavPath string) error {
	cmd := exec.CommandContext(ctx, t.ffmpeg,
		"-y",
		"-i", videoPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ac", "1",
		"-ar", "16000",
		wavPath,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg extract audio: %w\n%s", err, string(out))
	}
	return nil
}

// Overlay burns subtitles with the given style into the video at
// videoPath, writing the result to outputPath. The intermediate SRT
// file is removed on every exit path; a partial output file is
// removed on failure. Audio is copied unchanged.
func (t *Tool) Overlay(ctx context.Context, videoPath string, subtitles []models.SubtitleSegment, style models.StyleConfig, outputPath string) error {
	srtPath := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".srt"
	if err := WriteSRT(subtitles, srtPath); err != nil {
		return err
	}

	filter := fmt.Sprintf("subtitles=%s:force_style='%s'", escapeFilterPath(srtPath), ForceStyle(style))
	cmd := exec.CommandContext(ctx, t.ffmpeg,
		"-y",
		"-i", videoPath,
		"-vf", filter,
		"-c:a", "copy",
		outputPath,
	)

	out, err := cmd.CombinedOutput()
	if err != nil {
		os.Remove(srtPath)
		os.Remove(outputPath)
		return fmt.Errorf("ffmpeg subtitle overlay: %w\n%s", err, string(out))
	}

	if err := os.Remove(srtPath); err != nil && t.log != nil {
		t.log.Warnf("Could not remove intermediate SRT file %s: %v", srtPath, err)
	}
	if t.log != nil {
		t.log.Infof("Burned %d subtitles from '%s' into '%s'", len(subtitles), videoPath, outputPath)
	}
	return nil
}

// ffmpeg filter arguments treat backslash and colon specially.
func escapeFilterPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "\\\\")
	p = strings.ReplaceAll(p, ":", "\\:")
	return p
}
