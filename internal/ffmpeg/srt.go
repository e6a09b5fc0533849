package ffmpeg

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"videoable/models"
)

// FormatTimestamp converts seconds to the SRT timestamp format
// HH:MM:SS,mmm. Milliseconds are truncated, not rounded.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	millis := int((seconds - float64(total)) * 1000)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// SerializeSRT renders segments as an SRT caption track: blocks
// numbered from 1, each with a timestamp line and the segment text,
// separated by blank lines.
func SerializeSRT(subtitles []models.SubtitleSegment) string {
	var b strings.Builder
	for i, sub := range subtitles {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString("\n")
		b.WriteString(FormatTimestamp(sub.Start))
		b.WriteString(" --> ")
		b.WriteString(FormatTimestamp(sub.End))
		b.WriteString("\n")
		b.WriteString(sub.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}

// WriteSRT writes the SRT serialization of subtitles to path.
func WriteSRT(subtitles []models.SubtitleSegment, path string) error {
	if err := os.WriteFile(path, []byte(SerializeSRT(subtitles)), 0o644); err != nil {
		return fmt.Errorf("write srt file: %w", err)
	}
	return nil
}

// ParseSRT parses an SRT caption track back into segments. Used to
// verify that serialization round-trips; the render path itself only
// writes SRT.
func ParseSRT(data string) ([]models.SubtitleSegment, error) {
	var out []models.SubtitleSegment
	blocks := strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n\n")
	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		lines := strings.SplitN(block, "\n", 3)
		if len(lines) < 3 {
			return nil, fmt.Errorf("malformed srt block: %q", block)
		}
		start, end, err := parseTimestampLine(lines[1])
		if err != nil {
			return nil, err
		}
		out = append(out, models.SubtitleSegment{Start: start, End: end, Text: lines[2]})
	}
	return out, nil
}

func parseTimestampLine(line string) (float64, float64, error) {
	parts := strings.Split(line, " --> ")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed srt timestamp line: %q", line)
	}
	start, err := parseTimestamp(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	end, err := parseTimestamp(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func parseTimestamp(ts string) (float64, error) {
	var hours, minutes, secs, millis int
	if _, err := fmt.Sscanf(ts, "%02d:%02d:%02d,%03d", &hours, &minutes, &secs, &millis); err != nil {
		return 0, fmt.Errorf("malformed srt timestamp %q: %w", ts, err)
	}
	return float64(hours*3600+minutes*60+secs) + float64(millis)/1000, nil
}
