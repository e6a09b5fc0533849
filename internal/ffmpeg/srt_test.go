package ffmpeg

import (
	"testing"

	"videoable/models"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00,000"},
		{1.5, "00:00:01,500"},
		{65.5, "00:01:05,500"},
		{3661.25, "01:01:01,250"},
		{7322.5, "02:02:02,500"},
		// Milliseconds truncate, never round.
		{0.9999, "00:00:00,999"},
		{-3, "00:00:00,000"},
	}

	for _, tt := range tests {
		if got := FormatTimestamp(tt.seconds); got != tt.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestSerializeSRT(t *testing.T) {
	subtitles := []models.SubtitleSegment{
		{Start: 0, End: 2.5, Text: "Hello world"},
		{Start: 2.5, End: 5, Text: "Second line"},
	}

	want := "1\n00:00:00,000 --> 00:00:02,500\nHello world\n\n" +
		"2\n00:00:02,500 --> 00:00:05,000\nSecond line\n\n"

	if got := SerializeSRT(subtitles); got != want {
		t.Errorf("SerializeSRT() = %q, want %q", got, want)
	}
}

func TestSerializeSRTEmpty(t *testing.T) {
	if got := SerializeSRT(nil); got != "" {
		t.Errorf("SerializeSRT(nil) = %q, want empty", got)
	}
}

func TestParseSRTRoundTrip(t *testing.T) {
	subtitles := []models.SubtitleSegment{
		{Start: 0, End: 2.5, Text: "Hello world"},
		{Start: 65.5, End: 70.125, Text: "Second line"},
	}

	parsed, err := ParseSRT(SerializeSRT(subtitles))
	if err != nil {
		t.Fatalf("ParseSRT() error: %v", err)
	}
	if len(parsed) != len(subtitles) {
		t.Fatalf("ParseSRT() returned %d segments, want %d", len(parsed), len(subtitles))
	}
	for i := range subtitles {
		if parsed[i] != subtitles[i] {
			t.Errorf("segment %d = %+v, want %+v", i, parsed[i], subtitles[i])
		}
	}
}

func TestParseSRTMalformed(t *testing.T) {
	for _, data := range []string{
		"1\nnot a timestamp line\ntext",
		"1\n00:00:00,000 but no arrow\ntext",
		"just one line",
	} {
		if _, err := ParseSRT(data); err == nil {
			t.Errorf("ParseSRT(%q) expected error, got nil", data)
		}
	}
}
