package transcribe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writeTestAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio.wav")
	if err := os.WriteFile(path, []byte("RIFF fake wav data"), 0o644); err != nil {
		t.Fatalf("write test audio: %v", err)
	}
	return path
}

func TestTranscribe(t *testing.T) {
	var gotPath, gotModel, gotFormat, gotGranularity, gotFilename string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		gotModel = r.FormValue("model")
		gotFormat = r.FormValue("response_format")
		gotGranularity = r.FormValue("timestamp_granularities[]")
		if _, hdr, err := r.FormFile("file"); err == nil {
			gotFilename = hdr.Filename
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"text": "hello world",
			"segments": [
				{"start": 0.0, "end": 1.5, "text": "hello"},
				{"start": 1.5, "end": 3.0, "text": "world"}
			]
		}`))
	}))
	defer srv.Close()

	c := New("test-key", "whisper-1", srv.URL)
	got, err := c.Transcribe(context.Background(), writeTestAudio(t))
	if err != nil {
		t.Fatalf("Transcribe() error: %v", err)
	}

	if gotPath != "/v1/audio/transcriptions" {
		t.Errorf("request path = %q", gotPath)
	}
	if gotModel != "whisper-1" {
		t.Errorf("model field = %q", gotModel)
	}
	if gotFormat != "verbose_json" {
		t.Errorf("response_format field = %q", gotFormat)
	}
	if gotGranularity != "segment" {
		t.Errorf("timestamp_granularities[] field = %q", gotGranularity)
	}
	if gotFilename != "audio.wav" {
		t.Errorf("uploaded filename = %q", gotFilename)
	}

	if got.Text != "hello world" {
		t.Errorf("Text = %q", got.Text)
	}
	if len(got.Segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(got.Segments))
	}
	if got.Segments[1].Start != 1.5 || got.Segments[1].End != 3.0 || got.Segments[1].Text != "world" {
		t.Errorf("segment = %+v", got.Segments[1])
	}
}

func TestTranscribeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "bad audio"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New("k", "", srv.URL)
	if _, err := c.Transcribe(context.Background(), writeTestAudio(t)); err == nil {
		t.Fatal("Transcribe() expected error for 400 response")
	}
}

func TestTranscribeMissingFile(t *testing.T) {
	c := New("k", "", "http://localhost:1")
	if _, err := c.Transcribe(context.Background(), "/does/not/exist.wav"); err == nil {
		t.Fatal("Transcribe() expected error for missing file")
	}
}
