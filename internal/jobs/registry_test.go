package jobs

import "testing"

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry()

	created := r.Create("job-1", 7)
	if created.State != StatePending {
		t.Errorf("Create() state = %q, want pending", created.State)
	}
	if created.SessionID != 7 {
		t.Errorf("SessionID = %d, want 7", created.SessionID)
	}

	r.MarkProcessing("job-1")
	got, ok := r.Get("job-1")
	if !ok {
		t.Fatal("Get() ok = false")
	}
	if got.State != StateProcessing {
		t.Errorf("state = %q, want processing", got.State)
	}
	if got.CompletedAt != nil {
		t.Error("CompletedAt set before completion")
	}

	r.MarkCompleted("job-1", "/outputs/result.mp4")
	got, _ = r.Get("job-1")
	if got.State != StateCompleted {
		t.Errorf("state = %q, want completed", got.State)
	}
	if got.DownloadURL != "/outputs/result.mp4" {
		t.Errorf("DownloadURL = %q", got.DownloadURL)
	}
	if got.CompletedAt == nil {
		t.Error("CompletedAt not set on completion")
	}
}

func TestRegistryMarkFailed(t *testing.T) {
	r := NewRegistry()
	r.Create("job-2", 1)
	r.MarkFailed("job-2", "ffmpeg exited with code 1")

	got, _ := r.Get("job-2")
	if got.State != StateFailed {
		t.Errorf("state = %q, want failed", got.State)
	}
	if got.ErrorMessage != "ffmpeg exited with code 1" {
		t.Errorf("ErrorMessage = %q", got.ErrorMessage)
	}
}

func TestRegistryUnknownJob(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Get("nope"); ok {
		t.Error("Get() ok = true for unknown job")
	}
	// Transitions on unknown ids are no-ops.
	r.MarkProcessing("nope")
	r.MarkCompleted("nope", "url")
	r.MarkFailed("nope", "msg")
}
