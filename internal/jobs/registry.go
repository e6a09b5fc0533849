// Package jobs holds the background export job and the in-memory
// registry the job-status endpoint reads from. Export jobs are
// ephemeral; they do not survive a restart.
package jobs

import (
	"sync"
	"time"
)

// Export job states.
const (
	StatePending    = "pending"
	StateProcessing = "processing"
	StateCompleted  = "completed"
	StateFailed     = "failed"
)

// ExportStatus is the observable state of one export job.
type ExportStatus struct {
	ID           string     `json:"id"`
	SessionID    int64      `json:"session_id"`
	State        string     `json:"state"`
	DownloadURL  string     `json:"download_url,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// Registry tracks export jobs by id.
type Registry struct {
	mu   sync.RWMutex
	jobs map[string]ExportStatus
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{jobs: make(map[string]ExportStatus)}
}

// Create registers a new pending job.
func (r *Registry) Create(id string, sessionID int64) ExportStatus {
	now := time.Now().UTC()
	status := ExportStatus{
		ID:        id,
		SessionID: sessionID,
		State:     StatePending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.mu.Lock()
	r.jobs[id] = status
	r.mu.Unlock()
	return status
}

// Get returns the status of a job.
func (r *Registry) Get(id string) (ExportStatus, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	status, ok := r.jobs[id]
	return status, ok
}

// MarkProcessing transitions a job to the processing state.
func (r *Registry) MarkProcessing(id string) {
	r.update(id, func(s *ExportStatus) {
		s.State = StateProcessing
	})
}

// MarkCompleted transitions a job to completed with its download URL.
func (r *Registry) MarkCompleted(id, downloadURL string) {
	r.update(id, func(s *ExportStatus) {
		now := time.Now().UTC()
		s.State = StateCompleted
		s.DownloadURL = downloadURL
		s.CompletedAt = &now
	})
}

// MarkFailed transitions a job to failed with the error message.
func (r *Registry) MarkFailed(id, message string) {
	r.update(id, func(s *ExportStatus) {
		now := time.Now().UTC()
		s.State = StateFailed
		s.ErrorMessage = message
		s.CompletedAt = &now
	})
}

func (r *Registry) update(id string, mutate func(*ExportStatus)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	status, ok := r.jobs[id]
	if !ok {
		return
	}
	mutate(&status)
	status.UpdatedAt = time.Now().UTC()
	r.jobs[id] = status
}
