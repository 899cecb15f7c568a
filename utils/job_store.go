package utils

import (
	"sync"
	"time"

	"resonance-backend/dtos"

	"github.com/google/uuid"
)

// JobStore manages catalog import jobs in memory.
type JobStore struct {
	jobs map[uuid.UUID]*dtos.BatchJob
	mu   sync.RWMutex
}

// Store is the global job store instance.
var Store = &JobStore{
	jobs: make(map[uuid.UUID]*dtos.BatchJob),
}

// CleanupOldJobs removes completed/failed jobs older than 1 hour.
func (js *JobStore) CleanupOldJobs() {
	js.mu.Lock()
	defer js.mu.Unlock()

	cutoff := time.Now().Add(-1 * time.Hour)
	for id, job := range js.jobs {
		if job.CompletedAt != nil && job.CompletedAt.Before(cutoff) {
			delete(js.jobs, id)
		} else if job.StartedAt.Before(cutoff) && (job.Status == dtos.JobStatusCompleted || job.Status == dtos.JobStatusFailed) {
			delete(js.jobs, id)
		}
	}
}

// CreateJob registers a new import job covering total instruments.
func (js *JobStore) CreateJob(total int) *dtos.BatchJob {
	// Clean up old jobs on each new creation
	js.CleanupOldJobs()

	js.mu.Lock()
	defer js.mu.Unlock()

	job := &dtos.BatchJob{
		ID:        uuid.New(),
		Status:    dtos.JobStatusPending,
		Total:     total,
		Errors:    []dtos.JobError{},
		StartedAt: time.Now(),
	}

	js.jobs[job.ID] = job
	return job
}

// GetJob retrieves a copy of a job by ID. Callers get a snapshot rather
// than the live record, so serializing it cannot race with a running
// import mutating the job under the store lock.
func (js *JobStore) GetJob(id uuid.UUID) (*dtos.BatchJob, bool) {
	js.mu.RLock()
	defer js.mu.RUnlock()

	job, exists := js.jobs[id]
	if !exists {
		return nil, false
	}
	snapshot := *job
	snapshot.Errors = append([]dtos.JobError(nil), job.Errors...)
	return &snapshot, true
}

// SetProcessing marks a job as running.
func (js *JobStore) SetProcessing(id uuid.UUID) {
	js.mu.Lock()
	defer js.mu.Unlock()

	if job, exists := js.jobs[id]; exists {
		job.Status = dtos.JobStatusProcessing
	}
}

// UpdateJob applies updates to a job under the store lock.
func (js *JobStore) UpdateJob(id uuid.UUID, updates func(*dtos.BatchJob)) {
	js.mu.Lock()
	defer js.mu.Unlock()

	if job, exists := js.jobs[id]; exists {
		updates(job)
	}
}

// CompleteJob marks a job as finished with the given terminal status.
func (js *JobStore) CompleteJob(id uuid.UUID, status string) {
	js.mu.Lock()
	defer js.mu.Unlock()

	if job, exists := js.jobs[id]; exists {
		job.Status = status
		job.Progress = 100
		now := time.Now()
		job.CompletedAt = &now
	}
}
