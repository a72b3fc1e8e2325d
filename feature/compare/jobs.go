package compare

import (
	"slices"
	"sync"
	"time"

	"tablediff/core/diff"
)

// JobStatus is the state of a background comparison.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

// DefaultMaxJobs is used when no positive limit is configured.
const DefaultMaxJobs = 100

// Job is a snapshot of a background comparison.
type Job struct {
	ID          string       `json:"id"`
	Status      JobStatus    `json:"status"`
	SubmittedAt time.Time    `json:"submitted_at"`
	Result      *diff.Result `json:"result,omitempty"`
	Error       string       `json:"error,omitempty"`
}

type jobEntry struct {
	id        string
	submitted time.Time
	task      *diff.Task
}

func (e *jobEntry) snapshot() *Job {
	j := &Job{ID: e.id, Status: JobPending, SubmittedAt: e.submitted}
	if !e.task.Finished() {
		return j
	}

	res, err := e.task.Wait()
	if err != nil {
		j.Status = JobFailed
		j.Error = err.Error()
		return j
	}
	j.Status = JobSucceeded
	j.Result = res
	return j
}

// jobRegistry keeps the most recent jobs. Once more than max are held,
// the oldest finished ones are evicted; pending jobs are never dropped.
type jobRegistry struct {
	mu    sync.Mutex
	max   int
	order []string
	jobs  map[string]*jobEntry
}

func newJobRegistry(max int) *jobRegistry {
	if max <= 0 {
		max = DefaultMaxJobs
	}
	return &jobRegistry{max: max, jobs: make(map[string]*jobEntry)}
}

func (r *jobRegistry) add(e *jobEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.jobs[e.id] = e
	r.order = append(r.order, e.id)

	for len(r.order) > r.max {
		i := slices.IndexFunc(r.order, func(id string) bool {
			return r.jobs[id].task.Finished()
		})
		if i < 0 {
			return
		}
		delete(r.jobs, r.order[i])
		r.order = slices.Delete(r.order, i, i+1)
	}
}

func (r *jobRegistry) get(id string) (*jobEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.jobs[id]
	return e, ok
}

func (r *jobRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.jobs)
}
