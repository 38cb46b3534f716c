package chat

import (
	"context"
	"sync"

	"github.com/jonkmatsumo/interview-agent/internal/persist"
)

// jobContextKey is where the shared job context persists.
const jobContextKey = "job-context"

// JobContext is the target-job state shared across modes: practice tailors
// its questions to it, resume generation optimizes against it, and copilot
// picks keywords from it. It is injected into controllers explicitly rather
// than living as an ambient global, and carries its own load/save lifecycle.
type JobContext struct {
	mu    sync.RWMutex
	store persist.Store

	data jobContextData
}

type jobContextData struct {
	Description string `json:"description"`
	Title       string `json:"title"`
	Company     string `json:"company"`
}

// NewJobContext creates a job context backed by store. A nil store keeps the
// context in memory only.
func NewJobContext(store persist.Store) *JobContext {
	jc := &JobContext{store: store}
	if store != nil {
		persist.LoadJSON(context.Background(), store, jobContextKey, &jc.data)
	}
	return jc
}

// Set replaces the job context and persists it.
func (j *JobContext) Set(description, title, company string) {
	j.mu.Lock()
	j.data = jobContextData{Description: description, Title: title, Company: company}
	j.mu.Unlock()
	j.save()
}

// Clear empties the job context and persists the empty state.
func (j *JobContext) Clear() {
	j.mu.Lock()
	j.data = jobContextData{}
	j.mu.Unlock()
	j.save()
}

// Description returns the target job description text.
func (j *JobContext) Description() string {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.data.Description
}

// Title returns the target job title.
func (j *JobContext) Title() string {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.data.Title
}

// Company returns the target company name.
func (j *JobContext) Company() string {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.data.Company
}

// IsSet reports whether any job context has been captured.
func (j *JobContext) IsSet() bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.data.Description != "" || j.data.Title != "" || j.data.Company != ""
}

func (j *JobContext) save() {
	if j.store == nil {
		return
	}
	j.mu.RLock()
	data := j.data
	j.mu.RUnlock()
	persist.SaveJSON(context.Background(), j.store, jobContextKey, data)
}
