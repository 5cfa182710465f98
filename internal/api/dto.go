package api

import (
	"time"

	"taskmanager/internal/model"
)

// taskCreateRequest is the body of POST /api/tasks.
type taskCreateRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      model.Status `json:"status"`
	CompletedAt *time.Time   `json:"completedAt"`
}

// taskUpdateRequest is the body of PUT /api/tasks/:id. All fields are
// optional; absent fields keep the stored values. The merge happens here so
// the service always receives a complete record.
type taskUpdateRequest struct {
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	Status      *model.Status `json:"status"`
	CompletedAt *time.Time    `json:"completedAt"`
}

func (r *taskUpdateRequest) applyTo(task *model.Task) {
	if r.Title != nil {
		task.Title = *r.Title
	}
	if r.Description != nil {
		task.Description = *r.Description
	}
	if r.Status != nil {
		task.Status = *r.Status
	}
	if r.CompletedAt != nil {
		task.CompletedAt = r.CompletedAt
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status string `json:"status"`
}
