package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskflow/core/internal/domain/entities"
)

// CreateTaskRequest is the create payload. Unsupplied fields fall back to
// the schema defaults during normalization; title and dueDate are required.
type CreateTaskRequest struct {
	Title       string            `json:"title" validate:"required"`
	Description string            `json:"description"`
	Priority    entities.Priority `json:"priority"`
	DueDate     entities.Date     `json:"dueDate"`
	Status      entities.Status   `json:"status"`
}

// UpdateTaskRequest is a partial-merge payload. A nil field was not part of
// the request. Description is the one field where an empty string is
// meaningful: it clears the stored value, whereas empty title, priority,
// dueDate, and status are ignored and the stored value is kept.
type UpdateTaskRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Priority    *entities.Priority `json:"priority"`
	DueDate     *entities.Date     `json:"dueDate"`
	Status      *entities.Status   `json:"status"`
}

// TaskService defines the application-facing task operations.
type TaskService interface {
	ListTasks(ctx context.Context) ([]*entities.Task, error)
	CreateTask(ctx context.Context, req CreateTaskRequest) (*entities.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, req UpdateTaskRequest) (*entities.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
}
