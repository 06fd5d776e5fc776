package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskflow/core/internal/domain/entities"
)

// TaskRepository defines the interface for task persistence. The store is
// the single source of truth: identity and creation timestamps are assigned
// here, never by callers.
type TaskRepository interface {
	// Insert persists a new task, assigning its ID and CreatedAt.
	Insert(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	// Replace overwrites the stored record with the merged task.
	Replace(ctx context.Context, task *entities.Task) (*entities.Task, error)
	// Remove deletes a task; a missing id is ErrTaskNotFound, not a no-op.
	Remove(ctx context.Context, id uuid.UUID) error
	// ListAll returns every task ordered by CreatedAt descending.
	ListAll(ctx context.Context) ([]*entities.Task, error)
}
