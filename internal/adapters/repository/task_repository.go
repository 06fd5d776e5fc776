package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/ports"
)

// TaskRepositoryImpl implements the TaskRepository interface on Postgres.
type TaskRepositoryImpl struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sqlx.DB) ports.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Insert(ctx context.Context, task *entities.Task) error {
	query := `
		INSERT INTO tasks (id, title, description, priority, due_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.Title, task.Description, task.Priority,
		task.DueDate, task.Status,
	).Scan(&task.CreatedAt)

	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	query := `
		SELECT id, title, description, priority, due_date, status, created_at
		FROM tasks
		WHERE id = $1`

	var task entities.Task
	err := r.db.GetContext(ctx, &task, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}

	return &task, nil
}

func (r *TaskRepositoryImpl) Replace(ctx context.Context, task *entities.Task) (*entities.Task, error) {
	query := `
		UPDATE tasks
		SET title = $2, description = $3, priority = $4, due_date = $5, status = $6
		WHERE id = $1
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.Title, task.Description, task.Priority,
		task.DueDate, task.Status,
	).Scan(&task.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("replace task: %w", err)
	}

	return task, nil
}

func (r *TaskRepositoryImpl) Remove(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tasks WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("remove task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

func (r *TaskRepositoryImpl) ListAll(ctx context.Context) ([]*entities.Task, error) {
	query := `
		SELECT id, title, description, priority, due_date, status, created_at
		FROM tasks
		ORDER BY created_at DESC`

	tasks := []*entities.Task{}
	err := r.db.SelectContext(ctx, &tasks, query)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, nil
}
