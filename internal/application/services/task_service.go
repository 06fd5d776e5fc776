package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/infrastructure/logger"
	"github.com/taskflow/core/internal/ports"
)

// TaskService handles task operations: input normalization on create and
// the partial merge on update.
type TaskService struct {
	taskRepo ports.TaskRepository
	logger   *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		logger:   logger,
	}
}

// ListTasks returns all tasks, newest first.
func (s *TaskService) ListTasks(ctx context.Context) ([]*entities.Task, error) {
	tasks, err := s.taskRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// CreateTask normalizes the request, applies schema defaults, and persists
// a new task. The store assigns id and createdAt.
func (s *TaskService) CreateTask(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", entities.ErrValidation)
	}
	if req.DueDate.IsZero() {
		return nil, fmt.Errorf("%w: due date is required", entities.ErrValidation)
	}

	priority := req.Priority
	if priority == "" {
		priority = entities.DefaultPriority
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("%w: invalid priority %q", entities.ErrValidation, req.Priority)
	}

	status := req.Status
	if status == "" {
		status = entities.DefaultStatus
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: invalid status %q", entities.ErrValidation, req.Status)
	}

	task := &entities.Task{
		Title:       title,
		Description: req.Description,
		Priority:    priority,
		DueDate:     req.DueDate,
		Status:      status,
	}

	if err := s.taskRepo.Insert(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("Task created", "task_id", task.ID, "title", task.Title)

	return task, nil
}

// UpdateTask applies a partial merge onto the stored task. Title, priority,
// dueDate, and status overwrite only when supplied and non-empty;
// description overwrites whenever the field is present, so an empty string
// clears it.
func (s *TaskService) UpdateTask(ctx context.Context, id uuid.UUID, req ports.UpdateTaskRequest) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if title := strings.TrimSpace(*req.Title); title != "" {
			task.Title = title
		}
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil && *req.Priority != "" {
		if !req.Priority.IsValid() {
			return nil, fmt.Errorf("%w: invalid priority %q", entities.ErrValidation, *req.Priority)
		}
		task.Priority = *req.Priority
	}
	if req.DueDate != nil && !req.DueDate.IsZero() {
		task.DueDate = *req.DueDate
	}
	if req.Status != nil && *req.Status != "" {
		if !req.Status.IsValid() {
			return nil, fmt.Errorf("%w: invalid status %q", entities.ErrValidation, *req.Status)
		}
		task.Status = *req.Status
	}

	updated, err := s.taskRepo.Replace(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Info("Task updated", "task_id", updated.ID, "status", updated.Status)

	return updated, nil
}

// DeleteTask removes a task. Deleting an unknown id is an error.
func (s *TaskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if err := s.taskRepo.Remove(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Task deleted", "task_id", id)

	return nil
}
