package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/taskflow/core/internal/domain/entities"
)

// fakeTaskRepository is an in-memory TaskRepository for service tests. It
// assigns ids and strictly increasing creation timestamps the way the real
// store does.
type fakeTaskRepository struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]entities.Task
	clock time.Time

	failNext error
}

func newFakeTaskRepository() *fakeTaskRepository {
	return &fakeTaskRepository{
		tasks: map[uuid.UUID]entities.Task{},
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *fakeTaskRepository) takeErr() error {
	err := r.failNext
	r.failNext = nil
	return err
}

func (r *fakeTaskRepository) Insert(_ context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.takeErr(); err != nil {
		return err
	}

	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	r.clock = r.clock.Add(time.Second)
	task.CreatedAt = r.clock

	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepository) GetByID(_ context.Context, id uuid.UUID) (*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.takeErr(); err != nil {
		return nil, err
	}

	task, ok := r.tasks[id]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}
	return &task, nil
}

func (r *fakeTaskRepository) Replace(_ context.Context, task *entities.Task) (*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.takeErr(); err != nil {
		return nil, err
	}

	stored, ok := r.tasks[task.ID]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}
	task.CreatedAt = stored.CreatedAt
	r.tasks[task.ID] = *task
	return task, nil
}

func (r *fakeTaskRepository) Remove(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.takeErr(); err != nil {
		return err
	}

	if _, ok := r.tasks[id]; !ok {
		return entities.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepository) ListAll(_ context.Context) ([]*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.takeErr(); err != nil {
		return nil, err
	}

	tasks := make([]*entities.Task, 0, len(r.tasks))
	for id := range r.tasks {
		task := r.tasks[id]
		tasks = append(tasks, &task)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[j].CreatedAt.Before(tasks[i].CreatedAt)
	})
	return tasks, nil
}

var errStoreDown = errors.New("connection refused")
