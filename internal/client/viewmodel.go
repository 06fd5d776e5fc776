package client

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/ports"
)

// FilterStatus selects which tasks the projection shows.
type FilterStatus string

const (
	FilterAll       FilterStatus = "All"
	FilterPending   FilterStatus = "Pending"
	FilterCompleted FilterStatus = "Completed"
)

// SortBy selects the projection's sort key.
type SortBy string

const (
	SortByDueDate   SortBy = "dueDate"
	SortByPriority  SortBy = "priority"
	SortByCreatedAt SortBy = "createdAt"
)

// ViewModel holds the client-side task collection and derives a filtered,
// sorted projection on demand. The collection is a transient copy: every
// mutation is applied from the server's returned record, and a gateway
// failure leaves it unchanged.
type ViewModel struct {
	mu      sync.Mutex
	gateway *Client
	tasks   []entities.Task
	filter  FilterStatus
	sortBy  SortBy
}

// NewViewModel creates a view model backed by the given gateway.
func NewViewModel(gateway *Client) *ViewModel {
	return &ViewModel{
		gateway: gateway,
		filter:  FilterAll,
		sortBy:  SortByDueDate,
	}
}

// Load replaces the collection with the service's current task list.
func (vm *ViewModel) Load(ctx context.Context) error {
	tasks, err := vm.gateway.ListTasks(ctx)
	if err != nil {
		return err
	}

	vm.mu.Lock()
	vm.tasks = tasks
	vm.mu.Unlock()

	return nil
}

// SetFilter sets the status filter for the projection.
func (vm *ViewModel) SetFilter(filter FilterStatus) {
	vm.mu.Lock()
	vm.filter = filter
	vm.mu.Unlock()
}

// SetSortBy sets the sort key for the projection.
func (vm *ViewModel) SetSortBy(sortBy SortBy) {
	vm.mu.Lock()
	vm.sortBy = sortBy
	vm.mu.Unlock()
}

// Filter returns the active status filter.
func (vm *ViewModel) Filter() FilterStatus {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.filter
}

// SortKey returns the active sort key.
func (vm *ViewModel) SortKey() SortBy {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.sortBy
}

// Tasks derives the projection: filter by status, then a stable sort by
// the active key. The underlying collection is never mutated.
func (vm *ViewModel) Tasks() []entities.Task {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	result := make([]entities.Task, 0, len(vm.tasks))
	for _, t := range vm.tasks {
		if vm.filter != FilterAll && t.Status != entities.Status(vm.filter) {
			continue
		}
		result = append(result, t)
	}

	switch vm.sortBy {
	case SortByDueDate:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].DueDate.Before(result[j].DueDate)
		})
	case SortByPriority:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Priority.Rank() < result[j].Priority.Rank()
		})
	default:
		sort.SliceStable(result, func(i, j int) bool {
			return result[j].CreatedAt.Before(result[i].CreatedAt)
		})
	}

	return result
}

// Add creates a task through the gateway and prepends the server's record.
func (vm *ViewModel) Add(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	task, err := vm.gateway.CreateTask(ctx, req)
	if err != nil {
		return nil, err
	}

	vm.mu.Lock()
	vm.tasks = append([]entities.Task{*task}, vm.tasks...)
	vm.mu.Unlock()

	return task, nil
}

// UpdateStatus sets a task's status through the gateway and replaces the
// matching record in place with the server's copy.
func (vm *ViewModel) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.Status) (*entities.Task, error) {
	task, err := vm.gateway.UpdateTask(ctx, id, ports.UpdateTaskRequest{Status: &status})
	if err != nil {
		return nil, err
	}

	vm.mu.Lock()
	for i := range vm.tasks {
		if vm.tasks[i].ID == id {
			vm.tasks[i] = *task
			break
		}
	}
	vm.mu.Unlock()

	return task, nil
}

// Delete removes a task locally only after the server confirms.
func (vm *ViewModel) Delete(ctx context.Context, id uuid.UUID) error {
	if err := vm.gateway.DeleteTask(ctx, id); err != nil {
		return err
	}

	vm.mu.Lock()
	for i := range vm.tasks {
		if vm.tasks[i].ID == id {
			vm.tasks = append(vm.tasks[:i], vm.tasks[i+1:]...)
			break
		}
	}
	vm.mu.Unlock()

	return nil
}
