package client

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/ports"
)

func makeTask(title string, priority entities.Priority, status entities.Status, due entities.Date, createdAt time.Time) entities.Task {
	return entities.Task{
		ID:        uuid.New(),
		Title:     title,
		Priority:  priority,
		Status:    status,
		DueDate:   due,
		CreatedAt: createdAt,
	}
}

func titlesOf(tasks []entities.Task) []string {
	titles := make([]string, len(tasks))
	for i, t := range tasks {
		titles[i] = t.Title
	}
	return titles
}

func TestProjection_SortByPriority(t *testing.T) {
	vm := NewViewModel(nil)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	due := entities.NewDate(2024, time.June, 1)
	vm.tasks = []entities.Task{
		makeTask("low", entities.PriorityLow, entities.StatusPending, due, base),
		makeTask("high", entities.PriorityHigh, entities.StatusPending, due, base.Add(time.Second)),
		makeTask("medium", entities.PriorityMedium, entities.StatusPending, due, base.Add(2*time.Second)),
	}
	vm.SetSortBy(SortByPriority)

	assert.Equal(t, []string{"high", "medium", "low"}, titlesOf(vm.Tasks()))
}

func TestProjection_SortByDueDateAscending(t *testing.T) {
	vm := NewViewModel(nil)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	vm.tasks = []entities.Task{
		makeTask("Buy milk", entities.PriorityMedium, entities.StatusPending, entities.NewDate(2024, time.January, 10), base),
		makeTask("Pay rent", entities.PriorityMedium, entities.StatusPending, entities.NewDate(2024, time.January, 5), base.Add(time.Second)),
	}
	vm.SetSortBy(SortByDueDate)

	assert.Equal(t, []string{"Pay rent", "Buy milk"}, titlesOf(vm.Tasks()))
}

func TestProjection_SortByCreatedAtNewestFirst(t *testing.T) {
	vm := NewViewModel(nil)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	due := entities.NewDate(2024, time.June, 1)
	vm.tasks = []entities.Task{
		makeTask("old", entities.PriorityMedium, entities.StatusPending, due, base),
		makeTask("new", entities.PriorityMedium, entities.StatusPending, due, base.Add(time.Hour)),
	}
	vm.SetSortBy(SortByCreatedAt)

	assert.Equal(t, []string{"new", "old"}, titlesOf(vm.Tasks()))
}

func TestProjection_StableForEqualKeys(t *testing.T) {
	vm := NewViewModel(nil)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	due := entities.NewDate(2024, time.June, 1)
	vm.tasks = []entities.Task{
		makeTask("a", entities.PriorityHigh, entities.StatusPending, due, base),
		makeTask("b", entities.PriorityHigh, entities.StatusPending, due, base.Add(time.Second)),
		makeTask("c", entities.PriorityHigh, entities.StatusPending, due, base.Add(2*time.Second)),
	}
	vm.SetSortBy(SortByPriority)

	assert.Equal(t, []string{"a", "b", "c"}, titlesOf(vm.Tasks()),
		"equal priorities must keep their relative order")
}

func TestProjection_FilterCompletedPreservesOrder(t *testing.T) {
	vm := NewViewModel(nil)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	vm.tasks = []entities.Task{
		makeTask("done-late", entities.PriorityMedium, entities.StatusCompleted, entities.NewDate(2024, time.March, 1), base),
		makeTask("pending", entities.PriorityMedium, entities.StatusPending, entities.NewDate(2024, time.January, 1), base.Add(time.Second)),
		makeTask("done-early", entities.PriorityMedium, entities.StatusCompleted, entities.NewDate(2024, time.February, 1), base.Add(2*time.Second)),
	}
	vm.SetFilter(FilterCompleted)
	vm.SetSortBy(SortByDueDate)

	assert.Equal(t, []string{"done-early", "done-late"}, titlesOf(vm.Tasks()))
}

func TestProjection_DoesNotMutateCollection(t *testing.T) {
	vm := NewViewModel(nil)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	vm.tasks = []entities.Task{
		makeTask("z", entities.PriorityLow, entities.StatusPending, entities.NewDate(2024, time.March, 1), base),
		makeTask("a", entities.PriorityHigh, entities.StatusPending, entities.NewDate(2024, time.January, 1), base.Add(time.Second)),
	}
	vm.SetSortBy(SortByDueDate)

	_ = vm.Tasks()

	assert.Equal(t, "z", vm.tasks[0].Title, "underlying collection order must be untouched")
	assert.Equal(t, "a", vm.tasks[1].Title)
}

func TestViewModel_LoadAndAdd(t *testing.T) {
	api := newFakeAPI(t)
	vm := NewViewModel(api.client())

	require.NoError(t, vm.Load(context.Background()))
	assert.Empty(t, vm.Tasks())

	task, err := vm.Add(context.Background(), ports.CreateTaskRequest{
		Title:   "Buy milk",
		DueDate: entities.NewDate(2024, time.January, 10),
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, task.ID, "server record is the one prepended")
	rows := vm.Tasks()
	require.Len(t, rows, 1)
	assert.Equal(t, task.ID, rows[0].ID)
}

func TestViewModel_UpdateStatusReplacesRecord(t *testing.T) {
	api := newFakeAPI(t)
	vm := NewViewModel(api.client())

	task, err := vm.Add(context.Background(), ports.CreateTaskRequest{
		Title:   "Buy milk",
		DueDate: entities.NewDate(2024, time.January, 10),
	})
	require.NoError(t, err)

	updated, err := vm.UpdateStatus(context.Background(), task.ID, entities.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusCompleted, updated.Status)

	rows := vm.Tasks()
	require.Len(t, rows, 1)
	assert.Equal(t, entities.StatusCompleted, rows[0].Status)
}

func TestViewModel_DeleteRemovesAfterConfirm(t *testing.T) {
	api := newFakeAPI(t)
	vm := NewViewModel(api.client())

	task, err := vm.Add(context.Background(), ports.CreateTaskRequest{
		Title:   "Buy milk",
		DueDate: entities.NewDate(2024, time.January, 10),
	})
	require.NoError(t, err)

	require.NoError(t, vm.Delete(context.Background(), task.ID))
	assert.Empty(t, vm.Tasks())
}

func TestViewModel_FailedMutationLeavesCollectionUnchanged(t *testing.T) {
	api := newFakeAPI(t)
	vm := NewViewModel(api.client())

	task, err := vm.Add(context.Background(), ports.CreateTaskRequest{
		Title:   "Buy milk",
		DueDate: entities.NewDate(2024, time.January, 10),
	})
	require.NoError(t, err)

	api.failAll = true

	_, err = vm.UpdateStatus(context.Background(), task.ID, entities.StatusCompleted)
	require.Error(t, err)

	err = vm.Delete(context.Background(), task.ID)
	require.Error(t, err)

	_, err = vm.Add(context.Background(), ports.CreateTaskRequest{
		Title:   "Pay rent",
		DueDate: entities.NewDate(2024, time.January, 5),
	})
	require.Error(t, err)

	rows := vm.Tasks()
	require.Len(t, rows, 1, "collection stays at last-known-good state")
	assert.Equal(t, task.ID, rows[0].ID)
	assert.Equal(t, entities.StatusPending, rows[0].Status)
}

func TestViewModel_DeleteUnknownIDSurfacesNotFound(t *testing.T) {
	api := newFakeAPI(t)
	vm := NewViewModel(api.client())

	err := vm.Delete(context.Background(), uuid.New())
	require.ErrorIs(t, err, entities.ErrTaskNotFound)
}
