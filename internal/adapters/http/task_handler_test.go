package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/infrastructure/logger"
	"github.com/taskflow/core/internal/ports"
)

// stubTaskService lets each test script the service behavior per operation.
type stubTaskService struct {
	listFn   func(ctx context.Context) ([]*entities.Task, error)
	createFn func(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error)
	updateFn func(ctx context.Context, id uuid.UUID, req ports.UpdateTaskRequest) (*entities.Task, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (s *stubTaskService) ListTasks(ctx context.Context) ([]*entities.Task, error) {
	return s.listFn(ctx)
}

func (s *stubTaskService) CreateTask(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	return s.createFn(ctx, req)
}

func (s *stubTaskService) UpdateTask(ctx context.Context, id uuid.UUID, req ports.UpdateTaskRequest) (*entities.Task, error) {
	return s.updateFn(ctx, id, req)
}

func (s *stubTaskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

func sampleTask() *entities.Task {
	return &entities.Task{
		ID:          uuid.New(),
		Title:       "Buy milk",
		Description: "2 liters",
		Priority:    entities.PriorityMedium,
		DueDate:     entities.NewDate(2024, time.January, 10),
		Status:      entities.StatusPending,
		CreatedAt:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

type requestValidator struct {
	validator *validator.Validate
}

func (rv *requestValidator) Validate(i interface{}) error {
	return rv.validator.Struct(i)
}

func doRequest(t *testing.T, svc ports.TaskService, method, path, body string, handle func(*TaskHandler, echo.Context) error, pathParamID string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.Validator = &requestValidator{validator: validator.New()}
	var reqBody *strings.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	} else {
		reqBody = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if pathParamID != "" {
		c.SetParamNames("id")
		c.SetParamValues(pathParamID)
	}

	handler := NewTaskHandler(svc, logger.NewNop())
	err := handle(handler, c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}

	return rec
}

func TestListTasks_OK(t *testing.T) {
	task := sampleTask()
	svc := &stubTaskService{
		listFn: func(context.Context) ([]*entities.Task, error) {
			return []*entities.Task{task}, nil
		},
	}

	rec := doRequest(t, svc, http.MethodGet, "/api/tasks", "", (*TaskHandler).ListTasks, "")

	require.Equal(t, http.StatusOK, rec.Code)

	var got []entities.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, task.ID, got[0].ID)
	assert.Equal(t, "Buy milk", got[0].Title)
}

func TestListTasks_StoreError(t *testing.T) {
	svc := &stubTaskService{
		listFn: func(context.Context) ([]*entities.Task, error) {
			return nil, fmt.Errorf("list tasks: connection refused")
		},
	}

	rec := doRequest(t, svc, http.MethodGet, "/api/tasks", "", (*TaskHandler).ListTasks, "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCreateTask_Created(t *testing.T) {
	task := sampleTask()
	svc := &stubTaskService{
		createFn: func(_ context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
			assert.Equal(t, "Buy milk", req.Title)
			assert.Equal(t, "2024-01-10", req.DueDate.Format("2006-01-02"))
			return task, nil
		},
	}

	body := `{"title":"Buy milk","dueDate":"2024-01-10"}`
	rec := doRequest(t, svc, http.MethodPost, "/api/tasks", body, (*TaskHandler).CreateTask, "")

	require.Equal(t, http.StatusCreated, rec.Code)

	var got entities.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, "2024-01-10", got.DueDate.Format("2006-01-02"))
}

func TestCreateTask_MissingTitleRejected(t *testing.T) {
	svc := &stubTaskService{
		createFn: func(context.Context, ports.CreateTaskRequest) (*entities.Task, error) {
			t.Fatal("service must not be called when the payload fails validation")
			return nil, nil
		},
	}

	for _, body := range []string{`{"dueDate":"2024-01-10"}`, `{"title":"","dueDate":"2024-01-10"}`} {
		rec := doRequest(t, svc, http.MethodPost, "/api/tasks", body, (*TaskHandler).CreateTask, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestCreateTask_ValidationError(t *testing.T) {
	svc := &stubTaskService{
		createFn: func(context.Context, ports.CreateTaskRequest) (*entities.Task, error) {
			return nil, fmt.Errorf("%w: title is required", entities.ErrValidation)
		},
	}

	// A whitespace title passes struct validation but fails the service's trim.
	rec := doRequest(t, svc, http.MethodPost, "/api/tasks", `{"title":"   ","dueDate":"2024-01-10"}`, (*TaskHandler).CreateTask, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateTask_DescriptionFieldPreserved(t *testing.T) {
	task := sampleTask()
	task.Description = ""
	svc := &stubTaskService{
		updateFn: func(_ context.Context, id uuid.UUID, req ports.UpdateTaskRequest) (*entities.Task, error) {
			assert.Equal(t, task.ID, id)
			require.NotNil(t, req.Description, "explicit empty description must survive decoding")
			assert.Equal(t, "", *req.Description)
			assert.Nil(t, req.Title, "omitted fields must decode as nil")
			return task, nil
		},
	}

	rec := doRequest(t, svc, http.MethodPut, "/api/tasks/"+task.ID.String(),
		`{"description":""}`, (*TaskHandler).UpdateTask, task.ID.String())

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateTask_NotFound(t *testing.T) {
	svc := &stubTaskService{
		updateFn: func(context.Context, uuid.UUID, ports.UpdateTaskRequest) (*entities.Task, error) {
			return nil, entities.ErrTaskNotFound
		},
	}

	id := uuid.New().String()
	rec := doRequest(t, svc, http.MethodPut, "/api/tasks/"+id, `{"title":"x"}`, (*TaskHandler).UpdateTask, id)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateTask_InvalidID(t *testing.T) {
	svc := &stubTaskService{}

	rec := doRequest(t, svc, http.MethodPut, "/api/tasks/not-a-uuid", `{}`, (*TaskHandler).UpdateTask, "not-a-uuid")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteTask_OK(t *testing.T) {
	task := sampleTask()
	svc := &stubTaskService{
		deleteFn: func(_ context.Context, id uuid.UUID) error {
			assert.Equal(t, task.ID, id)
			return nil
		},
	}

	rec := doRequest(t, svc, http.MethodDelete, "/api/tasks/"+task.ID.String(), "", (*TaskHandler).DeleteTask, task.ID.String())

	require.Equal(t, http.StatusOK, rec.Code)

	var got MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Task deleted", got.Message)
}

func TestDeleteTask_NotFound(t *testing.T) {
	svc := &stubTaskService{
		deleteFn: func(context.Context, uuid.UUID) error {
			return entities.ErrTaskNotFound
		},
	}

	id := uuid.New().String()
	rec := doRequest(t, svc, http.MethodDelete, "/api/tasks/"+id, "", (*TaskHandler).DeleteTask, id)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
