package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/internhub/internhub/internal/app/models"
	"github.com/internhub/internhub/internal/app/models/dto"
	"github.com/internhub/internhub/internal/pkg/apperrors"
)

// fakeInternDirectory satisfies internChecker for the services that only
// need to look interns up by id.
type fakeInternDirectory struct {
	interns map[uuid.UUID]*models.Intern
}

func newFakeInternDirectory() *fakeInternDirectory {
	return &fakeInternDirectory{interns: make(map[uuid.UUID]*models.Intern)}
}

func (f *fakeInternDirectory) add(firstName, lastName string) *models.Intern {
	intern := &models.Intern{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     firstName + "@example.com",
		Status:    models.InternshipActive,
	}
	f.interns[intern.ID] = intern
	return intern
}

func (f *fakeInternDirectory) GetByID(ctx context.Context, id uuid.UUID) (*models.Intern, error) {
	intern, ok := f.interns[id]
	if !ok {
		return nil, apperrors.ErrInternNotFound
	}
	return intern, nil
}

type fakeTaskStore struct {
	tasks       map[uuid.UUID]*models.Task
	assignments map[uuid.UUID][]*models.InternTask
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{
		tasks:       make(map[uuid.UUID]*models.Task),
		assignments: make(map[uuid.UUID][]*models.InternTask),
	}
}

func (f *fakeTaskStore) Create(ctx context.Context, task *models.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, apperrors.ErrTaskNotFound
	}
	return task, nil
}

func (f *fakeTaskStore) Update(ctx context.Context, task *models.Task) error {
	if _, ok := f.tasks[task.ID]; !ok {
		return apperrors.ErrTaskNotFound
	}
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.tasks, id)
	delete(f.assignments, id)
	return nil
}

func (f *fakeTaskStore) List(ctx context.Context, filter *dto.TaskListFilter, page, pageSize int) ([]*models.Task, int64, error) {
	out := make([]*models.Task, 0, len(f.tasks))
	for _, task := range f.tasks {
		out = append(out, task)
	}
	return out, int64(len(out)), nil
}

func (f *fakeTaskStore) Assign(ctx context.Context, internID, taskID uuid.UUID) (*models.InternTask, error) {
	for _, a := range f.assignments[taskID] {
		if a.InternID == internID {
			return nil, apperrors.ErrAlreadyAssigned
		}
	}
	assignment := &models.InternTask{
		ID:               uuid.New(),
		InternID:         internID,
		TaskID:           taskID,
		AssignedDate:     time.Now(),
		AssignmentStatus: models.AssignmentAssigned,
	}
	f.assignments[taskID] = append(f.assignments[taskID], assignment)
	return assignment, nil
}

func (f *fakeTaskStore) Unassign(ctx context.Context, internID, taskID uuid.UUID) error {
	assignments := f.assignments[taskID]
	for i, a := range assignments {
		if a.InternID == internID {
			f.assignments[taskID] = append(assignments[:i], assignments[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrAssignmentNotFound
}

func (f *fakeTaskStore) UpdateAssignmentStatus(ctx context.Context, internID, taskID uuid.UUID, status models.AssignmentStatus) error {
	for _, a := range f.assignments[taskID] {
		if a.InternID == internID {
			a.AssignmentStatus = status
			return nil
		}
	}
	return apperrors.ErrAssignmentNotFound
}

func (f *fakeTaskStore) GetAssignments(ctx context.Context, taskID uuid.UUID) ([]*models.InternTask, error) {
	return f.assignments[taskID], nil
}

func newTaskFixture() (*TaskService, *fakeTaskStore, *fakeInternDirectory) {
	store := newFakeTaskStore()
	interns := newFakeInternDirectory()
	return NewTaskService(store, interns, zerolog.Nop()), store, interns
}

func TestCreateTaskDefaultsToPending(t *testing.T) {
	svc, _, _ := newTaskFixture()

	task, err := svc.Create(context.Background(), &dto.CreateTaskRequest{
		Title:    "Write onboarding docs",
		Priority: "HIGH",
		Tags:     []string{"docs"},
	})
	require.NoError(t, err)

	assert.Equal(t, models.TaskPending, task.Status)
	assert.Equal(t, models.Priority("HIGH"), task.Priority)
	assert.NotEqual(t, uuid.Nil, task.ID)
}

func TestAssignTaskToUnknownIntern(t *testing.T) {
	svc, _, _ := newTaskFixture()
	task, err := svc.Create(context.Background(), &dto.CreateTaskRequest{Title: "Review PR backlog"})
	require.NoError(t, err)

	_, err = svc.Assign(context.Background(), task.ID, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrInternNotFound)
}

func TestAssignUnknownTask(t *testing.T) {
	svc, _, interns := newTaskFixture()
	intern := interns.add("ada", "Lovelace")

	_, err := svc.Assign(context.Background(), uuid.New(), intern.ID)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
}

func TestAssignTaskTwice(t *testing.T) {
	svc, _, interns := newTaskFixture()
	task, err := svc.Create(context.Background(), &dto.CreateTaskRequest{Title: "Review PR backlog"})
	require.NoError(t, err)
	intern := interns.add("ada", "Lovelace")

	_, err = svc.Assign(context.Background(), task.ID, intern.ID)
	require.NoError(t, err)

	_, err = svc.Assign(context.Background(), task.ID, intern.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyAssigned)
}

func TestGetTaskAttachesAssignments(t *testing.T) {
	svc, _, interns := newTaskFixture()
	task, err := svc.Create(context.Background(), &dto.CreateTaskRequest{Title: "Review PR backlog"})
	require.NoError(t, err)
	intern := interns.add("ada", "Lovelace")

	_, err = svc.Assign(context.Background(), task.ID, intern.ID)
	require.NoError(t, err)

	loaded, err := svc.GetByID(context.Background(), task.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Assignments, 1)
	assert.Equal(t, intern.ID, loaded.Assignments[0].InternID)
	assert.Equal(t, models.AssignmentAssigned, loaded.Assignments[0].AssignmentStatus)
}

func TestCompletingAllAssignmentsClosesTask(t *testing.T) {
	svc, store, interns := newTaskFixture()
	task, err := svc.Create(context.Background(), &dto.CreateTaskRequest{Title: "Ship the report"})
	require.NoError(t, err)
	first := interns.add("ada", "Lovelace")
	second := interns.add("grace", "Hopper")

	_, err = svc.Assign(context.Background(), task.ID, first.ID)
	require.NoError(t, err)
	_, err = svc.Assign(context.Background(), task.ID, second.ID)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateAssignmentStatus(context.Background(), task.ID, first.ID, models.AssignmentCompleted))
	assert.Equal(t, models.TaskPending, store.tasks[task.ID].Status,
		"task stays open while an assignment is outstanding")

	require.NoError(t, svc.UpdateAssignmentStatus(context.Background(), task.ID, second.ID, models.AssignmentCompleted))
	assert.Equal(t, models.TaskCompleted, store.tasks[task.ID].Status)
}

func TestNonCompletedAssignmentStatusLeavesTaskOpen(t *testing.T) {
	svc, store, interns := newTaskFixture()
	task, err := svc.Create(context.Background(), &dto.CreateTaskRequest{Title: "Ship the report"})
	require.NoError(t, err)
	intern := interns.add("ada", "Lovelace")

	_, err = svc.Assign(context.Background(), task.ID, intern.ID)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateAssignmentStatus(context.Background(), task.ID, intern.ID, models.AssignmentInProgress))
	assert.Equal(t, models.TaskPending, store.tasks[task.ID].Status)
}

func TestUpdateTaskPartialFields(t *testing.T) {
	svc, _, _ := newTaskFixture()
	task, err := svc.Create(context.Background(), &dto.CreateTaskRequest{
		Title:    "Draft blog post",
		Priority: "LOW",
	})
	require.NoError(t, err)

	newStatus := "IN_PROGRESS"
	updated, err := svc.Update(context.Background(), task.ID, &dto.UpdateTaskRequest{Status: &newStatus})
	require.NoError(t, err)

	assert.Equal(t, models.TaskInProgress, updated.Status)
	assert.Equal(t, "Draft blog post", updated.Title)
	assert.Equal(t, models.Priority("LOW"), updated.Priority)
}

func TestUnassignRemovesAssignment(t *testing.T) {
	svc, _, interns := newTaskFixture()
	task, err := svc.Create(context.Background(), &dto.CreateTaskRequest{Title: "Review PR backlog"})
	require.NoError(t, err)
	intern := interns.add("ada", "Lovelace")

	_, err = svc.Assign(context.Background(), task.ID, intern.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Unassign(context.Background(), task.ID, intern.ID))

	assert.ErrorIs(t, svc.Unassign(context.Background(), task.ID, intern.ID), apperrors.ErrAssignmentNotFound)
}
