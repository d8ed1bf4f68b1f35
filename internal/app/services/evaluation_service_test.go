package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/internhub/internhub/internal/app/models"
	"github.com/internhub/internhub/internal/app/models/dto"
	"github.com/internhub/internhub/internal/pkg/apperrors"
)

type fakeEvaluationStore struct {
	evals map[uuid.UUID]*models.Evaluation
}

func newFakeEvaluationStore() *fakeEvaluationStore {
	return &fakeEvaluationStore{evals: make(map[uuid.UUID]*models.Evaluation)}
}

func (f *fakeEvaluationStore) Create(ctx context.Context, eval *models.Evaluation) error {
	if eval.ID == uuid.Nil {
		eval.ID = uuid.New()
	}
	f.evals[eval.ID] = eval
	return nil
}

func (f *fakeEvaluationStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Evaluation, error) {
	eval, ok := f.evals[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("evaluation not found")
	}
	return eval, nil
}

func (f *fakeEvaluationStore) Update(ctx context.Context, eval *models.Evaluation) error {
	f.evals[eval.ID] = eval
	return nil
}

func (f *fakeEvaluationStore) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.evals, id)
	return nil
}

func (f *fakeEvaluationStore) List(ctx context.Context, internID *uuid.UUID, page, pageSize int) ([]*models.Evaluation, int64, error) {
	var out []*models.Evaluation
	for _, eval := range f.evals {
		if internID == nil || eval.InternID == *internID {
			out = append(out, eval)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeEvaluationStore) GetAll(ctx context.Context) ([]*models.Evaluation, error) {
	out := make([]*models.Evaluation, 0, len(f.evals))
	for _, eval := range f.evals {
		out = append(out, eval)
	}
	return out, nil
}

func newEvaluationFixture() (*EvaluationService, *fakeEvaluationStore, *fakeInternDirectory) {
	store := newFakeEvaluationStore()
	interns := newFakeInternDirectory()
	return NewEvaluationService(store, interns, zerolog.Nop()), store, interns
}

func TestCreateEvaluationDerivesOverallRating(t *testing.T) {
	svc, _, interns := newEvaluationFixture()
	intern := interns.add("ada", "Lovelace")

	eval, err := svc.Create(context.Background(), &dto.CreateEvaluationRequest{
		InternID:         intern.ID,
		Evaluator:        "Grace",
		Period:           "2025-Q1",
		TechnicalScore:   5,
		TeamworkScore:    4,
		PunctualityScore: 3,
	})
	require.NoError(t, err)

	assert.InDelta(t, 4.0, eval.OverallRating, 0.001)
}

func TestCreateEvaluationUnknownIntern(t *testing.T) {
	svc, _, _ := newEvaluationFixture()

	_, err := svc.Create(context.Background(), &dto.CreateEvaluationRequest{
		InternID:         uuid.New(),
		Evaluator:        "Grace",
		Period:           "2025-Q1",
		TechnicalScore:   3,
		TeamworkScore:    3,
		PunctualityScore: 3,
	})
	assert.ErrorIs(t, err, apperrors.ErrInternNotFound)
}

func TestUpdateEvaluationRederivesRating(t *testing.T) {
	svc, _, interns := newEvaluationFixture()
	intern := interns.add("ada", "Lovelace")

	eval, err := svc.Create(context.Background(), &dto.CreateEvaluationRequest{
		InternID:         intern.ID,
		Evaluator:        "Grace",
		Period:           "2025-Q1",
		TechnicalScore:   3,
		TeamworkScore:    3,
		PunctualityScore: 3,
	})
	require.NoError(t, err)
	assert.InDelta(t, 3.0, eval.OverallRating, 0.001)

	technical := 5
	updated, err := svc.Update(context.Background(), eval.ID, &dto.UpdateEvaluationRequest{TechnicalScore: &technical})
	require.NoError(t, err)

	assert.InDelta(t, 5.0+3.0+3.0, updated.OverallRating*3, 0.001)
	assert.Equal(t, "Grace", updated.Evaluator)
}

func TestListEvaluationsFilteredByIntern(t *testing.T) {
	svc, _, interns := newEvaluationFixture()
	first := interns.add("ada", "Lovelace")
	second := interns.add("grace", "Hopper")

	for _, internID := range []uuid.UUID{first.ID, first.ID, second.ID} {
		_, err := svc.Create(context.Background(), &dto.CreateEvaluationRequest{
			InternID:         internID,
			Evaluator:        "Mentor",
			Period:           "2025-Q1",
			TechnicalScore:   4,
			TeamworkScore:    4,
			PunctualityScore: 4,
		})
		require.NoError(t, err)
	}

	all, total, err := svc.List(context.Background(), nil, 1, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, int64(3), total)

	filtered, total, err := svc.List(context.Background(), &first.ID, 1, 10)
	require.NoError(t, err)
	assert.Len(t, filtered, 2)
	assert.Equal(t, int64(2), total)
}

func TestExportEvaluationsCSV(t *testing.T) {
	svc, store, interns := newEvaluationFixture()
	intern := interns.add("ada", "Lovelace")

	eval, err := svc.Create(context.Background(), &dto.CreateEvaluationRequest{
		InternID:         intern.ID,
		Evaluator:        "Grace",
		Period:           "2025-Q1",
		TechnicalScore:   5,
		TeamworkScore:    4,
		PunctualityScore: 3,
	})
	require.NoError(t, err)
	store.evals[eval.ID].InternName = "Ada Lovelace"

	data, err := svc.ExportCSV(context.Background())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Intern,Evaluator,Period,Technical,Teamwork,Punctuality,Overall,Comments", lines[0])
	assert.Contains(t, lines[1], "Ada Lovelace,Grace,2025-Q1,5,4,3,4.00")
}
