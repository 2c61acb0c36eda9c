package treatment

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smiledesk/dental-api/internal/model"
)

type fakeTreatmentRepo struct {
	plans       map[uuid.UUID]*model.TreatmentPlan
	itemUpdates map[uuid.UUID]string
}

func newFakeTreatmentRepo() *fakeTreatmentRepo {
	return &fakeTreatmentRepo{
		plans:       make(map[uuid.UUID]*model.TreatmentPlan),
		itemUpdates: make(map[uuid.UUID]string),
	}
}

func (f *fakeTreatmentRepo) CreatePlan(_ context.Context, plan *model.TreatmentPlan) error {
	f.plans[plan.ID] = plan
	return nil
}

func (f *fakeTreatmentRepo) GetPlan(_ context.Context, id uuid.UUID) (*model.TreatmentPlan, error) {
	plan, ok := f.plans[id]
	if !ok {
		return nil, errors.New("plan not found")
	}
	return plan, nil
}

func (f *fakeTreatmentRepo) UpdatePlan(_ context.Context, plan *model.TreatmentPlan) error {
	f.plans[plan.ID] = plan
	return nil
}

func (f *fakeTreatmentRepo) DeletePlan(_ context.Context, id uuid.UUID) error {
	delete(f.plans, id)
	return nil
}

func (f *fakeTreatmentRepo) ListPlans(_ context.Context, patientID uuid.UUID) ([]*model.TreatmentPlan, error) {
	var out []*model.TreatmentPlan
	for _, p := range f.plans {
		if p.PatientID == patientID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeTreatmentRepo) GetPhase(_ context.Context, id uuid.UUID) (*model.TreatmentPhase, error) {
	for _, p := range f.plans {
		for _, ph := range p.Phases {
			if ph.ID == id {
				return ph, nil
			}
		}
	}
	return nil, errors.New("phase not found")
}

func (f *fakeTreatmentRepo) UpdateItemStatus(_ context.Context, itemID uuid.UUID, status string, _ *uuid.UUID) error {
	f.itemUpdates[itemID] = status
	return nil
}

func TestCreatePlanBuildsTree(t *testing.T) {
	repo := newFakeTreatmentRepo()
	svc := NewService(repo)

	req := &model.CreateTreatmentPlanRequest{
		ClinicID:  uuid.NewString(),
		PatientID: uuid.NewString(),
		DentistID: uuid.NewString(),
		Title:     "Full mouth rehabilitation",
		Phases: []model.CreateTreatmentPhaseInput{
			{
				Name: "Hygiene",
				Items: []model.CreateTreatmentItemInput{
					{Name: "Scaling"},
					{Name: "Polishing"},
				},
			},
			{Name: "Restorative"},
		},
	}

	plan, err := svc.CreatePlan(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, model.TreatmentStatusPending, plan.Status)
	require.Len(t, plan.Phases, 2)
	assert.Len(t, plan.Phases[0].Items, 2)
	assert.Equal(t, plan.ID, plan.Phases[0].PlanID)
	assert.Equal(t, plan.Phases[0].ID, plan.Phases[0].Items[0].PhaseID)
}

func TestCreatePlanRejectsBadIDs(t *testing.T) {
	svc := NewService(newFakeTreatmentRepo())

	_, err := svc.CreatePlan(context.Background(), &model.CreateTreatmentPlanRequest{
		ClinicID:  "not-a-uuid",
		PatientID: uuid.NewString(),
		DentistID: uuid.NewString(),
		Title:     "x",
	})
	assert.Error(t, err)
}

func TestGetPlanDecoratesWithoutMutating(t *testing.T) {
	repo := newFakeTreatmentRepo()
	svc := NewService(repo)

	plan := &model.TreatmentPlan{Status: model.TreatmentStatusInProgress}
	plan.ID = uuid.New()
	plan.Phases = []*model.TreatmentPhase{
		{
			Status: model.TreatmentStatusInProgress,
			Items: []*model.TreatmentItem{
				{Status: model.TreatmentStatusCompleted},
				{Status: model.TreatmentStatusSkipped},
			},
		},
	}
	repo.plans[plan.ID] = plan

	view, err := svc.GetPlan(context.Background(), plan.ID)
	require.NoError(t, err)

	assert.Equal(t, model.TreatmentStatusCompleted, view.DerivedStatus)
	assert.Equal(t, float64(100), view.Progress)
	assert.Equal(t, float64(50), view.ProgressByItems)
	require.Len(t, view.PhaseViews, 1)
	assert.Equal(t, model.TreatmentStatusCompleted, view.PhaseViews[0].DerivedStatus)

	// Stored statuses stay authoritative.
	assert.Equal(t, model.TreatmentStatusInProgress, plan.Status)
	assert.Equal(t, model.TreatmentStatusInProgress, plan.Phases[0].Status)
}

func TestUpdateItemStatus(t *testing.T) {
	repo := newFakeTreatmentRepo()
	svc := NewService(repo)
	itemID := uuid.New()

	err := svc.UpdateItemStatus(context.Background(), itemID, &model.UpdateItemStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", repo.itemUpdates[itemID])

	err = svc.UpdateItemStatus(context.Background(), itemID, &model.UpdateItemStatusRequest{Status: "TELEPORTED"})
	assert.Error(t, err)
}
