package treatment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smiledesk/dental-api/internal/model"
	"github.com/smiledesk/dental-api/internal/repository"
)

var knownItemStatuses = []string{
	model.TreatmentStatusPending,
	model.TreatmentStatusInProgress,
	model.TreatmentStatusCompleted,
	model.TreatmentStatusSkipped,
}

type Service struct {
	repo repository.TreatmentRepository
}

func NewService(repo repository.TreatmentRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreatePlan(ctx context.Context, req *model.CreateTreatmentPlanRequest) (*model.TreatmentPlan, error) {
	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		return nil, fmt.Errorf("invalid clinic ID: %w", err)
	}
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, fmt.Errorf("invalid patient ID: %w", err)
	}
	dentistID, err := uuid.Parse(req.DentistID)
	if err != nil {
		return nil, fmt.Errorf("invalid dentist ID: %w", err)
	}

	now := time.Now()
	plan := &model.TreatmentPlan{
		ClinicID:    clinicID,
		PatientID:   patientID,
		DentistID:   dentistID,
		Title:       req.Title,
		Description: req.Description,
		Status:      model.TreatmentStatusPending,
	}
	plan.ID = uuid.New()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	for _, phaseIn := range req.Phases {
		phase := &model.TreatmentPhase{
			PlanID:      plan.ID,
			Name:        phaseIn.Name,
			Description: phaseIn.Description,
			Status:      model.TreatmentStatusPending,
		}
		phase.ID = uuid.New()
		phase.CreatedAt = now
		phase.UpdatedAt = now

		for _, itemIn := range phaseIn.Items {
			item := &model.TreatmentItem{
				PhaseID:     phase.ID,
				Name:        itemIn.Name,
				ToothNumber: itemIn.ToothNumber,
				Notes:       itemIn.Notes,
				Status:      model.TreatmentStatusPending,
			}
			item.ID = uuid.New()
			item.CreatedAt = now
			item.UpdatedAt = now
			phase.Items = append(phase.Items, item)
		}
		plan.Phases = append(plan.Phases, phase)
	}

	if err := s.repo.CreatePlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to create treatment plan: %w", err)
	}
	return plan, nil
}

// GetPlan returns the stored plan decorated with derived status and
// progress. The stored statuses are returned untouched.
func (s *Service) GetPlan(ctx context.Context, id uuid.UUID) (*model.TreatmentPlanView, error) {
	plan, err := s.repo.GetPlan(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get treatment plan: %w", err)
	}
	return decoratePlan(plan), nil
}

func (s *Service) ListPlans(ctx context.Context, patientID uuid.UUID) ([]*model.TreatmentPlanView, error) {
	plans, err := s.repo.ListPlans(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list treatment plans: %w", err)
	}

	views := make([]*model.TreatmentPlanView, 0, len(plans))
	for _, plan := range plans {
		views = append(views, decoratePlan(plan))
	}
	return views, nil
}

func (s *Service) UpdatePlan(ctx context.Context, id uuid.UUID, req *model.UpdateTreatmentPlanRequest) (*model.TreatmentPlanView, error) {
	plan, err := s.repo.GetPlan(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get treatment plan: %w", err)
	}

	if req.Title != nil {
		plan.Title = *req.Title
	}
	if req.Description != nil {
		plan.Description = *req.Description
	}
	if req.Status != nil {
		plan.Status = *req.Status
	}
	plan.UpdatedAt = time.Now()

	if err := s.repo.UpdatePlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to update treatment plan: %w", err)
	}
	return decoratePlan(plan), nil
}

func (s *Service) DeletePlan(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeletePlan(ctx, id); err != nil {
		return fmt.Errorf("failed to delete treatment plan: %w", err)
	}
	return nil
}

func (s *Service) UpdateItemStatus(ctx context.Context, itemID uuid.UUID, req *model.UpdateItemStatusRequest) error {
	if !isKnownItemStatus(req.Status) {
		return fmt.Errorf("unknown item status: %s", req.Status)
	}
	if err := s.repo.UpdateItemStatus(ctx, itemID, strings.ToUpper(req.Status), req.AppointmentID); err != nil {
		return fmt.Errorf("failed to update item status: %w", err)
	}
	return nil
}

// GetPhase returns a single phase with its derived status and progress.
func (s *Service) GetPhase(ctx context.Context, id uuid.UUID) (*model.TreatmentPhaseView, error) {
	phase, err := s.repo.GetPhase(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get treatment phase: %w", err)
	}
	return decoratePhase(phase), nil
}

func decoratePlan(plan *model.TreatmentPlan) *model.TreatmentPlanView {
	view := &model.TreatmentPlanView{
		TreatmentPlan:   plan,
		DerivedStatus:   CalculatePlanStatus(plan.Status, plan.Phases),
		Progress:        GetPlanProgress(plan.Phases),
		ProgressByItems: GetPlanProgressByItems(plan.Phases),
	}
	for _, phase := range plan.Phases {
		view.PhaseViews = append(view.PhaseViews, decoratePhase(phase))
	}
	return view
}

func decoratePhase(phase *model.TreatmentPhase) *model.TreatmentPhaseView {
	return &model.TreatmentPhaseView{
		TreatmentPhase: phase,
		DerivedStatus:  CalculatePhaseStatus(phase),
		Progress:       GetPhaseProgress(phase),
	}
}

func isKnownItemStatus(status string) bool {
	for _, s := range knownItemStatuses {
		if strings.EqualFold(status, s) {
			return true
		}
	}
	return false
}
