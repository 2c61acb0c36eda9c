package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/smiledesk/dental-api/internal/model"
)

func (r *treatmentRepository) CreatePlan(ctx context.Context, plan *model.TreatmentPlan) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	planQuery := `
		INSERT INTO treatment_plans (id, clinic_id, patient_id, dentist_id, title,
			description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	if _, err := tx.ExecContext(ctx, planQuery,
		plan.ID, plan.ClinicID, plan.PatientID, plan.DentistID,
		plan.Title, plan.Description, plan.Status, plan.CreatedAt, plan.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to create treatment plan: %w", err)
	}

	phaseQuery := `
		INSERT INTO treatment_phases (id, plan_id, name, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	itemQuery := `
		INSERT INTO treatment_items (id, phase_id, name, tooth_number, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, phase := range plan.Phases {
		if _, err := tx.ExecContext(ctx, phaseQuery,
			phase.ID, phase.PlanID, phase.Name, phase.Description,
			phase.Status, phase.CreatedAt, phase.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to create treatment phase: %w", err)
		}
		for _, item := range phase.Items {
			if _, err := tx.ExecContext(ctx, itemQuery,
				item.ID, item.PhaseID, item.Name, item.ToothNumber,
				item.Status, item.Notes, item.CreatedAt, item.UpdatedAt,
			); err != nil {
				return fmt.Errorf("failed to create treatment item: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *treatmentRepository) GetPlan(ctx context.Context, id uuid.UUID) (*model.TreatmentPlan, error) {
	planQuery := `
		SELECT id, clinic_id, patient_id, dentist_id, title, description, status,
			created_at, updated_at
		FROM treatment_plans
		WHERE id = $1 AND deleted_at IS NULL
	`
	var plan model.TreatmentPlan
	if err := r.db.GetContext(ctx, &plan, planQuery, id); err != nil {
		return nil, fmt.Errorf("failed to get treatment plan: %w", err)
	}

	if err := r.loadPhases(ctx, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *treatmentRepository) UpdatePlan(ctx context.Context, plan *model.TreatmentPlan) error {
	query := `
		UPDATE treatment_plans
		SET title = $1, description = $2, status = $3, updated_at = $4
		WHERE id = $5 AND deleted_at IS NULL
	`
	plan.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		plan.Title, plan.Description, plan.Status, plan.UpdatedAt, plan.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update treatment plan: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("treatment plan not found")
	}
	return nil
}

func (r *treatmentRepository) DeletePlan(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE treatment_plans SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete treatment plan: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("treatment plan not found")
	}
	return nil
}

func (r *treatmentRepository) ListPlans(ctx context.Context, patientID uuid.UUID) ([]*model.TreatmentPlan, error) {
	query := `
		SELECT id, clinic_id, patient_id, dentist_id, title, description, status,
			created_at, updated_at
		FROM treatment_plans
		WHERE patient_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`
	var plans []*model.TreatmentPlan
	if err := r.db.SelectContext(ctx, &plans, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list treatment plans: %w", err)
	}

	for _, plan := range plans {
		if err := r.loadPhases(ctx, plan); err != nil {
			return nil, err
		}
	}
	return plans, nil
}

func (r *treatmentRepository) GetPhase(ctx context.Context, id uuid.UUID) (*model.TreatmentPhase, error) {
	query := `
		SELECT id, plan_id, name, description, status, created_at, updated_at
		FROM treatment_phases
		WHERE id = $1 AND deleted_at IS NULL
	`
	var phase model.TreatmentPhase
	if err := r.db.GetContext(ctx, &phase, query, id); err != nil {
		return nil, fmt.Errorf("failed to get treatment phase: %w", err)
	}

	items, err := r.loadItems(ctx, []uuid.UUID{phase.ID})
	if err != nil {
		return nil, err
	}
	phase.Items = items[phase.ID]
	return &phase, nil
}

func (r *treatmentRepository) UpdateItemStatus(ctx context.Context, itemID uuid.UUID, status string, appointmentID *uuid.UUID) error {
	query := `
		UPDATE treatment_items
		SET status = $1, appointment_id = COALESCE($2, appointment_id), updated_at = $3
		WHERE id = $4 AND deleted_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, status, appointmentID, time.Now(), itemID)
	if err != nil {
		return fmt.Errorf("failed to update item status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("treatment item not found")
	}
	return nil
}

func (r *treatmentRepository) loadPhases(ctx context.Context, plan *model.TreatmentPlan) error {
	phaseQuery := `
		SELECT id, plan_id, name, description, status, created_at, updated_at
		FROM treatment_phases
		WHERE plan_id = $1 AND deleted_at IS NULL
		ORDER BY created_at
	`
	var phases []*model.TreatmentPhase
	if err := r.db.SelectContext(ctx, &phases, phaseQuery, plan.ID); err != nil {
		return fmt.Errorf("failed to load treatment phases: %w", err)
	}
	plan.Phases = phases

	if len(phases) == 0 {
		return nil
	}

	phaseIDs := make([]uuid.UUID, 0, len(phases))
	for _, phase := range phases {
		phaseIDs = append(phaseIDs, phase.ID)
	}

	items, err := r.loadItems(ctx, phaseIDs)
	if err != nil {
		return err
	}
	for _, phase := range phases {
		phase.Items = items[phase.ID]
	}
	return nil
}

func (r *treatmentRepository) loadItems(ctx context.Context, phaseIDs []uuid.UUID) (map[uuid.UUID][]*model.TreatmentItem, error) {
	itemQuery := `
		SELECT id, phase_id, name, tooth_number, status, appointment_id, notes,
			created_at, updated_at
		FROM treatment_items
		WHERE phase_id = ANY($1) AND deleted_at IS NULL
		ORDER BY created_at
	`
	ids := make([]string, 0, len(phaseIDs))
	for _, id := range phaseIDs {
		ids = append(ids, id.String())
	}

	var items []*model.TreatmentItem
	if err := r.db.SelectContext(ctx, &items, itemQuery, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("failed to load treatment items: %w", err)
	}

	byPhase := make(map[uuid.UUID][]*model.TreatmentItem, len(phaseIDs))
	for _, item := range items {
		byPhase[item.PhaseID] = append(byPhase[item.PhaseID], item)
	}
	return byPhase, nil
}
