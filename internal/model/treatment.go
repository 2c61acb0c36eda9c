package model

import (
	"github.com/google/uuid"
)

// Treatment statuses. Plans, phases and items share one status namespace;
// SKIPPED is only meaningful on items. Comparisons in the rollup engine
// are case-insensitive, and unknown backend values pass through untouched.
const (
	TreatmentStatusPending    = "PENDING"
	TreatmentStatusInProgress = "IN_PROGRESS"
	TreatmentStatusCompleted  = "COMPLETED"
	TreatmentStatusCancelled  = "CANCELLED"
	TreatmentStatusSkipped    = "SKIPPED"
)

// TreatmentItem is a leaf step of a phase, optionally linked to the
// appointment where the work happens.
type TreatmentItem struct {
	Base
	PhaseID       uuid.UUID  `db:"phase_id" json:"phase_id"`
	Name          string     `db:"name" json:"name"`
	ToothNumber   *int       `db:"tooth_number" json:"tooth_number,omitempty"`
	Status        string     `db:"status" json:"status"`
	AppointmentID *uuid.UUID `db:"appointment_id" json:"appointment_id,omitempty"`
	Notes         string     `db:"notes" json:"notes,omitempty"`
}

// TreatmentPhase groups items. Status is the backend-reported value; the
// displayed status is derived by the rollup engine and never written back.
type TreatmentPhase struct {
	Base
	PlanID      uuid.UUID        `db:"plan_id" json:"plan_id"`
	Name        string           `db:"name" json:"name"`
	Description string           `db:"description" json:"description,omitempty"`
	Status      string           `db:"status" json:"status"`
	Items       []*TreatmentItem `db:"-" json:"items"`
}

type TreatmentPlan struct {
	Base
	ClinicID    uuid.UUID         `db:"clinic_id" json:"clinic_id"`
	PatientID   uuid.UUID         `db:"patient_id" json:"patient_id"`
	DentistID   uuid.UUID         `db:"dentist_id" json:"dentist_id"`
	Title       string            `db:"title" json:"title"`
	Description string            `db:"description" json:"description,omitempty"`
	Status      string            `db:"status" json:"status"`
	Phases      []*TreatmentPhase `db:"-" json:"phases"`
}

// TreatmentPhaseView decorates a phase with its derived status and item
// progress for display.
type TreatmentPhaseView struct {
	*TreatmentPhase
	DerivedStatus string  `json:"derived_status"`
	Progress      float64 `json:"progress"`
}

// TreatmentPlanView decorates a plan with derived status and the three
// progress figures. Stored statuses stay untouched.
type TreatmentPlanView struct {
	*TreatmentPlan
	DerivedStatus   string                `json:"derived_status"`
	Progress        float64               `json:"progress"`
	ProgressByItems float64               `json:"progress_by_items"`
	PhaseViews      []*TreatmentPhaseView `json:"phase_views"`
}

type CreateTreatmentPlanRequest struct {
	ClinicID    string                      `json:"clinic_id" binding:"required,uuid"`
	PatientID   string                      `json:"patient_id" binding:"required,uuid"`
	DentistID   string                      `json:"dentist_id" binding:"required,uuid"`
	Title       string                      `json:"title" binding:"required,max=255"`
	Description string                      `json:"description" binding:"max=2000"`
	Phases      []CreateTreatmentPhaseInput `json:"phases" binding:"dive"`
}

type CreateTreatmentPhaseInput struct {
	Name        string                     `json:"name" binding:"required,max=255"`
	Description string                     `json:"description" binding:"max=2000"`
	Items       []CreateTreatmentItemInput `json:"items" binding:"dive"`
}

type CreateTreatmentItemInput struct {
	Name        string `json:"name" binding:"required,max=255"`
	ToothNumber *int   `json:"tooth_number" binding:"omitempty,min=11,max=48"`
	Notes       string `json:"notes" binding:"max=1000"`
}

type UpdateTreatmentPlanRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status" binding:"omitempty,treatment_status"`
}

type UpdateItemStatusRequest struct {
	Status        string     `json:"status" binding:"required"`
	AppointmentID *uuid.UUID `json:"appointment_id"`
}
