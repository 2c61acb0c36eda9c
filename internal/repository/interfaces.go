package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/smiledesk/dental-api/internal/model"
)

// All repository interfaces in one file
type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, clinicID uuid.UUID) ([]*model.User, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filter *model.BaseFilter) ([]*model.Patient, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		Update(ctx context.Context, appointment *model.Appointment) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
		CheckConflicts(ctx context.Context, dentistID uuid.UUID, startTime, endTime time.Time, excludeID *uuid.UUID) (bool, error)
	}

	// TreatmentRepository loads plans with their full phase/item tree; the
	// rollup engine works over the returned tree and never writes back
	// derived values.
	TreatmentRepository interface {
		CreatePlan(ctx context.Context, plan *model.TreatmentPlan) error
		GetPlan(ctx context.Context, id uuid.UUID) (*model.TreatmentPlan, error)
		UpdatePlan(ctx context.Context, plan *model.TreatmentPlan) error
		DeletePlan(ctx context.Context, id uuid.UUID) error
		ListPlans(ctx context.Context, patientID uuid.UUID) ([]*model.TreatmentPlan, error)
		GetPhase(ctx context.Context, id uuid.UUID) (*model.TreatmentPhase, error)
		UpdateItemStatus(ctx context.Context, itemID uuid.UUID, status string, appointmentID *uuid.UUID) error
	}
)
