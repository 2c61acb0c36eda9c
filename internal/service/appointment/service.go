package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/smiledesk/dental-api/internal/model"
	"github.com/smiledesk/dental-api/internal/repository"
	"github.com/smiledesk/dental-api/internal/service/notification"
	apperrors "github.com/smiledesk/dental-api/pkg/errors"
)

type Service struct {
	repo     repository.AppointmentRepository
	notifier notification.Service
}

func NewService(repo repository.AppointmentRepository, notifier notification.Service) *Service {
	return &Service{repo: repo, notifier: notifier}
}

func (s *Service) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
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

	conflict, err := s.repo.CheckConflicts(ctx, dentistID, req.StartTime, req.EndTime, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check conflicts: %w", err)
	}
	if conflict {
		return nil, apperrors.NewConflict("dentist already has an appointment in this time slot", nil)
	}

	appointment := &model.Appointment{
		ClinicID:  clinicID,
		PatientID: patientID,
		DentistID: dentistID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    model.AppointmentStatusScheduled,
		Notes:     req.Notes,
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.notifier.AppointmentCreated(ctx, appointment)
	return appointment, nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return appointment, nil
}

func (s *Service) UpdateAppointment(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.Status == model.AppointmentStatusCancelled {
		return nil, apperrors.NewBadRequest("cannot update a cancelled appointment", nil)
	}

	if req.StartTime != nil {
		appointment.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		appointment.EndTime = *req.EndTime
	}
	if req.Status != nil {
		appointment.Status = *req.Status
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}

	if req.StartTime != nil || req.EndTime != nil {
		conflict, err := s.repo.CheckConflicts(ctx, appointment.DentistID,
			appointment.StartTime, appointment.EndTime, &appointment.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check conflicts: %w", err)
		}
		if conflict {
			return nil, apperrors.NewConflict("dentist already has an appointment in this time slot", nil)
		}
	}

	appointment.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	return appointment, nil
}

func (s *Service) CancelAppointment(ctx context.Context, id uuid.UUID, reason string) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.Status == model.AppointmentStatusCancelled {
		return appointment, nil
	}
	if appointment.Status == model.AppointmentStatusCompleted {
		return nil, apperrors.NewConflict("cannot cancel a completed appointment", nil)
	}

	appointment.Status = model.AppointmentStatusCancelled
	appointment.CancelReason = &reason
	appointment.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to cancel appointment: %w", err)
	}

	s.notifier.AppointmentCancelled(ctx, appointment)
	return appointment, nil
}

func (s *Service) SendReminder(ctx context.Context, id uuid.UUID, email string) error {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get appointment: %w", err)
	}
	if appointment.Status == model.AppointmentStatusCancelled {
		return apperrors.NewBadRequest("cannot send a reminder for a cancelled appointment", nil)
	}
	return s.notifier.SendReminder(email, appointment)
}

func (s *Service) ListAppointments(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}
