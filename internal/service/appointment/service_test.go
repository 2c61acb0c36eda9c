package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smiledesk/dental-api/internal/model"
	apperrors "github.com/smiledesk/dental-api/pkg/errors"
)

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
	conflict     bool
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (f *fakeAppointmentRepo) Create(_ context.Context, a *model.Appointment) error {
	a.ID = uuid.New()
	f.appointments[a.ID] = a
	return nil
}

func (f *fakeAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	a, ok := f.appointments[id]
	if !ok {
		return nil, errors.New("appointment not found")
	}
	return a, nil
}

func (f *fakeAppointmentRepo) Update(_ context.Context, a *model.Appointment) error {
	f.appointments[a.ID] = a
	return nil
}

func (f *fakeAppointmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.appointments, id)
	return nil
}

func (f *fakeAppointmentRepo) List(_ context.Context, _ *model.AppointmentFilters) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range f.appointments {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) CheckConflicts(_ context.Context, _ uuid.UUID, _, _ time.Time, _ *uuid.UUID) (bool, error) {
	return f.conflict, nil
}

type fakeNotifier struct {
	created   int
	cancelled int
	reminders []string
}

func (f *fakeNotifier) AppointmentCreated(_ context.Context, _ *model.Appointment)   { f.created++ }
func (f *fakeNotifier) AppointmentCancelled(_ context.Context, _ *model.Appointment) { f.cancelled++ }
func (f *fakeNotifier) SendReminder(to string, _ *model.Appointment) error {
	f.reminders = append(f.reminders, to)
	return nil
}

func validCreateRequest() *model.CreateAppointmentRequest {
	start := time.Now().Add(24 * time.Hour)
	return &model.CreateAppointmentRequest{
		ClinicID:  uuid.NewString(),
		PatientID: uuid.NewString(),
		DentistID: uuid.NewString(),
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
	}
}

func TestCreateAppointmentNotifies(t *testing.T) {
	repo := newFakeAppointmentRepo()
	notifier := &fakeNotifier{}
	svc := NewService(repo, notifier)

	created, err := svc.CreateAppointment(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentStatusScheduled, created.Status)
	assert.Equal(t, 1, notifier.created)
}

func TestCreateAppointmentRejectsConflict(t *testing.T) {
	repo := newFakeAppointmentRepo()
	repo.conflict = true
	svc := NewService(repo, &fakeNotifier{})

	_, err := svc.CreateAppointment(context.Background(), validCreateRequest())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
}

func TestCancelAppointmentIsIdempotent(t *testing.T) {
	repo := newFakeAppointmentRepo()
	notifier := &fakeNotifier{}
	svc := NewService(repo, notifier)

	created, err := svc.CreateAppointment(context.Background(), validCreateRequest())
	require.NoError(t, err)

	first, err := svc.CancelAppointment(context.Background(), created.ID, "patient request")
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, first.Status)
	require.NotNil(t, first.CancelReason)
	assert.Equal(t, "patient request", *first.CancelReason)
	assert.Equal(t, 1, notifier.cancelled)

	second, err := svc.CancelAppointment(context.Background(), created.ID, "again")
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, second.Status)
	assert.Equal(t, 1, notifier.cancelled, "second cancel should not notify again")
}

func TestCancelAppointmentRejectsCompleted(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := NewService(repo, &fakeNotifier{})

	created, err := svc.CreateAppointment(context.Background(), validCreateRequest())
	require.NoError(t, err)
	created.Status = model.AppointmentStatusCompleted

	_, err = svc.CancelAppointment(context.Background(), created.ID, "too late")
	require.Error(t, err)
}

func TestUpdateAppointmentRejectsCancelled(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := NewService(repo, &fakeNotifier{})

	created, err := svc.CreateAppointment(context.Background(), validCreateRequest())
	require.NoError(t, err)
	created.Status = model.AppointmentStatusCancelled

	notes := "new notes"
	_, err = svc.UpdateAppointment(context.Background(), created.ID, &model.UpdateAppointmentRequest{Notes: &notes})
	require.Error(t, err)
}

func TestSendReminder(t *testing.T) {
	repo := newFakeAppointmentRepo()
	notifier := &fakeNotifier{}
	svc := NewService(repo, notifier)

	created, err := svc.CreateAppointment(context.Background(), validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.SendReminder(context.Background(), created.ID, "patient@example.com"))
	assert.Equal(t, []string{"patient@example.com"}, notifier.reminders)

	created.Status = model.AppointmentStatusCancelled
	err = svc.SendReminder(context.Background(), created.ID, "patient@example.com")
	require.Error(t, err)
	assert.Len(t, notifier.reminders, 1)
}
