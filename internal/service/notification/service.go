package notification

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/smiledesk/dental-api/internal/config"
	"github.com/smiledesk/dental-api/internal/model"
	"github.com/smiledesk/dental-api/pkg/messaging"
	"github.com/smiledesk/dental-api/pkg/metrics"
)

const (
	eventAppointmentCreated   = "appointment.created"
	eventAppointmentCancelled = "appointment.cancelled"
)

// Service fans appointment events out to the clinic notification channel
// and sends reminder emails. Everything here is best-effort: a failed
// publish is logged and counted, never surfaced to the caller.
type Service interface {
	AppointmentCreated(ctx context.Context, appointment *model.Appointment)
	AppointmentCancelled(ctx context.Context, appointment *model.Appointment)
	SendReminder(to string, appointment *model.Appointment) error
}

type service struct {
	broker  messaging.Broker
	dialer  *gomail.Dialer
	from    string
	metrics *metrics.Metrics
	logger  *zerolog.Logger
}

func NewService(broker messaging.Broker, emailCfg config.EmailConfig, m *metrics.Metrics, logger *zerolog.Logger) Service {
	return &service{
		broker:  broker,
		dialer:  gomail.NewDialer(emailCfg.Host, emailCfg.Port, emailCfg.Username, emailCfg.Password),
		from:    emailCfg.From,
		metrics: m,
		logger:  logger,
	}
}

func (s *service) AppointmentCreated(ctx context.Context, appointment *model.Appointment) {
	s.publish(ctx, appointment, eventAppointmentCreated)
}

func (s *service) AppointmentCancelled(ctx context.Context, appointment *model.Appointment) {
	s.publish(ctx, appointment, eventAppointmentCancelled)
}

func (s *service) SendReminder(to string, appointment *model.Appointment) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Appointment reminder")
	msg.SetBody("text/plain", fmt.Sprintf(
		"This is a reminder for your dental appointment on %s.",
		appointment.StartTime.Format("Mon, 2 Jan 2006 at 15:04"),
	))

	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send reminder email: %w", err)
	}
	s.metrics.RemindersSent.Inc()
	return nil
}

func (s *service) publish(ctx context.Context, appointment *model.Appointment, eventType string) {
	channel := fmt.Sprintf("notifications:%s", appointment.ClinicID)
	err := s.broker.Publish(ctx, channel, messaging.Message{
		Type:    eventType,
		Payload: appointment,
	})
	if err != nil {
		s.metrics.NotificationsFailed.Inc()
		s.logger.Error().
			Err(err).
			Str("channel", channel).
			Str("event", eventType).
			Str("appointment_id", appointment.ID.String()).
			Msg("failed to publish notification")
		return
	}
	s.metrics.NotificationsPublished.Inc()
}
