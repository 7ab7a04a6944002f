package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Service sends transactional mail. Callers treat failures as best-effort:
// a lost confirmation never blocks a booking.
type Service interface {
	SendAppointmentConfirmation(ctx context.Context, to, nombre, fecha, hora, doctor string) error
	SendStatusUpdate(ctx context.Context, to, nombre, estado string) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg Config) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendAppointmentConfirmation(_ context.Context, to, nombre, fecha, hora, doctor string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Confirmación de solicitud de cita")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hola %s,\n\nHemos recibido tu solicitud de cita para el %s a las %s con %s. "+
			"Te avisaremos cuando sea confirmada.\n", nombre, fecha, hora, doctor))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	return nil
}

func (s *smtpService) SendStatusUpdate(_ context.Context, to, nombre, estado string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Actualización de tu cita")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hola %s,\n\nEl estado de tu cita ha cambiado a: %s.\n", nombre, estado))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send status email: %w", err)
	}
	return nil
}

// NopService discards all mail; used when SMTP is not configured.
type NopService struct{}

func (NopService) SendAppointmentConfirmation(context.Context, string, string, string, string, string) error {
	return nil
}

func (NopService) SendStatusUpdate(context.Context, string, string, string) error {
	return nil
}
