package notify

import (
	"context"

	"venue-booking/internal/pkg/errs"

	"github.com/wneessen/go-mail"
)

type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Subject  string
}

// EmailSender submits each message as a plain-text mail. STARTTLS is used when
// the server offers it; PLAIN auth only when a username is configured.
type EmailSender struct {
	cfg EmailConfig
}

func NewEmailSender(cfg EmailConfig) *EmailSender {
	if cfg.Subject == "" {
		cfg.Subject = "Prenotazione"
	}
	return &EmailSender{cfg: cfg}
}

func (s *EmailSender) Send(ctx context.Context, message, destination string) error {
	msg, err := s.compose(message, destination)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(s.cfg.Host, s.clientOptions()...)
	if err != nil {
		return errs.Wrap(err, "smtp client")
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return errs.Wrapf(err, "smtp send to %s", destination)
	}
	return nil
}

func (s *EmailSender) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}
	return opts
}

func (s *EmailSender) compose(message, destination string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return nil, errs.Wrapf(err, "invalid sender address %q", s.cfg.From)
	}
	if err := msg.To(destination); err != nil {
		return nil, errs.Wrapf(err, "invalid recipient address %q", destination)
	}
	msg.Subject(s.cfg.Subject)
	msg.SetDate()
	msg.SetMessageID()
	msg.SetBodyString(mail.TypeTextPlain, message)
	return msg, nil
}
