package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// MailConfig describes the SMTP transport and sender identity.
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends run summaries over SMTP.
type Mailer struct {
	cfg MailConfig
}

// NewMailer creates a mailer for the given transport configuration.
func NewMailer(cfg MailConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send delivers msg to the given recipients.
func (m *Mailer) Send(ctx context.Context, recipients []string, msg Message) error {
	if len(recipients) == 0 {
		return fmt.Errorf("no mail recipients configured")
	}

	mm := mail.NewMsg()
	if err := mm.From(m.cfg.From); err != nil {
		return fmt.Errorf("invalid sender %q: %w", m.cfg.From, err)
	}
	if err := mm.To(recipients...); err != nil {
		return fmt.Errorf("invalid recipients: %w", err)
	}
	mm.Subject(msg.Subject)
	mm.SetBodyString(mail.TypeTextHTML, msg.Body)

	opts := []mail.Option{mail.WithPort(m.cfg.Port)}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}
	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, mm); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}
