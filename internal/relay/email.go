package relay

import (
	"context"

	"gopkg.in/gomail.v2"

	"github.com/editfolio/editfolio-backend/internal/config"
)

// GomailSender delivers notification emails over SMTP.
type GomailSender struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

func NewGomailSender(cfg *config.Config) *GomailSender {
	return &GomailSender{
		dialer: gomail.NewDialer(cfg.Relay.SMTPHost, cfg.Relay.SMTPPort, cfg.Relay.SMTPUsername, cfg.Relay.SMTPPassword),
		from:   cfg.Relay.SMTPUsername,
		to:     cfg.Relay.NotifyEmail,
	}
}

func (g *GomailSender) SendEmail(ctx context.Context, subject, body, replyTo string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", g.from)
	m.SetHeader("To", g.to)
	m.SetHeader("Subject", subject)
	if replyTo != "" {
		m.SetHeader("Reply-To", replyTo)
	}
	m.SetBody("text/plain", body)

	done := make(chan error, 1)
	go func() { done <- g.dialer.DialAndSend(m) }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
