package relay

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/editfolio/editfolio-backend/internal/config"
	"github.com/editfolio/editfolio-backend/pkg/logger"
	"github.com/editfolio/editfolio-backend/pkg/metrics"
)

var (
	ErrMissingField  = errors.New("name, email and message are all required")
	ErrNotConfigured = errors.New("contact relay is not configured")
)

// Submission is one contact-form payload. Nothing about it is persisted;
// the relay is a pure side channel.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate rejects submissions with any blank field.
func (s Submission) Validate() error {
	if strings.TrimSpace(s.Name) == "" ||
		strings.TrimSpace(s.Email) == "" ||
		strings.TrimSpace(s.Message) == "" {
		return ErrMissingField
	}
	return nil
}

// SMSSender delivers one text message to the site owner.
type SMSSender interface {
	SendSMS(ctx context.Context, body string) error
}

// EmailSender delivers one email notification to the site owner.
type EmailSender interface {
	SendEmail(ctx context.Context, subject, body, replyTo string) error
}

// Relay fans a submission out to every configured channel concurrently.
// A channel left unconfigured at startup is simply skipped.
type Relay struct {
	sms   SMSSender
	email EmailSender
}

func New(sms SMSSender, email EmailSender) *Relay {
	return &Relay{sms: sms, email: email}
}

// NewFromConfig wires up whichever channels the environment configures.
func NewFromConfig(cfg *config.Config) *Relay {
	var sms SMSSender
	if cfg.Relay.TwilioAccountSID != "" && cfg.Relay.TwilioAuthToken != "" {
		sms = NewTwilioSender(cfg)
	} else {
		logger.Warnf("twilio is not configured; contact relay will not send SMS")
	}
	var email EmailSender
	if cfg.Relay.SMTPHost != "" && cfg.Relay.NotifyEmail != "" {
		email = NewGomailSender(cfg)
	} else {
		logger.Warnf("smtp is not configured; contact relay will not send email")
	}
	return New(sms, email)
}

// Enabled reports whether at least one channel can deliver.
func (r *Relay) Enabled() bool {
	return r.sms != nil || r.email != nil
}

// Dispatch sends one SMS and one email for the submission. Both channels
// run concurrently; if either fails the whole dispatch is reported as
// failed so the caller can surface a server error.
func (r *Relay) Dispatch(ctx context.Context, sub Submission) error {
	if err := sub.Validate(); err != nil {
		return err
	}
	if !r.Enabled() {
		return ErrNotConfigured
	}

	var wg sync.WaitGroup
	errs := make(chan error, 2)

	if r.sms != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			body := fmt.Sprintf("New contact from %s (%s): %s", sub.Name, sub.Email, sub.Message)
			if err := r.sms.SendSMS(ctx, body); err != nil {
				metrics.RelayDispatches.WithLabelValues("sms", "error").Inc()
				logger.Errorf("contact relay SMS failed: %v", err)
				errs <- fmt.Errorf("sms dispatch: %w", err)
				return
			}
			metrics.RelayDispatches.WithLabelValues("sms", "ok").Inc()
		}()
	}

	if r.email != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			subject := fmt.Sprintf("New contact form submission from %s", sub.Name)
			body := fmt.Sprintf("Name: %s\nEmail: %s\n\n%s", sub.Name, sub.Email, sub.Message)
			if err := r.email.SendEmail(ctx, subject, body, sub.Email); err != nil {
				metrics.RelayDispatches.WithLabelValues("email", "error").Inc()
				logger.Errorf("contact relay email failed: %v", err)
				errs <- fmt.Errorf("email dispatch: %w", err)
				return
			}
			metrics.RelayDispatches.WithLabelValues("email", "ok").Inc()
		}()
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		return err
	}
	return nil
}
