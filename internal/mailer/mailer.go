// Package mailer provides outbound email delivery for registration
// confirmations, receipts, and event reminders. Delivery failures never block
// payment-state durability; callers either log and swallow the error or retry
// through the scheduled job runner.
package mailer

import (
	"context"
	"net/smtp"
	"strings"

	"github.com/domodwyer/mailyak/v3"

	apperrors "github.com/courtside/registration/internal/errors"
)

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers outbound email.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Config holds SMTP relay settings.
type Config struct {
	Addr        string // host:port of the SMTP relay
	User        string // empty disables authentication
	Password    string
	FromAddress string
	FromName    string
}

// smtpMailer implements Mailer over an SMTP relay.
type smtpMailer struct {
	config Config
}

// NewSMTPMailer creates a Mailer backed by an SMTP relay.
func NewSMTPMailer(config Config) Mailer {
	return &smtpMailer{config: config}
}

// Send delivers a single message. The context is consulted before dialing;
// mailyak itself does not support mid-send cancellation.
func (m *smtpMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if m.config.User != "" {
		host := m.config.Addr
		if idx := strings.LastIndex(host, ":"); idx != -1 {
			host = host[:idx]
		}
		auth = smtp.PlainAuth("", m.config.User, m.config.Password, host)
	}

	mail := mailyak.New(m.config.Addr, auth)
	mail.From(m.config.FromAddress)
	mail.FromName(m.config.FromName)
	mail.To(msg.To)
	mail.Subject(msg.Subject)
	mail.Plain().Set(msg.Body)

	if err := mail.Send(); err != nil {
		return apperrors.Wrap(apperrors.ErrUnavailable, "smtp send failed: "+err.Error())
	}

	return nil
}
