// Package email sends plain-text alert e-mails over SMTP.
package email

import (
	"errors"

	"catalog/config"

	"gopkg.in/gomail.v2"
)

// Dialer is the part of gomail.Dialer the mailer needs.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer delivers alerts to a fixed list of recipients.
type Mailer struct {
	from   string
	to     []string
	dialer Dialer
}

// New returns nil when SMTP is not configured; callers treat a nil *Mailer
// as "alerts disabled".
func New(cfg config.SMTPConfig) *Mailer {
	if cfg.Host == "" || len(cfg.NotifyTo) == 0 {
		return nil
	}
	return NewWithDialer(cfg.From, cfg.NotifyTo, gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password))
}

func NewWithDialer(from string, to []string, d Dialer) *Mailer {
	return &Mailer{from: from, to: to, dialer: d}
}

var ErrNoRecipients = errors.New("email: no recipients configured")

func (m *Mailer) Send(subject, body string) error {
	if m == nil || len(m.to) == 0 {
		return ErrNoRecipients
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}
