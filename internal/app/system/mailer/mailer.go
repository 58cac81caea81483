// Package mailer sends the transactional emails the CMS produces: account
// welcome messages carrying temporary credentials and password-reset OTPs.
package mailer

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// Config holds the SMTP settings for a Mailer.
type Config struct {
	Host     string
	Port     int
	User     string
	Pass     string
	From     string
	FromName string
}

// Mailer sends emails over SMTP. Sends are synchronous; callers that need a
// delivery guarantee (register, forgot-password) check the returned error
// and compensate.
type Mailer struct {
	cfg Config
	log *zap.Logger
}

// New creates a Mailer with the given configuration.
func New(cfg Config, log *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log}
}

// Email is one outbound message. When HTMLBody is set the message goes out
// as multipart/alternative with TextBody as the fallback part.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Send delivers the email and returns the SMTP error, if any.
func (m *Mailer) Send(email Email) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.User != "" && m.cfg.Pass != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	}

	err := smtp.SendMail(addr, auth, m.cfg.From, []string{email.To}, m.message(email))
	if err != nil {
		m.log.Error("failed to send email",
			zap.String("to", email.To),
			zap.String("subject", email.Subject),
			zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.log.Info("email sent",
		zap.String("to", email.To),
		zap.String("subject", email.Subject))
	return nil
}

// message renders the RFC 5322 bytes for one email.
func (m *Mailer) message(email Email) []byte {
	from := m.cfg.From
	if m.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.From)
	}

	var b strings.Builder
	header := func(name, value string) {
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("\r\n")
	}
	part := func(contentType, body string) {
		header("Content-Type", contentType)
		b.WriteString("\r\n")
		b.WriteString(body)
		b.WriteString("\r\n")
	}

	header("From", from)
	header("To", email.To)
	header("Subject", email.Subject)
	header("MIME-Version", "1.0")

	if email.HTMLBody == "" {
		part("text/plain; charset=UTF-8", email.TextBody)
		return []byte(b.String())
	}

	boundary := mimeBoundary()
	header("Content-Type", fmt.Sprintf("multipart/alternative; boundary=%q", boundary))
	b.WriteString("\r\n")
	b.WriteString("--" + boundary + "\r\n")
	part("text/plain; charset=UTF-8", email.TextBody)
	b.WriteString("--" + boundary + "\r\n")
	part("text/html; charset=UTF-8", email.HTMLBody)
	b.WriteString("--" + boundary + "--\r\n")
	return []byte(b.String())
}

func mimeBoundary() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic("crypto/rand.Read failed: " + err.Error())
	}
	return "=_cotco_" + hex.EncodeToString(buf)
}
