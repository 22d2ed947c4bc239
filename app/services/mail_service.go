// Package services provides external service integrations and technical concerns like tokens, caching, and messaging
package services

import (
	"fmt"
	"net/smtp"
	"strings"
)

// MailService sends emails with a single JSON attachment
type MailService interface {
	SendJSONAttachment(to, subject, body, filename string, attachment []byte) error
}

// SMTPMailService implements MailService over plain SMTP
type SMTPMailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPMailService creates a mail service for the given SMTP server
func NewSMTPMailService(host string, port int, username, password, from string) MailService {
	return &SMTPMailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// SendJSONAttachment sends a multipart message carrying a JSON attachment.
// The attachment is sent verbatim; 8BITMIME servers are assumed.
func (s *SMTPMailService) SendJSONAttachment(to, subject, body, filename string, attachment []byte) error {
	const boundary = "openmusic-export-boundary"

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/mixed; boundary=%s\r\n", boundary)
	msg.WriteString("\r\n")

	fmt.Fprintf(&msg, "--%s\r\n", boundary)
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)
	msg.WriteString("\r\n")

	fmt.Fprintf(&msg, "--%s\r\n", boundary)
	fmt.Fprintf(&msg, "Content-Type: application/json; name=%q\r\n", filename)
	fmt.Fprintf(&msg, "Content-Disposition: attachment; filename=%q\r\n\r\n", filename)
	msg.Write(attachment)
	msg.WriteString("\r\n")

	fmt.Fprintf(&msg, "--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	if err := smtp.SendMail(addr, auth, s.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send export email to %s: %w", to, err)
	}
	return nil
}
