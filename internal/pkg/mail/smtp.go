package mail

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
)

// ErrSMTPHostPortRequired is returned when Host or Port is missing.
var ErrSMTPHostPortRequired = errors.New("mail: smtp host and port are required")

// SMTPConfig configures the SMTP implementation.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	// From is the default sender when Message.From is empty.
	From string
}

// SMTP is a Mail implementation backed by net/smtp.
type SMTP struct {
	addr        string
	defaultFrom string
	auth        smtp.Auth
	send        func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTP constructs an SMTP mail sender.
func NewSMTP(cfg SMTPConfig) (*SMTP, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, ErrSMTPHostPortRequired
	}

	var auth smtp.Auth
	if cfg.Username != "" && cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &SMTP{
		addr:        net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		defaultFrom: cfg.From,
		auth:        auth,
		send:        smtp.SendMail,
	}, nil
}

// Send delivers a message over SMTP.
func (s *SMTP) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	from, err := resolveSender(msg, s.defaultFrom)
	if err != nil {
		return err
	}

	raw := composeMIME(from, msg, multipartBoundary())

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.send(s.addr, s.auth, from, msg.Recipients(), raw); err != nil {
		return fmt.Errorf("mail: smtp send: %w", err)
	}
	return nil
}

// Close implements io.Closer; each Send dials its own connection.
func (s *SMTP) Close() error {
	return nil
}

// composeMIME renders the RFC 5322 message. Bcc never appears in headers.
func composeMIME(from string, msg Message, boundary string) []byte {
	var sb strings.Builder

	writeHeader := func(k, v string) {
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(v)
		sb.WriteString("\r\n")
	}

	writeHeader("From", from)
	writeHeader("To", strings.Join(msg.To, ", "))
	if len(msg.Cc) > 0 {
		writeHeader("Cc", strings.Join(msg.Cc, ", "))
	}
	writeHeader("Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	writeHeader("MIME-Version", "1.0")

	switch {
	case msg.HTMLBody != "" && msg.TextBody != "":
		writeHeader("Content-Type", "multipart/alternative; boundary="+boundary)
		sb.WriteString("\r\n")
		writePart(&sb, boundary, "text/plain", msg.TextBody)
		writePart(&sb, boundary, "text/html", msg.HTMLBody)
		fmt.Fprintf(&sb, "--%s--\r\n", boundary)
	case msg.HTMLBody != "":
		writeHeader("Content-Type", "text/html; charset=UTF-8")
		sb.WriteString("\r\n")
		sb.WriteString(msg.HTMLBody)
	default:
		writeHeader("Content-Type", "text/plain; charset=UTF-8")
		sb.WriteString("\r\n")
		sb.WriteString(msg.TextBody)
	}

	return []byte(sb.String())
}

func writePart(sb *strings.Builder, boundary, contentType, body string) {
	fmt.Fprintf(sb, "--%s\r\n", boundary)
	fmt.Fprintf(sb, "Content-Type: %s; charset=UTF-8\r\n\r\n", contentType)
	sb.WriteString(body)
	sb.WriteString("\r\n")
}

func multipartBoundary() string {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "eventex-boundary"
	}
	return "eventex-" + hex.EncodeToString(b[:])
}
