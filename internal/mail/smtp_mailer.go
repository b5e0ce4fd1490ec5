package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type SMTPMailer struct {
	config SMTPConfig
	send   func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(config SMTPConfig) *SMTPMailer {
	return &SMTPMailer{config: config, send: smtp.SendMail}
}

func (mailer *SMTPMailer) Send(ctx context.Context, message Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.ContainsAny(message.To, "\r\n") || strings.ContainsAny(message.Subject, "\r\n") {
		return fmt.Errorf("invalid mail header value")
	}

	var auth smtp.Auth
	if mailer.config.Username != "" {
		auth = smtp.PlainAuth("", mailer.config.Username, mailer.config.Password, mailer.config.Host)
	}

	addr := net.JoinHostPort(mailer.config.Host, strconv.Itoa(mailer.config.Port))
	if err := mailer.send(addr, auth, mailer.config.From, []string{message.To}, mailer.render(message)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (mailer *SMTPMailer) render(message Message) []byte {
	var builder strings.Builder
	builder.WriteString("From: " + mailer.config.From + "\r\n")
	builder.WriteString("To: " + message.To + "\r\n")
	builder.WriteString("Subject: " + message.Subject + "\r\n")
	builder.WriteString("Date: " + time.Now().UTC().Format(time.RFC1123Z) + "\r\n")
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(strings.ReplaceAll(message.Body, "\n", "\r\n"))
	return []byte(builder.String())
}
