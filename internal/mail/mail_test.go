package mail

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/bloom/internal/i18n"
)

type recordingMailer struct {
	messages []Message
}

func (mailer *recordingMailer) Send(_ context.Context, message Message) error {
	mailer.messages = append(mailer.messages, message)
	return nil
}

func TestSignInSenderRendersLocalizedMessage(t *testing.T) {
	translator, err := i18n.NewManager(i18n.LangEN, i18n.Locales())
	if err != nil {
		t.Fatalf("init translator: %v", err)
	}
	mailer := &recordingMailer{}
	sender := NewSignInSender(mailer, translator, i18n.LangEN)

	link := "https://bloom.example.com/auth/verify?token=abc.def"
	if err := sender.SendSignInLink(context.Background(), "user@example.com", link, 15*time.Minute); err != nil {
		t.Fatalf("SendSignInLink() unexpected error: %v", err)
	}
	if len(mailer.messages) != 1 {
		t.Fatalf("expected one message, got %d", len(mailer.messages))
	}
	message := mailer.messages[0]
	if message.To != "user@example.com" || message.Subject != "Your Bloom sign-in link" {
		t.Fatalf("unexpected message header: %+v", message)
	}
	if !strings.Contains(message.Body, link) || !strings.Contains(message.Body, "15 minutes") {
		t.Fatalf("unexpected body %q", message.Body)
	}
}

func TestSMTPMailerSend(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	var gotAuth smtp.Auth

	mailer := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Port: 2525, Username: "bloom", Password: "secret", From: "bloom@example.com"})
	mailer.send = func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotFrom, gotTo, gotMsg = addr, auth, from, to, msg
		return nil
	}

	err := mailer.Send(context.Background(), Message{To: "user@example.com", Subject: "Hi", Body: "line one\nline two"})
	if err != nil {
		t.Fatalf("Send() unexpected error: %v", err)
	}
	if gotAddr != "smtp.example.com:2525" || gotFrom != "bloom@example.com" || len(gotTo) != 1 || gotTo[0] != "user@example.com" {
		t.Fatalf("unexpected envelope addr=%q from=%q to=%v", gotAddr, gotFrom, gotTo)
	}
	if gotAuth == nil {
		t.Fatalf("expected plain auth when username is set")
	}
	rendered := string(gotMsg)
	if !strings.Contains(rendered, "Subject: Hi\r\n") || !strings.HasSuffix(rendered, "line one\r\nline two") {
		t.Fatalf("unexpected rendered message %q", rendered)
	}
}

func TestSMTPMailerRejectsHeaderInjection(t *testing.T) {
	mailer := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Port: 25, From: "bloom@example.com"})
	mailer.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatalf("send must not be called")
		return nil
	}

	if err := mailer.Send(context.Background(), Message{To: "user@example.com\r\nBcc: x@example.com", Subject: "Hi"}); err == nil {
		t.Fatalf("expected header injection to be rejected")
	}
}

func TestSMTPMailerWrapsSendError(t *testing.T) {
	sendErr := errors.New("connection refused")
	mailer := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Port: 25, From: "bloom@example.com"})
	mailer.send = func(string, smtp.Auth, string, []string, []byte) error { return sendErr }

	if err := mailer.Send(context.Background(), Message{To: "user@example.com", Subject: "Hi"}); !errors.Is(err, sendErr) {
		t.Fatalf("expected wrapped send error, got %v", err)
	}
}

func TestLogMailerNeverFails(t *testing.T) {
	if err := NewLogMailer(nil).Send(context.Background(), Message{To: "user@example.com"}); err != nil {
		t.Fatalf("Send() unexpected error: %v", err)
	}
}
