// Package mail delivers sign-in links.
package mail

import (
	"context"
	"time"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, message Message) error
}

type Translator interface {
	Translate(language string, key string) string
	Translatef(language string, key string, args ...any) string
}

// SignInSender renders the localized sign-in message and hands it to a Mailer.
type SignInSender struct {
	mailer     Mailer
	translator Translator
	language   string
}

func NewSignInSender(mailer Mailer, translator Translator, language string) *SignInSender {
	return &SignInSender{
		mailer:     mailer,
		translator: translator,
		language:   language,
	}
}

func (sender *SignInSender) SendSignInLink(ctx context.Context, email string, link string, expiresIn time.Duration) error {
	return sender.mailer.Send(ctx, Message{
		To:      email,
		Subject: sender.translator.Translate(sender.language, "mail.sign_in.subject"),
		Body:    sender.translator.Translatef(sender.language, "mail.sign_in.body", link, int(expiresIn.Minutes())),
	})
}
