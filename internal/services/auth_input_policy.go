package services

import (
	"errors"
	"net/mail"
	"strings"
)

var ErrAuthEmailInvalid = errors.New("auth email invalid")

func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	address, err := mail.ParseAddress(email)
	if err != nil || address.Address != email {
		return ""
	}
	return email
}

func NormalizeSignInEmailInput(raw string) (string, error) {
	email := NormalizeAuthEmail(raw)
	if email == "" {
		return "", ErrAuthEmailInvalid
	}
	return email, nil
}
