package security

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

const (
	signInSecretAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	SignInSecretLength   = 40
)

var ErrMalformedSignInToken = errors.New("malformed sign-in token")

// NewSignInSecret draws SignInSecretLength characters uniformly from the
// secret alphabet using crypto/rand.
func NewSignInSecret() (string, error) {
	limit := big.NewInt(int64(len(signInSecretAlphabet)))
	secret := make([]byte, SignInSecretLength)
	for index := range secret {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		secret[index] = signInSecretAlphabet[position.Int64()]
	}
	return string(secret), nil
}

// FormatSignInToken joins the link id and its secret into the value carried
// by the emailed link.
func FormatSignInToken(linkID string, secret string) string {
	return linkID + "." + secret
}

func ParseSignInToken(raw string) (string, string, error) {
	linkID, secret, found := strings.Cut(strings.TrimSpace(raw), ".")
	if !found || linkID == "" || len(secret) != SignInSecretLength {
		return "", "", ErrMalformedSignInToken
	}
	for _, char := range secret {
		if !strings.ContainsRune(signInSecretAlphabet, char) {
			return "", "", ErrMalformedSignInToken
		}
	}
	return linkID, secret, nil
}
