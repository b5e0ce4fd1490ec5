package api

import (
	"encoding/json"
	"io"
	"net/http"
	"slices"
	"testing"
)

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	index := slices.IndexFunc(cookies, func(cookie *http.Cookie) bool { return cookie.Name == name })
	if index < 0 {
		return nil
	}
	return cookies[index]
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()

	var payload struct {
		Error string `json:"error"`
	}
	decodeJSON(t, body, &payload)
	return payload.Error
}

func decodeJSON(t *testing.T, body io.Reader, target any) {
	t.Helper()

	raw, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		t.Fatalf("decode response body %q: %v", raw, err)
	}
}
