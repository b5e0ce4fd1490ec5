package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/terraincognita07/bloom/internal/insight"
	"github.com/terraincognita07/bloom/internal/services"
)

func TestInsightsBelowGuardReturnConflict(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	cookie := env.signIn(t, "guard@example.com")
	user := env.userByEmail(t, "guard@example.com")
	env.seedEntries(t, user.ID, 5, 5)

	for _, request := range []struct {
		method string
		path   string
	}{
		{method: http.MethodGet, path: "/api/insights"},
		{method: http.MethodPost, path: "/api/insights/narrative"},
	} {
		response := env.do(t, request.method, request.path, "", cookie)
		if response.StatusCode != http.StatusConflict {
			t.Fatalf("%s: expected status 409, got %d", request.path, response.StatusCode)
		}
		if got := readAPIError(t, response.Body); got != "not enough data" {
			t.Fatalf("%s: expected not enough data, got %q", request.path, got)
		}
	}
}

func TestInsightsStatsAndRiskLabel(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	cookie := env.signIn(t, "stats@example.com")
	user := env.userByEmail(t, "stats@example.com")
	env.seedEntries(t, user.ID, 2, 2, 2, 9)

	response := env.do(t, http.MethodGet, "/api/insights", "", cookie)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	payload := struct {
		Stats     services.Insights `json:"stats"`
		RiskLabel string            `json:"risk_label"`
	}{}
	decodeJSON(t, response.Body, &payload)

	if payload.Stats.EntryCount != 4 {
		t.Fatalf("expected 4 entries, got %d", payload.Stats.EntryCount)
	}
	if payload.Stats.AvgPain != 3.8 {
		t.Fatalf("expected avg pain 3.8, got %v", payload.Stats.AvgPain)
	}
	if payload.Stats.RiskLevel != services.RiskLow || payload.RiskLabel != "Symptoms Stable" {
		t.Fatalf("expected low risk from the newest entries, got %s (%q)", payload.Stats.RiskLevel, payload.RiskLabel)
	}
	if len(payload.Stats.Trend) != 4 || payload.Stats.Trend[0].PainLevel != 9 {
		t.Fatalf("expected oldest-first trend, got %+v", payload.Stats.Trend)
	}
}

func TestNarrativeReturnsProviderText(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	cookie := env.signIn(t, "narrative@example.com")
	user := env.userByEmail(t, "narrative@example.com")
	env.seedEntries(t, user.ID, 4, 5, 6)

	response := env.do(t, http.MethodPost, "/api/insights/narrative", "", cookie)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	narrative := services.Narrative{}
	decodeJSON(t, response.Body, &narrative)
	if narrative.Fallback || narrative.Text != "Pain peaks after poor sleep." {
		t.Fatalf("unexpected narrative %+v", narrative)
	}
}

func TestNarrativeFallsBackOnProviderFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		provider insight.Provider
		want     string
	}{
		{name: "transport failure", provider: insight.StaticProvider{Err: errors.New("dial tcp: connection refused")}, want: "Unable to connect. Check your internet connection."},
		{name: "empty answer", provider: insight.StaticProvider{}, want: "Unable to generate insight."},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnvWithOptions(t, testEnvOptions{provider: test.provider})
			cookie := env.signIn(t, "fallback@example.com")
			user := env.userByEmail(t, "fallback@example.com")
			env.seedEntries(t, user.ID, 4, 5, 6)

			response := env.do(t, http.MethodPost, "/api/insights/narrative", "", cookie)
			if response.StatusCode != http.StatusOK {
				t.Fatalf("expected status 200, got %d", response.StatusCode)
			}
			narrative := services.Narrative{}
			decodeJSON(t, response.Body, &narrative)
			if !narrative.Fallback || narrative.Text != test.want {
				t.Fatalf("expected fallback %q, got %+v", test.want, narrative)
			}
		})
	}
}
