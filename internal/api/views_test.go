package api

import (
	"net/http"
	"testing"

	"github.com/terraincognita07/bloom/internal/services"
)

func TestTabBarDefaultsToLog(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	cookie := env.signIn(t, "tabs@example.com")

	response := env.do(t, http.MethodGet, "/api/views", "", cookie)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	view := services.TabBarView{}
	decodeJSON(t, response.Body, &view)
	if view.Active != services.TabLog || len(view.Tabs) != 3 {
		t.Fatalf("unexpected tab bar: %+v", view)
	}
	if !view.Tabs[0].Active || view.Tabs[0].Label != "Log" {
		t.Fatalf("expected active log tab first, got %+v", view.Tabs[0])
	}

	unknown := env.do(t, http.MethodGet, "/api/views?tab=calendar", "", cookie)
	if unknown.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected unknown tab status 400, got %d", unknown.StatusCode)
	}
}

func TestTabBarUsesRequestLanguage(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	cookie := env.signIn(t, "russian@example.com")

	response := env.do(t, http.MethodGet, "/api/views?tab=history", "", cookie+"; "+languageCookieName+"=ru")
	view := services.TabBarView{}
	decodeJSON(t, response.Body, &view)
	if view.Tabs[1].Label != "История" || !view.Tabs[1].Active {
		t.Fatalf("expected active russian history tab, got %+v", view.Tabs[1])
	}
}

func TestLogViewListsScalesAndOptions(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	cookie := env.signIn(t, "logview@example.com")

	response := env.do(t, http.MethodGet, "/api/views/log", "", cookie)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	view := services.LogView{}
	decodeJSON(t, response.Body, &view)
	if view.Stored {
		t.Fatal("expected fresh draft")
	}
	if len(view.Symptoms) != 5 || len(view.BleedingLevels) != 5 || len(view.TriggerSuggestions) != 6 {
		t.Fatalf("unexpected log view catalog sizes: %d/%d/%d", len(view.Symptoms), len(view.BleedingLevels), len(view.TriggerSuggestions))
	}
	if !view.BleedingLevels[0].Selected {
		t.Fatal("expected bleeding none selected by default")
	}
}

func TestHistoryViewEmptyThenAccented(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	cookie := env.signIn(t, "history@example.com")

	empty := env.do(t, http.MethodGet, "/api/views/history", "", cookie)
	emptyView := services.HistoryView{}
	decodeJSON(t, empty.Body, &emptyView)
	if !emptyView.Empty || emptyView.EmptyMessage == "" {
		t.Fatalf("expected empty history, got %+v", emptyView)
	}

	user := env.userByEmail(t, "history@example.com")
	env.seedEntries(t, user.ID, 8, 5, 2)

	response := env.do(t, http.MethodGet, "/api/views/history", "", cookie)
	view := services.HistoryView{}
	decodeJSON(t, response.Body, &view)
	if view.Empty || len(view.Items) != 3 {
		t.Fatalf("expected three history items, got %+v", view)
	}
	want := []services.PainTier{services.PainTierRed, services.PainTierAmber, services.PainTierGreen}
	for index, item := range view.Items {
		if item.Accent != want[index] {
			t.Fatalf("item %d: expected accent %s, got %s", index, want[index], item.Accent)
		}
	}
}

func TestInsightsViewWaitsForEnoughEntries(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	cookie := env.signIn(t, "insightsview@example.com")
	user := env.userByEmail(t, "insightsview@example.com")
	env.seedEntries(t, user.ID, 4)

	response := env.do(t, http.MethodGet, "/api/views/insights", "", cookie)
	view := services.InsightsView{}
	decodeJSON(t, response.Body, &view)
	if view.Ready {
		t.Fatal("expected insights to be locked")
	}
	if view.Message != "Log at least 3 days to unlock pattern insights." {
		t.Fatalf("unexpected message %q", view.Message)
	}
	if view.Progress != "You have 1 entry so far." {
		t.Fatalf("unexpected progress %q", view.Progress)
	}

	env.seedEntries(t, user.ID, 8, 8, 8)
	ready := env.do(t, http.MethodGet, "/api/views/insights", "", cookie)
	readyView := services.InsightsView{}
	decodeJSON(t, ready.Body, &readyView)
	if !readyView.Ready || readyView.Stats == nil {
		t.Fatalf("expected ready insights, got %+v", readyView)
	}
	if readyView.RiskLabel != "High Flare Risk" {
		t.Fatalf("expected high risk label, got %q", readyView.RiskLabel)
	}
	if readyView.TopTrigger != "Stress" {
		t.Fatalf("expected top trigger Stress, got %q", readyView.TopTrigger)
	}
}
