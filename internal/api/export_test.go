package api

import (
	"encoding/csv"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/bloom/internal/models"
	"github.com/terraincognita07/bloom/internal/services"
)

func TestExportCSVIncludesHeaderAndRows(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	cookie := env.signIn(t, "csv@example.com")
	user := env.userByEmail(t, "csv@example.com")
	env.seedEntries(t, user.ID, 6, 3)

	response := env.do(t, http.MethodGet, "/api/export/csv", "", cookie)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	if got := response.Header.Get("Content-Type"); !strings.HasPrefix(got, "text/csv") {
		t.Fatalf("expected text/csv content type, got %q", got)
	}
	if got := response.Header.Get("Content-Disposition"); !strings.Contains(got, "bloom-export-") || !strings.HasSuffix(got, ".csv") {
		t.Fatalf("unexpected content disposition %q", got)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	records, err := csv.NewReader(strings.NewReader(string(body))).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header and two rows, got %d records", len(records))
	}
	if strings.Join(records[0], ",") != strings.Join(services.ExportCSVHeaders, ",") {
		t.Fatalf("unexpected header %v", records[0])
	}
	if records[1][1] != "3" || records[2][1] != "6" {
		t.Fatalf("expected rows oldest first, got %v and %v", records[1], records[2])
	}
}

func TestExportJSONHonorsRange(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	cookie := env.signIn(t, "json@example.com")
	user := env.userByEmail(t, "json@example.com")
	env.seedEntries(t, user.ID, 1, 2, 3, 4)

	today := time.Now().UTC()
	from := today.AddDate(0, 0, -2).Format(models.EntryDateLayout)
	to := today.AddDate(0, 0, -1).Format(models.EntryDateLayout)

	response := env.do(t, http.MethodGet, "/api/export/json?from="+from+"&to="+to, "", cookie)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	payload := struct {
		ExportedAt string                     `json:"exported_at"`
		Entries    []services.ExportJSONEntry `json:"entries"`
	}{}
	decodeJSON(t, response.Body, &payload)
	if payload.ExportedAt == "" {
		t.Fatal("expected exported_at")
	}
	if len(payload.Entries) != 2 {
		t.Fatalf("expected two entries in range, got %d", len(payload.Entries))
	}
	for _, entry := range payload.Entries {
		if entry.Date < from || entry.Date > to {
			t.Fatalf("entry %s outside range %s..%s", entry.Date, from, to)
		}
	}
}

func TestExportRangeValidation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	cookie := env.signIn(t, "range@example.com")

	tests := []struct {
		query string
		want  string
	}{
		{query: "?from=2026-13-01", want: "invalid from date"},
		{query: "?to=yesterday", want: "invalid to date"},
		{query: "?from=2026-02-10&to=2026-02-01", want: "invalid range"},
	}
	for _, path := range []string{"/api/export/csv", "/api/export/json", "/api/export/summary"} {
		for _, test := range tests {
			response := env.do(t, http.MethodGet, path+test.query, "", cookie)
			if response.StatusCode != http.StatusBadRequest {
				t.Fatalf("%s%s: expected status 400, got %d", path, test.query, response.StatusCode)
			}
			if got := readAPIError(t, response.Body); got != test.want {
				t.Fatalf("%s%s: expected %q, got %q", path, test.query, test.want, got)
			}
		}
	}
}

func TestExportSummary(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	cookie := env.signIn(t, "summary@example.com")

	empty := env.do(t, http.MethodGet, "/api/export/summary", "", cookie)
	emptySummary := services.ExportSummary{}
	decodeJSON(t, empty.Body, &emptySummary)
	if emptySummary.HasData || emptySummary.TotalEntries != 0 {
		t.Fatalf("expected empty summary, got %+v", emptySummary)
	}

	user := env.userByEmail(t, "summary@example.com")
	env.seedEntries(t, user.ID, 2, 4, 6)

	response := env.do(t, http.MethodGet, "/api/export/summary", "", cookie)
	summary := services.ExportSummary{}
	decodeJSON(t, response.Body, &summary)
	if !summary.HasData || summary.TotalEntries != 3 {
		t.Fatalf("expected three entries, got %+v", summary)
	}
	today := time.Now().UTC()
	if summary.DateTo != today.Format(models.EntryDateLayout) || summary.DateFrom != today.AddDate(0, 0, -2).Format(models.EntryDateLayout) {
		t.Fatalf("unexpected summary range %s..%s", summary.DateFrom, summary.DateTo)
	}
}
