package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bloom/internal/db"
	"github.com/terraincognita07/bloom/internal/i18n"
	"github.com/terraincognita07/bloom/internal/insight"
	"github.com/terraincognita07/bloom/internal/mail"
	"github.com/terraincognita07/bloom/internal/models"
	"github.com/terraincognita07/bloom/internal/services"
	"gorm.io/gorm"
)

const testSecretKey = "bloom-test-secret-key-with-32-plus-chars"

type recordingMailer struct {
	mu       sync.Mutex
	messages []mail.Message
}

func (mailer *recordingMailer) Send(_ context.Context, message mail.Message) error {
	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	mailer.messages = append(mailer.messages, message)
	return nil
}

func (mailer *recordingMailer) last(t *testing.T) mail.Message {
	t.Helper()
	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	if len(mailer.messages) == 0 {
		t.Fatal("expected at least one sent message")
	}
	return mailer.messages[len(mailer.messages)-1]
}

type testEnv struct {
	app      *fiber.App
	database *gorm.DB
	mailer   *recordingMailer
}

type testEnvOptions struct {
	cookieSecure bool
	provider     insight.Provider
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithOptions(t, testEnvOptions{})
}

func newTestEnvWithOptions(t *testing.T, options testEnvOptions) *testEnv {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "bloom-api-test.db")
	database, err := db.OpenSQLite(databasePath, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	i18nManager, err := i18n.NewManager(i18n.LangEN, i18n.Locales())
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	provider := options.provider
	if provider == nil {
		provider = insight.StaticProvider{Text: "Pain peaks after poor sleep."}
	}
	mailer := &recordingMailer{}

	handler, err := NewHandler(database, Settings{
		SecretKey:      testSecretKey,
		BaseURL:        "http://bloom.test",
		Location:       time.UTC,
		CookieSecure:   options.cookieSecure,
		RiskPolicy:     services.DefaultRiskPolicy(),
		InsightTimeout: 5 * time.Second,
	}, i18nManager, provider, mailer, nil)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)

	return &testEnv{app: app, database: database, mailer: mailer}
}

func (env *testEnv) do(t *testing.T, method string, path string, body string, cookie string) *http.Response {
	t.Helper()

	var request *http.Request
	if body == "" {
		request = httptest.NewRequest(method, path, nil)
	} else {
		request = httptest.NewRequest(method, path, strings.NewReader(body))
		request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	request.Header.Set("Accept", fiber.MIMEApplicationJSON)
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}

	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func (env *testEnv) requestSignInToken(t *testing.T, email string) string {
	t.Helper()

	response := env.do(t, http.MethodPost, "/api/auth/sign-in-link", `{"email":"`+email+`"}`, "")
	if response.StatusCode != http.StatusAccepted {
		t.Fatalf("expected sign-in link status 202, got %d", response.StatusCode)
	}
	return extractSignInToken(t, env.mailer.last(t).Body)
}

// signIn walks the emailed link flow and returns the auth cookie header.
func (env *testEnv) signIn(t *testing.T, email string) string {
	t.Helper()

	token := env.requestSignInToken(t, email)
	response := env.do(t, http.MethodGet, "/auth/verify?token="+url.QueryEscape(token), "", "")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected verify status 200, got %d", response.StatusCode)
	}

	cookie := responseCookie(response.Cookies(), authCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("auth cookie is missing in verify response")
	}
	return cookie.Name + "=" + cookie.Value
}

func (env *testEnv) userByEmail(t *testing.T, email string) models.User {
	t.Helper()
	user, err := db.NewUserRepository(env.database).FindByNormalizedEmail(email)
	if err != nil {
		t.Fatalf("load user %s: %v", email, err)
	}
	return user
}

func (env *testEnv) seedEntries(t *testing.T, userID uint, painLevels ...int) {
	t.Helper()

	repo := db.NewEntryRepository(env.database)
	today := time.Now().UTC()
	for offset, pain := range painLevels {
		_, err := repo.Upsert(models.SymptomEntry{
			UserID:        userID,
			EntryDate:     today.AddDate(0, 0, -offset).Format(models.EntryDateLayout),
			PainLevel:     pain,
			FatigueLevel:  pain,
			BloatingLevel: 1,
			MoodLevel:     5,
			NauseaLevel:   1,
			BleedingLevel: models.BleedingNone,
			Triggers:      []string{"Stress"},
		})
		if err != nil {
			t.Fatalf("seed entry %d: %v", offset, err)
		}
	}
}

func extractSignInToken(t *testing.T, body string) string {
	t.Helper()
	for _, field := range strings.Fields(body) {
		if !strings.Contains(field, "/auth/verify?") {
			continue
		}
		parsed, err := url.Parse(field)
		if err != nil {
			t.Fatalf("parse sign-in link %q: %v", field, err)
		}
		if token := parsed.Query().Get("token"); token != "" {
			return token
		}
	}
	t.Fatalf("sign-in link missing in message body %q", body)
	return ""
}
