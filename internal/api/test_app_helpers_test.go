package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/wellnest/internal/db"
	"github.com/terraincognita07/wellnest/internal/i18n"
)

const testPassword = "StrongPass1"

var testNow = time.Date(2024, time.May, 15, 10, 30, 0, 0, time.UTC)

type testEnv struct {
	app     *fiber.App
	handler *Handler
	repos   *db.Repositories
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "wellnest-api-test.db"), logger)
	require.NoError(t, err)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	i18nManager, err := i18n.NewEmbeddedManager("en")
	require.NoError(t, err)

	handler, err := NewHandler(database, "test-secret-key-0123456789abcdef0123", time.UTC, i18nManager, false)
	require.NoError(t, err)
	handler.WithLogger(logrus.NewEntry(logger))
	handler.now = func() time.Time { return testNow }

	return testEnv{app: NewApp(handler), handler: handler, repos: handler.repositories}
}

type testResponse struct {
	status  int
	body    []byte
	header  http.Header
	cookies []*http.Cookie
}

func (response testResponse) decode(t *testing.T, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(response.body, target), "body: %s", response.body)
}

func (env testEnv) request(t *testing.T, method string, path string, token string, payload any) testResponse {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(encoded)
	}
	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		request.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	response, err := env.app.Test(request, -1)
	require.NoError(t, err)
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	return testResponse{status: response.StatusCode, body: raw, header: response.Header, cookies: response.Cookies()}
}

func (env testEnv) formRequest(t *testing.T, method string, path string, token string, form string) testResponse {
	t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(form))
	request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	if token != "" {
		request.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	response, err := env.app.Test(request, -1)
	require.NoError(t, err)
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	return testResponse{status: response.StatusCode, body: raw, header: response.Header}
}

func (env testEnv) registerUser(t *testing.T, email string) string {
	t.Helper()

	response := env.request(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    email,
		"password": testPassword,
	})
	require.Equal(t, http.StatusCreated, response.status, "body: %s", response.body)

	var payload struct {
		Token string `json:"token"`
	}
	response.decode(t, &payload)
	require.NotEmpty(t, payload.Token)
	return payload.Token
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages map[int64][]string
}

func (notifier *recordingNotifier) Send(_ context.Context, chatID int64, text string) error {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if notifier.messages == nil {
		notifier.messages = map[int64][]string{}
	}
	notifier.messages[chatID] = append(notifier.messages[chatID], text)
	return nil
}
