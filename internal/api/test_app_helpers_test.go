package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/paaga/internal/db"
	"gorm.io/gorm"
)

const testSecretKey = "paaga-test-secret-key-0123456789abcdef"

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "paaga-api-test.db"), nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(database)
	})

	handler, err := NewHandler(db.NewRepositories(database), Options{
		SecretKey: []byte(testSecretKey),
		Location:  time.UTC,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	return NewApp(handler, AppOptions{}), database
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, body any, token string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return response, payload
}

func decodeJSON(t *testing.T, payload []byte, target any) {
	t.Helper()
	if err := json.Unmarshal(payload, target); err != nil {
		t.Fatalf("decode response %q: %v", string(payload), err)
	}
}

func readAPIError(t *testing.T, payload []byte) string {
	t.Helper()
	body := map[string]string{}
	decodeJSON(t, payload, &body)
	return body["error"]
}

func registerAndLogin(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	response, payload := doJSON(t, app, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    email,
		"password": "StrongPass1",
	}, "")
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d: %s", email, response.StatusCode, string(payload))
	}

	response, payload = doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": "StrongPass1",
	}, "")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d: %s", email, response.StatusCode, string(payload))
	}

	body := struct {
		Token string `json:"token"`
	}{}
	decodeJSON(t, payload, &body)
	if body.Token == "" {
		t.Fatal("expected login token")
	}
	return body.Token
}

type challengeResponse struct {
	ID        uint   `json:"id"`
	UserID    string `json:"user_id"`
	StartDate string `json:"start_date"`
}

func createChallengeForToday(t *testing.T, app *fiber.App, token string) challengeResponse {
	t.Helper()

	response, payload := doJSON(t, app, http.MethodPost, "/api/challenges", map[string]string{
		"start_date": time.Now().UTC().Format("2006-01-02"),
	}, token)
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("create challenge: expected 201, got %d: %s", response.StatusCode, string(payload))
	}

	challenge := challengeResponse{}
	decodeJSON(t, payload, &challenge)
	return challenge
}

func newCookieRequest(method string, path string, cookie *http.Cookie) *http.Request {
	request := httptest.NewRequest(method, path, nil)
	request.AddCookie(cookie)
	return request
}
