package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"studysync/backend/internal/calendar"
	"studysync/backend/internal/gateway"
	"studysync/backend/internal/shared"
	"studysync/backend/internal/store"
)

// Wednesday 09:00 UTC
var testNow = time.Date(2024, time.March, 13, 9, 0, 0, 0, time.UTC)

// TestEnv holds all the running components for the test
type TestEnv struct {
	Router   http.Handler
	Store    *store.Store
	Services *gateway.Services
	Token    string
}

func testConfig(authDisabled bool) *shared.ServiceConfig {
	return &shared.ServiceConfig{
		ServiceName: "studysync-test",
		Environment: "test",
		Security: shared.SecurityConfig{
			JWTSecret:          "test-secret",
			JWTIssuer:          "studysync",
			JWTExpirationHours: 1,
			AuthDisabled:       authDisabled,
		},
		CORS: shared.CORSConfig{
			AllowedOrigins: []string{"http://localhost:5173"},
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			MaxAge:         300,
		},
	}
}

// setupGatewayTestEnv builds the whole stack on a throwaway bbolt file
func setupGatewayTestEnv(t *testing.T) *TestEnv {
	return setupGatewayTestEnvWith(t, testConfig(false))
}

func setupGatewayTestEnvWith(t *testing.T, config *shared.ServiceConfig) *TestEnv {
	t.Helper()

	st, err := store.OpenBolt(filepath.Join(t.TempDir(), "gateway.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })

	svcs := gateway.NewServices(st, config, calendar.FixedClock(testNow))

	env := &TestEnv{
		Router:   gateway.SetupRoutes(svcs, config),
		Store:    st,
		Services: svcs,
	}
	if !config.Security.AuthDisabled {
		token, _, err := svcs.Auth.GenerateToken("student-1", "student")
		if err != nil {
			t.Fatalf("Failed to mint token: %v", err)
		}
		env.Token = token
	}
	return env
}

// do sends a request through the router; body is JSON encoded when non-nil
func (env *TestEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return env.doWithToken(t, method, path, body, env.Token)
}

func (env *TestEnv) doWithToken(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	env.Router.ServeHTTP(rr, req)
	return rr
}

// envelope is the {success, data, message} response wrapper
type envelope struct {
	Success bool                `json:"success"`
	Data    json.RawMessage     `json:"data"`
	Message string              `json:"message"`
	Errors  []shared.FieldError `json:"errors"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid JSON body %q: %v", rr.Body.String(), err)
	}
	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("invalid data %s: %v", env.Data, err)
		}
	}
	return env
}

func expectStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("Expected %d, got %d. Body: %s", want, rr.Code, rr.Body.String())
	}
}
