package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/edunova/internal/config"
	"github.com/msomdec/edunova/internal/domain"
	"github.com/msomdec/edunova/internal/mockapi"
)

const testSecret = "cli-test-secret-0123456789abcdefghij"

type cli struct {
	t   *testing.T
	cfg config.AppConfig
}

func newCLI(t *testing.T, baseURL string, offline bool) *cli {
	t.Helper()
	cfg := config.AppConfig{
		Auth: config.AuthConfig{
			OfflineMode:  offline,
			TestEmail:    "test@edunova.com",
			TestPassword: "password123",
			TestToken:    "mock-jwt-token-123456789",
		},
		API:   config.APIConfig{BaseURL: baseURL, Timeout: 5 * time.Second},
		Store: config.StoreConfig{Path: filepath.Join(t.TempDir(), "cli.db")},
		Mock:  config.MockConfig{Addr: "127.0.0.1:0", JWTSecret: testSecret},
	}
	cfg.Sanitize()
	require.NoError(t, cfg.Validate())
	return &cli{t: t, cfg: cfg}
}

// run executes one command and returns its standard output.
func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	var out bytes.Buffer
	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config: c.cfg,
		Out:    &out,
	}
	err := dispatch(cmdCtx, args[0], args[1:])
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, "edunova %v", args)
	return out
}

func newBackendURL(t *testing.T) string {
	t.Helper()
	backend, err := mockapi.New(mockapi.Options{
		JWTSecret:  testSecret,
		BcryptCost: 4,
		Courses:    demoCourses(),
	})
	require.NoError(t, err)
	t.Cleanup(backend.Close)
	ts := httptest.NewServer(backend.Handler())
	t.Cleanup(ts.Close)
	return ts.URL
}

func TestDispatch_UnknownCommand(t *testing.T) {
	c := newCLI(t, "http://127.0.0.1:1/", true)
	_, err := c.run("frobnicate")
	assert.True(t, errors.Is(err, errUnknownCommand))
}

func TestDispatch_ArgumentErrors(t *testing.T) {
	c := newCLI(t, "http://127.0.0.1:1/", true)

	for _, args := range [][]string{
		{"login", "only-email"},
		{"register", "a", "b", "c"},
		{"course", "abc"},
		{"course", "-3"},
		{"create-course", "Go", "teacher"},
		{"logout", "extra"},
		{"reset-cache", "extra"},
	} {
		_, err := c.run(args...)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "args %v", args)
	}
}

func TestCLI_OfflineSessionLifecycle(t *testing.T) {
	c := newCLI(t, "http://127.0.0.1:1/", true)

	out := c.mustRun("whoami")
	assert.Contains(t, out, "not logged in")

	out = c.mustRun("register", " John ", "Doe", "john@example.com", "password123")
	assert.Contains(t, out, "Inscription hors ligne réussie")
	assert.Contains(t, out, "john@example.com")

	_, err := c.run("register", "Jane", "Smith", "john@example.com", "password456")
	require.Error(t, err)
	assert.Equal(t, "Email déjà utilisé", err.Error())

	out = c.mustRun("whoami")
	assert.Contains(t, out, "John Doe")

	out = c.mustRun("refresh")
	assert.Contains(t, out, "token renewed")

	c.mustRun("logout")
	out = c.mustRun("whoami")
	assert.Contains(t, out, "not logged in")

	out = c.mustRun("login", "john@example.com", "anything")
	assert.Contains(t, out, "Connexion hors ligne réussie")

	_, err = c.run("login", "nobody@example.com", "nope")
	require.Error(t, err)
	assert.Equal(t, "Email ou mot de passe incorrect", err.Error())

	out = c.mustRun("local-users")
	assert.Contains(t, out, "john@example.com")

	c.mustRun("reset-sessions")
	out = c.mustRun("whoami")
	assert.Contains(t, out, "not logged in")

	out = c.mustRun("verify-store")
	assert.Contains(t, out, "local store ok")

	out = c.mustRun("reset-cache")
	assert.Contains(t, out, "local caches cleared")
	out = c.mustRun("local-users")
	assert.Contains(t, out, "john@example.com")

	out = c.mustRun("reset-cache", "-users")
	assert.Contains(t, out, "local caches and accounts cleared")
	out = c.mustRun("local-users")
	assert.NotContains(t, out, "john@example.com")
}

func TestCLI_ResourceCommandsNeedSession(t *testing.T) {
	c := newCLI(t, "http://127.0.0.1:1/", true)

	for _, args := range [][]string{{"courses"}, {"profile"}, {"users"}, {"sessions"}} {
		_, err := c.run(args...)
		require.Error(t, err, "args %v", args)
	}
}

func TestCLI_AgainstMockBackend(t *testing.T) {
	c := newCLI(t, newBackendURL(t)+"/", false)

	_, err := c.run("login", "prof@edunova.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, mockapi.MsgBadCredentials, err.Error())

	out := c.mustRun("login", "prof@edunova.com", "prof1234")
	assert.Contains(t, out, mockapi.MsgLoginOK)

	out = c.mustRun("courses")
	assert.Contains(t, out, "Bases de données")

	out = c.mustRun("create-course", "Réseaux", "3", "TCP/IP")
	assert.Contains(t, out, "Cours créé avec succès")

	out = c.mustRun("courses", "-force")
	assert.Contains(t, out, "Réseaux")

	out = c.mustRun("teacher-courses", "3")
	assert.Contains(t, out, "Réseaux")

	out = c.mustRun("update-course", "3", "Réseaux avancés", "3")
	assert.Contains(t, out, "Cours mis à jour avec succès")

	out = c.mustRun("course", "3")
	assert.Contains(t, out, "Réseaux avancés")

	out = c.mustRun("delete-course", "3")
	assert.Contains(t, out, "Cours supprimé avec succès")

	out = c.mustRun("profile")
	assert.Contains(t, out, "prof@edunova.com")

	out = c.mustRun("profiles", "-force", "-role", "teacher")
	assert.Contains(t, out, "prof@edunova.com")
	assert.NotContains(t, out, "test@edunova.com")

	out = c.mustRun("sync")
	assert.Contains(t, out, "synced 2 courses and 3 profiles")

	_, err = c.run("users")
	require.Error(t, err, "teachers cannot list users")

	c.mustRun("logout")
	c.mustRun("login", "admin@edunova.com", "admin123")

	out = c.mustRun("users")
	assert.Contains(t, out, "prof@edunova.com")

	out = c.mustRun("sessions")
	assert.Contains(t, out, "EXPIRES")
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, ln, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}), slog.New(slog.NewTextHandler(io.Discard, nil)))
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
