package app_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/edunova/internal/app"
	"github.com/msomdec/edunova/internal/config"
	"github.com/msomdec/edunova/internal/mockapi"
	"github.com/msomdec/edunova/internal/remote/wire"
	"github.com/msomdec/edunova/internal/result"
	"github.com/msomdec/edunova/internal/service"
)

func testConfig(t *testing.T, baseURL string, offline bool) config.AppConfig {
	t.Helper()
	cfg := config.AppConfig{
		Auth: config.AuthConfig{
			OfflineMode:  offline,
			TestEmail:    service.DefaultTestEmail,
			TestPassword: service.DefaultTestPassword,
			TestToken:    service.DefaultTestToken,
		},
		API:      config.APIConfig{BaseURL: baseURL, Timeout: 5 * time.Second},
		Store:    config.StoreConfig{Path: filepath.Join(t.TempDir(), "app.db")},
		Mock:     config.MockConfig{JWTSecret: "app-test-secret-0123456789abcdefgh"},
		LogLevel: "info",
	}
	cfg.Sanitize()
	require.NoError(t, cfg.Validate())
	return cfg
}

func newBackend(t *testing.T) string {
	t.Helper()
	return newBackendServer(t).URL
}

func newBackendServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv, err := mockapi.New(mockapi.Options{
		JWTSecret:  "app-test-secret-0123456789abcdefgh",
		BcryptCost: 4,
		Courses: []wire.CourseRequest{
			{Title: "Algorithmique", TeacherID: 3},
			{Title: "Bases de données", TeacherID: 3},
		},
	})
	require.NoError(t, err)
	t.Cleanup(srv.Close)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func newApp(t *testing.T, cfg config.AppConfig) *app.App {
	t.Helper()
	a, err := app.New(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestApp_SyncAgainstMockBackend(t *testing.T) {
	a := newApp(t, testConfig(t, newBackend(t), false))
	ctx := context.Background()

	login := a.Auth.Login(ctx, "test@edunova.com", "password123")
	require.True(t, login.IsSuccess(), login.Message())
	require.True(t, login.Data().Authenticated(), login.Data().Message)

	report, err := a.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Courses)
	assert.Equal(t, 3, report.Profiles)

	cached := a.Courses.CachedCourses(ctx)
	require.True(t, cached.IsSuccess())
	assert.Len(t, cached.Data(), 2)

	profiles := a.Profiles.CachedProfiles(ctx)
	require.True(t, profiles.IsSuccess())
	assert.Len(t, profiles.Data(), 3)
}

func TestApp_SyncReportsStaleRowsWhenBackendGoesAway(t *testing.T) {
	ts := newBackendServer(t)
	a := newApp(t, testConfig(t, ts.URL, false))
	ctx := context.Background()

	login := a.Auth.Login(ctx, "test@edunova.com", "password123")
	require.True(t, login.IsSuccess(), login.Message())

	report, err := a.Sync(ctx)
	require.NoError(t, err)
	assert.True(t, report.Fresh())

	ts.Close()

	report, err = a.Sync(ctx)
	require.NoError(t, err, "a non-empty cache is served when the refresh fails")
	assert.False(t, report.Fresh())
	assert.Equal(t, 2, report.Courses)
	assert.Equal(t, 2, report.StaleCourses)
	assert.Equal(t, 3, report.Profiles)
	assert.Equal(t, 3, report.StaleProfiles)

	cached := a.Courses.CachedCourses(ctx)
	require.True(t, cached.IsSuccess())
	for _, c := range cached.Data() {
		assert.False(t, c.Synced, "course %d", c.ID)
	}
}

func TestApp_ResetCache(t *testing.T) {
	a := newApp(t, testConfig(t, newBackend(t), false))
	ctx := context.Background()

	login := a.Auth.Login(ctx, "test@edunova.com", "password123")
	require.True(t, login.IsSuccess(), login.Message())
	_, err := a.Sync(ctx)
	require.NoError(t, err)

	require.NoError(t, a.ResetCache(ctx, false))
	assert.Empty(t, a.Courses.CachedCourses(ctx).Data())
	assert.Empty(t, a.Profiles.CachedProfiles(ctx).Data())
	assert.True(t, a.Auth.IsLoggedIn(ctx), "accounts survive a cache reset")

	require.NoError(t, a.ResetCache(ctx, true))
	assert.False(t, a.Auth.IsLoggedIn(ctx))
	assert.Empty(t, a.Auth.ListLocalUsers(ctx))
}

func TestApp_SyncRequiresSession(t *testing.T) {
	a := newApp(t, testConfig(t, "http://127.0.0.1:1/", true))

	_, err := a.Sync(context.Background())
	require.Error(t, err)

	var f *result.Failure
	require.True(t, errors.As(err, &f))
	assert.Equal(t, result.KindNotFound, f.Kind)
	assert.Equal(t, service.MsgNoToken, f.Message)
}

func TestApp_SyncFailsWhenBackendUnreachable(t *testing.T) {
	a := newApp(t, testConfig(t, "http://127.0.0.1:1/", true))
	ctx := context.Background()

	// Offline mode signs in with the test credential without a backend.
	login := a.Auth.Login(ctx, service.DefaultTestEmail, service.DefaultTestPassword)
	require.True(t, login.IsSuccess())
	require.True(t, login.Data().Success)

	_, err := a.Sync(ctx)
	require.Error(t, err)

	var f *result.Failure
	require.True(t, errors.As(err, &f))
	assert.Equal(t, result.KindNetwork, f.Kind)
}

func TestApp_OfflineSessionSurvivesReopen(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1/", true)
	ctx := context.Background()

	first, err := app.New(ctx, cfg, nil)
	require.NoError(t, err)
	res := first.Auth.Register(ctx, "John", "Doe", "john@example.com", "password123")
	require.True(t, res.IsSuccess())
	require.NoError(t, first.Close())

	second := newApp(t, cfg)
	user := second.Auth.LoggedInUser(ctx)
	require.NotNil(t, user)
	assert.Equal(t, "john@example.com", user.Email)
}

func TestApp_RejectsBadBaseURL(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1/", true)
	cfg.API.BaseURL = "ftp://example.com/"

	_, err := app.New(context.Background(), cfg, nil)
	require.Error(t, err)
}
