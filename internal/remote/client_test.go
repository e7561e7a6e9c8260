package remote_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/edunova/internal/domain"
	"github.com/msomdec/edunova/internal/remote"
	"github.com/msomdec/edunova/internal/result"
)

func newClient(t *testing.T, h http.HandlerFunc) *remote.Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	c, err := remote.New(ts.URL, 5*time.Second)
	require.NoError(t, err)
	return c
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	_, err := remote.New("ftp://example.com", time.Second)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = remote.New("://", time.Second)
	assert.Error(t, err)
}

func TestClient_Normalization(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		kind    result.Kind
		message string
	}{
		{"non-2xx", respond(http.StatusInternalServerError, `{"success":false}`), result.KindServer, "error 500: Internal Server Error"},
		{"not found", respond(http.StatusNotFound, ``), result.KindServer, "error 404: Not Found"},
		{"empty body", respond(http.StatusOK, ``), result.KindServer, "empty server response"},
		{"whitespace body", respond(http.StatusOK, "  \n"), result.KindServer, "empty server response"},
		{"envelope failure", respond(http.StatusOK, `{"success":false,"message":"quota exceeded"}`), result.KindServer, "quota exceeded"},
		{"envelope error field", respond(http.StatusOK, `{"success":false,"error":"bad token"}`), result.KindServer, "bad token"},
		{"envelope bare failure", respond(http.StatusOK, `{"success":false}`), result.KindServer, "unknown error"},
		{"success without data", respond(http.StatusOK, `{"success":true,"data":null}`), result.KindServer, "unknown error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, tt.handler)
			res := c.ListCourses(context.Background(), "tok")
			require.True(t, res.IsError())
			assert.Equal(t, tt.kind, res.Kind())
			assert.Equal(t, tt.message, res.Message())
		})
	}
}

func TestClient_MalformedBody(t *testing.T) {
	c := newClient(t, respond(http.StatusOK, `{"success":true,"data":[{"id":"x"}]}`))

	res := c.ListCourses(context.Background(), "tok")
	require.True(t, res.IsError())
	assert.Equal(t, result.KindServer, res.Kind())
	assert.Contains(t, res.Message(), "malformed server response")
}

func TestClient_TransportFailure(t *testing.T) {
	ts := httptest.NewServer(respond(http.StatusOK, `{}`))
	url := ts.URL
	ts.Close()

	c, err := remote.New(url, time.Second)
	require.NoError(t, err)

	res := c.Login(context.Background(), "a@example.com", "pw")
	require.True(t, res.IsError())
	assert.Equal(t, result.KindNetwork, res.Kind())
	assert.Contains(t, res.Message(), "network connection error")
}

func TestClient_Timeout(t *testing.T) {
	block := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() { close(block); ts.Close() })

	c, err := remote.New(ts.URL, 50*time.Millisecond)
	require.NoError(t, err)

	res := c.GetProfile(context.Background(), "tok")
	require.True(t, res.IsError())
	assert.Equal(t, result.KindNetwork, res.Kind())
}

func TestClient_InjectedHTTPClientKeepsItsTimeout(t *testing.T) {
	block := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() { close(block); ts.Close() })

	c, err := remote.New(ts.URL, time.Minute, remote.WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}))
	require.NoError(t, err)

	start := time.Now()
	res := c.ListCourses(context.Background(), "tok")
	require.True(t, res.IsError())
	assert.Equal(t, result.KindNetwork, res.Kind())
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestClient_RequestShape(t *testing.T) {
	var gotMethod, gotPath, gotAuth, gotBody string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath, gotAuth = r.Method, r.URL.Path, r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		respond(http.StatusOK, `{"success":true,"data":{"id":3,"title":"Go","description":null,"teacher_id":7,"created_at":"c","updated_at":"u"}}`)(w, r)
	})

	res := c.UpdateCourse(context.Background(), 3, domain.CourseInput{Title: "Go", TeacherID: 7}, "tok")
	require.True(t, res.IsSuccess(), res.Message())

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/courses/3", gotPath)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.JSONEq(t, `{"title":"Go","description":null,"teacher_id":7}`, gotBody)

	course := res.Data()
	assert.Equal(t, domain.Course{ID: 3, Title: "Go", TeacherID: 7, CreatedAt: "c", UpdatedAt: "u", Synced: true}, course)
}

func TestClient_AuthBodyIsNotEnveloped(t *testing.T) {
	var gotAuth string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		respond(http.StatusOK, `{"success":true,"message":"ok","token":"jwt","user":{"id":9,"first_name":"Ana","last_name":"Lima","email":"ana@example.com","role":"enseignant","is_active":true,"is_verified":true,"created_at":"c","updated_at":"u"}}`)(w, r)
	})

	res := c.Register(context.Background(), "Ana", "Lima", "ana@example.com", "pw")
	require.True(t, res.IsSuccess(), res.Message())
	assert.Empty(t, gotAuth)

	payload := res.Data()
	assert.True(t, payload.Authenticated())
	assert.Equal(t, "jwt", payload.Token)
	assert.Equal(t, "Ana", payload.User.FirstName)
	assert.Equal(t, domain.RoleTeacher, payload.User.Role)
	assert.Empty(t, payload.User.AuthToken)
}

func TestClient_DeleteAcceptsMissingData(t *testing.T) {
	c := newClient(t, respond(http.StatusOK, `{"success":true,"message":"course deleted"}`))

	res := c.DeleteCourse(context.Background(), 1, "tok")
	require.True(t, res.IsSuccess())
	assert.True(t, res.Data())
}
