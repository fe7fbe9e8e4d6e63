package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, r *Router, method, path string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	return rec.Code, string(body)
}

func echo(body string) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func TestExactRoute(t *testing.T) {
	r := New()
	r.GET("/api/v1/jobs", echo("list"))

	code, body := doRequest(t, r, http.MethodGet, "/api/v1/jobs")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "list", body)
}

func TestWildcardMatchesSingleSegment(t *testing.T) {
	r := New()
	r.GET("/api/v1/jobs/*/logs", echo("logs"))

	code, _ := doRequest(t, r, http.MethodGet, "/api/v1/jobs/abc-123/logs")
	assert.Equal(t, http.StatusOK, code)

	// a mid-pattern '*' covers exactly one segment
	code, _ = doRequest(t, r, http.MethodGet, "/api/v1/jobs/logs")
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = doRequest(t, r, http.MethodGet, "/api/v1/jobs/a/b/logs")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestTrailingWildcardMatchesRest(t *testing.T) {
	r := New()
	r.GET("/swagger/*", echo("docs"))

	for _, path := range []string{"/swagger/index.html", "/swagger/doc.json", "/swagger/a/b/c"} {
		code, body := doRequest(t, r, http.MethodGet, path)
		assert.Equal(t, http.StatusOK, code, path)
		assert.Equal(t, "docs", body)
	}

	code, _ := doRequest(t, r, http.MethodGet, "/swagger")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRegistrationOrderWins(t *testing.T) {
	r := New()
	r.GET("/api/v1/jobs/*/logs", echo("logs"))
	r.GET("/api/v1/jobs/*", echo("job"))

	_, body := doRequest(t, r, http.MethodGet, "/api/v1/jobs/abc/logs")
	assert.Equal(t, "logs", body)

	_, body = doRequest(t, r, http.MethodGet, "/api/v1/jobs/abc")
	assert.Equal(t, "job", body)
}

func TestMethodNotAllowedVsNotFound(t *testing.T) {
	r := New()
	r.GET("/api/v1/jobs/*", echo("job"))
	r.DELETE("/api/v1/jobs/*", echo("deleted"))

	code, _ := doRequest(t, r, http.MethodPost, "/api/v1/jobs/abc")
	assert.Equal(t, http.StatusMethodNotAllowed, code)

	code, _ = doRequest(t, r, http.MethodGet, "/api/v1/nothing/here/at/all")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = doRequest(t, r, http.MethodDelete, "/api/v1/jobs/abc")
	assert.Equal(t, http.StatusOK, code)
}
