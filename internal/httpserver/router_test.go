package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func okHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	})
}

func TestRoutes(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := NewRouter(okHandler("gql"), Options{
		Playground: true,
		Health:     okHandler("OK"),
		Metrics:    okHandler("# metrics"),
		Logger:     zap.New(core),
	})

	for path, want := range map[string]string{
		"/query":   "gql",
		"/healthz": "OK",
		"/metrics": "# metrics",
	} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, want, rec.Body.String(), path)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "/query"))

	entries := logs.FilterMessage("http request").All()
	require.Len(t, entries, 4)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/query", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestOptionalRoutes(t *testing.T) {
	r := NewRouter(okHandler("gql"), Options{})

	for _, path := range []string{"/", "/healthz", "/metrics"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestRecoverer(t *testing.T) {
	r := NewRouter(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), Options{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/query", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
