package http_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"
	httpCtrl "github.com/secmon-lab/covidboard/pkg/controller/http"
)

func TestCORS(t *testing.T) {
	called := false
	handler := httpCtrl.CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("preflight", func(t *testing.T) {
		called = false
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/options", nil))
		gt.Equal(t, w.Code, http.StatusNoContent)
		gt.Equal(t, w.Header().Get("Access-Control-Allow-Origin"), "*")
		gt.False(t, called)
	})

	t.Run("request passes through", func(t *testing.T) {
		called = false
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/options", nil))
		gt.Equal(t, w.Code, http.StatusOK)
		gt.True(t, called)
	})
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	ctx := ctxlog.With(context.Background(), logger)

	handler := httpCtrl.LoggingMiddleware(ctx)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxlog.From(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/series/states?from=0&to=1", nil))

	gt.Equal(t, w.Code, http.StatusTeapot)
	gt.S(t, buf.String()).Contains("inside handler")
	gt.S(t, buf.String()).Contains(`"msg":"HTTP request"`)
	gt.S(t, buf.String()).Contains(`"status":418`)
	gt.S(t, buf.String()).Contains(`"path":"/api/series/states"`)
}

func TestLoggingMiddleware_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx := ctxlog.With(context.Background(), logger)

	handler := httpCtrl.LoggingMiddleware(ctx)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/charts/states.png" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	gt.Equal(t, buf.Len(), 0)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/charts/states.png", nil))
	gt.S(t, buf.String()).Contains(`"level":"WARN"`)
	gt.S(t, buf.String()).Contains(`"status":503`)
}
