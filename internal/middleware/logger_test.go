package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(log)
	e.GET("/forbidden", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
	})
	e.GET("/boom", func(c echo.Context) error { return errors.New("db down") })

	cases := []struct {
		path string
		code int
		msg  string
	}{
		{"/forbidden", http.StatusForbidden, "Insufficient permissions"},
		{"/boom", http.StatusInternalServerError, "Internal Server Error"},
		{"/missing", http.StatusNotFound, "Not Found"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		req.Header.Set(echo.HeaderXRequestID, "req-1")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, tc.code, rec.Code, tc.path)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, map[string]string{"error": tc.msg}, body)
	}
	require.Contains(t, buf.String(), "db down")
	require.Contains(t, buf.String(), `"request_id":"req-1"`)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	e := echo.New()
	e.Use(RequestLogger(log))
	e.GET("/api/ping", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/ping", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "GET", entry["method"])
	require.Equal(t, "/api/ping", entry["uri"])
	require.Equal(t, float64(http.StatusOK), entry["status"])
	require.Equal(t, "info", entry["level"])
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRequestID, "abc")
	c := e.NewContext(req, httptest.NewRecorder())

	require.NotNil(t, Logger(c))

	h := ContextLogger(log)(func(c echo.Context) error {
		Logger(c).Error("failed")
		return nil
	})
	require.NoError(t, h(c))
	require.Contains(t, buf.String(), `"request_id":"abc"`)
	require.Contains(t, buf.String(), `"msg":"failed"`)
}
