package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupLoggerRouter(buf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	slog.SetDefault(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo})))

	router := gin.New()
	router.Use(RequestID())
	router.Use(RequestLogger())
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/api/vendors", func(c *gin.Context) {
		c.JSON(http.StatusOK, []gin.H{})
	})
	router.GET("/api/vendors/bad", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid ID format"})
	})
	router.GET("/api/vendors/boom", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "boom"})
	})
	return router
}

func TestRequestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	router := setupLoggerRouter(&buf)

	tests := []struct {
		name     string
		path     string
		logLevel string
	}{
		{"success", "/api/vendors", "INFO"},
		{"client error", "/api/vendors/bad", "WARN"},
		{"server error", "/api/vendors/boom", "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()

			req := httptest.NewRequest("GET", tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			logOutput := buf.String()
			if !strings.Contains(logOutput, "request completed") {
				t.Error("Expected 'request completed' in log")
			}
			if !strings.Contains(logOutput, tt.path) {
				t.Errorf("Expected path %q in log", tt.path)
			}
			if !strings.Contains(logOutput, tt.logLevel) {
				t.Errorf("Expected log level %q in log: %s", tt.logLevel, logOutput)
			}
			if !strings.Contains(logOutput, "request_id") {
				t.Error("Expected request_id in log")
			}
		})
	}
}

func TestRequestLoggerSkipsHealth(t *testing.T) {
	var buf bytes.Buffer
	router := setupLoggerRouter(&buf)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if buf.Len() != 0 {
		t.Errorf("Expected no log for health probe, got %s", buf.String())
	}
}

func TestRequestLoggerIncludesQuery(t *testing.T) {
	var buf bytes.Buffer
	router := setupLoggerRouter(&buf)

	req := httptest.NewRequest("GET", "/api/vendors?vendor_id=V-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if !strings.Contains(buf.String(), "vendor_id=V-1") {
		t.Errorf("Expected query string in log, got %s", buf.String())
	}
}
