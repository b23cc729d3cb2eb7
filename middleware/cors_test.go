package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(CORS([]string{"http://localhost:5173", "https://app.example.com"}))
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	tests := []struct {
		name        string
		origin      string
		wantAllowed bool
	}{
		{"allowed origin", "http://localhost:5173", true},
		{"configured extra origin", "https://app.example.com", true},
		{"vercel preview", "https://procurement-git-main-team.vercel.app", true},
		{"vercel production", "https://procurement.vercel.app", true},
		{"unknown origin", "https://evil.example.com", false},
		{"vercel lookalike", "https://fake-vercel.app.evil.com", false},
		{"no origin header", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/ping", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			got := w.Header().Get("Access-Control-Allow-Origin")
			if tt.wantAllowed && got != tt.origin {
				t.Errorf("Expected Allow-Origin %q, got %q", tt.origin, got)
			}
			if !tt.wantAllowed && got != "" {
				t.Errorf("Expected no Allow-Origin header, got %q", got)
			}
		})
	}
}

func TestCORSPassesThroughOptions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(CORS([]string{"http://localhost:5173"}))
	router.OPTIONS("/resource", func(c *gin.Context) {
		c.Header("Allow", "PUT, GET")
		c.JSON(http.StatusOK, gin.H{"allowed_methods": []string{"PUT", "GET"}})
	})

	req := httptest.NewRequest("OPTIONS", "/resource", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected OPTIONS handler to answer with 200, got %d", w.Code)
	}
	if w.Header().Get("Allow") != "PUT, GET" {
		t.Errorf("Expected Allow header from handler, got %q", w.Header().Get("Allow"))
	}
}
