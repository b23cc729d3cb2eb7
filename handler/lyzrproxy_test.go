package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ksriramreddy/procurement-ai/config"
	"github.com/ksriramreddy/procurement-ai/service"
)

func setupLyzrRouter(sessionURL string) *gin.Engine {
	lyzr := service.NewLyzrService(&config.LyzrConfig{
		SessionURL: sessionURL,
		APIKey:     "test-key",
	})
	handler := NewLyzrProxyHandler(lyzr)
	router := gin.New()
	api := router.Group("/api")
	handler.Register(api)
	return router
}

func TestSessionHistorySuccess(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"role":"user","content":"hi"}]`))
	}))
	defer upstream.Close()

	router := setupLyzrRouter(upstream.URL)

	req := httptest.NewRequest("GET", "/api/lyzr-proxy/sessions/sess-1/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"content":"hi"`) {
		t.Errorf("Expected history payload, got %s", w.Body.String())
	}
}

func TestSessionHistoryEmptySession(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "No messages found", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	router := setupLyzrRouter(upstream.URL)

	req := httptest.NewRequest("GET", "/api/lyzr-proxy/sessions/sess-1/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("Expected empty list, got %s", w.Body.String())
	}
}

func TestSessionHistoryUpstreamStatusForwarded(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusForbidden)
	}))
	defer upstream.Close()

	router := setupLyzrRouter(upstream.URL)

	req := httptest.NewRequest("GET", "/api/lyzr-proxy/sessions/sess-1/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected status 403 forwarded, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "invalid api key") {
		t.Errorf("Expected upstream body forwarded, got %s", w.Body.String())
	}
}

func TestSessionHistoryGateway(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close()

	router := setupLyzrRouter(upstream.URL)

	req := httptest.NewRequest("GET", "/api/lyzr-proxy/sessions/sess-1/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("Expected status 502, got %d", w.Code)
	}
}
