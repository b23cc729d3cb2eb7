package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ksriramreddy/procurement-ai/config"
)

func newTestLyzrService(upstream *httptest.Server) *LyzrService {
	return &LyzrService{
		sessionURL: upstream.URL,
		apiKey:     "test-key",
		httpClient: upstream.Client(),
	}
}

func TestSessionHistory(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("Expected x-api-key header, got %q", r.Header.Get("x-api-key"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"role":"user","content":"hello"},{"role":"assistant","content":"hi"}]`))
	}))
	defer upstream.Close()

	svc := newTestLyzrService(upstream)
	history, err := svc.SessionHistory(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("SessionHistory failed: %v", err)
	}
	if len(history) != 2 {
		t.Errorf("Expected 2 messages, got %d", len(history))
	}
}

func TestSessionHistoryEmptyOn500(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "No messages found", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	svc := newTestLyzrService(upstream)
	history, err := svc.SessionHistory(context.Background(), "empty-session")
	if err != nil {
		t.Fatalf("Expected empty history, got error: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("Expected empty history, got %v", history)
	}
}

func TestSessionHistoryForwardsUpstreamStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusForbidden)
	}))
	defer upstream.Close()

	svc := newTestLyzrService(upstream)
	_, err := svc.SessionHistory(context.Background(), "session-1")
	if err == nil {
		t.Fatal("Expected error")
	}

	var ue *UpstreamStatusError
	if !errors.As(err, &ue) {
		t.Fatalf("Expected UpstreamStatusError, got %T: %v", err, err)
	}
	if ue.StatusCode != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", ue.StatusCode)
	}
}

func TestSessionHistoryNonListBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"not a list"}`))
	}))
	defer upstream.Close()

	svc := newTestLyzrService(upstream)
	history, err := svc.SessionHistory(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("Expected coercion to empty list, got error: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("Expected empty history, got %v", history)
	}
}

func TestSessionHistoryTransportError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // connection refused from here on

	svc := &LyzrService{
		sessionURL: upstream.URL,
		apiKey:     "test-key",
		httpClient: &http.Client{Timeout: time.Second},
	}
	_, err := svc.SessionHistory(context.Background(), "session-1")
	if !errors.Is(err, ErrGateway) {
		t.Errorf("Expected ErrGateway, got %v", err)
	}
}

func TestNewLyzrService(t *testing.T) {
	svc := NewLyzrService(&config.LyzrConfig{
		SessionURL: "https://agent.example.com/v1/sessions",
		APIKey:     "key",
	})
	if svc.httpClient.Timeout != 30*time.Second {
		t.Errorf("Expected 30s timeout, got %v", svc.httpClient.Timeout)
	}
}
