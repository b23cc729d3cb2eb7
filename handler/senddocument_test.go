package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ksriramreddy/procurement-ai/model"
	"github.com/ksriramreddy/procurement-ai/service"
)

type stubSendStore struct {
	threads []model.EmailThreadCreate
	vendors []model.VendorCreate
	fail    bool
}

func (s *stubSendStore) InsertThread(_ context.Context, thread model.EmailThreadCreate) error {
	if s.fail {
		return errors.New("insert failed")
	}
	s.threads = append(s.threads, thread)
	return nil
}

func (s *stubSendStore) AppendThreadID(_ context.Context, vendorID, threadID string) (bool, error) {
	return false, nil
}

func (s *stubSendStore) InsertVendor(_ context.Context, vendor model.VendorCreate) error {
	s.vendors = append(s.vendors, vendor)
	return nil
}

func setupSendDocumentRouter(store service.SendDocumentStore) *gin.Engine {
	handler := NewSendDocumentHandler(service.NewSendDocumentService(store))
	router := gin.New()
	api := router.Group("/api")
	handler.Register(api)
	return router
}

func TestSendDocument(t *testing.T) {
	store := &stubSendStore{}
	router := setupSendDocumentRouter(store)

	body := `{
		"vendors": [{"vendor_name": "Acme Metals", "website": "https://acme.example"}],
		"document_type": "RFQ",
		"subject": "Q3 steel procurement",
		"mandatory": ["ISO 9001"]
	}`
	req := httptest.NewRequest("PUT", "/api/send-document", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response service.SendDocumentResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(response.CreatedVendors) != 1 {
		t.Fatalf("Expected 1 created vendor, got %d", len(response.CreatedVendors))
	}
	if response.CreatedVendors[0].VendorID != "https://acme.example" {
		t.Errorf("Expected website as vendor_id, got %q", response.CreatedVendors[0].VendorID)
	}
	if len(response.UpdatedVendors) != 0 {
		t.Errorf("Expected no updated vendors, got %d", len(response.UpdatedVendors))
	}
	if len(store.threads) != 1 || len(store.vendors) != 1 {
		t.Errorf("Expected 1 thread and 1 vendor written, got %d and %d",
			len(store.threads), len(store.vendors))
	}
}

func TestSendDocumentMissingRequired(t *testing.T) {
	router := setupSendDocumentRouter(&stubSendStore{})

	tests := []struct {
		name string
		body string
	}{
		{"no vendors", `{"document_type": "RFQ", "subject": "s"}`},
		{"no document_type", `{"vendors": [{"vendor_name": "A"}], "subject": "s"}`},
		{"no subject", `{"vendors": [{"vendor_name": "A"}], "document_type": "RFQ"}`},
		{"invalid json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("PUT", "/api/send-document", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", w.Code)
			}
		})
	}
}

func TestSendDocumentStoreFailure(t *testing.T) {
	router := setupSendDocumentRouter(&stubSendStore{fail: true})

	body := `{
		"vendors": [{"vendor_name": "Acme"}],
		"document_type": "RFP",
		"subject": "s"
	}`
	req := httptest.NewRequest("PUT", "/api/send-document", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "detail") {
		t.Errorf("Expected detail payload, got %s", w.Body.String())
	}
}
