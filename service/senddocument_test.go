package service

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/ksriramreddy/procurement-ai/db"
	"github.com/ksriramreddy/procurement-ai/model"
)

// fakeStore records workflow calls and simulates vendor existence.
type fakeStore struct {
	threads        []model.EmailThreadCreate
	vendors        []model.VendorCreate
	vendorThreads  map[string][]string
	insertErr      error
	threadErr      error
	duplicateOnce  bool
	appendAttempts int
}

func newFakeStore() *fakeStore {
	return &fakeStore{vendorThreads: map[string][]string{}}
}

func (f *fakeStore) InsertThread(_ context.Context, thread model.EmailThreadCreate) error {
	if f.threadErr != nil {
		return f.threadErr
	}
	f.threads = append(f.threads, thread)
	return nil
}

func (f *fakeStore) AppendThreadID(_ context.Context, vendorID, threadID string) (bool, error) {
	f.appendAttempts++
	if _, ok := f.vendorThreads[vendorID]; !ok {
		return false, nil
	}
	f.vendorThreads[vendorID] = append(f.vendorThreads[vendorID], threadID)
	return true, nil
}

func (f *fakeStore) InsertVendor(_ context.Context, vendor model.VendorCreate) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if f.duplicateOnce {
		// Simulate a concurrent create landing between update and insert
		f.duplicateOnce = false
		f.vendorThreads[vendor.VendorID] = []string{}
		return db.ErrDuplicateVendor
	}
	f.vendors = append(f.vendors, vendor)
	f.vendorThreads[vendor.VendorID] = vendor.ThreadIDs
	return nil
}

func TestSendDocumentCreatesNewVendor(t *testing.T) {
	store := newFakeStore()
	svc := NewSendDocumentService(store)

	resp, err := svc.Send(context.Background(), &SendDocumentRequest{
		Vendors:      []VendorPayload{{VendorID: "https://acme.example.com", VendorName: "Acme"}},
		DocumentType: "RFQ",
		Subject:      "Cloud storage services",
		Mandatory:    []string{"ISO", "HIPAA"},
		GoodToHave:   []string{"SOC2"},
		Summary:      "50 TB cloud storage",
	})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if len(resp.CreatedVendors) != 1 || len(resp.UpdatedVendors) != 0 {
		t.Fatalf("Expected 1 created / 0 updated, got %d / %d",
			len(resp.CreatedVendors), len(resp.UpdatedVendors))
	}
	if resp.CreatedVendors[0].VendorID != "https://acme.example.com" {
		t.Errorf("Unexpected vendor_id: %s", resp.CreatedVendors[0].VendorID)
	}

	if len(store.threads) != 1 {
		t.Fatalf("Expected 1 thread inserted, got %d", len(store.threads))
	}
	thread := store.threads[0]
	if len(thread.Mandatory) != 2 || thread.Mandatory[0].Certificate != "ISO" || thread.Mandatory[0].IsSubmitted != "" {
		t.Errorf("Unexpected mandatory certs: %v", thread.Mandatory)
	}
	if thread.ThreadID != resp.CreatedVendors[0].ThreadID {
		t.Errorf("Result thread_id %s does not match stored %s",
			resp.CreatedVendors[0].ThreadID, thread.ThreadID)
	}

	if len(store.vendors) != 1 {
		t.Fatalf("Expected 1 vendor inserted, got %d", len(store.vendors))
	}
	vendor := store.vendors[0]
	if len(vendor.ThreadIDs) != 1 || vendor.ThreadIDs[0] != thread.ThreadID {
		t.Errorf("Expected new thread as sole entry, got %v", vendor.ThreadIDs)
	}
	if vendor.Source != "internal" {
		t.Errorf("Expected default source internal, got %s", vendor.Source)
	}
}

func TestSendDocumentUpdatesExistingVendor(t *testing.T) {
	store := newFakeStore()
	store.vendorThreads["https://acme.example.com"] = []string{"THREAD-OLD"}
	svc := NewSendDocumentService(store)

	resp, err := svc.Send(context.Background(), &SendDocumentRequest{
		Vendors:      []VendorPayload{{VendorID: "https://acme.example.com", VendorName: "Acme"}},
		DocumentType: "RFP",
		Subject:      "Project proposal",
	})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if len(resp.CreatedVendors) != 0 || len(resp.UpdatedVendors) != 1 {
		t.Fatalf("Expected 0 created / 1 updated, got %d / %d",
			len(resp.CreatedVendors), len(resp.UpdatedVendors))
	}

	threads := store.vendorThreads["https://acme.example.com"]
	if len(threads) != 2 || threads[1] != resp.UpdatedVendors[0].ThreadID {
		t.Errorf("Expected new thread appended in call order, got %v", threads)
	}
}

func TestSendDocumentSequentialCallsSameVendor(t *testing.T) {
	store := newFakeStore()
	svc := NewSendDocumentService(store)
	req := &SendDocumentRequest{
		Vendors:      []VendorPayload{{VendorID: "https://acme.example.com", VendorName: "Acme"}},
		DocumentType: "RFQ",
		Subject:      "Cloud storage",
	}

	first, err := svc.Send(context.Background(), req)
	if err != nil {
		t.Fatalf("First send failed: %v", err)
	}
	second, err := svc.Send(context.Background(), req)
	if err != nil {
		t.Fatalf("Second send failed: %v", err)
	}

	if len(first.CreatedVendors) != 1 {
		t.Errorf("Expected first call to create, got %+v", first)
	}
	if len(second.UpdatedVendors) != 1 {
		t.Errorf("Expected second call to update, got %+v", second)
	}

	threads := store.vendorThreads["https://acme.example.com"]
	if len(threads) != 2 {
		t.Fatalf("Expected 2 thread ids, got %v", threads)
	}
	if threads[0] != first.CreatedVendors[0].ThreadID || threads[1] != second.UpdatedVendors[0].ThreadID {
		t.Errorf("Expected thread ids in call order, got %v", threads)
	}
}

func TestSendDocumentDuplicateKeyRetry(t *testing.T) {
	store := newFakeStore()
	store.duplicateOnce = true
	svc := NewSendDocumentService(store)

	resp, err := svc.Send(context.Background(), &SendDocumentRequest{
		Vendors:      []VendorPayload{{VendorID: "https://acme.example.com", VendorName: "Acme"}},
		DocumentType: "RFQ",
		Subject:      "Cloud storage",
	})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if len(resp.CreatedVendors) != 0 || len(resp.UpdatedVendors) != 1 {
		t.Fatalf("Expected duplicate insert classified as updated, got %+v", resp)
	}
	if store.appendAttempts != 2 {
		t.Errorf("Expected a second append after the duplicate, got %d attempts", store.appendAttempts)
	}
}

func TestSendDocumentAbortsBatchOnError(t *testing.T) {
	store := newFakeStore()
	store.vendorThreads["existing"] = []string{}
	svc := NewSendDocumentService(store)

	// Second vendor's insert fails; the first vendor's writes stay committed.
	store.insertErr = errors.New("write concern failure")

	_, err := svc.Send(context.Background(), &SendDocumentRequest{
		Vendors: []VendorPayload{
			{VendorID: "existing", VendorName: "Existing"},
			{VendorID: "brand-new", VendorName: "New"},
		},
		DocumentType: "RFQ",
		Subject:      "Cloud storage",
	})
	if err == nil {
		t.Fatal("Expected batch error")
	}

	// Both threads were inserted before the failure; no rollback.
	if len(store.threads) != 2 {
		t.Errorf("Expected 2 committed threads, got %d", len(store.threads))
	}
	if len(store.vendorThreads["existing"]) != 1 {
		t.Errorf("Expected first vendor's thread push committed, got %v", store.vendorThreads["existing"])
	}
}

func TestResolveVendorID(t *testing.T) {
	tests := []struct {
		name    string
		payload VendorPayload
		want    string
	}{
		{"explicit id", VendorPayload{VendorID: "VEND-1", Website: "https://a.com"}, "VEND-1"},
		{"website fallback", VendorPayload{Website: "https://a.com", ContactEmail: "a@a.com"}, "https://a.com"},
		{"email fallback", VendorPayload{ContactEmail: "a@a.com", VendorName: "Acme"}, "a@a.com"},
		{"name fallback", VendorPayload{VendorName: "Acme"}, "Acme"},
		{"nothing", VendorPayload{}, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveVendorID(tt.payload); got != tt.want {
				t.Errorf("ResolveVendorID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateThreadID(t *testing.T) {
	pattern := regexp.MustCompile(`^THREAD-\d{13}-[0-9a-f]{8}$`)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := GenerateThreadID()
		if !pattern.MatchString(id) {
			t.Fatalf("Unexpected thread ID format: %s", id)
		}
		if seen[id] {
			t.Fatalf("Duplicate thread ID generated: %s", id)
		}
		seen[id] = true
	}
}
