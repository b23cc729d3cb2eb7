package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ksriramreddy/procurement-ai/db"
	"github.com/ksriramreddy/procurement-ai/model"
)

// SendDocumentStore is the storage surface the workflow needs. *db.Mongo
// implements it.
type SendDocumentStore interface {
	InsertThread(ctx context.Context, thread model.EmailThreadCreate) error
	AppendThreadID(ctx context.Context, vendorID, threadID string) (bool, error)
	InsertVendor(ctx context.Context, vendor model.VendorCreate) error
}

// VendorPayload is one vendor in a send-document batch. vendor_id is
// typically the vendor's website URL.
type VendorPayload struct {
	VendorID     string `json:"vendor_id"`
	VendorName   string `json:"vendor_name"`
	ContactEmail string `json:"contact_email"`
	ContactName  string `json:"contact_name"`
	VendorType   string `json:"vendor_type"`
	Headquarters string `json:"headquarters"`
	Website      string `json:"website"`
	Source       string `json:"source"`
}

// SendDocumentRequest carries a vendor batch plus the shared document
// context (RFQ or RFP).
type SendDocumentRequest struct {
	Vendors         []VendorPayload `json:"vendors" binding:"required"`
	DocumentType    string          `json:"document_type" binding:"required"`
	Subject         string          `json:"subject" binding:"required"`
	QuotedPrice     *int            `json:"quoted_price"`
	DocumentContent *string         `json:"document_content"`
	Mandatory       []string        `json:"mandatory"`
	GoodToHave      []string        `json:"good_to_have"`
	Summary         string          `json:"summary"`
}

type SendDocumentVendorResult struct {
	VendorID   string `json:"vendor_id"`
	VendorName string `json:"vendor_name"`
	ThreadID   string `json:"thread_id"`
}

type SendDocumentResponse struct {
	CreatedVendors []SendDocumentVendorResult `json:"created_vendors"`
	UpdatedVendors []SendDocumentVendorResult `json:"updated_vendors"`
}

// SendDocumentService composes thread creation and vendor upsert for each
// vendor in a batch. Vendors are processed sequentially; the batch is not
// atomic, so a failure leaves earlier iterations committed.
type SendDocumentService struct {
	store SendDocumentStore
}

func NewSendDocumentService(store SendDocumentStore) *SendDocumentService {
	return &SendDocumentService{store: store}
}

func (s *SendDocumentService) Send(ctx context.Context, req *SendDocumentRequest) (*SendDocumentResponse, error) {
	resp := &SendDocumentResponse{
		CreatedVendors: []SendDocumentVendorResult{},
		UpdatedVendors: []SendDocumentVendorResult{},
	}

	for _, v := range req.Vendors {
		vendorID := ResolveVendorID(v)
		threadID := GenerateThreadID()
		now := time.Now().UTC()

		thread := model.EmailThreadCreate{
			ThreadID:     threadID,
			VendorID:     vendorID,
			Subject:      req.Subject,
			DocumentType: req.DocumentType,
			Mandatory:    model.CertsFromNames(req.Mandatory),
			GoodToHave:   model.CertsFromNames(req.GoodToHave),
			Summary:      req.Summary,
			CreatedAt:    now,
		}
		if err := s.store.InsertThread(ctx, thread); err != nil {
			return nil, err
		}

		result := SendDocumentVendorResult{
			VendorID:   vendorID,
			VendorName: v.VendorName,
			ThreadID:   threadID,
		}

		matched, err := s.store.AppendThreadID(ctx, vendorID, threadID)
		if err != nil {
			return nil, err
		}
		if matched {
			resp.UpdatedVendors = append(resp.UpdatedVendors, result)
			continue
		}

		vendor := newVendorDoc(v, vendorID, threadID, req.QuotedPrice, now)
		if err := s.store.InsertVendor(ctx, vendor); err != nil {
			if errors.Is(err, db.ErrDuplicateVendor) {
				// Another request created the vendor between the update
				// attempt and the insert; retry as an update.
				if _, err := s.store.AppendThreadID(ctx, vendorID, threadID); err != nil {
					return nil, err
				}
				resp.UpdatedVendors = append(resp.UpdatedVendors, result)
				continue
			}
			return nil, err
		}
		resp.CreatedVendors = append(resp.CreatedVendors, result)
	}

	return resp, nil
}

// ResolveVendorID picks the vendor's natural key: the supplied ID, else its
// website, contact email, or name, else "unknown".
func ResolveVendorID(v VendorPayload) string {
	for _, candidate := range []string{v.VendorID, v.Website, v.ContactEmail, v.VendorName} {
		if candidate != "" {
			return candidate
		}
	}
	return "unknown"
}

// GenerateThreadID returns a globally-unique thread ID of the form
// THREAD-<millisecond timestamp>-<8 hex chars>.
func GenerateThreadID() string {
	ts := time.Now().UTC().UnixMilli()
	suffix := uuid.New().String()[:8]
	return fmt.Sprintf("THREAD-%d-%s", ts, suffix)
}

func newVendorDoc(v VendorPayload, vendorID, threadID string, quotedPrice *int, now time.Time) model.VendorCreate {
	source := v.Source
	if source == "" {
		source = "internal"
	}
	return model.VendorCreate{
		VendorID:                  vendorID,
		VendorName:                v.VendorName,
		ThreadIDs:                 []string{threadID},
		QuotedPrice:               quotedPrice,
		TechnicalComplianceStatus: false,
		CertificationsSubmitted:   []string{},
		ESGDeclaration:            false,
		ExceptionsNoted:           "",
		Clarifications:            []string{},
		ResponseDate:              &now,
		VendorType:                &v.VendorType,
		ContactEmail:              &v.ContactEmail,
		ContactName:               &v.ContactName,
		Headquarters:              &v.Headquarters,
		Website:                   &v.Website,
		Source:                    source,
	}
}
