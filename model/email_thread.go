package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// EmailThreadCreate is the payload for creating or replacing an email thread.
// The certification lists accept both structured items and legacy bare
// strings; see CertItem.
type EmailThreadCreate struct {
	ThreadID     string     `json:"thread_id" bson:"thread_id"`
	VendorID     string     `json:"vendor_id" bson:"vendor_id" binding:"required"`
	Subject      string     `json:"subject" bson:"subject" binding:"required"`
	DocumentType string     `json:"document_type" bson:"document_type"`
	Mandatory    []CertItem `json:"mandatory" bson:"mandatory"`
	GoodToHave   []CertItem `json:"good_to_have" bson:"good_to_have"`
	Summary      string     `json:"summary" bson:"summary"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
}

func (e *EmailThreadCreate) ApplyDefaults() {
	if e.Mandatory == nil {
		e.Mandatory = []CertItem{}
	}
	if e.GoodToHave == nil {
		e.GoodToHave = []CertItem{}
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
}

type EmailThreadUpdate struct {
	ThreadID     *string     `json:"thread_id"`
	VendorID     *string     `json:"vendor_id"`
	Subject      *string     `json:"subject"`
	DocumentType *string     `json:"document_type"`
	Mandatory    *[]CertItem `json:"mandatory"`
	GoodToHave   *[]CertItem `json:"good_to_have"`
	Summary      *string     `json:"summary"`
	CreatedAt    *time.Time  `json:"created_at"`
}

// SetMap returns the $set document holding only the supplied fields.
func (u *EmailThreadUpdate) SetMap() bson.M {
	set := bson.M{}
	if u.ThreadID != nil {
		set["thread_id"] = *u.ThreadID
	}
	if u.VendorID != nil {
		set["vendor_id"] = *u.VendorID
	}
	if u.Subject != nil {
		set["subject"] = *u.Subject
	}
	if u.DocumentType != nil {
		set["document_type"] = *u.DocumentType
	}
	if u.Mandatory != nil {
		set["mandatory"] = *u.Mandatory
	}
	if u.GoodToHave != nil {
		set["good_to_have"] = *u.GoodToHave
	}
	if u.Summary != nil {
		set["summary"] = *u.Summary
	}
	if u.CreatedAt != nil {
		set["created_at"] = *u.CreatedAt
	}
	return set
}

// UpdateCertStatusRequest updates one certification entry inside a thread.
type UpdateCertStatusRequest struct {
	ThreadID    string `json:"thread_id" binding:"required"`
	Certificate string `json:"certificate" binding:"required"`
	Field       string `json:"field" binding:"required"` // "mandatory" or "good_to_have"
	IsSubmitted string `json:"is_submitted"`             // e.g. "VALID", "NOT_VALID", "UNABLE_TO_VERIFY"
}
