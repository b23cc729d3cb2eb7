package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// VendorCreate is the payload for creating or fully replacing a vendor.
// vendor_id is the natural key (unique index); the store-assigned _id is
// separate.
type VendorCreate struct {
	VendorID                  string     `json:"vendor_id" bson:"vendor_id" binding:"required"`
	VendorName                string     `json:"vendor_name" bson:"vendor_name" binding:"required"`
	ThreadIDs                 []string   `json:"thread_ids" bson:"thread_ids"`
	QuotedPrice               *int       `json:"quoted_price" bson:"quoted_price"`
	TechnicalComplianceStatus bool       `json:"technical_compliance_status" bson:"technical_compliance_status"`
	CertificationsSubmitted   []string   `json:"certifications_submitted" bson:"certifications_submitted"`
	ESGDeclaration            bool       `json:"esg_declaration" bson:"esg_declaration"`
	ExceptionsNoted           string     `json:"exceptions_noted" bson:"exceptions_noted"`
	Clarifications            []string   `json:"clarifications" bson:"clarifications"`
	ResponseDate              *time.Time `json:"response_date" bson:"response_date"`
	VendorType                *string    `json:"vendor_type" bson:"vendor_type"`
	ContactEmail              *string    `json:"contact_email" bson:"contact_email"`
	ContactName               *string    `json:"contact_name" bson:"contact_name"`
	Headquarters              *string    `json:"headquarters" bson:"headquarters"`
	Website                   *string    `json:"website" bson:"website"`
	Source                    string     `json:"source" bson:"source"`
}

// ApplyDefaults fills in the fields the caller may omit.
func (v *VendorCreate) ApplyDefaults() {
	if v.ThreadIDs == nil {
		v.ThreadIDs = []string{}
	}
	if v.CertificationsSubmitted == nil {
		v.CertificationsSubmitted = []string{}
	}
	if v.Clarifications == nil {
		v.Clarifications = []string{}
	}
	if v.Source == "" {
		v.Source = "internal"
	}
}

// VendorUpdate is the partial-update payload; only non-nil fields are applied.
type VendorUpdate struct {
	VendorID                  *string    `json:"vendor_id"`
	VendorName                *string    `json:"vendor_name"`
	ThreadIDs                 *[]string  `json:"thread_ids"`
	QuotedPrice               *int       `json:"quoted_price"`
	TechnicalComplianceStatus *bool      `json:"technical_compliance_status"`
	CertificationsSubmitted   *[]string  `json:"certifications_submitted"`
	ESGDeclaration            *bool      `json:"esg_declaration"`
	ExceptionsNoted           *string    `json:"exceptions_noted"`
	Clarifications            *[]string  `json:"clarifications"`
	ResponseDate              *time.Time `json:"response_date"`
	VendorType                *string    `json:"vendor_type"`
	ContactEmail              *string    `json:"contact_email"`
	ContactName               *string    `json:"contact_name"`
	Headquarters              *string    `json:"headquarters"`
	Website                   *string    `json:"website"`
	Source                    *string    `json:"source"`
}

// SetMap returns the $set document holding only the supplied fields.
func (u *VendorUpdate) SetMap() bson.M {
	set := bson.M{}
	if u.VendorID != nil {
		set["vendor_id"] = *u.VendorID
	}
	if u.VendorName != nil {
		set["vendor_name"] = *u.VendorName
	}
	if u.ThreadIDs != nil {
		set["thread_ids"] = *u.ThreadIDs
	}
	if u.QuotedPrice != nil {
		set["quoted_price"] = *u.QuotedPrice
	}
	if u.TechnicalComplianceStatus != nil {
		set["technical_compliance_status"] = *u.TechnicalComplianceStatus
	}
	if u.CertificationsSubmitted != nil {
		set["certifications_submitted"] = *u.CertificationsSubmitted
	}
	if u.ESGDeclaration != nil {
		set["esg_declaration"] = *u.ESGDeclaration
	}
	if u.ExceptionsNoted != nil {
		set["exceptions_noted"] = *u.ExceptionsNoted
	}
	if u.Clarifications != nil {
		set["clarifications"] = *u.Clarifications
	}
	if u.ResponseDate != nil {
		set["response_date"] = *u.ResponseDate
	}
	if u.VendorType != nil {
		set["vendor_type"] = *u.VendorType
	}
	if u.ContactEmail != nil {
		set["contact_email"] = *u.ContactEmail
	}
	if u.ContactName != nil {
		set["contact_name"] = *u.ContactName
	}
	if u.Headquarters != nil {
		set["headquarters"] = *u.Headquarters
	}
	if u.Website != nil {
		set["website"] = *u.Website
	}
	if u.Source != nil {
		set["source"] = *u.Source
	}
	return set
}
