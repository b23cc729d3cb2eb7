package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// VendorComplianceCreate is a point-in-time compliance snapshot for a vendor,
// tied to the agent session and thread that produced it.
type VendorComplianceCreate struct {
	VendorID                  string    `json:"vendor_id" bson:"vendor_id" binding:"required"`
	SessionID                 string    `json:"session_id" bson:"session_id" binding:"required"`
	ThreadID                  string    `json:"thread_id" bson:"thread_id" binding:"required"`
	QuotedPrice               int       `json:"quoted_price" bson:"quoted_price"`
	TechnicalComplianceStatus bool      `json:"technical_compliance_status" bson:"technical_compliance_status"`
	CertificationsSubmitted   []string  `json:"certifications_submitted" bson:"certifications_submitted"`
	ESGDeclaration            bool      `json:"esg_declaration" bson:"esg_declaration"`
	ExceptionsNoted           string    `json:"exceptions_noted" bson:"exceptions_noted"`
	Clarifications            []string  `json:"clarifications" bson:"clarifications"`
	ResponseDate              time.Time `json:"response_date" bson:"response_date"`
}

func (v *VendorComplianceCreate) ApplyDefaults() {
	if v.CertificationsSubmitted == nil {
		v.CertificationsSubmitted = []string{}
	}
	if v.Clarifications == nil {
		v.Clarifications = []string{}
	}
	if v.ResponseDate.IsZero() {
		v.ResponseDate = time.Now().UTC()
	}
}

type VendorComplianceUpdate struct {
	VendorID                  *string    `json:"vendor_id"`
	SessionID                 *string    `json:"session_id"`
	ThreadID                  *string    `json:"thread_id"`
	QuotedPrice               *int       `json:"quoted_price"`
	TechnicalComplianceStatus *bool      `json:"technical_compliance_status"`
	CertificationsSubmitted   *[]string  `json:"certifications_submitted"`
	ESGDeclaration            *bool      `json:"esg_declaration"`
	ExceptionsNoted           *string    `json:"exceptions_noted"`
	Clarifications            *[]string  `json:"clarifications"`
	ResponseDate              *time.Time `json:"response_date"`
}

// SetMap returns the $set document holding only the supplied fields.
func (u *VendorComplianceUpdate) SetMap() bson.M {
	set := bson.M{}
	if u.VendorID != nil {
		set["vendor_id"] = *u.VendorID
	}
	if u.SessionID != nil {
		set["session_id"] = *u.SessionID
	}
	if u.ThreadID != nil {
		set["thread_id"] = *u.ThreadID
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
	return set
}
