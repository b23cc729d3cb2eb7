package model

import "go.mongodb.org/mongo-driver/v2/bson"

// Internal vendor documents were imported from two schema generations: some
// carry vendor_id at the top level, others nested under vendor_profile. They
// are read-only in this API and served as raw documents.

// InternalVendorID extracts the vendor id from either document shape. The
// second return is false when neither location has one.
func InternalVendorID(doc bson.M) (string, bool) {
	if id, ok := doc["vendor_id"].(string); ok {
		return id, true
	}
	if profile, ok := doc["vendor_profile"].(bson.M); ok {
		if id, ok := profile["vendor_id"].(string); ok {
			return id, true
		}
	}
	if profile, ok := doc["vendor_profile"].(map[string]any); ok {
		if id, ok := profile["vendor_id"].(string); ok {
			return id, true
		}
	}
	return "", false
}

// InternalVendorPlaceholder is the sentinel payload returned when no profile
// exists for the requested vendor id. Served with a 200 so agent flows can
// render an empty profile instead of failing.
func InternalVendorPlaceholder(vendorID string) bson.M {
	return bson.M{
		"id": nil,
		"vendor_profile": bson.M{
			"vendor_id":   vendorID,
			"vendor_name": vendorID,
			"status":      "Data Not Available",
			"vendor_type": "Unknown",
		},
		"services_offered":              []any{},
		"certifications_and_compliance": bson.M{},
		"commercial_details":            bson.M{},
		"procurement_engagements":       bson.M{},
		"performance_metrics":           bson.M{},
		"risk_and_compliance_scores":    bson.M{},
		"financial_summary":             bson.M{},
	}
}
