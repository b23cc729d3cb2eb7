package model

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// CertItem is one certification entry in an email thread. is_submitted holds
// the validation status filled in later (e.g. "VALID", "NOT_VALID"); empty
// means not yet submitted.
type CertItem struct {
	Certificate string `json:"certificate" bson:"certificate"`
	IsSubmitted string `json:"is_submitted" bson:"is_submitted"`
}

// UnmarshalJSON accepts both the structured form and the legacy bare-string
// form ("ISO" -> {certificate: "ISO", is_submitted: ""}).
func (ci *CertItem) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		ci.Certificate = s
		ci.IsSubmitted = ""
		return nil
	}

	type alias CertItem
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*ci = CertItem(a)
	return nil
}

// NormalizeCerts converts a certification list of any stored shape into
// structured items. Legacy documents hold bare strings; newer ones hold
// {certificate, is_submitted} entries. Normalizing an already-structured
// list returns it unchanged.
func NormalizeCerts(v any) []CertItem {
	if v == nil {
		return []CertItem{}
	}

	var items []any
	switch list := v.(type) {
	case []CertItem:
		return list
	case []string:
		items = make([]any, len(list))
		for i, s := range list {
			items[i] = s
		}
	case []any:
		items = list
	case bson.A:
		items = list
	default:
		return []CertItem{}
	}

	result := make([]CertItem, 0, len(items))
	for _, item := range items {
		switch it := item.(type) {
		case string:
			result = append(result, CertItem{Certificate: it})
		case CertItem:
			result = append(result, it)
		case map[string]any:
			result = append(result, certFromMap(it))
		case bson.M:
			result = append(result, certFromMap(it))
		case bson.D:
			m := make(map[string]any, len(it))
			for _, e := range it {
				m[e.Key] = e.Value
			}
			result = append(result, certFromMap(m))
		}
	}
	return result
}

// NormalizeThreadDoc rewrites the certification lists of a raw email-thread
// document into structured form. Applied on every thread read path.
func NormalizeThreadDoc(doc bson.M) bson.M {
	if doc == nil {
		return doc
	}
	doc["mandatory"] = NormalizeCerts(doc["mandatory"])
	doc["good_to_have"] = NormalizeCerts(doc["good_to_have"])
	return doc
}

// CertsFromNames builds fresh certification items from a list of names.
func CertsFromNames(names []string) []CertItem {
	items := make([]CertItem, 0, len(names))
	for _, n := range names {
		items = append(items, CertItem{Certificate: n})
	}
	return items
}

func certFromMap(m map[string]any) CertItem {
	item := CertItem{}
	if c, ok := m["certificate"].(string); ok {
		item.Certificate = c
	}
	if s, ok := m["is_submitted"].(string); ok {
		item.IsSubmitted = s
	}
	return item
}
