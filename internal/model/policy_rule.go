package model

// PolicyRule is the compliance rule for one spending category. Seeded once
// as reference data; at most one active rule per category.
type PolicyRule struct {
	Category             string        `json:"category"`
	RuleText             string        `json:"rule_text"`
	Notes                string        `json:"notes,omitempty"`
	RequiredReceiptTypes []ReceiptType `json:"required_receipt_types"`
	AllowedVenueTypes    []string      `json:"allowed_venue_types"`
	ID                   int64         `json:"id"`
}

// RequiresReceipt reports whether the rule demands the given receipt type.
func (r *PolicyRule) RequiresReceipt(t ReceiptType) bool {
	for _, rt := range r.RequiredReceiptTypes {
		if rt == t {
			return true
		}
	}
	return false
}

// AllowsVenueType reports whether a venue category is permitted. A rule with
// no declared venue types places no restriction.
func (r *PolicyRule) AllowsVenueType(venueType string) bool {
	if len(r.AllowedVenueTypes) == 0 {
		return true
	}
	for _, t := range r.AllowedVenueTypes {
		if t == venueType {
			return true
		}
	}
	return false
}
