package model

// NoiseLevel is a coarse measure of how loud a venue is.
type NoiseLevel string

const (
	// NoiseLow marks a quiet venue suitable for meetings.
	NoiseLow NoiseLevel = "low"
	// NoiseMid is the default noise level.
	NoiseMid NoiseLevel = "mid"
	// NoiseHigh marks a loud venue.
	NoiseHigh NoiseLevel = "high"
)

// Venue is a catalog entry for a certified long-standing establishment.
// The catalog is populated by ingestion and read-only to the core.
type Venue struct {
	Name                 string     `json:"name"`
	Address              string     `json:"address"`
	Phone                string     `json:"phone,omitempty"`
	Region               string     `json:"region"`
	VenueType            string     `json:"venue_type"`
	NoiseLevel           NoiseLevel `json:"noise_level"`
	ID                   int64      `json:"id"`
	MaxPartySize         int        `json:"max_party_size"`
	HasPrivateRoom       bool       `json:"has_private_room"`
	TaxInvoiceSupported  bool       `json:"tax_invoice_supported"`
	CardPaymentSupported bool       `json:"card_payment_supported"`
}

// RankedVenue is a venue scored by the location ranker.
type RankedVenue struct {
	Venue  Venue `json:"venue"`
	Weight int   `json:"weight"`
}

// CostedVenue is a policy-filtered venue with an estimated per-person cost.
type CostedVenue struct {
	Venue                  Venue `json:"venue"`
	EstimatedCostPerPerson int64 `json:"estimated_cost_per_person"`
}
