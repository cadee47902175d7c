package model

// Event is a scheduled event near which venues are recommended. Dates are
// kept as the source strings (YYYY-MM-DD); the core never computes on them.
type Event struct {
	Organization     string `json:"organization"`
	Name             string `json:"event_name"`
	HostOrganization string `json:"host_organization,omitempty"`
	Region           string `json:"region"`
	Location         string `json:"location"`
	TechCategory     string `json:"tech_category,omitempty"`
	Hashtags         string `json:"hashtags,omitempty"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	ID               int64  `json:"id"`
}
