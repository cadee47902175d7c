// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/hungrypeople/feast/internal/model"
)

// VenueFilter defines the predicates the policy filter pushes down to the
// venue catalog. Matches are returned in random order up to Limit.
type VenueFilter struct {
	LocationContains      string
	AllowedVenueTypes     []string
	MinPartySize          int
	Limit                 int
	RequireQuietOrPrivate bool
	RequireTaxInvoice     bool
	RequireCardPayment    bool
}

// CatalogStats summarizes the venue and event catalog.
type CatalogStats struct {
	Regions      []string `json:"regions"`
	TotalVenues  int      `json:"total_venues"`
	TotalEvents  int      `json:"total_events"`
	TotalRegions int      `json:"total_regions"`
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Budget ledger operations. RecordTransaction evaluates the overspend
	// check and the spent-amount increment against the same consistent
	// snapshot of the line: both succeed or neither does.
	CreateBudget(ctx context.Context, budget *model.Budget) (*model.Budget, error)
	GetBudget(ctx context.Context, id int64) (*model.Budget, error)
	GetBudgetWithLines(ctx context.Context, id int64) (*model.BudgetWithLines, error)
	ListBudgets(ctx context.Context) ([]model.BudgetWithLines, error)
	CreateBudgetLine(ctx context.Context, line *model.BudgetLine) (*model.BudgetLine, error)
	GetBudgetLine(ctx context.Context, id int64) (*model.BudgetLine, error)
	RecordTransaction(ctx context.Context, txn *model.Transaction) (*model.Transaction, *model.BudgetLine, error)
	GetValidTransactions(ctx context.Context, lineID int64) ([]model.Transaction, error)
	InvalidateTransaction(ctx context.Context, id int64) error

	// Policy rule catalog (seeded once, read-only afterwards)
	GetPolicyRule(ctx context.Context, category string) (*model.PolicyRule, error)
	SeedPolicyRules(ctx context.Context, rules []model.PolicyRule) error

	// Venue catalog (read-only to the core)
	GetVenuesByRegion(ctx context.Context, region string, limit int) ([]model.Venue, error)
	GetVenuesByKeyword(ctx context.Context, keyword string, limit int) ([]model.Venue, error)
	GetVenuesByAddressKeyword(ctx context.Context, keyword string, limit int) ([]model.Venue, error)
	FilterVenues(ctx context.Context, filter VenueFilter) ([]model.Venue, error)
	SaveVenues(ctx context.Context, venues []model.Venue) error
	GetAllRegions(ctx context.Context) ([]string, error)

	// Event catalog
	GetEvent(ctx context.Context, id int64) (*model.Event, error)
	GetEventsByRegion(ctx context.Context, region string, limit int) ([]model.Event, error)
	GetEventsByLocation(ctx context.Context, location string, limit int) ([]model.Event, error)
	SearchEvents(ctx context.Context, query string, limit int) ([]model.Event, error)
	SaveEvents(ctx context.Context, events []model.Event) error

	Stats(ctx context.Context) (*CatalogStats, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
