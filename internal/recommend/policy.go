package recommend

import (
	"context"
	"log/slog"

	"github.com/hungrypeople/feast/internal/model"
	"github.com/hungrypeople/feast/internal/service"
)

// Spending categories with structural predicates or presets attached.
const (
	// CategoryMeeting requires a quiet environment or a private room.
	CategoryMeeting = "meeting"
	// CategoryRefreshments is restricted to café-style venues in presets.
	CategoryRefreshments = "refreshments"
)

// refreshmentVenueTypes is the venue-type preset applied for refreshment
// spending when no policy rule is in play (near-event recommendations).
var refreshmentVenueTypes = []string{"카페", "베이커리", "디저트"}

// costPerPersonByVenueType is the fixed estimate table in KRW. Venue types
// come from the catalog's Korean classification.
var costPerPersonByVenueType = map[string]int64{
	"카페":    5000,
	"베이커리":  3000,
	"디저트":   8000,
	"한식":    15000,
	"중식":    12000,
	"일식":    20000,
	"양식":    25000,
	"퓨전":    30000,
	"패스트푸드": 8000,
	"기타":    15000,
}

const defaultCostPerPerson = 15000

// EstimateCostPerPerson returns the per-person estimate for a venue type,
// capped at the per-head budget ceiling when one is given and positive.
func EstimateCostPerPerson(venueType string, budgetPerHead int64) int64 {
	cost, ok := costPerPersonByVenueType[venueType]
	if !ok {
		cost = defaultCostPerPerson
	}
	if budgetPerHead > 0 && cost > budgetPerHead {
		return budgetPerHead
	}
	return cost
}

// PolicyRequest is a policy-constrained recommendation query.
type PolicyRequest struct {
	Category      string
	Location      string
	People        int
	BudgetPerHead int64
	Limit         int
}

// PolicyResult pairs the resolved rule with its compliant, cost-estimated
// venue sample.
type PolicyResult struct {
	Rule   *model.PolicyRule   `json:"rule"`
	Venues []model.CostedVenue `json:"venues"`
}

// FilterByPolicy resolves the category's policy rule and samples compliant
// venues. Venue selection order is deliberately random to surface variety.
func (e *Engine) FilterByPolicy(ctx context.Context, req PolicyRequest) (*PolicyResult, error) {
	rule, err := e.store.GetPolicyRule(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	filter := service.VenueFilter{
		AllowedVenueTypes:     rule.AllowedVenueTypes,
		LocationContains:      req.Location,
		MinPartySize:          req.People,
		Limit:                 req.Limit,
		RequireQuietOrPrivate: req.Category == CategoryMeeting,
		RequireTaxInvoice:     rule.RequiresReceipt(model.ReceiptTaxInvoice),
		RequireCardPayment:    rule.RequiresReceipt(model.ReceiptCardSlip),
	}

	venues, err := e.store.FilterVenues(ctx, filter)
	if err != nil {
		return nil, err
	}

	costed := make([]model.CostedVenue, 0, len(venues))
	for _, v := range venues {
		costed = append(costed, model.CostedVenue{
			Venue:                  v,
			EstimatedCostPerPerson: EstimateCostPerPerson(v.VenueType, req.BudgetPerHead),
		})
	}

	slog.Debug("policy filter",
		"category", req.Category,
		"matches", len(costed),
		"budget_per_head", req.BudgetPerHead)
	return &PolicyResult{Rule: rule, Venues: costed}, nil
}

// LineRecommendation is a policy recommendation anchored to a budget line,
// with the per-head ceiling derived from the line's remaining budget.
type LineRecommendation struct {
	Result        *PolicyResult     `json:"result"`
	Line          *model.BudgetLine `json:"line"`
	BudgetPerHead int64             `json:"budget_per_head"`
}

// ForBudgetLine recommends venues for spending against a budget line. The
// per-head ceiling is remaining ÷ people (integer division); a non-positive
// party size means the full remaining amount.
func (e *Engine) ForBudgetLine(ctx context.Context, lineID int64, location string, people, limit int) (*LineRecommendation, error) {
	line, err := e.store.GetBudgetLine(ctx, lineID)
	if err != nil {
		return nil, err
	}

	budgetPerHead := line.RemainingAmount()
	if people > 0 {
		budgetPerHead = line.RemainingAmount() / int64(people)
	}

	result, err := e.FilterByPolicy(ctx, PolicyRequest{
		Category:      line.Category,
		Location:      location,
		People:        people,
		BudgetPerHead: budgetPerHead,
		Limit:         limit,
	})
	if err != nil {
		return nil, err
	}

	return &LineRecommendation{
		Result:        result,
		Line:          line,
		BudgetPerHead: budgetPerHead,
	}, nil
}
