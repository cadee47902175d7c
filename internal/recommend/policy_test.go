package recommend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hungrypeople/feast/internal/common"
	"github.com/hungrypeople/feast/internal/ledger"
	"github.com/hungrypeople/feast/internal/model"
)

func TestEstimateCostPerPerson(t *testing.T) {
	tests := []struct {
		name          string
		venueType     string
		budgetPerHead int64
		want          int64
	}{
		{name: "cafe", venueType: "카페", want: 5000},
		{name: "bakery", venueType: "베이커리", want: 3000},
		{name: "korean", venueType: "한식", want: 15000},
		{name: "western", venueType: "양식", want: 25000},
		{name: "fusion", venueType: "퓨전", want: 30000},
		{name: "unknown type falls back to default", venueType: "노점", want: 15000},
		{name: "capped at per-head budget", venueType: "양식", budgetPerHead: 10000, want: 10000},
		{name: "budget above estimate leaves it unchanged", venueType: "카페", budgetPerHead: 20000, want: 5000},
		{name: "zero budget means no cap", venueType: "일식", budgetPerHead: 0, want: 20000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateCostPerPerson(tt.venueType, tt.budgetPerHead))
		})
	}
}

func TestEngine_FilterByPolicy_Meeting(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	result, err := engine.FilterByPolicy(ctx, PolicyRequest{
		Category: CategoryMeeting,
		Limit:    50,
	})
	require.NoError(t, err)
	assert.Equal(t, CategoryMeeting, result.Rule.Category)
	require.NotEmpty(t, result.Venues)

	// Every venue satisfies the rule's venue types and the structural
	// meeting predicate: quiet or with a private room.
	for _, cv := range result.Venues {
		v := cv.Venue
		assert.True(t, result.Rule.AllowsVenueType(v.VenueType), "venue type %s not allowed", v.VenueType)
		assert.True(t, v.NoiseLevel == model.NoiseLow || v.HasPrivateRoom,
			"venue %s is neither quiet nor has a private room", v.Name)
		assert.True(t, v.TaxInvoiceSupported)
		assert.True(t, v.CardPaymentSupported)
		assert.Positive(t, cv.EstimatedCostPerPerson)
	}
}

func TestEngine_FilterByPolicy_Refreshments(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	result, err := engine.FilterByPolicy(ctx, PolicyRequest{
		Category:      CategoryRefreshments,
		BudgetPerHead: 4000,
		Limit:         50,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Venues)

	for _, cv := range result.Venues {
		assert.True(t, result.Rule.AllowsVenueType(cv.Venue.VenueType))
		// Estimates are capped at the per-head ceiling.
		assert.LessOrEqual(t, cv.EstimatedCostPerPerson, int64(4000))
	}
}

func TestEngine_FilterByPolicy_UnknownCategory(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.FilterByPolicy(context.Background(), PolicyRequest{Category: "entertainment", Limit: 10})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestEngine_FilterByPolicy_PartySize(t *testing.T) {
	engine, _ := newTestEngine(t)

	result, err := engine.FilterByPolicy(context.Background(), PolicyRequest{
		Category: CategoryMeeting,
		People:   15,
		Limit:    50,
	})
	require.NoError(t, err)
	for _, cv := range result.Venues {
		assert.GreaterOrEqual(t, cv.Venue.MaxPartySize, 15)
	}
}

func TestEngine_ForBudgetLine(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()

	svc := ledger.New(store)
	budget, err := svc.CreateBudget(ctx, ledger.CreateBudgetRequest{
		ProjectName: "연구과제 A",
		FiscalYear:  2023,
		TotalAmount: 1_000_000,
	})
	require.NoError(t, err)
	line, err := svc.CreateBudgetLine(ctx, ledger.CreateBudgetLineRequest{
		BudgetID:        budget.ID,
		Category:        CategoryMeeting,
		AllocatedAmount: 200_000,
	})
	require.NoError(t, err)

	rec, err := engine.ForBudgetLine(ctx, line.ID, "", 4, 50)
	require.NoError(t, err)
	// 200,000 remaining over 4 people.
	assert.Equal(t, int64(50_000), rec.BudgetPerHead)
	assert.Equal(t, line.ID, rec.Line.ID)
	assert.NotEmpty(t, rec.Result.Venues)
}

func TestEngine_ForBudgetLine_NoPartySize(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()

	svc := ledger.New(store)
	budget, err := svc.CreateBudget(ctx, ledger.CreateBudgetRequest{
		ProjectName: "연구과제 B",
		FiscalYear:  2023,
		TotalAmount: 500_000,
	})
	require.NoError(t, err)
	line, err := svc.CreateBudgetLine(ctx, ledger.CreateBudgetLineRequest{
		BudgetID:        budget.ID,
		Category:        CategoryRefreshments,
		AllocatedAmount: 100_000,
	})
	require.NoError(t, err)

	rec, err := engine.ForBudgetLine(ctx, line.ID, "", 0, 50)
	require.NoError(t, err)
	// No party size: the whole remaining amount is the ceiling.
	assert.Equal(t, int64(100_000), rec.BudgetPerHead)
}

func TestEngine_ForBudgetLine_MissingLine(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.ForBudgetLine(context.Background(), 9999, "", 4, 10)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
