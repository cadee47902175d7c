package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBudgetLine_RemainingAmount(t *testing.T) {
	line := BudgetLine{AllocatedAmount: 200_000, SpentAmount: 150_000}
	assert.Equal(t, int64(50_000), line.RemainingAmount())
}

func TestBudgetLine_SpendingRate(t *testing.T) {
	tests := []struct {
		name      string
		allocated int64
		spent     int64
		want      float64
	}{
		{name: "three quarters", allocated: 200_000, spent: 150_000, want: 75},
		{name: "untouched", allocated: 200_000, spent: 0, want: 0},
		{name: "exhausted", allocated: 200_000, spent: 200_000, want: 100},
		{name: "zero allocation never divides", allocated: 0, spent: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := BudgetLine{AllocatedAmount: tt.allocated, SpentAmount: tt.spent}
			assert.InDelta(t, tt.want, line.SpendingRate(), 0.001)
		})
	}
}

func TestPaymentMethod_Valid(t *testing.T) {
	assert.True(t, PaymentCard.Valid())
	assert.True(t, PaymentInvoice.Valid())
	assert.True(t, PaymentCash.Valid())
	assert.False(t, PaymentMethod("bitcoin").Valid())
	assert.False(t, PaymentMethod("").Valid())
}

func TestReceiptType_Valid(t *testing.T) {
	assert.True(t, ReceiptCardSlip.Valid())
	assert.True(t, ReceiptTaxInvoice.Valid())
	assert.True(t, ReceiptNone.Valid())
	assert.False(t, ReceiptType("photo").Valid())
}

func TestPolicyRule_AllowsVenueType(t *testing.T) {
	rule := PolicyRule{AllowedVenueTypes: []string{"카페", "베이커리"}}
	assert.True(t, rule.AllowsVenueType("카페"))
	assert.False(t, rule.AllowsVenueType("한식"))

	// No declared types means no restriction.
	open := PolicyRule{}
	assert.True(t, open.AllowsVenueType("한식"))
}
