package model

import "time"

// Budget is a fixed spending envelope for a project in a fiscal year.
// Amounts are integer KRW (smallest currency unit).
type Budget struct {
	CreatedAt   time.Time `json:"created_at"`
	ProjectName string    `json:"project_name"`
	ID          int64     `json:"id"`
	FiscalYear  int       `json:"fiscal_year"`
	TotalAmount int64     `json:"total_amount"`
}

// BudgetLine is a per-category allocation within a budget. SpentAmount is a
// denormalized running total maintained by the storage layer; it must never
// exceed AllocatedAmount.
type BudgetLine struct {
	Category        string `json:"category"`
	RulesTag        string `json:"rules_tag,omitempty"`
	ID              int64  `json:"id"`
	BudgetID        int64  `json:"budget_id"`
	AllocatedAmount int64  `json:"allocated_amount"`
	SpentAmount     int64  `json:"spent_amount"`
}

// RemainingAmount returns the budget still available on this line.
func (l *BudgetLine) RemainingAmount() int64 {
	return l.AllocatedAmount - l.SpentAmount
}

// SpendingRate returns spent/allocated as a percentage. Zero when nothing
// is allocated, to avoid division by zero.
func (l *BudgetLine) SpendingRate() float64 {
	if l.AllocatedAmount == 0 {
		return 0
	}
	return float64(l.SpentAmount) / float64(l.AllocatedAmount) * 100
}

// BudgetWithLines pairs a budget with its lines and cross-line totals.
type BudgetWithLines struct {
	Budget         Budget       `json:"budget"`
	Lines          []BudgetLine `json:"lines"`
	TotalAllocated int64        `json:"total_allocated"`
	TotalSpent     int64        `json:"total_spent"`
	TotalRemaining int64        `json:"total_remaining"`
}

// LineSummary aggregates the valid transactions recorded against a line.
type LineSummary struct {
	Line             BudgetLine    `json:"line"`
	Transactions     []Transaction `json:"transactions"`
	TransactionCount int           `json:"transaction_count"`
	TotalSpent       int64         `json:"total_spent"`
	RemainingAmount  int64         `json:"remaining_amount"`
	SpendingRate     float64       `json:"spending_rate"`
}
