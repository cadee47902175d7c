// Package ledger implements the budget ledger: budgets, per-category budget
// lines and the transactions recorded against them. Its one hard guarantee
// is that recorded spend never exceeds a line's allocation.
package ledger

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/hungrypeople/feast/internal/common"
	"github.com/hungrypeople/feast/internal/model"
	"github.com/hungrypeople/feast/internal/service"
)

const dateLayout = "2006-01-02"

// Service exposes the ledger operations over an injected store. All
// atomicity requirements are enforced by the store; the service owns input
// validation and the error taxonomy.
type Service struct {
	store service.Storage
}

// New creates a ledger service.
func New(store service.Storage) *Service {
	return &Service{store: store}
}

// CreateBudgetRequest carries the fields for a new budget.
type CreateBudgetRequest struct {
	ProjectName string
	FiscalYear  int
	TotalAmount int64
}

// CreateBudget validates and persists a new budget envelope.
func (s *Service) CreateBudget(ctx context.Context, req CreateBudgetRequest) (*model.Budget, error) {
	if strings.TrimSpace(req.ProjectName) == "" {
		return nil, common.NewValidationError("project_name", "is required")
	}
	if req.FiscalYear == 0 {
		return nil, common.NewValidationError("fiscal_year", "is required")
	}
	if req.TotalAmount <= 0 {
		return nil, common.NewValidationError("total_amount", "must be positive")
	}

	budget, err := s.store.CreateBudget(ctx, &model.Budget{
		ProjectName: req.ProjectName,
		FiscalYear:  req.FiscalYear,
		TotalAmount: req.TotalAmount,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("budget created", "id", budget.ID, "project", budget.ProjectName, "fiscal_year", budget.FiscalYear)
	return budget, nil
}

// CreateBudgetLineRequest carries the fields for a new budget line.
type CreateBudgetLineRequest struct {
	BudgetID        int64
	Category        string
	AllocatedAmount int64
	RulesTag        string
}

// CreateBudgetLine validates and persists a new line with zero spend.
func (s *Service) CreateBudgetLine(ctx context.Context, req CreateBudgetLineRequest) (*model.BudgetLine, error) {
	if strings.TrimSpace(req.Category) == "" {
		return nil, common.NewValidationError("category", "is required")
	}
	if req.AllocatedAmount <= 0 {
		return nil, common.NewValidationError("allocated_amount", "must be positive")
	}

	line, err := s.store.CreateBudgetLine(ctx, &model.BudgetLine{
		BudgetID:        req.BudgetID,
		Category:        req.Category,
		AllocatedAmount: req.AllocatedAmount,
		RulesTag:        req.RulesTag,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("budget line created", "id", line.ID, "budget_id", line.BudgetID, "category", line.Category)
	return line, nil
}

// RecordTransactionRequest carries the fields for a new transaction. Date is
// YYYY-MM-DD and defaults to the current date when empty.
type RecordTransactionRequest struct {
	LineID        int64
	VendorName    string
	Amount        int64
	PaymentMethod model.PaymentMethod
	ReceiptType   model.ReceiptType
	Date          string
	Memo          string
}

// TransactionResult is a recorded transaction plus the line's updated state.
type TransactionResult struct {
	Transaction     *model.Transaction `json:"transaction"`
	Line            *model.BudgetLine  `json:"line"`
	RemainingAmount int64              `json:"remaining_amount"`
}

// RecordTransaction validates and records a spend against a budget line.
// The store performs the overspend check and the spent increment as one
// atomic unit; an overspend is rejected with BudgetExceededError carrying
// the line's remaining amount, leaving the line unchanged.
func (s *Service) RecordTransaction(ctx context.Context, req RecordTransactionRequest) (*TransactionResult, error) {
	if strings.TrimSpace(req.VendorName) == "" {
		return nil, common.NewValidationError("vendor_name", "is required")
	}
	if req.Amount <= 0 {
		return nil, common.NewValidationError("amount", "must be positive")
	}
	if !req.PaymentMethod.Valid() {
		return nil, common.NewValidationError("payment_method", "must be one of card, invoice, cash")
	}
	if !req.ReceiptType.Valid() {
		return nil, common.NewValidationError("receipt_type", "must be one of card_slip, tax_invoice, none")
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			return nil, common.NewValidationError("date", "must be a valid date in YYYY-MM-DD format")
		}
		date = parsed
	}

	// The line must exist before the guarded update so a missing line is
	// reported as not-found rather than as an overspend.
	if _, err := s.store.GetBudgetLine(ctx, req.LineID); err != nil {
		return nil, err
	}

	txn, line, err := s.store.RecordTransaction(ctx, &model.Transaction{
		BudgetLineID:  req.LineID,
		Date:          date,
		VendorName:    req.VendorName,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		ReceiptType:   req.ReceiptType,
		Memo:          req.Memo,
		IsValid:       true,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("transaction recorded",
		"id", txn.ID,
		"line_id", line.ID,
		"amount", txn.Amount,
		"remaining", line.RemainingAmount())
	return &TransactionResult{
		Transaction:     txn,
		Line:            line,
		RemainingAmount: line.RemainingAmount(),
	}, nil
}

// LineSummary aggregates the valid transactions for a budget line.
func (s *Service) LineSummary(ctx context.Context, lineID int64) (*model.LineSummary, error) {
	line, err := s.store.GetBudgetLine(ctx, lineID)
	if err != nil {
		return nil, err
	}

	txns, err := s.store.GetValidTransactions(ctx, lineID)
	if err != nil {
		return nil, err
	}

	return &model.LineSummary{
		Line:             *line,
		Transactions:     txns,
		TransactionCount: len(txns),
		TotalSpent:       line.SpentAmount,
		RemainingAmount:  line.RemainingAmount(),
		SpendingRate:     math.Round(line.SpendingRate()*100) / 100,
	}, nil
}

// GetBudget returns a budget with its lines and totals.
func (s *Service) GetBudget(ctx context.Context, id int64) (*model.BudgetWithLines, error) {
	return s.store.GetBudgetWithLines(ctx, id)
}

// ListBudgets returns all budgets with lines and totals, newest first.
func (s *Service) ListBudgets(ctx context.Context) ([]model.BudgetWithLines, error) {
	return s.store.ListBudgets(ctx)
}

// InvalidateTransaction soft-invalidates a transaction, releasing its
// amount back to the line.
func (s *Service) InvalidateTransaction(ctx context.Context, id int64) error {
	return s.store.InvalidateTransaction(ctx, id)
}
