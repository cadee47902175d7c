// Package storage provides the data persistence layer for the feast application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hungrypeople/feast/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrEmptySlice         = errors.New("slice cannot be empty")
	ErrInvalidID          = errors.New("id must be positive")
	ErrInvalidBudget      = errors.New("invalid budget")
	ErrInvalidBudgetLine  = errors.New("invalid budget line")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidPolicyRule  = errors.New("invalid policy rule")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateID ensures an identifier is positive.
func validateID(id int64, paramName string) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidID, paramName)
	}
	return nil
}

// validateBudget validates a budget before persistence.
func validateBudget(budget *model.Budget) error {
	if budget == nil {
		return fmt.Errorf("%w: budget", ErrNilParameter)
	}
	if strings.TrimSpace(budget.ProjectName) == "" {
		return fmt.Errorf("%w: missing project name", ErrInvalidBudget)
	}
	if budget.FiscalYear == 0 {
		return fmt.Errorf("%w: missing fiscal year", ErrInvalidBudget)
	}
	if budget.TotalAmount <= 0 {
		return fmt.Errorf("%w: total amount must be positive", ErrInvalidBudget)
	}
	return nil
}

// validateBudgetLine validates a budget line before persistence.
func validateBudgetLine(line *model.BudgetLine) error {
	if line == nil {
		return fmt.Errorf("%w: line", ErrNilParameter)
	}
	if line.BudgetID <= 0 {
		return fmt.Errorf("%w: missing budget id", ErrInvalidBudgetLine)
	}
	if strings.TrimSpace(line.Category) == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidBudgetLine)
	}
	if line.AllocatedAmount <= 0 {
		return fmt.Errorf("%w: allocated amount must be positive", ErrInvalidBudgetLine)
	}
	return nil
}

// validateTransaction validates a ledger transaction before persistence.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if txn.BudgetLineID <= 0 {
		return fmt.Errorf("%w: missing budget line id", ErrInvalidTransaction)
	}
	if strings.TrimSpace(txn.VendorName) == "" {
		return fmt.Errorf("%w: missing vendor name", ErrInvalidTransaction)
	}
	if txn.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidTransaction)
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	}
	if !txn.PaymentMethod.Valid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidTransaction, txn.PaymentMethod)
	}
	if !txn.ReceiptType.Valid() {
		return fmt.Errorf("%w: unknown receipt type %q", ErrInvalidTransaction, txn.ReceiptType)
	}
	return nil
}

// validatePolicyRules validates a seed batch of policy rules.
func validatePolicyRules(rules []model.PolicyRule) error {
	if rules == nil {
		return fmt.Errorf("%w: rules", ErrNilParameter)
	}
	if len(rules) == 0 {
		return fmt.Errorf("%w: rules", ErrEmptySlice)
	}
	seen := make(map[string]bool, len(rules))
	for i := range rules {
		if strings.TrimSpace(rules[i].Category) == "" {
			return fmt.Errorf("%w: rule at index %d missing category", ErrInvalidPolicyRule, i)
		}
		if seen[rules[i].Category] {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalidPolicyRule, rules[i].Category)
		}
		seen[rules[i].Category] = true
	}
	return nil
}
