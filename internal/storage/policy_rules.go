package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hungrypeople/feast/internal/common"
	"github.com/hungrypeople/feast/internal/model"
)

// GetPolicyRule returns the compliance rule for a spending category.
// A missing rule is a reportable error, not an empty-result success.
func (s *SQLiteStorage) GetPolicyRule(ctx context.Context, category string) (*model.PolicyRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(category, "category"); err != nil {
		return nil, err
	}

	var rule model.PolicyRule
	var receiptTypes, venueTypes, notes sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, category, rule_text, required_receipt_types, allowed_venue_types, notes
		FROM policy_rules WHERE category = ?`, category).
		Scan(&rule.ID, &rule.Category, &rule.RuleText, &receiptTypes, &venueTypes, &notes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.NewNotFoundError("policy rule", category)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query policy rule: %w", err)
	}

	rule.Notes = notes.String
	if receiptTypes.Valid && receiptTypes.String != "" {
		if err := json.Unmarshal([]byte(receiptTypes.String), &rule.RequiredReceiptTypes); err != nil {
			return nil, fmt.Errorf("failed to decode receipt types for %s: %w", category, err)
		}
	}
	if venueTypes.Valid && venueTypes.String != "" {
		if err := json.Unmarshal([]byte(venueTypes.String), &rule.AllowedVenueTypes); err != nil {
			return nil, fmt.Errorf("failed to decode venue types for %s: %w", category, err)
		}
	}

	return &rule, nil
}

// SeedPolicyRules replaces the policy rule catalog with the given set.
// Rules are reference data seeded once, never written through the API.
func (s *SQLiteStorage) SeedPolicyRules(ctx context.Context, rules []model.PolicyRule) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validatePolicyRules(rules); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM policy_rules`); err != nil {
		return fmt.Errorf("failed to clear policy rules: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO policy_rules (category, rule_text, required_receipt_types, allowed_venue_types, notes)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range rules {
		rule := &rules[i]
		receiptTypes, err := json.Marshal(rule.RequiredReceiptTypes)
		if err != nil {
			return fmt.Errorf("failed to encode receipt types for %s: %w", rule.Category, err)
		}
		venueTypes, err := json.Marshal(rule.AllowedVenueTypes)
		if err != nil {
			return fmt.Errorf("failed to encode venue types for %s: %w", rule.Category, err)
		}
		if _, err := stmt.ExecContext(ctx,
			rule.Category, rule.RuleText, string(receiptTypes), string(venueTypes),
			nullableString(rule.Notes)); err != nil {
			return fmt.Errorf("failed to insert policy rule %s: %w", rule.Category, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit policy rules: %w", err)
	}

	slog.Info("seeded policy rules", "count", len(rules))
	return nil
}
