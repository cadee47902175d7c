package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hungrypeople/feast/internal/common"
	"github.com/hungrypeople/feast/internal/model"
)

// CreateBudget persists a new budget and returns it with its assigned id.
func (s *SQLiteStorage) CreateBudget(ctx context.Context, budget *model.Budget) (*model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateBudget(budget); err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO budgets (project_name, fiscal_year, total_amount)
		VALUES (?, ?, ?)`,
		budget.ProjectName, budget.FiscalYear, budget.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to insert budget: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get budget id: %w", err)
	}

	created, err := s.GetBudget(ctx, id)
	if err != nil {
		return nil, err
	}

	slog.Debug("created budget", "id", id, "project", budget.ProjectName)
	return created, nil
}

// GetBudget returns a budget by id.
func (s *SQLiteStorage) GetBudget(ctx context.Context, id int64) (*model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}

	var b model.Budget
	err := s.db.QueryRowContext(ctx, `
		SELECT id, project_name, fiscal_year, total_amount, created_at
		FROM budgets WHERE id = ?`, id).
		Scan(&b.ID, &b.ProjectName, &b.FiscalYear, &b.TotalAmount, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.NewNotFoundError("budget", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query budget: %w", err)
	}

	return &b, nil
}

// GetBudgetWithLines returns a budget together with its lines and totals.
func (s *SQLiteStorage) GetBudgetWithLines(ctx context.Context, id int64) (*model.BudgetWithLines, error) {
	budget, err := s.GetBudget(ctx, id)
	if err != nil {
		return nil, err
	}

	lines, err := s.linesForBudget(ctx, id)
	if err != nil {
		return nil, err
	}

	return buildBudgetWithLines(*budget, lines), nil
}

// ListBudgets returns every budget with its lines and per-budget totals,
// ordered newest-created first.
func (s *SQLiteStorage) ListBudgets(ctx context.Context) ([]model.BudgetWithLines, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_name, fiscal_year, total_amount, created_at
		FROM budgets
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var budgets []model.Budget
	for rows.Next() {
		var b model.Budget
		if err := rows.Scan(&b.ID, &b.ProjectName, &b.FiscalYear, &b.TotalAmount, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}

	result := make([]model.BudgetWithLines, 0, len(budgets))
	for _, b := range budgets {
		lines, err := s.linesForBudget(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, *buildBudgetWithLines(b, lines))
	}

	return result, nil
}

// CreateBudgetLine persists a new line under an existing budget with zero spend.
func (s *SQLiteStorage) CreateBudgetLine(ctx context.Context, line *model.BudgetLine) (*model.BudgetLine, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateBudgetLine(line); err != nil {
		return nil, err
	}

	// The owning budget must exist; a missing parent is the caller's error,
	// not a foreign key violation.
	if _, err := s.GetBudget(ctx, line.BudgetID); err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO budget_lines (budget_id, category, allocated_amount, spent_amount, rules_tag)
		VALUES (?, ?, ?, 0, ?)`,
		line.BudgetID, line.Category, line.AllocatedAmount, nullableString(line.RulesTag))
	if err != nil {
		return nil, fmt.Errorf("failed to insert budget line: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get budget line id: %w", err)
	}

	slog.Debug("created budget line", "id", id, "budget_id", line.BudgetID, "category", line.Category)
	return s.GetBudgetLine(ctx, id)
}

// GetBudgetLine returns a budget line by id.
func (s *SQLiteStorage) GetBudgetLine(ctx context.Context, id int64) (*model.BudgetLine, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}
	return s.getBudgetLineTx(ctx, s.db, id)
}

func (s *SQLiteStorage) getBudgetLineTx(ctx context.Context, q queryable, id int64) (*model.BudgetLine, error) {
	var line model.BudgetLine
	var rulesTag sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT id, budget_id, category, allocated_amount, spent_amount, rules_tag
		FROM budget_lines WHERE id = ?`, id).
		Scan(&line.ID, &line.BudgetID, &line.Category, &line.AllocatedAmount, &line.SpentAmount, &rulesTag)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.NewNotFoundError("budget line", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query budget line: %w", err)
	}
	line.RulesTag = rulesTag.String

	return &line, nil
}

func (s *SQLiteStorage) linesForBudget(ctx context.Context, budgetID int64) ([]model.BudgetLine, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, budget_id, category, allocated_amount, spent_amount, rules_tag
		FROM budget_lines WHERE budget_id = ?
		ORDER BY id`, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget lines: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var lines []model.BudgetLine
	for rows.Next() {
		var line model.BudgetLine
		var rulesTag sql.NullString
		if err := rows.Scan(&line.ID, &line.BudgetID, &line.Category,
			&line.AllocatedAmount, &line.SpentAmount, &rulesTag); err != nil {
			return nil, fmt.Errorf("failed to scan budget line: %w", err)
		}
		line.RulesTag = rulesTag.String
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budget lines: %w", err)
	}

	return lines, nil
}

func buildBudgetWithLines(b model.Budget, lines []model.BudgetLine) *model.BudgetWithLines {
	result := model.BudgetWithLines{Budget: b, Lines: lines}
	for _, line := range lines {
		result.TotalAllocated += line.AllocatedAmount
		result.TotalSpent += line.SpentAmount
	}
	result.TotalRemaining = result.TotalAllocated - result.TotalSpent
	return &result
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
