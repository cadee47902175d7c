package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hungrypeople/feast/internal/cli"
	"github.com/hungrypeople/feast/internal/config"
	"github.com/hungrypeople/feast/internal/ledger"
	"github.com/hungrypeople/feast/internal/model"
	"github.com/hungrypeople/feast/internal/storage"
)

func budgetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "budgets",
		Short: "List budgets with their lines and spending state",
		RunE:  runBudgets,
	}
}

func runBudgets(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	ctx := cmd.Context()

	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	budgets, err := ledger.New(store).ListBudgets(ctx)
	if err != nil {
		return fmt.Errorf("failed to list budgets: %w", err)
	}

	if len(budgets) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No budgets yet."))
		return nil
	}

	fmt.Println(cli.FormatTitle("Budgets"))
	for i := range budgets {
		fmt.Println(renderBudget(&budgets[i]))
		fmt.Println()
	}
	return nil
}

func renderBudget(b *model.BudgetWithLines) string {
	title := fmt.Sprintf("#%d %s (%d)", b.Budget.ID, b.Budget.ProjectName, b.Budget.FiscalYear)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total: %s KRW  Allocated: %s  Spent: %s  Remaining: %s\n",
		formatAmount(b.Budget.TotalAmount),
		formatAmount(b.TotalAllocated),
		formatAmount(b.TotalSpent),
		formatAmount(b.TotalRemaining)))

	for i := range b.Lines {
		line := &b.Lines[i]
		rate := fmt.Sprintf("%.1f%%", line.SpendingRate())
		entry := fmt.Sprintf("%-14s %12s / %-12s %s",
			line.Category,
			formatAmount(line.SpentAmount),
			formatAmount(line.AllocatedAmount),
			rate)
		switch {
		case line.RemainingAmount() == 0:
			sb.WriteString(cli.ErrorStyle.Render(entry))
		case line.SpendingRate() >= 80:
			sb.WriteString(cli.WarningStyle.Render(entry))
		default:
			sb.WriteString(entry)
		}
		sb.WriteString("\n")
	}

	return cli.RenderBox(title, strings.TrimRight(sb.String(), "\n"))
}

// formatAmount renders an integer KRW amount with thousands separators.
func formatAmount(amount int64) string {
	s := fmt.Sprintf("%d", amount)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	result := strings.Join(parts, ",")
	if negative {
		result = "-" + result
	}
	return result
}
