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

// RecordTransaction persists a transaction and increments its line's spent
// amount as a single atomic unit. The overspend check and the increment run
// against the same snapshot of the line: a guarded UPDATE either applies the
// increment or affects no rows, and the transaction row is only inserted
// after the increment succeeded. A rejected transaction leaves the line
// unchanged.
func (s *SQLiteStorage) RecordTransaction(ctx context.Context, txn *model.Transaction) (*model.Transaction, *model.BudgetLine, error) {
	if err := validateContext(ctx); err != nil {
		return nil, nil, err
	}
	if err := validateTransaction(txn); err != nil {
		return nil, nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
		UPDATE budget_lines
		SET spent_amount = spent_amount + ?
		WHERE id = ? AND spent_amount + ? <= allocated_amount`,
		txn.Amount, txn.BudgetLineID, txn.Amount)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to update spent amount: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		// Either the line does not exist or the spend would overrun it.
		line, lookupErr := s.getBudgetLineTx(ctx, tx, txn.BudgetLineID)
		if lookupErr != nil {
			return nil, nil, lookupErr
		}
		return nil, nil, &common.BudgetExceededError{
			LineID:    line.ID,
			Remaining: line.RemainingAmount(),
		}
	}

	insert, err := tx.ExecContext(ctx, `
		INSERT INTO transactions (budget_line_id, date, vendor_name, amount,
			payment_method, receipt_type, memo, is_valid)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1)`,
		txn.BudgetLineID,
		txn.Date.Format("2006-01-02"),
		txn.VendorName,
		txn.Amount,
		string(txn.PaymentMethod),
		string(txn.ReceiptType),
		nullableString(txn.Memo))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	id, err := insert.LastInsertId()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get transaction id: %w", err)
	}

	saved, err := s.getTransactionTx(ctx, tx, id)
	if err != nil {
		return nil, nil, err
	}
	line, err := s.getBudgetLineTx(ctx, tx, txn.BudgetLineID)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Debug("recorded transaction",
		"id", saved.ID,
		"line_id", line.ID,
		"amount", saved.Amount,
		"remaining", line.RemainingAmount())
	return saved, line, nil
}

// GetValidTransactions returns the non-invalidated transactions for a line,
// oldest first.
func (s *SQLiteStorage) GetValidTransactions(ctx context.Context, lineID int64) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(lineID, "lineID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, budget_line_id, date, vendor_name, amount, payment_method,
		       receipt_type, memo, is_valid, created_at
		FROM transactions
		WHERE budget_line_id = ? AND is_valid = 1
		ORDER BY date, id`, lineID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var txns []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return txns, nil
}

// InvalidateTransaction soft-invalidates a transaction without deleting it.
// The line's spent amount is reduced by the transaction amount in the same
// atomic unit, mirroring how recording increased it.
func (s *SQLiteStorage) InvalidateTransaction(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	txn, err := s.getTransactionTx(ctx, tx, id)
	if err != nil {
		return err
	}
	if !txn.IsValid {
		// Already invalidated; nothing to undo.
		return nil
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE transactions SET is_valid = 0 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to invalidate transaction: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE budget_lines SET spent_amount = spent_amount - ? WHERE id = ?`,
		txn.Amount, txn.BudgetLineID); err != nil {
		return fmt.Errorf("failed to release spent amount: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit invalidation: %w", err)
	}

	slog.Debug("invalidated transaction", "id", id, "line_id", txn.BudgetLineID, "amount", txn.Amount)
	return nil
}

func (s *SQLiteStorage) getTransactionTx(ctx context.Context, q queryable, id int64) (*model.Transaction, error) {
	row := q.QueryRowContext(ctx, `
		SELECT id, budget_line_id, date, vendor_name, amount, payment_method,
		       receipt_type, memo, is_valid, created_at
		FROM transactions WHERE id = ?`, id)

	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.NewNotFoundError("transaction", id)
	}
	if err != nil {
		return nil, err
	}
	return txn, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	var txn model.Transaction
	var memo sql.NullString
	var method, receipt string
	if err := row.Scan(&txn.ID, &txn.BudgetLineID, &txn.Date, &txn.VendorName,
		&txn.Amount, &method, &receipt, &memo, &txn.IsValid, &txn.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}
	txn.PaymentMethod = model.PaymentMethod(method)
	txn.ReceiptType = model.ReceiptType(receipt)
	txn.Memo = memo.String
	return &txn, nil
}
