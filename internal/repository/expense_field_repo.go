package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// ExpenseFieldRepository stores the mission expense ledger under its flat
// numbered field convention (nomdepenseN / tvadepenseN / totaldepenseN). The
// renumbering logic lives in the ledger codec; this repository only clears and
// rewrites the full field set, inside one transaction so a failure cannot
// leave a half-renumbered ledger.
type ExpenseFieldRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewExpenseFieldRepository creates a new expense flat-field repository
func NewExpenseFieldRepository(db *sql.DB, logger *zap.Logger) *ExpenseFieldRepository {
	return &ExpenseFieldRepository{
		db:     db,
		logger: logger,
	}
}

// ExpenseFields retrieves all expense flat fields of a mission
func (r *ExpenseFieldRepository) ExpenseFields(ctx context.Context, missionID string) (map[string]string, error) {
	query := `SELECT field_name, field_value FROM mission_expense_fields WHERE mission_id = ?`

	rows, err := r.db.QueryContext(ctx, query, missionID)
	if err != nil {
		r.logger.Error("Failed to get expense fields", zap.String("mission_id", missionID), zap.Error(err))
		return nil, fmt.Errorf("failed to get expense fields: %w", err)
	}
	defer rows.Close()

	fields := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("failed to scan expense field: %w", err)
		}
		fields[name] = value
	}

	return fields, rows.Err()
}

// ReplaceExpenseFields clears every expense flat field of the mission and
// rewrites the given set
func (r *ExpenseFieldRepository) ReplaceExpenseFields(ctx context.Context, missionID string, fields map[string]string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM mission_expense_fields WHERE mission_id = ?`, missionID); err != nil {
		_ = tx.Rollback()
		r.logger.Error("Failed to clear expense fields", zap.String("mission_id", missionID), zap.Error(err))
		return fmt.Errorf("failed to clear expense fields: %w", err)
	}

	for name, value := range fields {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO mission_expense_fields (mission_id, field_name, field_value) VALUES (?, ?, ?)`,
			missionID, name, value); err != nil {
			_ = tx.Rollback()
			r.logger.Error("Failed to write expense field",
				zap.String("mission_id", missionID),
				zap.String("field_name", name),
				zap.Error(err))
			return fmt.Errorf("failed to write expense field: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit expense field rewrite", zap.String("mission_id", missionID), zap.Error(err))
		return fmt.Errorf("failed to commit expense field rewrite: %w", err)
	}

	r.logger.Debug("Expense fields rewritten",
		zap.String("mission_id", missionID),
		zap.Int("field_count", len(fields)))

	return nil
}
