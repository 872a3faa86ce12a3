// Package loader replace-loads the materialized CSV tables into the
// postgres store. Each table is cleared and repopulated inside its own
// transaction, so re-running a load can never append or leave a table
// half-written.
package loader

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/thien/ecom-seeder/internal/apperrors"
	"github.com/thien/ecom-seeder/internal/logger"
	"github.com/thien/ecom-seeder/internal/model"
	"go.uber.org/zap"
)

// Loader handles transactional replace loads into the store.
type Loader struct {
	db *sql.DB
}

// New creates a loader over an open store connection.
func New(db *sql.DB) *Loader {
	return &Loader{db: db}
}

// Result holds the outcome of one table's replace load.
type Result struct {
	Table        string
	RowsInserted int64
	Success      bool
	Error        error
}

// LoadAll replaces every entity table from the CSV files in dataDir,
// parents before children so foreign keys always resolve. The first
// failure stops the run; tables committed before it stay intact.
func (l *Loader) LoadAll(ctx context.Context, dataDir string) ([]Result, error) {
	tables := []string{
		model.TableUsers,
		model.TableProducts,
		model.TableOrders,
		model.TableOrderItems,
		model.TablePayments,
	}

	logger.Info("Starting replace load", zap.String("data_dir", dataDir), zap.Int("table_count", len(tables)))

	var results []Result
	for _, table := range tables {
		result := l.loadTable(ctx, dataDir, table)
		results = append(results, result)

		if !result.Success {
			logger.Error("Failed to load table",
				zap.String("table", table),
				zap.Error(result.Error))
			return results, result.Error
		}
		logger.Info("Loaded table",
			zap.String("table", table),
			zap.Int64("rows", result.RowsInserted))
	}

	return results, nil
}

// loadTable clears and repopulates a single table in one transaction.
func (l *Loader) loadTable(ctx context.Context, dataDir, table string) Result {
	result := Result{Table: table}

	rows, err := readTable(dataDir, table)
	if err != nil {
		result.Error = err
		return result
	}

	columns := model.ColumnsFor(table)
	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	insertQuery := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		result.Error = fmt.Errorf("failed to begin transaction: %w", err)
		return result
	}
	defer tx.Rollback()

	// Clear before insert. CASCADE empties dependents of this table too;
	// they are always reloaded right after, in FK order.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
		result.Error = fmt.Errorf("failed to truncate table %s: %w", table, err)
		return result
	}

	stmt, err := tx.PrepareContext(ctx, insertQuery)
	if err != nil {
		result.Error = fmt.Errorf("failed to prepare insert statement: %w", err)
		return result
	}
	defer stmt.Close()

	var rowCount int64
	for i, values := range rows {
		if _, err := stmt.ExecContext(ctx, values...); err != nil {
			result.Error = &apperrors.LoadError{Table: table, Row: i + 1, Err: err}
			return result
		}
		rowCount++
	}

	if err := tx.Commit(); err != nil {
		result.Error = fmt.Errorf("failed to commit load for %s: %w", table, err)
		return result
	}

	result.RowsInserted = rowCount
	result.Success = true
	return result
}

// missingFileError maps a missing CSV to the prerequisite error so a load
// run against an empty data directory fails with a clear cause.
func missingFileError(path string, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("table file %s not found: %w", path, apperrors.ErrPrereqMissing)
	}
	return fmt.Errorf("failed to open %s: %w", path, err)
}
