package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"resume-builder/internal/database"
)

var ErrSchemaMismatch = errors.New("schema mismatch")

// EnsureTableColumns fails with ErrSchemaMismatch, naming every missing
// column, when table lacks any of columns. Seeders call it so a stale
// database fails before any row is written.
func EnsureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if table == "" {
		return fmt.Errorf("empty table")
	}

	rows, err := db.Query(ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema = 'public' AND table_name = $1`,
		table,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	return missingColumns(table, existing, columns)
}

func missingColumns(table string, existing map[string]struct{}, want []string) error {
	var missing []string
	for _, col := range want {
		if col == "" {
			return fmt.Errorf("empty column")
		}
		if _, ok := existing[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s missing %s", ErrSchemaMismatch, table, strings.Join(missing, ", "))
}
