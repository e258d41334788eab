package store

import (
	"context"
	"database/sql"
	"fmt"
)

// serialTables is the allowlist of tables that carry serial numbers. Table
// names are interpolated into SQL, so they must never come from user input.
var serialTables = map[string]bool{
	"orders":  true,
	"workers": true,
}

// NextSerial returns 1 + MAX(serial_no) over the named table, or 1 when the
// table is empty. On a pre-migration store without the serial_no column it
// falls back to 1 + MAX(id).
//
// This is the advisory preview used by the presentation layer to label the
// next entry. It is a plain read: the value actually written is allocated
// again inside the creating transaction, so concurrent creations cannot
// collide even if their previews did.
func (s *Store) NextSerial(ctx context.Context, table string) (int64, error) {
	if !serialTables[table] {
		return 0, fmt.Errorf("no serial sequence for table %q", table)
	}

	column := "serial_no"
	hasSerial, err := tableHasColumn(s.db, table, "serial_no")
	if err != nil {
		return 0, err
	}
	if !hasSerial {
		column = "id"
	}

	var next int64
	err = s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COALESCE(MAX(%s), 0) + 1 FROM %s", column, table),
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next serial for %s: %w", table, err)
	}
	return next, nil
}

// nextSerialTx allocates the next serial number inside the caller's
// transaction. The insert that uses the value must commit in the same
// transaction for the allocation to be race-free.
func nextSerialTx(ctx context.Context, tx *sql.Tx, table string) (int64, error) {
	if !serialTables[table] {
		return 0, fmt.Errorf("no serial sequence for table %q", table)
	}

	var next int64
	err := tx.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COALESCE(MAX(serial_no), 0) + 1 FROM %s", table),
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next serial for %s: %w", table, err)
	}
	return next, nil
}
