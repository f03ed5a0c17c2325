package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// copyColumns lists the insert columns in the order copyRow emits values.
// The id column is omitted so the store assigns surrogate keys.
var copyColumns = []string{"channel", "time", "value"}

// replaceAll clears the sample table and bulk-inserts rows within one
// transaction: begin, delete all, COPY insert, commit. Any failure rolls
// the whole span back, so a concurrent reader never observes a partial
// replace. Returns the number of rows inserted.
func (s *Service) replaceAll(ctx context.Context, rows []SampleRecord) (int64, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, persistenceError("begin transaction", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM "+sampleTable); err != nil {
		return 0, persistenceError("clear prior samples", err)
	}

	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{sampleTable},
		copyColumns,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			return []any{rows[i].Channel, rows[i].Time, rows[i].Value}, nil
		}),
	)
	if err != nil {
		return 0, persistenceError("insert samples", err)
	}
	if copied != int64(len(rows)) {
		return 0, persistenceError("insert samples",
			fmt.Errorf("copied %d of %d rows", copied, len(rows)))
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, persistenceError("commit transaction", err)
	}

	return copied, nil
}
