package core

// fakes_test.go provides in-memory stand-ins for the pgx pool and
// transaction so the transaction path can be exercised without a
// database. The fake store keeps committed rows separate from a
// transaction's pending rows, so rollback behavior is observable.

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeStore struct {
	committed []SampleRecord
	nextID    int64

	// Injected failures
	beginErr  error
	deleteErr error
	copyErr   error
	commitErr error

	// calls records pool and transaction operations in order.
	calls []string
}

func (s *fakeStore) Begin(ctx context.Context) (pgx.Tx, error) {
	s.calls = append(s.calls, "begin")
	if s.beginErr != nil {
		return nil, s.beginErr
	}
	pending := make([]SampleRecord, len(s.committed))
	copy(pending, s.committed)
	return &fakeTx{store: s, pending: pending}, nil
}

func (s *fakeStore) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	s.calls = append(s.calls, "exec: "+firstWord(sql))
	return pgconn.NewCommandTag("OK"), nil
}

func (s *fakeStore) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	s.calls = append(s.calls, "query")
	return &fakeRows{rows: s.committed}, nil
}

func (s *fakeStore) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	switch {
	case strings.Contains(sql, "version()"):
		return fakeRow{vals: []any{"PostgreSQL 16.3 (fake)"}}
	case strings.Contains(sql, "COUNT"):
		return fakeRow{vals: []any{int64(len(s.committed))}}
	default:
		return fakeRow{err: fmt.Errorf("unexpected query: %s", sql)}
	}
}

func (s *fakeStore) Ping(ctx context.Context) error {
	return nil
}

// fakeTx implements the subset of pgx.Tx the pipeline touches; the
// embedded interface panics on anything else.
type fakeTx struct {
	pgx.Tx
	store   *fakeStore
	pending []SampleRecord
	done    bool
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	t.store.calls = append(t.store.calls, "tx exec: "+firstWord(sql))
	if strings.HasPrefix(sql, "DELETE") {
		if t.store.deleteErr != nil {
			return pgconn.CommandTag{}, t.store.deleteErr
		}
		n := len(t.pending)
		t.pending = t.pending[:0]
		return pgconn.NewCommandTag(fmt.Sprintf("DELETE %d", n)), nil
	}
	return pgconn.NewCommandTag("OK"), nil
}

func (t *fakeTx) CopyFrom(ctx context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error) {
	if t.store.copyErr != nil {
		t.store.calls = append(t.store.calls, "tx copyfrom")
		return 0, t.store.copyErr
	}
	var copied int64
	for src.Next() {
		vals, err := src.Values()
		if err != nil {
			return copied, err
		}
		t.store.nextID++
		t.pending = append(t.pending, SampleRecord{
			ID:      t.store.nextID,
			Channel: vals[0].(string),
			Time:    vals[1].(float64),
			Value:   vals[2].(float64),
		})
		copied++
	}
	t.store.calls = append(t.store.calls, fmt.Sprintf("tx copyfrom: %d", copied))
	return copied, src.Err()
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.store.calls = append(t.store.calls, "tx commit")
	if t.store.commitErr != nil {
		return t.store.commitErr
	}
	t.store.committed = t.pending
	t.done = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.store.calls = append(t.store.calls, "tx rollback")
	t.done = true
	return nil
}

// fakeRows iterates sample records for the list query.
type fakeRows struct {
	pgx.Rows
	rows []SampleRecord
	i    int
}

func (r *fakeRows) Close()     {}
func (r *fakeRows) Err() error { return nil }

func (r *fakeRows) Next() bool {
	r.i++
	return r.i <= len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	rec := r.rows[r.i-1]
	*(dest[0].(*int64)) = rec.ID
	*(dest[1].(*string)) = rec.Channel
	*(dest[2].(*float64)) = rec.Time
	*(dest[3].(*float64)) = rec.Value
	return nil
}

type fakeRow struct {
	vals []any
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i := range dest {
		switch d := dest[i].(type) {
		case *string:
			*d = r.vals[i].(string)
		case *int64:
			*d = r.vals[i].(int64)
		default:
			return fmt.Errorf("unsupported scan target %T", dest[i])
		}
	}
	return nil
}

func firstWord(sql string) string {
	sql = strings.TrimSpace(sql)
	if i := strings.IndexAny(sql, " \n\t"); i > 0 {
		return sql[:i]
	}
	return sql
}
