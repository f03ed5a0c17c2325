package core

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Pool is the interface the service needs from a database handle.
// Satisfied by *pgxpool.Pool; tests substitute a fake.
type Pool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// Recording is the decoded artifact of one uploaded file. It lives only
// for the duration of an ingestion: built by the codec adapter, consumed
// by projection, then discarded.
//
// Invariants: len(Channels) == len(Samples), and every Samples[i] has
// len(Times) values.
type Recording struct {
	// Channels holds channel names in acquisition order.
	Channels []string

	// Times holds sample offsets in seconds from recording start,
	// ascending and non-negative.
	Times []float64

	// Samples holds one row of physical values per channel.
	Samples [][]float64
}

// SampleRecord is one persisted (channel, time, value) triple.
type SampleRecord struct {
	// ID is the store-assigned surrogate key. Zero until inserted.
	ID int64 `json:"id"`

	// Channel names the originating signal stream.
	Channel string `json:"channel"`

	// Time is the offset in seconds from recording start.
	Time float64 `json:"time"`

	// Value is the measured signal amplitude.
	Value float64 `json:"value"`
}

// IngestResult reports a completed ingestion.
type IngestResult struct {
	FileName     string
	Channels     []string
	TotalRecords int64
	Duration     time.Duration
}
