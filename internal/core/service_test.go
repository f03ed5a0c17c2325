package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurodata/edfstore/internal/config"
)

func TestInitSchema(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, &config.Config{})

	require.NoError(t, svc.InitSchema(context.Background()))
	assert.Equal(t, []string{"exec: CREATE", "exec: CREATE"}, store.calls)
}

func TestListSamples(t *testing.T) {
	store := &fakeStore{
		committed: []SampleRecord{
			{ID: 1, Channel: "C1", Time: 0, Value: 1.5},
			{ID: 2, Channel: "C2", Time: 0.5, Value: -2.25},
		},
	}
	svc := NewService(store, &config.Config{})

	records, err := svc.ListSamples(context.Background())
	require.NoError(t, err)
	assert.Equal(t, store.committed, records)
}

func TestListSamples_Empty(t *testing.T) {
	svc := NewService(&fakeStore{}, &config.Config{})

	records, err := svc.ListSamples(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestCountSamples(t *testing.T) {
	store := &fakeStore{
		committed: []SampleRecord{{ID: 1}, {ID: 2}, {ID: 3}},
	}
	svc := NewService(store, &config.Config{})

	count, err := svc.CountSamples(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestDatabaseVersion(t *testing.T) {
	svc := NewService(&fakeStore{}, &config.Config{})

	version, err := svc.DatabaseVersion(context.Background())
	require.NoError(t, err)
	assert.Contains(t, version, "PostgreSQL")
}

func TestPing(t *testing.T) {
	svc := NewService(&fakeStore{}, &config.Config{})
	assert.NoError(t, svc.Ping(context.Background()))
}
