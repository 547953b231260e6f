// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package accesslog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "logs", "access.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	for i, q := range []string{"go", "harry potter", "node"} {
		require.NoError(t, s.Record(ctx, Record{
			Time:     base.Add(time.Duration(i) * time.Minute),
			Method:   "GET",
			Query:    q,
			Status:   200,
			Items:    i,
			Duration: time.Duration(i+1) * 100 * time.Millisecond,
		}))
	}

	got, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "node", got[0].Query)
	assert.Equal(t, "harry potter", got[1].Query)
	assert.Equal(t, base.Add(2*time.Minute), got[0].Time)
	assert.Equal(t, 300*time.Millisecond, got[0].Duration)
	assert.Equal(t, 2, got[0].Items)
}

func TestRecentDefaultLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	for i := 0; i < 25; i++ {
		require.NoError(t, s.Record(ctx, Record{Method: "GET", Query: "q", Status: 503}))
	}

	got, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, defaultRecentLimit)
	assert.False(t, got[0].Time.IsZero())
}

func TestReopenKeepsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "access.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Record(context.Background(), Record{Method: "GET", Query: "persisted", Status: 200}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "persisted", got[0].Query)
}
