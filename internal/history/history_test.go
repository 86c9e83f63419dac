package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j2h4u/beeminder-wordcount/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	st, err := history.Open(context.Background(), filepath.Join(t.TempDir(), "db", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestStore_RecordAssignsIDAndTime(t *testing.T) {
	st := openStore(t)

	a, err := st.Record(context.Background(), history.Attempt{
		UserName: "alice", GoalName: "writing", Scope: "SELECTION",
		Value: 42, Comment: "Notes", Success: true, StatusCode: 200, Body: "{}",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.False(t, a.CreatedAt.IsZero())

	recent, err := st.Recent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	got := recent[0]
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, 42, got.Value)
	assert.Equal(t, "Notes", got.Comment)
	assert.True(t, got.Success)
	assert.Equal(t, 200, got.StatusCode)
	assert.WithinDuration(t, a.CreatedAt, got.CreatedAt, time.Microsecond)
}

func TestStore_RecentNewestFirstWithLimit(t *testing.T) {
	st := openStore(t)
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_, err := st.Record(context.Background(), history.Attempt{
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Value:     i,
			Success:   i%2 == 0,
			Body:      "b",
		})
		require.NoError(t, err)
	}

	recent, err := st.Recent(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, []int{4, 3, 2}, []int{recent[0].Value, recent[1].Value, recent[2].Value})
	assert.True(t, recent[0].Success)
	assert.False(t, recent[1].Success)
}

func TestStore_EmptyHistory(t *testing.T) {
	recent, err := openStore(t).Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := history.Open(context.Background(), "")
	assert.Error(t, err)
}
