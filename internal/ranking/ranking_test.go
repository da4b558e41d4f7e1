package ranking

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSort(t *testing.T) {
	tests := []struct {
		in      string
		want    SortType
		wantErr bool
	}{
		{"", SortHot, false},
		{"hot", SortHot, false},
		{"new", SortNew, false},
		{"top", "", true},
		{"Hot", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSort(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnsupportedSortType))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHotnessMonotonicInScore(t *testing.T) {
	ages := []time.Duration{0, time.Minute, 3 * time.Hour, 48 * time.Hour, 30 * 24 * time.Hour}
	for _, age := range ages {
		prev := Hotness(-50, age)
		for net := int64(-49); net <= 50; net++ {
			h := Hotness(net, age)
			assert.GreaterOrEqual(t, h, prev, "net=%d age=%s", net, age)
			prev = h
		}
	}
}

func TestHotnessDecaysWithAge(t *testing.T) {
	for _, net := range []int64{0, 1, 5, 1000} {
		prev := Hotness(net, 0)
		for hours := 1; hours <= 24*14; hours++ {
			h := Hotness(net, time.Duration(hours)*time.Hour)
			assert.LessOrEqual(t, h, prev, "net=%d hours=%d", net, hours)
			prev = h
		}
	}
}

func TestHotnessClampsFutureAge(t *testing.T) {
	assert.Equal(t, Hotness(3, 0), Hotness(3, -time.Hour))
}

func TestSortHotPrefersNewerAtEqualScore(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	items := []Entry{
		{ID: 1, NetScore: 4, CreatedAt: now.Add(-10 * time.Hour)},
		{ID: 2, NetScore: 4, CreatedAt: now.Add(-1 * time.Hour)},
	}
	require.NoError(t, Sort(items, identity, SortHot, now))
	assert.Equal(t, []int{2, 1}, ids(items))
}

func TestSortHotPrefersHigherScoreAtEqualAge(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	created := now.Add(-5 * time.Hour)
	items := []Entry{
		{ID: 1, NetScore: 1, CreatedAt: created},
		{ID: 2, NetScore: 7, CreatedAt: created},
		{ID: 3, NetScore: -2, CreatedAt: created},
	}
	require.NoError(t, Sort(items, identity, SortHot, now))
	assert.Equal(t, []int{2, 1, 3}, ids(items))
}

func TestHotnessDecaysWithAgeForNegativeScores(t *testing.T) {
	for _, net := range []int64{-1, -3, -500} {
		prev := Hotness(net, 0)
		for hours := 1; hours <= 24*14; hours++ {
			h := Hotness(net, time.Duration(hours)*time.Hour)
			assert.Less(t, h, prev, "net=%d hours=%d", net, hours)
			prev = h
		}
	}
}

func TestHotnessStrictlyIncreasingInScore(t *testing.T) {
	for net := int64(-20); net < 20; net++ {
		assert.Less(t, Hotness(net, 2*time.Hour), Hotness(net+1, 2*time.Hour), "net=%d", net)
	}
}

func TestSortHotPrefersNewerAtEqualNegativeScore(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	items := []Entry{
		{ID: 1, NetScore: -3, CreatedAt: now.Add(-48 * time.Hour)},
		{ID: 2, NetScore: -3, CreatedAt: now.Add(-1 * time.Hour)},
	}
	require.NoError(t, Sort(items, identity, SortHot, now))
	assert.Equal(t, []int{2, 1}, ids(items))
}

func TestSortHotKeepsCollidingIDs(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	created := now.Add(-time.Hour)
	// same id from two different tables
	items := []Entry{
		{ID: 7, NetScore: -2, CreatedAt: created},
		{ID: 7, NetScore: 9, CreatedAt: created},
	}
	require.NoError(t, Sort(items, identity, SortHot, now))
	assert.Equal(t, int64(9), items[0].NetScore)
	assert.Equal(t, int64(-2), items[1].NetScore)
}

func TestSortHotTieBreaksByID(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	created := now.Add(-2 * time.Hour)
	items := []Entry{
		{ID: 3, NetScore: 1, CreatedAt: created},
		{ID: 9, NetScore: 1, CreatedAt: created},
		{ID: 5, NetScore: 1, CreatedAt: created},
	}
	require.NoError(t, Sort(items, identity, SortHot, now))
	assert.Equal(t, []int{9, 5, 3}, ids(items))
}

func TestSortHotTieBreaksByCreatedAt(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	items := []Entry{
		{ID: 1, NetScore: 0, CreatedAt: now.Add(-48 * time.Hour)},
		{ID: 2, NetScore: 0, CreatedAt: now.Add(-1 * time.Hour)},
		{ID: 3, NetScore: 0, CreatedAt: now.Add(-5 * time.Hour)},
	}
	require.NoError(t, Sort(items, identity, SortHot, now))
	assert.Equal(t, []int{2, 3, 1}, ids(items))
}

func TestSortHotStalePopularYieldsToFresh(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	items := []Entry{
		{ID: 1, NetScore: 10, CreatedAt: now.Add(-7 * 24 * time.Hour)},
		{ID: 2, NetScore: 2, CreatedAt: now.Add(-30 * time.Minute)},
	}
	require.NoError(t, Sort(items, identity, SortHot, now))
	assert.Equal(t, []int{2, 1}, ids(items))
}

func TestSortNewIgnoresScore(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	items := []Entry{
		{ID: 1, NetScore: 100, CreatedAt: now.Add(-3 * time.Hour)},
		{ID: 2, NetScore: -5, CreatedAt: now.Add(-1 * time.Hour)},
		{ID: 3, NetScore: 0, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: 4, NetScore: 9, CreatedAt: now.Add(-2 * time.Hour)},
	}
	require.NoError(t, Sort(items, identity, SortNew, now))
	assert.Equal(t, []int{2, 4, 3, 1}, ids(items))

	for i := 1; i < len(items); i++ {
		assert.False(t, items[i].CreatedAt.After(items[i-1].CreatedAt))
	}
}

func TestSortRejectsUnknownMode(t *testing.T) {
	err := Sort([]Entry{{ID: 1}}, identity, SortType("top"), time.Now())
	assert.True(t, errors.Is(err, ErrUnsupportedSortType))
}

func identity(e Entry) Entry { return e }

func ids(items []Entry) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
