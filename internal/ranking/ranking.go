// Package ranking orders votable content for feeds. It holds no state: every
// function works on the scores and timestamps it is handed.
package ranking

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

var ErrUnsupportedSortType = errors.New("unsupported sort type")

type SortType string

const (
	SortHot SortType = "hot"
	SortNew SortType = "new"

	DefaultSort = SortHot
)

// ParseSort validates a sort parameter. An empty value means DefaultSort.
func ParseSort(s string) (SortType, error) {
	switch SortType(s) {
	case "":
		return DefaultSort, nil
	case SortHot, SortNew:
		return SortType(s), nil
	}
	return "", fmt.Errorf("%w: %q (expected hot or new)", ErrUnsupportedSortType, s)
}

// DecayHours is how long it takes for age to cost as much as a tenfold
// change in net score.
const DecayHours = 12.5

// Hotness scores an entry by net votes and age:
// sign(net) * log10(1 + |net|) - hours / DecayHours.
// It rises with net for any age and falls with age for any net. Future
// timestamps count as age zero.
func Hotness(net int64, age time.Duration) float64 {
	hours := age.Hours()
	if hours < 0 {
		hours = 0
	}
	magnitude := math.Log10(1 + math.Abs(float64(net)))
	if net < 0 {
		magnitude = -magnitude
	}
	return magnitude - hours/DecayHours
}

// Entry is what the ranker needs to know about one item.
type Entry struct {
	ID        int
	NetScore  int64
	CreatedAt time.Time
}

// HotnessAt is the entry's hotness as of now.
func (e Entry) HotnessAt(now time.Time) float64 {
	return Hotness(e.NetScore, now.Sub(e.CreatedAt))
}

type keyed[T any] struct {
	item  T
	entry Entry
	hot   float64
}

// Sort orders items in place. SortNew is strictly newest first; SortHot is
// highest hotness first with newest first among equals. Remaining ties fall
// back to the higher id so the order is total and pages are stable.
func Sort[T any](items []T, entry func(T) Entry, mode SortType, now time.Time) error {
	if mode != SortNew && mode != SortHot {
		return fmt.Errorf("%w: %q", ErrUnsupportedSortType, string(mode))
	}

	keys := make([]keyed[T], len(items))
	for i, it := range items {
		e := entry(it)
		keys[i] = keyed[T]{item: it, entry: e}
		if mode == SortHot {
			keys[i].hot = e.HotnessAt(now)
		}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if mode == SortHot && a.hot != b.hot {
			return a.hot > b.hot
		}
		return newer(a.entry, b.entry)
	})
	for i, k := range keys {
		items[i] = k.item
	}
	return nil
}

func newer(a, b Entry) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
