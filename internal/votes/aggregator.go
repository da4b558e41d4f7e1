package votes

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Tally is the like/dislike count for one target.
type Tally struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}

// NetScore is likes minus dislikes.
func (t Tally) NetScore() int64 {
	return t.Likes - t.Dislikes
}

// Aggregator counts votes straight from the ledger on every call. There is
// no counter column to drift out of sync with the rows.
type Aggregator struct {
	db *gorm.DB
}

func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

type tallyRow struct {
	VotableID int
	Value     int
	N         int64
}

// Tally counts the votes on a single target.
func (a *Aggregator) Tally(ctx context.Context, ref Ref) (Tally, error) {
	tallies, err := a.TallyMany(ctx, ref.Kind, []int{ref.ID})
	if err != nil {
		return Tally{}, err
	}
	return tallies[ref.ID], nil
}

// NetScore is Tally(ref).NetScore().
func (a *Aggregator) NetScore(ctx context.Context, ref Ref) (int64, error) {
	t, err := a.Tally(ctx, ref)
	if err != nil {
		return 0, err
	}
	return t.NetScore(), nil
}

// TallyMany counts votes for many targets of one kind in a single query.
// Targets without votes are present in the result with a zero Tally.
func (a *Aggregator) TallyMany(ctx context.Context, kind Kind, ids []int) (map[int]Tally, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTargetKind, string(kind))
	}
	out := make(map[int]Tally, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	for _, id := range ids {
		out[id] = Tally{}
	}

	var rows []tallyRow
	err := a.db.WithContext(ctx).
		Model(&Vote{}).
		Select("votable_id, value, COUNT(*) AS n").
		Where("votable_type = ? AND votable_id IN ?", string(kind), ids).
		Group("votable_id, value").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("tally %s votes: %w", kind, err)
	}

	for _, r := range rows {
		t := out[r.VotableID]
		switch Value(r.Value) {
		case Like:
			t.Likes += r.N
		case Dislike:
			t.Dislikes += r.N
		}
		out[r.VotableID] = t
	}
	return out, nil
}
