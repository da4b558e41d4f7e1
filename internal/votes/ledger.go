package votes

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Outcome describes what CastVote did to the ledger.
type Outcome string

const (
	OutcomeCreated   Outcome = "created"
	OutcomeUpdated   Outcome = "updated"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeRetracted Outcome = "retracted"
	OutcomeNoop      Outcome = "noop"
)

// Targets answers whether a votable target exists. The check runs on the
// ledger's transaction so it sees the same snapshot as the write.
type Targets interface {
	TargetExists(tx *gorm.DB, ref Ref) (bool, error)
}

// Ledger owns the votes table. It never touches content rows.
type Ledger struct {
	db      *gorm.DB
	targets Targets
	now     func() time.Time
}

// NewLedger returns a ledger over db. targets may be nil, in which case votes
// are accepted for any well-formed reference.
func NewLedger(db *gorm.DB, targets Targets) *Ledger {
	return &Ledger{db: db, targets: targets, now: func() time.Time { return time.Now().UTC() }}
}

// CastVote records voterID's vote on ref. Value 0 retracts an existing vote
// and is a no-op when there is none. Repeating the same vote is harmless.
func (l *Ledger) CastVote(ctx context.Context, voterID int, ref Ref, value Value) (Outcome, error) {
	if !ref.Kind.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTargetKind, string(ref.Kind))
	}
	if !value.Valid() {
		return "", fmt.Errorf("%w: %d", ErrInvalidVoteValue, int(value))
	}

	outcome, err := l.castOnce(ctx, voterID, ref, value)
	if isConflict(err) {
		slog.Warn("vote conflict, retrying", "voter_id", voterID, "target", ref.String(), "error", err)
		outcome, err = l.castOnce(ctx, voterID, ref, value)
		if isConflict(err) {
			return "", fmt.Errorf("%w: vote on %s: %v", ErrPersistenceConflict, ref, err)
		}
	}
	if err != nil {
		return "", err
	}
	return outcome, nil
}

func (l *Ledger) castOnce(ctx context.Context, voterID int, ref Ref, value Value) (Outcome, error) {
	var outcome Outcome
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if l.targets != nil {
			ok, err := l.targets.TargetExists(tx, ref)
			if err != nil {
				return fmt.Errorf("check target %s: %w", ref, err)
			}
			if !ok {
				return fmt.Errorf("%w: %s", ErrTargetNotFound, ref)
			}
		}

		var existing []Vote
		if err := voterTarget(tx, voterID, ref).Limit(1).Find(&existing).Error; err != nil {
			return fmt.Errorf("load vote: %w", err)
		}
		found := len(existing) == 1

		if value == Retract {
			if !found {
				outcome = OutcomeNoop
				return nil
			}
			if err := voterTarget(tx, voterID, ref).Delete(&Vote{}).Error; err != nil {
				return fmt.Errorf("retract vote: %w", err)
			}
			outcome = OutcomeRetracted
			return nil
		}

		now := l.now()
		vote := Vote{
			UserID:      voterID,
			VotableType: ref.Kind,
			VotableID:   ref.ID,
			Value:       int(value),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		// The unique index on (user_id, votable_type, votable_id) is the
		// arbiter; a concurrent first vote turns into an update here.
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "votable_type"}, {Name: "votable_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"value":      int(value),
				"updated_at": now,
			}),
		}).Create(&vote).Error
		if err != nil {
			return fmt.Errorf("upsert vote: %w", err)
		}

		switch {
		case !found:
			outcome = OutcomeCreated
		case existing[0].Value == int(value):
			outcome = OutcomeUnchanged
		default:
			outcome = OutcomeUpdated
		}
		return nil
	})
	return outcome, err
}

// GetVote returns voterID's current vote on ref, or Retract if there is none.
func (l *Ledger) GetVote(ctx context.Context, voterID int, ref Ref) (Value, error) {
	if !ref.Kind.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTargetKind, string(ref.Kind))
	}
	var found []Vote
	if err := voterTarget(l.db.WithContext(ctx), voterID, ref).Limit(1).Find(&found).Error; err != nil {
		return 0, fmt.Errorf("load vote: %w", err)
	}
	if len(found) == 0 {
		return Retract, nil
	}
	return Value(found[0].Value), nil
}

// Count returns the number of stored votes.
func (l *Ledger) Count(ctx context.Context) (int64, error) {
	var n int64
	err := l.db.WithContext(ctx).Model(&Vote{}).Count(&n).Error
	return n, err
}

// PurgeTargets deletes every vote on the given targets. It is meant to run
// on the transaction that deletes the targets themselves, since nothing in
// the schema cascades across the polymorphic reference.
func PurgeTargets(tx *gorm.DB, kind Kind, ids []int) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	if !kind.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTargetKind, string(kind))
	}
	res := tx.Where("votable_type = ? AND votable_id IN ?", string(kind), ids).Delete(&Vote{})
	if res.Error != nil {
		return 0, fmt.Errorf("purge %s votes: %w", kind, res.Error)
	}
	return res.RowsAffected, nil
}

func voterTarget(db *gorm.DB, voterID int, ref Ref) *gorm.DB {
	return db.Where("user_id = ? AND votable_type = ? AND votable_id = ?", voterID, string(ref.Kind), ref.ID)
}
