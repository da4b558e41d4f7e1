package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/factfeed/backend/internal/votes"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidLevel = errors.New("fact check level must be between 0 and 4")
)

// Store owns articles, comments and fact checks. Votes on them belong to the
// ledger; the store only purges them when their target goes away.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func tableFor(kind votes.Kind) (string, error) {
	switch kind {
	case votes.KindArticle:
		return "articles", nil
	case votes.KindComment:
		return "comments", nil
	case votes.KindFactCheck:
		return "fact_checks", nil
	}
	return "", fmt.Errorf("%w: %q", votes.ErrInvalidTargetKind, string(kind))
}

// Exists reports whether the target of ref is stored.
func (s *Store) Exists(ctx context.Context, ref votes.Ref) (bool, error) {
	return s.TargetExists(s.db.WithContext(ctx), ref)
}

// TargetExists is Exists on a caller's transaction. On PostgreSQL the target
// row is share-locked until tx ends, so a concurrent delete waits for the
// vote to commit and then purges it.
func (s *Store) TargetExists(tx *gorm.DB, ref votes.Ref) (bool, error) {
	table, err := tableFor(ref.Kind)
	if err != nil {
		return false, err
	}
	q := tx.Table(table).Select("id").Where("id = ?", ref.ID).Limit(1)
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "SHARE"})
	}
	var ids []int
	if err := q.Find(&ids).Error; err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

// CreatedAt returns the creation time of the target of ref.
func (s *Store) CreatedAt(ctx context.Context, ref votes.Ref) (time.Time, error) {
	table, err := tableFor(ref.Kind)
	if err != nil {
		return time.Time{}, err
	}
	var stamps []time.Time
	err = s.db.WithContext(ctx).Table(table).Where("id = ?", ref.ID).Limit(1).Pluck("created_at", &stamps).Error
	if err != nil {
		return time.Time{}, err
	}
	if len(stamps) == 0 {
		return time.Time{}, fmt.Errorf("%s: %w", ref, ErrNotFound)
	}
	return stamps[0], nil
}

// DeleteCascade deletes the target of ref along with everything hanging off
// it, and every vote cast on any of the deleted rows.
func (s *Store) DeleteCascade(ctx context.Context, ref votes.Ref) error {
	switch ref.Kind {
	case votes.KindArticle:
		return s.DeleteArticle(ctx, ref.ID)
	case votes.KindComment:
		return s.DeleteComment(ctx, ref.ID)
	case votes.KindFactCheck:
		return s.DeleteFactCheck(ctx, ref.ID)
	}
	return fmt.Errorf("%w: %q", votes.ErrInvalidTargetKind, string(ref.Kind))
}

func notFound(err error, what string, id int) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return err
}
