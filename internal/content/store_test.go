package content

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/factfeed/backend/internal/models"
	"github.com/emilythestrangee/factfeed/backend/internal/testutil"
	"github.com/emilythestrangee/factfeed/backend/internal/votes"
)

func TestExistsAndCreatedAt(t *testing.T) {
	db := testutil.NewDB(t)
	store := NewStore(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "alice")
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	article := testutil.CreateArticle(t, db, user.ID, "Budget vote", created)
	comment := testutil.CreateComment(t, db, user.ID, article.ID, "first")
	fc := testutil.CreateFactCheck(t, db, user.ID, article.ID, models.LevelVerified)

	for _, ref := range []votes.Ref{
		{Kind: votes.KindArticle, ID: article.ID},
		{Kind: votes.KindComment, ID: comment.ID},
		{Kind: votes.KindFactCheck, ID: fc.ID},
	} {
		ok, err := store.Exists(ctx, ref)
		require.NoError(t, err)
		assert.True(t, ok, ref.String())
	}

	ok, err := store.Exists(ctx, votes.Ref{Kind: votes.KindComment, ID: 404})
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.Exists(ctx, votes.Ref{Kind: "Poll", ID: 1})
	assert.ErrorIs(t, err, votes.ErrInvalidTargetKind)

	got, err := store.CreatedAt(ctx, votes.Ref{Kind: votes.KindArticle, ID: article.ID})
	require.NoError(t, err)
	assert.True(t, created.Equal(got), "got %s", got)

	_, err = store.CreatedAt(ctx, votes.Ref{Kind: votes.KindArticle, ID: 404})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteArticleCascadesVotes(t *testing.T) {
	db := testutil.NewDB(t)
	store := NewStore(db)
	ledger := votes.NewLedger(db, store)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	doomed := testutil.CreateArticle(t, db, alice.ID, "Doomed", time.Now())
	kept := testutil.CreateArticle(t, db, alice.ID, "Kept", time.Now())
	comment := testutil.CreateComment(t, db, bob.ID, doomed.ID, "hmm")
	fc := testutil.CreateFactCheck(t, db, bob.ID, doomed.ID, models.LevelMisleading)

	for _, ref := range []votes.Ref{
		{Kind: votes.KindArticle, ID: doomed.ID},
		{Kind: votes.KindComment, ID: comment.ID},
		{Kind: votes.KindFactCheck, ID: fc.ID},
		{Kind: votes.KindArticle, ID: kept.ID},
	} {
		_, err := ledger.CastVote(ctx, bob.ID, ref, votes.Like)
		require.NoError(t, err)
	}

	require.NoError(t, store.DeleteCascade(ctx, votes.Ref{Kind: votes.KindArticle, ID: doomed.ID}))

	var remaining []votes.Vote
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, votes.Ref{Kind: votes.KindArticle, ID: kept.ID}, remaining[0].Ref())

	var comments, checks int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	require.NoError(t, db.Model(&models.FactCheck{}).Count(&checks).Error)
	assert.Zero(t, comments)
	assert.Zero(t, checks)

	_, err := store.GetArticle(ctx, doomed.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = ledger.CastVote(ctx, alice.ID, votes.Ref{Kind: votes.KindArticle, ID: doomed.ID}, votes.Like)
	assert.ErrorIs(t, err, votes.ErrTargetNotFound)
}

func TestDeleteCommentAndFactCheckCascadeVotes(t *testing.T) {
	db := testutil.NewDB(t)
	store := NewStore(db)
	ledger := votes.NewLedger(db, store)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice")
	article := testutil.CreateArticle(t, db, alice.ID, "Story", time.Now())
	comment := testutil.CreateComment(t, db, alice.ID, article.ID, "c")
	fc := testutil.CreateFactCheck(t, db, alice.ID, article.ID, models.LevelUnverified)

	commentRef := votes.Ref{Kind: votes.KindComment, ID: comment.ID}
	fcRef := votes.Ref{Kind: votes.KindFactCheck, ID: fc.ID}
	articleRef := votes.Ref{Kind: votes.KindArticle, ID: article.ID}
	for _, ref := range []votes.Ref{commentRef, fcRef, articleRef} {
		_, err := ledger.CastVote(ctx, alice.ID, ref, votes.Dislike)
		require.NoError(t, err)
	}

	require.NoError(t, store.DeleteCascade(ctx, commentRef))
	require.NoError(t, store.DeleteCascade(ctx, fcRef))

	n, err := ledger.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.ErrorIs(t, store.DeleteCascade(ctx, commentRef), ErrNotFound)
	assert.ErrorIs(t, store.DeleteCascade(ctx, fcRef), ErrNotFound)
	assert.ErrorIs(t, store.DeleteCascade(ctx, votes.Ref{Kind: "Poll", ID: 1}), votes.ErrInvalidTargetKind)
}

func TestCreateCommentRequiresArticle(t *testing.T) {
	db := testutil.NewDB(t)
	store := NewStore(db)
	user := testutil.CreateUser(t, db, "alice")

	err := store.CreateComment(context.Background(), &models.Comment{Content: "orphan", UserID: &user.ID, ArticleID: 99})
	assert.ErrorIs(t, err, ErrNotFound)

	err = store.CreateFactCheck(context.Background(), &models.FactCheck{Level: 2, Content: "x", UserID: &user.ID, ArticleID: 99})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFactCheckLevels(t *testing.T) {
	db := testutil.NewDB(t)
	store := NewStore(db)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "alice")
	article := testutil.CreateArticle(t, db, user.ID, "Claims", time.Now())

	err := store.CreateFactCheck(ctx, &models.FactCheck{Level: 5, Content: "x", UserID: &user.ID, ArticleID: article.ID})
	assert.ErrorIs(t, err, ErrInvalidLevel)

	fc := models.FactCheck{Level: models.LevelSomeInaccuracy, Content: "partly wrong", UserID: &user.ID, ArticleID: article.ID}
	require.NoError(t, store.CreateFactCheck(ctx, &fc))
	assert.Equal(t, "Some Inaccuracy", fc.LevelLabel)

	got, err := store.GetFactCheck(ctx, fc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Some Inaccuracy", got.LevelLabel)

	level := 4
	updated, err := store.UpdateFactCheck(ctx, fc.ID, models.UpdateFactCheckRequest{Level: &level})
	require.NoError(t, err)
	assert.Equal(t, models.LevelVerified, updated.Level)
	assert.Equal(t, "Verified", updated.LevelLabel)
	assert.Equal(t, "partly wrong", updated.Content)

	bad := -1
	_, err = store.UpdateFactCheck(ctx, fc.ID, models.UpdateFactCheckRequest{Level: &bad})
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func TestUpdateArticleKeepsUnsetFields(t *testing.T) {
	db := testutil.NewDB(t)
	store := NewStore(db)
	user := testutil.CreateUser(t, db, "alice")
	article := testutil.CreateArticle(t, db, user.ID, "Old title", time.Now())

	got, err := store.UpdateArticle(context.Background(), article.ID, models.UpdateArticleRequest{Title: "New title"})
	require.NoError(t, err)
	assert.Equal(t, "New title", got.Title)
	assert.Equal(t, article.URL, got.URL)

	_, err = store.UpdateArticle(context.Background(), 999, models.UpdateArticleRequest{Title: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListArticlesBySubmitter(t *testing.T) {
	db := testutil.NewDB(t)
	store := NewStore(db)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	base := time.Now().Add(-time.Hour)
	older := testutil.CreateArticle(t, db, alice.ID, "One", base)
	newer := testutil.CreateArticle(t, db, alice.ID, "Two", base.Add(time.Minute))
	testutil.CreateArticle(t, db, bob.ID, "Three", base)

	got, err := store.ListArticlesBySubmitter(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newer.ID, got[0].ID)
	assert.Equal(t, older.ID, got[1].ID)
}
