package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/factfeed/backend/internal/config"
	"github.com/emilythestrangee/factfeed/backend/internal/database"
	"github.com/emilythestrangee/factfeed/backend/internal/testutil"
	"github.com/emilythestrangee/factfeed/backend/internal/votes"
)

func TestNewSQLite(t *testing.T) {
	svc, err := database.New(testutil.SQLiteConfig(t))
	require.NoError(t, err)

	stats := svc.Health()
	assert.Equal(t, "up", stats["status"])
	assert.Equal(t, config.DriverSQLite, stats["driver"])
	assert.Equal(t, "0", stats["votes"])

	db := svc.GetDB()
	for _, table := range []string{"users", "articles", "comments", "fact_checks", "votes"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasIndex(&votes.Vote{}, "idx_vote_voter_target"))

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)

	require.NoError(t, svc.Close())
	assert.Equal(t, "down", svc.Health()["status"])
}

func TestUniqueVoteIndexSQLite(t *testing.T) {
	db := testutil.NewDB(t)

	first := votes.Vote{UserID: 1, VotableType: votes.KindArticle, VotableID: 1, Value: 1}
	require.NoError(t, db.Create(&first).Error)

	dup := votes.Vote{UserID: 1, VotableType: votes.KindArticle, VotableID: 1, Value: -1}
	assert.Error(t, db.Create(&dup).Error)

	bad := votes.Vote{UserID: 2, VotableType: votes.KindArticle, VotableID: 1, Value: 3}
	assert.Error(t, db.Create(&bad).Error, "check constraint must reject values outside {-1, 1}")
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := database.New(config.Database{Driver: "mysql"})
	assert.Error(t, err)
}
