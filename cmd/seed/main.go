package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/emilythestrangee/factfeed/backend/internal/auth"
	"github.com/emilythestrangee/factfeed/backend/internal/config"
	"github.com/emilythestrangee/factfeed/backend/internal/content"
	"github.com/emilythestrangee/factfeed/backend/internal/database"
	"github.com/emilythestrangee/factfeed/backend/internal/models"
	"github.com/emilythestrangee/factfeed/backend/internal/votes"
)

var users = []struct {
	username string
	password string
}{
	{"user1", "Password1"},
	{"user2", "Password2"},
}

var articles = []struct {
	title string
	url   string
	by    int
	age   time.Duration
}{
	{"First Article by User 1", "https://example.com/article1", 0, 5 * time.Hour},
	{"Second Article by User 2", "https://example.com/article2", 1, 30 * time.Minute},
}

func main() {
	reset := flag.Bool("reset", false, "drop all tables before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	if *reset {
		log.Println("Dropping tables...")
		if err := db.Migrator().DropTable(&votes.Vote{}, &models.FactCheck{}, &models.Comment{}, &models.Article{}, &models.User{}); err != nil {
			log.Fatalf("drop tables: %v", err)
		}
		if err := database.Migrate(db); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	ctx := context.Background()
	store := content.NewStore(db)
	ledger := votes.NewLedger(db, store)

	var userIDs []int
	for _, u := range users {
		hash, err := auth.HashPassword(u.password)
		if err != nil {
			log.Fatalf("hash password for %s: %v", u.username, err)
		}
		user := models.User{Username: u.username, Email: u.username + "@example.com", Password: hash}
		if err := db.WithContext(ctx).Create(&user).Error; err != nil {
			log.Fatalf("create user %s: %v", u.username, err)
		}
		userIDs = append(userIDs, user.ID)
		log.Printf("✓ User #%d: %s", user.ID, user.Username)
	}

	var articleIDs []int
	for _, a := range articles {
		by := userIDs[a.by]
		created := time.Now().UTC().Add(-a.age)
		article := models.Article{Title: a.title, URL: a.url, SubmittedByID: &by, CreatedAt: created, UpdatedAt: created}
		if err := store.CreateArticle(ctx, &article); err != nil {
			log.Fatalf("create article: %v", err)
		}
		articleIDs = append(articleIDs, article.ID)
		log.Printf("✓ Article #%d: %s", article.ID, article.Title)
	}

	c1 := models.Comment{Content: "Great article!", UserID: &userIDs[0], ArticleID: articleIDs[0]}
	c2 := models.Comment{Content: "I disagree with this article.", UserID: &userIDs[1], ArticleID: articleIDs[1]}
	for _, c := range []*models.Comment{&c1, &c2} {
		if err := store.CreateComment(ctx, c); err != nil {
			log.Fatalf("create comment: %v", err)
		}
	}

	f1 := models.FactCheck{
		Level: models.LevelVerified, Content: "Figures match the published report.",
		Source: "https://example.com", FactCheckURL: "https://example.com/fact_check_1",
		UserID: &userIDs[0], ArticleID: articleIDs[0],
	}
	f2 := models.FactCheck{
		Level: models.LevelMisleading, Content: "The headline overstates the findings.",
		Source: "https://example.com", FactCheckURL: "https://example.com/fact_check_2",
		UserID: &userIDs[0], ArticleID: articleIDs[1],
	}
	for _, fc := range []*models.FactCheck{&f1, &f2} {
		if err := store.CreateFactCheck(ctx, fc); err != nil {
			log.Fatalf("create fact check: %v", err)
		}
	}

	casts := []struct {
		voter int
		ref   votes.Ref
		value votes.Value
	}{
		{userIDs[0], votes.Ref{Kind: votes.KindArticle, ID: articleIDs[0]}, votes.Like},
		{userIDs[1], votes.Ref{Kind: votes.KindArticle, ID: articleIDs[0]}, votes.Like},
		{userIDs[0], votes.Ref{Kind: votes.KindArticle, ID: articleIDs[1]}, votes.Dislike},
		{userIDs[1], votes.Ref{Kind: votes.KindComment, ID: c1.ID}, votes.Like},
		{userIDs[1], votes.Ref{Kind: votes.KindFactCheck, ID: f2.ID}, votes.Like},
	}
	for _, v := range casts {
		if _, err := ledger.CastVote(ctx, v.voter, v.ref, v.value); err != nil {
			log.Fatalf("vote on %s: %v", v.ref, err)
		}
	}
	log.Printf("✓ %d votes cast", len(casts))

	log.Println("Database seeded successfully!")
}
