// Package feed assembles ranked, tallied views of stored content.
package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/emilythestrangee/factfeed/backend/internal/content"
	"github.com/emilythestrangee/factfeed/backend/internal/models"
	"github.com/emilythestrangee/factfeed/backend/internal/ranking"
	"github.com/emilythestrangee/factfeed/backend/internal/votes"
)

const (
	DefaultLimit = 25
	MaxLimit     = 100
)

// Query selects one page of the article feed.
type Query struct {
	Sort   ranking.SortType
	Limit  int
	Offset int
}

func (q Query) normalized() Query {
	if q.Sort == "" {
		q.Sort = ranking.DefaultSort
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q
}

// Stats are the vote figures attached to every feed item.
type Stats struct {
	votes.Tally
	Score   int64   `json:"score"`
	Hotness float64 `json:"hotness"`
	Ago     string  `json:"submitted_ago"`
}

func statsFor(t votes.Tally, created, now time.Time) Stats {
	return Stats{
		Tally:   t,
		Score:   t.NetScore(),
		Hotness: ranking.Hotness(t.NetScore(), now.Sub(created)),
		Ago:     humanize.RelTime(created, now, "ago", "from now"),
	}
}

type ArticleItem struct {
	models.Article
	Stats
}

type CommentItem struct {
	models.Comment
	Stats
}

type FactCheckItem struct {
	models.FactCheck
	Stats
}

// ArticleDetail is an article with its discussion, each piece tallied.
type ArticleDetail struct {
	ArticleItem
	Comments   []CommentItem   `json:"comments"`
	FactChecks []FactCheckItem `json:"fact_checks"`
}

type Page struct {
	Articles []ArticleItem    `json:"articles"`
	Sort     ranking.SortType `json:"sort"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
	Total    int              `json:"total"`
}

type Service struct {
	store  *content.Store
	scores *votes.Aggregator
}

func NewService(store *content.Store, scores *votes.Aggregator) *Service {
	return &Service{store: store, scores: scores}
}

// Articles ranks every article as of now and returns the requested page.
func (s *Service) Articles(ctx context.Context, q Query, now time.Time) (Page, error) {
	q = q.normalized()
	if _, err := ranking.ParseSort(string(q.Sort)); err != nil {
		return Page{}, err
	}

	articles, err := s.store.ListArticles(ctx)
	if err != nil {
		return Page{}, err
	}
	items, err := s.Rank(ctx, articles, q.Sort, now)
	if err != nil {
		return Page{}, err
	}

	page := Page{Sort: q.Sort, Limit: q.Limit, Offset: q.Offset, Total: len(items)}
	page.Articles = paginate(items, q.Offset, q.Limit)
	return page, nil
}

// Rank tallies and orders an arbitrary set of articles.
func (s *Service) Rank(ctx context.Context, articles []models.Article, sort ranking.SortType, now time.Time) ([]ArticleItem, error) {
	items, err := s.articleItems(ctx, articles, now)
	if err != nil {
		return nil, err
	}
	if err := ranking.Sort(items, ArticleItem.entry, sort, now); err != nil {
		return nil, err
	}
	return items, nil
}

// Comments ranks the comments on one article.
func (s *Service) Comments(ctx context.Context, articleID int, sort ranking.SortType, now time.Time) ([]CommentItem, error) {
	ok, err := s.store.Exists(ctx, votes.Ref{Kind: votes.KindArticle, ID: articleID})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("article %d: %w", articleID, content.ErrNotFound)
	}

	comments, err := s.store.ListComments(ctx, articleID)
	if err != nil {
		return nil, err
	}
	items, err := s.commentItems(ctx, comments, now)
	if err != nil {
		return nil, err
	}
	if err := ranking.Sort(items, CommentItem.entry, sort, now); err != nil {
		return nil, err
	}
	return items, nil
}

// Article returns one article with tallied comments (hot order) and fact
// checks (newest first).
func (s *Service) Article(ctx context.Context, id int, now time.Time) (ArticleDetail, error) {
	article, err := s.store.GetArticle(ctx, id)
	if err != nil {
		return ArticleDetail{}, err
	}
	comments, checks := article.Comments, article.FactChecks
	article.Comments, article.FactChecks = nil, nil

	items, err := s.articleItems(ctx, []models.Article{article}, now)
	if err != nil {
		return ArticleDetail{}, err
	}
	detail := ArticleDetail{ArticleItem: items[0]}

	if detail.Comments, err = s.commentItems(ctx, comments, now); err != nil {
		return ArticleDetail{}, err
	}
	if err := ranking.Sort(detail.Comments, CommentItem.entry, ranking.SortHot, now); err != nil {
		return ArticleDetail{}, err
	}

	ids := make([]int, len(checks))
	for i, fc := range checks {
		ids[i] = fc.ID
	}
	tallies, err := s.scores.TallyMany(ctx, votes.KindFactCheck, ids)
	if err != nil {
		return ArticleDetail{}, err
	}
	detail.FactChecks = make([]FactCheckItem, len(checks))
	for i, fc := range checks {
		detail.FactChecks[i] = FactCheckItem{FactCheck: fc, Stats: statsFor(tallies[fc.ID], fc.CreatedAt, now)}
	}
	return detail, nil
}

func (s *Service) articleItems(ctx context.Context, articles []models.Article, now time.Time) ([]ArticleItem, error) {
	ids := make([]int, len(articles))
	for i, a := range articles {
		ids[i] = a.ID
	}
	tallies, err := s.scores.TallyMany(ctx, votes.KindArticle, ids)
	if err != nil {
		return nil, err
	}
	items := make([]ArticleItem, len(articles))
	for i, a := range articles {
		items[i] = ArticleItem{Article: a, Stats: statsFor(tallies[a.ID], a.CreatedAt, now)}
	}
	return items, nil
}

func (s *Service) commentItems(ctx context.Context, comments []models.Comment, now time.Time) ([]CommentItem, error) {
	ids := make([]int, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}
	tallies, err := s.scores.TallyMany(ctx, votes.KindComment, ids)
	if err != nil {
		return nil, err
	}
	items := make([]CommentItem, len(comments))
	for i, c := range comments {
		items[i] = CommentItem{Comment: c, Stats: statsFor(tallies[c.ID], c.CreatedAt, now)}
	}
	return items, nil
}

func (a ArticleItem) entry() ranking.Entry {
	return ranking.Entry{ID: a.ID, NetScore: a.Score, CreatedAt: a.CreatedAt}
}

func (c CommentItem) entry() ranking.Entry {
	return ranking.Entry{ID: c.ID, NetScore: c.Score, CreatedAt: c.CreatedAt}
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
