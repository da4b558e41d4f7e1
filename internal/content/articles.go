package content

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/emilythestrangee/factfeed/backend/internal/models"
	"github.com/emilythestrangee/factfeed/backend/internal/votes"
)

func (s *Store) CreateArticle(ctx context.Context, article *models.Article) error {
	if err := s.db.WithContext(ctx).Create(article).Error; err != nil {
		return fmt.Errorf("create article: %w", err)
	}
	return nil
}

// GetArticle loads an article with its submitter, comments and fact checks.
func (s *Store) GetArticle(ctx context.Context, id int) (models.Article, error) {
	var article models.Article
	err := s.db.WithContext(ctx).
		Preload("SubmittedBy").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at desc, id desc") }).
		Preload("Comments.User").
		Preload("FactChecks", func(db *gorm.DB) *gorm.DB { return db.Order("created_at desc, id desc") }).
		Preload("FactChecks.User").
		First(&article, id).Error
	if err != nil {
		return models.Article{}, notFound(err, "article", id)
	}
	return article, nil
}

// ListArticles returns every article, newest first.
func (s *Store) ListArticles(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	err := s.db.WithContext(ctx).
		Preload("SubmittedBy").
		Order("created_at desc, id desc").
		Find(&articles).Error
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

// ListArticlesBySubmitter returns the articles userID submitted, newest first.
func (s *Store) ListArticlesBySubmitter(ctx context.Context, userID int) ([]models.Article, error) {
	var articles []models.Article
	err := s.db.WithContext(ctx).
		Where("submitted_by_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&articles).Error
	if err != nil {
		return nil, fmt.Errorf("list articles by submitter: %w", err)
	}
	return articles, nil
}

func (s *Store) UpdateArticle(ctx context.Context, id int, req models.UpdateArticleRequest) (models.Article, error) {
	var article models.Article
	if err := s.db.WithContext(ctx).First(&article, id).Error; err != nil {
		return models.Article{}, notFound(err, "article", id)
	}

	if req.Title != "" {
		article.Title = req.Title
	}
	if req.URL != "" {
		article.URL = req.URL
	}
	if req.ImageURL != "" {
		article.ImageURL = req.ImageURL
	}

	if err := s.db.WithContext(ctx).Save(&article).Error; err != nil {
		return models.Article{}, fmt.Errorf("update article: %w", err)
	}
	return article, nil
}

// DeleteArticle removes an article, its comments and fact checks, and the
// votes on all of them, in one transaction.
func (s *Store) DeleteArticle(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var article models.Article
		if err := tx.Select("id").First(&article, id).Error; err != nil {
			return notFound(err, "article", id)
		}

		var commentIDs, factCheckIDs []int
		if err := tx.Model(&models.Comment{}).Where("article_id = ?", id).Pluck("id", &commentIDs).Error; err != nil {
			return fmt.Errorf("list article comments: %w", err)
		}
		if err := tx.Model(&models.FactCheck{}).Where("article_id = ?", id).Pluck("id", &factCheckIDs).Error; err != nil {
			return fmt.Errorf("list article fact checks: %w", err)
		}

		// Content rows go first so that a vote holding a share lock on one
		// of them has committed before its votes are purged below.
		if err := tx.Where("article_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete article comments: %w", err)
		}
		if err := tx.Where("article_id = ?", id).Delete(&models.FactCheck{}).Error; err != nil {
			return fmt.Errorf("delete article fact checks: %w", err)
		}
		if err := tx.Delete(&models.Article{}, id).Error; err != nil {
			return fmt.Errorf("delete article: %w", err)
		}

		if _, err := votes.PurgeTargets(tx, votes.KindComment, commentIDs); err != nil {
			return err
		}
		if _, err := votes.PurgeTargets(tx, votes.KindFactCheck, factCheckIDs); err != nil {
			return err
		}
		if _, err := votes.PurgeTargets(tx, votes.KindArticle, []int{id}); err != nil {
			return err
		}
		return nil
	})
}
