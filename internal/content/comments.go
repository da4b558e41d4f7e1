package content

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/emilythestrangee/factfeed/backend/internal/models"
	"github.com/emilythestrangee/factfeed/backend/internal/votes"
)

// CreateComment stores a comment on an existing article.
func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := s.TargetExists(tx, votes.Ref{Kind: votes.KindArticle, ID: comment.ArticleID})
		if err != nil {
			return fmt.Errorf("check article: %w", err)
		}
		if !ok {
			return fmt.Errorf("article %d: %w", comment.ArticleID, ErrNotFound)
		}
		if err := tx.Create(comment).Error; err != nil {
			return fmt.Errorf("create comment: %w", err)
		}
		return nil
	})
}

func (s *Store) GetComment(ctx context.Context, id int) (models.Comment, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		return models.Comment{}, notFound(err, "comment", id)
	}
	return comment, nil
}

// ListComments returns the comments on an article, newest first.
func (s *Store) ListComments(ctx context.Context, articleID int) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("article_id = ?", articleID).
		Order("created_at desc, id desc").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (s *Store) UpdateComment(ctx context.Context, id int, req models.UpdateCommentRequest) (models.Comment, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return models.Comment{}, notFound(err, "comment", id)
	}
	comment.Content = req.Content
	if err := s.db.WithContext(ctx).Save(&comment).Error; err != nil {
		return models.Comment{}, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

// DeleteComment removes a comment and the votes on it.
func (s *Store) DeleteComment(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Comment{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete comment: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("comment %d: %w", id, ErrNotFound)
		}
		_, err := votes.PurgeTargets(tx, votes.KindComment, []int{id})
		return err
	})
}
