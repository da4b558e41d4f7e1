package content

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/emilythestrangee/factfeed/backend/internal/models"
	"github.com/emilythestrangee/factfeed/backend/internal/votes"
)

// CreateFactCheck stores a fact check on an existing article.
func (s *Store) CreateFactCheck(ctx context.Context, fc *models.FactCheck) error {
	if !fc.Level.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidLevel, fc.Level)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := s.TargetExists(tx, votes.Ref{Kind: votes.KindArticle, ID: fc.ArticleID})
		if err != nil {
			return fmt.Errorf("check article: %w", err)
		}
		if !ok {
			return fmt.Errorf("article %d: %w", fc.ArticleID, ErrNotFound)
		}
		if err := tx.Create(fc).Error; err != nil {
			return fmt.Errorf("create fact check: %w", err)
		}
		return nil
	})
}

func (s *Store) GetFactCheck(ctx context.Context, id int) (models.FactCheck, error) {
	var fc models.FactCheck
	if err := s.db.WithContext(ctx).Preload("User").First(&fc, id).Error; err != nil {
		return models.FactCheck{}, notFound(err, "fact check", id)
	}
	return fc, nil
}

func (s *Store) UpdateFactCheck(ctx context.Context, id int, req models.UpdateFactCheckRequest) (models.FactCheck, error) {
	var fc models.FactCheck
	if err := s.db.WithContext(ctx).First(&fc, id).Error; err != nil {
		return models.FactCheck{}, notFound(err, "fact check", id)
	}

	if req.Level != nil {
		level := models.FactCheckLevel(*req.Level)
		if !level.Valid() {
			return models.FactCheck{}, fmt.Errorf("%w: %d", ErrInvalidLevel, *req.Level)
		}
		fc.Level = level
	}
	if req.Content != "" {
		fc.Content = req.Content
	}
	if req.Source != "" {
		fc.Source = req.Source
	}
	if req.FactCheckURL != "" {
		fc.FactCheckURL = req.FactCheckURL
	}

	if err := s.db.WithContext(ctx).Save(&fc).Error; err != nil {
		return models.FactCheck{}, fmt.Errorf("update fact check: %w", err)
	}
	return fc, nil
}

// DeleteFactCheck removes a fact check and the votes on it.
func (s *Store) DeleteFactCheck(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.FactCheck{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete fact check: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("fact check %d: %w", id, ErrNotFound)
		}
		_, err := votes.PurgeTargets(tx, votes.KindFactCheck, []int{id})
		return err
	})
}
