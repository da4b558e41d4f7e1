package models

import "time"

type Article struct {
	ID            int         `gorm:"primaryKey" json:"id"`
	Title         string      `gorm:"type:varchar(150);not null" json:"title"`
	URL           string      `gorm:"type:varchar(255);not null" json:"url"`
	ImageURL      string      `gorm:"type:varchar(255)" json:"image_url"`
	SubmittedByID *int        `gorm:"index" json:"submitted_by_id"`
	SubmittedBy   *User       `gorm:"foreignKey:SubmittedByID;constraint:OnDelete:SET NULL" json:"submitted_by,omitempty"`
	Comments      []Comment   `gorm:"foreignKey:ArticleID" json:"comments,omitempty"`
	FactChecks    []FactCheck `gorm:"foreignKey:ArticleID" json:"fact_checks,omitempty"`
	CreatedAt     time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// OwnedBy reports whether userID submitted the article.
func (a Article) OwnedBy(userID int) bool {
	return a.SubmittedByID != nil && *a.SubmittedByID == userID
}

type CreateArticleRequest struct {
	Title    string `json:"title" binding:"required,max=150"`
	URL      string `json:"url" binding:"required,url,max=255"`
	ImageURL string `json:"image_url" binding:"omitempty,url,max=255"`
}

// UpdateArticleRequest carries the fields to change; empty fields are left alone.
type UpdateArticleRequest struct {
	Title    string `json:"title" binding:"omitempty,max=150"`
	URL      string `json:"url" binding:"omitempty,url,max=255"`
	ImageURL string `json:"image_url" binding:"omitempty,url,max=255"`
}
