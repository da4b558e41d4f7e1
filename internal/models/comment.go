package models

import "time"

type Comment struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:varchar(1000);not null" json:"content"`
	UserID    *int      `gorm:"index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
	ArticleID int       `gorm:"not null;index" json:"article_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c Comment) OwnedBy(userID int) bool {
	return c.UserID != nil && *c.UserID == userID
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,max=1000"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,max=1000"`
}
