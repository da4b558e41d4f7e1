package models

import (
	"time"

	"gorm.io/gorm"
)

// FactCheckLevel grades an article from 0 (Unverified) to 4 (Verified).
type FactCheckLevel int

const (
	LevelUnverified FactCheckLevel = iota
	LevelMisleading
	LevelSomeInaccuracy
	LevelMostlyAccurate
	LevelVerified
)

var levelLabels = [...]string{
	LevelUnverified:     "Unverified",
	LevelMisleading:     "Misleading",
	LevelSomeInaccuracy: "Some Inaccuracy",
	LevelMostlyAccurate: "Mostly Accurate",
	LevelVerified:       "Verified",
}

func (l FactCheckLevel) Valid() bool {
	return l >= LevelUnverified && l <= LevelVerified
}

// Label returns the display name for the level, or "" if it is out of range.
func (l FactCheckLevel) Label() string {
	if !l.Valid() {
		return ""
	}
	return levelLabels[l]
}

type FactCheck struct {
	ID           int            `gorm:"primaryKey" json:"id"`
	Level        FactCheckLevel `gorm:"column:fact_check_level;not null;check:chk_fact_checks_level,fact_check_level BETWEEN 0 AND 4" json:"fact_check_level"`
	LevelLabel   string         `gorm:"-" json:"fact_check_level_label"`
	Content      string         `gorm:"type:varchar(2000)" json:"content"`
	Source       string         `gorm:"type:varchar(150)" json:"source"`
	FactCheckURL string         `gorm:"type:varchar(255)" json:"fact_check_url"`
	UserID       *int           `gorm:"index" json:"user_id"`
	User         *User          `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
	ArticleID    int            `gorm:"not null;index" json:"article_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (f *FactCheck) AfterFind(tx *gorm.DB) error {
	f.LevelLabel = f.Level.Label()
	return nil
}

func (f *FactCheck) AfterSave(tx *gorm.DB) error {
	f.LevelLabel = f.Level.Label()
	return nil
}

func (f FactCheck) OwnedBy(userID int) bool {
	return f.UserID != nil && *f.UserID == userID
}

type CreateFactCheckRequest struct {
	Level        *int   `json:"fact_check_level" binding:"required,min=0,max=4"`
	Content      string `json:"content" binding:"required,max=2000"`
	Source       string `json:"source" binding:"omitempty,max=150"`
	FactCheckURL string `json:"fact_check_url" binding:"omitempty,url,max=255"`
}

type UpdateFactCheckRequest struct {
	Level        *int   `json:"fact_check_level" binding:"omitempty,min=0,max=4"`
	Content      string `json:"content" binding:"omitempty,max=2000"`
	Source       string `json:"source" binding:"omitempty,max=150"`
	FactCheckURL string `json:"fact_check_url" binding:"omitempty,url,max=255"`
}
