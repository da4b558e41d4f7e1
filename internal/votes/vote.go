package votes

import "time"

// Vote is one voter's like (+1) or dislike (-1) on one target. A retracted
// vote has no row.
type Vote struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	UserID      int       `gorm:"not null;uniqueIndex:idx_vote_voter_target,priority:1" json:"user_id"`
	VotableType Kind      `gorm:"type:varchar(16);not null;uniqueIndex:idx_vote_voter_target,priority:2;index:idx_vote_target,priority:1" json:"votable_type"`
	VotableID   int       `gorm:"not null;uniqueIndex:idx_vote_voter_target,priority:3;index:idx_vote_target,priority:2" json:"votable_id"`
	Value       int       `gorm:"not null;check:chk_votes_value,value IN (-1, 1)" json:"value"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (v Vote) Ref() Ref {
	return Ref{Kind: v.VotableType, ID: v.VotableID}
}
