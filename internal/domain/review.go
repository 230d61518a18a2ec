package domain

import "time"

type Review struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	BusinessUserID int64     `json:"business_user" gorm:"not null;uniqueIndex:idx_review_reviewer_business;index"`
	ReviewerID     int64     `json:"reviewer" gorm:"not null;uniqueIndex:idx_review_reviewer_business"`
	Rating         int       `json:"rating" gorm:"not null;check:rating BETWEEN 1 AND 5"`
	Description    string    `json:"description" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (r *Review) AccessParties() Parties {
	return Parties{Owner: r.ReviewerID, Business: r.BusinessUserID}
}
