package models

import (
	"time"
)

// ChatMessage is a public message on a feature's discussion thread.
// IsFounder is a snapshot of company ownership at send time.
type ChatMessage struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	FeatureID   string    `json:"featureId" gorm:"column:feature_id;type:uuid;not null;index"`
	AuthorName  string    `json:"authorName" gorm:"column:author_name;not null"`
	AuthorEmail string    `json:"authorEmail" gorm:"column:author_email"`
	Body        string    `json:"body" gorm:"not null"`
	IsFounder   bool      `json:"isFounder" gorm:"column:is_founder;default:false"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ChatMessageCreate struct {
	AuthorName  string `json:"authorName" binding:"required"`
	AuthorEmail string `json:"authorEmail"`
	Body        string `json:"body" binding:"required"`
}
