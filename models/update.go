package models

import (
	"time"
)

// Update is an immutable broadcast record. RecipientCount is the number of
// confirmed subscribers targeted at send time, not delivered to.
type Update struct {
	ID             string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	FeatureID      string    `json:"featureId" gorm:"column:feature_id;type:uuid;not null;index"`
	Title          string    `json:"title" gorm:"not null"`
	Content        string    `json:"content" gorm:"not null"`
	RecipientCount int       `json:"recipientCount" gorm:"column:recipient_count"`
	SentAt         time.Time `json:"sentAt" gorm:"column:sent_at"`
}

func (Update) TableName() string {
	return "updates"
}

type UpdateCreate struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}
