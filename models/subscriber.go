package models

import (
	"time"
)

// Subscriber binds an email address to a feature waitlist.
// The confirmation token is present only while unconfirmed and is
// cleared on first use.
type Subscriber struct {
	ID                string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	FeatureID         string    `json:"featureId" gorm:"column:feature_id;type:uuid;not null;uniqueIndex:idx_subscribers_feature_email,priority:1"`
	Email             string    `json:"email" gorm:"not null;uniqueIndex:idx_subscribers_feature_email,priority:2"`
	Context           string    `json:"context"`
	Confirmed         bool      `json:"confirmed" gorm:"default:false"`
	ConfirmationToken *string   `json:"-" gorm:"uniqueIndex"`
	SubscribedAt      time.Time `json:"subscribedAt"`
}

type SubscriberCreate struct {
	Email   string `json:"email" binding:"required,email"`
	Context string `json:"context"`
}
