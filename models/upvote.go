package models

import (
	"time"
)

// Upvote is an anonymous roadmap vote keyed by a client session identifier,
// with an optional email for ship notifications.
type Upvote struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	FeatureID    string    `json:"featureId" gorm:"column:feature_id;type:uuid;not null;uniqueIndex:idx_upvotes_feature_session,priority:1"`
	SessionID    string    `json:"sessionId" gorm:"column:session_id;not null;uniqueIndex:idx_upvotes_feature_session,priority:2"`
	Email        string    `json:"email"`
	NotifyOnShip bool      `json:"notifyOnShip" gorm:"column:notify_on_ship;default:false"`
	CreatedAt    time.Time `json:"createdAt"`
}

type UpvoteCreate struct {
	SessionID    string `json:"sessionId" binding:"required"`
	Email        string `json:"email"`
	NotifyOnShip bool   `json:"notifyOnShip"`
}
