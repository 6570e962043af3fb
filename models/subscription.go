package models

import (
	"time"
)

type SubscriptionStatus string

// Mirrors the Stripe subscription status values so webhook payloads map
// straight onto the column.
const (
	SubscriptionTrialing          SubscriptionStatus = "trialing"
	SubscriptionActive            SubscriptionStatus = "active"
	SubscriptionCanceled          SubscriptionStatus = "canceled"
	SubscriptionIncomplete        SubscriptionStatus = "incomplete"
	SubscriptionIncompleteExpired SubscriptionStatus = "incomplete_expired"
	SubscriptionPastDue           SubscriptionStatus = "past_due"
	SubscriptionUnpaid            SubscriptionStatus = "unpaid"
)

func (s SubscriptionStatus) IsValid() bool {
	switch s {
	case SubscriptionTrialing, SubscriptionActive, SubscriptionCanceled,
		SubscriptionIncomplete, SubscriptionIncompleteExpired,
		SubscriptionPastDue, SubscriptionUnpaid:
		return true
	}
	return false
}

// Subscription is the billing plan state for an owner. Only the Stripe
// webhook mutates it.
type Subscription struct {
	ID                   string             `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID               string             `json:"userId" gorm:"column:user_id;type:uuid;not null;index"`
	Status               SubscriptionStatus `json:"status" gorm:"type:varchar(20);default:'incomplete'"`
	StripeSubscriptionId string             `json:"stripeSubscriptionId"`
	TrialStart           *time.Time         `json:"trialStart"`
	TrialEnd             *time.Time         `json:"trialEnd"`
	CurrentPeriodEnd     *time.Time         `json:"currentPeriodEnd"`
	CancelAtPeriodEnd    bool               `json:"cancelAtPeriodEnd" gorm:"default:false"`
	CreatedAt            time.Time          `json:"createdAt"`
	UpdatedAt            time.Time          `json:"updatedAt"`
}
