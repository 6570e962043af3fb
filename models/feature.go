package models

import (
	"time"
)

type FeatureStatus string

const (
	FeatureTodo       FeatureStatus = "todo"
	FeatureRequested  FeatureStatus = "requested"
	FeatureInProgress FeatureStatus = "in_progress"
	FeatureDone       FeatureStatus = "done"
	FeatureCancelled  FeatureStatus = "cancelled"
)

// PublicStatuses are the only statuses exposed on public surfaces.
// todo and cancelled stay owner-only.
var PublicStatuses = []FeatureStatus{FeatureRequested, FeatureInProgress, FeatureDone}

func (s FeatureStatus) IsValid() bool {
	switch s {
	case FeatureTodo, FeatureRequested, FeatureInProgress, FeatureDone, FeatureCancelled:
		return true
	}
	return false
}

type Feature struct {
	ID          string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CompanyID   string        `json:"companyId" gorm:"column:company_id;type:uuid;not null;uniqueIndex:idx_features_company_slug,priority:1"`
	Title       string        `json:"title" gorm:"not null"`
	Slug        string        `json:"slug" gorm:"not null;uniqueIndex:idx_features_company_slug,priority:2"`
	Description string        `json:"description"`
	Status      FeatureStatus `json:"status" gorm:"type:varchar(20);default:'todo'"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// FeatureCreate leaves the slug optional: when absent it is derived
// from the title.
type FeatureCreate struct {
	Title       string `json:"title" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type FeatureStatusUpdate struct {
	Status FeatureStatus `json:"status" binding:"required"`
}
