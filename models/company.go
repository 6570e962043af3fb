package models

import (
	"time"
)

// Company is the tenant root: one per owner, slug globally unique
type Company struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"not null"`
	OwnerID   string    `json:"ownerId" gorm:"column:owner_id;type:uuid;uniqueIndex;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CompanyCreate struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}
