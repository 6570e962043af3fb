package models

import (
	"time"
)

// User is a company owner account
type User struct {
	ID               string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Email            string    `json:"email" gorm:"uniqueIndex" binding:"required,email"`
	Password         string    `json:"-"`
	StripeCustomerId string    `json:"stripeCustomerId"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type UserCreate struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}
