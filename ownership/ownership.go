// Package ownership is the authorization gate for every feature
// mutation: resolve the caller's company and verify that the target
// feature belongs to it before any write happens.
package ownership

import (
	"errors"

	"sugary-backend/apperrors"
	"sugary-backend/db"
	"sugary-backend/models"
	"sugary-backend/plan"

	"gorm.io/gorm"
)

// OwnedFeature is the authorized tuple returned by ResolveOwnedFeature
type OwnedFeature struct {
	Feature models.Feature
	Company models.Company
}

// ResolveCompany returns the company owned by userID, or nil when the
// user has none yet.
func ResolveCompany(userID string) (*models.Company, error) {
	var company models.Company
	err := db.DB.First(&company, "owner_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

// RequireCompany is ResolveCompany for mutations that cannot proceed
// without a tenant context.
func RequireCompany(userID string) (*models.Company, error) {
	company, err := ResolveCompany(userID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperrors.NotFound("No company found for this account")
	}
	return company, nil
}

// ResolveOwnedFeature loads the feature and its company and fails with
// the same message whether the feature is missing or owned by someone
// else.
func ResolveOwnedFeature(userID string, featureID string) (*OwnedFeature, error) {
	var feature models.Feature
	if err := db.DB.First(&feature, "id = ?", featureID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotAuthorized("Feature not found or not authorized")
		}
		return nil, err
	}

	var company models.Company
	if err := db.DB.First(&company, "id = ?", feature.CompanyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotAuthorized("Feature not found or not authorized")
		}
		return nil, err
	}

	if company.OwnerID != userID {
		return nil, apperrors.NotAuthorized("Feature not found or not authorized")
	}

	return &OwnedFeature{Feature: feature, Company: company}, nil
}

// IsOwner reports whether userID owns the company of the given feature.
// Used for the founder badge on chat messages, snapshot at send time.
func IsOwner(userID string, feature *models.Feature) bool {
	if userID == "" {
		return false
	}
	var company models.Company
	if err := db.DB.First(&company, "id = ?", feature.CompanyID).Error; err != nil {
		return false
	}
	return company.OwnerID == userID
}

// PlanForOwner resolves the billing plan of a user from their most
// recent subscription. No subscription at all means Free; any other
// lookup failure is returned so callers do not quietly downgrade a
// paying owner into a quota refusal.
func PlanForOwner(userID string) (plan.Plan, error) {
	var subscription models.Subscription
	err := db.DB.Where("user_id = ?", userID).Order("created_at desc").First(&subscription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return plan.Free, nil
		}
		return plan.Free, err
	}
	return plan.For(subscription.Status), nil
}
