package features

import (
	"errors"
	"net/http"

	"sugary-backend/apperrors"
	"sugary-backend/db"
	"sugary-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ResolvePublicFeature loads a feature by company and feature slug,
// restricted to the publicly visible statuses. todo and cancelled
// resolve as not found.
func ResolvePublicFeature(companySlug string, featureSlug string) (*models.Feature, *models.Company, error) {
	var company models.Company
	if err := db.DB.First(&company, "slug = ?", companySlug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.NotFound("Feature not found")
		}
		return nil, nil, err
	}

	var feature models.Feature
	err := db.DB.Where("company_id = ? AND slug = ? AND status IN ?", company.ID, featureSlug, models.PublicStatuses).
		First(&feature).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.NotFound("Feature not found")
		}
		return nil, nil, err
	}

	return &feature, &company, nil
}

// @Summary Public roadmap
// @Description Return the publicly visible features of a company (requested, in_progress, done)
// @Tags roadmap
// @Produce json
// @Param companySlug path string true "Company slug"
// @Success 200 {object} map[string]interface{} "company and features"
// @Failure 404 {object} map[string]string "error: Company not found"
// @Router /roadmap/{companySlug} [get]
func GetPublicRoadmap(c *gin.Context) {
	var company models.Company
	if err := db.DB.First(&company, "slug = ?", c.Param("companySlug")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		return
	}

	var features []models.Feature
	if err := db.DB.Where("company_id = ? AND status IN ?", company.ID, models.PublicStatuses).
		Order("updated_at DESC").Find(&features).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving features"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"company":  gin.H{"name": company.Name, "slug": company.Slug},
		"features": features,
	})
}

// @Summary Public feature page
// @Description Return one publicly visible feature by company and feature slug
// @Tags roadmap
// @Produce json
// @Param companySlug path string true "Company slug"
// @Param featureSlug path string true "Feature slug"
// @Success 200 {object} models.Feature
// @Failure 404 {object} map[string]string "error: Feature not found"
// @Router /roadmap/{companySlug}/{featureSlug} [get]
func GetPublicFeature(c *gin.Context) {
	feature, company, err := ResolvePublicFeature(c.Param("companySlug"), c.Param("featureSlug"))
	if err != nil {
		c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	var upvoteCount int64
	db.DB.Model(&models.Upvote{}).Where("feature_id = ?", feature.ID).Count(&upvoteCount)

	c.JSON(http.StatusOK, gin.H{
		"company": gin.H{"name": company.Name, "slug": company.Slug},
		"feature": feature,
		"upvotes": upvoteCount,
	})
}
