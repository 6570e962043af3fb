package upvotes

import (
	"errors"
	"net/http"

	"sugary-backend/apperrors"
	"sugary-backend/db"
	"sugary-backend/handlers/features"
	"sugary-backend/models"
	"sugary-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Toggle an upvote
// @Description Add or remove an anonymous upvote keyed by the client session identifier
// @Tags roadmap
// @Accept json
// @Produce json
// @Param companySlug path string true "Company slug"
// @Param featureSlug path string true "Feature slug"
// @Param upvote body models.UpvoteCreate true "Upvote information"
// @Success 200 {object} map[string]string "message: Upvote added or removed"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 404 {object} map[string]string "error: Feature not found"
// @Failure 409 {object} map[string]string "error: Already upvoted with this email"
// @Router /roadmap/{companySlug}/{featureSlug}/upvote [post]
func ToggleUpvote(c *gin.Context) {
	feature, _, err := features.ResolvePublicFeature(c.Param("companySlug"), c.Param("featureSlug"))
	if err != nil {
		c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	var input models.UpvoteCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if input.Email != "" && !utils.ValidateEmail(input.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		return
	}

	var existing models.Upvote
	err = db.DB.Where("feature_id = ? AND session_id = ?", feature.ID, input.SessionID).First(&existing).Error
	if err == nil {
		if err := db.DB.Delete(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error removing upvote"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Upvote removed successfully"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking upvote"})
		return
	}

	// one vote per email per feature, on top of the per-session rule
	if input.Email != "" {
		var byEmail models.Upvote
		if err := db.DB.Where("feature_id = ? AND email = ?", feature.ID, input.Email).First(&byEmail).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "This email has already upvoted this feature"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking upvote"})
			return
		}
	}

	upvote := models.Upvote{
		FeatureID:    feature.ID,
		SessionID:    input.SessionID,
		Email:        input.Email,
		NotifyOnShip: input.NotifyOnShip,
	}

	if err := db.DB.Create(&upvote).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Already upvoted"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating upvote"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Upvote added successfully"})
}
