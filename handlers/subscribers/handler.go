package subscribers

import (
	"errors"
	"net/http"
	"time"

	"sugary-backend/apperrors"
	"sugary-backend/db"
	"sugary-backend/mailer"
	"sugary-backend/models"
	"sugary-backend/ownership"
	"sugary-backend/plan"
	"sugary-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// @Summary Join a feature waitlist
// @Description Register an email on a feature waitlist; a confirmation email is sent before the subscription counts
// @Tags subscribers
// @Accept json
// @Produce json
// @Param companySlug path string true "Company slug"
// @Param featureSlug path string true "Feature slug"
// @Param subscriber body models.SubscriberCreate true "Subscriber information"
// @Success 201 {object} map[string]string "id: subscriber ID"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 403 {object} map[string]string "error: Subscriber limit reached"
// @Failure 404 {object} map[string]string "error: Feature not found"
// @Failure 409 {object} map[string]string "error: Already subscribed"
// @Router /waitlist/{companySlug}/{featureSlug} [post]
func Subscribe(c *gin.Context) {
	var input models.SubscriberCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if !utils.ValidateEmail(input.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		return
	}

	var company models.Company
	if err := db.DB.First(&company, "slug = ?", c.Param("companySlug")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Feature not found"})
		return
	}

	var feature models.Feature
	if err := db.DB.Where("company_id = ? AND slug = ?", company.ID, c.Param("featureSlug")).First(&feature).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Feature not found"})
		return
	}

	// re-subscription is never allowed, pending or confirmed alike
	var existing models.Subscriber
	if err := db.DB.Where("feature_id = ? AND email = ?", feature.ID, input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "This email is already subscribed to this feature"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking existing subscription"})
		return
	}

	ownerPlan, err := ownership.PlanForOwner(company.OwnerID)
	if err != nil {
		utils.LogError(err, "Error resolving the plan in Subscribe")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error resolving the billing plan"})
		return
	}
	if ownerPlan == plan.Free {
		// both quota checks run against fresh counts with no reservation
		// in between; two concurrent signups can jointly overshoot by
		// one, which is accepted
		var featureCount int64
		if err := db.DB.Model(&models.Subscriber{}).Where("feature_id = ?", feature.ID).Count(&featureCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting subscribers"})
			return
		}
		if !plan.CanAddSubscriber(featureCount, ownerPlan) {
			c.JSON(http.StatusForbidden, gin.H{"error": "This waitlist is full"})
			return
		}

		var totalCount int64
		if err := db.DB.Model(&models.Subscriber{}).
			Joins("JOIN features ON features.id = subscribers.feature_id").
			Where("features.company_id = ?", company.ID).
			Count(&totalCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting subscribers"})
			return
		}
		if !plan.CanAddTotalSubscriber(totalCount, ownerPlan) {
			c.JSON(http.StatusForbidden, gin.H{"error": "This waitlist is full"})
			return
		}
	}

	token := uuid.NewString()
	subscriber := models.Subscriber{
		FeatureID:         feature.ID,
		Email:             input.Email,
		Context:           input.Context,
		Confirmed:         false,
		ConfirmationToken: &token,
		SubscribedAt:      time.Now(),
	}

	if err := db.DB.Create(&subscriber).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "This email is already subscribed to this feature"})
			return
		}
		utils.LogError(err, "Error creating subscriber in Subscribe")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating subscription"})
		return
	}

	// fire and forget: the subscription stands even if this email is
	// never delivered
	mailer.SubscriberConfirmation(mailer.SubscriberConfirmationData{
		Email:        subscriber.Email,
		FeatureTitle: feature.Title,
		CompanyName:  company.Name,
		Token:        token,
	})

	utils.LogSuccess("Subscriber created in Subscribe")
	c.JSON(http.StatusCreated, gin.H{
		"message": "Check your inbox to confirm your subscription",
		"id":      subscriber.ID,
	})
}

// @Summary Confirm a subscription
// @Description Consume a confirmation token; the token is single-use
// @Tags subscribers
// @Produce json
// @Param token path string true "Confirmation token"
// @Success 200 {object} map[string]string "message: Subscription confirmed"
// @Failure 410 {object} map[string]string "error: Invalid or already used confirmation link"
// @Router /confirm/{token} [get]
func Confirm(c *gin.Context) {
	token := c.Param("token")

	// a consumed token no longer matches anything because the column is
	// cleared on first use, so replays land here too
	var subscriber models.Subscriber
	if err := db.DB.Where("confirmation_token = ?", token).First(&subscriber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = apperrors.InvalidToken("Invalid or already used confirmation link")
			c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error looking up the confirmation token"})
		return
	}

	// confirm and clear the token in the same update
	if err := db.DB.Model(&subscriber).Updates(map[string]interface{}{
		"confirmed":          true,
		"confirmation_token": nil,
	}).Error; err != nil {
		utils.LogError(err, "Error confirming subscriber in Confirm")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error confirming the subscription"})
		return
	}

	utils.LogSuccess("Subscriber confirmed in Confirm")
	c.JSON(http.StatusOK, gin.H{"message": "Subscription confirmed"})
}

// @Summary Subscriber roster
// @Description Return the subscribers of one of the caller's features
// @Tags subscribers
// @Produce json
// @Param id path string true "Feature ID"
// @Security BearerAuth
// @Success 200 {array} models.Subscriber
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Feature not found or not authorized"
// @Router /features/{id}/subscribers [get]
func ListSubscribers(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	owned, err := ownership.ResolveOwnedFeature(userID.(string), c.Param("id"))
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Ownership check failed in ListSubscribers")
		c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	var subs []models.Subscriber
	if err := db.DB.Where("feature_id = ?", owned.Feature.ID).Order("subscribed_at DESC").Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving subscribers"})
		return
	}

	c.JSON(http.StatusOK, subs)
}
