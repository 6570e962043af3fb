package features

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
	"gorm.io/gorm"
)

// @Summary Create a feature
// @Description Create a feature waitlist item for the caller's company
// @Tags features
// @Accept json
// @Produce json
// @Param feature body models.FeatureCreate true "Feature information"
// @Security BearerAuth
// @Success 201 {object} models.Feature
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Plan limit reached"
// @Failure 404 {object} map[string]string "error: No company found"
// @Failure 409 {object} map[string]string "error: Slug already used"
// @Router /features [post]
func CreateFeature(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var input models.FeatureCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if input.Slug == "" {
		input.Slug = utils.Slugify(input.Title)
	}
	if !utils.ValidateSlug(input.Slug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slug: use lowercase letters, digits and dashes"})
		return
	}

	company, err := ownership.RequireCompany(userID.(string))
	if err != nil {
		utils.LogErrorWithUser(userID, err, "No company in CreateFeature")
		c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	ownerPlan, err := ownership.PlanForOwner(userID.(string))
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error resolving the plan in CreateFeature")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error resolving the billing plan"})
		return
	}

	var featureCount int64
	if err := db.DB.Model(&models.Feature{}).Where("company_id = ?", company.ID).Count(&featureCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting features"})
		return
	}
	if !plan.CanCreateFeature(featureCount, ownerPlan) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Feature limit reached on the free plan, upgrade to create more"})
		return
	}

	var existing models.Feature
	if err := db.DB.Where("company_id = ? AND slug = ?", company.ID, input.Slug).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A feature with this slug already exists"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking the slug"})
		return
	}

	feature := models.Feature{
		CompanyID:   company.ID,
		Title:       input.Title,
		Slug:        input.Slug,
		Description: input.Description,
		Status:      models.FeatureTodo,
	}

	if err := db.DB.Create(&feature).Error; err != nil {
		// two concurrent creates can both pass the check above; the
		// composite unique index settles it
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "A feature with this slug already exists"})
			return
		}
		utils.LogErrorWithUser(userID, err, "Error creating feature in CreateFeature")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating feature"})
		return
	}

	utils.LogSuccessWithUser(userID, "Feature created successfully in CreateFeature")
	c.JSON(http.StatusCreated, feature)
}

// @Summary List my features
// @Description Return all features of the caller's company, all statuses included
// @Tags features
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Feature
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: No company found"
// @Router /features [get]
func GetMyFeatures(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	company, err := ownership.RequireCompany(userID.(string))
	if err != nil {
		c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	var features []models.Feature
	if err := db.DB.Where("company_id = ?", company.ID).Order("created_at DESC").Find(&features).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving features"})
		return
	}

	c.JSON(http.StatusOK, features)
}

// @Summary Update a feature status
// @Description Move a feature to another kanban column; any status can move to any other
// @Tags features
// @Accept json
// @Produce json
// @Param id path string true "Feature ID"
// @Param status body models.FeatureStatusUpdate true "New status"
// @Security BearerAuth
// @Success 200 {object} models.Feature
// @Failure 400 {object} map[string]string "error: Invalid status"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Feature not found or not authorized"
// @Router /features/{id}/status [patch]
func UpdateFeatureStatus(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var input models.FeatureStatusUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if !input.Status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	owned, err := ownership.ResolveOwnedFeature(userID.(string), c.Param("id"))
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Ownership check failed in UpdateFeatureStatus")
		c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	if err := db.DB.Model(&owned.Feature).Updates(map[string]interface{}{
		"status":     input.Status,
		"updated_at": time.Now(),
	}).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error updating status in UpdateFeatureStatus")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating the feature status"})
		return
	}

	owned.Feature.Status = input.Status
	utils.LogSuccessWithUser(userID, "Feature status updated in UpdateFeatureStatus")
	c.JSON(http.StatusOK, owned.Feature)
}

// @Summary Broadcast an update
// @Description Send an update email to every confirmed subscriber of the feature and record it
// @Tags features
// @Accept json
// @Produce json
// @Param id path string true "Feature ID"
// @Param update body models.UpdateCreate true "Update content"
// @Security BearerAuth
// @Success 201 {object} models.Update
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Monthly update limit reached"
// @Failure 404 {object} map[string]string "error: Feature not found or not authorized"
// @Router /features/{id}/updates [post]
func SendFeatureUpdate(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var input models.UpdateCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	owned, err := ownership.ResolveOwnedFeature(userID.(string), c.Param("id"))
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Ownership check failed in SendFeatureUpdate")
		c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	ownerPlan, err := ownership.PlanForOwner(userID.(string))
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error resolving the plan in SendFeatureUpdate")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error resolving the billing plan"})
		return
	}
	if ownerPlan == plan.Free {
		// monthly ceiling counts broadcasts across all the company's
		// features, not just this one
		now := time.Now().UTC()
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

		var sentThisMonth int64
		if err := db.DB.Model(&models.Update{}).
			Joins("JOIN features ON features.id = updates.feature_id").
			Where("features.company_id = ? AND updates.sent_at >= ?", owned.Company.ID, monthStart).
			Count(&sentThisMonth).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting sent updates"})
			return
		}

		if !plan.CanSendSubscriberUpdate(sentThisMonth, ownerPlan) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Monthly update limit reached on the free plan, upgrade to send more"})
			return
		}
	}

	var recipients []models.Subscriber
	if err := db.DB.Where("feature_id = ? AND confirmed = true", owned.Feature.ID).Find(&recipients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading subscribers"})
		return
	}

	// the record is the source of truth: it is written first and keeps
	// the targeted count even if individual deliveries fail later
	update := models.Update{
		FeatureID:      owned.Feature.ID,
		Title:          input.Title,
		Content:        input.Content,
		RecipientCount: len(recipients),
		SentAt:         time.Now(),
	}

	if err := db.DB.Create(&update).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating update record in SendFeatureUpdate")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error recording the update"})
		return
	}

	for _, recipient := range recipients {
		mailer.FeatureUpdate(mailer.FeatureUpdateData{
			Email:        recipient.Email,
			CompanyName:  owned.Company.Name,
			FeatureTitle: owned.Feature.Title,
			UpdateTitle:  input.Title,
			Content:      input.Content,
		})
	}

	utils.LogSuccessWithUser(userID, "Update broadcast recorded in SendFeatureUpdate")
	c.JSON(http.StatusCreated, update)
}

// @Summary List updates of a feature
// @Description Return the broadcast history of one of the caller's features
// @Tags features
// @Produce json
// @Param id path string true "Feature ID"
// @Security BearerAuth
// @Success 200 {array} models.Update
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Feature not found or not authorized"
// @Router /features/{id}/updates [get]
func ListFeatureUpdates(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	owned, err := ownership.ResolveOwnedFeature(userID.(string), c.Param("id"))
	if err != nil {
		c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	var updates []models.Update
	if err := db.DB.Where("feature_id = ?", owned.Feature.ID).Order("sent_at DESC").Find(&updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving updates"})
		return
	}

	c.JSON(http.StatusOK, updates)
}
