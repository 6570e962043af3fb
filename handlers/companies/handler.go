package companies

import (
	"errors"
	"net/http"

	"sugary-backend/db"
	"sugary-backend/models"
	"sugary-backend/ownership"
	"sugary-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Create a company
// @Description Create the caller's company (one per account)
// @Tags companies
// @Accept json
// @Produce json
// @Param company body models.CompanyCreate true "Company information"
// @Security BearerAuth
// @Success 201 {object} models.Company
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 409 {object} map[string]string "error: Company or slug already exists"
// @Router /companies [post]
func CreateCompany(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var input models.CompanyCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if !utils.ValidateSlug(input.Slug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slug: use lowercase letters, digits and dashes"})
		return
	}

	existing, err := ownership.ResolveCompany(userID.(string))
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error resolving company in CreateCompany")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking existing company"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "You already have a company"})
		return
	}

	var slugTaken models.Company
	if err := db.DB.First(&slugTaken, "slug = ?", input.Slug).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "This slug is already taken"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking the slug"})
		return
	}

	company := models.Company{
		Slug:    input.Slug,
		Name:    input.Name,
		OwnerID: userID.(string),
	}

	if err := db.DB.Create(&company).Error; err != nil {
		// the unique constraints on slug and owner_id catch the race
		// between the check above and this insert
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "This slug is already taken"})
			return
		}
		utils.LogErrorWithUser(userID, err, "Error creating company in CreateCompany")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating company"})
		return
	}

	utils.LogSuccessWithUser(userID, "Company created successfully in CreateCompany")
	c.JSON(http.StatusCreated, company)
}

// @Summary Get my company
// @Description Return the company owned by the caller
// @Tags companies
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Company
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: No company found"
// @Router /companies/me [get]
func GetMyCompany(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	company, err := ownership.ResolveCompany(userID.(string))
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error resolving company in GetMyCompany")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching company"})
		return
	}
	if company == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No company found for this account"})
		return
	}

	c.JSON(http.StatusOK, company)
}
