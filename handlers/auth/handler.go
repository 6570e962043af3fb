package auth

import (
	"errors"
	"net/http"
	"strings"

	"sugary-backend/db"
	"sugary-backend/models"
	"sugary-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// @Summary Create a new account
// @Description Register a company owner account with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param user body models.UserCreate true "Account information"
// @Success 201 {object} map[string]interface{} "message: Account created successfully, email: account email"
// @Failure 400 {object} map[string]interface{} "error: Invalid input"
// @Failure 409 {object} map[string]interface{} "error: Email already used"
// @Failure 500 {object} map[string]interface{} "error: Error message"
// @Router /register [post]
func Register(c *gin.Context) {
	var input models.UserCreate

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid input: " + err.Error(),
		})
		return
	}

	if !utils.ValidateEmail(input.Email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid email format",
		})
		return
	}

	if len(input.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "The password must contain at least 6 characters",
		})
		return
	}

	hasLower := strings.ContainsAny(input.Password, "abcdefghijklmnopqrstuvwxyz")
	hasUpper := strings.ContainsAny(input.Password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	hasDigit := strings.ContainsAny(input.Password, "0123456789")

	if !hasLower || !hasUpper || !hasDigit {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "The password must contain at least one lowercase, one uppercase and one digit",
		})
		return
	}

	var existingUser models.User
	if err := db.DB.Where("email = ?", input.Email).First(&existingUser).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": "This email is already used",
		})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Error when checking the email existence",
		})
		return
	}

	passwordHash, err := hashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Error hashing the password"})
		return
	}

	user := models.User{
		Email:    input.Email,
		Password: passwordHash,
	}

	result := db.DB.Create(&user)
	if result.Error != nil {
		utils.LogError(result.Error, "Error creating account in Register")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": result.Error.Error(),
		})
		return
	}

	utils.LogSuccessWithUser(user.ID, "Account created successfully in Register")
	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"email":   user.Email,
	})
}

// @Summary Account login
// @Description Log in with email and password, returns a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param user body models.UserCreate true "Credentials"
// @Success 200 {object} map[string]interface{} "token: JWT"
// @Failure 400 {object} map[string]interface{} "error: Invalid input"
// @Failure 401 {object} map[string]interface{} "error: Wrong credentials"
// @Failure 422 {object} map[string]interface{} "error: JWT not generated"
// @Router /login [post]
func Login(c *gin.Context) {
	var input models.UserCreate

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid input: " + err.Error(),
		})
		return
	}

	if !utils.ValidateEmail(input.Email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid email format",
		})
		return
	}

	var user models.User
	result := db.DB.Where("email = ?", input.Email).First(&user)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Wrong credentials",
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Database error: " + result.Error.Error(),
			})
		}
		return
	}

	if !samePassword(input.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Wrong credentials",
		})
		return
	}

	token, err := utils.GenerateJWT(user, 72)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Error creating the token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
	})
}

func hashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

func samePassword(formPassword string, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(formPassword))
	return err == nil
}
