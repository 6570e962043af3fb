package billing

import (
	"net/http"
	"os"

	"sugary-backend/db"
	"sugary-backend/models"
	"sugary-backend/ownership"
	"sugary-backend/utils"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v82"
	session "github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/customer"
	stripeSubscription "github.com/stripe/stripe-go/v82/subscription"
)

// CreateCheckoutSession starts a Stripe payment for the pro plan.
// Returns the Stripe session ID and URL to use on the frontend.
// @Summary Create a Stripe Checkout session for the pro plan
// @Description Start a Stripe subscription payment for the pro plan. Returns the Stripe session ID and URL.
// @Tags billing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string "sessionId: ID of the Stripe Checkout session, url: Stripe Checkout URL"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: User not found"
// @Failure 409 {object} map[string]string "error: Already subscribed"
// @Failure 500 {object} map[string]string "error: Stripe error or server error"
// @Router /billing/checkout [post]
func CreateCheckoutSession(c *gin.Context) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in CreateCheckoutSession")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "User not found in CreateCheckoutSession")
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var existingSub models.Subscription
	err := db.DB.Where("user_id = ? AND status IN ?",
		user.ID, []models.SubscriptionStatus{models.SubscriptionActive, models.SubscriptionTrialing}).
		First(&existingSub).Error
	if err == nil {
		utils.LogErrorWithUser(userID, nil, "Already an active or trialing subscription in CreateCheckoutSession")
		c.JSON(http.StatusConflict, gin.H{"error": "You already have an active subscription"})
		return
	}

	if user.StripeCustomerId != "" {
		// make sure the customer still exists on Stripe
		_, err := customer.Get(user.StripeCustomerId, nil)
		if err != nil {
			user.StripeCustomerId = ""
		}
	}
	if user.StripeCustomerId == "" {
		custParams := &stripe.CustomerParams{
			Email: stripe.String(user.Email),
		}
		cust, err := customer.New(custParams)
		if err != nil {
			utils.LogErrorWithUser(userID, err, "Error creating the Stripe customer in CreateCheckoutSession")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating the Stripe customer"})
			return
		}
		db.DB.Model(&user).Update("stripe_customer_id", cust.ID)
		user.StripeCustomerId = cust.ID
	}

	siteURL := os.Getenv("SITE_URL")
	params := &stripe.CheckoutSessionParams{
		Customer:           stripe.String(user.StripeCustomerId),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(os.Getenv("STRIPE_PRO_PRICE_ID")),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(siteURL + "/dashboard/billing?success=true"),
		CancelURL:         stripe.String(siteURL + "/dashboard/billing?canceled=true"),
		ClientReferenceID: stripe.String(user.ID),
	}

	s, err := session.New(params)
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating the Stripe session in CreateCheckoutSession")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	utils.LogSuccessWithUser(userID, "Stripe checkout session created in CreateCheckoutSession")
	c.JSON(http.StatusOK, gin.H{"sessionId": s.ID, "url": s.URL})
}

// @Summary Get my subscription
// @Description Return the caller's latest subscription and the resulting plan
// @Tags billing
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "plan and subscription"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /billing/subscription [get]
func GetMySubscription(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ownerPlan, err := ownership.PlanForOwner(userID.(string))
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error resolving the plan in GetMySubscription")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error resolving the billing plan"})
		return
	}

	var subscription models.Subscription
	err = db.DB.Where("user_id = ?", userID).Order("created_at desc").First(&subscription).Error
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"plan": ownerPlan, "subscription": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"plan": ownerPlan, "subscription": subscription})
}

// @Summary Cancel my subscription
// @Description Cancel the Stripe subscription and update its status
// @Tags billing
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Subscription canceled successfully"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Subscription not found"
// @Failure 500 {object} map[string]string "error: Error when canceling the Stripe subscription"
// @Router /billing/subscription [delete]
func CancelSubscription(c *gin.Context) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in CancelSubscription")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var subscription models.Subscription
	err := db.DB.Where("user_id = ? AND status IN ?",
		userID, []models.SubscriptionStatus{models.SubscriptionActive, models.SubscriptionTrialing}).
		First(&subscription).Error
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Subscription not found in CancelSubscription")
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		return
	}

	if subscription.StripeSubscriptionId != "" {
		_, err = stripeSubscription.Cancel(subscription.StripeSubscriptionId, &stripe.SubscriptionCancelParams{
			Prorate: stripe.Bool(false),
		})
		if err != nil {
			utils.LogErrorWithUser(userID, err, "Stripe cancellation error in CancelSubscription")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error when canceling the Stripe subscription"})
			return
		}
	}

	err = db.DB.Model(&subscription).Update("status", models.SubscriptionCanceled).Error
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error updating the status in CancelSubscription")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error when updating the subscription status"})
		return
	}

	utils.LogSuccessWithUser(userID, "Subscription canceled successfully in CancelSubscription")
	c.JSON(http.StatusOK, gin.H{"message": "Subscription canceled successfully"})
}
