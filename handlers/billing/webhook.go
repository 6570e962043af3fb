package billing

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"

	"sugary-backend/db"
	"sugary-backend/models"
	"sugary-backend/utils"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// StripeWebhookHandler is the only writer of the Subscription state
// machine: every transition comes from a signature-verified event.
func StripeWebhookHandler(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not read the request body"})
		return
	}

	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	if secret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook secret not configured"})
		return
	}

	sig := c.GetHeader("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, sig, secret)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stripe signature verification failed"})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		handleCheckoutSessionCompleted(c, event)
	case "customer.subscription.created", "customer.subscription.updated":
		handleSubscriptionUpserted(c, event)
	case "customer.subscription.deleted":
		handleSubscriptionDeleted(c, event)
	case "invoice.payment_succeeded":
		handleInvoicePaymentSucceeded(c, event)
	case "invoice.payment_failed":
		handleInvoicePaymentFailed(c, event)
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Event ignored"})
	}
}

func handleCheckoutSessionCompleted(c *gin.Context, event stripe.Event) {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error parsing CheckoutSession"})
		return
	}

	if session.Customer == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Customer missing on the session"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "stripe_customer_id = ?", session.Customer.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No user for this customer"})
		return
	}

	var stripeSubID string
	if session.Subscription != nil {
		stripeSubID = session.Subscription.ID
		var existing models.Subscription
		if err := db.DB.First(&existing, "stripe_subscription_id = ?", stripeSubID).Error; err == nil {
			c.JSON(http.StatusOK, gin.H{"message": "Subscription already recorded"})
			return
		}
	}

	initialStatus := models.SubscriptionIncomplete
	if session.PaymentStatus == "paid" {
		initialStatus = models.SubscriptionActive
	}

	subscription := models.Subscription{
		UserID:               user.ID,
		Status:               initialStatus,
		StripeSubscriptionId: stripeSubID,
	}

	if err := db.DB.Create(&subscription).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating the subscription"})
		return
	}

	utils.LogSuccessWithUser(user.ID, "Subscription recorded via checkout.session.completed")
	c.JSON(http.StatusOK, gin.H{"message": "Subscription recorded"})
}

// handleSubscriptionUpserted maps the Stripe subscription lifecycle
// onto the local record: status, trial window, period end, cancel flag.
func handleSubscriptionUpserted(c *gin.Context, event stripe.Event) {
	var data map[string]interface{}
	if err := json.Unmarshal(event.Data.Raw, &data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error parsing Subscription event"})
		return
	}

	stripeSubID, _ := data["id"].(string)
	if stripeSubID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Subscription ID missing"})
		return
	}

	status, _ := data["status"].(string)
	if !models.SubscriptionStatus(status).IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown subscription status"})
		return
	}

	updates := map[string]interface{}{
		"status": models.SubscriptionStatus(status),
	}
	if v, ok := data["cancel_at_period_end"].(bool); ok {
		updates["cancel_at_period_end"] = v
	}
	if ts := unixField(data, "trial_start"); ts != nil {
		updates["trial_start"] = *ts
	}
	if ts := unixField(data, "trial_end"); ts != nil {
		updates["trial_end"] = *ts
	}
	if ts := unixField(data, "current_period_end"); ts != nil {
		updates["current_period_end"] = *ts
	}

	var subscription models.Subscription
	err := db.DB.First(&subscription, "stripe_subscription_id = ?", stripeSubID).Error
	if err != nil {
		// created event can arrive before checkout.session.completed;
		// attach the record to the customer directly
		customerID, _ := data["customer"].(string)
		var user models.User
		if customerID == "" || db.DB.First(&user, "stripe_customer_id = ?", customerID).Error != nil {
			c.JSON(http.StatusOK, gin.H{"message": "No local subscription or user for this event"})
			return
		}

		subscription = models.Subscription{
			UserID:               user.ID,
			Status:               models.SubscriptionStatus(status),
			StripeSubscriptionId: stripeSubID,
		}
		if err := db.DB.Create(&subscription).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating the subscription"})
			return
		}
	}

	if err := db.DB.Model(&subscription).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating the subscription"})
		return
	}

	utils.LogSuccess("Subscription updated via " + string(event.Type))
	c.JSON(http.StatusOK, gin.H{"message": "Subscription updated"})
}

func handleSubscriptionDeleted(c *gin.Context, event stripe.Event) {
	var data map[string]interface{}
	if err := json.Unmarshal(event.Data.Raw, &data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error parsing Subscription event"})
		return
	}

	stripeSubID, _ := data["id"].(string)
	if stripeSubID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Subscription ID missing"})
		return
	}

	var subscription models.Subscription
	if err := db.DB.First(&subscription, "stripe_subscription_id = ?", stripeSubID).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"message": "No local subscription for this event"})
		return
	}

	db.DB.Model(&subscription).Update("status", models.SubscriptionCanceled)

	c.JSON(http.StatusOK, gin.H{"message": "Subscription canceled"})
}

func handleInvoicePaymentSucceeded(c *gin.Context, event stripe.Event) {
	stripeSubID, ok := invoiceSubscriptionID(c, event)
	if !ok {
		return
	}

	var subscription models.Subscription
	if err := db.DB.First(&subscription, "stripe_subscription_id = ?", stripeSubID).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"message": "No local subscription for this invoice"})
		return
	}

	switch subscription.Status {
	case models.SubscriptionIncomplete, models.SubscriptionPastDue, models.SubscriptionUnpaid:
		db.DB.Model(&subscription).Update("status", models.SubscriptionActive)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment recorded via invoice.payment_succeeded"})
}

func handleInvoicePaymentFailed(c *gin.Context, event stripe.Event) {
	stripeSubID, ok := invoiceSubscriptionID(c, event)
	if !ok {
		return
	}

	var subscription models.Subscription
	if err := db.DB.First(&subscription, "stripe_subscription_id = ?", stripeSubID).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"message": "No local subscription for this invoice"})
		return
	}

	switch subscription.Status {
	case models.SubscriptionActive, models.SubscriptionTrialing, models.SubscriptionIncomplete:
		db.DB.Model(&subscription).Update("status", models.SubscriptionPastDue)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment failure recorded via invoice.payment_failed"})
}

// invoiceSubscriptionID digs the subscription ID out of an invoice
// payload; newer API versions nest it under parent.subscription_details
func invoiceSubscriptionID(c *gin.Context, event stripe.Event) (string, bool) {
	var invoiceData map[string]interface{}
	if err := json.Unmarshal(event.Data.Raw, &invoiceData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error parsing Invoice"})
		return "", false
	}

	var stripeSubID string
	if parent, ok := invoiceData["parent"].(map[string]interface{}); ok {
		if subDetails, ok := parent["subscription_details"].(map[string]interface{}); ok {
			if sub, ok := subDetails["subscription"].(string); ok && sub != "" {
				stripeSubID = sub
			}
		}
	}

	if stripeSubID == "" {
		if v, ok := invoiceData["subscription"]; ok && v != nil {
			if s, ok := v.(string); ok && s != "" {
				stripeSubID = s
			}
		}
	}

	if stripeSubID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription ID"})
		return "", false
	}

	return stripeSubID, true
}

func unixField(data map[string]interface{}, key string) *time.Time {
	if v, ok := data[key].(float64); ok && v > 0 {
		t := time.Unix(int64(v), 0).UTC()
		return &t
	}
	return nil
}
