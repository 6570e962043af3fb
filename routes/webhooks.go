package routes

import (
	"sugary-backend/handlers/billing"
	"sugary-backend/handlers/emails"

	"github.com/gin-gonic/gin"
)

func WebhooksRoutes(r *gin.Engine) {
	r.POST("/webhooks/stripe", billing.StripeWebhookHandler)
	r.POST("/webhooks/email", emails.DeliveryWebhookHandler)
}
