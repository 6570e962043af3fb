package routes

import (
	"sugary-backend/handlers/billing"
	"sugary-backend/middleware"

	"github.com/gin-gonic/gin"
)

func BillingRoutes(r *gin.Engine) {
	billingRoutes := r.Group("/billing")
	billingRoutes.Use(middleware.JWTAuth())
	{
		billingRoutes.POST("/checkout", billing.CreateCheckoutSession)
		billingRoutes.GET("/subscription", billing.GetMySubscription)
		billingRoutes.DELETE("/subscription", billing.CancelSubscription)
	}
}
