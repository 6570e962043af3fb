package routes

import (
	"sugary-backend/handlers/subscribers"

	"github.com/gin-gonic/gin"
)

func SubscribersRoutes(r *gin.Engine) {
	r.POST("/waitlist/:companySlug/:featureSlug", subscribers.Subscribe)
	r.GET("/confirm/:token", subscribers.Confirm)
}
