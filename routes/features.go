package routes

import (
	"sugary-backend/handlers/features"
	"sugary-backend/handlers/features/chat"
	"sugary-backend/handlers/features/upvotes"
	"sugary-backend/handlers/subscribers"
	"sugary-backend/middleware"

	"github.com/gin-gonic/gin"
)

func FeaturesRoutes(r *gin.Engine) {
	// public roadmap surfaces
	r.GET("/roadmap/:companySlug", features.GetPublicRoadmap)
	r.GET("/roadmap/:companySlug/:featureSlug", features.GetPublicFeature)
	r.POST("/roadmap/:companySlug/:featureSlug/upvote", upvotes.ToggleUpvote)
	r.GET("/roadmap/:companySlug/:featureSlug/chat", chat.GetMessages)
	r.GET("/roadmap/:companySlug/:featureSlug/chat/sse", chat.HandleSSE)
	r.POST("/roadmap/:companySlug/:featureSlug/chat", middleware.OptionalAuth(), chat.CreateMessage)

	// owner dashboard
	featuresRoutes := r.Group("/features")
	featuresRoutes.Use(middleware.JWTAuth())
	{
		featuresRoutes.POST("", features.CreateFeature)
		featuresRoutes.GET("", features.GetMyFeatures)
		featuresRoutes.PATCH("/:id/status", features.UpdateFeatureStatus)
		featuresRoutes.POST("/:id/updates", features.SendFeatureUpdate)
		featuresRoutes.GET("/:id/updates", features.ListFeatureUpdates)
		featuresRoutes.GET("/:id/subscribers", subscribers.ListSubscribers)
	}
}
