package routes

import (
	"sugary-backend/handlers/companies"
	"sugary-backend/middleware"

	"github.com/gin-gonic/gin"
)

func CompaniesRoutes(r *gin.Engine) {
	companiesRoutes := r.Group("/companies")
	companiesRoutes.Use(middleware.JWTAuth())
	{
		companiesRoutes.POST("", companies.CreateCompany)
		companiesRoutes.GET("/me", companies.GetMyCompany)
	}
}
