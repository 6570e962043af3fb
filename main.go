package main

import (
	"log"

	"sugary-backend/db"
	_ "sugary-backend/docs"
	"sugary-backend/mailer"
	"sugary-backend/routes"

	"github.com/gin-gonic/gin"
)

// @title Sugary API
// @version 1.0
// @description Feature waitlists, public roadmaps and subscriber updates
// @host localhost:8080
// @BasePath /
// @SecurityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter the JWT with the Bearer prefix: Bearer <JWT>
func main() {

	gin.SetMode(gin.ReleaseMode)

	db.InitDB()

	// background email worker, mutations only enqueue
	mailer.Start()

	r := routes.SetupRouter()

	if err := r.Run(":8080"); err != nil {
		log.Fatal("Error starting the server:", err)
	}
}
