package ping

import (
	"sugary-backend/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct{}

func New() *Handler {
	return &Handler{}
}

// HandlePing answers the health check
// @Summary Ping test
// @Description Health check endpoint that answers pong
// @Tags test
// @Produce json
// @Success 200 {object} utils.Response
// @Router /ping [get]
func (h *Handler) HandlePing(c *gin.Context) {
	utils.SendSuccess(c, 200, "Ping successful", gin.H{
		"message": "pong",
	})
}
