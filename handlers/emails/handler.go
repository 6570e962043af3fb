package emails

import (
	"encoding/json"
	"io"
	"net/http"

	"sugary-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// DeliveryWebhookHandler receives delivery events from the email
// provider. They are logged for observability only, nothing is acted
// upon.
func DeliveryWebhookHandler(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not read the request body"})
		return
	}

	var event map[string]interface{}
	if err := json.Unmarshal(payload, &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event payload"})
		return
	}

	eventType, _ := event["event"].(string)
	recipient, _ := event["recipient"].(string)

	utils.Logger.WithFields(logrus.Fields{
		"source":    "email-provider",
		"event":     eventType,
		"recipient": recipient,
	}).Info("Email delivery event received")

	c.JSON(http.StatusOK, gin.H{"message": "Event received"})
}
