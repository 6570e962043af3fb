package chat

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"sugary-backend/apperrors"
	"sugary-backend/db"
	"sugary-backend/handlers/features"
	"sugary-backend/models"
	"sugary-backend/ownership"
	"sugary-backend/utils"

	"github.com/gin-gonic/gin"
)

const (
	maxAuthorNameLength = 80
	maxBodyLength       = 1000
)

var (
	// SSE clients per feature ID
	clients      = make(map[string]map[chan string]bool)
	clientsMutex sync.RWMutex
)

type SSEMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// @Summary List chat messages
// @Description Return the discussion thread of a publicly visible feature
// @Tags chat
// @Produce json
// @Param companySlug path string true "Company slug"
// @Param featureSlug path string true "Feature slug"
// @Success 200 {object} map[string]interface{} "messages"
// @Failure 404 {object} map[string]string "error: Feature not found"
// @Router /roadmap/{companySlug}/{featureSlug}/chat [get]
func GetMessages(c *gin.Context) {
	feature, _, err := features.ResolvePublicFeature(c.Param("companySlug"), c.Param("featureSlug"))
	if err != nil {
		c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	var messages []models.ChatMessage
	if err := db.DB.Where("feature_id = ?", feature.ID).Order("created_at ASC").Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// @Summary Chat SSE stream
// @Description Receive new chat messages for a feature in real time
// @Tags chat
// @Param companySlug path string true "Company slug"
// @Param featureSlug path string true "Feature slug"
// @Success 200 {object} map[string]string "Connected to SSE"
// @Failure 404 {object} map[string]string "error: Feature not found"
// @Router /roadmap/{companySlug}/{featureSlug}/chat/sse [get]
func HandleSSE(c *gin.Context) {
	feature, _, err := features.ResolvePublicFeature(c.Param("companySlug"), c.Param("featureSlug"))
	if err != nil {
		c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
		return
	}
	featureID := feature.ID

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("Transfer-Encoding", "chunked")
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")

	messageChan := make(chan string)

	clientsMutex.Lock()
	if clients[featureID] == nil {
		clients[featureID] = make(map[chan string]bool)
	}
	clients[featureID][messageChan] = true
	clientsMutex.Unlock()

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Streaming not supported"})
		return
	}

	c.Writer.Write([]byte("event: connected\ndata: {\"status\":\"connected\"}\n\n"))
	flusher.Flush()

	// the request context is canceled when the client disconnects
	ctx := c.Request.Context()

	defer func() {
		clientsMutex.Lock()
		delete(clients[featureID], messageChan)
		if len(clients[featureID]) == 0 {
			delete(clients, featureID)
		}
		clientsMutex.Unlock()
		close(messageChan)
	}()

	for {
		select {
		case message, ok := <-messageChan:
			if !ok {
				return
			}
			c.Writer.Write([]byte(message))
			flusher.Flush()
		case <-ctx.Done():
			return
		case <-time.After(30 * time.Second):
			c.Writer.Write([]byte("event: ping\ndata: {}\n\n"))
			flusher.Flush()
		}
	}
}

// @Summary Post a chat message
// @Description Post a public message on a feature's discussion thread; founder badge is applied when the sender owns the company
// @Tags chat
// @Accept json
// @Produce json
// @Param companySlug path string true "Company slug"
// @Param featureSlug path string true "Feature slug"
// @Param message body models.ChatMessageCreate true "Message content"
// @Success 201 {object} models.ChatMessage
// @Failure 400 {object} map[string]string "error: Invalid message"
// @Failure 404 {object} map[string]string "error: Feature not found"
// @Router /roadmap/{companySlug}/{featureSlug}/chat [post]
func CreateMessage(c *gin.Context) {
	feature, _, err := features.ResolvePublicFeature(c.Param("companySlug"), c.Param("featureSlug"))
	if err != nil {
		c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	var input models.ChatMessageCreate
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message data"})
		return
	}

	if len(input.AuthorName) == 0 || len(input.AuthorName) > maxAuthorNameLength {
		verr := apperrors.Validation(fmt.Sprintf("Author name must be between 1 and %d characters", maxAuthorNameLength))
		c.JSON(apperrors.Status(verr), gin.H{"error": verr.Error()})
		return
	}
	if len(input.Body) == 0 || len(input.Body) > maxBodyLength {
		verr := apperrors.Validation(fmt.Sprintf("Message must be between 1 and %d characters", maxBodyLength))
		c.JSON(apperrors.Status(verr), gin.H{"error": verr.Error()})
		return
	}
	if input.AuthorEmail != "" && !utils.ValidateEmail(input.AuthorEmail) {
		verr := apperrors.Validation("Invalid email format")
		c.JSON(apperrors.Status(verr), gin.H{"error": verr.Error()})
		return
	}

	// founder badge is a snapshot of ownership at send time; later
	// ownership transfers do not rewrite history
	isFounder := false
	if userID, exists := c.Get("user_id"); exists {
		isFounder = ownership.IsOwner(userID.(string), feature)
	}

	message := models.ChatMessage{
		FeatureID:   feature.ID,
		AuthorName:  input.AuthorName,
		AuthorEmail: input.AuthorEmail,
		Body:        input.Body,
		IsFounder:   isFounder,
	}

	if err := db.DB.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save message"})
		return
	}

	broadcastMessage(feature.ID, message)

	c.JSON(http.StatusCreated, message)
}

// push a new message to every SSE client of the feature
func broadcastMessage(featureID string, message models.ChatMessage) {
	msg := SSEMessage{
		Type:    "new_message",
		Payload: message,
	}

	jsonData, err := json.Marshal(msg)
	if err != nil {
		utils.LogError(err, "Error marshaling SSE message")
		return
	}

	sseData := fmt.Sprintf("event: message\ndata: %s\n\n", jsonData)

	clientsMutex.RLock()
	defer clientsMutex.RUnlock()

	if _, exists := clients[featureID]; !exists {
		return
	}

	for clientChan := range clients[featureID] {
		select {
		case clientChan <- sseData:
		default:
			utils.LogError(nil, "Error broadcasting message: channel full or closed")
		}
	}
}
