package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vitalink-health/vitalink-backend/internal/ai"
	"github.com/vitalink-health/vitalink-backend/internal/logger"
	"github.com/vitalink-health/vitalink-backend/internal/requestdata"
	"github.com/vitalink-health/vitalink-backend/internal/services"
)

type ChatHandler struct {
	log         *logger.Logger
	chatService services.ChatService
}

func NewChatHandler(log *logger.Logger, chatService services.ChatService) *ChatHandler {
	return &ChatHandler{log: log.With("handler", "ChatHandler"), chatService: chatService}
}

// Chat relays the conversation upstream and streams the SSE bytes back
// unmodified. The assistant's reply is reassembled from the deltas as they
// pass through and recorded once the stream ends.
func (ch *ChatHandler) Chat(c *gin.Context) {
	var req struct {
		ConversationID *uuid.UUID   `json:"conversationID,omitempty"`
		Messages       []ai.Message `json:"messages"`
		Region         string       `json:"region,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	stream, err := ch.chatService.StreamChat(c.Request.Context(), services.ChatRelayInput{
		ConversationID: req.ConversationID,
		Messages:       req.Messages,
		Region:         req.Region,
	})
	if err != nil {
		respondGatewayError(c, ch.log, err)
		return
	}
	defer stream.Body.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Conversation-ID", stream.ConversationID.String())
	c.Status(http.StatusOK)

	flusher, canFlush := c.Writer.(http.Flusher)

	parser := &ai.StreamParser{}
	var reply strings.Builder

	buf := make([]byte, 4096)
	for {
		n, readErr := stream.Body.Read(buf)
		if n > 0 {
			if _, writeErr := c.Writer.Write(buf[:n]); writeErr != nil {
				ch.log.Debug("Client disconnected mid-stream", "error", writeErr)
				break
			}
			if canFlush {
				flusher.Flush()
			}
			for _, delta := range parser.Feed(buf[:n]) {
				reply.WriteString(delta)
			}
		}
		if readErr != nil {
			if readErr != io.EOF {
				ch.log.Warn("Upstream stream read failed", "error", readErr)
			}
			break
		}
	}

	if reply.Len() > 0 {
		// The request context dies with the response; recording the reply
		// uses a short independent context so a client disconnect cannot
		// lose the assistant turn.
		recordCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil {
			recordCtx = requestdata.WithRequestData(recordCtx, rd)
		}
		if err := ch.chatService.RecordAssistantReply(recordCtx, stream.ConversationID, reply.String()); err != nil {
			ch.log.Warn("Failed to record assistant reply", "error", err, "conversationID", stream.ConversationID)
		}
	}
}

func (ch *ChatHandler) GetConversations(c *gin.Context) {
	conversations, err := ch.chatService.GetUserConversations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

func (ch *ChatHandler) GetConversationMessages(c *gin.Context) {
	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
		return
	}
	messages, err := ch.chatService.GetConversationMessages(c.Request.Context(), conversationID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (ch *ChatHandler) DeleteConversation(c *gin.Context) {
	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
		return
	}
	if err := ch.chatService.DeleteConversation(c.Request.Context(), conversationID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
