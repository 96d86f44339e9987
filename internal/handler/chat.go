package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/MyCircle/circle-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) chatHistory(c *gin.Context) {
	session := h.getSessionFromRequest(c)
	peerID := strings.TrimSpace(c.Param("peerID"))

	messages, err := h.services.Chat.History(c.Request.Context(), session.UserID, peerID)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, messages)
}

func (h *Handler) chatSend(c *gin.Context) {
	session := h.getSessionFromRequest(c)
	peerID := strings.TrimSpace(c.Param("peerID"))

	var input dto.SendMessageRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	createdMessage, err := h.services.Chat.Send(c.Request.Context(), *session, peerID, input.Text)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, createdMessage)
}

// chatStream opens a live chat session and streams message-list snapshots as
// server-sent events until the client disconnects. The session is released
// when the stream ends.
func (h *Handler) chatStream(c *gin.Context) {
	session := h.getSessionFromRequest(c)
	peerID := strings.TrimSpace(c.Param("peerID"))

	chatSession, err := h.services.Chat.Open(c.Request.Context(), session.UserID, peerID)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}
	defer chatSession.Close()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.SSEvent("messages", chatSession.Messages())
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-chatSession.Updates():
			if !ok {
				return false
			}
			c.SSEvent("messages", snapshot)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
