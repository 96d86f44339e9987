package handler

import (
	"net/http"

	"github.com/MyCircle/circle-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) feedGet(c *gin.Context) {
	feed, err := h.services.Feed.Build(c.Request.Context())
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, feed)
}
