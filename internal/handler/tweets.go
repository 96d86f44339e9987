package handler

import (
	"net/http"
	"strings"

	"github.com/MyCircle/circle-service/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) tweetsCreate(c *gin.Context) {
	session := h.getSessionFromRequest(c)

	var input dto.CreateTweetRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	createdTweet, err := h.services.Tweet.Create(c.Request.Context(), *session, input)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, *createdTweet)
}

func (h *Handler) tweetsGetAll(c *gin.Context) {
	tweets, err := h.services.Tweet.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, tweets)
}

func (h *Handler) tweetsGetMy(c *gin.Context) {
	session := h.getSessionFromRequest(c)

	tweets, err := h.services.Tweet.FindByUserID(c.Request.Context(), session.UserID)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, tweets)
}

func (h *Handler) tweetsGetByAuthor(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("userID"))

	tweets, err := h.services.Tweet.FindByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, tweets)
}

func (h *Handler) tweetsDelete(c *gin.Context) {
	session := h.getSessionFromRequest(c)

	tweetID, err := uuid.Parse(strings.TrimSpace(c.Param("tweetID")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidTweetID.Error()))
		return
	}

	if err := h.services.Tweet.Delete(c.Request.Context(), tweetID, session.UserID); err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "tweet deleted"))
}

func (h *Handler) tweetsLike(c *gin.Context) {
	h.tweetsUpdateLike(c, false)
}

func (h *Handler) tweetsUnlike(c *gin.Context) {
	h.tweetsUpdateLike(c, true)
}

func (h *Handler) tweetsUpdateLike(c *gin.Context, unlike bool) {
	session := h.getSessionFromRequest(c)

	tweetID, err := uuid.Parse(strings.TrimSpace(c.Param("tweetID")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidTweetID.Error()))
		return
	}

	likes, err := h.services.Tweet.Like(c.Request.Context(), tweetID, session.UserID, unlike)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

func (h *Handler) tweetsIsLiked(c *gin.Context) {
	session := h.getSessionFromRequest(c)

	tweetID, err := uuid.Parse(strings.TrimSpace(c.Param("tweetID")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidTweetID.Error()))
		return
	}

	isLiked := h.services.Tweet.IsLiked(c.Request.Context(), tweetID, session.UserID)

	c.JSON(http.StatusOK, gin.H{"isLiked": isLiked})
}
