package handler

import (
	"net/http"
	"strings"

	"github.com/MyCircle/circle-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) usersList(c *gin.Context) {
	session := h.getSessionFromRequest(c)

	profiles, err := h.services.Profile.FindAllExcept(c.Request.Context(), session.UserID)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, profiles)
}

func (h *Handler) usersGetMe(c *gin.Context) {
	session := h.getSessionFromRequest(c)

	profile, err := h.services.Profile.FindByUserID(c.Request.Context(), session.UserID)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *Handler) usersUpdateProfile(c *gin.Context) {
	session := h.getSessionFromRequest(c)

	var input dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	profile, err := h.services.Profile.Update(c.Request.Context(), *session, input)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *Handler) usersGetFollowing(c *gin.Context) {
	session := h.getSessionFromRequest(c)

	following, err := h.services.Profile.FindFollowing(c.Request.Context(), session.UserID)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, following)
}

func (h *Handler) usersGetFollowers(c *gin.Context) {
	session := h.getSessionFromRequest(c)

	followers, err := h.services.Profile.FindFollowers(c.Request.Context(), session.UserID)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, followers)
}

func (h *Handler) usersGetByID(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("userID"))

	profile, err := h.services.Profile.FindByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	// is_following drives the follow-button state of a signed-in viewer
	isFollowing := false
	if session := h.getSessionFromRequest(c); session != nil && session.UserID != userID {
		isFollowing = h.services.Profile.IsFollowing(c.Request.Context(), session.UserID, userID)
	}

	c.JSON(http.StatusOK, dto.GetProfile{
		Profile:     *profile,
		IsFollowing: isFollowing,
	})
}

func (h *Handler) usersFollow(c *gin.Context) {
	session := h.getSessionFromRequest(c)
	followeeID := strings.TrimSpace(c.Param("userID"))

	result, err := h.services.Profile.Follow(c.Request.Context(), *session, followeeID)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) usersUnfollow(c *gin.Context) {
	session := h.getSessionFromRequest(c)
	followeeID := strings.TrimSpace(c.Param("userID"))

	result, err := h.services.Profile.Unfollow(c.Request.Context(), *session, followeeID)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, result)
}
