package handler

import (
	"net/http"
	"os"
	"strings"

	"github.com/MyCircle/circle-service/internal/dto"
	"github.com/MyCircle/circle-service/internal/model"
	"github.com/MyCircle/circle-service/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	accessToken := strings.Split(header, " ")[1]
	if accessToken == "" {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	claims, err := utils.DecodeJWT(accessToken, []byte(os.Getenv("ACCESS_SECRET")))
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	session, err := sessionFromClaims(claims)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	c.Set("session", *session)

	c.Next()
}

// sessionFromClaims builds the identity session from the access token issued
// by the external identity provider. The "id" claim is the opaque identity
// reference; display name and avatar are optional.
func sessionFromClaims(claims jwt.MapClaims) (*model.IdentitySession, error) {
	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return nil, errNotAuthorized
	}

	session := model.IdentitySession{UserID: id}
	if displayName, ok := claims["display_name"].(string); ok {
		session.DisplayName = displayName
	}
	if photoURL, ok := claims["photo_url"].(string); ok {
		session.PhotoURL = photoURL
	}

	return &session, nil
}
