package handler

import (
	"github.com/MyCircle/circle-service/internal/model"
	"github.com/MyCircle/circle-service/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

type Handler struct {
	services *service.Service
}

func New(services *service.Service) *Handler {
	return &Handler{
		services: services,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{viper.GetString("client.origin")},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	v1 := r.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.GET("", h.authMiddleware, h.usersList)
			users.GET("/me", h.authMiddleware, h.usersGetMe)
			users.PATCH("/me", h.authMiddleware, h.usersUpdateProfile)
			users.GET("/me/following", h.authMiddleware, h.usersGetFollowing)
			users.GET("/me/followers", h.authMiddleware, h.usersGetFollowers)

			user := users.Group("/:userID")
			{
				user.GET("", h.notRequiredAuthMiddleware, h.usersGetByID)
				user.POST("/follow", h.authMiddleware, h.usersFollow)
				user.DELETE("/follow", h.authMiddleware, h.usersUnfollow)
			}
		}

		posts := v1.Group("/posts")
		{
			posts.POST("/uploadImage", h.authMiddleware, h.postsUploadImage)
			posts.POST("", h.authMiddleware, h.postsCreate)
			posts.GET("", h.postsGetAll)
			posts.GET("/my", h.authMiddleware, h.postsGetMy)
			posts.GET("/author/:userID", h.postsGetByAuthor)

			post := posts.Group("/:postID")
			{
				post.GET("", h.notRequiredAuthMiddleware, h.postsGetByID)
				post.DELETE("", h.authMiddleware, h.postsDelete)
				post.POST("/like", h.authMiddleware, h.postsLike)
				post.DELETE("/unlike", h.authMiddleware, h.postsUnlike)
				post.GET("/isLiked", h.authMiddleware, h.postsIsLiked)
			}
		}

		tweets := v1.Group("/tweets")
		{
			tweets.POST("", h.authMiddleware, h.tweetsCreate)
			tweets.GET("", h.tweetsGetAll)
			tweets.GET("/my", h.authMiddleware, h.tweetsGetMy)
			tweets.GET("/author/:userID", h.tweetsGetByAuthor)

			tweet := tweets.Group("/:tweetID")
			{
				tweet.DELETE("", h.authMiddleware, h.tweetsDelete)
				tweet.POST("/like", h.authMiddleware, h.tweetsLike)
				tweet.DELETE("/unlike", h.authMiddleware, h.tweetsUnlike)
				tweet.GET("/isLiked", h.authMiddleware, h.tweetsIsLiked)
			}
		}

		comments := v1.Group("/comments")
		{
			comments.POST("", h.authMiddleware, h.commentsCreate)

			postComments := comments.Group("/:postID")
			{
				postComments.GET("", h.commentsGet)
			}
		}

		v1.GET("/feed", h.authMiddleware, h.feedGet)

		chats := v1.Group("/chats")
		{
			chat := chats.Group("/:peerID")
			{
				chat.GET("/messages", h.authMiddleware, h.chatHistory)
				chat.POST("/messages", h.authMiddleware, h.chatSend)
				chat.GET("/stream", h.authMiddleware, h.chatStream)
			}
		}
	}

	return r
}

func (h *Handler) getSessionFromRequest(c *gin.Context) *model.IdentitySession {
	sessionReq, _ := c.Get("session")

	session, ok := sessionReq.(model.IdentitySession)
	if !ok {
		return nil
	}

	return &session
}
