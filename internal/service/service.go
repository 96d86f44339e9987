package service

import (
	"context"
	"mime/multipart"

	"github.com/MyCircle/circle-service/internal/dto"
	"github.com/MyCircle/circle-service/internal/model"
	"github.com/MyCircle/circle-service/internal/rabbitmq"
	"github.com/MyCircle/circle-service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Profile interface {
	Update(ctx context.Context, session model.IdentitySession, input dto.UpdateProfileRequest) (*model.UserProfile, error)
	FindByUserID(ctx context.Context, userID string) (*model.UserProfile, error)
	FindAllExcept(ctx context.Context, userID string) ([]*model.UserProfile, error)
	Follow(ctx context.Context, session model.IdentitySession, followeeID string) (*dto.FollowResponse, error)
	Unfollow(ctx context.Context, session model.IdentitySession, followeeID string) (*dto.FollowResponse, error)
	FindFollowing(ctx context.Context, userID string) ([]string, error)
	FindFollowers(ctx context.Context, userID string) ([]string, error)
	IsFollowing(ctx context.Context, followerID string, followeeID string) bool
	StartConsumeProfileUpdates(ctx context.Context)
}

type Post interface {
	Create(ctx context.Context, session model.IdentitySession, input dto.CreatePostRequest) (*model.Post, error)
	UploadImage(ctx context.Context, file multipart.File, fileHeader *multipart.FileHeader) (string, error)
	FindAll(ctx context.Context) ([]*model.Post, error)
	FindByUserID(ctx context.Context, userID string) ([]*model.Post, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	Delete(ctx context.Context, id uuid.UUID, userID string) error
	Like(ctx context.Context, id uuid.UUID, userID string, unlike bool) (int64, error)
	IsLiked(ctx context.Context, id uuid.UUID, userID string) bool
}

type Tweet interface {
	Create(ctx context.Context, session model.IdentitySession, input dto.CreateTweetRequest) (*model.Tweet, error)
	FindAll(ctx context.Context) ([]*model.Tweet, error)
	FindByUserID(ctx context.Context, userID string) ([]*model.Tweet, error)
	Delete(ctx context.Context, id uuid.UUID, userID string) error
	Like(ctx context.Context, id uuid.UUID, userID string, unlike bool) (int64, error)
	IsLiked(ctx context.Context, id uuid.UUID, userID string) bool
}

type Comment interface {
	Create(ctx context.Context, session model.IdentitySession, input dto.CreateCommentRequest) (*model.Comment, error)
	FindPostComments(ctx context.Context, postID uuid.UUID) ([]*model.Comment, error)
}

type Feed interface {
	Build(ctx context.Context) ([]model.FeedItem, error)
}

type Chat interface {
	Open(ctx context.Context, userID string, peerID string) (*ChatSession, error)
	Send(ctx context.Context, session model.IdentitySession, peerID string, text string) (*model.ChatMessage, error)
	History(ctx context.Context, userID string, peerID string) ([]*model.ChatMessage, error)
	CloseAll()
}

type Service struct {
	Profile
	Post
	Tweet
	Comment
	Feed
	Chat
}

func New(logger *zap.Logger, repo *repository.Repository, mq *rabbitmq.MQConn) *Service {
	postService := newPostService(logger, repo)
	tweetService := newTweetService(logger, repo)

	return &Service{
		Profile: newProfileService(logger, repo, mq),
		Post:    postService,
		Tweet:   tweetService,
		Comment: newCommentService(logger, repo),
		Feed:    newFeedService(logger, postService, tweetService),
		Chat:    newChatService(logger, repo),
	}
}

func (s *Service) StartConsumeAll(ctx context.Context) {
	go s.Profile.StartConsumeProfileUpdates(ctx)
}
