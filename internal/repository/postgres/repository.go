package postgres

import (
	"context"

	"github.com/MyCircle/circle-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Profile interface {
	Upsert(ctx context.Context, profile model.UserProfile) (*model.UserProfile, error)
	FindByUserID(ctx context.Context, userID string) (*model.UserProfile, error)
	FindAllExcept(ctx context.Context, userID string) ([]*model.UserProfile, error)
	Follow(ctx context.Context, followerID string, followeeID string) (bool, error)
	Unfollow(ctx context.Context, followerID string, followeeID string) (bool, error)
	IsFollowing(ctx context.Context, followerID string, followeeID string) (bool, error)
	FindFollowing(ctx context.Context, userID string) ([]string, error)
	FindFollowers(ctx context.Context, userID string) ([]string, error)
}

type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	FindAll(ctx context.Context) ([]*model.Post, error)
	FindByUserID(ctx context.Context, userID string) ([]*model.Post, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	Delete(ctx context.Context, id uuid.UUID, userID string) error
	Like(ctx context.Context, postID uuid.UUID, userID string, unlike bool) (int64, error)
	IsLiked(ctx context.Context, postID uuid.UUID, userID string) (bool, error)
	UpdateAuthor(ctx context.Context, userID string, username *string, photoURL *string) error
}

type Tweet interface {
	Create(ctx context.Context, tweet model.Tweet) (*model.Tweet, error)
	FindAll(ctx context.Context) ([]*model.Tweet, error)
	FindByUserID(ctx context.Context, userID string) ([]*model.Tweet, error)
	Delete(ctx context.Context, id uuid.UUID, userID string) error
	Like(ctx context.Context, tweetID uuid.UUID, userID string, unlike bool) (int64, error)
	IsLiked(ctx context.Context, tweetID uuid.UUID, userID string) (bool, error)
	UpdateAuthor(ctx context.Context, userID string, username *string, photoURL *string) error
}

type Comment interface {
	Create(ctx context.Context, comment model.Comment) (*model.Comment, error)
	FindPostComments(ctx context.Context, postID uuid.UUID) ([]*model.Comment, error)
	UpdateAuthor(ctx context.Context, userID string, username *string, photoURL *string) error
}

type Chat interface {
	Create(ctx context.Context, msg model.ChatMessage) (*model.ChatMessage, error)
	FindChannelMessages(ctx context.Context, channelID string) ([]*model.ChatMessage, error)
}

type PostgresRepository struct {
	Profile
	Post
	Tweet
	Comment
	Chat
}

func New(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		Profile: newProfileRepo(db),
		Post:    newPostRepo(db),
		Tweet:   newTweetRepo(db),
		Comment: newCommentRepo(db),
		Chat:    newChatRepo(db),
	}
}
