package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MyCircle/circle-service/internal/dto"
	"github.com/MyCircle/circle-service/internal/model"
	"github.com/MyCircle/circle-service/internal/repository"
	"github.com/MyCircle/circle-service/internal/repository/postgres"
	"github.com/MyCircle/circle-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type tweetService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newTweetService(logger *zap.Logger, repo *repository.Repository) Tweet {
	return &tweetService{
		logger: logger,
		repo:   repo,
	}
}

func (s *tweetService) Create(ctx context.Context, session model.IdentitySession, input dto.CreateTweetRequest) (*model.Tweet, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	if utf8.RuneCountInString(content) > model.MaxTweetLength {
		return nil, ErrTweetTooLong
	}

	tweet := model.Tweet{
		UserID:   session.UserID,
		Username: session.DisplayName,
		PhotoURL: session.PhotoURL,
		Content:  content,
	}

	if profile, err := s.repo.Postgres.Profile.FindByUserID(ctx, session.UserID); err == nil {
		tweet.Username = profile.DisplayName
		tweet.PhotoURL = profile.PhotoURL
	}

	createdTweet, err := s.repo.Postgres.Tweet.Create(ctx, tweet)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) tweet: %s", tweet.UserID, err.Error())
		return nil, ErrInternal
	}

	s.invalidateListings(ctx, session.UserID)

	return createdTweet, nil
}

func (s *tweetService) invalidateListings(ctx context.Context, userID string) {
	if err := s.repo.Redis.Default.Del(ctx, redisrepo.ALL_TWEETS_KEY, redisrepo.UserTweetsKey(userID)).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate cached tweet listings of user(%s): %s", userID, err.Error())
	}
}

func (s *tweetService) FindAll(ctx context.Context) ([]*model.Tweet, error) {
	cachedTweets, err := redisrepo.GetMany[model.Tweet](s.repo.Redis.Default, ctx, redisrepo.ALL_TWEETS_KEY)
	if err == nil {
		return cachedTweets, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get tweets from redis: %s", err.Error())
		return nil, ErrInternal
	}

	tweets, err := s.repo.Postgres.Tweet.FindAll(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find tweets from postgres: %s", err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.ALL_TWEETS_KEY, tweets, time.Minute); err != nil {
		s.logger.Sugar().Errorf("failed to set tweets in redis: %s", err.Error())
	}

	return tweets, nil
}

func (s *tweetService) FindByUserID(ctx context.Context, userID string) ([]*model.Tweet, error) {
	cachedTweets, err := redisrepo.GetMany[model.Tweet](s.repo.Redis.Default, ctx, redisrepo.UserTweetsKey(userID))
	if err == nil {
		return cachedTweets, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get user(%s) tweets from redis: %s", userID, err.Error())
		return nil, ErrInternal
	}

	tweets, err := s.repo.Postgres.Tweet.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find user(%s) tweets from postgres: %s", userID, err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.UserTweetsKey(userID), tweets, time.Minute); err != nil {
		s.logger.Sugar().Errorf("failed to set user(%s) tweets in redis: %s", userID, err.Error())
	}

	return tweets, nil
}

func (s *tweetService) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	if err := s.repo.Postgres.Tweet.Delete(ctx, id, userID); err != nil {
		if err == postgres.ErrNotOwner {
			return ErrNotOwner
		}

		s.logger.Sugar().Errorf("failed to delete tweet(%s) of user(%s): %s", id.String(), userID, err.Error())
		return ErrInternal
	}

	s.invalidateListings(ctx, userID)

	return nil
}

func (s *tweetService) Like(ctx context.Context, id uuid.UUID, userID string, unlike bool) (int64, error) {
	likes, err := s.repo.Postgres.Tweet.Like(ctx, id, userID, unlike)
	if err != nil {
		s.logger.Sugar().Errorf("failed to update likes on tweet(%s) by user(%s): %s", id.String(), userID, err.Error())
		return 0, ErrInternal
	}

	if err := s.repo.Redis.Default.Del(ctx, redisrepo.ALL_TWEETS_KEY).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate cached tweets after like: %s", err.Error())
	}

	return likes, nil
}

func (s *tweetService) IsLiked(ctx context.Context, id uuid.UUID, userID string) bool {
	isLiked, err := s.repo.Postgres.Tweet.IsLiked(ctx, id, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check like on tweet(%s) by user(%s): %s", id.String(), userID, err.Error())
		return false
	}

	return isLiked
}
