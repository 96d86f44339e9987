package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MyCircle/circle-service/internal/dto"
	"github.com/MyCircle/circle-service/internal/model"
	"github.com/MyCircle/circle-service/internal/rabbitmq"
	"github.com/MyCircle/circle-service/internal/repository"
	"github.com/MyCircle/circle-service/internal/repository/redisrepo"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type profileService struct {
	logger *zap.Logger
	repo   *repository.Repository
	mq     *rabbitmq.MQConn
}

func newProfileService(logger *zap.Logger, repo *repository.Repository, mq *rabbitmq.MQConn) Profile {
	return &profileService{
		logger: logger,
		repo:   repo,
		mq:     mq,
	}
}

// Update creates the profile on first edit and rewrites it afterwards; only
// the owning identity ever reaches this path. A change to display name or
// avatar is fanned out through the queue so denormalized author fields on
// posts, tweets and comments follow.
func (s *profileService) Update(ctx context.Context, session model.IdentitySession, input dto.UpdateProfileRequest) (*model.UserProfile, error) {
	profile, err := s.repo.Postgres.Profile.FindByUserID(ctx, session.UserID)
	if err != nil {
		if err != pgx.ErrNoRows {
			s.logger.Sugar().Errorf("failed to find profile(%s) from postgres: %s", session.UserID, err.Error())
			return nil, ErrInternal
		}
		profile = &model.UserProfile{
			UserID:      session.UserID,
			DisplayName: session.DisplayName,
			PhotoURL:    session.PhotoURL,
		}
	}

	if input.DisplayName != nil {
		profile.DisplayName = *input.DisplayName
	}
	if input.PhotoURL != nil {
		profile.PhotoURL = *input.PhotoURL
	}
	if input.UserBio != nil {
		profile.UserBio = *input.UserBio
	}

	updated, err := s.repo.Postgres.Profile.Upsert(ctx, *profile)
	if err != nil {
		s.logger.Sugar().Errorf("failed to upsert profile(%s): %s", session.UserID, err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.Del(ctx, redisrepo.ProfileKey(session.UserID)).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete cached profile(%s) from redis: %s", session.UserID, err.Error())
	}

	if input.DisplayName != nil || input.PhotoURL != nil {
		s.publishProfileUpdated(ctx, dto.MQProfileUpdatedMsg{
			UserID:      session.UserID,
			DisplayName: input.DisplayName,
			PhotoURL:    input.PhotoURL,
			UpdatedAt:   time.Now(),
		})
	}

	return updated, nil
}

func (s *profileService) publishProfileUpdated(ctx context.Context, msg dto.MQProfileUpdatedMsg) {
	body, err := json.Marshal(msg)
	if err != nil {
		s.logger.Sugar().Errorf("failed to marshal profile-updated message for user(%s): %s", msg.UserID, err.Error())
		return
	}

	if err := s.mq.Publish(ctx, rabbitmq.PROFILE_UPDATED_QUEUE, body); err != nil {
		s.logger.Sugar().Errorf("failed to publish profile-updated message for user(%s): %s", msg.UserID, err.Error())
	}
}

func (s *profileService) FindByUserID(ctx context.Context, userID string) (*model.UserProfile, error) {
	cachedProfile, err := redisrepo.Get[model.UserProfile](s.repo.Redis.Default, ctx, redisrepo.ProfileKey(userID))
	if err == nil {
		if cachedProfile == nil {
			return nil, ErrProfileNotFound
		}
		return cachedProfile, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get cached profile(%s) from redis: %s", userID, err.Error())
		return nil, ErrInternal
	}

	profile, err := s.repo.Postgres.Profile.FindByUserID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrProfileNotFound
		}

		s.logger.Sugar().Errorf("failed to get profile(%s) from postgres: %s", userID, err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.ProfileKey(userID), profile, time.Hour); err != nil {
		s.logger.Sugar().Errorf("failed to set profile(%s) in redis: %s", userID, err.Error())
	}

	return profile, nil
}

func (s *profileService) FindAllExcept(ctx context.Context, userID string) ([]*model.UserProfile, error) {
	profiles, err := s.repo.Postgres.Profile.FindAllExcept(ctx, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to list profiles from postgres: %s", err.Error())
		return nil, ErrInternal
	}

	return profiles, nil
}

// Follow rejects a self-follow before any store round trip. The follow edge is
// a single insert and both counters are derived from it, so the pair cannot
// end up half-updated.
func (s *profileService) Follow(ctx context.Context, session model.IdentitySession, followeeID string) (*dto.FollowResponse, error) {
	if session.UserID == followeeID {
		return nil, ErrCannotFollowSelf
	}

	if _, err := s.repo.Postgres.Profile.FindByUserID(ctx, followeeID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrProfileNotFound
		}

		s.logger.Sugar().Errorf("failed to find followee(%s) from postgres: %s", followeeID, err.Error())
		return nil, ErrInternal
	}

	if _, err := s.repo.Postgres.Profile.Follow(ctx, session.UserID, followeeID); err != nil {
		s.logger.Sugar().Errorf("failed to follow user(%s) by user(%s): %s", followeeID, session.UserID, err.Error())
		return nil, ErrInternal
	}

	return s.followCounts(ctx, session.UserID, followeeID)
}

func (s *profileService) Unfollow(ctx context.Context, session model.IdentitySession, followeeID string) (*dto.FollowResponse, error) {
	if session.UserID == followeeID {
		return nil, ErrCannotFollowSelf
	}

	if _, err := s.repo.Postgres.Profile.Unfollow(ctx, session.UserID, followeeID); err != nil {
		s.logger.Sugar().Errorf("failed to unfollow user(%s) by user(%s): %s", followeeID, session.UserID, err.Error())
		return nil, ErrInternal
	}

	return s.followCounts(ctx, session.UserID, followeeID)
}

func (s *profileService) followCounts(ctx context.Context, followerID string, followeeID string) (*dto.FollowResponse, error) {
	if err := s.repo.Redis.Default.Del(ctx, redisrepo.ProfileKey(followerID), redisrepo.ProfileKey(followeeID)).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete cached profiles from redis: %s", err.Error())
	}

	followee, err := s.repo.Postgres.Profile.FindByUserID(ctx, followeeID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to refresh followee(%s) counts: %s", followeeID, err.Error())
		return nil, ErrInternal
	}

	return &dto.FollowResponse{
		Ok:        true,
		Followers: followee.Followers,
		Following: followee.Following,
	}, nil
}

func (s *profileService) FindFollowing(ctx context.Context, userID string) ([]string, error) {
	following, err := s.repo.Postgres.Profile.FindFollowing(ctx, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to get following of user(%s): %s", userID, err.Error())
		return nil, ErrInternal
	}

	return following, nil
}

func (s *profileService) FindFollowers(ctx context.Context, userID string) ([]string, error) {
	followers, err := s.repo.Postgres.Profile.FindFollowers(ctx, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to get followers of user(%s): %s", userID, err.Error())
		return nil, ErrInternal
	}

	return followers, nil
}

func (s *profileService) IsFollowing(ctx context.Context, followerID string, followeeID string) bool {
	isFollowing, err := s.repo.Postgres.Profile.IsFollowing(ctx, followerID, followeeID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check follow of user(%s) by user(%s): %s", followeeID, followerID, err.Error())
		return false
	}

	return isFollowing
}

// StartConsumeProfileUpdates drains the profile-updated queue and rewrites the
// denormalized author fields carried by posts, tweets and comments.
func (s *profileService) StartConsumeProfileUpdates(ctx context.Context) {
	queue := rabbitmq.PROFILE_UPDATED_QUEUE
	msgs, err := s.mq.Consume(queue)
	if err != nil {
		s.logger.Sugar().Fatalf("failed to start consume updates from queue(%s): %s", queue, err.Error())
	}

	for msg := range msgs {
		var data dto.MQProfileUpdatedMsg
		if err := json.Unmarshal(msg.Body, &data); err != nil {
			s.logger.Sugar().Errorf("failed to unmarshal json in queue(%s): %s", queue, err.Error())
			msg.Nack(false, false)
			continue
		}

		if data.UserID == "" {
			s.logger.Sugar().Errorf("'user_id' field is not provided")
			msg.Nack(false, false)
			continue
		}

		if err := s.applyAuthorUpdate(ctx, data); err != nil {
			msg.Nack(false, true)
			continue
		}

		msg.Ack(false)
	}
}

func (s *profileService) applyAuthorUpdate(ctx context.Context, data dto.MQProfileUpdatedMsg) error {
	if err := s.repo.Postgres.Post.UpdateAuthor(ctx, data.UserID, data.DisplayName, data.PhotoURL); err != nil {
		s.logger.Sugar().Errorf("failed to update author fields on posts of user(%s): %s", data.UserID, err.Error())
		return err
	}
	if err := s.repo.Postgres.Tweet.UpdateAuthor(ctx, data.UserID, data.DisplayName, data.PhotoURL); err != nil {
		s.logger.Sugar().Errorf("failed to update author fields on tweets of user(%s): %s", data.UserID, err.Error())
		return err
	}
	if err := s.repo.Postgres.Comment.UpdateAuthor(ctx, data.UserID, data.DisplayName, data.PhotoURL); err != nil {
		s.logger.Sugar().Errorf("failed to update author fields on comments of user(%s): %s", data.UserID, err.Error())
		return err
	}

	keys := []string{
		redisrepo.ALL_POSTS_KEY,
		redisrepo.ALL_TWEETS_KEY,
		redisrepo.UserPostsKey(data.UserID),
		redisrepo.UserTweetsKey(data.UserID),
	}
	if err := s.repo.Redis.Default.Del(ctx, keys...).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate cached listings of user(%s): %s", data.UserID, err.Error())
	}

	return nil
}
