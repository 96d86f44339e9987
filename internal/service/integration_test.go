package service

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/MyCircle/circle-service/internal/config"
	"github.com/MyCircle/circle-service/internal/dto"
	"github.com/MyCircle/circle-service/internal/model"
	"github.com/MyCircle/circle-service/internal/repository"
	"github.com/MyCircle/circle-service/internal/repository/postgres"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupRepo(t *testing.T) *repository.Repository {
	t.Helper()

	if os.Getenv("POSTGRES_HOST") == "" || os.Getenv("REDIS_ADDR") == "" {
		t.Skip("Skipping test - no database connection configured")
	}

	ctx := context.Background()
	db, err := postgres.DB(ctx, config.DBConfig{
		Username: os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     os.Getenv("POSTGRES_PORT"),
		DBName:   os.Getenv("POSTGRES_DATABASE"),
		SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
	})
	require.NoError(t, err)
	require.NoError(t, db.Ping(ctx))

	rdb := redis.NewClient(&redis.Options{Addr: os.Getenv("REDIS_ADDR")})
	require.NoError(t, rdb.Ping(ctx).Err())

	return repository.New(db, rdb)
}

func TestLikeToggle_RoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	author := "author-" + uuid.NewString()
	post, err := repo.Postgres.Post.Create(ctx, model.Post{
		UserID:   author,
		Username: "author",
		Caption:  "like me",
		Photos:   []model.PhotoMeta{{CDNURL: "https://cdn/img.png", UUID: uuid.New()}},
	})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := repo.Postgres.Post.Like(ctx, post.ID, fmt.Sprintf("seed-%d-%s", i, uuid.NewString()), false)
		require.NoError(t, err)
	}

	toggler := "toggler-" + uuid.NewString()

	likes, err := repo.Postgres.Post.Like(ctx, post.ID, toggler, false)
	require.NoError(t, err)
	assert.Equal(t, int64(6), likes)

	isLiked, err := repo.Postgres.Post.IsLiked(ctx, post.ID, toggler)
	require.NoError(t, err)
	assert.True(t, isLiked)

	likes, err = repo.Postgres.Post.Like(ctx, post.ID, toggler, true)
	require.NoError(t, err)
	assert.Equal(t, int64(5), likes)

	isLiked, err = repo.Postgres.Post.IsLiked(ctx, post.ID, toggler)
	require.NoError(t, err)
	assert.False(t, isLiked)

	// liking twice is idempotent on the membership set
	_, err = repo.Postgres.Post.Like(ctx, post.ID, toggler, false)
	require.NoError(t, err)
	likes, err = repo.Postgres.Post.Like(ctx, post.ID, toggler, false)
	require.NoError(t, err)
	assert.Equal(t, int64(6), likes)
}

func TestComments_EmptyListIsNotAnError(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	post, err := repo.Postgres.Post.Create(ctx, model.Post{
		UserID:   "author-" + uuid.NewString(),
		Username: "author",
		Caption:  "no comments yet",
		Photos:   []model.PhotoMeta{{CDNURL: "https://cdn/img.png", UUID: uuid.New()}},
	})
	require.NoError(t, err)

	comments, err := repo.Postgres.Comment.FindPostComments(ctx, post.ID)
	require.NoError(t, err)
	require.NotNil(t, comments)
	assert.Len(t, comments, 0)
}

func TestFollow_DerivedCountersStayConsistent(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	follower := "follower-" + uuid.NewString()
	followee := "followee-" + uuid.NewString()

	_, err := repo.Postgres.Profile.Upsert(ctx, model.UserProfile{UserID: follower, DisplayName: "f1"})
	require.NoError(t, err)
	_, err = repo.Postgres.Profile.Upsert(ctx, model.UserProfile{UserID: followee, DisplayName: "f2"})
	require.NoError(t, err)

	inserted, err := repo.Postgres.Profile.Follow(ctx, follower, followee)
	require.NoError(t, err)
	assert.True(t, inserted)

	// a repeated follow changes nothing
	inserted, err = repo.Postgres.Profile.Follow(ctx, follower, followee)
	require.NoError(t, err)
	assert.False(t, inserted)

	followeeProfile, err := repo.Postgres.Profile.FindByUserID(ctx, followee)
	require.NoError(t, err)
	assert.Equal(t, int64(1), followeeProfile.Followers)
	assert.Equal(t, int64(0), followeeProfile.Following)

	followerProfile, err := repo.Postgres.Profile.FindByUserID(ctx, follower)
	require.NoError(t, err)
	assert.Equal(t, int64(1), followerProfile.Following)

	following, err := repo.Postgres.Profile.FindFollowing(ctx, follower)
	require.NoError(t, err)
	assert.Contains(t, following, followee)

	followers, err := repo.Postgres.Profile.FindFollowers(ctx, followee)
	require.NoError(t, err)
	assert.Contains(t, followers, follower)

	svc := newProfileService(zap.NewNop(), repo, nil)
	assert.True(t, svc.IsFollowing(ctx, follower, followee))
	assert.False(t, svc.IsFollowing(ctx, followee, follower))
}

func TestTweetListings_EmptyListIsNotNil(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	tweets, err := repo.Postgres.Tweet.FindByUserID(ctx, "nobody-"+uuid.NewString())
	require.NoError(t, err)
	require.NotNil(t, tweets)
	assert.Len(t, tweets, 0)
}

func TestPostDelete_DroppedFromListingsWithoutRefetch(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	svc := newPostService(zap.NewNop(), repo)
	session := model.IdentitySession{UserID: "author-" + uuid.NewString(), DisplayName: "author"}

	created, err := svc.Create(ctx, session, dto.CreatePostRequest{
		Caption: "short lived",
		Photos:  []dto.CreatePostPhoto{{CDNURL: "https://cdn/img.png", UUID: uuid.New()}},
	})
	require.NoError(t, err)

	posts, err := svc.FindAll(ctx)
	require.NoError(t, err)
	require.True(t, containsPost(posts, created.ID))

	require.NoError(t, svc.Delete(ctx, created.ID, session.UserID))

	posts, err = svc.FindAll(ctx)
	require.NoError(t, err)
	assert.False(t, containsPost(posts, created.ID))
}

func containsPost(posts []*model.Post, id uuid.UUID) bool {
	for _, post := range posts {
		if post.ID == id {
			return true
		}
	}
	return false
}

func TestChatSession_OpenSendReceiveClose(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	svc := newChatService(zap.NewNop(), repo)

	alice := "alice-" + uuid.NewString()
	bob := "bob-" + uuid.NewString()

	session, err := svc.Open(ctx, alice, bob)
	require.NoError(t, err)
	defer session.Close()

	assert.Equal(t, model.ChannelID(alice, bob), session.ChannelID)
	assert.Empty(t, session.Messages())

	// the subscription is confirmed before Open returns, so a message sent
	// immediately afterwards must reach the stream
	sent, err := svc.Send(ctx, model.IdentitySession{UserID: bob}, alice, "hello alice")
	require.NoError(t, err)
	assert.Equal(t, bob, sent.SenderID)
	assert.False(t, sent.Timestamp.IsZero())

	select {
	case snapshot := <-session.Updates():
		require.Len(t, snapshot, 1)
		assert.Equal(t, "hello alice", snapshot[0].Text)
		assert.Equal(t, bob, snapshot[0].SenderID)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for live chat update")
	}

	session.Close()
	session.Close() // idempotent

	// reopening re-reads the full history from the store
	reopened, err := svc.Open(ctx, alice, bob)
	require.NoError(t, err)
	defer reopened.Close()

	history := reopened.Messages()
	require.Len(t, history, 1)
	assert.Equal(t, "hello alice", history[0].Text)
}

func TestChatSession_SecondOpenReleasesFirst(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	svc := newChatService(zap.NewNop(), repo)

	alice := "alice-" + uuid.NewString()
	bob := "bob-" + uuid.NewString()

	first, err := svc.Open(ctx, alice, bob)
	require.NoError(t, err)

	second, err := svc.Open(ctx, alice, bob)
	require.NoError(t, err)
	defer second.Close()

	select {
	case _, ok := <-first.Updates():
		assert.False(t, ok, "first session should be closed when the same client reopens the channel")
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for first session to close")
	}
}

func TestChatHistory_AscendingOrder(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	svc := newChatService(zap.NewNop(), repo)

	alice := "alice-" + uuid.NewString()
	bob := "bob-" + uuid.NewString()

	for i := 0; i < 3; i++ {
		_, err := svc.Send(ctx, model.IdentitySession{UserID: alice}, bob, fmt.Sprintf("message %d", i))
		require.NoError(t, err)
	}

	history, err := svc.History(ctx, bob, alice)
	require.NoError(t, err)
	require.Len(t, history, 3)
	for i := 1; i < len(history); i++ {
		assert.False(t, history[i].Timestamp.Before(history[i-1].Timestamp))
	}
}
