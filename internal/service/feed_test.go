package service

import (
	"testing"
	"time"

	"github.com/MyCircle/circle-service/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datedPost(date time.Time) *model.Post {
	return &model.Post{ID: uuid.New(), Caption: "caption", Date: date}
}

func datedTweet(createdAt time.Time) *model.Tweet {
	return &model.Tweet{ID: uuid.New(), Content: "content", CreatedAt: createdAt}
}

func TestMergeFeed_SortedDescendingAndComplete(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	posts := []*model.Post{
		datedPost(base.Add(-2 * time.Hour)),
		datedPost(base),
	}
	tweets := []*model.Tweet{
		datedTweet(base.Add(-1 * time.Hour)),
		datedTweet(base.Add(-3 * time.Hour)),
	}

	feed := MergeFeed(posts, tweets)

	require.Len(t, feed, len(posts)+len(tweets))
	for i := 1; i < len(feed); i++ {
		assert.False(t, feed[i-1].CreatedAt.Before(feed[i].CreatedAt), "feed is not sorted at index %d", i)
	}
}

func TestMergeFeed_TieKeepsPostsBeforeTweets(t *testing.T) {
	instant := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	feed := MergeFeed(
		[]*model.Post{datedPost(instant)},
		[]*model.Tweet{datedTweet(instant)},
	)

	require.Len(t, feed, 2)
	assert.Equal(t, model.FeedItemPost, feed[0].Type)
	assert.Equal(t, model.FeedItemTweet, feed[1].Type)
}

func TestMergeFeed_UndatedItemsSortMostRecent(t *testing.T) {
	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	feed := MergeFeed(
		[]*model.Post{datedPost(old)},
		[]*model.Tweet{datedTweet(time.Time{})},
	)

	require.Len(t, feed, 2)
	assert.Equal(t, model.FeedItemTweet, feed[0].Type)
	assert.Equal(t, model.FeedItemPost, feed[1].Type)
}

func TestMergeFeed_EmptyInputs(t *testing.T) {
	assert.Empty(t, MergeFeed(nil, nil))

	feed := MergeFeed([]*model.Post{datedPost(time.Now())}, nil)
	require.Len(t, feed, 1)
	assert.Equal(t, model.FeedItemPost, feed[0].Type)
}
