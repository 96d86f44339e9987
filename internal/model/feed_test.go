package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCreatedAt_NativeTime(t *testing.T) {
	instant := time.Date(2023, 6, 15, 12, 30, 0, 0, time.UTC)

	assert.True(t, instant.Equal(ResolveCreatedAt(instant)))
	assert.True(t, instant.Equal(ResolveCreatedAt(&instant)))
}

func TestResolveCreatedAt_ISOString(t *testing.T) {
	resolved := ResolveCreatedAt("2024-01-01T00:00:00Z")

	assert.True(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Equal(resolved))
}

func TestResolveCreatedAt_UnixMillis(t *testing.T) {
	instant := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

	assert.True(t, instant.Equal(ResolveCreatedAt(instant.UnixMilli())))
	assert.True(t, instant.Equal(ResolveCreatedAt(float64(instant.UnixMilli()))))
}

func TestResolveCreatedAt_AbsentOrUnrecognizedDefaultsToNow(t *testing.T) {
	cases := []interface{}{
		nil,
		"not a timestamp",
		time.Time{},
		(*time.Time)(nil),
		int64(0),
	}

	for _, value := range cases {
		before := time.Now()
		resolved := ResolveCreatedAt(value)
		after := time.Now()

		require.False(t, resolved.Before(before), "resolved instant is before the call for input %#v", value)
		require.False(t, resolved.After(after), "resolved instant is after the call for input %#v", value)
	}
}

func TestFeedItem_SharedProjection(t *testing.T) {
	post := &Post{Username: "ann", PhotoURL: "https://cdn/ann.png", Caption: "sunset", UserID: "u1"}
	tweet := &Tweet{Username: "ben", PhotoURL: "https://cdn/ben.png", Content: "hello", UserID: "u2"}

	postItem := FeedItem{Type: FeedItemPost, Post: post}
	tweetItem := FeedItem{Type: FeedItemTweet, Tweet: tweet}

	assert.Equal(t, "ann", postItem.AuthorName())
	assert.Equal(t, "https://cdn/ann.png", postItem.AuthorPhotoURL())
	assert.Equal(t, "sunset", postItem.Excerpt())
	assert.Equal(t, "u1", postItem.AuthorID())

	assert.Equal(t, "ben", tweetItem.AuthorName())
	assert.Equal(t, "https://cdn/ben.png", tweetItem.AuthorPhotoURL())
	assert.Equal(t, "hello", tweetItem.Excerpt())
	assert.Equal(t, "u2", tweetItem.AuthorID())
}
