package model

import (
	"time"

	"github.com/google/uuid"
)

type FeedItemType string

const (
	FeedItemPost  FeedItemType = "post"
	FeedItemTweet FeedItemType = "tweet"
)

// FeedItem is the ephemeral projection used to render the unified timeline.
// Exactly one of Post or Tweet is set, according to Type. It is never persisted.
type FeedItem struct {
	Type      FeedItemType `json:"type"`
	Post      *Post        `json:"post,omitempty"`
	Tweet     *Tweet       `json:"tweet,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

func (i FeedItem) ItemID() uuid.UUID {
	if i.Type == FeedItemPost {
		return i.Post.ID
	}
	return i.Tweet.ID
}

func (i FeedItem) AuthorID() string {
	if i.Type == FeedItemPost {
		return i.Post.UserID
	}
	return i.Tweet.UserID
}

func (i FeedItem) AuthorName() string {
	if i.Type == FeedItemPost {
		return i.Post.Username
	}
	return i.Tweet.Username
}

func (i FeedItem) AuthorPhotoURL() string {
	if i.Type == FeedItemPost {
		return i.Post.PhotoURL
	}
	return i.Tweet.PhotoURL
}

// Excerpt returns the short text shown in timeline previews: the caption for
// a post, the content for a tweet.
func (i FeedItem) Excerpt() string {
	if i.Type == FeedItemPost {
		return i.Post.Caption
	}
	return i.Tweet.Content
}

// ResolveCreatedAt coerces the differently-shaped created-at values the two
// content collections carry into one instant. Recognized forms are a native
// time.Time, an RFC3339 string, and unix milliseconds; anything else resolves
// to the current instant, so undated items sort as most recent.
func ResolveCreatedAt(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		if !t.IsZero() {
			return t
		}
	case *time.Time:
		if t != nil && !t.IsZero() {
			return *t
		}
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	case int64:
		if t > 0 {
			return time.UnixMilli(t)
		}
	case float64:
		if t > 0 {
			return time.UnixMilli(int64(t))
		}
	}
	return time.Now()
}
