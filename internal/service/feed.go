package service

import (
	"context"
	"sort"

	"github.com/MyCircle/circle-service/internal/model"
	"go.uber.org/zap"
)

type feedService struct {
	logger *zap.Logger
	posts  Post
	tweets Tweet
}

func newFeedService(logger *zap.Logger, posts Post, tweets Tweet) Feed {
	return &feedService{
		logger: logger,
		posts:  posts,
		tweets: tweets,
	}
}

// Build fetches the full post and tweet sets and merges them into one
// reverse-chronological timeline. If either fetch fails the error is returned
// and no partial feed is produced, so the caller keeps whatever it last had.
func (s *feedService) Build(ctx context.Context) ([]model.FeedItem, error) {
	posts, err := s.posts.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	tweets, err := s.tweets.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return MergeFeed(posts, tweets), nil
}

// MergeFeed concatenates the two tagged sequences, posts first, and stable-
// sorts by resolved created-at descending. Exact timestamp ties keep the
// concatenation order. len(result) == len(posts) + len(tweets).
func MergeFeed(posts []*model.Post, tweets []*model.Tweet) []model.FeedItem {
	items := make([]model.FeedItem, 0, len(posts)+len(tweets))

	for _, post := range posts {
		items = append(items, model.FeedItem{
			Type:      model.FeedItemPost,
			Post:      post,
			CreatedAt: model.ResolveCreatedAt(post.Date),
		})
	}
	for _, tweet := range tweets {
		items = append(items, model.FeedItem{
			Type:      model.FeedItemTweet,
			Tweet:     tweet,
			CreatedAt: model.ResolveCreatedAt(tweet.CreatedAt),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	return items
}
