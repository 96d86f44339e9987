package postgres

import (
	"context"

	"github.com/MyCircle/circle-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type tweetRepo struct {
	db *pgxpool.Pool
}

func newTweetRepo(db *pgxpool.Pool) Tweet {
	return &tweetRepo{
		db: db,
	}
}

const tweetColumns = `
t.id, t.user_id, t.username, t.photo_url, t.content, t.likes, t.created_at,
COALESCE((SELECT array_agg(l.user_id ORDER BY l.created_at) FROM tweet_likes l WHERE l.tweet_id = t.id), '{}') AS user_likes`

func (r *tweetRepo) Create(ctx context.Context, tweet model.Tweet) (*model.Tweet, error) {
	tweet.ID = uuid.New()
	tweet.Likes = 0
	// created_at is assigned by the store, not the caller
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO tweets(id, user_id, username, photo_url, content, likes) VALUES($1, $2, $3, $4, $5, $6) RETURNING created_at",
		tweet.ID,
		tweet.UserID,
		tweet.Username,
		tweet.PhotoURL,
		tweet.Content,
		tweet.Likes,
	).Scan(&tweet.CreatedAt); err != nil {
		return nil, err
	}

	tweet.UserLikes = []string{}
	return &tweet, nil
}

func (r *tweetRepo) queryTweets(ctx context.Context, query string, args ...interface{}) ([]*model.Tweet, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tweets := []*model.Tweet{}
	for rows.Next() {
		var tweet model.Tweet
		if err := rows.Scan(
			&tweet.ID,
			&tweet.UserID,
			&tweet.Username,
			&tweet.PhotoURL,
			&tweet.Content,
			&tweet.Likes,
			&tweet.CreatedAt,
			&tweet.UserLikes,
		); err != nil {
			return nil, err
		}
		tweets = append(tweets, &tweet)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tweets, nil
}

func (r *tweetRepo) FindAll(ctx context.Context) ([]*model.Tweet, error) {
	return r.queryTweets(
		ctx,
		"SELECT "+tweetColumns+" FROM tweets t ORDER BY t.created_at DESC",
	)
}

func (r *tweetRepo) FindByUserID(ctx context.Context, userID string) ([]*model.Tweet, error) {
	return r.queryTweets(
		ctx,
		"SELECT "+tweetColumns+" FROM tweets t WHERE t.user_id = $1 ORDER BY t.created_at DESC",
		userID,
	)
}

func (r *tweetRepo) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM tweets WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNotOwner
	}

	return nil
}

func (r *tweetRepo) Like(ctx context.Context, tweetID uuid.UUID, userID string, unlike bool) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if unlike {
		if _, err := tx.Exec(ctx, "DELETE FROM tweet_likes WHERE tweet_id = $1 AND user_id = $2", tweetID, userID); err != nil {
			return 0, err
		}
	} else {
		if _, err := tx.Exec(ctx, "INSERT INTO tweet_likes(tweet_id, user_id) VALUES($1, $2) ON CONFLICT DO NOTHING", tweetID, userID); err != nil {
			return 0, err
		}
	}

	var likes int64
	if err := tx.QueryRow(
		ctx,
		"UPDATE tweets SET likes = (SELECT COUNT(*) FROM tweet_likes WHERE tweet_id = $1) WHERE id = $1 RETURNING likes",
		tweetID,
	).Scan(&likes); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	return likes, nil
}

func (r *tweetRepo) IsLiked(ctx context.Context, tweetID uuid.UUID, userID string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM tweet_likes WHERE tweet_id = $1 AND user_id = $2)",
		tweetID,
		userID,
	).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *tweetRepo) UpdateAuthor(ctx context.Context, userID string, username *string, photoURL *string) error {
	return updateAuthorFields(ctx, r.db, "tweets", userID, username, photoURL)
}
