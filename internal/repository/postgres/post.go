package postgres

import (
	"context"
	"strconv"
	"time"

	"github.com/MyCircle/circle-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postRepo struct {
	db *pgxpool.Pool
}

func newPostRepo(db *pgxpool.Pool) Post {
	return &postRepo{
		db: db,
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	post.ID = uuid.New()
	post.Likes = 0
	if err := tx.QueryRow(
		ctx,
		"INSERT INTO posts(id, user_id, username, photo_url, caption, likes) VALUES($1, $2, $3, $4, $5, $6) RETURNING date",
		post.ID,
		post.UserID,
		post.Username,
		post.PhotoURL,
		post.Caption,
		post.Likes,
	).Scan(&post.Date); err != nil {
		return nil, err
	}

	for position, photo := range post.Photos {
		if _, err := tx.Exec(
			ctx,
			"INSERT INTO post_photos(post_id, position, cdn_url, uuid) VALUES($1, $2, $3, $4)",
			post.ID,
			position,
			photo.CDNURL,
			photo.UUID,
		); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	post.UserLikes = []string{}
	return &post, nil
}

const postColumns = `
p.id, p.user_id, p.username, p.photo_url, p.caption, p.likes, p.date,
COALESCE((SELECT array_agg(l.user_id ORDER BY l.created_at) FROM post_likes l WHERE l.post_id = p.id), '{}') AS user_likes,
ph.cdn_url, ph.uuid`

func (r *postRepo) queryPosts(ctx context.Context, query string, args ...interface{}) ([]*model.Post, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	postMap := make(map[uuid.UUID]*model.Post)
	var order []uuid.UUID
	for rows.Next() {
		var (
			id        uuid.UUID
			userID    string
			username  string
			photoURL  string
			caption   string
			likes     int64
			date      time.Time
			userLikes []string
			cdnURL    *string
			photoUUID *uuid.UUID
		)
		if err := rows.Scan(
			&id,
			&userID,
			&username,
			&photoURL,
			&caption,
			&likes,
			&date,
			&userLikes,
			&cdnURL,
			&photoUUID,
		); err != nil {
			return nil, err
		}

		post, exists := postMap[id]
		if !exists {
			post = &model.Post{
				ID:        id,
				UserID:    userID,
				Username:  username,
				PhotoURL:  photoURL,
				Caption:   caption,
				Likes:     likes,
				UserLikes: userLikes,
				Date:      date,
			}
			postMap[id] = post
			order = append(order, id)
		}

		if cdnURL != nil && photoUUID != nil {
			post.Photos = append(post.Photos, model.PhotoMeta{CDNURL: *cdnURL, UUID: *photoUUID})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	posts := make([]*model.Post, 0, len(order))
	for _, id := range order {
		posts = append(posts, postMap[id])
	}

	return posts, nil
}

func (r *postRepo) FindAll(ctx context.Context) ([]*model.Post, error) {
	return r.queryPosts(
		ctx,
		`SELECT `+postColumns+`
		FROM posts p
		LEFT JOIN post_photos ph ON p.id = ph.post_id
		ORDER BY p.date DESC, ph.position ASC`,
	)
}

func (r *postRepo) FindByUserID(ctx context.Context, userID string) ([]*model.Post, error) {
	return r.queryPosts(
		ctx,
		`SELECT `+postColumns+`
		FROM posts p
		LEFT JOIN post_photos ph ON p.id = ph.post_id
		WHERE p.user_id = $1
		ORDER BY p.date DESC, ph.position ASC`,
		userID,
	)
}

func (r *postRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	posts, err := r.queryPosts(
		ctx,
		`SELECT `+postColumns+`
		FROM posts p
		LEFT JOIN post_photos ph ON p.id = ph.post_id
		WHERE p.id = $1
		ORDER BY ph.position ASC`,
		id,
	)
	if err != nil {
		return nil, err
	}

	if len(posts) == 0 {
		return nil, pgx.ErrNoRows
	}

	return posts[0], nil
}

func (r *postRepo) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM posts WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNotOwner
	}

	return nil
}

// Like records or removes the user's membership in the post's like set and
// recomputes the count inside one transaction, so two concurrent toggles
// cannot lose an update.
func (r *postRepo) Like(ctx context.Context, postID uuid.UUID, userID string, unlike bool) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if unlike {
		if _, err := tx.Exec(ctx, "DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2", postID, userID); err != nil {
			return 0, err
		}
	} else {
		if _, err := tx.Exec(ctx, "INSERT INTO post_likes(post_id, user_id) VALUES($1, $2) ON CONFLICT DO NOTHING", postID, userID); err != nil {
			return 0, err
		}
	}

	var likes int64
	if err := tx.QueryRow(
		ctx,
		"UPDATE posts SET likes = (SELECT COUNT(*) FROM post_likes WHERE post_id = $1) WHERE id = $1 RETURNING likes",
		postID,
	).Scan(&likes); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	return likes, nil
}

func (r *postRepo) IsLiked(ctx context.Context, postID uuid.UUID, userID string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM post_likes WHERE post_id = $1 AND user_id = $2)",
		postID,
		userID,
	).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *postRepo) UpdateAuthor(ctx context.Context, userID string, username *string, photoURL *string) error {
	return updateAuthorFields(ctx, r.db, "posts", userID, username, photoURL)
}

// updateAuthorFields rewrites the denormalized author columns on a content
// table for every row owned by the user. Shared by the posts, tweets and
// comments repos; driven by the profile-updated queue consumer.
func updateAuthorFields(ctx context.Context, db *pgxpool.Pool, table string, userID string, username *string, photoURL *string) error {
	query := "UPDATE " + table + " SET "
	args := []interface{}{}
	i := 1

	if username != nil {
		query += ("username = $" + strconv.Itoa(i) + ", ")
		args = append(args, *username)
		i++
	}
	if photoURL != nil {
		query += ("photo_url = $" + strconv.Itoa(i) + ", ")
		args = append(args, *photoURL)
		i++
	}

	if len(args) == 0 {
		return ErrNoFieldsToUpdate
	}

	query = query[:len(query)-2] + " WHERE user_id = $" + strconv.Itoa(i)
	args = append(args, userID)

	_, err := db.Exec(ctx, query, args...)
	return err
}
