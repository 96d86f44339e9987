package postgres

import (
	"context"

	"github.com/MyCircle/circle-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type commentRepo struct {
	db *pgxpool.Pool
}

func newCommentRepo(db *pgxpool.Pool) Comment {
	return &commentRepo{
		db: db,
	}
}

func (r *commentRepo) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	comment.ID = uuid.New()
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO comments(id, post_id, user_id, username, photo_url, comment) VALUES($1, $2, $3, $4, $5, $6) RETURNING created_at",
		comment.ID,
		comment.PostID,
		comment.UserID,
		comment.Username,
		comment.PhotoURL,
		comment.Comment,
	).Scan(&comment.CreatedAt); err != nil {
		return nil, err
	}

	return &comment, nil
}

// FindPostComments returns the post's comments oldest first. A post with no
// comments yields an empty non-nil slice, so callers can tell it apart from
// a failed fetch.
func (r *commentRepo) FindPostComments(ctx context.Context, postID uuid.UUID) ([]*model.Comment, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT c.id, c.post_id, c.user_id, c.username, c.photo_url, c.comment, c.created_at
		FROM comments c
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC`,
		postID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []*model.Comment{}
	for rows.Next() {
		var comment model.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.UserID,
			&comment.Username,
			&comment.PhotoURL,
			&comment.Comment,
			&comment.CreatedAt,
		); err != nil {
			return nil, err
		}
		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *commentRepo) UpdateAuthor(ctx context.Context, userID string, username *string, photoURL *string) error {
	return updateAuthorFields(ctx, r.db, "comments", userID, username, photoURL)
}
