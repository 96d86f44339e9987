package postgres

import (
	"context"

	"github.com/MyCircle/circle-service/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type profileRepo struct {
	db *pgxpool.Pool
}

func newProfileRepo(db *pgxpool.Pool) Profile {
	return &profileRepo{
		db: db,
	}
}

// profileColumns selects a profile row with both counters derived from the
// follows table, so the follower/following pair cannot diverge.
const profileColumns = `
u.user_id, u.display_name, u.photo_url, u.user_bio,
(SELECT COUNT(*) FROM follows f WHERE f.followee_id = u.user_id) AS followers,
(SELECT COUNT(*) FROM follows f WHERE f.follower_id = u.user_id) AS following`

func (r *profileRepo) Upsert(ctx context.Context, profile model.UserProfile) (*model.UserProfile, error) {
	if err := r.db.QueryRow(
		ctx,
		`INSERT INTO users(user_id, display_name, photo_url, user_bio) VALUES($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET display_name = EXCLUDED.display_name, photo_url = EXCLUDED.photo_url, user_bio = EXCLUDED.user_bio
		RETURNING user_id, display_name, photo_url, user_bio`,
		profile.UserID,
		profile.DisplayName,
		profile.PhotoURL,
		profile.UserBio,
	).Scan(
		&profile.UserID,
		&profile.DisplayName,
		&profile.PhotoURL,
		&profile.UserBio,
	); err != nil {
		return nil, err
	}

	return r.FindByUserID(ctx, profile.UserID)
}

func (r *profileRepo) FindByUserID(ctx context.Context, userID string) (*model.UserProfile, error) {
	var profile model.UserProfile
	if err := r.db.QueryRow(
		ctx,
		"SELECT "+profileColumns+" FROM users u WHERE u.user_id = $1",
		userID,
	).Scan(
		&profile.UserID,
		&profile.DisplayName,
		&profile.PhotoURL,
		&profile.UserBio,
		&profile.Followers,
		&profile.Following,
	); err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileRepo) FindAllExcept(ctx context.Context, userID string) ([]*model.UserProfile, error) {
	rows, err := r.db.Query(
		ctx,
		"SELECT "+profileColumns+" FROM users u WHERE u.user_id != $1 ORDER BY u.display_name",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*model.UserProfile
	for rows.Next() {
		var profile model.UserProfile
		if err := rows.Scan(
			&profile.UserID,
			&profile.DisplayName,
			&profile.PhotoURL,
			&profile.UserBio,
			&profile.Followers,
			&profile.Following,
		); err != nil {
			return nil, err
		}
		profiles = append(profiles, &profile)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}

func (r *profileRepo) Follow(ctx context.Context, followerID string, followeeID string) (bool, error) {
	tag, err := r.db.Exec(
		ctx,
		"INSERT INTO follows(follower_id, followee_id) VALUES($1, $2) ON CONFLICT DO NOTHING",
		followerID,
		followeeID,
	)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (r *profileRepo) Unfollow(ctx context.Context, followerID string, followeeID string) (bool, error) {
	tag, err := r.db.Exec(
		ctx,
		"DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2",
		followerID,
		followeeID,
	)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (r *profileRepo) IsFollowing(ctx context.Context, followerID string, followeeID string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)",
		followerID,
		followeeID,
	).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *profileRepo) FindFollowing(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.Query(
		ctx,
		"SELECT followee_id FROM follows WHERE follower_id = $1 ORDER BY followee_id",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var followees []string
	for rows.Next() {
		var followeeID string
		if err := rows.Scan(&followeeID); err != nil {
			return nil, err
		}
		followees = append(followees, followeeID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return followees, nil
}

func (r *profileRepo) FindFollowers(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.Query(
		ctx,
		"SELECT follower_id FROM follows WHERE followee_id = $1 ORDER BY follower_id",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var followers []string
	for rows.Next() {
		var followerID string
		if err := rows.Scan(&followerID); err != nil {
			return nil, err
		}
		followers = append(followers, followerID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return followers, nil
}
