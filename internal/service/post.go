package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/MyCircle/circle-service/internal/dto"
	"github.com/MyCircle/circle-service/internal/model"
	"github.com/MyCircle/circle-service/internal/repository"
	"github.com/MyCircle/circle-service/internal/repository/postgres"
	"github.com/MyCircle/circle-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type postService struct {
	logger     *zap.Logger
	repo       *repository.Repository
	httpClient *http.Client
}

func newPostService(logger *zap.Logger, repo *repository.Repository) Post {
	return &postService{
		logger:     logger,
		repo:       repo,
		httpClient: &http.Client{},
	}
}

func (s *postService) Create(ctx context.Context, session model.IdentitySession, input dto.CreatePostRequest) (*model.Post, error) {
	post := model.Post{
		UserID:   session.UserID,
		Username: session.DisplayName,
		PhotoURL: session.PhotoURL,
		Caption:  input.Caption,
	}
	for _, photo := range input.Photos {
		post.Photos = append(post.Photos, model.PhotoMeta{CDNURL: photo.CDNURL, UUID: photo.UUID})
	}

	// the profile is the preferred source of the denormalized author fields;
	// a user who never edited their profile falls back to the token values
	if profile, err := s.repo.Postgres.Profile.FindByUserID(ctx, session.UserID); err == nil {
		post.Username = profile.DisplayName
		post.PhotoURL = profile.PhotoURL
	}

	createdPost, err := s.repo.Postgres.Post.Create(ctx, post)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) post: %s", post.UserID, err.Error())
		return nil, ErrInternal
	}

	s.invalidateListings(ctx, session.UserID)

	return createdPost, nil
}

func (s *postService) invalidateListings(ctx context.Context, userID string) {
	if err := s.repo.Redis.Default.Del(ctx, redisrepo.ALL_POSTS_KEY, redisrepo.UserPostsKey(userID)).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate cached post listings of user(%s): %s", userID, err.Error())
	}
}

func (s *postService) UploadImage(ctx context.Context, file multipart.File, fileHeader *multipart.FileHeader) (string, error) {
	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "image/") {
		return "", ErrFileMustBeImage
	}

	return s.uploadImageToCDN("post-images", file, fileHeader)
}

func (s *postService) uploadImageToCDN(path string, file multipart.File, fileHeader *multipart.FileHeader) (string, error) {
	endpoint := "/upload"
	url := viper.GetString("cdn.origin") + endpoint

	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)

	fileWriter, err := writer.CreateFormFile("file", fileHeader.Filename)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create file part for CDN request: %s", err.Error())
		return "", ErrInternal
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		s.logger.Sugar().Errorf("failed to seek to the start of the file: %s", err.Error())
		return "", ErrInternal
	}

	if _, err := io.Copy(fileWriter, file); err != nil {
		s.logger.Sugar().Errorf("failed to copy file content for CDN request: %s", err.Error())
		return "", ErrInternal
	}

	if err := writer.WriteField("path", path); err != nil {
		s.logger.Sugar().Errorf("failed to write path field for CDN request: %s", err.Error())
		return "", ErrInternal
	}

	if err := writer.Close(); err != nil {
		s.logger.Sugar().Errorf("failed to close writer for CDN request: %s", err.Error())
		return "", ErrInternal
	}

	req, err := http.NewRequest(http.MethodPost, url, &requestBody)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create CDN request: %s", err.Error())
		return "", ErrInternal
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Add("type", "IMAGE")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Sugar().Errorf("failed to do CDN request: %s", err.Error())
		return "", ErrInternal
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.Sugar().Errorf("failed to read response body from CDN: %s", err.Error())
		return "", ErrInternal
	}

	if resp.StatusCode != http.StatusOK {
		var bodyJSON map[string]interface{}
		if err := json.Unmarshal(body, &bodyJSON); err != nil {
			s.logger.Sugar().Errorf("failed to decode error response from CDN: %s", err.Error())
		} else {
			s.logger.Sugar().Errorf("ERROR from CDN endpoint(%s), code(%d), details: %s", endpoint, resp.StatusCode, bodyJSON["details"])
		}
		return "", ErrFailedToUploadPostImageToCDN
	}

	return string(body), nil
}

func (s *postService) FindAll(ctx context.Context) ([]*model.Post, error) {
	cachedPosts, err := redisrepo.GetMany[model.Post](s.repo.Redis.Default, ctx, redisrepo.ALL_POSTS_KEY)
	if err == nil {
		return cachedPosts, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get posts from redis: %s", err.Error())
		return nil, ErrInternal
	}

	posts, err := s.repo.Postgres.Post.FindAll(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find posts from postgres: %s", err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.ALL_POSTS_KEY, posts, time.Minute); err != nil {
		s.logger.Sugar().Errorf("failed to set posts in redis: %s", err.Error())
	}

	return posts, nil
}

func (s *postService) FindByUserID(ctx context.Context, userID string) ([]*model.Post, error) {
	cachedPosts, err := redisrepo.GetMany[model.Post](s.repo.Redis.Default, ctx, redisrepo.UserPostsKey(userID))
	if err == nil {
		return cachedPosts, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get user(%s) posts from redis: %s", userID, err.Error())
		return nil, ErrInternal
	}

	posts, err := s.repo.Postgres.Post.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find user(%s) posts from postgres: %s", userID, err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.UserPostsKey(userID), posts, time.Minute); err != nil {
		s.logger.Sugar().Errorf("failed to set user(%s) posts in redis: %s", userID, err.Error())
	}

	return posts, nil
}

func (s *postService) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	post, err := s.repo.Postgres.Post.FindByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to find post(%s) from postgres: %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	return post, nil
}

// Delete removes the post and drops it from every cached listing, so the next
// feed read reflects the deletion without a full refetch.
func (s *postService) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	if err := s.repo.Postgres.Post.Delete(ctx, id, userID); err != nil {
		if err == postgres.ErrNotOwner {
			return ErrNotOwner
		}

		s.logger.Sugar().Errorf("failed to delete post(%s) of user(%s): %s", id.String(), userID, err.Error())
		return ErrInternal
	}

	s.invalidateListings(ctx, userID)

	return nil
}

func (s *postService) Like(ctx context.Context, id uuid.UUID, userID string, unlike bool) (int64, error) {
	likes, err := s.repo.Postgres.Post.Like(ctx, id, userID, unlike)
	if err != nil {
		s.logger.Sugar().Errorf("failed to update likes on post(%s) by user(%s): %s", id.String(), userID, err.Error())
		return 0, ErrInternal
	}

	if err := s.repo.Redis.Default.Del(ctx, redisrepo.ALL_POSTS_KEY).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate cached posts after like: %s", err.Error())
	}

	return likes, nil
}

func (s *postService) IsLiked(ctx context.Context, id uuid.UUID, userID string) bool {
	isLiked, err := s.repo.Postgres.Post.IsLiked(ctx, id, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check like on post(%s) by user(%s): %s", id.String(), userID, err.Error())
		return false
	}

	return isLiked
}
