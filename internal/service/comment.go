package service

import (
	"context"
	"strings"

	"github.com/MyCircle/circle-service/internal/dto"
	"github.com/MyCircle/circle-service/internal/model"
	"github.com/MyCircle/circle-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type commentService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newCommentService(logger *zap.Logger, repo *repository.Repository) Comment {
	return &commentService{
		logger: logger,
		repo:   repo,
	}
}

func (s *commentService) Create(ctx context.Context, session model.IdentitySession, input dto.CreateCommentRequest) (*model.Comment, error) {
	text := strings.TrimSpace(input.Comment)
	if text == "" {
		return nil, ErrEmptyComment
	}

	if _, err := s.repo.Postgres.Post.FindByID(ctx, input.PostID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to find post(%s) from postgres: %s", input.PostID.String(), err.Error())
		return nil, ErrInternal
	}

	comment := model.Comment{
		PostID:   input.PostID,
		UserID:   session.UserID,
		Username: session.DisplayName,
		PhotoURL: session.PhotoURL,
		Comment:  text,
	}

	if profile, err := s.repo.Postgres.Profile.FindByUserID(ctx, session.UserID); err == nil {
		comment.Username = profile.DisplayName
		comment.PhotoURL = profile.PhotoURL
	}

	createdComment, err := s.repo.Postgres.Comment.Create(ctx, comment)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) comment on post(%s): %s", session.UserID, input.PostID.String(), err.Error())
		return nil, ErrInternal
	}

	return createdComment, nil
}

func (s *commentService) FindPostComments(ctx context.Context, postID uuid.UUID) ([]*model.Comment, error) {
	comments, err := s.repo.Postgres.Comment.FindPostComments(ctx, postID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find comments of post(%s) from postgres: %s", postID.String(), err.Error())
		return nil, ErrInternal
	}

	return comments, nil
}
