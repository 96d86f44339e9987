package service

import (
	"context"
	"strings"
	"testing"

	"github.com/MyCircle/circle-service/internal/dto"
	"github.com/MyCircle/circle-service/internal/model"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// Validation failures must short-circuit before any store round trip, so the
// services under test are constructed without a repository at all.

func TestTweetCreate_EmptyContentRejected(t *testing.T) {
	svc := newTweetService(zap.NewNop(), nil)
	session := model.IdentitySession{UserID: "u1"}

	_, err := svc.Create(context.Background(), session, dto.CreateTweetRequest{Content: "   "})
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestTweetCreate_OversizeContentRejected(t *testing.T) {
	svc := newTweetService(zap.NewNop(), nil)
	session := model.IdentitySession{UserID: "u1"}

	_, err := svc.Create(context.Background(), session, dto.CreateTweetRequest{
		Content: strings.Repeat("a", model.MaxTweetLength+1),
	})
	assert.ErrorIs(t, err, ErrTweetTooLong)
}

func TestTweetCreate_MultibyteRunesCountedNotBytes(t *testing.T) {
	svc := newTweetService(zap.NewNop(), nil)
	session := model.IdentitySession{UserID: "u1"}

	// 281 runes, far more than 280 bytes worth of UTF-8
	_, err := svc.Create(context.Background(), session, dto.CreateTweetRequest{
		Content: strings.Repeat("é", model.MaxTweetLength+1),
	})
	assert.ErrorIs(t, err, ErrTweetTooLong)
}

func TestCommentCreate_EmptyCommentRejected(t *testing.T) {
	svc := newCommentService(zap.NewNop(), nil)
	session := model.IdentitySession{UserID: "u1"}

	_, err := svc.Create(context.Background(), session, dto.CreateCommentRequest{Comment: " \t "})
	assert.ErrorIs(t, err, ErrEmptyComment)
}

func TestChatSend_EmptyMessageRejected(t *testing.T) {
	svc := newChatService(zap.NewNop(), nil)
	session := model.IdentitySession{UserID: "alice"}

	_, err := svc.Send(context.Background(), session, "bob", "  ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestFollow_SelfFollowRejected(t *testing.T) {
	svc := newProfileService(zap.NewNop(), nil, nil)
	session := model.IdentitySession{UserID: "u1"}

	_, err := svc.Follow(context.Background(), session, "u1")
	assert.ErrorIs(t, err, ErrCannotFollowSelf)

	_, err = svc.Unfollow(context.Background(), session, "u1")
	assert.ErrorIs(t, err, ErrCannotFollowSelf)
}
