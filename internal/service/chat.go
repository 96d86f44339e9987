package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/MyCircle/circle-service/internal/model"
	"github.com/MyCircle/circle-service/internal/repository"
	"github.com/MyCircle/circle-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ChatSession is the live handle on a two-party channel: history plus a
// subscription that delivers an ascending-sorted snapshot on every push.
// Closed exactly once; nothing is cached across sessions, reopening re-reads
// the full history.
type ChatSession struct {
	ChannelID string

	logger    *zap.Logger
	pubsub    *redis.PubSub
	updates   chan []*model.ChatMessage
	closeOnce sync.Once
	onClose   func()

	mu       sync.Mutex
	messages []*model.ChatMessage
	seen     map[uuid.UUID]struct{}
}

// Updates yields a message-list snapshot on every push. The channel is closed
// when the session is.
func (s *ChatSession) Updates() <-chan []*model.ChatMessage {
	return s.updates
}

func (s *ChatSession) Messages() []*model.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]*model.ChatMessage, len(s.messages))
	copy(snapshot, s.messages)
	return snapshot
}

// Close releases the live subscription. Idempotent; after Close the session
// can deliver no further updates and holds no messages.
func (s *ChatSession) Close() {
	s.closeOnce.Do(func() {
		if err := s.pubsub.Close(); err != nil {
			s.logger.Sugar().Errorf("failed to close chat(%s) subscription: %s", s.ChannelID, err.Error())
		}
		if s.onClose != nil {
			s.onClose()
		}
	})
}

func (s *ChatSession) run() {
	for pushed := range s.pubsub.Channel() {
		var msg model.ChatMessage
		if err := json.Unmarshal([]byte(pushed.Payload), &msg); err != nil {
			s.logger.Sugar().Errorf("failed to unmarshal pushed message on chat(%s): %s", s.ChannelID, err.Error())
			continue
		}

		s.mu.Lock()
		// a message persisted between subscribing and the history read is
		// already in the snapshot and must not be appended twice
		if _, ok := s.seen[msg.ID]; ok {
			s.mu.Unlock()
			continue
		}
		s.seen[msg.ID] = struct{}{}
		s.messages = append(s.messages, &msg)
		// the subscription does not guarantee order
		sort.SliceStable(s.messages, func(i, j int) bool {
			return s.messages[i].Timestamp.Before(s.messages[j].Timestamp)
		})
		snapshot := make([]*model.ChatMessage, len(s.messages))
		copy(snapshot, s.messages)
		s.mu.Unlock()

		// a lagging consumer only ever sees the newest snapshot
		select {
		case s.updates <- snapshot:
		default:
			select {
			case <-s.updates:
			default:
			}
			select {
			case s.updates <- snapshot:
			default:
			}
		}
	}

	s.mu.Lock()
	s.messages = nil
	s.mu.Unlock()
	close(s.updates)
}

type chatService struct {
	logger *zap.Logger
	repo   *repository.Repository

	mu       sync.Mutex
	sessions map[string]*ChatSession
}

func newChatService(logger *zap.Logger, repo *repository.Repository) Chat {
	return &chatService{
		logger:   logger,
		repo:     repo,
		sessions: make(map[string]*ChatSession),
	}
}

// Open establishes the live subscription and then loads the channel history,
// in that order: once the subscription is confirmed, a concurrently sent
// message reaches either the history snapshot or the stream, never neither.
// A client holds at most one session per channel: opening again first releases
// the previous subscription, so listeners cannot leak.
func (s *chatService) Open(ctx context.Context, userID string, peerID string) (*ChatSession, error) {
	channelID := model.ChannelID(userID, peerID)

	pubsub := s.repo.Redis.Default.Subscribe(ctx, redisrepo.ChatChannelKey(channelID))
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		s.logger.Sugar().Errorf("failed to subscribe to chat(%s): %s", channelID, err.Error())
		return nil, ErrInternal
	}

	history, err := s.repo.Postgres.Chat.FindChannelMessages(ctx, channelID)
	if err != nil {
		pubsub.Close()
		s.logger.Sugar().Errorf("failed to load history of chat(%s): %s", channelID, err.Error())
		return nil, ErrInternal
	}

	seen := make(map[uuid.UUID]struct{}, len(history))
	for _, msg := range history {
		seen[msg.ID] = struct{}{}
	}

	key := userID + "/" + channelID

	session := &ChatSession{
		ChannelID: channelID,
		logger:    s.logger,
		pubsub:    pubsub,
		updates:   make(chan []*model.ChatMessage, 1),
		messages:  history,
		seen:      seen,
	}
	session.onClose = func() {
		s.mu.Lock()
		if s.sessions[key] == session {
			delete(s.sessions, key)
		}
		s.mu.Unlock()
	}

	s.mu.Lock()
	if prev, ok := s.sessions[key]; ok {
		prev.Close()
	}
	s.sessions[key] = session
	s.mu.Unlock()

	go session.run()

	return session, nil
}

// Send persists the message with a store-assigned timestamp and publishes it
// to the channel's subscribers; the sender's own echo arrives through the
// same subscription. Persistence failures are returned to the caller.
func (s *chatService) Send(ctx context.Context, session model.IdentitySession, peerID string, text string) (*model.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	channelID := model.ChannelID(session.UserID, peerID)

	created, err := s.repo.Postgres.Chat.Create(ctx, model.ChatMessage{
		ChannelID: channelID,
		SenderID:  session.UserID,
		Text:      text,
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to create message on chat(%s): %s", channelID, err.Error())
		return nil, ErrInternal
	}

	// the message is durable at this point; a failed push only means live
	// listeners catch up on their next open
	if err := s.repo.Redis.Default.Publish(ctx, redisrepo.ChatChannelKey(channelID), created); err != nil {
		s.logger.Sugar().Errorf("failed to publish message on chat(%s): %s", channelID, err.Error())
	}

	return created, nil
}

func (s *chatService) History(ctx context.Context, userID string, peerID string) ([]*model.ChatMessage, error) {
	channelID := model.ChannelID(userID, peerID)

	messages, err := s.repo.Postgres.Chat.FindChannelMessages(ctx, channelID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to load history of chat(%s): %s", channelID, err.Error())
		return nil, ErrInternal
	}

	return messages, nil
}

// CloseAll tears down every live session; used at shutdown.
func (s *chatService) CloseAll() {
	s.mu.Lock()
	sessions := make([]*ChatSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	s.mu.Unlock()

	for _, session := range sessions {
		session.Close()
	}
}
