package postgres

import (
	"context"

	"github.com/MyCircle/circle-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type chatRepo struct {
	db *pgxpool.Pool
}

func newChatRepo(db *pgxpool.Pool) Chat {
	return &chatRepo{
		db: db,
	}
}

func (r *chatRepo) Create(ctx context.Context, msg model.ChatMessage) (*model.ChatMessage, error) {
	msg.ID = uuid.New()
	// timestamp is assigned by the store so both participants agree on order
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO chat_messages(id, channel_id, sender_id, text) VALUES($1, $2, $3, $4) RETURNING timestamp",
		msg.ID,
		msg.ChannelID,
		msg.SenderID,
		msg.Text,
	).Scan(&msg.Timestamp); err != nil {
		return nil, err
	}

	return &msg, nil
}

func (r *chatRepo) FindChannelMessages(ctx context.Context, channelID string) ([]*model.ChatMessage, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT m.id, m.channel_id, m.sender_id, m.text, m.timestamp
		FROM chat_messages m
		WHERE m.channel_id = $1
		ORDER BY m.timestamp ASC`,
		channelID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []*model.ChatMessage{}
	for rows.Next() {
		var msg model.ChatMessage
		if err := rows.Scan(
			&msg.ID,
			&msg.ChannelID,
			&msg.SenderID,
			&msg.Text,
			&msg.Timestamp,
		); err != nil {
			return nil, err
		}
		messages = append(messages, &msg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}
