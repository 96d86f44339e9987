package rabbitmq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	PROFILE_UPDATED_QUEUE = "profile.updated"
)

type MQConn struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func New(connString string) (*MQConn, error) {
	conn, err := amqp.Dial(connString)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &MQConn{
		conn:    conn,
		channel: channel,
	}, nil
}

func (m *MQConn) declareQueue(name string) (amqp.Queue, error) {
	return m.channel.QueueDeclare(name, true, false, false, false, nil)
}

func (m *MQConn) Publish(ctx context.Context, queue string, body []byte) error {
	q, err := m.declareQueue(queue)
	if err != nil {
		return err
	}

	return m.channel.PublishWithContext(ctx, "", q.Name, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

func (m *MQConn) Consume(queue string) (<-chan amqp.Delivery, error) {
	q, err := m.declareQueue(queue)
	if err != nil {
		return nil, err
	}

	return m.channel.Consume(q.Name, "", false, false, false, false, nil)
}

func (m *MQConn) Close() error {
	if err := m.channel.Close(); err != nil {
		return err
	}
	return m.conn.Close()
}
