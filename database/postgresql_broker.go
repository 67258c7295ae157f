// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"github.com/zestdev/zest/monitoring"
	"github.com/zestdev/zest/shared"
)

type postgreSQLMessage struct {
	ID        string                `json:"id"`
	Channel   shared.PubSubChannel  `json:"topic"`
	Payload   map[string]any        `json:"payload"`
	Timestamp time.Time             `json:"timestamp"`
	SenderID  string                `json:"senderId,omitempty"`
}

type listeningConnection struct {
	conn        *pgxpool.Conn
	subscribers []chan map[string]any
}

// PostgreSQLBroker implements shared.PubSubBroker using PostgreSQL
// LISTEN/NOTIFY. Schedule dispatch runs through it so that an API process and
// a dedicated consumer process can share one queue without extra
// infrastructure.
type PostgreSQLBroker struct {
	db           *pgxpool.Pool
	subscribers  map[shared.PubSubChannel]listeningConnection
	subscribeMux sync.RWMutex
	wg           sync.WaitGroup
	id           string

	// receiveOwnMessages must be enabled when dispatcher and consumer live in
	// the same process.
	receiveOwnMessages bool
}

func NewPostgreSQLBroker(db *pgxpool.Pool) *PostgreSQLBroker {
	return &PostgreSQLBroker{
		db:          db,
		subscribers: make(map[shared.PubSubChannel]listeningConnection),
		id:          uuid.New().String(),
	}
}

func (b *PostgreSQLBroker) SetReceiveOwnMessages(should bool) {
	b.receiveOwnMessages = should
}

func (b *PostgreSQLBroker) Publish(ctx context.Context, channel shared.PubSubChannel, payload map[string]any) error {
	pgMessage := postgreSQLMessage{
		ID:        uuid.New().String(),
		Channel:   channel,
		Payload:   payload,
		Timestamp: time.Now(),
		SenderID:  b.id,
	}

	messageJSON, err := json.Marshal(pgMessage)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	query := fmt.Sprintf("NOTIFY %s, '%s'", pq.QuoteIdentifier(string(pgMessage.Channel)), string(messageJSON))
	if _, err := b.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	slog.Debug("message published", "topic", pgMessage.Channel, "messageID", pgMessage.ID)
	return nil
}

func (b *PostgreSQLBroker) Subscribe(topic shared.PubSubChannel) (<-chan map[string]any, error) {
	b.subscribeMux.Lock()
	defer b.subscribeMux.Unlock()

	ch := make(chan map[string]any, 100)

	if _, exists := b.subscribers[topic]; !exists {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		conn, err := b.db.Acquire(ctx)
		if err != nil {
			close(ch)
			return nil, fmt.Errorf("failed to acquire connection for listening: %w", err)
		}
		if _, err = conn.Exec(context.Background(), "LISTEN "+pq.QuoteIdentifier(string(topic))); err != nil {
			conn.Release()
			close(ch)
			return nil, fmt.Errorf("failed to listen on topic %s: %w", topic, err)
		}

		b.wg.Go(func() {
			b.processMessages(topic, conn)
		})

		b.subscribers[topic] = listeningConnection{conn: conn}
	}

	b.subscribers[topic] = listeningConnection{
		conn:        b.subscribers[topic].conn,
		subscribers: append(b.subscribers[topic].subscribers, ch),
	}

	return ch, nil
}

func (b *PostgreSQLBroker) processMessages(topic shared.PubSubChannel, conn *pgxpool.Conn) {
	for {
		notification, err := conn.Conn().WaitForNotification(context.TODO())
		if err != nil {
			conn.Release()
			monitoring.Alert("could not listen for notifications from PostgreSQL broker", err)
			return
		}
		if notification == nil || notification.Channel != string(topic) {
			continue
		}

		var message postgreSQLMessage
		if err := json.Unmarshal([]byte(notification.Payload), &message); err != nil {
			slog.Error("failed to unmarshal message", "error", err, "payload", notification.Payload)
			continue
		}

		if message.SenderID == b.id && !b.receiveOwnMessages {
			slog.Debug("ignoring message sent by self", "messageID", message.ID, "topic", message.Channel)
			continue
		}

		b.subscribeMux.RLock()
		subscribers := b.subscribers[topic].subscribers
		b.subscribeMux.RUnlock()

		for _, subscriber := range subscribers {
			select {
			case subscriber <- message.Payload:
			default:
				slog.Warn("subscriber channel full, dropping message", "topic", topic, "messageID", message.ID)
			}
		}
	}
}

// IsHealthy checks whether all listening connections are still alive.
func (b *PostgreSQLBroker) IsHealthy() bool {
	b.subscribeMux.RLock()
	defer b.subscribeMux.RUnlock()

	for topic, listeningConn := range b.subscribers {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := listeningConn.conn.Ping(ctx)
		cancel()
		if err != nil {
			slog.Error("listening connection is not healthy", "topic", topic, "error", err)
			return false
		}
	}
	return true
}
