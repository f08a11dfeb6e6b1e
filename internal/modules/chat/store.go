package chat

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"antar/internal/types"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Insert(ctx context.Context, m *Message) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO messages (id, trip_id, sender_id, receiver_id, text, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.TripID, m.SenderID, m.ReceiverID, m.Text, m.Read, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (s *Store) ListByTrip(ctx context.Context, tripID types.ID) ([]*Message, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, trip_id, sender_id, receiver_id, text, read, created_at
		FROM messages WHERE trip_id = $1 ORDER BY created_at`, tripID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var out []*Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.TripID, &m.SenderID, &m.ReceiverID, &m.Text, &m.Read, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (s *Store) MarkRead(ctx context.Context, tripID, readerID types.ID) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE messages SET read = true
		WHERE trip_id = $1 AND receiver_id = $2 AND read = false`, tripID, readerID)
	if err != nil {
		return fmt.Errorf("mark messages read: %w", err)
	}
	return nil
}
