package chat

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"antar/internal/types"
)

type Storage interface {
	Insert(ctx context.Context, m *Message) error
	ListByTrip(ctx context.Context, tripID types.ID) ([]*Message, error)
	MarkRead(ctx context.Context, tripID, readerID types.ID) error
}

type Service struct {
	store Storage
}

func NewService(store Storage) *Service {
	return &Service{store: store}
}

func (s *Service) Send(ctx context.Context, tripID, senderID, receiverID types.ID, text string) (*Message, error) {
	if text == "" || receiverID == "" {
		return nil, ErrBadRequest
	}
	m := &Message{
		ID:         newID(),
		TripID:     tripID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.Insert(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// History returns the trip's messages oldest first and marks the ones
// addressed to the caller as read.
func (s *Service) History(ctx context.Context, tripID, readerID types.ID) ([]*Message, error) {
	msgs, err := s.store.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if err := s.store.MarkRead(ctx, tripID, readerID); err != nil {
		return nil, err
	}
	return msgs, nil
}

func newID() types.ID {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return types.ID(hex.EncodeToString(b))
}
