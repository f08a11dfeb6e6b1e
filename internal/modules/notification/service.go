package notification

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"antar/internal/types"
)

type Storage interface {
	Insert(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID types.ID) ([]*Notification, error)
	MarkRead(ctx context.Context, id, userID types.ID) error
	MarkAllRead(ctx context.Context, userID types.ID) error
}

type Service struct {
	store Storage
}

func NewService(store Storage) *Service {
	return &Service{store: store}
}

// Submit satisfies the matching engine's Notifier.
func (s *Service) Submit(ctx context.Context, userID types.ID, kind, title, message string, relatedID types.ID) error {
	n := &Notification{
		ID:        newID(),
		UserID:    userID,
		Kind:      kind,
		Title:     title,
		Message:   message,
		RelatedID: relatedID,
		CreatedAt: time.Now().UTC(),
	}
	return s.store.Insert(ctx, n)
}

func (s *Service) List(ctx context.Context, userID types.ID) ([]*Notification, error) {
	return s.store.ListByUser(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, id, userID types.ID) error {
	return s.store.MarkRead(ctx, id, userID)
}

func (s *Service) MarkAllRead(ctx context.Context, userID types.ID) error {
	return s.store.MarkAllRead(ctx, userID)
}

func newID() types.ID {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return types.ID(hex.EncodeToString(b))
}
