// README: Chat messages exchanged between matched riders on a trip.
package chat

import (
	"errors"
	"time"

	"antar/internal/types"
)

var (
	ErrNotFound   = errors.New("message not found")
	ErrBadRequest = errors.New("bad request")
)

type Message struct {
	ID         types.ID  `json:"id"`
	TripID     types.ID  `json:"trip_id"`
	SenderID   types.ID  `json:"sender_id"`
	ReceiverID types.ID  `json:"receiver_id"`
	Text       string    `json:"text"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}
