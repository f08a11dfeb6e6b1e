package user

import (
	"crypto/rand"
	"encoding/hex"

	"antar/internal/types"
)

func NewID() types.ID {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return types.ID(hex.EncodeToString(b))
}
