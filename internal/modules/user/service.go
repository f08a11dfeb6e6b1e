// README: User service: profile reads/updates and the reputation lookup used
// by the matching engine.
package user

import (
	"context"
	"errors"

	"antar/internal/types"
)

var ErrNotFound = errors.New("user not found")

type Storage interface {
	Create(ctx context.Context, u *User) error
	Get(ctx context.Context, id types.ID) (*User, error)
	GetByPhone(ctx context.Context, phone string) (*User, error)
	Update(ctx context.Context, u *User) error
	SetCurrentPosition(ctx context.Context, id types.ID, p types.Point) error
}

type Service struct {
	store Storage
}

func NewService(store Storage) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context, id types.ID) (*User, error) {
	return s.store.Get(ctx, id)
}

type UpdateCommand struct {
	FullName               *string
	Email                  *string
	Role                   *Role
	AvatarURL              *string
	LocationSharingEnabled *bool
	LicenseType            *string
	VehicleModel           *string
	VehiclePlate           *string
}

func (s *Service) Update(ctx context.Context, id types.ID, cmd UpdateCommand) (*User, error) {
	u, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if cmd.FullName != nil && *cmd.FullName != "" {
		u.FullName = *cmd.FullName
	}
	if cmd.Email != nil {
		u.Email = cmd.Email
	}
	if cmd.Role != nil && cmd.Role.Valid() {
		u.Role = *cmd.Role
	}
	if cmd.AvatarURL != nil {
		u.AvatarURL = cmd.AvatarURL
	}
	if cmd.LocationSharingEnabled != nil {
		u.LocationSharingEnabled = *cmd.LocationSharingEnabled
	}
	if cmd.LicenseType != nil {
		u.LicenseType = cmd.LicenseType
	}
	if cmd.VehicleModel != nil {
		u.VehicleModel = cmd.VehicleModel
	}
	if cmd.VehiclePlate != nil {
		u.VehiclePlate = cmd.VehiclePlate
	}
	if err := s.store.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// RatingOf satisfies the matching engine's RatingSource.
func (s *Service) RatingOf(ctx context.Context, userID types.ID) (float64, error) {
	u, err := s.store.Get(ctx, userID)
	if err != nil {
		return 0, err
	}
	return u.Rating, nil
}
