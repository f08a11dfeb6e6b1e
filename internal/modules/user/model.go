// README: User account, profile, and reputation fields.
package user

import (
	"time"

	"antar/internal/types"
)

type Role string

const (
	RoleDriver    Role = "driver"
	RolePassenger Role = "passenger"
	RoleBoth      Role = "both"
)

func (r Role) Valid() bool {
	return r == RoleDriver || r == RolePassenger || r == RoleBoth
}

const DefaultRating = 5.0

type User struct {
	ID             types.ID
	PhoneNumber    string
	FullName       string
	Email          *string
	HashedPassword string
	Role           Role
	IsDriver       bool
	AvatarURL      *string

	// Rating is the 0-5 reputation used by the matching engine.
	Rating         float64
	TripsCompleted int

	// Driver-only fields.
	LicenseType  *string
	VehicleModel *string
	VehiclePlate *string

	// Latest broadcast position, if sharing is enabled.
	CurrentPosition        *types.Point
	LocationUpdatedAt      *time.Time
	LocationSharingEnabled bool

	CreatedAt time.Time
}
