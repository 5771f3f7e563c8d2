package seats

import (
	"context"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

// Store is the authoritative holder of seats and bans. Claim and Release are atomic
// test-and-set operations; seat indexes are 1-based.
//
//counterfeiter:generate . Store
type Store interface {
	Claim(ctx context.Context, room string, index int, identity string, meta SeatMetadata) (*SeatSlot, error)
	// Release returns the ban written by a forced release, if any.
	Release(ctx context.Context, room string, index int, identity string, opts ReleaseOptions) (*SeatBan, error)
	// LoadSeats returns occupied seats only.
	LoadSeats(ctx context.Context, room string) ([]SeatSlot, error)
	// LoadBans returns bans newest first, expired ones included.
	LoadBans(ctx context.Context, room string) ([]*SeatBan, error)
	ClearBan(ctx context.Context, banID string) error
	// Subscribe calls onChange after each mutation of room until ctx is done.
	Subscribe(ctx context.Context, room string, onChange func()) error
}
