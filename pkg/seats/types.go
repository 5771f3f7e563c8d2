package seats

import (
	"strings"
	"time"
)

const (
	RoleBroadcaster = "broadcaster"
	RoleGuest       = "guest"
)

type SeatMetadata struct {
	DisplayName string `json:"display_name,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Role        string `json:"role,omitempty"`
}

// SeatSlot is one position on the stage. Index is 1-based.
type SeatSlot struct {
	Room       string       `json:"room"`
	Index      int          `json:"index"`
	Identity   string       `json:"identity,omitempty"`
	Metadata   SeatMetadata `json:"metadata"`
	AssignedAt time.Time    `json:"assigned_at,omitempty"`

	// false while a local claim is waiting on the store
	Confirmed bool `json:"-"`
}

func (s *SeatSlot) IsEmpty() bool {
	return s.Identity == ""
}

type SeatBan struct {
	ID        string     `json:"id"`
	Room      string     `json:"room"`
	Identity  string     `json:"identity"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Reason    string     `json:"reason,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Active reports whether the ban still applies at now. A nil expiry is permanent.
func (b *SeatBan) Active(now time.Time) bool {
	return b.ExpiresAt == nil || now.Before(*b.ExpiresAt)
}

func (b *SeatBan) IsPermanent() bool {
	return b.ExpiresAt == nil
}

type ReleaseOptions struct {
	// Force empties the slot regardless of who holds it.
	Force        bool
	BanDuration  time.Duration
	BanPermanent bool
	Reason       string
}

func (o ReleaseOptions) WantsBan() bool {
	return o.Force && (o.BanPermanent || o.BanDuration > 0)
}

// banExpiry returns nil for a permanent ban.
func (o ReleaseOptions) banExpiry(now time.Time) *time.Time {
	if o.BanPermanent {
		return nil
	}
	t := now.Add(o.BanDuration)
	return &t
}

// NormalizeRole folds staff roles into broadcaster.
func NormalizeRole(role string) string {
	switch r := strings.ToLower(strings.TrimSpace(role)); r {
	case "admin", "moderator", "host", RoleBroadcaster:
		return RoleBroadcaster
	default:
		return r
	}
}

func emptySlot(room string, index int) SeatSlot {
	return SeatSlot{
		Room:      room,
		Index:     index,
		Confirmed: true,
	}
}

func emptySlots(room string, n int) []SeatSlot {
	slots := make([]SeatSlot, n)
	for i := range slots {
		slots[i] = emptySlot(room, i+1)
	}
	return slots
}

// Layout places occupied seats into a full list of n slots. Seats outside 1..n are dropped.
func Layout(room string, n int, occupied []SeatSlot) []SeatSlot {
	slots := emptySlots(room, n)
	for _, slot := range occupied {
		if slot.Index < 1 || slot.Index > n {
			continue
		}
		slot.Confirmed = true
		slots[slot.Index-1] = slot
	}
	return slots
}
