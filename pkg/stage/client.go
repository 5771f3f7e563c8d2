package stage

import (
	"context"
	"errors"

	"go.uber.org/multierr"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-stage/pkg/rtc"
	"github.com/livekit/livekit-stage/pkg/rtc/types"
	"github.com/livekit/livekit-stage/pkg/seats"
)

var (
	ErrConnectFailed = errors.New("could not connect as broadcaster")
	ErrNotSeated     = errors.New("not seated")
)

type ClientParams struct {
	Coordinator *rtc.Coordinator
	Roster      *seats.Roster
	Logger      logger.Logger
}

// Client ties the seat roster to the room session: taking a seat connects as a publisher,
// leaving it falls back to viewing. Seat snapshots are fed into the coordinator's event bus.
type Client struct {
	coordinator *rtc.Coordinator
	roster      *seats.Roster
	logger      logger.Logger
}

func NewClient(params ClientParams) *Client {
	if params.Logger == nil {
		params.Logger = logger.GetLogger()
	}
	c := &Client{
		coordinator: params.Coordinator,
		roster:      params.Roster,
		logger:      params.Logger,
	}
	c.roster.OnUpdate(c.coordinator.Bus().HandleSeats)
	return c
}

func (c *Client) Coordinator() *rtc.Coordinator {
	return c.coordinator
}

func (c *Client) Roster() *seats.Roster {
	return c.roster
}

// Join connects to room as a viewer and starts following its seats.
func (c *Client) Join(ctx context.Context, room, identity string, opts rtc.ConnectOptions) bool {
	if !c.coordinator.Connect(ctx, room, identity, types.CapabilityViewer, opts) {
		return false
	}
	if _, err := c.roster.ListSeats(ctx, room); err != nil {
		c.logger.Warnw("could not load seats", err, "room", room)
	}
	return true
}

// Watch keeps the seat view of room current until ctx is done.
func (c *Client) Watch(ctx context.Context, room string) error {
	ch, err := c.roster.Watch(ctx, room)
	if err != nil {
		return err
	}
	go func() {
		// snapshots reach the bus through the roster update hook
		for range ch {
		}
	}()
	return nil
}

// TakeSeat claims the seat at zero-based position, then connects with publish capability and
// starts publishing. A claim made by this call is released again when the connect fails; a
// seat already held before the call is kept. A publish failure keeps both the seat and the
// connection and is returned along with the seat.
func (c *Client) TakeSeat(ctx context.Context, room string, position int, identity string, meta seats.SeatMetadata, opts rtc.ConnectOptions) (*seats.SeatSlot, error) {
	held := c.roster.SeatOf(room, identity)
	slot, err := c.roster.ClaimSeat(ctx, room, position, identity, meta)
	if err != nil {
		return nil, err
	}
	acquired := held == nil || held.Index != slot.Index

	opts.AutoPublish = false
	prevErr := c.coordinator.LastError()
	if !c.coordinator.Connect(ctx, room, identity, types.CapabilityPublisher, opts) {
		if acquired {
			if _, releaseErr := c.roster.ReleaseSeat(ctx, room, slot.Index-1, identity, seats.ReleaseOptions{}); releaseErr != nil {
				c.logger.Warnw("could not release seat after failed connect", releaseErr, "room", room, "seat", slot.Index)
			}
		}
		if lastErr := c.coordinator.LastError(); lastErr != nil && lastErr != prevErr {
			return nil, multierr.Combine(ErrConnectFailed, lastErr)
		}
		return nil, ErrConnectFailed
	}

	if err = c.coordinator.StartPublishing(ctx, opts.Publish); err != nil {
		c.logger.Warnw("seated without media", err, "room", room, "seat", slot.Index)
		return slot, err
	}
	return slot, nil
}

// LeaveSeat releases the seat held by identity and reconnects as a viewer.
func (c *Client) LeaveSeat(ctx context.Context, room, identity string) error {
	slot := c.roster.SeatOf(room, identity)
	if slot == nil {
		return ErrNotSeated
	}
	if _, err := c.roster.ReleaseSeat(ctx, room, slot.Index-1, identity, seats.ReleaseOptions{}); err != nil {
		return err
	}

	key, connected := c.coordinator.Session()
	if connected && key.Room == room && key.Identity == identity && key.Mode == types.CapabilityPublisher {
		if !c.coordinator.Connect(ctx, room, identity, types.CapabilityViewer, rtc.ConnectOptions{}) {
			c.logger.Infow("could not switch to viewer after leaving seat", "room", room)
		}
	}
	return nil
}

// Participants returns the current room members with their seat, zero when not seated.
func (c *Client) Participants() []SeatedParticipant {
	bus := c.coordinator.Bus()
	slots := bus.Seats()
	res := make([]SeatedParticipant, 0)
	for _, p := range bus.Participants() {
		sp := SeatedParticipant{Participant: *p}
		for _, s := range slots {
			if s.Identity == p.Identity {
				sp.Seat = s.Index
				break
			}
		}
		res = append(res, sp)
	}
	return res
}

type SeatedParticipant struct {
	rtc.Participant
	Seat int
}

func (c *Client) Close() {
	c.coordinator.Close()
	c.coordinator.Bus().Close()
}
