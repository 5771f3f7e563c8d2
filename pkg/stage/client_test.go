package stage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/livekit/livekit-stage/pkg/config"
	"github.com/livekit/livekit-stage/pkg/rtc"
	"github.com/livekit/livekit-stage/pkg/rtc/types"
	"github.com/livekit/livekit-stage/pkg/rtc/types/typesfakes"
	"github.com/livekit/livekit-stage/pkg/seats"
	"github.com/livekit/livekit-stage/pkg/stage"
)

type testClient struct {
	*stage.Client
	factory *typesfakes.FakeTransportFactory
	devices *typesfakes.FakeMediaDevices
}

func newTestClient(t *testing.T, store seats.Store, identity string, connectErr error) *testClient {
	gateway := &typesfakes.FakeCredentialGateway{}
	gateway.IssueJoinCredentialReturns(&types.Credential{Token: "token"}, nil)

	factory := &typesfakes.FakeTransportFactory{}
	factory.OpenStub = func(string) (types.RoomTransport, error) {
		tr := &typesfakes.FakeRoomTransport{}
		tr.ConnectReturns(connectErr)
		tr.LocalParticipantReturns(&types.ParticipantInfo{Identity: identity})
		tr.PublishTrackStub = func(_ context.Context, track types.LocalTrack) (*types.TrackInfo, error) {
			return &types.TrackInfo{SID: "TR_" + track.ID(), Kind: track.Kind()}, nil
		}
		return tr, nil
	}

	devices := &typesfakes.FakeMediaDevices{}
	devices.CaptureVideoStub = func(context.Context, types.VideoOptions) (types.LocalTrack, error) {
		track := &typesfakes.FakeLocalTrack{}
		track.IDReturns("camera")
		track.KindReturns(types.TrackKindVideo)
		return track, nil
	}
	devices.CaptureAudioStub = func(context.Context, types.AudioOptions) (types.LocalTrack, error) {
		track := &typesfakes.FakeLocalTrack{}
		track.IDReturns("mic")
		track.KindReturns(types.TrackKindAudio)
		return track, nil
	}

	coordinator := rtc.NewCoordinator(rtc.CoordinatorParams{
		Config:     config.SessionConfig{ConnectTimeout: time.Second},
		Gateway:    gateway,
		Transports: factory,
		Devices:    devices,
	})
	roster := seats.NewRoster(seats.RosterParams{
		Store: store,
		Config: config.SeatsConfig{
			Count:           9,
			ClaimTimeout:    time.Second,
			RefreshDebounce: 10 * time.Millisecond,
		},
	})
	c := stage.NewClient(stage.ClientParams{Coordinator: coordinator, Roster: roster})
	t.Cleanup(c.Close)
	return &testClient{Client: c, factory: factory, devices: devices}
}

func flush(t *testing.T, c *stage.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, c.Coordinator().Bus().Flush(ctx))
}

func TestTakeSeat(t *testing.T) {
	ctx := context.Background()
	store := seats.NewLocalStore(9)
	alice := newTestClient(t, store, "alice", nil)
	bob := newTestClient(t, store, "bob", nil)

	require.True(t, alice.Join(ctx, "stage", "alice", rtc.ConnectOptions{}))
	require.True(t, bob.Join(ctx, "stage", "bob", rtc.ConnectOptions{}))

	slot, err := alice.TakeSeat(ctx, "stage", 2, "alice", seats.SeatMetadata{DisplayName: "Alice"}, rtc.ConnectOptions{})
	require.NoError(t, err)
	require.Equal(t, 3, slot.Index)

	key, ok := alice.Coordinator().Session()
	require.True(t, ok)
	require.Equal(t, types.CapabilityPublisher, key.Mode)
	require.Equal(t, 2, alice.devices.CaptureVideoCallCount()+alice.devices.CaptureAudioCallCount())

	_, err = bob.TakeSeat(ctx, "stage", 2, "bob", seats.SeatMetadata{}, rtc.ConnectOptions{})
	require.ErrorIs(t, err, seats.ErrAlreadyOccupied)
	key, _ = bob.Coordinator().Session()
	require.Equal(t, types.CapabilityViewer, key.Mode)

	flush(t, alice.Client)
	seated := alice.Participants()
	require.Len(t, seated, 1)
	require.Equal(t, 3, seated[0].Seat)
	require.Equal(t, "alice", seated[0].Identity)

	require.NoError(t, alice.LeaveSeat(ctx, "stage", "alice"))
	key, _ = alice.Coordinator().Session()
	require.Equal(t, types.CapabilityViewer, key.Mode)
	require.ErrorIs(t, alice.LeaveSeat(ctx, "stage", "alice"), stage.ErrNotSeated)

	slot, err = bob.TakeSeat(ctx, "stage", 2, "bob", seats.SeatMetadata{}, rtc.ConnectOptions{})
	require.NoError(t, err)
	require.Equal(t, 3, slot.Index)
}

func TestTakeSeatConnectFailure(t *testing.T) {
	ctx := context.Background()
	store := seats.NewLocalStore(9)
	c := newTestClient(t, store, "alice", errors.New("ice failed"))

	_, err := c.TakeSeat(ctx, "stage", 0, "alice", seats.SeatMetadata{}, rtc.ConnectOptions{})
	require.ErrorIs(t, err, stage.ErrConnectFailed)
	require.ErrorIs(t, err, rtc.ErrTransport)

	// the claim was given back
	loaded, err := store.LoadSeats(ctx, "stage")
	require.NoError(t, err)
	require.Empty(t, loaded)
	require.Nil(t, c.Roster().SeatOf("stage", "alice"))
}

func TestTakeSeatConnectFailureKeepsHeldSeat(t *testing.T) {
	ctx := context.Background()
	store := seats.NewLocalStore(9)
	c := newTestClient(t, store, "alice", nil)

	slot, err := c.TakeSeat(ctx, "stage", 4, "alice", seats.SeatMetadata{}, rtc.ConnectOptions{})
	require.NoError(t, err)
	require.Equal(t, 5, slot.Index)
	require.True(t, c.Coordinator().Disconnect())

	failing := c.factory.OpenStub
	c.factory.OpenStub = func(room string) (types.RoomTransport, error) {
		tr, err := failing(room)
		if err != nil {
			return nil, err
		}
		tr.(*typesfakes.FakeRoomTransport).ConnectReturns(errors.New("ice failed"))
		return tr, nil
	}

	_, err = c.TakeSeat(ctx, "stage", 4, "alice", seats.SeatMetadata{}, rtc.ConnectOptions{})
	require.ErrorIs(t, err, stage.ErrConnectFailed)
	require.ErrorIs(t, err, rtc.ErrTransport)

	// the seat held before the call is still ours
	loaded, err := store.LoadSeats(ctx, "stage")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Equal(t, "alice", loaded[0].Identity)
	require.Equal(t, 5, loaded[0].Index)
	require.NotNil(t, c.Roster().SeatOf("stage", "alice"))
}

func TestTakeSeatPublishFailure(t *testing.T) {
	ctx := context.Background()
	store := seats.NewLocalStore(9)
	c := newTestClient(t, store, "alice", nil)
	c.devices.CaptureVideoStub = nil
	c.devices.CaptureVideoReturns(nil, errors.New("no camera"))

	slot, err := c.TakeSeat(ctx, "stage", 0, "alice", seats.SeatMetadata{}, rtc.ConnectOptions{})
	require.Error(t, err)
	require.NotNil(t, slot)
	require.Equal(t, types.StateConnected, c.Coordinator().State())
	require.NotNil(t, c.Roster().SeatOf("stage", "alice"))
}

func TestWatchFeedsBus(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := seats.NewLocalStore(9)
	viewer := newTestClient(t, store, "viewer", nil)

	require.True(t, viewer.Join(ctx, "stage", "viewer", rtc.ConnectOptions{}))
	require.NoError(t, viewer.Watch(ctx, "stage"))

	_, err := store.Claim(ctx, "stage", 5, "carol", seats.SeatMetadata{DisplayName: "Carol"})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		slots := viewer.Coordinator().Bus().Seats()
		return len(slots) == 9 && slots[4].Identity == "carol"
	}, 2*time.Second, 10*time.Millisecond)
}
