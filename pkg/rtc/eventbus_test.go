package rtc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/livekit/livekit-stage/pkg/rtc/types"
	"github.com/livekit/livekit-stage/pkg/seats"
)

func newTestBus(t *testing.T, handler func(SeatInconsistency)) *EventBus {
	bus := NewEventBus(EventBusParams{SeatInconsistencyHandler: handler})
	t.Cleanup(bus.Close)
	return bus
}

func flushBus(t *testing.T, bus *EventBus) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, bus.Flush(ctx))
}

func TestEventBusParticipants(t *testing.T) {
	bus := newTestBus(t, nil)
	bus.reset("stage", nil)
	bus.HandleTransportEvent(types.TransportEvent{
		Kind:        types.EventConnected,
		Participant: &types.ParticipantInfo{Identity: "alice"},
	})
	for _, identity := range []string{"bob", "carol", "dave"} {
		bus.HandleTransportEvent(types.TransportEvent{
			Kind:        types.EventParticipantJoined,
			Participant: &types.ParticipantInfo{Identity: identity},
		})
	}
	bus.HandleTransportEvent(types.TransportEvent{
		Kind:        types.EventParticipantLeft,
		Participant: &types.ParticipantInfo{Identity: "carol"},
	})
	flushBus(t, bus)

	var identities []string
	for _, p := range bus.Participants() {
		identities = append(identities, p.Identity)
	}
	require.Equal(t, []string{"alice", "bob", "dave"}, identities)
	require.True(t, bus.LocalParticipant().IsLocal)
	require.Equal(t, "stage", bus.Room())

	// readers get copies
	p := bus.Participant("bob")
	p.Name = "changed"
	require.Empty(t, bus.Participant("bob").Name)

	bus.HandleTransportEvent(types.TransportEvent{Kind: types.EventDisconnected})
	flushBus(t, bus)
	require.Len(t, bus.Participants(), 1)
}

func TestEventBusTracks(t *testing.T) {
	bus := newTestBus(t, nil)
	bus.reset("stage", nil)

	bob := &types.ParticipantInfo{Identity: "bob"}
	// track before join creates a partial participant
	bus.HandleTransportEvent(types.TransportEvent{
		Kind:        types.EventTrackSubscribed,
		Participant: bob,
		Track:       &types.TrackInfo{SID: "TR_v", Kind: types.TrackKindVideo},
	})
	flushBus(t, bus)
	p := bus.Participant("bob")
	require.NotNil(t, p)
	require.True(t, p.CameraEnabled)
	require.False(t, p.MicrophoneEnabled)

	bus.HandleTransportEvent(types.TransportEvent{
		Kind:        types.EventParticipantJoined,
		Participant: &types.ParticipantInfo{Identity: "bob", Name: "Bob"},
	})
	bus.HandleTransportEvent(types.TransportEvent{
		Kind:        types.EventTrackSubscribed,
		Participant: bob,
		Track:       &types.TrackInfo{SID: "TR_a", Kind: types.TrackKindAudio},
	})
	bus.HandleTransportEvent(types.TransportEvent{
		Kind:        types.EventTrackMuted,
		Participant: bob,
		Track:       &types.TrackInfo{SID: "TR_a", Kind: types.TrackKindAudio, Muted: true},
	})
	flushBus(t, bus)
	p = bus.Participant("bob")
	require.Equal(t, "Bob", p.Name)
	require.True(t, p.CameraEnabled)
	require.False(t, p.MicrophoneEnabled)
	require.NotNil(t, p.AudioTrack)

	// stale unsubscribe for a replaced track is ignored
	bus.HandleTransportEvent(types.TransportEvent{
		Kind:        types.EventTrackUnsubscribed,
		Participant: bob,
		Track:       &types.TrackInfo{SID: "TR_old", Kind: types.TrackKindVideo},
	})
	bus.HandleTransportEvent(types.TransportEvent{
		Kind:        types.EventTrackUnsubscribed,
		Participant: bob,
		Track:       &types.TrackInfo{SID: "TR_a", Kind: types.TrackKindAudio},
	})
	flushBus(t, bus)
	p = bus.Participant("bob")
	require.True(t, p.CameraEnabled)
	require.Nil(t, p.AudioTrack)
}

func TestEventBusSeatCrossCheck(t *testing.T) {
	var reported []SeatInconsistency
	bus := newTestBus(t, func(inconsistency SeatInconsistency) {
		// runs on the bus goroutine
		reported = append(reported, inconsistency)
	})
	bus.reset("stage", nil)
	bus.HandleSeats("stage", []seats.SeatSlot{
		{Room: "stage", Index: 1, Identity: "bob", Confirmed: true},
		{Room: "stage", Index: 2, Identity: "carol"},
		{Room: "stage", Index: 3},
	})
	for _, identity := range []string{"bob", "carol", "dave"} {
		bus.HandleTransportEvent(types.TransportEvent{
			Kind:        types.EventParticipantJoined,
			Participant: &types.ParticipantInfo{Identity: identity},
		})
		bus.HandleTransportEvent(types.TransportEvent{
			Kind:        types.EventParticipantLeft,
			Participant: &types.ParticipantInfo{Identity: identity},
		})
	}
	flushBus(t, bus)

	// unconfirmed claims are not reported
	require.Equal(t, []SeatInconsistency{{Room: "stage", Identity: "bob", Index: 1}}, reported)
	require.Len(t, bus.Seats(), 3)
	require.Empty(t, bus.SeatsFor("other"))
}

func TestEventBusOrderAndListeners(t *testing.T) {
	bus := newTestBus(t, nil)
	var changes atomic.Int32
	bus.OnChange(func() { changes.Inc() })

	bus.reset("stage", nil)
	bus.HandleTransportEvent(types.TransportEvent{
		Kind:        types.EventParticipantJoined,
		Participant: &types.ParticipantInfo{Identity: "bob", Name: "first"},
	})
	bus.HandleTransportEvent(types.TransportEvent{
		Kind:        types.EventParticipantJoined,
		Participant: &types.ParticipantInfo{Identity: "bob", Name: "second"},
	})
	// ignored events do not notify
	bus.HandleTransportEvent(types.TransportEvent{Kind: types.EventParticipantJoined})
	bus.HandleTransportEvent(types.TransportEvent{Kind: types.EventError})
	flushBus(t, bus)

	require.Equal(t, "second", bus.Participant("bob").Name)
	require.Equal(t, int32(3), changes.Load())
}

func TestEventBusClosed(t *testing.T) {
	bus := NewEventBus(EventBusParams{})
	bus.Close()

	bus.HandleTransportEvent(types.TransportEvent{
		Kind:        types.EventParticipantJoined,
		Participant: &types.ParticipantInfo{Identity: "bob"},
	})
	require.NoError(t, bus.Flush(context.Background()))
	require.Nil(t, bus.Participant("bob"))
}
