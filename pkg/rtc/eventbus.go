// Copyright 2023 LiveKit, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rtc

import (
	"context"
	"sync"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/frostbyte73/core"
	"github.com/gammazero/deque"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-stage/pkg/rtc/types"
	"github.com/livekit/livekit-stage/pkg/seats"
	"github.com/livekit/livekit-stage/pkg/telemetry/prometheus"
)

// SeatInconsistency reports a participant that left the room while still shown on a seat.
type SeatInconsistency struct {
	Room     string
	Identity string
	Index    int
}

type EventBusParams struct {
	Logger logger.Logger
	// called on the bus goroutine, defaults to logging only
	SeatInconsistencyHandler func(SeatInconsistency)
}

// EventBus applies transport events and seat snapshots one at a time, in arrival order,
// on a single goroutine. Readers get copies.
type EventBus struct {
	params EventBusParams
	logger logger.Logger

	lock   sync.Mutex
	queue  deque.Deque[func() bool]
	wake   chan struct{}
	closed core.Fuse

	stateLock    sync.RWMutex
	room         string
	local        *Participant
	participants *orderedmap.OrderedMap[string, *Participant]
	seats        map[string][]seats.SeatSlot

	listenerLock sync.RWMutex
	listeners    []func()
}

func NewEventBus(params EventBusParams) *EventBus {
	if params.Logger == nil {
		params.Logger = logger.GetLogger()
	}
	b := &EventBus{
		params:       params,
		logger:       params.Logger,
		wake:         make(chan struct{}, 1),
		participants: orderedmap.NewOrderedMap[string, *Participant](),
		seats:        make(map[string][]seats.SeatSlot),
	}
	go b.run()
	return b
}

func (b *EventBus) Close() {
	b.closed.Break()
}

func (b *EventBus) IsClosed() bool {
	return b.closed.IsBroken()
}

// OnChange registers a listener called after each applied change. Listeners run on the bus
// goroutine and must not block.
func (b *EventBus) OnChange(f func()) {
	b.listenerLock.Lock()
	b.listeners = append(b.listeners, f)
	b.listenerLock.Unlock()
}

func (b *EventBus) HandleTransportEvent(event types.TransportEvent) {
	b.enqueue(func() bool {
		return b.applyTransportEvent(event)
	})
}

// HandleSeats replaces the cached seats of room with a fresh snapshot.
func (b *EventBus) HandleSeats(room string, slots []seats.SeatSlot) {
	snapshot := make([]seats.SeatSlot, len(slots))
	copy(snapshot, slots)
	b.enqueue(func() bool {
		b.stateLock.Lock()
		b.seats[room] = snapshot
		b.stateLock.Unlock()
		return true
	})
}

// Flush waits until everything enqueued before the call has been applied.
func (b *EventBus) Flush(ctx context.Context) error {
	done := make(chan struct{})
	if !b.enqueue(func() bool {
		close(done)
		return false
	}) {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-b.closed.Watch():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Participants returns the local participant first, then remote participants in join order.
func (b *EventBus) Participants() []*Participant {
	b.stateLock.RLock()
	defer b.stateLock.RUnlock()

	res := make([]*Participant, 0, b.participants.Len()+1)
	if b.local != nil {
		res = append(res, b.local.Clone())
	}
	for el := b.participants.Front(); el != nil; el = el.Next() {
		res = append(res, el.Value.Clone())
	}
	return res
}

func (b *EventBus) Participant(identity string) *Participant {
	b.stateLock.RLock()
	defer b.stateLock.RUnlock()

	if b.local != nil && b.local.Identity == identity {
		return b.local.Clone()
	}
	if p, ok := b.participants.Get(identity); ok {
		return p.Clone()
	}
	return nil
}

func (b *EventBus) LocalParticipant() *Participant {
	b.stateLock.RLock()
	defer b.stateLock.RUnlock()

	return b.local.Clone()
}

// Seats returns the seats of the current room.
func (b *EventBus) Seats() []seats.SeatSlot {
	b.stateLock.RLock()
	defer b.stateLock.RUnlock()

	return b.seatsLocked(b.room)
}

func (b *EventBus) SeatsFor(room string) []seats.SeatSlot {
	b.stateLock.RLock()
	defer b.stateLock.RUnlock()

	return b.seatsLocked(room)
}

func (b *EventBus) Room() string {
	b.stateLock.RLock()
	defer b.stateLock.RUnlock()

	return b.room
}

func (b *EventBus) seatsLocked(room string) []seats.SeatSlot {
	slots := b.seats[room]
	res := make([]seats.SeatSlot, len(slots))
	copy(res, slots)
	return res
}

// ----------------------------------------
// used by the coordinator

// reset starts a fresh view of room. An empty room clears the session view.
func (b *EventBus) reset(room string, local *types.ParticipantInfo) {
	b.enqueue(func() bool {
		b.stateLock.Lock()
		b.room = room
		b.participants = orderedmap.NewOrderedMap[string, *Participant]()
		b.local = nil
		if local != nil {
			b.local = newParticipant(local, true)
		}
		b.stateLock.Unlock()
		prometheus.SetParticipants(0)
		return true
	})
}

// hydrate adds participants that were already in the room before we joined.
func (b *EventBus) hydrate(remote []*types.ParticipantInfo) {
	if len(remote) == 0 {
		return
	}
	b.enqueue(func() bool {
		b.stateLock.Lock()
		for _, info := range remote {
			b.upsertLocked(info)
		}
		n := b.participants.Len()
		b.stateLock.Unlock()
		prometheus.SetParticipants(n)
		return true
	})
}

func (b *EventBus) updateLocal(f func(p *Participant)) {
	b.enqueue(func() bool {
		b.stateLock.Lock()
		defer b.stateLock.Unlock()

		if b.local == nil {
			return false
		}
		f(b.local)
		return true
	})
}

// ----------------------------------------

func (b *EventBus) enqueue(op func() bool) bool {
	if b.closed.IsBroken() {
		return false
	}

	b.lock.Lock()
	b.queue.PushBack(op)
	b.lock.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
	return true
}

func (b *EventBus) run() {
	for {
		b.lock.Lock()
		if b.queue.Len() == 0 {
			b.lock.Unlock()
			select {
			case <-b.wake:
				continue
			case <-b.closed.Watch():
				return
			}
		}
		op := b.queue.PopFront()
		b.lock.Unlock()

		if op() {
			b.notifyListeners()
		}
	}
}

func (b *EventBus) notifyListeners() {
	b.listenerLock.RLock()
	listeners := b.listeners
	b.listenerLock.RUnlock()

	for _, f := range listeners {
		f()
	}
}

func (b *EventBus) applyTransportEvent(event types.TransportEvent) bool {
	b.stateLock.Lock()

	switch event.Kind {
	case types.EventConnected:
		if event.Participant != nil {
			if b.local == nil {
				b.local = newParticipant(event.Participant, true)
			} else {
				b.local.update(event.Participant)
			}
		}

	case types.EventDisconnected:
		b.participants = orderedmap.NewOrderedMap[string, *Participant]()

	case types.EventParticipantJoined:
		if event.Participant == nil {
			b.stateLock.Unlock()
			return false
		}
		b.upsertLocked(event.Participant)

	case types.EventParticipantLeft:
		if event.Participant == nil {
			b.stateLock.Unlock()
			return false
		}
		identity := event.Participant.Identity
		b.participants.Delete(identity)
		if inconsistency := b.checkSeatLocked(identity); inconsistency != nil {
			b.stateLock.Unlock()
			b.reportInconsistency(*inconsistency)
			prometheus.SetParticipants(b.participantCount())
			return true
		}

	case types.EventTrackSubscribed, types.EventTrackUnsubscribed, types.EventTrackMuted:
		if event.Participant == nil || event.Track == nil {
			b.stateLock.Unlock()
			return false
		}
		p := b.trackOwnerLocked(event.Participant)
		switch event.Kind {
		case types.EventTrackSubscribed:
			p.setTrack(event.Track)
		case types.EventTrackUnsubscribed:
			p.removeTrack(event.Track)
		default:
			p.setMuted(event.Track)
		}

	case types.EventError:
		b.stateLock.Unlock()
		b.logger.Warnw("transport error", event.Err)
		return false
	}

	n := b.participants.Len()
	b.stateLock.Unlock()
	prometheus.SetParticipants(n)
	return true
}

func (b *EventBus) upsertLocked(info *types.ParticipantInfo) *Participant {
	if b.local != nil && b.local.Identity == info.Identity {
		b.local.update(info)
		return b.local
	}
	if p, ok := b.participants.Get(info.Identity); ok {
		p.update(info)
		return p
	}
	p := newParticipant(info, false)
	b.participants.Set(info.Identity, p)
	return p
}

// trackOwnerLocked returns the participant a track event refers to. Track events may arrive
// before the participant join, in which case a partial record is created.
func (b *EventBus) trackOwnerLocked(info *types.ParticipantInfo) *Participant {
	if b.local != nil && b.local.Identity == info.Identity {
		return b.local
	}
	if p, ok := b.participants.Get(info.Identity); ok {
		return p
	}
	p := &Participant{Identity: info.Identity, Name: info.Name}
	b.participants.Set(info.Identity, p)
	return p
}

func (b *EventBus) checkSeatLocked(identity string) *SeatInconsistency {
	for _, slot := range b.seats[b.room] {
		if slot.Identity == identity && slot.Confirmed {
			return &SeatInconsistency{
				Room:     b.room,
				Identity: identity,
				Index:    slot.Index,
			}
		}
	}
	return nil
}

func (b *EventBus) reportInconsistency(inconsistency SeatInconsistency) {
	b.logger.Warnw("participant left while seated", nil,
		"room", inconsistency.Room,
		"identity", inconsistency.Identity,
		"seat", inconsistency.Index,
	)
	if b.params.SeatInconsistencyHandler != nil {
		b.params.SeatInconsistencyHandler(inconsistency)
	}
}

func (b *EventBus) participantCount() int {
	b.stateLock.RLock()
	defer b.stateLock.RUnlock()

	return b.participants.Len()
}
