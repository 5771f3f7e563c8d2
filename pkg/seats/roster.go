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

package seats

import (
	"context"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/pkg/errors"
	"github.com/thoas/go-funk"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-stage/pkg/config"
	"github.com/livekit/livekit-stage/pkg/telemetry/prometheus"
	"github.com/livekit/livekit-stage/pkg/utils"
)

type RosterParams struct {
	Store  Store
	Config config.SeatsConfig
	Logger logger.Logger
}

type claimRecord struct {
	identity string
	at       time.Time
}

type roomSeats struct {
	loaded bool
	slots  []SeatSlot
	// index => claim made by this roster, kept for the grace window
	recent  map[int]claimRecord
	watches map[string]*seatWatch
}

// Roster is a read-through cache of seats in front of a Store. Every decision about
// ownership is made by the store; the cache only serves reads and optimistic updates.
type Roster struct {
	params RosterParams
	logger logger.Logger

	lock     sync.Mutex
	rooms    map[string]*roomSeats
	onUpdate func(room string, slots []SeatSlot)
}

func NewRoster(params RosterParams) *Roster {
	if params.Logger == nil {
		params.Logger = logger.GetLogger()
	}
	if params.Config.Count < 1 {
		params.Config.Count = config.DefaultConfig.Seats.Count
	}
	if params.Config.ClaimTimeout <= 0 {
		params.Config.ClaimTimeout = config.DefaultConfig.Seats.ClaimTimeout
	}
	return &Roster{
		params: params,
		logger: params.Logger,
		rooms:  make(map[string]*roomSeats),
	}
}

func (r *Roster) NumSeats() int {
	return r.params.Config.Count
}

// OnUpdate is called with a fresh snapshot whenever the cached seats of a room change.
func (r *Roster) OnUpdate(f func(room string, slots []SeatSlot)) {
	r.lock.Lock()
	r.onUpdate = f
	r.lock.Unlock()
}

// ListSeats returns exactly NumSeats slots, empty ones included.
func (r *Roster) ListSeats(ctx context.Context, room string) ([]SeatSlot, error) {
	r.lock.Lock()
	rs := r.getRoomLocked(room)
	if rs.loaded {
		slots := copySlots(rs.slots)
		r.lock.Unlock()
		return slots, nil
	}
	r.lock.Unlock()

	return r.Refresh(ctx, room)
}

// Refresh reloads a room from the store.
func (r *Roster) Refresh(ctx context.Context, room string) ([]SeatSlot, error) {
	loaded, err := r.params.Store.LoadSeats(ctx, room)
	if err != nil {
		return nil, errors.Wrap(err, "could not load seats")
	}

	r.lock.Lock()
	rs := r.getRoomLocked(room)
	r.applyLocked(room, rs, loaded)
	slots := copySlots(rs.slots)
	r.lock.Unlock()

	r.publish(room, slots)
	return slots, nil
}

func (r *Roster) applyLocked(room string, rs *roomSeats, loaded []SeatSlot) {
	n := r.NumSeats()
	next := emptySlots(room, n)
	for _, slot := range loaded {
		if slot.Index < 1 || slot.Index > n {
			r.logger.Warnw("ignoring seat outside of roster", nil, "room", room, "index", slot.Index)
			continue
		}
		slot.Confirmed = true
		next[slot.Index-1] = slot
	}

	now := time.Now()
	grace := r.params.Config.ClaimGrace
	for i := range next {
		if !next[i].IsEmpty() {
			continue
		}
		prev := rs.slots[i]
		if prev.IsEmpty() {
			continue
		}
		if !prev.Confirmed {
			// claim still in flight
			next[i] = prev
			continue
		}
		if rec, ok := rs.recent[i+1]; ok && rec.identity == prev.Identity && now.Sub(rec.at) < grace {
			r.logger.Debugw("ignoring stale seat snapshot", "room", room, "index", i+1, "identity", prev.Identity)
			next[i] = prev
			r.scheduleRefreshLocked(rs, grace-now.Sub(rec.at))
		}
	}

	for index, rec := range rs.recent {
		if now.Sub(rec.at) >= grace {
			delete(rs.recent, index)
		}
	}
	rs.slots = next
	rs.loaded = true
}

// ClaimSeat takes the seat at zero-based position for identity. Positions outside the
// roster are clamped.
func (r *Roster) ClaimSeat(ctx context.Context, room string, position int, identity string, meta SeatMetadata) (*SeatSlot, error) {
	if identity == "" {
		return nil, ErrEmptyIdentity
	}

	n := r.NumSeats()
	if position < 0 || position >= n {
		clamped := position
		if clamped < 0 {
			clamped = 0
		} else {
			clamped = n - 1
		}
		r.logger.Warnw("seat position out of range, clamping", nil, "room", room, "position", position, "clamped", clamped)
		position = clamped
	}
	index := position + 1
	meta.Role = NormalizeRole(meta.Role)

	if _, err := r.ListSeats(ctx, room); err != nil {
		r.logger.Warnw("could not load seats before claim", err, "room", room)
	}

	r.lock.Lock()
	rs := r.getRoomLocked(room)
	if held := findSeat(rs.slots, identity, true); held != nil && held.Index != index {
		r.lock.Unlock()
		prometheus.RecordSeatOperation("claim", ErrAlreadyHasSeat)
		return nil, ErrAlreadyHasSeat
	}
	optimistic := false
	if rs.slots[position].IsEmpty() {
		rs.slots[position] = SeatSlot{
			Room:       room,
			Index:      index,
			Identity:   identity,
			Metadata:   meta,
			AssignedAt: time.Now(),
		}
		optimistic = true
	}
	snapshot := copySlots(rs.slots)
	r.lock.Unlock()
	if optimistic {
		r.publish(room, snapshot)
	}

	claimCtx, cancel := context.WithTimeout(ctx, r.params.Config.ClaimTimeout)
	defer cancel()
	slot, err := r.params.Store.Claim(claimCtx, room, index, identity, meta)
	prometheus.RecordSeatOperation("claim", err)

	r.lock.Lock()
	if err != nil {
		rolledBack := false
		if optimistic {
			current := rs.slots[position]
			if current.Identity == identity && !current.Confirmed {
				rs.slots[position] = emptySlot(room, index)
				rolledBack = true
			}
		}
		snapshot = copySlots(rs.slots)
		r.lock.Unlock()
		if rolledBack {
			r.publish(room, snapshot)
		}

		if claimCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
			err = errors.Wrap(err, "seat claim timed out")
		}
		r.logger.Infow("seat claim rejected", "room", room, "index", index, "identity", identity, "error", err)
		return nil, err
	}

	slot.Confirmed = true
	rs.slots[position] = *slot
	rs.recent[index] = claimRecord{identity: identity, at: time.Now()}
	snapshot = copySlots(rs.slots)
	r.lock.Unlock()

	r.publish(room, snapshot)
	r.logger.Infow("seat claimed", "room", room, "index", index, "identity", identity)
	res := *slot
	return &res, nil
}

// ReleaseSeat empties the seat at zero-based position. Forced releases may ban the occupant.
func (r *Roster) ReleaseSeat(ctx context.Context, room string, position int, identity string, opts ReleaseOptions) (*SeatBan, error) {
	if position < 0 || position >= r.NumSeats() {
		return nil, ErrInvalidIndex
	}
	index := position + 1

	ban, err := r.params.Store.Release(ctx, room, index, identity, opts)
	prometheus.RecordSeatOperation("release", err)
	if err != nil {
		return nil, err
	}

	r.lock.Lock()
	rs := r.getRoomLocked(room)
	current := rs.slots[position]
	changed := false
	if !current.IsEmpty() && (opts.Force || current.Identity == identity) {
		rs.slots[position] = emptySlot(room, index)
		changed = true
	}
	delete(rs.recent, index)
	snapshot := copySlots(rs.slots)
	r.lock.Unlock()

	if changed {
		r.publish(room, snapshot)
	}
	if ban != nil {
		r.logger.Infow("seat ban written", "room", room, "identity", ban.Identity, "banID", ban.ID, "permanent", ban.IsPermanent())
	}
	return ban, nil
}

// SeatOf returns the confirmed seat held by identity, if any.
func (r *Roster) SeatOf(room, identity string) *SeatSlot {
	r.lock.Lock()
	defer r.lock.Unlock()

	rs, ok := r.rooms[room]
	if !ok {
		return nil
	}
	if slot := findSeat(rs.slots, identity, true); slot != nil {
		res := *slot
		return &res
	}
	return nil
}

func (r *Roster) ListBans(ctx context.Context, room string) ([]*SeatBan, error) {
	return r.params.Store.LoadBans(ctx, room)
}

// ActiveBans filters ListBans down to bans that still apply.
func (r *Roster) ActiveBans(ctx context.Context, room string) ([]*SeatBan, error) {
	bans, err := r.ListBans(ctx, room)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return funk.Filter(bans, func(b *SeatBan) bool {
		return b.Active(now)
	}).([]*SeatBan), nil
}

func (r *Roster) ClearBan(ctx context.Context, banID string) error {
	err := r.params.Store.ClearBan(ctx, banID)
	prometheus.RecordSeatOperation("clear_ban", err)
	return err
}

// Watch delivers seat snapshots of room until ctx is done, starting with the current one.
// Store notifications are debounced into refreshes. Slow readers only see the latest snapshot.
func (r *Roster) Watch(ctx context.Context, room string) (<-chan []SeatSlot, error) {
	initial, err := r.ListSeats(ctx, room)
	if err != nil {
		return nil, err
	}

	w := newSeatWatch()
	w.send(initial)
	key := utils.NewGuid("")

	debounced := debounce.New(r.params.Config.RefreshDebounce)
	w.refresh = func() {
		debounced(func() {
			if ctx.Err() != nil {
				return
			}
			if _, err := r.Refresh(ctx, room); err != nil && ctx.Err() == nil {
				r.logger.Warnw("could not refresh seats", err, "room", room)
			}
		})
	}

	r.lock.Lock()
	r.getRoomLocked(room).watches[key] = w
	r.lock.Unlock()

	if err = r.params.Store.Subscribe(ctx, room, w.refresh); err != nil {
		r.removeWatch(room, key)
		return nil, err
	}

	go func() {
		<-ctx.Done()
		r.removeWatch(room, key)
	}()
	return w.ch, nil
}

func (r *Roster) removeWatch(room, key string) {
	r.lock.Lock()
	rs := r.rooms[room]
	var w *seatWatch
	if rs != nil {
		w = rs.watches[key]
		delete(rs.watches, key)
	}
	r.lock.Unlock()

	if w != nil {
		w.close()
	}
}

func (r *Roster) scheduleRefreshLocked(rs *roomSeats, after time.Duration) {
	for _, w := range rs.watches {
		time.AfterFunc(after, w.refresh)
	}
}

func (r *Roster) publish(room string, slots []SeatSlot) {
	r.lock.Lock()
	onUpdate := r.onUpdate
	var watches []*seatWatch
	if rs, ok := r.rooms[room]; ok {
		for _, w := range rs.watches {
			watches = append(watches, w)
		}
	}
	r.lock.Unlock()

	prometheus.SetSeatsOccupied(room, countOccupied(slots))
	for _, w := range watches {
		w.send(copySlots(slots))
	}
	if onUpdate != nil {
		onUpdate(room, copySlots(slots))
	}
}

func (r *Roster) getRoomLocked(room string) *roomSeats {
	rs, ok := r.rooms[room]
	if !ok {
		rs = &roomSeats{
			slots:   emptySlots(room, r.NumSeats()),
			recent:  make(map[int]claimRecord),
			watches: make(map[string]*seatWatch),
		}
		r.rooms[room] = rs
	}
	return rs
}

// ----------------------------------------

type seatWatch struct {
	lock    sync.Mutex
	ch      chan []SeatSlot
	closed  bool
	refresh func()
}

func newSeatWatch() *seatWatch {
	return &seatWatch{
		ch:      make(chan []SeatSlot, 1),
		refresh: func() {},
	}
}

func (w *seatWatch) send(slots []SeatSlot) {
	w.lock.Lock()
	defer w.lock.Unlock()

	if w.closed {
		return
	}
	select {
	case <-w.ch:
	default:
	}
	w.ch <- slots
}

func (w *seatWatch) close() {
	w.lock.Lock()
	defer w.lock.Unlock()

	if !w.closed {
		w.closed = true
		close(w.ch)
	}
}

func findSeat(slots []SeatSlot, identity string, confirmedOnly bool) *SeatSlot {
	found := funk.Find(slots, func(s SeatSlot) bool {
		return s.Identity == identity && (s.Confirmed || !confirmedOnly)
	})
	if found == nil {
		return nil
	}
	slot := found.(SeatSlot)
	return &slot
}

func countOccupied(slots []SeatSlot) int {
	n := 0
	for i := range slots {
		if !slots[i].IsEmpty() {
			n++
		}
	}
	return n
}

func copySlots(slots []SeatSlot) []SeatSlot {
	res := make([]SeatSlot, len(slots))
	copy(res, slots)
	return res
}
