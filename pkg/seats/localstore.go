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
	"sort"
	"sync"
	"time"

	"github.com/livekit/livekit-stage/pkg/utils"
)

// LocalStore keeps seats in memory, for single-node development and tests.
type LocalStore struct {
	numSeats int

	lock sync.Mutex
	// room => index => slot
	seats map[string]map[int]*SeatSlot
	// room => identity => index
	owners map[string]map[string]int
	// room => identity => ban
	bans map[string]map[string]*SeatBan
	// ban id => room
	banRooms map[string]string

	notifiers *utils.ChangeNotifierManager
}

func NewLocalStore(numSeats int) *LocalStore {
	return &LocalStore{
		numSeats:  numSeats,
		seats:     make(map[string]map[int]*SeatSlot),
		owners:    make(map[string]map[string]int),
		bans:      make(map[string]map[string]*SeatBan),
		banRooms:  make(map[string]string),
		notifiers: utils.NewChangeNotifierManager(),
	}
}

func (s *LocalStore) Claim(_ context.Context, room string, index int, identity string, meta SeatMetadata) (*SeatSlot, error) {
	if identity == "" {
		return nil, ErrEmptyIdentity
	}
	if index < 1 || index > s.numSeats {
		return nil, ErrInvalidIndex
	}

	s.lock.Lock()
	now := time.Now()
	// expired bans stay listed until cleared
	if ban := s.bans[room][identity]; ban != nil && ban.Active(now) {
		s.lock.Unlock()
		return nil, ErrBanned
	}

	if current := s.seats[room][index]; current != nil {
		s.lock.Unlock()
		if current.Identity != identity {
			return nil, ErrAlreadyOccupied
		}
		slot := *current
		return &slot, nil
	}
	if held, ok := s.owners[room][identity]; ok && held != index {
		s.lock.Unlock()
		return nil, ErrAlreadyHasSeat
	}

	slot := &SeatSlot{
		Room:       room,
		Index:      index,
		Identity:   identity,
		Metadata:   meta,
		AssignedAt: now,
		Confirmed:  true,
	}
	if s.seats[room] == nil {
		s.seats[room] = make(map[int]*SeatSlot)
		s.owners[room] = make(map[string]int)
	}
	s.seats[room][index] = slot
	s.owners[room][identity] = index
	s.lock.Unlock()

	s.notifiers.Notify(room)
	res := *slot
	return &res, nil
}

func (s *LocalStore) Release(_ context.Context, room string, index int, identity string, opts ReleaseOptions) (*SeatBan, error) {
	if index < 1 || index > s.numSeats {
		return nil, ErrInvalidIndex
	}

	s.lock.Lock()
	current := s.seats[room][index]
	if current == nil {
		s.lock.Unlock()
		return nil, nil
	}
	if !opts.Force && current.Identity != identity {
		s.lock.Unlock()
		return nil, ErrNotOccupant
	}

	delete(s.seats[room], index)
	if s.owners[room][current.Identity] == index {
		delete(s.owners[room], current.Identity)
	}

	var res *SeatBan
	if opts.WantsBan() {
		now := time.Now()
		ban := &SeatBan{
			ID:        utils.NewGuid(utils.SeatBanPrefix),
			Room:      room,
			Identity:  current.Identity,
			ExpiresAt: opts.banExpiry(now),
			Reason:    opts.Reason,
			CreatedAt: now,
		}
		if s.bans[room] == nil {
			s.bans[room] = make(map[string]*SeatBan)
		}
		if existing := s.bans[room][current.Identity]; existing != nil {
			ban.ID = existing.ID
		}
		s.bans[room][current.Identity] = ban
		s.banRooms[ban.ID] = room
		b := *ban
		res = &b
	}
	s.lock.Unlock()

	s.notifiers.Notify(room)
	return res, nil
}

func (s *LocalStore) LoadSeats(_ context.Context, room string) ([]SeatSlot, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	slots := make([]SeatSlot, 0, len(s.seats[room]))
	for _, slot := range s.seats[room] {
		slots = append(slots, *slot)
	}
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Index < slots[j].Index
	})
	return slots, nil
}

func (s *LocalStore) LoadBans(_ context.Context, room string) ([]*SeatBan, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	bans := make([]*SeatBan, 0, len(s.bans[room]))
	for _, ban := range s.bans[room] {
		b := *ban
		bans = append(bans, &b)
	}
	sortBans(bans)
	return bans, nil
}

func (s *LocalStore) ClearBan(_ context.Context, banID string) error {
	s.lock.Lock()
	room, ok := s.banRooms[banID]
	if !ok {
		s.lock.Unlock()
		return ErrBanNotFound
	}
	delete(s.banRooms, banID)
	for identity, ban := range s.bans[room] {
		if ban.ID == banID {
			delete(s.bans[room], identity)
		}
	}
	s.lock.Unlock()

	s.notifiers.Notify(room)
	return nil
}

func (s *LocalStore) Subscribe(ctx context.Context, room string, onChange func()) error {
	s.notifiers.Observe(ctx, room, onChange)
	return nil
}

func sortBans(bans []*SeatBan) {
	sort.SliceStable(bans, func(i, j int) bool {
		return bans[i].CreatedAt.After(bans[j].CreatedAt)
	})
}
