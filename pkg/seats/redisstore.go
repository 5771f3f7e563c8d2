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
	"encoding/json"
	"strconv"
	"time"

	goversion "github.com/hashicorp/go-version"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-stage/pkg/utils"
	"github.com/livekit/livekit-stage/version"
)

const (
	VersionKey = "stage_version"

	// SeatsPrefix is hash of index => seat
	SeatsPrefix = "stage_seats:"
	// SeatOwnersPrefix is hash of identity => index
	SeatOwnersPrefix = "stage_seat_owners:"
	// SeatBansPrefix is hash of identity => ban
	SeatBansPrefix = "stage_seat_bans:"
	// SeatBanIDsKey is hash of ban id => room and identity
	SeatBanIDsKey = "stage_seat_ban_ids"
	// SeatsChangedPrefix is the pub/sub channel for room changes
	SeatsChangedPrefix = "stage_seats_changed:"

	banIndexVersion = "0.3.0"
)

// keys of a room share a hash tag so scripts touch a single cluster slot
func roomTag(room string) string {
	return "{" + room + "}"
}

func seatsKey(room string) string   { return SeatsPrefix + roomTag(room) }
func ownersKey(room string) string  { return SeatOwnersPrefix + roomTag(room) }
func bansKey(room string) string    { return SeatBansPrefix + roomTag(room) }
func changedKey(room string) string { return SeatsChangedPrefix + roomTag(room) }

var claimScript = redis.NewScript(`
local index = tonumber(ARGV[1])
if index < 1 or index > tonumber(ARGV[5]) then
	return {'err', 'invalid_index'}
end

local ban = redis.call('HGET', KEYS[3], ARGV[2])
if ban then
	local b = cjson.decode(ban)
	if b.expires_at_ms == 0 or b.expires_at_ms > tonumber(ARGV[4]) then
		return {'err', 'banned'}
	end
end

local current = redis.call('HGET', KEYS[1], ARGV[1])
if current then
	if cjson.decode(current).identity ~= ARGV[2] then
		return {'err', 'occupied'}
	end
	return {'ok', current}
end

local held = redis.call('HGET', KEYS[2], ARGV[2])
if held and held ~= ARGV[1] then
	return {'err', 'has_seat'}
end

redis.call('HSET', KEYS[1], ARGV[1], ARGV[3])
redis.call('HSET', KEYS[2], ARGV[2], ARGV[1])
return {'ok', ARGV[3]}
`)

var releaseScript = redis.NewScript(`
local current = redis.call('HGET', KEYS[1], ARGV[1])
if not current then
	return {'ok', ''}
end

local c = cjson.decode(current)
if ARGV[3] ~= '1' and c.identity ~= ARGV[2] then
	return {'err', 'not_occupant'}
end

redis.call('HDEL', KEYS[1], ARGV[1])
if redis.call('HGET', KEYS[2], c.identity) == ARGV[1] then
	redis.call('HDEL', KEYS[2], c.identity)
end
if ARGV[4] ~= '1' then
	return {'ok', ''}
end

local id = ARGV[5]
local existing = redis.call('HGET', KEYS[3], c.identity)
if existing then
	id = cjson.decode(existing).id
end
local ban = cjson.encode({
	id = id,
	room = c.room,
	identity = c.identity,
	expires_at_ms = tonumber(ARGV[6]),
	reason = ARGV[7],
	created_at_ms = tonumber(ARGV[8]),
})
redis.call('HSET', KEYS[3], c.identity, ban)
return {'ok', ban}
`)

var clearBanScript = redis.NewScript(`
local ban = redis.call('HGET', KEYS[1], ARGV[1])
if not ban or cjson.decode(ban).id ~= ARGV[2] then
	return 0
end
redis.call('HDEL', KEYS[1], ARGV[1])
return 1
`)

var scriptErrors = map[string]error{
	"invalid_index": ErrInvalidIndex,
	"banned":        ErrBanned,
	"occupied":      ErrAlreadyOccupied,
	"has_seat":      ErrAlreadyHasSeat,
	"not_occupant":  ErrNotOccupant,
}

type redisSeat struct {
	Room         string       `json:"room"`
	Index        int          `json:"index"`
	Identity     string       `json:"identity"`
	Metadata     SeatMetadata `json:"metadata"`
	AssignedAtMs int64        `json:"assigned_at_ms"`
}

func (r *redisSeat) toSlot() SeatSlot {
	return SeatSlot{
		Room:       r.Room,
		Index:      r.Index,
		Identity:   r.Identity,
		Metadata:   r.Metadata,
		AssignedAt: time.UnixMilli(r.AssignedAtMs),
		Confirmed:  true,
	}
}

type redisBan struct {
	ID          string `json:"id"`
	Room        string `json:"room"`
	Identity    string `json:"identity"`
	ExpiresAtMs int64  `json:"expires_at_ms"`
	Reason      string `json:"reason"`
	CreatedAtMs int64  `json:"created_at_ms"`
}

func (r *redisBan) toBan() *SeatBan {
	ban := &SeatBan{
		ID:        r.ID,
		Room:      r.Room,
		Identity:  r.Identity,
		Reason:    r.Reason,
		CreatedAt: time.UnixMilli(r.CreatedAtMs),
	}
	if r.ExpiresAtMs != 0 {
		t := time.UnixMilli(r.ExpiresAtMs)
		ban.ExpiresAt = &t
	}
	return ban
}

type banRef struct {
	Room     string `json:"room"`
	Identity string `json:"identity"`
}

// RedisStore keeps seats in Redis hashes. Claims and releases run as Lua scripts,
// changes are announced on a per-room channel.
type RedisStore struct {
	rc       redis.UniversalClient
	numSeats int
	logger   logger.Logger
}

func NewRedisStore(rc redis.UniversalClient, numSeats int) *RedisStore {
	return &RedisStore{
		rc:       rc,
		numSeats: numSeats,
		logger:   logger.GetLogger().WithValues("store", "redis"),
	}
}

// Start checks the stored schema version and migrates older data.
func (s *RedisStore) Start(ctx context.Context) error {
	current, err := s.rc.Get(ctx, VersionKey).Result()
	if err != nil && err != redis.Nil {
		return err
	}
	if current == "" {
		current = "0.0.0"
	}

	v, err := goversion.NewVersion(current)
	if err != nil {
		return errors.Wrapf(err, "invalid store version %q", current)
	}
	running, _ := goversion.NewVersion(version.Version)
	if v.GreaterThan(running) {
		return ErrStoreVersion
	}

	migrateBanIndex, _ := goversion.NewVersion(banIndexVersion)
	if v.LessThan(migrateBanIndex) {
		if err = s.rebuildBanIndex(ctx); err != nil {
			return err
		}
	}
	if v.LessThan(running) {
		return s.rc.Set(ctx, VersionKey, version.Version, 0).Err()
	}
	return nil
}

// rebuildBanIndex indexes bans written before ban ids were tracked.
func (s *RedisStore) rebuildBanIndex(ctx context.Context) error {
	iter := s.rc.Scan(ctx, 0, SeatBansPrefix+"*", 100).Iterator()
	indexed := 0
	for iter.Next(ctx) {
		items, err := s.rc.HVals(ctx, iter.Val()).Result()
		if err != nil {
			return err
		}
		for _, item := range items {
			rb := &redisBan{}
			if err := json.Unmarshal([]byte(item), rb); err != nil || rb.ID == "" {
				continue
			}
			if err := s.indexBan(ctx, rb.ID, rb.Room, rb.Identity); err != nil {
				return err
			}
			indexed++
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	s.logger.Infow("rebuilt seat ban index", "bans", indexed)
	return nil
}

func (s *RedisStore) Claim(ctx context.Context, room string, index int, identity string, meta SeatMetadata) (*SeatSlot, error) {
	if identity == "" {
		return nil, ErrEmptyIdentity
	}

	now := time.Now()
	data, err := json.Marshal(&redisSeat{
		Room:         room,
		Index:        index,
		Identity:     identity,
		Metadata:     meta,
		AssignedAtMs: now.UnixMilli(),
	})
	if err != nil {
		return nil, err
	}

	res, err := claimScript.Run(ctx, s.rc,
		[]string{seatsKey(room), ownersKey(room), bansKey(room)},
		strconv.Itoa(index), identity, string(data), now.UnixMilli(), s.numSeats,
	).StringSlice()
	if err != nil {
		return nil, errors.Wrap(err, "could not claim seat")
	}
	payload, err := scriptResult(res)
	if err != nil {
		return nil, err
	}

	rs := &redisSeat{}
	if err = json.Unmarshal([]byte(payload), rs); err != nil {
		return nil, err
	}
	s.notify(ctx, room)
	slot := rs.toSlot()
	return &slot, nil
}

func (s *RedisStore) Release(ctx context.Context, room string, index int, identity string, opts ReleaseOptions) (*SeatBan, error) {
	if index < 1 || index > s.numSeats {
		return nil, ErrInvalidIndex
	}

	now := time.Now()
	var expiresAtMs int64
	if exp := opts.banExpiry(now); exp != nil {
		expiresAtMs = exp.UnixMilli()
	}

	res, err := releaseScript.Run(ctx, s.rc,
		[]string{seatsKey(room), ownersKey(room), bansKey(room)},
		strconv.Itoa(index), identity, boolArg(opts.Force), boolArg(opts.WantsBan()),
		utils.NewGuid(utils.SeatBanPrefix), expiresAtMs, opts.Reason, now.UnixMilli(),
	).StringSlice()
	if err != nil {
		return nil, errors.Wrap(err, "could not release seat")
	}
	payload, err := scriptResult(res)
	if err != nil {
		return nil, err
	}
	defer s.notify(ctx, room)
	if payload == "" {
		return nil, nil
	}

	rb := &redisBan{}
	if err = json.Unmarshal([]byte(payload), rb); err != nil {
		return nil, err
	}
	if err = s.indexBan(ctx, rb.ID, rb.Room, rb.Identity); err != nil {
		return nil, err
	}
	return rb.toBan(), nil
}

func (s *RedisStore) LoadSeats(ctx context.Context, room string) ([]SeatSlot, error) {
	items, err := s.rc.HVals(ctx, seatsKey(room)).Result()
	if err != nil && err != redis.Nil {
		return nil, err
	}

	slots := make([]SeatSlot, 0, len(items))
	for _, item := range items {
		rs := &redisSeat{}
		if err := json.Unmarshal([]byte(item), rs); err != nil {
			return nil, err
		}
		slots = append(slots, rs.toSlot())
	}
	return slots, nil
}

func (s *RedisStore) LoadBans(ctx context.Context, room string) ([]*SeatBan, error) {
	items, err := s.rc.HVals(ctx, bansKey(room)).Result()
	if err != nil && err != redis.Nil {
		return nil, err
	}

	bans := make([]*SeatBan, 0, len(items))
	for _, item := range items {
		rb := &redisBan{}
		if err := json.Unmarshal([]byte(item), rb); err != nil {
			return nil, err
		}
		bans = append(bans, rb.toBan())
	}
	sortBans(bans)
	return bans, nil
}

func (s *RedisStore) ClearBan(ctx context.Context, banID string) error {
	data, err := s.rc.HGet(ctx, SeatBanIDsKey, banID).Result()
	if err == redis.Nil {
		return ErrBanNotFound
	} else if err != nil {
		return err
	}

	ref := &banRef{}
	if err = json.Unmarshal([]byte(data), ref); err != nil {
		return err
	}

	cleared, err := clearBanScript.Run(ctx, s.rc, []string{bansKey(ref.Room)}, ref.Identity, banID).Int()
	if err != nil {
		return errors.Wrap(err, "could not clear ban")
	}
	if err = s.rc.HDel(ctx, SeatBanIDsKey, banID).Err(); err != nil {
		return err
	}
	if cleared == 0 {
		// stale index entry
		return ErrBanNotFound
	}
	s.notify(ctx, ref.Room)
	return nil
}

func (s *RedisStore) Subscribe(ctx context.Context, room string, onChange func()) error {
	sub := s.rc.Subscribe(ctx, changedKey(room))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return errors.Wrap(err, "could not subscribe to seat changes")
	}

	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				onChange()
			}
		}
	}()
	return nil
}

func (s *RedisStore) indexBan(ctx context.Context, id, room, identity string) error {
	data, err := json.Marshal(&banRef{Room: room, Identity: identity})
	if err != nil {
		return err
	}
	return s.rc.HSet(ctx, SeatBanIDsKey, id, data).Err()
}

func (s *RedisStore) notify(ctx context.Context, room string) {
	if err := s.rc.Publish(ctx, changedKey(room), "1").Err(); err != nil {
		s.logger.Warnw("could not publish seat change", err, "room", room)
	}
}

func scriptResult(res []string) (string, error) {
	if len(res) != 2 {
		return "", errors.Errorf("unexpected script result %v", res)
	}
	if res[0] == "err" {
		if err, ok := scriptErrors[res[1]]; ok {
			return "", err
		}
		return "", errors.New(res[1])
	}
	return res[1], nil
}

func boolArg(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
