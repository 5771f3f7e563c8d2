package seats_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/livekit/livekit-stage/pkg/seats"
	"github.com/livekit/livekit-stage/pkg/utils"
)

const numSeats = 9

func redisClient(t *testing.T) *redis.Client {
	rc := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
	})
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		t.Skip("redis not available:", err)
	}
	t.Cleanup(func() { _ = rc.Close() })
	return rc
}

func stores(t *testing.T) map[string]func(t *testing.T) seats.Store {
	return map[string]func(t *testing.T) seats.Store{
		"local": func(t *testing.T) seats.Store {
			return seats.NewLocalStore(numSeats)
		},
		"redis": func(t *testing.T) seats.Store {
			rs := seats.NewRedisStore(redisClient(t), numSeats)
			require.NoError(t, rs.Start(context.Background()))
			return rs
		},
	}
}

func newRoom() string {
	return utils.NewGuid("room_")
}

func TestStoreClaimRelease(t *testing.T) {
	for name, newStore := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("seat handoff", func(t *testing.T) {
				s := newStore(t)
				room := newRoom()

				slot, err := s.Claim(ctx, room, 3, "alice", seats.SeatMetadata{DisplayName: "Alice"})
				require.NoError(t, err)
				require.Equal(t, 3, slot.Index)
				require.Equal(t, "alice", slot.Identity)
				require.Equal(t, "Alice", slot.Metadata.DisplayName)

				_, err = s.Claim(ctx, room, 3, "bob", seats.SeatMetadata{})
				require.ErrorIs(t, err, seats.ErrAlreadyOccupied)

				ban, err := s.Release(ctx, room, 3, "alice", seats.ReleaseOptions{})
				require.NoError(t, err)
				require.Nil(t, ban)

				slot, err = s.Claim(ctx, room, 3, "bob", seats.SeatMetadata{})
				require.NoError(t, err)
				require.Equal(t, "bob", slot.Identity)

				loaded, err := s.LoadSeats(ctx, room)
				require.NoError(t, err)
				require.Len(t, loaded, 1)
				require.Equal(t, "bob", loaded[0].Identity)
			})

			t.Run("claim is idempotent for the occupant", func(t *testing.T) {
				s := newStore(t)
				room := newRoom()

				first, err := s.Claim(ctx, room, 1, "alice", seats.SeatMetadata{})
				require.NoError(t, err)
				second, err := s.Claim(ctx, room, 1, "alice", seats.SeatMetadata{})
				require.NoError(t, err)
				require.Equal(t, first.AssignedAt.UnixMilli(), second.AssignedAt.UnixMilli())
			})

			t.Run("one seat per identity", func(t *testing.T) {
				s := newStore(t)
				room := newRoom()

				_, err := s.Claim(ctx, room, 1, "alice", seats.SeatMetadata{})
				require.NoError(t, err)
				_, err = s.Claim(ctx, room, 2, "alice", seats.SeatMetadata{})
				require.ErrorIs(t, err, seats.ErrAlreadyHasSeat)

				// same identity in another room is fine
				_, err = s.Claim(ctx, newRoom(), 2, "alice", seats.SeatMetadata{})
				require.NoError(t, err)
			})

			t.Run("invalid index", func(t *testing.T) {
				s := newStore(t)
				for _, index := range []int{0, -1, numSeats + 1} {
					_, err := s.Claim(ctx, newRoom(), index, "alice", seats.SeatMetadata{})
					require.ErrorIs(t, err, seats.ErrInvalidIndex)
				}
			})

			t.Run("release rules", func(t *testing.T) {
				s := newStore(t)
				room := newRoom()

				// empty slot
				ban, err := s.Release(ctx, room, 4, "alice", seats.ReleaseOptions{})
				require.NoError(t, err)
				require.Nil(t, ban)

				_, err = s.Claim(ctx, room, 4, "alice", seats.SeatMetadata{})
				require.NoError(t, err)
				_, err = s.Release(ctx, room, 4, "bob", seats.ReleaseOptions{})
				require.ErrorIs(t, err, seats.ErrNotOccupant)

				_, err = s.Release(ctx, room, 4, "moderator", seats.ReleaseOptions{Force: true})
				require.NoError(t, err)
				loaded, err := s.LoadSeats(ctx, room)
				require.NoError(t, err)
				require.Empty(t, loaded)

				// alice can take another seat after losing hers
				_, err = s.Claim(ctx, room, 5, "alice", seats.SeatMetadata{})
				require.NoError(t, err)
			})
		})
	}
}

func TestStoreMutualExclusion(t *testing.T) {
	for name, newStore := range stores(t) {
		t.Run(name, func(t *testing.T) {
			s := newStore(t)
			room := newRoom()

			var wg sync.WaitGroup
			var winners atomic.Int32
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_, err := s.Claim(context.Background(), room, 5, utils.NewGuid(utils.ParticipantPrefix), seats.SeatMetadata{})
					if err == nil {
						winners.Inc()
					} else {
						require.ErrorIs(t, err, seats.ErrAlreadyOccupied)
					}
				}(i)
			}
			wg.Wait()
			require.Equal(t, int32(1), winners.Load())

			var seated atomic.Int32
			for i := 1; i <= numSeats; i++ {
				wg.Add(1)
				go func(index int) {
					defer wg.Done()
					if _, err := s.Claim(context.Background(), room, index, "carol", seats.SeatMetadata{}); err == nil {
						seated.Inc()
					}
				}(i)
			}
			wg.Wait()
			require.Equal(t, int32(1), seated.Load())
		})
	}
}

func TestStoreBans(t *testing.T) {
	for name, newStore := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("expiring ban", func(t *testing.T) {
				s := newStore(t)
				room := newRoom()

				_, err := s.Claim(ctx, room, 2, "mallory", seats.SeatMetadata{})
				require.NoError(t, err)
				ban, err := s.Release(ctx, room, 2, "host", seats.ReleaseOptions{
					Force:       true,
					BanDuration: 300 * time.Millisecond,
					Reason:      "spam",
				})
				require.NoError(t, err)
				require.NotNil(t, ban)
				require.Equal(t, "mallory", ban.Identity)
				require.Equal(t, "spam", ban.Reason)
				require.False(t, ban.IsPermanent())

				_, err = s.Claim(ctx, room, 3, "mallory", seats.SeatMetadata{})
				require.ErrorIs(t, err, seats.ErrBanned)

				time.Sleep(400 * time.Millisecond)
				_, err = s.Claim(ctx, room, 3, "mallory", seats.SeatMetadata{})
				require.NoError(t, err)

				// the expired ban stays listed until cleared
				bans, err := s.LoadBans(ctx, room)
				require.NoError(t, err)
				require.Len(t, bans, 1)
				require.Equal(t, ban.ID, bans[0].ID)
				require.False(t, bans[0].Active(time.Now()))
				require.NoError(t, s.ClearBan(ctx, ban.ID))
			})

			t.Run("permanent ban and clear", func(t *testing.T) {
				s := newStore(t)
				room := newRoom()

				_, err := s.Claim(ctx, room, 1, "mallory", seats.SeatMetadata{})
				require.NoError(t, err)
				first, err := s.Release(ctx, room, 1, "host", seats.ReleaseOptions{Force: true, BanPermanent: true})
				require.NoError(t, err)
				require.True(t, first.IsPermanent())

				_, err = s.Claim(ctx, room, 1, "mallory", seats.SeatMetadata{})
				require.ErrorIs(t, err, seats.ErrBanned)

				require.NoError(t, s.ClearBan(ctx, first.ID))
				require.ErrorIs(t, s.ClearBan(ctx, first.ID), seats.ErrBanNotFound)

				_, err = s.Claim(ctx, room, 1, "mallory", seats.SeatMetadata{})
				require.NoError(t, err)
			})

			t.Run("bans are listed newest first", func(t *testing.T) {
				s := newStore(t)
				room := newRoom()

				_, err := s.Claim(ctx, room, 1, "mallory", seats.SeatMetadata{})
				require.NoError(t, err)
				first, err := s.Release(ctx, room, 1, "host", seats.ReleaseOptions{Force: true, BanDuration: time.Hour})
				require.NoError(t, err)

				_, err = s.Claim(ctx, room, 2, "trudy", seats.SeatMetadata{})
				require.NoError(t, err)
				time.Sleep(5 * time.Millisecond)
				_, err = s.Release(ctx, room, 2, "host", seats.ReleaseOptions{Force: true, BanPermanent: true})
				require.NoError(t, err)

				bans, err := s.LoadBans(ctx, room)
				require.NoError(t, err)
				require.Len(t, bans, 2)
				require.Equal(t, "trudy", bans[0].Identity)
				require.Equal(t, first.ID, bans[1].ID)
				require.True(t, bans[1].Active(time.Now()))
			})

			t.Run("unknown ban", func(t *testing.T) {
				s := newStore(t)
				require.ErrorIs(t, s.ClearBan(ctx, "SB_missing"), seats.ErrBanNotFound)
			})
		})
	}
}

func TestStoreSubscribe(t *testing.T) {
	for name, newStore := range stores(t) {
		t.Run(name, func(t *testing.T) {
			s := newStore(t)
			room := newRoom()
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			var changes atomic.Int32
			require.NoError(t, s.Subscribe(ctx, room, func() { changes.Inc() }))

			_, err := s.Claim(context.Background(), room, 1, "alice", seats.SeatMetadata{})
			require.NoError(t, err)
			require.Eventually(t, func() bool { return changes.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

			// other rooms are not delivered
			before := changes.Load()
			_, err = s.Claim(context.Background(), newRoom(), 1, "alice", seats.SeatMetadata{})
			require.NoError(t, err)
			time.Sleep(50 * time.Millisecond)
			require.Equal(t, before, changes.Load())
		})
	}
}
