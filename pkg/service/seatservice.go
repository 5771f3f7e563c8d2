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

package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/thoas/go-funk"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-stage/pkg/config"
	"github.com/livekit/livekit-stage/pkg/seats"
	"github.com/livekit/livekit-stage/pkg/telemetry/prometheus"
)

type ClaimRequest struct {
	// 1-based
	Seat     int                `json:"seat"`
	Identity string             `json:"identity,omitempty"`
	Metadata seats.SeatMetadata `json:"metadata"`
}

type ReleaseRequest struct {
	Seat         int    `json:"seat"`
	Identity     string `json:"identity,omitempty"`
	Force        bool   `json:"force,omitempty"`
	BanSeconds   int64  `json:"ban_seconds,omitempty"`
	BanPermanent bool   `json:"ban_permanent,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

type SeatsResponse struct {
	Room  string           `json:"room"`
	Seats []seats.SeatSlot `json:"seats"`
}

type SeatResponse struct {
	Seat *seats.SeatSlot `json:"seat"`
}

type ReleaseResponse struct {
	Ban *seats.SeatBan `json:"ban,omitempty"`
}

type BansResponse struct {
	Bans []*seats.SeatBan `json:"bans"`
}

// SeatService exposes the seat store over HTTP. Every decision goes to the store.
type SeatService struct {
	store    seats.Store
	numSeats int
}

func NewSeatService(store seats.Store, conf *config.Config) *SeatService {
	return &SeatService{
		store:    store,
		numSeats: conf.Seats.Count,
	}
}

func (s *SeatService) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /seats/{room}", s.listSeats)
	mux.HandleFunc("POST /seats/{room}/claim", s.claim)
	mux.HandleFunc("POST /seats/{room}/release", s.release)
	mux.HandleFunc("GET /seats/{room}/bans", s.listBans)
	mux.HandleFunc("DELETE /bans/{id}", s.clearBan)
}

func (s *SeatService) listSeats(w http.ResponseWriter, r *http.Request) {
	room := r.PathValue("room")
	if _, err := EnsureJoinPermission(r.Context(), room); err != nil {
		handleError(w, r, err)
		return
	}

	occupied, err := s.store.LoadSeats(r.Context(), room)
	if err != nil {
		handleError(w, r, err, "room", room)
		return
	}
	writeJSON(w, http.StatusOK, &SeatsResponse{
		Room:  room,
		Seats: seats.Layout(room, s.numSeats, occupied),
	})
}

func (s *SeatService) claim(w http.ResponseWriter, r *http.Request) {
	room := r.PathValue("room")
	var req ClaimRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	identity, err := s.actingIdentity(r, room, req.Identity)
	if err != nil {
		handleError(w, r, err)
		return
	}

	req.Metadata.Role = seats.NormalizeRole(req.Metadata.Role)
	slot, err := s.store.Claim(r.Context(), room, req.Seat, identity, req.Metadata)
	prometheus.RecordSeatOperation("claim", err)
	if err != nil {
		handleError(w, r, err, "room", room, "seat", req.Seat, "identity", identity)
		return
	}

	logger.Infow("seat claimed", "room", room, "seat", slot.Index, "identity", identity)
	writeJSON(w, http.StatusOK, &SeatResponse{Seat: slot})
}

func (s *SeatService) release(w http.ResponseWriter, r *http.Request) {
	room := r.PathValue("room")
	var req ReleaseRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	identity, err := s.actingIdentity(r, room, req.Identity)
	if err != nil {
		handleError(w, r, err)
		return
	}

	opts := seats.ReleaseOptions{
		Force:        req.Force,
		BanDuration:  time.Duration(req.BanSeconds) * time.Second,
		BanPermanent: req.BanPermanent,
		Reason:       req.Reason,
	}
	if opts.Force || opts.WantsBan() {
		if err = EnsureAdminPermission(r.Context(), room); err != nil {
			handleError(w, r, err)
			return
		}
	}

	ban, err := s.store.Release(r.Context(), room, req.Seat, identity, opts)
	prometheus.RecordSeatOperation("release", err)
	if err != nil {
		handleError(w, r, err, "room", room, "seat", req.Seat, "identity", identity)
		return
	}
	if ban != nil {
		logger.Infow("seat ban written", "room", room, "identity", ban.Identity, "banID", ban.ID, "permanent", ban.IsPermanent())
	}
	writeJSON(w, http.StatusOK, &ReleaseResponse{Ban: ban})
}

func (s *SeatService) listBans(w http.ResponseWriter, r *http.Request) {
	room := r.PathValue("room")
	if err := EnsureAdminPermission(r.Context(), room); err != nil {
		handleError(w, r, err)
		return
	}

	bans, err := s.store.LoadBans(r.Context(), room)
	if err != nil {
		handleError(w, r, err, "room", room)
		return
	}
	if active, _ := strconv.ParseBool(r.URL.Query().Get("active")); active {
		now := time.Now()
		bans = funk.Filter(bans, func(b *seats.SeatBan) bool {
			return b.Active(now)
		}).([]*seats.SeatBan)
	}
	if bans == nil {
		bans = []*seats.SeatBan{}
	}
	writeJSON(w, http.StatusOK, &BansResponse{Bans: bans})
}

func (s *SeatService) clearBan(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	grants := GetGrants(r.Context())
	if err := EnsureAdminPermission(r.Context(), ""); err != nil {
		// room admins may only clear bans of their own room
		if grants == nil || grants.Video == nil || grants.Video.Room == "" || !grants.IsAdmin(grants.Video.Room) {
			handleError(w, r, err)
			return
		}
		bans, err := s.store.LoadBans(r.Context(), grants.Video.Room)
		if err != nil {
			handleError(w, r, err)
			return
		}
		if funk.Find(bans, func(b *seats.SeatBan) bool { return b.ID == id }) == nil {
			handleError(w, r, seats.ErrBanNotFound, "banID", id)
			return
		}
	}

	err := s.store.ClearBan(r.Context(), id)
	prometheus.RecordSeatOperation("clear_ban", err)
	if err != nil {
		handleError(w, r, err, "banID", id)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

// actingIdentity returns the identity a request acts for. Acting for someone else needs
// admin rights on the room.
func (s *SeatService) actingIdentity(r *http.Request, room, requested string) (string, error) {
	if room == "" {
		return "", ErrNoRoomName
	}
	identity, err := EnsureJoinPermission(r.Context(), room)
	if err != nil {
		if requested == "" || EnsureAdminPermission(r.Context(), room) != nil {
			return "", err
		}
		return requested, nil
	}
	if requested == "" || requested == identity {
		return identity, nil
	}
	if EnsureAdminPermission(r.Context(), room) != nil {
		return "", ErrIdentityMismatch
	}
	return requested, nil
}
