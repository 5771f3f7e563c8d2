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
	"errors"
	"net/http"

	"github.com/livekit/livekit-stage/pkg/auth"
	"github.com/livekit/livekit-stage/pkg/seats"
)

var (
	ErrPermissionDenied          = errors.New("permissions denied")
	ErrMissingAuthorization      = errors.New("invalid authorization header. Must start with " + bearerPrefix)
	ErrInvalidAuthorizationToken = errors.New("invalid authorization token")
	ErrIdentityMismatch          = errors.New("identity does not match the access token")
	ErrInvalidRequest            = errors.New("invalid request")
	ErrNoRoomName                = errors.New("no room name")
	ErrAlreadyRunning            = errors.New("already running")
)

// errorCodes maps sentinels to the codes carried in error responses, so clients can
// restore them.
var errorCodes = []struct {
	err    error
	code   string
	status int
}{
	{seats.ErrAlreadyOccupied, "already_occupied", http.StatusConflict},
	{seats.ErrAlreadyHasSeat, "already_has_seat", http.StatusConflict},
	{seats.ErrBanned, "banned", http.StatusForbidden},
	{seats.ErrInvalidIndex, "invalid_index", http.StatusBadRequest},
	{seats.ErrNotOccupant, "not_occupant", http.StatusConflict},
	{seats.ErrBanNotFound, "ban_not_found", http.StatusNotFound},
	{seats.ErrEmptyIdentity, "empty_identity", http.StatusBadRequest},
	{auth.ErrNoAuthContext, "unauthenticated", http.StatusUnauthorized},
	{ErrMissingAuthorization, "unauthenticated", http.StatusUnauthorized},
	{ErrInvalidAuthorizationToken, "unauthenticated", http.StatusUnauthorized},
	{ErrPermissionDenied, "permission_denied", http.StatusForbidden},
	{ErrIdentityMismatch, "permission_denied", http.StatusForbidden},
	{ErrInvalidRequest, "invalid_request", http.StatusBadRequest},
	{ErrNoRoomName, "invalid_request", http.StatusBadRequest},
}

func errorStatus(err error) (int, string) {
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			return e.status, e.code
		}
	}
	return http.StatusInternalServerError, "internal"
}

// errorFromCode restores the sentinel for a code, falling back to a plain error.
func errorFromCode(code, message string) error {
	switch code {
	case "unauthenticated":
		return auth.ErrUnauthenticated
	case "permission_denied":
		return auth.ErrUnauthorized
	}
	for _, e := range errorCodes {
		if e.code == code {
			return e.err
		}
	}
	return errors.New(message)
}
