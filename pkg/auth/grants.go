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

package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

type VideoGrant struct {
	RoomJoin     bool   `json:"roomJoin,omitempty"`
	RoomAdmin    bool   `json:"roomAdmin,omitempty"`
	Room         string `json:"room,omitempty"`
	CanPublish   bool   `json:"canPublish,omitempty"`
	CanSubscribe bool   `json:"canSubscribe,omitempty"`
}

// ClaimGrants is the JWT payload. The subject carries the participant identity.
type ClaimGrants struct {
	jwt.RegisteredClaims
	Name     string      `json:"name,omitempty"`
	Video    *VideoGrant `json:"video,omitempty"`
	Metadata string      `json:"metadata,omitempty"`
}

func (c *ClaimGrants) Identity() string {
	return c.Subject
}

// CanJoin reports whether the grants allow joining room. An empty room grant allows any room.
func (c *ClaimGrants) CanJoin(room string) bool {
	if c == nil || c.Video == nil || !c.Video.RoomJoin {
		return false
	}
	return c.Video.Room == "" || c.Video.Room == room
}

// IsAdmin reports whether the grants allow moderating room.
func (c *ClaimGrants) IsAdmin(room string) bool {
	if c == nil || c.Video == nil || !c.Video.RoomAdmin {
		return false
	}
	return c.Video.Room == "" || c.Video.Room == room
}
