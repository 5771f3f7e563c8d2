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
	"context"
	"net/http"
	"strings"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-stage/pkg/auth"
)

const (
	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "
	accessTokenParam    = "access_token"
)

type grantsKey struct{}

// APIKeyAuthMiddleware verifies bearer tokens and stores their grants in the request context.
// Requests without a token pass through; handlers decide what they need.
type APIKeyAuthMiddleware struct {
	provider auth.KeyProvider
}

func NewAPIKeyAuthMiddleware(provider auth.KeyProvider) *APIKeyAuthMiddleware {
	return &APIKeyAuthMiddleware{
		provider: provider,
	}
}

func (m *APIKeyAuthMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	authHeader := r.Header.Get(authorizationHeader)
	var authToken string

	if authHeader != "" {
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			handleError(w, r, ErrMissingAuthorization)
			return
		}
		authToken = authHeader[len(bearerPrefix):]
	} else {
		// attempt to find from request header
		authToken = r.FormValue(accessTokenParam)
	}

	if authToken != "" {
		v, err := auth.ParseAPIToken(authToken)
		if err != nil {
			handleError(w, r, ErrInvalidAuthorizationToken)
			return
		}

		secret := m.provider.GetSecret(v.APIKey())
		if secret == "" {
			handleError(w, r, ErrInvalidAuthorizationToken, "apiKey", v.APIKey())
			return
		}

		grants, err := v.Verify(secret)
		if err != nil {
			logger.Debugw("token verification failed", "apiKey", v.APIKey(), "error", err)
			handleError(w, r, ErrInvalidAuthorizationToken)
			return
		}

		r = r.WithContext(WithGrants(r.Context(), grants))
	}

	next.ServeHTTP(w, r)
}

func GetGrants(ctx context.Context) *auth.ClaimGrants {
	val := ctx.Value(grantsKey{})
	claims, ok := val.(*auth.ClaimGrants)
	if !ok {
		return nil
	}
	return claims
}

func WithGrants(ctx context.Context, grants *auth.ClaimGrants) context.Context {
	return context.WithValue(ctx, grantsKey{}, grants)
}

func SetAuthorizationToken(r *http.Request, token string) {
	r.Header.Set(authorizationHeader, bearerPrefix+token)
}

// EnsureJoinPermission returns the identity of a token allowed to join room.
func EnsureJoinPermission(ctx context.Context, room string) (string, error) {
	claims := GetGrants(ctx)
	if claims == nil {
		return "", auth.ErrNoAuthContext
	}
	if !claims.CanJoin(room) || claims.Identity() == "" {
		return "", ErrPermissionDenied
	}
	return claims.Identity(), nil
}

func EnsureAdminPermission(ctx context.Context, room string) error {
	claims := GetGrants(ctx)
	if claims == nil {
		return auth.ErrNoAuthContext
	}
	if !claims.IsAdmin(room) {
		return ErrPermissionDenied
	}
	return nil
}
