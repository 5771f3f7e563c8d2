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
	"github.com/pkg/errors"
)

type APIKeyTokenVerifier struct {
	raw      string
	apiKey   string
	identity string
}

// ParseAPIToken reads the issuer and subject of a token without checking its signature.
func ParseAPIToken(raw string) (*APIKeyTokenVerifier, error) {
	claims := &ClaimGrants{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, errors.Wrap(ErrInvalidToken, err.Error())
	}

	return &APIKeyTokenVerifier{
		raw:      raw,
		apiKey:   claims.Issuer,
		identity: claims.Subject,
	}, nil
}

func (v *APIKeyTokenVerifier) APIKey() string {
	return v.apiKey
}

func (v *APIKeyTokenVerifier) Identity() string {
	return v.identity
}

func (v *APIKeyTokenVerifier) Verify(secret string) (*ClaimGrants, error) {
	if secret == "" {
		return nil, ErrKeysMissing
	}

	claims := &ClaimGrants{}
	_, err := jwt.ParseWithClaims(v.raw, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(v.apiKey),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
