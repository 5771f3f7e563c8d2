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
	"crypto/tls"
	"sort"
	"time"

	"github.com/google/wire"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-stage/pkg/auth"
	"github.com/livekit/livekit-stage/pkg/config"
	"github.com/livekit/livekit-stage/pkg/rtc/types"
	"github.com/livekit/livekit-stage/pkg/seats"
)

var ServiceSet = wire.NewSet(
	createRedisClient,
	createStore,
	createKeyProvider,
	createCredentialGateway,
	NewSeatService,
	NewTokenService,
	NewStageServer,
)

const storeStartTimeout = 10 * time.Second

func createRedisClient(conf *config.Config) (redis.UniversalClient, error) {
	if !conf.Redis.IsConfigured() {
		return nil, nil
	}

	var tlsConfig *tls.Config
	if conf.Redis.UseTLS {
		tlsConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}
	rc := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:     []string{conf.Redis.Address},
		Username:  conf.Redis.Username,
		Password:  conf.Redis.Password,
		DB:        conf.Redis.DB,
		TLSConfig: tlsConfig,
	})

	ctx, cancel := context.WithTimeout(context.Background(), storeStartTimeout)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, errors.Wrap(err, "unable to connect to redis")
	}
	logger.Infow("connected to redis", "address", conf.Redis.Address)
	return rc, nil
}

// createStore uses redis when configured. Without redis, seats live in memory and only
// a single node can serve them.
func createStore(conf *config.Config, rc redis.UniversalClient) (seats.Store, error) {
	if rc == nil {
		if !conf.Development {
			logger.Warnw("redis is not configured, seats are kept in memory", nil)
		}
		return seats.NewLocalStore(conf.Seats.Count), nil
	}

	store := seats.NewRedisStore(rc, conf.Seats.Count)
	ctx, cancel := context.WithTimeout(context.Background(), storeStartTimeout)
	defer cancel()
	if err := store.Start(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func createKeyProvider(conf *config.Config, rc redis.UniversalClient) (auth.KeyProvider, error) {
	if len(conf.Keys) > 0 {
		return auth.NewFileBasedKeyProviderFromMap(conf.Keys), nil
	}
	if rc != nil {
		return NewRedisBasedKeyProvider(rc, StageKeysHash), nil
	}
	return nil, config.ErrKeysNotSet
}

// createCredentialGateway signs join credentials with the configured key, falling back to
// the first API key in lexical order.
func createCredentialGateway(conf *config.Config, provider auth.KeyProvider) (types.CredentialGateway, error) {
	apiKey := conf.Credentials.APIKey
	if apiKey == "" && len(conf.Keys) > 0 {
		keys := make([]string, 0, len(conf.Keys))
		for k := range conf.Keys {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		apiKey = keys[0]
	}
	apiSecret := conf.Credentials.APISecret
	if apiSecret == "" && apiKey != "" {
		apiSecret = provider.GetSecret(apiKey)
	}
	if apiKey == "" || apiSecret == "" {
		return nil, auth.ErrKeysMissing
	}

	return auth.NewLocalGateway(apiKey, apiSecret, conf.Credentials.TokenTTL, conf.Session.ServerURL), nil
}
