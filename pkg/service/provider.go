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
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	StageKeysHash = "stage_api_keys"

	keyLookupTimeout = 2 * time.Second
)

// RedisBasedKeyProvider resolves API secrets from a redis hash shared by all nodes.
type RedisBasedKeyProvider struct {
	client  redis.UniversalClient
	hashKey string
}

func NewRedisBasedKeyProvider(c redis.UniversalClient, hashKey string) *RedisBasedKeyProvider {
	if hashKey == "" {
		hashKey = StageKeysHash
	}
	return &RedisBasedKeyProvider{
		client:  c,
		hashKey: hashKey,
	}
}

func (p *RedisBasedKeyProvider) GetSecret(key string) string {
	ctx, cancel := context.WithTimeout(context.Background(), keyLookupTimeout)
	defer cancel()
	secret, _ := p.client.HGet(ctx, p.hashKey, key).Result()
	return secret
}

func (p *RedisBasedKeyProvider) NumKeys() int {
	ctx, cancel := context.WithTimeout(context.Background(), keyLookupTimeout)
	defer cancel()
	n, _ := p.client.HLen(ctx, p.hashKey).Result()
	return int(n)
}
