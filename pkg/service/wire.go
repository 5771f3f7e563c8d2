//go:build wireinject
// +build wireinject

package service

import (
	"github.com/google/wire"

	"github.com/livekit/livekit-stage/pkg/config"
	"github.com/livekit/livekit-stage/pkg/seats"
)

func InitializeServer(conf *config.Config) (*StageServer, error) {
	wire.Build(
		ServiceSet,
	)
	return &StageServer{}, nil
}

func InitializeStore(conf *config.Config) (seats.Store, error) {
	wire.Build(
		createRedisClient,
		createStore,
	)
	return nil, nil
}
