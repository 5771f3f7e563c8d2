package client

import (
	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-stage/pkg/config"
	"github.com/livekit/livekit-stage/pkg/rtc/types"
)

// TransportFactory opens RTCTransports sharing one session config.
type TransportFactory struct {
	conf   config.SessionConfig
	dialer Dialer
	logger logger.Logger
}

func NewTransportFactory(conf config.SessionConfig, dialer Dialer, l logger.Logger) *TransportFactory {
	if l == nil {
		l = logger.GetLogger()
	}
	return &TransportFactory{conf: conf, dialer: dialer, logger: l}
}

func (f *TransportFactory) Open(room string) (types.RoomTransport, error) {
	return NewRTCTransport(TransportParams{
		Room:   room,
		Config: f.conf,
		Dialer: f.dialer,
		Logger: f.logger,
	})
}
