package types

import (
	"context"
	"time"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate . CredentialGateway
type CredentialGateway interface {
	IssueJoinCredential(ctx context.Context, room string, identity string, mode CapabilityMode) (*Credential, error)
}

//counterfeiter:generate . TransportFactory
type TransportFactory interface {
	Open(room string) (RoomTransport, error)
}

// RoomTransport is a single connection to a media room. Handlers registered through OnEvent
// must be in place before Connect is called.
//
//counterfeiter:generate . RoomTransport
type RoomTransport interface {
	OnEvent(f func(event TransportEvent))
	Connect(ctx context.Context, url string, token string) error
	Disconnect()
	PublishTrack(ctx context.Context, track LocalTrack) (*TrackInfo, error)
	UnpublishTrack(track LocalTrack) error
	SetTrackMuted(track LocalTrack, muted bool) error
	LocalParticipant() *ParticipantInfo
	RemoteParticipants() []*ParticipantInfo
}

//counterfeiter:generate . LocalTrack
type LocalTrack interface {
	ID() string
	Kind() TrackKind
	IsLive() bool
	Stop()
}

//counterfeiter:generate . MediaDevices
type MediaDevices interface {
	CaptureVideo(ctx context.Context, opts VideoOptions) (LocalTrack, error)
	CaptureAudio(ctx context.Context, opts AudioOptions) (LocalTrack, error)
}

//counterfeiter:generate . WebsocketClient
type WebsocketClient interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	Close() error
}
