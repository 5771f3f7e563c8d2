package types

import (
	"fmt"
	"strings"
	"time"
)

type CapabilityMode int

const (
	CapabilityViewer CapabilityMode = iota
	CapabilityPublisher
)

func (m CapabilityMode) String() string {
	switch m {
	case CapabilityViewer:
		return "viewer"
	case CapabilityPublisher:
		return "publisher"
	default:
		return fmt.Sprintf("%d", int(m))
	}
}

func ParseCapabilityMode(s string) (CapabilityMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "viewer":
		return CapabilityViewer, nil
	case "publisher", "broadcaster":
		return CapabilityPublisher, nil
	default:
		return CapabilityViewer, fmt.Errorf("unknown capability mode: %s", s)
	}
}

type ConnectionState int

const (
	StateIdle ConnectionState = iota
	StateConnecting
	StateConnected
	StateDisconnecting
	StateFailed
)

func (s ConnectionState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateConnecting:
		return "CONNECTING"
	case StateConnected:
		return "CONNECTED"
	case StateDisconnecting:
		return "DISCONNECTING"
	case StateFailed:
		return "FAILED"
	default:
		return fmt.Sprintf("%d", int(s))
	}
}

// SessionKey identifies the intent behind a connection. Two connects with equal keys
// describe the same session.
type SessionKey struct {
	Room     string
	Identity string
	Mode     CapabilityMode
}

func (k SessionKey) String() string {
	return fmt.Sprintf("%s:%s:%s", k.Room, k.Identity, k.Mode)
}

// Credential is a short-lived join token for one room/identity/mode.
type Credential struct {
	Token string
	// optional, overrides the configured signal URL
	ServerURL string
	ExpiresAt time.Time
}

// ValidFor reports whether the credential remains usable for at least d.
func (c *Credential) ValidFor(d time.Duration) bool {
	if c == nil || c.Token == "" {
		return false
	}
	if c.ExpiresAt.IsZero() {
		return true
	}
	return time.Until(c.ExpiresAt) > d
}

type TrackKind int

const (
	TrackKindVideo TrackKind = iota
	TrackKindAudio
)

func (k TrackKind) String() string {
	if k == TrackKindAudio {
		return "audio"
	}
	return "video"
}

type TrackInfo struct {
	SID   string
	Name  string
	Kind  TrackKind
	Muted bool
}

type ParticipantInfo struct {
	SID      string
	Identity string
	Name     string
	Metadata string
	Tracks   []TrackInfo
}

type TransportEventKind int

const (
	EventConnected TransportEventKind = iota
	EventDisconnected
	EventParticipantJoined
	EventParticipantLeft
	EventTrackSubscribed
	EventTrackUnsubscribed
	EventTrackMuted
	EventError
)

func (k TransportEventKind) String() string {
	switch k {
	case EventConnected:
		return "connected"
	case EventDisconnected:
		return "disconnected"
	case EventParticipantJoined:
		return "participantJoined"
	case EventParticipantLeft:
		return "participantLeft"
	case EventTrackSubscribed:
		return "trackSubscribed"
	case EventTrackUnsubscribed:
		return "trackUnsubscribed"
	case EventTrackMuted:
		return "trackMuted"
	case EventError:
		return "error"
	default:
		return fmt.Sprintf("%d", int(k))
	}
}

// TransportEvent is emitted by a RoomTransport. Participant is set for participant and track
// events, Track for track events and Err for errors and unexpected disconnects.
type TransportEvent struct {
	Kind        TransportEventKind
	Participant *ParticipantInfo
	Track       *TrackInfo
	Err         error
}

type VideoOptions struct {
	DeviceID  string
	Width     uint32
	Height    uint32
	FrameRate float64
}

type AudioOptions struct {
	DeviceID string
}

// MediaStream holds tracks captured ahead of publishing, e.g. while asking for device permissions.
type MediaStream struct {
	Video LocalTrack
	Audio LocalTrack
}

// Stop stops every track in the stream.
func (s *MediaStream) Stop() {
	if s == nil {
		return
	}
	if s.Video != nil {
		s.Video.Stop()
	}
	if s.Audio != nil {
		s.Audio.Stop()
	}
}
