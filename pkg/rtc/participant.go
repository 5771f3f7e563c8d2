package rtc

import (
	"github.com/livekit/livekit-stage/pkg/rtc/types"
)

// Participant is the reconciled view of one room member. Fields fill in as events arrive,
// so any of them may still be unset.
type Participant struct {
	Identity          string
	Name              string
	Metadata          string
	IsLocal           bool
	CameraEnabled     bool
	MicrophoneEnabled bool
	VideoTrack        *types.TrackInfo
	AudioTrack        *types.TrackInfo
}

func newParticipant(info *types.ParticipantInfo, isLocal bool) *Participant {
	p := &Participant{
		IsLocal: isLocal,
	}
	p.update(info)
	return p
}

func (p *Participant) update(info *types.ParticipantInfo) {
	if info == nil {
		return
	}
	p.Identity = info.Identity
	if info.Name != "" {
		p.Name = info.Name
	}
	if info.Metadata != "" {
		p.Metadata = info.Metadata
	}
	for i := range info.Tracks {
		p.setTrack(&info.Tracks[i])
	}
}

func (p *Participant) setTrack(track *types.TrackInfo) {
	t := *track
	switch t.Kind {
	case types.TrackKindVideo:
		p.VideoTrack = &t
		p.CameraEnabled = !t.Muted
	case types.TrackKindAudio:
		p.AudioTrack = &t
		p.MicrophoneEnabled = !t.Muted
	}
}

func (p *Participant) removeTrack(track *types.TrackInfo) {
	switch track.Kind {
	case types.TrackKindVideo:
		if p.VideoTrack == nil || track.SID == "" || p.VideoTrack.SID == track.SID {
			p.VideoTrack = nil
			p.CameraEnabled = false
		}
	case types.TrackKindAudio:
		if p.AudioTrack == nil || track.SID == "" || p.AudioTrack.SID == track.SID {
			p.AudioTrack = nil
			p.MicrophoneEnabled = false
		}
	}
}

func (p *Participant) setMuted(track *types.TrackInfo) {
	switch track.Kind {
	case types.TrackKindVideo:
		if p.VideoTrack != nil {
			p.VideoTrack.Muted = track.Muted
		}
		p.CameraEnabled = !track.Muted && p.VideoTrack != nil
	case types.TrackKindAudio:
		if p.AudioTrack != nil {
			p.AudioTrack.Muted = track.Muted
		}
		p.MicrophoneEnabled = !track.Muted && p.AudioTrack != nil
	}
}

func (p *Participant) Clone() *Participant {
	if p == nil {
		return nil
	}
	c := *p
	if p.VideoTrack != nil {
		t := *p.VideoTrack
		c.VideoTrack = &t
	}
	if p.AudioTrack != nil {
		t := *p.AudioTrack
		c.AudioTrack = &t
	}
	return &c
}
