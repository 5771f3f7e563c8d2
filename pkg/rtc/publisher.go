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

package rtc

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"github.com/livekit/livekit-stage/pkg/config"
	"github.com/livekit/livekit-stage/pkg/rtc/types"
	"github.com/livekit/livekit-stage/pkg/telemetry/prometheus"
)

// publishGuard is held for the whole of a publish, capture included. Disconnect consults the
// same guard.
type publishGuard struct {
	busy atomic.Bool
}

func (g *publishGuard) tryAcquire() (func(), bool) {
	if !g.busy.CompareAndSwap(false, true) {
		return nil, false
	}
	var once sync.Once
	return func() {
		once.Do(func() { g.busy.Store(false) })
	}, true
}

func (g *publishGuard) InUse() bool {
	return g.busy.Load()
}

type PublishPreferences struct {
	// tracks captured ahead of time; live tracks are published instead of capturing new ones
	Preflight    *types.MediaStream
	Video        types.VideoOptions
	Audio        types.AudioOptions
	DisableVideo bool
	DisableAudio bool
}

// StartPublishing captures and publishes camera then microphone on the connected session.
// On failure every track acquired by this call is released and the session stays connected.
func (c *Coordinator) StartPublishing(ctx context.Context, prefs PublishPreferences) error {
	c.lock.Lock()
	sess := c.current
	if sess == nil || c.state != types.StateConnected {
		c.lock.Unlock()
		return ErrNotConnected
	}
	if sess.key.Mode != types.CapabilityPublisher {
		c.lock.Unlock()
		return ErrPublishNotPermitted
	}
	needVideo := !prefs.DisableVideo && sess.video == nil
	needAudio := !prefs.DisableAudio && sess.audio == nil
	if !needVideo && !needAudio {
		c.lock.Unlock()
		return nil
	}
	release, ok := c.publishGuard.tryAcquire()
	c.lock.Unlock()
	if !ok {
		return ErrPublishInProgress
	}
	defer release()

	return c.publish(ctx, sess, prefs, needVideo, needAudio)
}

func (c *Coordinator) ToggleCamera(ctx context.Context) bool {
	return c.toggle(ctx, types.TrackKindVideo)
}

func (c *Coordinator) ToggleMicrophone(ctx context.Context) bool {
	return c.toggle(ctx, types.TrackKindAudio)
}

// toggle flips the mute state of a published track, or publishes one when there is none.
// It returns whether the track is enabled afterwards.
func (c *Coordinator) toggle(ctx context.Context, kind types.TrackKind) bool {
	c.lock.Lock()
	sess := c.current
	if sess == nil || c.state != types.StateConnected {
		c.lock.Unlock()
		return false
	}
	release, ok := c.publishGuard.tryAcquire()
	if !ok {
		c.lock.Unlock()
		c.logger.Debugw("ignoring toggle while publishing", "kind", kind)
		return false
	}
	track, info := sess.track(kind)
	muted := false
	if info != nil {
		muted = info.Muted
	}
	c.lock.Unlock()
	defer release()

	if track != nil {
		wasMuted := muted
		muted = !wasMuted
		if err := sess.transport.SetTrackMuted(track, muted); err != nil {
			sess.logger.Warnw("could not toggle track", err, "kind", kind)
			return !wasMuted
		}
		c.lock.Lock()
		if _, current := sess.track(kind); current != nil {
			current.Muted = muted
		}
		c.lock.Unlock()
		c.params.Bus.updateLocal(func(p *Participant) {
			p.setMuted(&types.TrackInfo{Kind: kind, Muted: muted})
		})
		return !muted
	}

	if sess.key.Mode != types.CapabilityPublisher {
		return false
	}
	prefs := PublishPreferences{
		DisableVideo: kind != types.TrackKindVideo,
		DisableAudio: kind != types.TrackKindAudio,
	}
	if err := c.publish(ctx, sess, prefs, kind == types.TrackKindVideo, kind == types.TrackKindAudio); err != nil {
		sess.logger.Warnw("could not enable track", err, "kind", kind)
		return false
	}
	return true
}

// publish runs with the publish guard held.
func (c *Coordinator) publish(ctx context.Context, sess *session, prefs PublishPreferences, needVideo, needAudio bool) error {
	var acquired, published []types.LocalTrack
	rollback := func() {
		for _, t := range published {
			if err := sess.transport.UnpublishTrack(t); err != nil {
				sess.logger.Debugw("could not unpublish track", "track", t.ID(), "error", err)
			}
		}
		for _, t := range acquired {
			t.Stop()
		}
	}

	var videoTrack, audioTrack types.LocalTrack
	var videoInfo, audioInfo *types.TrackInfo

	if needVideo {
		track, err := c.acquire(ctx, types.TrackKindVideo, prefs)
		if err != nil {
			rollback()
			prometheus.RecordPublish("video", "failure")
			return errors.Wrap(err, "could not acquire camera")
		}
		acquired = append(acquired, track)

		info, err := c.publishTrack(ctx, sess, track)
		prometheus.RecordPublish("video", resultOf(err))
		if err != nil {
			rollback()
			return errors.Wrap(err, "could not publish video")
		}
		published = append(published, track)
		videoTrack, videoInfo = track, info

		if needAudio {
			if err := c.waitAudioDelay(ctx); err != nil {
				rollback()
				return err
			}
		}
	}

	if needAudio {
		track, err := c.acquire(ctx, types.TrackKindAudio, prefs)
		if err != nil {
			rollback()
			prometheus.RecordPublish("audio", "failure")
			return errors.Wrap(err, "could not acquire microphone")
		}
		acquired = append(acquired, track)

		info, err := c.publishTrack(ctx, sess, track)
		prometheus.RecordPublish("audio", resultOf(err))
		if err != nil {
			rollback()
			return errors.Wrap(err, "could not publish audio")
		}
		published = append(published, track)
		audioTrack, audioInfo = track, info
	}

	c.lock.Lock()
	if c.current != sess {
		c.lock.Unlock()
		rollback()
		return ErrSessionChanged
	}
	if videoTrack != nil {
		sess.video, sess.videoInfo = videoTrack, videoInfo
	}
	if audioTrack != nil {
		sess.audio, sess.audioInfo = audioTrack, audioInfo
	}
	c.lock.Unlock()

	c.params.Bus.updateLocal(func(p *Participant) {
		if videoInfo != nil {
			p.setTrack(videoInfo)
		}
		if audioInfo != nil {
			p.setTrack(audioInfo)
		}
	})
	sess.logger.Infow("published local media", "video", videoInfo != nil, "audio", audioInfo != nil)
	return nil
}

func (c *Coordinator) acquire(ctx context.Context, kind types.TrackKind, prefs PublishPreferences) (types.LocalTrack, error) {
	if prefs.Preflight != nil {
		preflight := prefs.Preflight.Video
		if kind == types.TrackKindAudio {
			preflight = prefs.Preflight.Audio
		}
		if preflight != nil && preflight.IsLive() {
			return preflight, nil
		}
	}
	if c.params.Devices == nil {
		return nil, errors.New("no media devices available")
	}
	if kind == types.TrackKindAudio {
		return c.params.Devices.CaptureAudio(ctx, prefs.Audio)
	}
	return c.params.Devices.CaptureVideo(ctx, prefs.Video)
}

func (c *Coordinator) publishTrack(ctx context.Context, sess *session, track types.LocalTrack) (*types.TrackInfo, error) {
	timeout := c.params.Config.PublishTimeout
	if timeout <= 0 {
		timeout = config.DefaultConfig.Session.PublishTimeout
	}
	publishCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	info, err := sess.transport.PublishTrack(publishCtx, track)
	if err != nil {
		return nil, err
	}
	if info == nil {
		info = &types.TrackInfo{Kind: track.Kind()}
	}
	return info, nil
}

func (c *Coordinator) waitAudioDelay(ctx context.Context) error {
	delay := c.params.Config.AudioPublishDelay
	if delay <= 0 {
		return nil
	}
	t := time.NewTimer(delay)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func resultOf(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
