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

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/frostbyte73/core"
	"github.com/pion/interceptor"
	"github.com/pion/rtcp"
	"github.com/pion/webrtc/v3"
	"github.com/pkg/errors"

	"github.com/livekit/protocol/livekit"
	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-stage/pkg/config"
	"github.com/livekit/livekit-stage/pkg/rtc/types"
)

var (
	ErrClosed             = errors.New("transport closed")
	ErrAlreadyConnected   = errors.New("transport already connected")
	ErrUnsupportedTrack   = errors.New("track cannot be published by this transport")
	ErrTrackNotPublished  = errors.New("track is not published")
	ErrLeaveRequested     = errors.New("server closed the session")
	ErrPublishNotAcked    = errors.New("server did not acknowledge the track")
	ErrUnexpectedResponse = errors.New("unexpected signal response before join")
)

// sampleTrack is implemented by local tracks that carry a pion track.
type sampleTrack interface {
	TrackLocal() webrtc.TrackLocal
}

type TransportParams struct {
	Room   string
	Config config.SessionConfig
	// defaults to DefaultDialer
	Dialer Dialer
	Logger logger.Logger
}

type publishedTrack struct {
	sid    string
	sender *webrtc.RTPSender
	track  types.LocalTrack
}

// RTCTransport is a RoomTransport speaking the LiveKit signal protocol over a websocket,
// with a publisher peer connection for local media and a subscriber peer connection that
// answers server offers.
type RTCTransport struct {
	params TransportParams
	logger logger.Logger
	api    *webrtc.API
	ctx    context.Context
	cancel context.CancelFunc

	lock       sync.Mutex
	signal     *signalConn
	publisher  *webrtc.PeerConnection
	subscriber *webrtc.PeerConnection
	onEvent    func(event types.TransportEvent)
	local      *livekit.ParticipantInfo
	remotes    *orderedmap.OrderedMap[string, *livekit.ParticipantInfo]
	// cid => ack
	pendingTracks map[string]chan *livekit.TrackInfo
	// local track ID => published
	published map[string]*publishedTrack
	// candidates that arrived before the remote description
	pendingCandidates map[livekit.SignalTarget][]webrtc.ICECandidateInit
	negotiating       bool
	renegotiate       bool
	refreshToken      string

	joined    core.Fuse
	joinErr   chan error
	closed    core.Fuse
	closeOnce sync.Once
}

func NewRTCTransport(params TransportParams) (*RTCTransport, error) {
	if params.Logger == nil {
		params.Logger = logger.GetLogger()
	}
	if params.Dialer == nil {
		params.Dialer = DefaultDialer
	}
	l := params.Logger.WithValues("room", params.Room)

	me := &webrtc.MediaEngine{}
	if err := me.RegisterDefaultCodecs(); err != nil {
		return nil, err
	}
	ir := &interceptor.Registry{}
	if err := webrtc.RegisterDefaultInterceptors(me, ir); err != nil {
		return nil, err
	}
	se := webrtc.SettingEngine{LoggerFactory: newLoggerFactory(l)}

	t := &RTCTransport{
		params: params,
		logger: l,
		api: webrtc.NewAPI(
			webrtc.WithMediaEngine(me),
			webrtc.WithInterceptorRegistry(ir),
			webrtc.WithSettingEngine(se),
		),
		remotes:           orderedmap.NewOrderedMap[string, *livekit.ParticipantInfo](),
		pendingTracks:     make(map[string]chan *livekit.TrackInfo),
		published:         make(map[string]*publishedTrack),
		pendingCandidates: make(map[livekit.SignalTarget][]webrtc.ICECandidateInit),
		joinErr:           make(chan error, 1),
	}
	t.ctx, t.cancel = context.WithCancel(context.Background())
	return t, nil
}

func (t *RTCTransport) OnEvent(f func(event types.TransportEvent)) {
	t.lock.Lock()
	t.onEvent = f
	t.lock.Unlock()
}

// Connect dials the signal server and returns once the join was accepted.
func (t *RTCTransport) Connect(ctx context.Context, url string, token string) error {
	if t.closed.IsBroken() {
		return ErrClosed
	}

	t.lock.Lock()
	if t.signal != nil {
		t.lock.Unlock()
		return ErrAlreadyConnected
	}
	if err := t.createPeerConnectionsLocked(); err != nil {
		t.lock.Unlock()
		return err
	}
	t.lock.Unlock()

	signalURL, err := SignalURL(url, true)
	if err != nil {
		return err
	}
	header := make(http.Header)
	SetAuthorizationToken(header, token)

	conn, err := t.params.Dialer(ctx, signalURL, header)
	if err != nil {
		return errors.Wrap(err, "could not dial signal server")
	}
	signal := newSignalConn(conn)

	t.lock.Lock()
	t.signal = signal
	t.lock.Unlock()
	go t.readLoop(signal)

	select {
	case <-t.joined.Watch():
		go t.pingLoop(signal)
		return nil
	case err := <-t.joinErr:
		t.Disconnect()
		return err
	case <-ctx.Done():
		t.Disconnect()
		return ctx.Err()
	case <-t.closed.Watch():
		return ErrClosed
	}
}

func (t *RTCTransport) Disconnect() {
	t.closeOnce.Do(func() {
		t.lock.Lock()
		signal := t.signal
		publisher, subscriber := t.publisher, t.subscriber
		t.closed.Break()
		t.lock.Unlock()

		t.cancel()
		if signal != nil {
			_ = signal.SendRequest(&livekit.SignalRequest{
				Message: &livekit.SignalRequest_Leave{
					Leave: &livekit.LeaveRequest{},
				},
			})
			signal.Close()
		}
		for _, pc := range []*webrtc.PeerConnection{publisher, subscriber} {
			if pc != nil {
				_ = pc.Close()
			}
		}
		t.logger.Debugw("transport closed")
	})
}

func (t *RTCTransport) PublishTrack(ctx context.Context, track types.LocalTrack) (*types.TrackInfo, error) {
	st, ok := track.(sampleTrack)
	if !ok {
		return nil, ErrUnsupportedTrack
	}
	if !t.joined.IsBroken() || t.closed.IsBroken() {
		return nil, ErrClosed
	}

	ack := make(chan *livekit.TrackInfo, 1)
	t.lock.Lock()
	t.pendingTracks[track.ID()] = ack
	signal := t.signal
	t.lock.Unlock()
	defer func() {
		t.lock.Lock()
		delete(t.pendingTracks, track.ID())
		t.lock.Unlock()
	}()

	if err := signal.SendRequest(&livekit.SignalRequest{
		Message: &livekit.SignalRequest_AddTrack{
			AddTrack: &livekit.AddTrackRequest{
				Cid:  track.ID(),
				Name: track.Kind().String(),
				Type: toProtoTrackType(track.Kind()),
			},
		},
	}); err != nil {
		return nil, err
	}

	var ti *livekit.TrackInfo
	select {
	case ti = <-ack:
	case <-ctx.Done():
		return nil, errors.Wrap(ErrPublishNotAcked, ctx.Err().Error())
	case <-t.closed.Watch():
		return nil, ErrClosed
	}

	t.lock.Lock()
	sender, err := t.publisher.AddTrack(st.TrackLocal())
	if err != nil {
		t.lock.Unlock()
		return nil, err
	}
	t.published[track.ID()] = &publishedTrack{sid: ti.Sid, sender: sender, track: track}
	t.lock.Unlock()

	go t.drainRTCP(sender, ti.Sid)
	t.negotiate()

	if ft, ok := track.(*FileTrack); ok {
		if err := ft.start(t.ctx); err != nil {
			t.logger.Warnw("could not start track writer", err, "trackID", ti.Sid)
		}
	}

	t.logger.Debugw("track published", "trackID", ti.Sid, "kind", track.Kind())
	return &types.TrackInfo{
		SID:  ti.Sid,
		Name: ti.Name,
		Kind: track.Kind(),
	}, nil
}

func (t *RTCTransport) UnpublishTrack(track types.LocalTrack) error {
	t.lock.Lock()
	pt, ok := t.published[track.ID()]
	if !ok {
		t.lock.Unlock()
		return ErrTrackNotPublished
	}
	delete(t.published, track.ID())
	err := t.publisher.RemoveTrack(pt.sender)
	t.lock.Unlock()
	if err != nil {
		return err
	}

	t.negotiate()
	return nil
}

func (t *RTCTransport) SetTrackMuted(track types.LocalTrack, muted bool) error {
	t.lock.Lock()
	pt, ok := t.published[track.ID()]
	signal := t.signal
	t.lock.Unlock()
	if !ok {
		return ErrTrackNotPublished
	}

	return signal.SendRequest(&livekit.SignalRequest{
		Message: &livekit.SignalRequest_Mute{
			Mute: &livekit.MuteTrackRequest{
				Sid:   pt.sid,
				Muted: muted,
			},
		},
	})
}

func (t *RTCTransport) LocalParticipant() *types.ParticipantInfo {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.local == nil {
		return nil
	}
	return toParticipantInfo(t.local)
}

func (t *RTCTransport) RemoteParticipants() []*types.ParticipantInfo {
	t.lock.Lock()
	defer t.lock.Unlock()

	res := make([]*types.ParticipantInfo, 0, t.remotes.Len())
	for el := t.remotes.Front(); el != nil; el = el.Next() {
		res = append(res, toParticipantInfo(el.Value))
	}
	return res
}

// RefreshToken returns the latest token pushed by the server, if any.
func (t *RTCTransport) RefreshToken() string {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.refreshToken
}

// ----------------------------------------

func (t *RTCTransport) createPeerConnectionsLocked() error {
	conf := webrtc.Configuration{}
	if len(t.params.Config.ICEServers) > 0 {
		conf.ICEServers = []webrtc.ICEServer{{URLs: t.params.Config.ICEServers}}
	}

	publisher, err := t.api.NewPeerConnection(conf)
	if err != nil {
		return err
	}
	subscriber, err := t.api.NewPeerConnection(conf)
	if err != nil {
		_ = publisher.Close()
		return err
	}

	publisher.OnICECandidate(func(c *webrtc.ICECandidate) {
		t.sendCandidate(c, livekit.SignalTarget_PUBLISHER)
	})
	subscriber.OnICECandidate(func(c *webrtc.ICECandidate) {
		t.sendCandidate(c, livekit.SignalTarget_SUBSCRIBER)
	})
	publisher.OnConnectionStateChange(func(state webrtc.PeerConnectionState) {
		t.logger.Debugw("publisher connection state changed", "state", state.String())
		if state == webrtc.PeerConnectionStateFailed {
			t.emit(types.TransportEvent{Kind: types.EventError, Err: errors.New("publisher connection failed")})
		}
	})
	subscriber.OnTrack(func(track *webrtc.TrackRemote, _ *webrtc.RTPReceiver) {
		// remote media is not rendered, only consumed
		go func() {
			for {
				if _, _, err := track.ReadRTP(); err != nil {
					return
				}
			}
		}()
	})

	t.publisher = publisher
	t.subscriber = subscriber
	return nil
}

func (t *RTCTransport) readLoop(signal *signalConn) {
	for {
		res, err := signal.ReadResponse()
		if err != nil {
			if t.closed.IsBroken() {
				return
			}
			if !t.joined.IsBroken() {
				t.joinErr <- errors.Wrap(err, "signal connection closed before join")
				return
			}
			t.logger.Infow("signal connection lost", "error", err)
			t.emit(types.TransportEvent{Kind: types.EventDisconnected, Err: err})
			t.Disconnect()
			return
		}

		if err = t.handleResponse(res); err != nil {
			if errors.Is(err, ErrLeaveRequested) {
				t.emit(types.TransportEvent{Kind: types.EventDisconnected, Err: err})
				t.Disconnect()
				return
			}
			if !t.joined.IsBroken() {
				t.joinErr <- err
				return
			}
			t.logger.Warnw("could not handle signal response", err)
			t.emit(types.TransportEvent{Kind: types.EventError, Err: err})
		}
	}
}

func (t *RTCTransport) handleResponse(res *livekit.SignalResponse) error {
	if _, ok := res.Message.(*livekit.SignalResponse_Join); !ok && !t.joined.IsBroken() {
		if _, leave := res.Message.(*livekit.SignalResponse_Leave); leave {
			return ErrLeaveRequested
		}
		return errors.Wrapf(ErrUnexpectedResponse, "%T", res.Message)
	}

	switch msg := res.Message.(type) {
	case *livekit.SignalResponse_Join:
		t.lock.Lock()
		t.local = msg.Join.Participant
		for _, p := range msg.Join.OtherParticipants {
			t.remotes.Set(p.Sid, p)
		}
		t.lock.Unlock()
		t.logger.Infow("join accepted", "participant", msg.Join.Participant.Identity, "others", len(msg.Join.OtherParticipants))
		t.joined.Break()

	case *livekit.SignalResponse_Answer:
		return t.handleAnswer(fromProtoSessionDescription(msg.Answer))

	case *livekit.SignalResponse_Offer:
		return t.handleOffer(fromProtoSessionDescription(msg.Offer))

	case *livekit.SignalResponse_Trickle:
		return t.addCandidate(msg.Trickle.Target, fromProtoTrickle(msg.Trickle))

	case *livekit.SignalResponse_Update:
		for _, p := range msg.Update.Participants {
			t.handleParticipantUpdate(p)
		}

	case *livekit.SignalResponse_TrackPublished:
		t.lock.Lock()
		ack := t.pendingTracks[msg.TrackPublished.Cid]
		t.lock.Unlock()
		if ack != nil {
			select {
			case ack <- msg.TrackPublished.Track:
			default:
			}
		}

	case *livekit.SignalResponse_TrackUnpublished:
		t.handleTrackUnpublished(msg.TrackUnpublished.TrackSid)

	case *livekit.SignalResponse_Mute:
		t.lock.Lock()
		local := t.local
		var kind types.TrackKind
		found := false
		for _, pt := range t.published {
			if pt.sid == msg.Mute.Sid {
				kind, found = pt.track.Kind(), true
			}
		}
		t.lock.Unlock()
		if found && local != nil {
			t.emit(types.TransportEvent{
				Kind:        types.EventTrackMuted,
				Participant: &types.ParticipantInfo{SID: local.Sid, Identity: local.Identity},
				Track:       &types.TrackInfo{SID: msg.Mute.Sid, Kind: kind, Muted: msg.Mute.Muted},
			})
		}

	case *livekit.SignalResponse_RefreshToken:
		t.lock.Lock()
		t.refreshToken = msg.RefreshToken
		t.lock.Unlock()

	case *livekit.SignalResponse_Leave:
		return ErrLeaveRequested
	}
	return nil
}

func (t *RTCTransport) handleParticipantUpdate(p *livekit.ParticipantInfo) {
	t.lock.Lock()
	if t.local != nil && p.Sid == t.local.Sid {
		t.local = p
		t.lock.Unlock()
		return
	}

	previous, existed := t.remotes.Get(p.Sid)
	if p.State == livekit.ParticipantInfo_DISCONNECTED {
		t.remotes.Delete(p.Sid)
		t.lock.Unlock()
		if existed {
			t.emit(types.TransportEvent{Kind: types.EventParticipantLeft, Participant: toParticipantInfo(p)})
		}
		return
	}
	t.remotes.Set(p.Sid, p)
	t.lock.Unlock()

	info := toParticipantInfo(p)
	if !existed {
		t.emit(types.TransportEvent{Kind: types.EventParticipantJoined, Participant: info})
		return
	}

	// participant metadata may have changed, joins are upserts
	t.emit(types.TransportEvent{Kind: types.EventParticipantJoined, Participant: &types.ParticipantInfo{
		SID:      info.SID,
		Identity: info.Identity,
		Name:     info.Name,
		Metadata: info.Metadata,
	}})
	for _, event := range diffTracks(previous, p) {
		t.emit(event)
	}
}

func (t *RTCTransport) handleTrackUnpublished(sid string) {
	t.lock.Lock()
	var removed *publishedTrack
	for id, pt := range t.published {
		if pt.sid == sid {
			removed = pt
			delete(t.published, id)
			_ = t.publisher.RemoveTrack(pt.sender)
		}
	}
	local := t.local
	t.lock.Unlock()

	if removed == nil {
		return
	}
	t.negotiate()
	if local != nil {
		t.emit(types.TransportEvent{
			Kind:        types.EventTrackUnsubscribed,
			Participant: &types.ParticipantInfo{SID: local.Sid, Identity: local.Identity},
			Track:       &types.TrackInfo{SID: sid, Kind: removed.track.Kind()},
		})
	}
}

// negotiate sends a publisher offer, or queues one when a negotiation is already running.
func (t *RTCTransport) negotiate() {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.closed.IsBroken() || t.signal == nil {
		return
	}
	if t.negotiating {
		t.renegotiate = true
		return
	}

	offer, err := t.publisher.CreateOffer(nil)
	if err != nil {
		t.logger.Errorw("could not create offer", err)
		return
	}
	if err = t.publisher.SetLocalDescription(offer); err != nil {
		t.logger.Errorw("could not set local description", err)
		return
	}
	t.negotiating = true
	t.renegotiate = false

	if err = t.signal.SendRequest(&livekit.SignalRequest{
		Message: &livekit.SignalRequest_Offer{
			Offer: toProtoSessionDescription(offer),
		},
	}); err != nil {
		t.logger.Warnw("could not send offer", err)
		t.negotiating = false
	}
}

func (t *RTCTransport) handleAnswer(desc webrtc.SessionDescription) error {
	t.lock.Lock()
	err := t.publisher.SetRemoteDescription(desc)
	if err == nil {
		err = t.flushCandidatesLocked(livekit.SignalTarget_PUBLISHER, t.publisher)
	}
	t.negotiating = false
	again := t.renegotiate
	t.lock.Unlock()
	if err != nil {
		return err
	}

	if again {
		t.negotiate()
	}
	return nil
}

func (t *RTCTransport) handleOffer(desc webrtc.SessionDescription) error {
	t.lock.Lock()
	if err := t.subscriber.SetRemoteDescription(desc); err != nil {
		t.lock.Unlock()
		return err
	}
	if err := t.flushCandidatesLocked(livekit.SignalTarget_SUBSCRIBER, t.subscriber); err != nil {
		t.lock.Unlock()
		return err
	}
	answer, err := t.subscriber.CreateAnswer(nil)
	if err != nil {
		t.lock.Unlock()
		return err
	}
	if err = t.subscriber.SetLocalDescription(answer); err != nil {
		t.lock.Unlock()
		return err
	}
	signal := t.signal
	t.lock.Unlock()

	return signal.SendRequest(&livekit.SignalRequest{
		Message: &livekit.SignalRequest_Answer{
			Answer: toProtoSessionDescription(answer),
		},
	})
}

func (t *RTCTransport) addCandidate(target livekit.SignalTarget, candidate webrtc.ICECandidateInit) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	pc := t.subscriber
	if target == livekit.SignalTarget_PUBLISHER {
		pc = t.publisher
	}
	if pc.RemoteDescription() == nil {
		t.pendingCandidates[target] = append(t.pendingCandidates[target], candidate)
		return nil
	}
	return pc.AddICECandidate(candidate)
}

func (t *RTCTransport) flushCandidatesLocked(target livekit.SignalTarget, pc *webrtc.PeerConnection) error {
	pending := t.pendingCandidates[target]
	delete(t.pendingCandidates, target)
	for _, c := range pending {
		if err := pc.AddICECandidate(c); err != nil {
			return err
		}
	}
	return nil
}

func (t *RTCTransport) sendCandidate(c *webrtc.ICECandidate, target livekit.SignalTarget) {
	if c == nil {
		return
	}
	t.lock.Lock()
	signal := t.signal
	t.lock.Unlock()
	if signal == nil {
		return
	}

	trickle := toProtoTrickle(c.ToJSON())
	trickle.Target = target
	if err := signal.SendRequest(&livekit.SignalRequest{
		Message: &livekit.SignalRequest_Trickle{
			Trickle: trickle,
		},
	}); err != nil {
		t.logger.Debugw("could not send candidate", "error", err)
	}
}

func (t *RTCTransport) drainRTCP(sender *webrtc.RTPSender, sid string) {
	for {
		pkts, _, err := sender.ReadRTCP()
		if err != nil {
			return
		}
		for _, pkt := range pkts {
			switch pkt.(type) {
			case *rtcp.PictureLossIndication, *rtcp.FullIntraRequest:
				t.logger.Debugw("keyframe requested", "trackID", sid)
			}
		}
	}
}

func (t *RTCTransport) pingLoop(signal *signalConn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := signal.Ping(); err != nil {
				t.logger.Debugw("could not ping signal server", "error", err)
			}
		case <-t.closed.Watch():
			return
		}
	}
}

func (t *RTCTransport) emit(event types.TransportEvent) {
	t.lock.Lock()
	onEvent := t.onEvent
	t.lock.Unlock()

	if onEvent != nil {
		onEvent(event)
	}
}

// ----------------------------------------

func diffTracks(previous, current *livekit.ParticipantInfo) []types.TransportEvent {
	owner := &types.ParticipantInfo{SID: current.Sid, Identity: current.Identity, Name: current.Name}
	before := make(map[string]*livekit.TrackInfo, len(previous.Tracks))
	for _, ti := range previous.Tracks {
		before[ti.Sid] = ti
	}

	var events []types.TransportEvent
	for _, ti := range current.Tracks {
		old, ok := before[ti.Sid]
		delete(before, ti.Sid)
		track := toTrackInfo(ti)
		switch {
		case !ok:
			events = append(events, types.TransportEvent{Kind: types.EventTrackSubscribed, Participant: owner, Track: track})
		case old.Muted != ti.Muted:
			events = append(events, types.TransportEvent{Kind: types.EventTrackMuted, Participant: owner, Track: track})
		}
	}
	for _, ti := range previous.Tracks {
		if _, gone := before[ti.Sid]; gone {
			events = append(events, types.TransportEvent{Kind: types.EventTrackUnsubscribed, Participant: owner, Track: toTrackInfo(ti)})
		}
	}
	return events
}

func toParticipantInfo(p *livekit.ParticipantInfo) *types.ParticipantInfo {
	info := &types.ParticipantInfo{
		SID:      p.Sid,
		Identity: p.Identity,
		Name:     p.Name,
		Metadata: p.Metadata,
	}
	for _, ti := range p.Tracks {
		if ti.Type != livekit.TrackType_VIDEO && ti.Type != livekit.TrackType_AUDIO {
			continue
		}
		info.Tracks = append(info.Tracks, *toTrackInfo(ti))
	}
	return info
}

func toTrackInfo(ti *livekit.TrackInfo) *types.TrackInfo {
	kind := types.TrackKindVideo
	if ti.Type == livekit.TrackType_AUDIO {
		kind = types.TrackKindAudio
	}
	return &types.TrackInfo{
		SID:   ti.Sid,
		Name:  ti.Name,
		Kind:  kind,
		Muted: ti.Muted,
	}
}

func toProtoTrackType(kind types.TrackKind) livekit.TrackType {
	if kind == types.TrackKindAudio {
		return livekit.TrackType_AUDIO
	}
	return livekit.TrackType_VIDEO
}

func toProtoSessionDescription(sd webrtc.SessionDescription) *livekit.SessionDescription {
	return &livekit.SessionDescription{
		Type: sd.Type.String(),
		Sdp:  sd.SDP,
	}
}

func fromProtoSessionDescription(sd *livekit.SessionDescription) webrtc.SessionDescription {
	return webrtc.SessionDescription{
		Type: webrtc.NewSDPType(sd.Type),
		SDP:  sd.Sdp,
	}
}

func toProtoTrickle(candidateInit webrtc.ICECandidateInit) *livekit.TrickleRequest {
	data, _ := json.Marshal(candidateInit)
	return &livekit.TrickleRequest{
		CandidateInit: string(data),
	}
}

func fromProtoTrickle(trickle *livekit.TrickleRequest) webrtc.ICECandidateInit {
	ci := webrtc.ICECandidateInit{}
	_ = json.Unmarshal([]byte(trickle.CandidateInit), &ci)
	return ci
}
