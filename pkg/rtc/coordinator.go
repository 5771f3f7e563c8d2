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

	"github.com/frostbyte73/core"
	"github.com/gammazero/workerpool"
	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-stage/pkg/config"
	"github.com/livekit/livekit-stage/pkg/rtc/types"
	"github.com/livekit/livekit-stage/pkg/telemetry/prometheus"
)

var validTransitions = map[types.ConnectionState][]types.ConnectionState{
	types.StateIdle:          {types.StateConnecting},
	types.StateConnecting:    {types.StateConnected, types.StateFailed, types.StateIdle},
	types.StateConnected:     {types.StateDisconnecting},
	types.StateDisconnecting: {types.StateIdle},
	types.StateFailed:        {types.StateIdle},
}

type CoordinatorParams struct {
	Config     config.SessionConfig
	Gateway    types.CredentialGateway
	Transports types.TransportFactory
	Devices    types.MediaDevices
	Bus        *EventBus
	Logger     logger.Logger
}

type ConnectOptions struct {
	// overrides the credential and configured server URL
	ServerURL string
	// defaults to the configured connect timeout
	Timeout time.Duration
	// start publishing right after a publisher connect
	AutoPublish bool
	Publish     PublishPreferences
}

type session struct {
	key       types.SessionKey
	opts      ConnectOptions
	transport types.RoomTransport
	logger    logger.Logger

	video     types.LocalTrack
	videoInfo *types.TrackInfo
	audio     types.LocalTrack
	audioInfo *types.TrackInfo
}

func (s *session) track(kind types.TrackKind) (types.LocalTrack, *types.TrackInfo) {
	if kind == types.TrackKindAudio {
		return s.audio, s.audioInfo
	}
	return s.video, s.videoInfo
}

func (s *session) releaseTracks() []types.LocalTrack {
	var tracks []types.LocalTrack
	if s.video != nil {
		tracks = append(tracks, s.video)
	}
	if s.audio != nil {
		tracks = append(tracks, s.audio)
	}
	s.video, s.videoInfo = nil, nil
	s.audio, s.audioInfo = nil, nil
	return tracks
}

// Coordinator owns the single room session of a client. At most one connect runs at a time;
// a connect with a different key tears the current session down first.
type Coordinator struct {
	params CoordinatorParams
	logger logger.Logger

	connecting   atomic.Bool
	publishGuard publishGuard

	lock          sync.Mutex
	state         types.ConnectionState
	current       *session
	pending       *session
	lastSession   *session
	lastError     error
	connectCancel context.CancelFunc

	onConnected    func(key types.SessionKey)
	onDisconnected func(key types.SessionKey)
	onError        func(key types.SessionKey, err error)
	onStateChanged func(state types.ConnectionState)

	callbacks *workerpool.WorkerPool
	closed    core.Fuse
	// bus was created here rather than injected
	ownsBus bool
}

func NewCoordinator(params CoordinatorParams) *Coordinator {
	if params.Logger == nil {
		params.Logger = logger.GetLogger()
	}
	ownsBus := params.Bus == nil
	if ownsBus {
		params.Bus = NewEventBus(EventBusParams{Logger: params.Logger})
	}
	if params.Config.ConnectTimeout <= 0 {
		params.Config.ConnectTimeout = config.DefaultConfig.Session.ConnectTimeout
	}
	return &Coordinator{
		params:    params,
		logger:    params.Logger,
		state:     types.StateIdle,
		callbacks: workerpool.New(1),
		ownsBus:   ownsBus,
	}
}

func (c *Coordinator) Bus() *EventBus {
	return c.params.Bus
}

// Close disconnects and stops callback delivery. Callbacks already queued are delivered.
// An injected bus is left running for its owner to close.
func (c *Coordinator) Close() {
	if c.closed.IsBroken() {
		return
	}
	c.lock.Lock()
	if c.pending != nil {
		c.pending = nil
		if c.connectCancel != nil {
			c.connectCancel()
			c.connectCancel = nil
		}
		c.setStateLocked(types.StateIdle)
	}
	finish := c.teardownLocked(true)
	c.lock.Unlock()
	finish()

	c.lock.Lock()
	c.closed.Break()
	c.lock.Unlock()
	c.callbacks.StopWait()
	if c.ownsBus {
		c.params.Bus.Close()
	}
}

func (c *Coordinator) OnConnected(f func(key types.SessionKey)) {
	c.lock.Lock()
	c.onConnected = f
	c.lock.Unlock()
}

func (c *Coordinator) OnDisconnected(f func(key types.SessionKey)) {
	c.lock.Lock()
	c.onDisconnected = f
	c.lock.Unlock()
}

func (c *Coordinator) OnError(f func(key types.SessionKey, err error)) {
	c.lock.Lock()
	c.onError = f
	c.lock.Unlock()
}

func (c *Coordinator) OnStateChanged(f func(state types.ConnectionState)) {
	c.lock.Lock()
	c.onStateChanged = f
	c.lock.Unlock()
}

func (c *Coordinator) State() types.ConnectionState {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.state
}

func (c *Coordinator) LastError() error {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.lastError
}

// Session returns the key of the connected session.
func (c *Coordinator) Session() (types.SessionKey, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.current == nil {
		return types.SessionKey{}, false
	}
	return c.current.key, true
}

// Connect joins room as identity with the given capability and reports whether the session is
// connected when it returns. Connecting to the current session again is a no-op; a connect
// issued while another is running returns false.
func (c *Coordinator) Connect(ctx context.Context, room, identity string, mode types.CapabilityMode, opts ConnectOptions) bool {
	if room == "" || identity == "" {
		c.logger.Warnw("cannot connect without room and identity", nil, "room", room, "identity", identity)
		return false
	}
	if c.closed.IsBroken() {
		return false
	}

	key := types.SessionKey{Room: room, Identity: identity, Mode: mode}
	if c.isConnectedTo(key) {
		c.logger.Debugw("already connected", "session", key)
		return true
	}
	if !c.connecting.CompareAndSwap(false, true) {
		c.logger.Infow("connect already in progress, ignoring", "session", key)
		return false
	}

	sess, ok := c.connect(ctx, key, opts)
	c.connecting.Store(false)
	if !ok {
		return false
	}

	if opts.AutoPublish && mode == types.CapabilityPublisher {
		if err := c.StartPublishing(ctx, opts.Publish); err != nil {
			sess.logger.Warnw("could not auto publish", err)
		}
	}
	return true
}

func (c *Coordinator) connect(ctx context.Context, key types.SessionKey, opts ConnectOptions) (*session, bool) {
	if c.isConnectedTo(key) {
		return c.currentSession(), true
	}

	prometheus.RecordConnectAttempt()
	start := time.Now()

	c.lock.Lock()
	var finish func()
	if previous := c.current; previous != nil {
		if finish = c.teardownLocked(false); finish == nil {
			c.lock.Unlock()
			c.logger.Warnw("cannot replace session while publishing", nil, "session", previous.key, "next", key)
			prometheus.RecordConnectResult("refused", 0)
			return nil, false
		}
	}
	if !c.setStateLocked(types.StateConnecting) {
		c.lock.Unlock()
		if finish != nil {
			finish()
		}
		prometheus.RecordConnectResult("refused", 0)
		return nil, false
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = c.params.Config.ConnectTimeout
	}
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	sess := &session{
		key:    key,
		opts:   opts,
		logger: c.logger.WithValues("room", key.Room, "identity", key.Identity, "mode", key.Mode),
	}
	c.pending = sess
	c.connectCancel = cancel
	c.lock.Unlock()

	if finish != nil {
		finish()
	}

	cred, err := c.params.Gateway.IssueJoinCredential(connectCtx, key.Room, key.Identity, key.Mode)
	prometheus.RecordCredential(err)
	if err == nil && (cred == nil || cred.Token == "") {
		err = ErrNoCredential
	}
	if err != nil {
		// precondition failures leave no trace beyond the log
		sess.logger.Infow("could not obtain join credential", "error", err)
		c.abortConnect(sess)
		prometheus.RecordConnectResult("precondition", 0)
		return nil, false
	}

	url := opts.ServerURL
	if url == "" {
		url = cred.ServerURL
	}
	if url == "" {
		url = c.params.Config.ServerURL
	}

	transport, err := c.params.Transports.Open(key.Room)
	if err != nil {
		c.failConnect(sess, errors.Wrap(ErrTransport, err.Error()))
		prometheus.RecordConnectResult("failure", 0)
		return nil, false
	}

	c.lock.Lock()
	if c.pending != sess {
		c.lock.Unlock()
		transport.Disconnect()
		prometheus.RecordConnectResult("cancelled", 0)
		return nil, false
	}
	sess.transport = transport
	c.lock.Unlock()

	c.params.Bus.reset(key.Room, nil)
	transport.OnEvent(func(event types.TransportEvent) {
		c.handleTransportEvent(sess, event)
	})

	if err = transport.Connect(connectCtx, url, cred.Token); err != nil {
		if !c.isPending(sess) {
			transport.Disconnect()
			c.params.Bus.reset("", nil)
			prometheus.RecordConnectResult("cancelled", 0)
			return nil, false
		}
		if connectCtx.Err() == context.DeadlineExceeded {
			err = errors.Wrapf(ErrTransport, "connect timed out after %s: %v", timeout, err)
		} else {
			err = errors.Wrap(ErrTransport, err.Error())
		}
		c.failConnect(sess, err)
		prometheus.RecordConnectResult("failure", 0)
		return nil, false
	}

	c.lock.Lock()
	if c.pending != sess {
		c.lock.Unlock()
		transport.Disconnect()
		c.params.Bus.reset("", nil)
		prometheus.RecordConnectResult("cancelled", 0)
		return nil, false
	}
	c.pending = nil
	c.connectCancel = nil
	c.current = sess
	c.lastSession = sess
	c.setStateLocked(types.StateConnected)
	onConnected := c.onConnected
	c.lock.Unlock()

	c.params.Bus.HandleTransportEvent(types.TransportEvent{
		Kind:        types.EventConnected,
		Participant: transport.LocalParticipant(),
	})
	c.params.Bus.hydrate(transport.RemoteParticipants())

	if onConnected != nil {
		c.dispatch(func() { onConnected(key) })
	}
	prometheus.RecordConnectResult("success", time.Since(start))
	sess.logger.Infow("connected", "url", url, "duration", time.Since(start))
	return sess, true
}

// Disconnect leaves the current session. It is refused while a publish is in flight and
// returns true when there is nothing to disconnect.
func (c *Coordinator) Disconnect() bool {
	c.lock.Lock()
	if c.pending != nil {
		c.logger.Infow("cancelling connect", "session", c.pending.key)
		c.pending = nil
		if c.connectCancel != nil {
			c.connectCancel()
			c.connectCancel = nil
		}
		c.setStateLocked(types.StateIdle)
		c.lock.Unlock()
		c.params.Bus.reset("", nil)
		return true
	}
	if c.current == nil {
		c.lock.Unlock()
		return true
	}

	finish := c.teardownLocked(false)
	c.lock.Unlock()
	if finish == nil {
		c.logger.Warnw("refusing to disconnect while publishing", nil)
		return false
	}
	finish()
	return true
}

// Reconnect tears down and joins again with the last session key.
func (c *Coordinator) Reconnect(ctx context.Context) bool {
	c.lock.Lock()
	last := c.lastSession
	c.lock.Unlock()
	if last == nil {
		return false
	}

	if !c.Disconnect() {
		return false
	}
	opts := last.opts
	return c.Connect(ctx, last.key.Room, last.key.Identity, last.key.Mode, opts)
}

// teardownLocked detaches the current session and returns the work to finish outside of the
// lock, or nil when refused.
func (c *Coordinator) teardownLocked(force bool) func() {
	sess := c.current
	if sess == nil {
		return func() {}
	}
	if !force && c.publishGuard.InUse() {
		return nil
	}

	c.setStateLocked(types.StateDisconnecting)
	c.current = nil
	tracks := sess.releaseTracks()
	c.setStateLocked(types.StateIdle)
	onDisconnected := c.onDisconnected

	return func() {
		sess.transport.Disconnect()
		for _, t := range tracks {
			t.Stop()
		}
		c.params.Bus.reset("", nil)
		if onDisconnected != nil {
			c.dispatch(func() { onDisconnected(sess.key) })
		}
		sess.logger.Infow("disconnected")
	}
}

func (c *Coordinator) abortConnect(sess *session) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.pending != sess {
		return
	}
	c.pending = nil
	c.connectCancel = nil
	c.setStateLocked(types.StateIdle)
}

func (c *Coordinator) failConnect(sess *session, err error) {
	c.lock.Lock()
	if c.pending != sess {
		c.lock.Unlock()
		if sess.transport != nil {
			sess.transport.Disconnect()
		}
		return
	}
	c.pending = nil
	c.connectCancel = nil
	c.setStateLocked(types.StateFailed)
	c.lastError = err
	c.setStateLocked(types.StateIdle)
	onError := c.onError
	c.lock.Unlock()

	sess.logger.Warnw("could not connect", err)
	if sess.transport != nil {
		sess.transport.Disconnect()
	}
	c.params.Bus.reset("", nil)
	if onError != nil {
		c.dispatch(func() { onError(sess.key, err) })
	}
}

func (c *Coordinator) handleTransportEvent(sess *session, event types.TransportEvent) {
	c.lock.Lock()
	isCurrent := c.current == sess
	accepted := isCurrent || c.pending == sess
	c.lock.Unlock()

	if !accepted {
		sess.logger.Debugw("dropping event from replaced session", "event", event.Kind)
		return
	}

	c.params.Bus.HandleTransportEvent(event)
	if event.Kind == types.EventDisconnected && isCurrent {
		go c.handleRemoteDisconnect(sess, event.Err)
	}
}

// handleRemoteDisconnect tears down a session the transport lost. The publish guard
// does not apply, the session is already gone.
func (c *Coordinator) handleRemoteDisconnect(sess *session, cause error) {
	c.lock.Lock()
	if c.current != sess {
		c.lock.Unlock()
		return
	}
	finish := c.teardownLocked(true)
	var onError func(key types.SessionKey, err error)
	var err error
	if cause != nil {
		err = errors.Wrap(ErrTransport, cause.Error())
		c.lastError = err
		onError = c.onError
	}
	c.lock.Unlock()

	sess.logger.Infow("session closed by transport", "error", cause)
	finish()
	if onError != nil {
		c.dispatch(func() { onError(sess.key, err) })
	}
}

func (c *Coordinator) setStateLocked(state types.ConnectionState) bool {
	if c.state == state {
		return true
	}
	allowed := false
	for _, s := range validTransitions[c.state] {
		if s == state {
			allowed = true
			break
		}
	}
	if !allowed {
		c.logger.Warnw("invalid state transition", nil, "from", c.state, "to", state)
		return false
	}

	c.state = state
	if onStateChanged := c.onStateChanged; onStateChanged != nil {
		c.dispatchLocked(func() { onStateChanged(state) })
	}
	return true
}

// dispatch queues a callback on the callback worker, in submission order.
func (c *Coordinator) dispatch(f func()) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.dispatchLocked(f)
}

func (c *Coordinator) dispatchLocked(f func()) {
	if c.closed.IsBroken() {
		return
	}
	c.callbacks.Submit(f)
}

func (c *Coordinator) isConnectedTo(key types.SessionKey) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.state == types.StateConnected && c.current != nil && c.current.key == key
}

func (c *Coordinator) isPending(sess *session) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.pending == sess
}

func (c *Coordinator) currentSession() *session {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.current
}
