package client

import (
	"context"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"github.com/livekit/protocol/livekit"
	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-stage/pkg/config"
	"github.com/livekit/livekit-stage/pkg/rtc/types"
	"github.com/livekit/livekit-stage/pkg/rtc/types/typesfakes"
)

const testTimeout = 2 * time.Second

// fakeSignalServer scripts the server side of a signal websocket.
type fakeSignalServer struct {
	ws        *typesfakes.FakeWebsocketClient
	responses chan []byte
	requests  chan *livekit.SignalRequest
	closed    chan struct{}
	closeOnce sync.Once

	lock   sync.Mutex
	url    string
	header http.Header
}

func newFakeSignalServer() *fakeSignalServer {
	s := &fakeSignalServer{
		ws:        &typesfakes.FakeWebsocketClient{},
		responses: make(chan []byte, 16),
		requests:  make(chan *livekit.SignalRequest, 256),
		closed:    make(chan struct{}),
	}
	s.ws.ReadMessageStub = func() (int, []byte, error) {
		select {
		case payload := <-s.responses:
			return websocket.BinaryMessage, payload, nil
		case <-s.closed:
			return 0, nil, io.EOF
		}
	}
	s.ws.WriteMessageStub = func(messageType int, data []byte) error {
		if messageType != websocket.BinaryMessage {
			return nil
		}
		req := &livekit.SignalRequest{}
		if err := proto.Unmarshal(data, req); err != nil {
			return err
		}
		select {
		case s.requests <- req:
		default:
		}
		return nil
	}
	s.ws.CloseStub = func() error {
		s.closeOnce.Do(func() { close(s.closed) })
		return nil
	}
	return s
}

func (s *fakeSignalServer) dialer() Dialer {
	return func(_ context.Context, url string, header http.Header) (types.WebsocketClient, error) {
		s.lock.Lock()
		s.url, s.header = url, header
		s.lock.Unlock()
		return s.ws, nil
	}
}

func (s *fakeSignalServer) send(t *testing.T, res *livekit.SignalResponse) {
	payload, err := proto.Marshal(res)
	require.NoError(t, err)
	s.responses <- payload
}

func (s *fakeSignalServer) join(t *testing.T, others ...*livekit.ParticipantInfo) {
	s.send(t, &livekit.SignalResponse{
		Message: &livekit.SignalResponse_Join{
			Join: &livekit.JoinResponse{
				Participant:       &livekit.ParticipantInfo{Sid: "PA_alice", Identity: "alice"},
				OtherParticipants: others,
			},
		},
	})
}

// nextRequest skips requests until one matches.
func (s *fakeSignalServer) nextRequest(t *testing.T, match func(req *livekit.SignalRequest) bool) *livekit.SignalRequest {
	deadline := time.After(testTimeout)
	for {
		select {
		case req := <-s.requests:
			if match(req) {
				return req
			}
		case <-deadline:
			t.Fatal("expected signal request not sent")
			return nil
		}
	}
}

type eventRecorder struct {
	lock   sync.Mutex
	events []types.TransportEvent
}

func (r *eventRecorder) record(event types.TransportEvent) {
	r.lock.Lock()
	r.events = append(r.events, event)
	r.lock.Unlock()
}

func (r *eventRecorder) kinds() []types.TransportEventKind {
	r.lock.Lock()
	defer r.lock.Unlock()

	var kinds []types.TransportEventKind
	for _, e := range r.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

func newTestTransport(t *testing.T, server *fakeSignalServer) (*RTCTransport, *eventRecorder) {
	tr, err := NewRTCTransport(TransportParams{
		Room:   "stage",
		Config: config.SessionConfig{},
		Dialer: server.dialer(),
		Logger: logger.GetLogger(),
	})
	require.NoError(t, err)
	recorder := &eventRecorder{}
	tr.OnEvent(recorder.record)
	t.Cleanup(tr.Disconnect)
	return tr, recorder
}

func connectTransport(t *testing.T, tr *RTCTransport, server *fakeSignalServer, others ...*livekit.ParticipantInfo) {
	server.join(t, others...)
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()
	require.NoError(t, tr.Connect(ctx, "ws://localhost:7880", "token"))
}

func TestTransportConnect(t *testing.T) {
	server := newFakeSignalServer()
	tr, _ := newTestTransport(t, server)

	connectTransport(t, tr, server,
		&livekit.ParticipantInfo{Sid: "PA_bob", Identity: "bob", Tracks: []*livekit.TrackInfo{
			{Sid: "TR_bv", Type: livekit.TrackType_VIDEO},
			{Sid: "TR_bd", Type: livekit.TrackType_DATA},
		}},
		&livekit.ParticipantInfo{Sid: "PA_carol", Identity: "carol"},
	)

	server.lock.Lock()
	require.Equal(t, "Bearer token", server.header.Get("Authorization"))
	require.Contains(t, server.url, "ws://localhost:7880/rtc?")
	server.lock.Unlock()

	require.Equal(t, "alice", tr.LocalParticipant().Identity)
	remotes := tr.RemoteParticipants()
	require.Len(t, remotes, 2)
	require.Equal(t, "bob", remotes[0].Identity)
	require.Len(t, remotes[0].Tracks, 1)
	require.Equal(t, "carol", remotes[1].Identity)

	require.ErrorIs(t, tr.Connect(context.Background(), "ws://localhost:7880", "token"), ErrAlreadyConnected)

	tr.Disconnect()
	server.nextRequest(t, func(req *livekit.SignalRequest) bool {
		return req.GetLeave() != nil
	})
	require.Equal(t, 1, server.ws.CloseCallCount())

	// disconnect is idempotent
	tr.Disconnect()
	require.Equal(t, 1, server.ws.CloseCallCount())
}

func TestTransportConnectTimeout(t *testing.T) {
	server := newFakeSignalServer()
	tr, _ := newTestTransport(t, server)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, tr.Connect(ctx, "ws://localhost:7880", "token"), context.DeadlineExceeded)
	require.Equal(t, 1, server.ws.CloseCallCount())
	require.ErrorIs(t, tr.Connect(context.Background(), "ws://localhost:7880", "token"), ErrClosed)
}

func TestTransportLeaveBeforeJoin(t *testing.T) {
	server := newFakeSignalServer()
	tr, recorder := newTestTransport(t, server)

	server.send(t, &livekit.SignalResponse{
		Message: &livekit.SignalResponse_Leave{Leave: &livekit.LeaveRequest{}},
	})
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()
	require.Error(t, tr.Connect(ctx, "ws://localhost:7880", "token"))
	require.Equal(t, []types.TransportEventKind{types.EventDisconnected}, recorder.kinds())
}

func TestTransportParticipantEvents(t *testing.T) {
	server := newFakeSignalServer()
	tr, recorder := newTestTransport(t, server)
	connectTransport(t, tr, server)

	update := func(participants ...*livekit.ParticipantInfo) {
		server.send(t, &livekit.SignalResponse{
			Message: &livekit.SignalResponse_Update{
				Update: &livekit.ParticipantUpdate{Participants: participants},
			},
		})
	}

	update(&livekit.ParticipantInfo{Sid: "PA_bob", Identity: "bob"})
	update(&livekit.ParticipantInfo{Sid: "PA_bob", Identity: "bob", Tracks: []*livekit.TrackInfo{
		{Sid: "TR_bv", Type: livekit.TrackType_VIDEO},
	}})
	update(&livekit.ParticipantInfo{Sid: "PA_bob", Identity: "bob", Tracks: []*livekit.TrackInfo{
		{Sid: "TR_bv", Type: livekit.TrackType_VIDEO, Muted: true},
	}})
	update(&livekit.ParticipantInfo{Sid: "PA_bob", Identity: "bob"})
	// local participant updates are not remote events
	update(&livekit.ParticipantInfo{Sid: "PA_alice", Identity: "alice", Name: "Alice"})
	update(&livekit.ParticipantInfo{Sid: "PA_bob", Identity: "bob", State: livekit.ParticipantInfo_DISCONNECTED})

	expected := []types.TransportEventKind{
		types.EventParticipantJoined,
		types.EventParticipantJoined, types.EventTrackSubscribed,
		types.EventParticipantJoined, types.EventTrackMuted,
		types.EventParticipantJoined, types.EventTrackUnsubscribed,
		types.EventParticipantLeft,
	}
	require.Eventually(t, func() bool {
		return len(recorder.kinds()) == len(expected)
	}, testTimeout, 10*time.Millisecond)
	require.Equal(t, expected, recorder.kinds())
	require.Empty(t, tr.RemoteParticipants())
	require.Equal(t, "Alice", tr.LocalParticipant().Name)

	server.send(t, &livekit.SignalResponse{
		Message: &livekit.SignalResponse_Leave{Leave: &livekit.LeaveRequest{}},
	})
	require.Eventually(t, func() bool {
		kinds := recorder.kinds()
		return kinds[len(kinds)-1] == types.EventDisconnected
	}, testTimeout, 10*time.Millisecond)
}

func TestTransportPublish(t *testing.T) {
	server := newFakeSignalServer()
	tr, _ := newTestTransport(t, server)
	connectTransport(t, tr, server)

	track, err := NewFileTrack(types.TrackKindAudio, "audio/opus", "", logger.GetLogger())
	require.NoError(t, err)
	defer track.Stop()

	type result struct {
		info *types.TrackInfo
		err  error
	}
	done := make(chan result, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()
		info, err := tr.PublishTrack(ctx, track)
		done <- result{info, err}
	}()

	req := server.nextRequest(t, func(req *livekit.SignalRequest) bool {
		return req.GetAddTrack() != nil
	})
	require.Equal(t, track.ID(), req.GetAddTrack().Cid)
	require.Equal(t, livekit.TrackType_AUDIO, req.GetAddTrack().Type)

	server.send(t, &livekit.SignalResponse{
		Message: &livekit.SignalResponse_TrackPublished{
			TrackPublished: &livekit.TrackPublishedResponse{
				Cid:   track.ID(),
				Track: &livekit.TrackInfo{Sid: "TR_server", Type: livekit.TrackType_AUDIO, Name: "audio"},
			},
		},
	})
	res := <-done
	require.NoError(t, res.err)
	require.Equal(t, "TR_server", res.info.SID)
	require.Equal(t, types.TrackKindAudio, res.info.Kind)

	server.nextRequest(t, func(req *livekit.SignalRequest) bool {
		return req.GetOffer() != nil
	})

	require.NoError(t, tr.SetTrackMuted(track, true))
	req = server.nextRequest(t, func(req *livekit.SignalRequest) bool {
		return req.GetMute() != nil
	})
	require.Equal(t, "TR_server", req.GetMute().Sid)
	require.True(t, req.GetMute().Muted)

	require.NoError(t, tr.UnpublishTrack(track))
	require.ErrorIs(t, tr.UnpublishTrack(track), ErrTrackNotPublished)
	require.ErrorIs(t, tr.SetTrackMuted(track, false), ErrTrackNotPublished)
}

func TestTransportPublishNotAcked(t *testing.T) {
	server := newFakeSignalServer()
	tr, _ := newTestTransport(t, server)
	connectTransport(t, tr, server)

	track, err := NewFileTrack(types.TrackKindVideo, "video/vp8", "", logger.GetLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = tr.PublishTrack(ctx, track)
	require.ErrorIs(t, err, ErrPublishNotAcked)

	_, err = tr.PublishTrack(context.Background(), &typesfakes.FakeLocalTrack{})
	require.ErrorIs(t, err, ErrUnsupportedTrack)
}

func TestSignalURL(t *testing.T) {
	u, err := SignalURL("https://example.com/", false)
	require.NoError(t, err)
	require.Equal(t, "wss://example.com/rtc?auto_subscribe=false&protocol=7", u)

	u, err = SignalURL("ws://localhost:7880", true)
	require.NoError(t, err)
	require.Equal(t, "ws://localhost:7880/rtc?auto_subscribe=true&protocol=7", u)

	_, err = SignalURL("ftp://example.com", true)
	require.Error(t, err)
}

func TestFileDevices(t *testing.T) {
	devices := NewFileDevices(config.MediaConfig{}, nil)

	video, err := devices.CaptureVideo(context.Background(), types.VideoOptions{})
	require.NoError(t, err)
	require.Equal(t, types.TrackKindVideo, video.Kind())
	require.True(t, video.IsLive())
	video.Stop()
	require.False(t, video.IsLive())

	_, err = devices.CaptureAudio(context.Background(), types.AudioOptions{DeviceID: "sound.wav"})
	require.Error(t, err)
	_, err = devices.CaptureAudio(context.Background(), types.AudioOptions{DeviceID: "clip.ivf"})
	require.Error(t, err)
}
