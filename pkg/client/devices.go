package client

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/frostbyte73/core"
	"github.com/pion/webrtc/v3"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-stage/pkg/config"
	"github.com/livekit/livekit-stage/pkg/rtc/types"
	"github.com/livekit/livekit-stage/pkg/utils"
)

var extMimeMapping = map[string]string{
	".ivf": webrtc.MimeTypeVP8,
	".ogg": webrtc.MimeTypeOpus,
}

// FileDevices captures from media files instead of hardware. Empty paths produce
// synthetic samples.
type FileDevices struct {
	conf   config.MediaConfig
	logger logger.Logger
}

func NewFileDevices(conf config.MediaConfig, l logger.Logger) *FileDevices {
	if l == nil {
		l = logger.GetLogger()
	}
	return &FileDevices{conf: conf, logger: l}
}

func (d *FileDevices) CaptureVideo(_ context.Context, opts types.VideoOptions) (types.LocalTrack, error) {
	path := d.conf.VideoFile
	if opts.DeviceID != "" {
		path = opts.DeviceID
	}
	return d.capture(types.TrackKindVideo, path, webrtc.MimeTypeVP8)
}

func (d *FileDevices) CaptureAudio(_ context.Context, opts types.AudioOptions) (types.LocalTrack, error) {
	path := d.conf.AudioFile
	if opts.DeviceID != "" {
		path = opts.DeviceID
	}
	return d.capture(types.TrackKindAudio, path, webrtc.MimeTypeOpus)
}

func (d *FileDevices) capture(kind types.TrackKind, path, defaultMime string) (types.LocalTrack, error) {
	mime := defaultMime
	if path != "" {
		var ok bool
		if mime, ok = extMimeMapping[strings.ToLower(filepath.Ext(path))]; !ok {
			return nil, fmt.Errorf("%s has an unsupported extension", filepath.Base(path))
		}
	}
	if expected := mimeKind(mime); expected != kind {
		return nil, fmt.Errorf("%s is not a %s file", filepath.Base(path), kind)
	}
	return NewFileTrack(kind, mime, path, d.logger)
}

func mimeKind(mime string) types.TrackKind {
	if strings.HasPrefix(strings.ToLower(mime), "audio/") {
		return types.TrackKindAudio
	}
	return types.TrackKindVideo
}

// FileTrack is a LocalTrack backed by a static sample track. Samples flow once the track
// is published.
type FileTrack struct {
	id     string
	kind   types.TrackKind
	path   string
	track  *webrtc.TrackLocalStaticSample
	logger logger.Logger

	lock    sync.Mutex
	writer  *TrackWriter
	stopped core.Fuse
}

func NewFileTrack(kind types.TrackKind, mime, path string, l logger.Logger) (*FileTrack, error) {
	id := utils.NewGuid(utils.TrackPrefix)
	track, err := webrtc.NewTrackLocalStaticSample(webrtc.RTPCodecCapability{MimeType: mime}, id, kind.String())
	if err != nil {
		return nil, err
	}
	return &FileTrack{
		id:     id,
		kind:   kind,
		path:   path,
		track:  track,
		logger: l,
	}, nil
}

func (t *FileTrack) ID() string {
	return t.id
}

func (t *FileTrack) Kind() types.TrackKind {
	return t.kind
}

func (t *FileTrack) IsLive() bool {
	return !t.stopped.IsBroken()
}

func (t *FileTrack) Stop() {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.stopped.Break()
	if t.writer != nil {
		t.writer.Stop()
	}
}

func (t *FileTrack) TrackLocal() webrtc.TrackLocal {
	return t.track
}

// start begins writing samples, called after the track was added to a peer connection.
func (t *FileTrack) start(ctx context.Context) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.writer != nil || t.stopped.IsBroken() {
		return nil
	}
	t.writer = NewTrackWriter(ctx, t.track, t.path, t.logger)
	return t.writer.Start()
}
