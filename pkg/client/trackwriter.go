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
	"io"
	"os"
	"strings"
	"time"

	"github.com/pion/webrtc/v3"
	"github.com/pion/webrtc/v3/pkg/media"
	"github.com/pion/webrtc/v3/pkg/media/ivfreader"
	"github.com/pion/webrtc/v3/pkg/media/oggreader"

	"github.com/livekit/protocol/logger"
)

// TrackWriter paces samples from a file onto a local track, or synthetic samples when
// there is no file. Files are looped until stopped.
type TrackWriter struct {
	ctx      context.Context
	cancel   context.CancelFunc
	track    *webrtc.TrackLocalStaticSample
	filePath string
	mime     string
	logger   logger.Logger
}

func NewTrackWriter(ctx context.Context, track *webrtc.TrackLocalStaticSample, filePath string, l logger.Logger) *TrackWriter {
	ctx, cancel := context.WithCancel(ctx)
	return &TrackWriter{
		ctx:      ctx,
		cancel:   cancel,
		track:    track,
		filePath: filePath,
		mime:     strings.ToLower(track.Codec().MimeType),
		logger:   l.WithValues("trackID", track.ID()),
	}
}

func (w *TrackWriter) Start() error {
	if w.filePath == "" {
		go w.writeNull()
		return nil
	}

	// fail early on unreadable files
	file, err := os.Open(w.filePath)
	if err != nil {
		return err
	}
	_ = file.Close()

	w.logger.Debugw("starting track writer", "mime", w.mime, "file", w.filePath)
	go w.loop()
	return nil
}

func (w *TrackWriter) Stop() {
	w.cancel()
}

func (w *TrackWriter) loop() {
	for w.ctx.Err() == nil {
		file, err := os.Open(w.filePath)
		if err != nil {
			w.logger.Errorw("could not open media file", err)
			return
		}
		switch w.mime {
		case strings.ToLower(webrtc.MimeTypeOpus):
			err = w.writeOgg(file)
		case strings.ToLower(webrtc.MimeTypeVP8), strings.ToLower(webrtc.MimeTypeVP9):
			err = w.writeIVF(file)
		default:
			w.logger.Warnw("unsupported file mime, writing synthetic samples", nil, "mime", w.mime)
			_ = file.Close()
			w.writeNull()
			return
		}
		_ = file.Close()
		if err != nil {
			w.logger.Errorw("track writer stopped", err)
			return
		}
	}
}

func (w *TrackWriter) writeNull() {
	sample := media.Sample{Data: []byte{0x0, 0xff, 0xff, 0xff, 0xff}, Duration: 30 * time.Millisecond}
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := w.track.WriteSample(sample); err != nil {
				w.logger.Debugw("could not write sample", "error", err)
			}
		case <-w.ctx.Done():
			return
		}
	}
}

func (w *TrackWriter) writeOgg(r io.Reader) error {
	ogg, _, err := oggreader.NewWith(r)
	if err != nil {
		return err
	}

	// the granule difference is the number of samples in the page
	var lastGranule uint64
	for {
		if w.ctx.Err() != nil {
			return nil
		}
		pageData, pageHeader, err := ogg.ParseNextPage()
		if err == io.EOF {
			w.logger.Debugw("all audio samples parsed and sent")
			return nil
		}
		if err != nil {
			return err
		}

		sampleCount := float64(pageHeader.GranulePosition - lastGranule)
		lastGranule = pageHeader.GranulePosition
		sampleDuration := time.Duration((sampleCount/48000)*1000) * time.Millisecond

		if err = w.track.WriteSample(media.Sample{Data: pageData, Duration: sampleDuration}); err != nil {
			return err
		}
		w.sleep(sampleDuration)
	}
}

func (w *TrackWriter) writeIVF(r io.Reader) error {
	ivf, header, err := ivfreader.NewWith(r)
	if err != nil {
		return err
	}

	// pace frames at playback speed
	frameDuration := time.Millisecond * time.Duration((float32(header.TimebaseNumerator)/float32(header.TimebaseDenominator))*1000)
	for {
		if w.ctx.Err() != nil {
			return nil
		}
		frame, _, err := ivf.ParseNextFrame()
		if err == io.EOF {
			w.logger.Debugw("all video frames parsed and sent")
			return nil
		}
		if err != nil {
			return err
		}

		w.sleep(frameDuration)
		if err = w.track.WriteSample(media.Sample{Data: frame, Duration: frameDuration}); err != nil {
			return err
		}
	}
}

func (w *TrackWriter) sleep(d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-w.ctx.Done():
	}
}
