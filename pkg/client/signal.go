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
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"

	"github.com/livekit/protocol/livekit"

	"github.com/livekit/livekit-stage/pkg/rtc/types"
)

const (
	protocolVersion = 7
	pingInterval    = 10 * time.Second
	writeWait       = 5 * time.Second
)

// Dialer opens the signal websocket. Replaced in tests.
type Dialer func(ctx context.Context, url string, header http.Header) (types.WebsocketClient, error)

func DefaultDialer(ctx context.Context, url string, header http.Header) (types.WebsocketClient, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

func SignalURL(host string, autoSubscribe bool) (string, error) {
	host = strings.TrimSuffix(host, "/")
	if strings.HasPrefix(host, "http") {
		host = "ws" + strings.TrimPrefix(host, "http")
	}
	u, err := url.Parse(fmt.Sprintf("%s/rtc?protocol=%d", host, protocolVersion))
	if err != nil {
		return "", err
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return "", fmt.Errorf("unsupported signal url scheme: %s", u.Scheme)
	}
	q := u.Query()
	q.Set("auto_subscribe", fmt.Sprintf("%t", autoSubscribe))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func SetAuthorizationToken(header http.Header, token string) {
	header.Set("Authorization", "Bearer "+token)
}

// signalConn serializes writes to the signal websocket and decodes responses.
type signalConn struct {
	conn    types.WebsocketClient
	wsLock  sync.Mutex
	closeMu sync.Once
}

func newSignalConn(conn types.WebsocketClient) *signalConn {
	return &signalConn{conn: conn}
}

func (s *signalConn) ReadResponse() (*livekit.SignalResponse, error) {
	for {
		messageType, payload, err := s.conn.ReadMessage()
		if err != nil {
			return nil, err
		}

		switch messageType {
		case websocket.PingMessage:
			s.wsLock.Lock()
			_ = s.conn.WriteMessage(websocket.PongMessage, nil)
			s.wsLock.Unlock()
			continue
		case websocket.BinaryMessage:
			msg := &livekit.SignalResponse{}
			if err := proto.Unmarshal(payload, msg); err != nil {
				return nil, errors.Wrap(err, "could not decode signal response")
			}
			return msg, nil
		default:
			return nil, fmt.Errorf("unexpected message received: %v", messageType)
		}
	}
}

func (s *signalConn) SendRequest(msg *livekit.SignalRequest) error {
	payload, err := proto.Marshal(msg)
	if err != nil {
		return err
	}

	s.wsLock.Lock()
	defer s.wsLock.Unlock()
	return s.conn.WriteMessage(websocket.BinaryMessage, payload)
}

func (s *signalConn) Ping() error {
	s.wsLock.Lock()
	defer s.wsLock.Unlock()
	return s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func (s *signalConn) Close() {
	s.closeMu.Do(func() {
		s.wsLock.Lock()
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
		s.wsLock.Unlock()
		_ = s.conn.Close()
	})
}
