package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-stage/pkg/auth"
	"github.com/livekit/livekit-stage/pkg/rtc/types"
	"github.com/livekit/livekit-stage/pkg/seats"
)

const (
	defaultRequestTimeout = 10 * time.Second
	defaultPollInterval   = 2 * time.Second
)

type APIClientParams struct {
	URL          string
	Auth         auth.AuthSource
	Timeout      time.Duration
	PollInterval time.Duration
}

// APIClient talks to a stage server. It satisfies seats.Store, so a roster can run
// against a remote server the same way it runs against redis.
type APIClient struct {
	url          string
	auth         auth.AuthSource
	client       *http.Client
	pollInterval time.Duration
	logger       logger.Logger
}

var _ seats.Store = (*APIClient)(nil)

func NewAPIClient(params APIClientParams) *APIClient {
	if params.Timeout <= 0 {
		params.Timeout = defaultRequestTimeout
	}
	if params.PollInterval <= 0 {
		params.PollInterval = defaultPollInterval
	}
	return &APIClient{
		url:          strings.TrimRight(params.URL, "/"),
		auth:         params.Auth,
		client:       &http.Client{Timeout: params.Timeout},
		pollInterval: params.PollInterval,
		logger:       logger.GetLogger().WithValues("server", params.URL),
	}
}

func (c *APIClient) Claim(ctx context.Context, room string, index int, identity string, meta seats.SeatMetadata) (*seats.SeatSlot, error) {
	res := &SeatResponse{}
	err := c.do(ctx, http.MethodPost, seatsPath(room, "claim"), &ClaimRequest{
		Seat:     index,
		Identity: identity,
		Metadata: meta,
	}, res)
	if err != nil {
		return nil, err
	}
	if res.Seat == nil {
		return nil, errors.New("server returned no seat")
	}
	res.Seat.Confirmed = true
	return res.Seat, nil
}

func (c *APIClient) Release(ctx context.Context, room string, index int, identity string, opts seats.ReleaseOptions) (*seats.SeatBan, error) {
	res := &ReleaseResponse{}
	err := c.do(ctx, http.MethodPost, seatsPath(room, "release"), &ReleaseRequest{
		Seat:         index,
		Identity:     identity,
		Force:        opts.Force,
		BanSeconds:   int64(opts.BanDuration / time.Second),
		BanPermanent: opts.BanPermanent,
		Reason:       opts.Reason,
	}, res)
	if err != nil {
		return nil, err
	}
	return res.Ban, nil
}

// LoadSeats returns occupied seats only, like every other store.
func (c *APIClient) LoadSeats(ctx context.Context, room string) ([]seats.SeatSlot, error) {
	res := &SeatsResponse{}
	if err := c.do(ctx, http.MethodGet, seatsPath(room), nil, res); err != nil {
		return nil, err
	}
	occupied := make([]seats.SeatSlot, 0, len(res.Seats))
	for _, slot := range res.Seats {
		if slot.IsEmpty() {
			continue
		}
		slot.Confirmed = true
		occupied = append(occupied, slot)
	}
	return occupied, nil
}

// ListSeats returns the full layout, empty seats included.
func (c *APIClient) ListSeats(ctx context.Context, room string) ([]seats.SeatSlot, error) {
	res := &SeatsResponse{}
	if err := c.do(ctx, http.MethodGet, seatsPath(room), nil, res); err != nil {
		return nil, err
	}
	return res.Seats, nil
}

func (c *APIClient) LoadBans(ctx context.Context, room string) ([]*seats.SeatBan, error) {
	res := &BansResponse{}
	if err := c.do(ctx, http.MethodGet, seatsPath(room, "bans"), nil, res); err != nil {
		return nil, err
	}
	return res.Bans, nil
}

func (c *APIClient) ClearBan(ctx context.Context, banID string) error {
	return c.do(ctx, http.MethodDelete, "/bans/"+url.PathEscape(banID), nil, nil)
}

// Subscribe polls the seat list and calls onChange whenever it differs from the last poll.
func (c *APIClient) Subscribe(ctx context.Context, room string, onChange func()) error {
	last, err := c.seatsFingerprint(ctx, room)
	if err != nil {
		return errors.Wrap(err, "could not subscribe to seat changes")
	}

	go func() {
		ticker := time.NewTicker(c.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			current, err := c.seatsFingerprint(ctx, room)
			if err != nil {
				if ctx.Err() == nil {
					c.logger.Debugw("could not poll seats", "room", room, "error", err)
				}
				continue
			}
			if current != last {
				last = current
				onChange()
			}
		}
	}()
	return nil
}

// CreateToken requests a join credential from the server's token endpoint.
func (c *APIClient) CreateToken(ctx context.Context, room, identity string, mode types.CapabilityMode) (*auth.TokenResponse, error) {
	res := &auth.TokenResponse{}
	err := c.do(ctx, http.MethodPost, "/token", &auth.TokenRequest{
		Room:     room,
		Identity: identity,
		Mode:     mode.String(),
	}, res)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (c *APIClient) seatsFingerprint(ctx context.Context, room string) (string, error) {
	occupied, err := c.LoadSeats(ctx, room)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, slot := range occupied {
		fmt.Fprintf(&sb, "%d=%s@%d;", slot.Index, slot.Identity, slot.AssignedAt.UnixMilli())
	}
	return sb.String(), nil
}

func (c *APIClient) do(ctx context.Context, method, path string, body, res interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.auth != nil {
		token, err := c.auth.AuthToken(ctx)
		if err != nil {
			return errors.Wrap(auth.ErrNoAuthContext, err.Error())
		}
		if token != "" {
			SetAuthorizationToken(req, token)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "could not reach stage server")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errRes := &errorResponse{}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if jsonErr := json.Unmarshal(data, errRes); jsonErr != nil || errRes.Error == "" {
			return fmt.Errorf("stage server returned %d: %s", resp.StatusCode, bytes.TrimSpace(data))
		}
		return errorFromCode(errRes.Code, errRes.Error)
	}
	if res == nil {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(res); err != nil {
		return errors.Wrap(err, "could not decode response")
	}
	return nil
}

func seatsPath(room string, parts ...string) string {
	p := "/seats/" + url.PathEscape(room)
	for _, part := range parts {
		p += "/" + part
	}
	return p
}
