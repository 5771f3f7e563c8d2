package service

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-stage/pkg/auth"
	"github.com/livekit/livekit-stage/pkg/rtc/types"
	"github.com/livekit/livekit-stage/pkg/telemetry/prometheus"
)

// TokenService hands out join credentials to callers holding a valid API token.
type TokenService struct {
	gateway types.CredentialGateway
}

func NewTokenService(gateway types.CredentialGateway) *TokenService {
	return &TokenService{
		gateway: gateway,
	}
}

func (s *TokenService) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /token", s.createToken)
}

func (s *TokenService) createToken(w http.ResponseWriter, r *http.Request) {
	var req auth.TokenRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Room == "" {
		handleError(w, r, ErrNoRoomName)
		return
	}
	mode, err := types.ParseCapabilityMode(req.Mode)
	if err != nil {
		handleError(w, r, errors.Wrap(ErrInvalidRequest, err.Error()))
		return
	}

	identity, err := EnsureJoinPermission(r.Context(), req.Room)
	switch {
	case err == nil && (req.Identity == "" || req.Identity == identity):
		req.Identity = identity
	case req.Identity != "" && EnsureAdminPermission(r.Context(), req.Room) == nil:
		// admins issue credentials on behalf of others
	case err == nil:
		handleError(w, r, ErrIdentityMismatch)
		return
	default:
		handleError(w, r, err)
		return
	}

	cred, err := s.gateway.IssueJoinCredential(r.Context(), req.Room, req.Identity, mode)
	prometheus.RecordCredential(err)
	if err != nil {
		handleError(w, r, err, "room", req.Room, "identity", req.Identity)
		return
	}

	logger.Debugw("issued join credential", "room", req.Room, "identity", req.Identity, "mode", mode)
	writeJSON(w, http.StatusOK, &auth.TokenResponse{
		Token:     cred.Token,
		ServerURL: cred.ServerURL,
		ExpiresAt: cred.ExpiresAt.Unix(),
	})
}
