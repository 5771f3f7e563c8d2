package service

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/livekit/livekit-stage/pkg/seats"
)

func TestErrorStatus(t *testing.T) {
	status, code := errorStatus(errors.Wrap(seats.ErrAlreadyOccupied, "claim"))
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, "already_occupied", code)

	status, code = errorStatus(errors.New("boom"))
	require.Equal(t, http.StatusInternalServerError, status)
	require.Equal(t, "internal", code)

	for _, e := range errorCodes {
		_, code := errorStatus(e.err)
		require.Equal(t, e.code, code)
	}
	require.ErrorIs(t, errorFromCode("banned", ""), seats.ErrBanned)
	require.EqualError(t, errorFromCode("internal", "boom"), "boom")
}

func TestDecodeJSON(t *testing.T) {
	var req ClaimRequest
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"seat":2,"identity":"alice"}`))
	require.NoError(t, decodeJSON(r, &req))
	require.Equal(t, 2, req.Seat)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"seat":2,"unknown":true}`))
	require.ErrorIs(t, decodeJSON(r, &req), ErrInvalidRequest)

	r = httptest.NewRequest(http.MethodPost, "/", nil)
	require.NoError(t, decodeJSON(r, &req))
}
