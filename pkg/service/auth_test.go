package service_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/livekit/livekit-stage/pkg/auth"
	"github.com/livekit/livekit-stage/pkg/service"
)

func TestAuthMiddleware(t *testing.T) {
	api := "APIabcdefg"
	secret := "somesecretencodedinbase62"
	provider := auth.NewFileBasedKeyProviderFromMap(map[string]string{api: secret})

	m := service.NewAPIKeyAuthMiddleware(provider)
	var grants *auth.ClaimGrants
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		grants = service.GetGrants(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	orig := &auth.VideoGrant{Room: "abcdefg", RoomJoin: true}
	// ensure that the original claim could be retrieved
	token, err := auth.NewAccessToken(api, secret).
		SetIdentity("alice").
		AddGrant(orig).
		ToJWT()
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/seats/abcdefg", nil)
	w := httptest.NewRecorder()
	service.SetAuthorizationToken(r, token)
	m.ServeHTTP(w, r, handler)

	require.NotNil(t, grants)
	require.EqualValues(t, orig, grants.Video)
	require.Equal(t, "alice", grants.Identity())

	t.Run("token in query", func(t *testing.T) {
		grants = nil
		w = httptest.NewRecorder()
		r = httptest.NewRequest(http.MethodGet, "/seats/abcdefg?access_token="+token, nil)
		m.ServeHTTP(w, r, handler)
		require.NotNil(t, grants)
	})

	t.Run("no authorization means no claims", func(t *testing.T) {
		grants = nil
		w = httptest.NewRecorder()
		r = httptest.NewRequest(http.MethodGet, "/", nil)
		m.ServeHTTP(w, r, handler)
		require.Nil(t, grants)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		grants = nil
		w = httptest.NewRecorder()
		r = httptest.NewRequest(http.MethodGet, "/", nil)
		service.SetAuthorizationToken(r, "invalid token")
		m.ServeHTTP(w, r, handler)
		require.Nil(t, grants)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown key", func(t *testing.T) {
		other, err := auth.NewAccessToken("APIother", secret).AddGrant(orig).ToJWT()
		require.NoError(t, err)

		grants = nil
		w = httptest.NewRecorder()
		r = httptest.NewRequest(http.MethodGet, "/", nil)
		service.SetAuthorizationToken(r, other)
		m.ServeHTTP(w, r, handler)
		require.Nil(t, grants)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		w = httptest.NewRecorder()
		r = httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Basic abc")
		m.ServeHTTP(w, r, handler)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
