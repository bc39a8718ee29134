package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/safari-trip-api/internal/config"
	"github.com/gdg-garage/safari-trip-api/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestHandler(provider *httptest.Server) *AuthHandler {
	cfg := &config.Config{
		JWTSecret:       testSecret,
		OIDCClientID:    "safari-app",
		OIDCRedirectURL: "http://localhost:3000/auth/callback",
		FrontendURL:     "http://localhost:3000/",
	}
	if provider != nil {
		cfg.OIDCAuthURL = provider.URL + "/auth"
		cfg.OIDCTokenURL = provider.URL + "/token"
		cfg.OIDCUserInfoURL = provider.URL + "/userinfo"
	}
	return NewAuthHandler(cfg, logging.Discard())
}

// fakeProvider issues access-123 for code good-code and reports username
// for that access token.
func fakeProvider(t *testing.T, username string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil || r.PostForm.Get("code") != "good-code" {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "access-123",
			"token_type":   "Bearer",
			"expires_in":   300,
		})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-123" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"preferred_username": username})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func login(t *testing.T, h *AuthHandler) (state string, stateCookie *http.Cookie) {
	t.Helper()
	rr := httptest.NewRecorder()
	h.HandleLogin(rr, httptest.NewRequest(http.MethodGet, "/auth/login", nil))
	require.Equal(t, http.StatusTemporaryRedirect, rr.Code)

	loc, err := url.Parse(rr.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/auth", loc.Path)
	assert.Equal(t, "safari-app", loc.Query().Get("client_id"))

	for _, c := range rr.Result().Cookies() {
		if c.Name == stateCookieName {
			stateCookie = c
		}
	}
	require.NotNil(t, stateCookie)
	require.Equal(t, stateCookie.Value, loc.Query().Get("state"))
	return stateCookie.Value, stateCookie
}

func TestLoginCallback_SetsSessionCookie(t *testing.T) {
	h := newTestHandler(fakeProvider(t, "alice"))
	state, stateCookie := login(t, h)

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=good-code&state="+state, nil)
	req.AddCookie(stateCookie)
	rr := httptest.NewRecorder()
	h.HandleCallback(rr, req)

	require.Equal(t, http.StatusFound, rr.Code, rr.Body.String())
	assert.Equal(t, "http://localhost:3000/", rr.Header().Get("Location"))

	var session *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == CookieName {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)

	username, err := h.Authorize(context.Background(), AuthInput{Cookie: CookieName + "=" + session.Value})
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestLoginCallback_Rejects(t *testing.T) {
	h := newTestHandler(fakeProvider(t, "alice"))

	t.Run("state mismatch", func(t *testing.T) {
		_, stateCookie := login(t, h)
		req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=good-code&state=forged", nil)
		req.AddCookie(stateCookie)
		rr := httptest.NewRecorder()
		h.HandleCallback(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing code", func(t *testing.T) {
		state, stateCookie := login(t, h)
		req := httptest.NewRequest(http.MethodGet, "/auth/callback?state="+state, nil)
		req.AddCookie(stateCookie)
		rr := httptest.NewRecorder()
		h.HandleCallback(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("exchange fails", func(t *testing.T) {
		state, stateCookie := login(t, h)
		req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=bad-code&state="+state, nil)
		req.AddCookie(stateCookie)
		rr := httptest.NewRecorder()
		h.HandleCallback(rr, req)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		for _, c := range rr.Result().Cookies() {
			assert.NotEqual(t, CookieName, c.Name)
		}
	})
}

func TestLoginCallback_NoUsername(t *testing.T) {
	h := newTestHandler(fakeProvider(t, ""))
	state, stateCookie := login(t, h)

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=good-code&state="+state, nil)
	req.AddCookie(stateCookie)
	rr := httptest.NewRecorder()
	h.HandleCallback(rr, req)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestLogout_ClearsCookie(t *testing.T) {
	h := newTestHandler(nil)
	rr := httptest.NewRecorder()
	h.HandleLogout(rr, httptest.NewRequest(http.MethodGet, "/auth/logout", nil))

	assert.Equal(t, http.StatusFound, rr.Code)
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestAuthorize(t *testing.T) {
	h := newTestHandler(nil)
	ctx := context.Background()
	token, err := h.GenerateToken("alice")
	require.NoError(t, err)

	t.Run("cookie", func(t *testing.T) {
		username, err := h.Authorize(ctx, AuthInput{Cookie: "theme=dark; " + CookieName + "=" + token})
		require.NoError(t, err)
		assert.Equal(t, "alice", username)
	})

	t.Run("bearer", func(t *testing.T) {
		username, err := h.Authorize(ctx, AuthInput{Authorization: "Bearer " + token})
		require.NoError(t, err)
		assert.Equal(t, "alice", username)
	})

	rejected := map[string]AuthInput{
		"no credentials": {},
		"other cookie":   {Cookie: "theme=dark"},
		"tampered":       {Cookie: CookieName + "=" + token + "x"},
		"wrong secret":   {Cookie: CookieName + "=" + signedToken(t, "other-secret", "alice", time.Hour)},
		"expired":        {Cookie: CookieName + "=" + signedToken(t, testSecret, "alice", -time.Minute)},
		"no username":    {Cookie: CookieName + "=" + signedToken(t, testSecret, "", time.Hour)},
	}
	for name, in := range rejected {
		t.Run(name, func(t *testing.T) {
			_, err := h.Authorize(ctx, in)
			require.Error(t, err)
			var se huma.StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, http.StatusUnauthorized, se.GetStatus())
		})
	}
}

func TestHandleMe(t *testing.T) {
	h := newTestHandler(nil)
	token, err := h.GenerateToken("alice")
	require.NoError(t, err)

	t.Run("Authenticated", func(t *testing.T) {
		resp, err := h.HandleMe(context.Background(), &AuthInput{Cookie: CookieName + "=" + token})
		require.NoError(t, err)
		assert.Equal(t, "alice", resp.Body.Username)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		_, err := h.HandleMe(context.Background(), &AuthInput{})
		require.Error(t, err)
	})
}
