package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/safari-trip-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

const (
	CookieName      = "auth_token"
	stateCookieName = "oauth_state"

	TokenDuration = 24 * time.Hour
)

type AuthHandler struct {
	oauthConfig *oauth2.Config
	cfg         *config.Config
	log         *slog.Logger
}

func NewAuthHandler(cfg *config.Config, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.OIDCClientID,
			ClientSecret: cfg.OIDCClientSecret,
			RedirectURL:  cfg.OIDCRedirectURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.OIDCAuthURL,
				TokenURL: cfg.OIDCTokenURL,
			},
		},
		cfg: cfg,
		log: logger,
	}
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	state, err := randomState()
	if err != nil {
		http.Error(w, "Failed to start login", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
	url := h.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOnline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

func (h *AuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	state, err := r.Cookie(stateCookieName)
	if err != nil || state.Value == "" || state.Value != r.URL.Query().Get("state") {
		http.Error(w, "Invalid login state", http.StatusBadRequest)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookieName, Value: "", Path: "/", MaxAge: -1})

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Code not found", http.StatusBadRequest)
		return
	}

	token, err := h.oauthConfig.Exchange(ctx, code)
	if err != nil {
		h.log.ErrorContext(ctx, "oidc code exchange failed", "error", err)
		http.Error(w, "Failed to exchange token", http.StatusInternalServerError)
		return
	}

	username, err := h.fetchUsername(ctx, token)
	if err != nil {
		h.log.ErrorContext(ctx, "oidc userinfo failed", "error", err)
		http.Error(w, "Failed to get user info", http.StatusInternalServerError)
		return
	}

	jwtToken, err := h.GenerateToken(username)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, h.sessionCookie(jwtToken))
	h.log.InfoContext(ctx, "user logged in", "username", username)
	http.Redirect(w, r, h.cfg.FrontendURL, http.StatusFound)
}

func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, h.cfg.FrontendURL, http.StatusFound)
}

func (h *AuthHandler) fetchUsername(ctx context.Context, token *oauth2.Token) (string, error) {
	client := h.oauthConfig.Client(ctx, token)
	resp, err := client.Get(h.cfg.OIDCUserInfoURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("userinfo returned %s", resp.Status)
	}

	var info struct {
		PreferredUsername string `json:"preferred_username"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("decode userinfo: %w", err)
	}
	if info.PreferredUsername == "" {
		return "", fmt.Errorf("userinfo has no preferred_username")
	}
	return info.PreferredUsername, nil
}

func (h *AuthHandler) sessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  time.Now().Add(TokenDuration),
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) GenerateToken(username string) (string, error) {
	claims := jwt.MapClaims{
		"preferred_username": username,
		"exp":                time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

// parseToken verifies the signature and expiry and returns the claims.
func (h *AuthHandler) parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// AuthInput carries the raw Cookie header into huma operations.
type AuthInput struct {
	Cookie        string `header:"Cookie"`
	Authorization string `header:"Authorization"`
}

// Authorize returns the username of the session in the auth_token cookie.
// A "Bearer <token>" Authorization header is accepted as well for API
// clients that do not keep cookies.
func (h *AuthHandler) Authorize(ctx context.Context, in AuthInput) (string, error) {
	tokenString := ""
	if cookies, err := http.ParseCookie(in.Cookie); err == nil {
		for _, c := range cookies {
			if c.Name == CookieName {
				tokenString = c.Value
				break
			}
		}
	}
	if tokenString == "" {
		if bearer, ok := strings.CutPrefix(in.Authorization, "Bearer "); ok {
			tokenString = bearer
		}
	}
	if tokenString == "" {
		return "", huma.Error401Unauthorized("Unauthorized: No token found")
	}

	claims, err := h.parseToken(tokenString)
	if err != nil {
		h.log.DebugContext(ctx, "rejected session token", "error", err)
		return "", huma.Error401Unauthorized("Unauthorized: Invalid token")
	}
	username, ok := claims["preferred_username"].(string)
	if !ok || username == "" {
		return "", huma.Error401Unauthorized("Unauthorized: Invalid token claims")
	}
	return username, nil
}

type MeOutput struct {
	Body struct {
		Username string `json:"username" doc:"Username from the identity provider"`
	}
}

func (h *AuthHandler) HandleMe(ctx context.Context, input *AuthInput) (*MeOutput, error) {
	username, err := h.Authorize(ctx, *input)
	if err != nil {
		return nil, err
	}
	out := &MeOutput{}
	out.Body.Username = username
	return out, nil
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
