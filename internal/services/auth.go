package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cen-na/contrats-backend/internal/clients/msgraph"
	"github.com/cen-na/contrats-backend/internal/pkg/ctxutil"
	"github.com/cen-na/contrats-backend/internal/pkg/envutil"
	pkgerrors "github.com/cen-na/contrats-backend/internal/pkg/errors"
	"github.com/cen-na/contrats-backend/internal/pkg/logger"
)

// Session is the authenticated staff identity carried by the session JWT.
type Session struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthService runs the Microsoft identity code flow and manages the
// session tokens the API issues on top of it.
type AuthService interface {
	AuthURL(state string) string
	HandleCallback(ctx context.Context, code string) (string, *Session, error)
	VerifyToken(tokenString string) (*Session, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	SessionTTL() time.Duration
}

type AuthConfig struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	RedirectURI  string
	JWTSecretKey string
	SessionTTL   time.Duration
}

func AuthConfigFromEnv() AuthConfig {
	return AuthConfig{
		TenantID:     envutil.String("MS_TENANT_ID", "common"),
		ClientID:     envutil.String("MS_CLIENT_ID", ""),
		ClientSecret: envutil.String("MS_CLIENT_SECRET", ""),
		RedirectURI:  envutil.String("MS_REDIRECT_URI", ""),
		JWTSecretKey: envutil.String("JWT_SECRET_KEY", ""),
		SessionTTL:   envutil.Duration("SESSION_TTL", 12*time.Hour),
	}
}

type authService struct {
	log        *logger.Logger
	graph      msgraph.Client
	cfg        AuthConfig
	httpClient *http.Client
}

func NewAuthService(log *logger.Logger, graph msgraph.Client, cfg AuthConfig) (AuthService, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if graph == nil {
		return nil, fmt.Errorf("graph client required")
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("missing MS_CLIENT_ID or MS_CLIENT_SECRET")
	}
	if cfg.JWTSecretKey == "" {
		return nil, fmt.Errorf("missing JWT_SECRET_KEY")
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 12 * time.Hour
	}
	return &authService{
		log:        log.With("service", "AuthService"),
		graph:      graph,
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

func (as *authService) endpoint(path string) string {
	return fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/%s", as.cfg.TenantID, path)
}

func (as *authService) AuthURL(state string) string {
	q := url.Values{}
	q.Set("client_id", as.cfg.ClientID)
	q.Set("response_type", "code")
	q.Set("redirect_uri", as.cfg.RedirectURI)
	q.Set("response_mode", "query")
	q.Set("scope", "openid profile email User.Read")
	q.Set("state", state)
	return as.endpoint("authorize") + "?" + q.Encode()
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// HandleCallback exchanges the authorization code for a Graph access
// token, loads the user profile and issues the API session JWT.
func (as *authService) HandleCallback(ctx context.Context, code string) (string, *Session, error) {
	if strings.TrimSpace(code) == "" {
		return "", nil, fmt.Errorf("empty authorization code: %w", pkgerrors.ErrInvalidInput)
	}

	accessToken, err := as.exchangeCode(ctx, code)
	if err != nil {
		as.log.Warn("code exchange failed", "error", err)
		return "", nil, err
	}

	profile, err := as.graph.GetMe(ctx, accessToken)
	if err != nil {
		as.log.Warn("graph profile fetch failed", "error", err)
		return "", nil, err
	}

	session := &Session{
		UserID: profile.ID,
		Name:   profile.DisplayName,
		Email:  profile.Email(),
	}
	token, err := as.issueToken(session)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	as.log.Info("session opened", "user", session.Email)
	return token, session, nil
}

func (as *authService) exchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("client_id", as.cfg.ClientID)
	form.Set("client_secret", as.cfg.ClientSecret)
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", as.cfg.RedirectURI)
	form.Set("scope", "openid profile email User.Read")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, as.endpoint("token"),
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := as.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token endpoint unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("token exchange rejected (%d): %s: %w",
			resp.StatusCode, strings.TrimSpace(string(body)), pkgerrors.ErrUnauthorized)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("token response missing access_token: %w", pkgerrors.ErrUnauthorized)
	}
	return tr.AccessToken, nil
}

func (as *authService) issueToken(session *Session) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.cfg.SessionTTL)),
		},
		Name:  session.Name,
		Email: session.Email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.cfg.JWTSecretKey))
}

func (as *authService) VerifyToken(tokenString string) (*Session, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, fmt.Errorf("empty token: %w", pkgerrors.ErrUnauthorized)
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(as.cfg.JWTSecretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", pkgerrors.ErrUnauthorized)
	}
	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid session token: %w", pkgerrors.ErrUnauthorized)
	}
	return &Session{UserID: claims.Subject, Name: claims.Name, Email: claims.Email}, nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	session, err := as.VerifyToken(tokenString)
	if err != nil {
		return ctx, err
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		UserID:    session.UserID,
		UserName:  session.Name,
		UserEmail: session.Email,
	}), nil
}

func (as *authService) SessionTTL() time.Duration {
	return as.cfg.SessionTTL
}
