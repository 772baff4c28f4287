package services

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/cen-na/contrats-backend/internal/clients/msgraph"
	"github.com/cen-na/contrats-backend/internal/data/repos/testutil"
	"github.com/cen-na/contrats-backend/internal/pkg/ctxutil"
)

type stubGraph struct {
	profile msgraph.Profile
}

func (s *stubGraph) GetMe(ctx context.Context, accessToken string) (*msgraph.Profile, error) {
	p := s.profile
	return &p, nil
}

func newTestAuthService(t *testing.T, ttl time.Duration) AuthService {
	t.Helper()
	svc, err := NewAuthService(testutil.Logger(t), &stubGraph{}, AuthConfig{
		TenantID:     "test-tenant",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "http://localhost:8080/api/auth/callback",
		JWTSecretKey: "test-secret",
		SessionTTL:   ttl,
	})
	if err != nil {
		t.Fatalf("init auth service: %v", err)
	}
	return svc
}

func TestAuthURL(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)
	raw := svc.AuthURL("state-123")

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse auth url: %v", err)
	}
	if u.Host != "login.microsoftonline.com" {
		t.Errorf("host = %q", u.Host)
	}
	if !strings.Contains(u.Path, "test-tenant") {
		t.Errorf("path = %q, want tenant in it", u.Path)
	}
	q := u.Query()
	if q.Get("client_id") != "client-id" {
		t.Errorf("client_id = %q", q.Get("client_id"))
	}
	if q.Get("state") != "state-123" {
		t.Errorf("state = %q", q.Get("state"))
	}
	if q.Get("response_type") != "code" {
		t.Errorf("response_type = %q", q.Get("response_type"))
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)
	as := svc.(*authService)

	want := &Session{UserID: "uid-1", Name: "Marie Dupont", Email: "marie@cen.example"}
	token, err := as.issueToken(want)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	got, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if got.UserID != want.UserID || got.Name != want.Name || got.Email != want.Email {
		t.Errorf("session = %+v, want %+v", got, want)
	}

	ctx, err := svc.SetContextFromToken(context.Background(), token)
	if err != nil {
		t.Fatalf("set context: %v", err)
	}
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserEmail != "marie@cen.example" {
		t.Errorf("request data = %+v", rd)
	}
}

func TestVerifyTokenRejectsBadInput(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)

	if _, err := svc.VerifyToken(""); err == nil {
		t.Error("empty token accepted")
	}
	if _, err := svc.VerifyToken("not-a-jwt"); err == nil {
		t.Error("malformed token accepted")
	}

	// Constructor clamps the TTL, so build the expired issuer directly.
	expired := &authService{
		log: testutil.Logger(t),
		cfg: AuthConfig{JWTSecretKey: "test-secret", SessionTTL: -time.Minute},
	}
	token, err := expired.issueToken(&Session{UserID: "uid-1"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := svc.VerifyToken(token); err == nil {
		t.Error("expired token accepted")
	}
}
