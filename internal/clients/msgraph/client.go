package msgraph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cen-na/contrats-backend/internal/pkg/apierr"
	"github.com/cen-na/contrats-backend/internal/pkg/envutil"
	"github.com/cen-na/contrats-backend/internal/pkg/logger"
)

// Profile is the subset of the Graph /me payload kept in the session.
type Profile struct {
	ID                string `json:"id"`
	DisplayName       string `json:"displayName"`
	Mail              string `json:"mail"`
	UserPrincipalName string `json:"userPrincipalName"`
}

// Email prefers the mail attribute and falls back to the UPN, which is
// what tenant accounts without a mailbox expose.
func (p *Profile) Email() string {
	if strings.TrimSpace(p.Mail) != "" {
		return p.Mail
	}
	return p.UserPrincipalName
}

// Client fetches the signed-in user's profile from Microsoft Graph.
type Client interface {
	GetMe(ctx context.Context, accessToken string) (*Profile, error)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	httpClient *http.Client
}

func New(log *logger.Logger) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &client{
		log:        log.With("client", "MSGraphClient"),
		baseURL:    strings.TrimRight(envutil.String("MSGRAPH_BASE_URL", "https://graph.microsoft.com/v1.0"), "/"),
		httpClient: &http.Client{Timeout: envutil.Duration("MSGRAPH_TIMEOUT", 10*time.Second)},
	}, nil
}

func (c *client) GetMe(ctx context.Context, accessToken string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/me", nil)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "graph_request", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierr.New(http.StatusBadGateway, "graph_unreachable", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, apierr.New(http.StatusUnauthorized, "graph_unauthorized",
			fmt.Errorf("graph rejected the access token: %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, apierr.New(http.StatusBadGateway, "graph_error",
			fmt.Errorf("graph /me failed: %d, %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var p Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, apierr.New(http.StatusBadGateway, "graph_decode", err)
	}
	if p.ID == "" {
		return nil, apierr.New(http.StatusBadGateway, "graph_decode",
			fmt.Errorf("graph /me returned no user id"))
	}
	return &p, nil
}
