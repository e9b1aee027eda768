package authapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yash-2200030856/Sanchari-escapes/internal/domain"
	"github.com/yash-2200030856/Sanchari-escapes/internal/repository/ports"
)

var ErrNoUser = errors.New("auth api: token resolved to no user")

// Provider resolves access tokens against the hosted auth API (GET /auth/v1/user).
type Provider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ ports.IdentityProvider = (*Provider)(nil)

// NewProvider builds a provider. apiKey is sent as the apikey header and should be the
// restricted anon key when one is configured.
func NewProvider(baseURL, apiKey string, client *http.Client) *Provider {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &Provider{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  apiKey,
		client:  client,
	}
}

type userResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	IsSuperAdmin *bool  `json:"is_super_admin"`
	AppMetadata  struct {
		IsSuperAdmin *bool `json:"is_super_admin"`
	} `json:"app_metadata"`
}

func (p *Provider) GetUser(ctx context.Context, token string) (*domain.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", p.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth api request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("auth api read: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("auth api: status %d", resp.StatusCode)
	}

	var payload userResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("auth api decode: %w", err)
	}
	if strings.TrimSpace(payload.ID) == "" {
		return nil, ErrNoUser
	}
	id, err := uuid.Parse(payload.ID)
	if err != nil {
		return nil, fmt.Errorf("auth api: invalid user id: %w", err)
	}

	superAdmin := false
	if payload.IsSuperAdmin != nil {
		superAdmin = *payload.IsSuperAdmin
	} else if payload.AppMetadata.IsSuperAdmin != nil {
		superAdmin = *payload.AppMetadata.IsSuperAdmin
	}

	return &domain.Identity{
		ID:           id,
		Email:        payload.Email,
		IsSuperAdmin: superAdmin,
	}, nil
}
