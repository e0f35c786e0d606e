// Package gotrue verifica tokens de sesión contra un servicio de auth
// compatible con GoTrue (el backend de auth de Supabase, que es lo que
// usa la app móvil/web).
package gotrue

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"med-reminder/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("gotrue client not configured")
	ErrUnauthorized  = errors.New("gotrue unauthorized")
	ErrUpstream      = errors.New("gotrue upstream error")
)

// Config del cliente. BaseURL es la raíz del servicio de auth
// (p.ej. https://<proyecto>.supabase.co); APIKey es la anon/service key
// que GoTrue exige en el header "apikey".
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	http   *httpclient.Client
	apiKey string
}

func NewClient(cfg Config) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return &Client{
		http:   hc,
		apiKey: strings.TrimSpace(cfg.APIKey),
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != "" && c.apiKey != ""
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// GetUser resuelve el usuario dueño del token (GET /auth/v1/user).
func (c *Client) GetUser(ctx context.Context, token string) (userResponse, error) {
	if !c.IsConfigured() {
		return userResponse{}, ErrNotConfigured
	}

	var out userResponse
	err := c.http.DoJSON(ctx, http.MethodGet, "/auth/v1/user", map[string]string{
		"Authorization": "Bearer " + token,
		"apikey":        c.apiKey,
	}, nil, &out)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden {
				return userResponse{}, ErrUnauthorized
			}
			return userResponse{}, fmt.Errorf("%w: status=%d", ErrUpstream, httpErr.StatusCode)
		}
		return userResponse{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return out, nil
}
