package gotrue

import (
	"context"
	"errors"
	"strings"

	"med-reminder/internal/ports/auth"
)

var ErrTokenEmpty = errors.New("token is empty")

// Verifier implementa auth.AuthVerifier contra GoTrue.
type Verifier struct {
	client *Client
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{client: client}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	user, err := v.client.GetUser(ctx, token)
	if err != nil {
		return auth.Claims{}, err
	}

	userID := strings.TrimSpace(user.ID)
	if userID == "" {
		return auth.Claims{}, errors.New("gotrue response missing user id")
	}

	return auth.Claims{
		UserID: userID,
		Email:  strings.TrimSpace(user.Email),
	}, nil
}
