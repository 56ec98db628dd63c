package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const tokeninfoURL = "https://oauth2.googleapis.com/tokeninfo"

// TokeninfoVerifier validates Google ID tokens against the tokeninfo
// endpoint.
type TokeninfoVerifier struct {
	clientID string
	client   *http.Client
}

// NewTokeninfoVerifier initializes a verifier for the given OAuth client ID.
func NewTokeninfoVerifier(clientID string) *TokeninfoVerifier {
	return &TokeninfoVerifier{
		clientID: clientID,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Verify implements GoogleVerifier.
func (v *TokeninfoVerifier) Verify(ctx context.Context, idToken string) (GoogleUser, error) {
	endpoint := fmt.Sprintf("%s?id_token=%s", tokeninfoURL, url.QueryEscape(idToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return GoogleUser{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return GoogleUser{}, fmt.Errorf("tokeninfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return GoogleUser{}, fmt.Errorf("tokeninfo rejected token: status %d", resp.StatusCode)
	}

	var payload struct {
		Sub   string `json:"sub"`
		Email string `json:"email"`
		Name  string `json:"name"`
		Aud   string `json:"aud"`
		Iss   string `json:"iss"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return GoogleUser{}, fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}

	if v.clientID != "" && payload.Aud != v.clientID {
		return GoogleUser{}, fmt.Errorf("token audience mismatch")
	}
	if payload.Iss != "accounts.google.com" && payload.Iss != "https://accounts.google.com" {
		return GoogleUser{}, fmt.Errorf("unexpected token issuer")
	}

	return GoogleUser{
		GoogleID: payload.Sub,
		Email:    payload.Email,
		Name:     payload.Name,
	}, nil
}
