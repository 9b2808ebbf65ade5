package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
)

type loginResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int64       `json:"expires_in"`
	User        models.User `json:"user"`
}

// PasswordSource logs in with email and password whenever a fresh token is
// needed. Wrap it with oauth2.ReuseTokenSource, as NewPasswordSource does,
// to log in once per token lifetime.
type PasswordSource struct {
	ctx      context.Context
	baseURL  string
	email    string
	password string
	http     *http.Client
}

func NewPasswordSource(ctx context.Context, baseURL, email, password string, hc *http.Client) oauth2.TokenSource {
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	src := &PasswordSource{
		ctx:      ctx,
		baseURL:  strings.TrimRight(baseURL, "/"),
		email:    email,
		password: password,
		http:     hc,
	}
	return oauth2.ReuseTokenSource(nil, src)
}

func (s *PasswordSource) Token() (*oauth2.Token, error) {
	tok, _, err := Login(s.ctx, s.http, s.baseURL, s.email, s.password)
	return tok, err
}

// Login exchanges credentials for a bearer token and the signed-in user.
func Login(ctx context.Context, hc *http.Client, baseURL, email, password string) (*oauth2.Token, *models.User, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(baseURL, "/")+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := hc.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("client: login: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, nil, decodeError(resp)
	}
	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, nil, fmt.Errorf("client: decode login: %w", err)
	}
	tok := &oauth2.Token{AccessToken: lr.AccessToken, TokenType: "Bearer"}
	if lr.ExpiresIn > 0 {
		tok.Expiry = time.Now().Add(time.Duration(lr.ExpiresIn) * time.Second)
	}
	return tok, &lr.User, nil
}
