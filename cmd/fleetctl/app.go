package main

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/client"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
)

type app struct {
	api     *client.Client
	session models.Session
}

// newApp signs in once and keeps the token for the rest of the run.
func newApp(ctx context.Context, baseURL, email, password string) (*app, error) {
	hc := &http.Client{Timeout: 30 * time.Second}
	if email == "" || password == "" {
		return &app{api: client.New(baseURL, nil, hc)}, nil
	}
	tok, user, err := client.Login(ctx, hc, baseURL, email, password)
	if err != nil {
		return nil, err
	}
	return &app{
		api:     client.New(baseURL, oauth2.StaticTokenSource(tok), hc),
		session: user.Session(),
	}, nil
}
