package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	oautherrors "go-peoplehub/internal/oauth/errors"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Profile adalah identitas ternormalisasi yang dikembalikan provider,
// termasuk token hasil exchange untuk dibawa state Pending.
type Profile struct {
	Provider      string
	ProviderID    string
	Email         string
	Name          string
	AvatarURL     string
	EmailVerified bool

	AccessToken  string
	RefreshToken string
	IDToken      string
}

//go:generate mockgen -source=oauth_provider.go -destination=mock/oauth_provider_mock.go -package=mock
type Provider interface {
	Name() string
	AuthCodeURL(state string) string
	FetchProfile(ctx context.Context, code string) (*Profile, error)
}

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type googleProvider struct {
	config *oauth2.Config
}

func NewGoogleProvider(clientID, clientSecret, redirectURL string) Provider {
	return &googleProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

func (g *googleProvider) Name() string { return "google" }

func (g *googleProvider) AuthCodeURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (g *googleProvider) FetchProfile(ctx context.Context, code string) (*Profile, error) {
	// 1. Tukar authorization code dengan access token
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, oautherrors.ErrExchangeFailed
	}

	// 2. Ambil profil dari userinfo endpoint
	resp, err := g.config.Client(ctx, token).Get(googleUserinfoURL)
	if err != nil {
		return nil, oautherrors.ErrExchangeFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google userinfo returned status %d: %w", resp.StatusCode, oautherrors.ErrExchangeFailed)
	}

	var info struct {
		ID            string `json:"id"`
		Email         string `json:"email"`
		VerifiedEmail bool   `json:"verified_email"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, oautherrors.ErrExchangeFailed
	}

	idToken, _ := token.Extra("id_token").(string)

	return &Profile{
		Provider:      g.Name(),
		ProviderID:    info.ID,
		Email:         info.Email,
		Name:          info.Name,
		AvatarURL:     info.Picture,
		EmailVerified: info.VerifiedEmail,
		AccessToken:   token.AccessToken,
		RefreshToken:  token.RefreshToken,
		IDToken:       idToken,
	}, nil
}
