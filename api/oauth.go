package api

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// OAuth grant types accepted by the token exchange.
const (
	GrantClientCredentials = "client_credentials"
	GrantAuthorizationCode = "authorization_code"
	GrantRefreshToken      = "refresh_token"
)

// GrantParams are the caller-supplied fields for one token exchange.
type GrantParams struct {
	// GrantType selects the exchange mode.
	GrantType string

	// Scopes to request (optional).
	Scopes []string

	// Code and RedirectURI are required for authorization-code grants.
	Code        string
	RedirectURI string

	// ContinuousRefresh is forwarded opaquely to the token endpoint;
	// the API decides whether the app is eligible.
	ContinuousRefresh bool

	// RefreshToken is required for refresh-token grants.
	RefreshToken string
}

// TokenResult is the outcome of a token exchange. The CLI never stores
// it; the caller is responsible for keeping the token.
type TokenResult struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

// ExchangeToken performs a one-shot OAuth token exchange against the
// API's token endpoint using the app client id and secret. It does not
// persist or auto-refresh tokens.
func (c *Client) ExchangeToken(ctx context.Context, creds Credentials, grant GrantParams) (*TokenResult, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, fmt.Errorf("%w: client id and secret required (PINTEREST_CLIENT_ID / PINTEREST_CLIENT_SECRET)", ErrMissingCredential)
	}

	tokenURL := c.buildURL("/oauth/token")
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.HTTPClient)

	var (
		tok *oauth2.Token
		err error
	)

	switch grant.GrantType {
	case GrantClientCredentials:
		cfg := &clientcredentials.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			TokenURL:     tokenURL,
			Scopes:       grant.Scopes,
			AuthStyle:    oauth2.AuthStyleInHeader,
		}
		tok, err = cfg.Token(ctx)

	case GrantAuthorizationCode:
		if grant.Code == "" {
			return nil, fmt.Errorf("%w: --code is required for authorization_code grants", ErrMissingParam)
		}
		cfg := authCodeConfig(creds, tokenURL, grant)
		var opts []oauth2.AuthCodeOption
		if grant.ContinuousRefresh {
			opts = append(opts, oauth2.SetAuthURLParam("continuous_refresh", "true"))
		}
		tok, err = cfg.Exchange(ctx, grant.Code, opts...)

	case GrantRefreshToken:
		if grant.RefreshToken == "" {
			return nil, fmt.Errorf("%w: --refresh-token is required for refresh_token grants", ErrMissingParam)
		}
		cfg := authCodeConfig(creds, tokenURL, grant)
		tok, err = cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: grant.RefreshToken}).Token()

	default:
		return nil, fmt.Errorf("%w: unsupported grant type %q", ErrInvalidParam, grant.GrantType)
	}

	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}

	result := &TokenResult{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
	}
	if !tok.Expiry.IsZero() {
		result.ExpiresIn = int(time.Until(tok.Expiry).Round(time.Second).Seconds())
	}
	if scope, ok := tok.Extra("scope").(string); ok {
		result.Scope = scope
	}

	return result, nil
}

func authCodeConfig(creds Credentials, tokenURL string, grant GrantParams) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  grant.RedirectURI,
		Scopes:       grant.Scopes,
		Endpoint: oauth2.Endpoint{
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
}
