package api

import (
	"fmt"
	"net/http"
)

// Credentials is an immutable snapshot of everything the CLI knows
// about authentication. It is captured once at startup from flags and
// environment variables and never persisted.
type Credentials struct {
	// AccessToken is the bearer token for pinterest_oauth2 endpoints.
	AccessToken string

	// ConversionToken is the dedicated token for conversion-event
	// endpoints. When absent, the access token is used instead.
	ConversionToken string

	// ClientID and ClientSecret identify the app for basic-auth
	// endpoints and the token exchange.
	ClientID     string
	ClientSecret string

	// AdAccountID is the default value for ad_account_id path
	// parameters when the caller omits them.
	AdAccountID string
}

// Auth attaches a credential to an outgoing request.
type Auth interface {
	apply(req *http.Request)
}

// BearerAuth sets an Authorization: Bearer header.
type BearerAuth struct {
	Token string
}

func (a BearerAuth) apply(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+a.Token)
}

// BasicAuth sets HTTP basic auth from the app client id and secret.
type BasicAuth struct {
	Username string
	Password string
}

func (a BasicAuth) apply(req *http.Request) {
	req.SetBasicAuth(a.Username, a.Password)
}

// NoAuth leaves the request unchanged.
type NoAuth struct{}

func (NoAuth) apply(*http.Request) {}

// SelectAuth picks the credential matching the operation's declared
// security requirement. It fails with ErrMissingCredential before any
// network call when the required credential is absent.
//
// A conversion_token requirement prefers the dedicated conversion
// token and falls back to the bearer access token.
func SelectAuth(op *Operation, creds Credentials) (Auth, error) {
	if op.HasScheme(SchemeBasic) {
		if creds.ClientID == "" || creds.ClientSecret == "" {
			return nil, fmt.Errorf("%w: client id and secret required (PINTEREST_CLIENT_ID / PINTEREST_CLIENT_SECRET)", ErrMissingCredential)
		}
		return BasicAuth{Username: creds.ClientID, Password: creds.ClientSecret}, nil
	}

	if op.HasScheme(SchemeConversion) {
		if creds.ConversionToken != "" {
			return BearerAuth{Token: creds.ConversionToken}, nil
		}
		if creds.AccessToken != "" {
			return BearerAuth{Token: creds.AccessToken}, nil
		}
		return nil, fmt.Errorf("%w: conversion token or access token required (PINTEREST_CONVERSION_TOKEN / PINTEREST_ACCESS_TOKEN)", ErrMissingCredential)
	}

	if op.HasScheme(SchemeOAuth) {
		if creds.AccessToken == "" {
			return nil, fmt.Errorf("%w: access token required (PINTEREST_ACCESS_TOKEN)", ErrMissingCredential)
		}
		return BearerAuth{Token: creds.AccessToken}, nil
	}

	return NoAuth{}, nil
}
