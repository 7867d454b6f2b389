package main

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/open-cli-collective/pinterest-ads-cli/api"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "generic error",
			err:  fmt.Errorf("connection refused"),
			want: exitError,
		},
		{
			name: "missing parameter",
			err:  fmt.Errorf("%w: board_id", api.ErrMissingParam),
			want: exitInput,
		},
		{
			name: "invalid parameter",
			err:  fmt.Errorf("%w: page_size", api.ErrInvalidParam),
			want: exitInput,
		},
		{
			name: "malformed body",
			err:  api.ErrMalformedBody,
			want: exitInput,
		},
		{
			name: "unknown command",
			err:  &api.NotFoundError{Path: []string{"boards", "nope"}},
			want: exitInput,
		},
		{
			name: "missing credential",
			err:  fmt.Errorf("%w: access token", api.ErrMissingCredential),
			want: exitCredential,
		},
		{
			name: "api rejection",
			err:  api.ParseAPIError(http.StatusUnauthorized, []byte(`{"code": 2, "message": "auth"}`)),
			want: exitAPI,
		},
		{
			name: "wrapped api rejection",
			err:  fmt.Errorf("pagination aborted on page 2: %w", api.ParseAPIError(http.StatusTooManyRequests, nil)),
			want: exitAPI,
		},
		{
			name: "poll timeout",
			err:  fmt.Errorf("%w: media still processing", api.ErrPollTimeout),
			want: exitTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
