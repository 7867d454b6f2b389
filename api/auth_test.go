package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opWithScheme(scheme string) *Operation {
	op := &Operation{Name: "op", Method: http.MethodGet, Path: "/x"}
	if scheme != "" {
		op.Security = []map[string][]string{{scheme: {}}}
	}
	return op
}

func TestSelectAuth_OAuth(t *testing.T) {
	auth, err := SelectAuth(opWithScheme(SchemeOAuth), Credentials{AccessToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, BearerAuth{Token: "tok"}, auth)
}

func TestSelectAuth_OAuth_MissingToken(t *testing.T) {
	auth, err := SelectAuth(opWithScheme(SchemeOAuth), Credentials{})
	assert.Nil(t, auth)
	assert.True(t, IsMissingCredential(err))
	assert.Contains(t, err.Error(), "PINTEREST_ACCESS_TOKEN")
}

func TestSelectAuth_Basic(t *testing.T) {
	auth, err := SelectAuth(opWithScheme(SchemeBasic), Credentials{
		ClientID:     "id",
		ClientSecret: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, BasicAuth{Username: "id", Password: "secret"}, auth)
}

func TestSelectAuth_Basic_MissingSecret(t *testing.T) {
	_, err := SelectAuth(opWithScheme(SchemeBasic), Credentials{ClientID: "id"})
	assert.True(t, IsMissingCredential(err))
}

func TestSelectAuth_Conversion(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		want  Auth
	}{
		{
			name:  "conversion token preferred",
			creds: Credentials{ConversionToken: "conv", AccessToken: "tok"},
			want:  BearerAuth{Token: "conv"},
		},
		{
			name:  "falls back to access token",
			creds: Credentials{AccessToken: "tok"},
			want:  BearerAuth{Token: "tok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth, err := SelectAuth(opWithScheme(SchemeConversion), tt.creds)
			require.NoError(t, err)
			assert.Equal(t, tt.want, auth)
		})
	}
}

func TestSelectAuth_Conversion_NoCredential(t *testing.T) {
	_, err := SelectAuth(opWithScheme(SchemeConversion), Credentials{})
	assert.True(t, IsMissingCredential(err))
}

func TestSelectAuth_NoScheme(t *testing.T) {
	auth, err := SelectAuth(opWithScheme(""), Credentials{})
	require.NoError(t, err)
	assert.Equal(t, NoAuth{}, auth)
}

func TestAuth_Apply(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "https://api.pinterest.com/v5/boards", nil)
	require.NoError(t, err)

	BearerAuth{Token: "tok"}.apply(req)
	assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))

	BasicAuth{Username: "id", Password: "secret"}.apply(req)
	user, pass, ok := req.BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "id", user)
	assert.Equal(t, "secret", pass)
}
