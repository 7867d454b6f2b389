package root

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/pinterest-ads-cli/api"
)

func cleanEnv(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("PINTEREST_BASE_URL", "")
	t.Setenv("PINTEREST_AD_ACCOUNT_ID", "")
	t.Setenv("PINTEREST_ACCESS_TOKEN", "")
	t.Setenv("PINTEREST_CONVERSION_TOKEN", "")
	t.Setenv("PINTEREST_CLIENT_ID", "")
	t.Setenv("PINTEREST_CLIENT_SECRET", "")
}

func TestNewCmd_GlobalFlags(t *testing.T) {
	cmd, _ := NewCmd()

	for _, flag := range []string{
		"access-token", "client-id", "client-secret", "conversion-token",
		"ad-account-id", "base-url", "timeout", "pretty", "raw",
		"no-color", "debug", "all", "max-items", "max-pages",
	} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "missing flag %s", flag)
	}
}

func TestOptions_Credentials_FlagsWinOverEnv(t *testing.T) {
	cleanEnv(t)
	t.Setenv("PINTEREST_ACCESS_TOKEN", "env-token")
	t.Setenv("PINTEREST_AD_ACCOUNT_ID", "env-account")

	opts := &Options{AccessToken: "flag-token"}

	creds, err := opts.Credentials()
	require.NoError(t, err)
	assert.Equal(t, "flag-token", creds.AccessToken)
	assert.Equal(t, "env-account", creds.AdAccountID)
}

func TestOptions_APIClient(t *testing.T) {
	cleanEnv(t)

	opts := &Options{Timeout: 10 * time.Second}

	client, err := opts.APIClient()
	require.NoError(t, err)
	assert.Equal(t, api.DefaultBaseURL, client.BaseURL)
	assert.Equal(t, 10*time.Second, client.HTTPClient.Timeout)
}

func TestOptions_APIClient_BaseURLOverride(t *testing.T) {
	cleanEnv(t)

	opts := &Options{BaseURL: "https://api-sandbox.pinterest.com/v5"}

	client, err := opts.APIClient()
	require.NoError(t, err)
	assert.Equal(t, "https://api-sandbox.pinterest.com/v5", client.BaseURL)
}

func TestOptions_TestHooks(t *testing.T) {
	opts := &Options{}

	stub := &api.Client{BaseURL: "https://stub"}
	opts.SetAPIClient(stub)
	client, err := opts.APIClient()
	require.NoError(t, err)
	assert.Same(t, stub, client)

	tree := &api.Tree{APIVersion: "5.0"}
	opts.SetTree(tree)
	got, err := opts.Tree()
	require.NoError(t, err)
	assert.Same(t, tree, got)
}

func TestOptions_PageOptions(t *testing.T) {
	opts := &Options{MaxItems: 100, MaxPages: 5}
	assert.Equal(t, api.PageOptions{MaxItems: 100, MaxPages: 5}, opts.PageOptions())
}

func TestOptions_MediaClient_RequiresToken(t *testing.T) {
	cleanEnv(t)

	opts := &Options{}
	_, err := opts.MediaClient()
	assert.True(t, api.IsMissingCredential(err))
}
