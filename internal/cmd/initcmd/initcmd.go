// Package initcmd provides the guided setup command.
package initcmd

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/pinterest-ads-cli/api"
	"github.com/open-cli-collective/pinterest-ads-cli/internal/cmd/root"
	"github.com/open-cli-collective/pinterest-ads-cli/internal/config"
)

// Register registers the init command with the root command.
func Register(parent *cobra.Command, opts *root.Options) {
	parent.AddCommand(NewCommand(opts))
}

// NewCommand returns the init command.
func NewCommand(opts *root.Options) *cobra.Command {
	var (
		baseURL     string
		adAccountID string
		noVerify    bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Guided setup",
		Long: `Guided setup for the Pinterest Ads CLI.

Saves the non-secret defaults (base URL and default ad account id) to
the config file. Tokens are never written to disk; export them in your
shell instead:

  export PINTEREST_ACCESS_TOKEN=<token>
  export PINTEREST_CLIENT_ID=<app id>
  export PINTEREST_CLIENT_SECRET=<app secret>

Prerequisites:
  1. Create an app at developers.pinterest.com
  2. Generate an access token with the scopes you need
  3. Note your ad account id from the Ads Manager URL`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts, baseURL, adAccountID, noVerify)
		},
	}

	cmd.Flags().StringVar(&baseURL, "api-base-url", "", "API base URL to save")
	cmd.Flags().StringVar(&adAccountID, "default-ad-account", "", "Default ad account id to save")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "Skip connectivity verification after setup")

	return cmd
}

func runInit(cmd *cobra.Command, opts *root.Options, baseURL, adAccountID string, noVerify bool) error {
	v := opts.View()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Priority: flag > existing config value
	formBaseURL := cfg.BaseURL
	if baseURL != "" {
		formBaseURL = baseURL
	}
	formAdAccountID := cfg.AdAccountID
	if adAccountID != "" {
		formAdAccountID = adAccountID
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("API base URL").
				Description("Leave empty for the default ("+api.DefaultBaseURL+")").
				Placeholder(api.DefaultBaseURL).
				Value(&formBaseURL),

			huh.NewInput().
				Title("Default ad account id").
				Description("Used for {ad_account_id} paths when --ad-account-id is omitted").
				Value(&formAdAccountID),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg.BaseURL = formBaseURL
	cfg.AdAccountID = formAdAccountID
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	v.Success("configuration saved to %s", path)

	creds, err := opts.Credentials()
	if err != nil {
		return err
	}
	if creds.AccessToken == "" {
		v.Warning("PINTEREST_ACCESS_TOKEN is not set; export it before making API calls")
		v.Info("Get one with: pinads auth token (requires PINTEREST_CLIENT_ID / PINTEREST_CLIENT_SECRET)")
		return nil
	}

	if noVerify {
		return nil
	}

	return verifyConnectivity(cmd, opts)
}

// verifyConnectivity confirms the saved configuration and token work
// by fetching the authenticated user account.
func verifyConnectivity(cmd *cobra.Command, opts *root.Options) error {
	v := opts.View()
	v.Info("Verifying API connection...")

	client, err := opts.APIClient()
	if err != nil {
		return err
	}
	creds, err := opts.Credentials()
	if err != nil {
		return err
	}

	plan := &api.Plan{
		Method: http.MethodGet,
		URL:    client.BaseURL + "/user_account",
		Auth:   api.BearerAuth{Token: creds.AccessToken},
	}
	if _, err := client.Do(cmd.Context(), plan); err != nil {
		v.Error("API access failed")
		return err
	}

	v.Success("API access OK")
	v.Info("Setup complete! Try: pinads user_account get")
	return nil
}
