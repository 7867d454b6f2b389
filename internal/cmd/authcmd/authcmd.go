// Package authcmd provides the auth commands for exchanging OAuth
// tokens. Tokens are printed, never stored; export the access token
// via PINTEREST_ACCESS_TOKEN.
package authcmd

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/pinterest-ads-cli/api"
	"github.com/open-cli-collective/pinterest-ads-cli/internal/cmd/root"
)

// Register registers the auth command with the root command.
func Register(parent *cobra.Command, opts *root.Options) {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication helpers",
	}
	cmd.AddCommand(newTokenCommand(opts))
	parent.AddCommand(cmd)
}

func newTokenCommand(opts *root.Options) *cobra.Command {
	var (
		grantType         string
		scopes            []string
		code              string
		redirectURI       string
		continuousRefresh bool
		refreshToken      string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Exchange credentials for an access token",
		Long: `Exchange app credentials for an access token at the token endpoint.
Requires the app client id and secret (PINTEREST_CLIENT_ID and
PINTEREST_CLIENT_SECRET, or the corresponding flags).

The token is printed as JSON and never written to disk. Export it:

  export PINTEREST_ACCESS_TOKEN=$(pinads auth token | jq -r .access_token)

Examples:
  pinads auth token
  pinads auth token --grant-type authorization_code --code <code> --redirect-uri https://localhost/callback
  pinads auth token --grant-type refresh_token --refresh-token <token>`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.APIClient()
			if err != nil {
				return err
			}
			creds, err := opts.Credentials()
			if err != nil {
				return err
			}

			result, err := client.ExchangeToken(cmd.Context(), creds, api.GrantParams{
				GrantType:         grantType,
				Scopes:            scopes,
				Code:              code,
				RedirectURI:       redirectURI,
				ContinuousRefresh: continuousRefresh,
				RefreshToken:      refreshToken,
			})
			if err != nil {
				return err
			}

			return opts.View().JSON(result)
		},
	}

	cmd.Flags().StringVar(&grantType, "grant-type", api.GrantClientCredentials, "Grant type: client_credentials, authorization_code, or refresh_token")
	cmd.Flags().StringSliceVar(&scopes, "scope", nil, "OAuth scopes to request (repeatable)")
	cmd.Flags().StringVar(&code, "code", "", "Authorization code (authorization_code grants)")
	cmd.Flags().StringVar(&redirectURI, "redirect-uri", "", "Redirect URI used in the authorization request")
	cmd.Flags().BoolVar(&continuousRefresh, "continuous-refresh", false, "Request a continuously refreshable token")
	cmd.Flags().StringVar(&refreshToken, "refresh-token", "", "Refresh token (refresh_token grants)")

	return cmd
}
