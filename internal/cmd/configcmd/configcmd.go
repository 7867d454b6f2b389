// Package configcmd provides the config command and subcommands.
package configcmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/pinterest-ads-cli/api"
	"github.com/open-cli-collective/pinterest-ads-cli/internal/cmd/root"
	"github.com/open-cli-collective/pinterest-ads-cli/internal/config"
)

// Register registers the config command with the root command.
func Register(parent *cobra.Command, opts *root.Options) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  "View and manage the saved non-secret defaults. Tokens live in the environment only.",
	}

	cmd.AddCommand(newShowCommand(opts))
	cmd.AddCommand(newClearCommand(opts))

	parent.AddCommand(cmd)
}

func newShowCommand(opts *root.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			v := opts.View()

			baseURL := cfg.BaseURL
			if baseURL == "" {
				baseURL = api.DefaultBaseURL + " (default)"
			}
			v.Info("Base URL:         %s", baseURL)

			if cfg.AdAccountID != "" {
				v.Info("Ad account id:    %s", cfg.AdAccountID)
			} else {
				v.Info("Ad account id:    Not configured")
			}

			v.Info("Access token:     %s", credentialStatus(cfg.AccessToken, "PINTEREST_ACCESS_TOKEN"))
			v.Info("Conversion token: %s", credentialStatus(cfg.ConversionToken, "PINTEREST_CONVERSION_TOKEN"))
			v.Info("Client id:        %s", clientIDStatus(cfg.ClientID))

			path, err := config.GetConfigPath()
			if err != nil {
				path = "(unable to determine)"
			}
			v.Info("Config file:      %s", path)

			return nil
		},
	}
}

func newClearCommand(opts *root.Options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the saved configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := opts.View()

			if !force {
				fmt.Fprint(opts.Stdout, "This will remove the saved configuration. Continue? [y/N]: ")
				var response string
				_, _ = fmt.Fscanln(opts.Stdin, &response)
				response = strings.TrimSpace(strings.ToLower(response))
				if response != "y" && response != "yes" {
					v.Info("Cancelled.")
					return nil
				}
			}

			if err := config.Clear(); err != nil {
				return fmt.Errorf("failed to clear configuration: %w", err)
			}

			v.Success("configuration cleared")
			v.Info("Run 'pinads init' to reconfigure. Tokens in the environment are untouched.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

func credentialStatus(value, envVar string) string {
	if value != "" {
		return "Set (" + envVar + ")"
	}
	return "Not set"
}

// clientIDStatus masks the client id for display.
func clientIDStatus(clientID string) string {
	if clientID == "" {
		return "Not set"
	}
	if len(clientID) <= 8 {
		return "********"
	}
	return clientID[:4] + "********" + clientID[len(clientID)-4:]
}
