// Package root provides the root command and global options.
package root

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/open-cli-collective/pinterest-ads-cli/api"
	"github.com/open-cli-collective/pinterest-ads-cli/api/media"
	"github.com/open-cli-collective/pinterest-ads-cli/internal/config"
	"github.com/open-cli-collective/pinterest-ads-cli/internal/version"
	"github.com/open-cli-collective/pinterest-ads-cli/internal/view"
)

// Options contains global options for commands.
type Options struct {
	// Output
	Pretty    bool
	RawOutput bool
	NoColor   bool
	Debug     bool

	// Credential and endpoint overrides (flags win over env/config file)
	AccessToken     string
	ClientID        string
	ClientSecret    string
	ConversionToken string
	AdAccountID     string
	BaseURL         string
	Timeout         time.Duration

	// Pagination
	All      bool
	MaxItems int
	MaxPages int

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// testClient is used for testing; if set, APIClient() returns this instead
	testClient *api.Client
	// testTree is used for testing; if set, Tree() returns this instead
	testTree *api.Tree

	tree   *api.Tree
	logger *zap.Logger
}

// View returns a configured View instance
func (o *Options) View() *view.View {
	v := view.New(o.Pretty, o.NoColor)
	v.Out = o.Stdout
	v.Err = o.Stderr
	return v
}

// Logger returns the process logger: a development logger under
// --debug, a nop logger otherwise.
func (o *Options) Logger() *zap.Logger {
	if o.logger == nil {
		if o.Debug {
			o.logger = zap.Must(zap.NewDevelopment())
		} else {
			o.logger = zap.NewNop()
		}
	}
	return o.logger
}

// Tree returns the command tree, loading the embedded document once.
func (o *Options) Tree() (*api.Tree, error) {
	if o.testTree != nil {
		return o.testTree, nil
	}
	if o.tree == nil {
		tree, err := api.LoadTree()
		if err != nil {
			return nil, err
		}
		o.tree = tree
	}
	return o.tree, nil
}

// SetTree sets a test command tree (for testing only)
func (o *Options) SetTree(tree *api.Tree) {
	o.testTree = tree
}

// Config loads the merged file/env configuration and applies flag
// overrides. The result is the immutable snapshot for this invocation.
func (o *Options) Config() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if o.AccessToken != "" {
		cfg.AccessToken = o.AccessToken
	}
	if o.ClientID != "" {
		cfg.ClientID = o.ClientID
	}
	if o.ClientSecret != "" {
		cfg.ClientSecret = o.ClientSecret
	}
	if o.ConversionToken != "" {
		cfg.ConversionToken = o.ConversionToken
	}
	if o.AdAccountID != "" {
		cfg.AdAccountID = o.AdAccountID
	}
	if o.BaseURL != "" {
		cfg.BaseURL = o.BaseURL
	}

	return cfg, nil
}

// Credentials returns the credential snapshot for this invocation.
func (o *Options) Credentials() (api.Credentials, error) {
	cfg, err := o.Config()
	if err != nil {
		return api.Credentials{}, err
	}

	return api.Credentials{
		AccessToken:     cfg.AccessToken,
		ConversionToken: cfg.ConversionToken,
		ClientID:        cfg.ClientID,
		ClientSecret:    cfg.ClientSecret,
		AdAccountID:     cfg.AdAccountID,
	}, nil
}

// APIClient creates a new API client from config
func (o *Options) APIClient() (*api.Client, error) {
	if o.testClient != nil {
		return o.testClient, nil
	}

	cfg, err := o.Config()
	if err != nil {
		return nil, err
	}

	return api.New(api.ClientConfig{
		BaseURL: cfg.BaseURL,
		Timeout: o.Timeout,
		Logger:  o.Logger(),
	})
}

// SetAPIClient sets a test client (for testing only)
func (o *Options) SetAPIClient(client *api.Client) {
	o.testClient = client
}

// MediaClient creates a new media upload client from config
func (o *Options) MediaClient() (*media.Client, error) {
	client, err := o.APIClient()
	if err != nil {
		return nil, err
	}

	creds, err := o.Credentials()
	if err != nil {
		return nil, err
	}

	return media.New(client, creds)
}

// PageOptions returns the pagination bounds from the global flags.
func (o *Options) PageOptions() api.PageOptions {
	return api.PageOptions{
		MaxItems: o.MaxItems,
		MaxPages: o.MaxPages,
	}
}

// NewCmd creates the root command and returns the options struct
func NewCmd() (*cobra.Command, *Options) {
	opts := &Options{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	cmd := &cobra.Command{
		Use:   "pinads",
		Short: "A CLI for the Pinterest API",
		Long: `pinads is a command-line interface for the Pinterest REST API.

Every API operation is available as '<resource> <operation>'; the
command set is generated from the API description. Run 'pinads list'
to see what is available and 'pinads describe <resource> <op>' for
the parameters of one operation.`,
		Version:       version.Info(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags - bound to opts struct
	cmd.PersistentFlags().StringVar(&opts.AccessToken, "access-token", "", "Bearer access token (env: PINTEREST_ACCESS_TOKEN)")
	cmd.PersistentFlags().StringVar(&opts.ClientID, "client-id", "", "OAuth client id / app id (env: PINTEREST_CLIENT_ID)")
	cmd.PersistentFlags().StringVar(&opts.ClientSecret, "client-secret", "", "OAuth client secret (env: PINTEREST_CLIENT_SECRET)")
	cmd.PersistentFlags().StringVar(&opts.ConversionToken, "conversion-token", "", "Conversions API token (env: PINTEREST_CONVERSION_TOKEN)")
	cmd.PersistentFlags().StringVar(&opts.AdAccountID, "ad-account-id", "", "Default ad account id (env: PINTEREST_AD_ACCOUNT_ID)")
	cmd.PersistentFlags().StringVar(&opts.BaseURL, "base-url", "", "API base URL (env: PINTEREST_BASE_URL)")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 0, "HTTP timeout (e.g. 30s)")
	cmd.PersistentFlags().BoolVar(&opts.Pretty, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().BoolVar(&opts.RawOutput, "raw", false, "Return full API response (do not unwrap items[])")
	cmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false, "Disable colored output")
	cmd.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVar(&opts.All, "all", false, "Auto-paginate bookmark-based endpoints")
	cmd.PersistentFlags().IntVar(&opts.MaxItems, "max-items", 0, "Max items to fetch when --all")
	cmd.PersistentFlags().IntVar(&opts.MaxPages, "max-pages", 0, "Max pages to fetch when --all")

	return cmd, opts
}

// RegisterCommands registers subcommands with the root command
func RegisterCommands(root *cobra.Command, opts *Options, registrars ...func(*cobra.Command, *Options)) {
	for _, register := range registrars {
		register(root, opts)
	}
}
