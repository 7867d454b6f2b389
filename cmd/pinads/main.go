// Package main is the entry point for the pinads CLI.
package main

import (
	"fmt"
	"os"

	"github.com/open-cli-collective/pinterest-ads-cli/api"
	"github.com/open-cli-collective/pinterest-ads-cli/internal/cmd/apicmd"
	"github.com/open-cli-collective/pinterest-ads-cli/internal/cmd/authcmd"
	"github.com/open-cli-collective/pinterest-ads-cli/internal/cmd/completion"
	"github.com/open-cli-collective/pinterest-ads-cli/internal/cmd/configcmd"
	"github.com/open-cli-collective/pinterest-ads-cli/internal/cmd/initcmd"
	"github.com/open-cli-collective/pinterest-ads-cli/internal/cmd/rawcmd"
	"github.com/open-cli-collective/pinterest-ads-cli/internal/cmd/root"
	"github.com/open-cli-collective/pinterest-ads-cli/internal/cmd/schemacmd"
)

// Exit codes
const (
	exitOK         = 0
	exitError      = 1
	exitInput      = 2
	exitCredential = 3
	exitAPI        = 4
	exitTimeout    = 5
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitOK)
}

func run() error {
	rootCmd, opts := root.NewCmd()

	// Resource and operation commands come from the embedded tree.
	if err := apicmd.Register(rootCmd, opts); err != nil {
		return err
	}

	root.RegisterCommands(rootCmd, opts,
		schemacmd.Register,
		rawcmd.Register,
		authcmd.Register,
		initcmd.Register,
		configcmd.Register,
		completion.Register,
	)

	return rootCmd.Execute()
}

// exitCode maps an error to the process exit code. Input and
// credential problems are distinguishable from API rejections so
// scripts can tell a local mistake from a remote one.
func exitCode(err error) int {
	switch {
	case api.IsMissingCredential(err):
		return exitCredential
	case api.IsPollTimeout(err):
		return exitTimeout
	case api.IsInputError(err):
		return exitInput
	}

	if _, ok := api.IsAPIError(err); ok {
		return exitAPI
	}

	return exitError
}
