// Package schemacmd provides the discovery commands: list, describe,
// and tree. They read the command tree only and never touch the
// network.
package schemacmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/pinterest-ads-cli/api"
	"github.com/open-cli-collective/pinterest-ads-cli/internal/cmd/root"
)

// Register registers the discovery commands with the root command.
func Register(parent *cobra.Command, opts *root.Options) {
	parent.AddCommand(newListCommand(opts))
	parent.AddCommand(newDescribeCommand(opts))
	parent.AddCommand(newTreeCommand(opts))
}

func newListCommand(opts *root.Options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List resources and operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := opts.Tree()
			if err != nil {
				return err
			}

			v := opts.View()

			if asJSON {
				type entry struct {
					Resource string   `json:"resource"`
					Ops      []string `json:"ops"`
				}
				out := make([]entry, 0, len(tree.Resources))
				for _, res := range tree.Resources {
					e := entry{Resource: res.Name}
					for _, op := range res.Ops {
						e.Ops = append(e.Ops, op.Name)
					}
					out = append(out, e)
				}
				return v.JSON(out)
			}

			headers := []string{"RESOURCE", "OPERATION", "METHOD", "PATH"}
			var rows [][]string
			for _, res := range tree.Resources {
				for _, op := range res.Ops {
					rows = append(rows, []string{res.Name, op.Name, op.Method, op.Path})
				}
			}
			return v.Table(headers, rows)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit machine-readable JSON")

	return cmd
}

func newDescribeCommand(opts *root.Options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "describe <resource> <operation>",
		Short: "Describe a specific operation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := opts.Tree()
			if err != nil {
				return err
			}

			op, err := tree.Describe(args[0], args[1])
			if err != nil {
				return err
			}

			v := opts.View()

			if asJSON {
				return v.JSON(op)
			}

			v.Info("%s %s", args[0], op.Name)
			v.Info("  method: %s", op.Method)
			v.Info("  path: %s", op.Path)
			v.Info("  paginated: %t", op.Paginated)

			if len(op.Security) > 0 {
				var schemes []string
				for _, req := range op.Security {
					for scheme := range req {
						schemes = append(schemes, scheme)
					}
				}
				v.Info("  auth: %v", schemes)
			}

			if op.RequestBody != nil {
				v.Info("  request_body: required=%t (%v)", op.RequestBody.Required, op.RequestBody.ContentTypes)
			}

			if len(op.Params) > 0 {
				v.Info("  params:")
				for _, p := range op.Params {
					v.Info("    --%s  %s (%s, required=%t)", p.Flag, paramType(p), p.In, p.Required)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit machine-readable JSON")

	return cmd
}

func paramType(p api.Param) string {
	if p.SchemaType == "array" && p.ItemsType != "" {
		return fmt.Sprintf("array of %s", p.ItemsType)
	}
	return p.SchemaType
}

func newTreeCommand(opts *root.Options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the full command tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := opts.Tree()
			if err != nil {
				return err
			}

			v := opts.View()

			if asJSON {
				return v.JSON(tree)
			}

			v.Info("api version %s, base url %s (%d resources)", tree.APIVersion, tree.BaseURL, len(tree.Resources))
			v.Info("Run with --json for machine-readable output.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit machine-readable JSON")

	return cmd
}
