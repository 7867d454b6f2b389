// Package apicmd builds the resource and operation commands from the
// command tree. Every API endpoint becomes '<resource> <operation>'
// with one flag per declared parameter; nothing here is written per
// endpoint.
package apicmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/pinterest-ads-cli/api"
	"github.com/open-cli-collective/pinterest-ads-cli/internal/cmd/mediacmd"
	"github.com/open-cli-collective/pinterest-ads-cli/internal/cmd/root"
	"github.com/open-cli-collective/pinterest-ads-cli/internal/sources"
)

// Register adds one command per resource in the tree, each with one
// subcommand per operation.
func Register(parent *cobra.Command, opts *root.Options) error {
	tree, err := opts.Tree()
	if err != nil {
		return err
	}

	for i := range tree.Resources {
		res := &tree.Resources[i]

		resCmd := &cobra.Command{
			Use:   res.Name,
			Short: "Operations on " + res.Name,
		}

		for j := range res.Ops {
			resCmd.AddCommand(newOpCommand(opts, &res.Ops[j]))
		}

		if res.Name == "media" {
			resCmd.AddCommand(mediacmd.NewUploadCommand(opts))
		}

		parent.AddCommand(resCmd)
	}

	return nil
}

func newOpCommand(opts *root.Options, op *api.Operation) *cobra.Command {
	cmd := &cobra.Command{
		Use:   op.Name,
		Short: op.Summary,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildRequest(cmd, op)
			if err != nil {
				return err
			}
			return runOp(cmd.Context(), opts, op, req)
		},
	}

	for _, p := range op.Params {
		usage := fmt.Sprintf("%s parameter (%s)", p.In, paramTypeName(p))
		if p.Required && p.Name != api.AdAccountParam {
			usage += " (required)"
		}
		if p.SchemaType == "array" {
			cmd.Flags().StringArray(p.Flag, nil, usage)
		} else {
			cmd.Flags().String(p.Flag, "", usage)
		}
	}

	cmd.Flags().String("params", "", "JSON object of query parameters")
	if op.RequestBody != nil {
		if op.AcceptsJSONBody() {
			cmd.Flags().String("body", "", "JSON request body (inline, @FILE, file://, http(s)://, or s3://)")
		}
		if op.AcceptsFormBody() {
			cmd.Flags().String("form", "", "Form body as a JSON object (inline or source)")
		}
	}

	return cmd
}

func paramTypeName(p api.Param) string {
	if p.SchemaType == "array" {
		if p.ItemsType != "" {
			return "array of " + p.ItemsType
		}
		return "array"
	}
	return p.SchemaType
}

// buildRequest collects flag values into a dispatch request.
func buildRequest(cmd *cobra.Command, op *api.Operation) (api.Request, error) {
	req := api.Request{Params: map[string][]string{}}
	flags := cmd.Flags()

	for _, p := range op.Params {
		if !flags.Changed(p.Flag) {
			continue
		}
		if p.SchemaType == "array" {
			vals, err := flags.GetStringArray(p.Flag)
			if err != nil {
				return req, err
			}
			req.Params[p.Name] = vals
		} else {
			val, err := flags.GetString(p.Flag)
			if err != nil {
				return req, err
			}
			req.Params[p.Name] = []string{val}
		}
	}

	if flags.Changed("params") {
		raw, _ := flags.GetString("params")
		req.ParamsJSON = []byte(raw)
	}

	ctx := cmd.Context()

	if op.AcceptsJSONBody() && flags.Changed("body") {
		raw, _ := flags.GetString("body")
		body, err := sources.Read(ctx, raw)
		if err != nil {
			return req, err
		}
		req.Body = body
	}

	if op.AcceptsFormBody() && flags.Changed("form") {
		raw, _ := flags.GetString("form")
		text, err := sources.Read(ctx, raw)
		if err != nil {
			return req, err
		}
		form, err := api.ValuesFromJSON(text)
		if err != nil {
			return req, err
		}
		req.Form = form
	}

	return req, nil
}

func runOp(ctx context.Context, opts *root.Options, op *api.Operation, req api.Request) error {
	client, err := opts.APIClient()
	if err != nil {
		return err
	}
	creds, err := opts.Credentials()
	if err != nil {
		return err
	}

	v := opts.View()

	if opts.All && op.Paginated && op.Method == http.MethodGet {
		items, err := client.Paginate(ctx, op, req, creds, opts.PageOptions())
		if err != nil {
			return err
		}
		if items == nil {
			items = []json.RawMessage{}
		}
		merged, err := json.Marshal(map[string][]json.RawMessage{"items": items})
		if err != nil {
			return err
		}
		return v.RawJSON(output(merged, opts.RawOutput))
	}

	resp, err := client.Dispatch(ctx, op, req, creds)
	if err != nil {
		return err
	}

	return v.RawJSON(output(resp, opts.RawOutput))
}

// output unwraps the items[] envelope from list responses unless the
// caller asked for the raw response.
func output(resp json.RawMessage, raw bool) json.RawMessage {
	if raw {
		return resp
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(resp, &envelope); err == nil {
		if items, ok := envelope["items"]; ok {
			return items
		}
	}
	return resp
}

