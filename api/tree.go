package api

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

// command_tree.json is generated from the Pinterest OpenAPI
// description. Do not edit it by hand.
//
//go:embed command_tree.json
var commandTreeJSON []byte

// NotFoundError is returned when a command path does not resolve to an
// operation in the tree. It is the only error the tree can produce.
type NotFoundError struct {
	Path []string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown command: %s", strings.Join(e.Path, " "))
}

// LoadTree parses the embedded command tree document.
func LoadTree() (*Tree, error) {
	return ParseTree(commandTreeJSON)
}

// ParseTree parses a command tree document. Exposed separately so tests
// can load fixture trees.
func ParseTree(data []byte) (*Tree, error) {
	var tree Tree
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to parse command tree: %w", err)
	}
	return &tree, nil
}

// Resolve returns the operation for the given resource and operation
// names. Matching is case-sensitive and exact.
func (t *Tree) Resolve(resource, op string) (*Operation, error) {
	for i := range t.Resources {
		r := &t.Resources[i]
		if r.Name != resource {
			continue
		}
		for j := range r.Ops {
			if r.Ops[j].Name == op {
				return &r.Ops[j], nil
			}
		}
		break
	}
	return nil, &NotFoundError{Path: []string{resource, op}}
}

// Describe is an alias for Resolve, named for the discovery commands.
func (t *Tree) Describe(resource, op string) (*Operation, error) {
	return t.Resolve(resource, op)
}

// Lookup returns the resource with the given name.
func (t *Tree) Lookup(resource string) (*Resource, bool) {
	for i := range t.Resources {
		if t.Resources[i].Name == resource {
			return &t.Resources[i], true
		}
	}
	return nil, false
}
