package api

// Param locations as they appear in the command tree document.
const (
	InPath  = "path"
	InQuery = "query"
)

// Security scheme names declared by operations in the command tree.
const (
	SchemeOAuth      = "pinterest_oauth2"
	SchemeBasic      = "basic"
	SchemeConversion = "conversion_token"
)

// Tree is the full command tree: every callable operation of the API,
// grouped by resource. It is generated from the OpenAPI description and
// embedded into the binary; after loading it is never mutated.
type Tree struct {
	Version    int        `json:"version"`
	APIVersion string     `json:"api_version"`
	BaseURL    string     `json:"base_url"`
	Resources  []Resource `json:"resources"`
}

// Resource is a group of operations sharing a top-level command name
// (e.g. "campaigns", "boards").
type Resource struct {
	Name string      `json:"name"`
	Ops  []Operation `json:"ops"`
}

// Operation describes one callable endpoint: HTTP method, URL path
// template, declared parameters, auth requirement, and whether the
// response is a bookmark-paginated list.
type Operation struct {
	Name        string                `json:"name"`
	Method      string                `json:"method"`
	Path        string                `json:"path"`
	Summary     string                `json:"summary,omitempty"`
	Paginated   bool                  `json:"paginated"`
	Security    []map[string][]string `json:"security"`
	Params      []Param               `json:"params"`
	RequestBody *RequestBody          `json:"request_body,omitempty"`
}

// Param describes one declared parameter of an operation.
type Param struct {
	Name       string `json:"name"`
	Flag       string `json:"flag"`
	In         string `json:"in"`
	Required   bool   `json:"required"`
	SchemaType string `json:"schema_type"`
	ItemsType  string `json:"items_type,omitempty"`
}

// RequestBody describes an operation's request body requirement.
type RequestBody struct {
	Required     bool     `json:"required"`
	ContentTypes []string `json:"content_types"`
}

// HasScheme reports whether the operation declares the given security
// scheme in any of its security requirements.
func (o *Operation) HasScheme(scheme string) bool {
	for _, req := range o.Security {
		if _, ok := req[scheme]; ok {
			return true
		}
	}
	return false
}

// PathParams returns the operation's declared path parameters.
func (o *Operation) PathParams() []Param {
	return o.paramsIn(InPath)
}

// QueryParams returns the operation's declared query parameters.
func (o *Operation) QueryParams() []Param {
	return o.paramsIn(InQuery)
}

func (o *Operation) paramsIn(location string) []Param {
	var out []Param
	for _, p := range o.Params {
		if p.In == location {
			out = append(out, p)
		}
	}
	return out
}

// LookupParam returns the declared parameter with the given name.
func (o *Operation) LookupParam(name string) (Param, bool) {
	for _, p := range o.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// AcceptsJSONBody reports whether the operation takes a JSON request body.
func (o *Operation) AcceptsJSONBody() bool {
	return o.acceptsContentType("application/json")
}

// AcceptsFormBody reports whether the operation takes a form-encoded
// request body.
func (o *Operation) AcceptsFormBody() bool {
	return o.acceptsContentType("application/x-www-form-urlencoded")
}

func (o *Operation) acceptsContentType(ct string) bool {
	if o.RequestBody == nil {
		return false
	}
	for _, c := range o.RequestBody.ContentTypes {
		if c == ct {
			return true
		}
	}
	return false
}
