package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// AdAccountParam is the path parameter that falls back to the
// configured default ad account id when omitted.
const AdAccountParam = "ad_account_id"

// Request carries the raw CLI input for one dispatch: declared
// parameter values keyed by parameter name, an optional JSON object of
// query parameters, and an optional JSON or form body.
type Request struct {
	// Params holds values for declared parameters, keyed by name.
	// Array-typed parameters may carry multiple values.
	Params map[string][]string

	// ParamsJSON is an optional JSON object supplying query parameters
	// in bulk. Keys must match declared query parameters.
	ParamsJSON []byte

	// Body is the JSON request body, already read from its source.
	Body []byte

	// Form is the form-encoded request body.
	Form url.Values
}

// BuildPlan resolves a request against an operation descriptor into a
// fully-formed plan. All validation errors are returned before any
// network call is made.
func (c *Client) BuildPlan(op *Operation, req Request, creds Credentials) (*Plan, error) {
	for name := range req.Params {
		if _, ok := op.LookupParam(name); !ok {
			return nil, fmt.Errorf("%w: unknown parameter %q", ErrInvalidParam, name)
		}
	}

	path, err := buildPath(op, req, creds)
	if err != nil {
		return nil, err
	}

	query, err := buildQuery(op, req)
	if err != nil {
		return nil, err
	}

	body, contentType, err := buildBody(op, req)
	if err != nil {
		return nil, err
	}

	auth, err := SelectAuth(op, creds)
	if err != nil {
		return nil, err
	}

	return &Plan{
		Method:      op.Method,
		URL:         c.buildURL(path),
		Query:       query,
		Body:        body,
		ContentType: contentType,
		Auth:        auth,
	}, nil
}

// Dispatch builds and executes one request against an operation.
func (c *Client) Dispatch(ctx context.Context, op *Operation, req Request, creds Credentials) (json.RawMessage, error) {
	plan, err := c.BuildPlan(op, req, creds)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, plan)
}

func buildPath(op *Operation, req Request, creds Credentials) (string, error) {
	path := op.Path

	for _, p := range op.PathParams() {
		var value string
		if vals := req.Params[p.Name]; len(vals) > 0 {
			value = vals[0]
		} else if p.Name == AdAccountParam {
			value = creds.AdAccountID
		}

		if value == "" {
			return "", fmt.Errorf("%w: %s", ErrMissingParam, p.Name)
		}

		path = strings.ReplaceAll(path, "{"+p.Name+"}", url.PathEscape(value))
	}

	if strings.Contains(path, "{") {
		return "", fmt.Errorf("%w: unresolved path template %s", ErrMissingParam, op.Path)
	}

	return path, nil
}

func buildQuery(op *Operation, req Request) (url.Values, error) {
	query, err := parseParamsJSON(op, req.ParamsJSON)
	if err != nil {
		return nil, err
	}

	for _, p := range op.QueryParams() {
		vals, ok := req.Params[p.Name]
		if !ok || len(vals) == 0 {
			continue
		}

		// Individual flags replace any value supplied via --params.
		query.Del(p.Name)
		for _, v := range vals {
			coerced, err := coerceValue(p, v)
			if err != nil {
				return nil, err
			}
			query.Add(p.Name, coerced)
		}
	}

	for _, p := range op.QueryParams() {
		if p.Required && len(query[p.Name]) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingParam, p.Name)
		}
	}

	return query, nil
}

// parseParamsJSON expands a JSON object into query parameters,
// rejecting keys that are not declared query parameters.
func parseParamsJSON(op *Operation, raw []byte) (url.Values, error) {
	query := url.Values{}
	if len(raw) == 0 {
		return query, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: --params must be a JSON object", ErrInvalidParam)
	}

	for key, val := range obj {
		p, ok := op.LookupParam(key)
		if !ok || p.In != InQuery {
			return nil, fmt.Errorf("%w: unknown parameter %q", ErrInvalidParam, key)
		}

		values, err := jsonQueryValues(val)
		if err != nil {
			return nil, fmt.Errorf("%w: parameter %q: %v", ErrInvalidParam, key, err)
		}
		for _, v := range values {
			coerced, err := coerceValue(p, v)
			if err != nil {
				return nil, err
			}
			query.Add(key, coerced)
		}
	}

	return query, nil
}

// jsonQueryValues flattens a JSON value into one or more query values.
func jsonQueryValues(raw json.RawMessage) ([]string, error) {
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err == nil {
		out := make([]string, 0, len(arr))
		for _, item := range arr {
			s, err := jsonScalarString(item)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	}

	s, err := jsonScalarString(raw)
	if err != nil {
		return nil, err
	}
	return []string{s}, nil
}

func jsonScalarString(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return "", fmt.Errorf("nested values are not supported")
	}
	return trimmed, nil
}

// coerceValue validates a raw value against the parameter's declared
// JSON type and returns its wire representation.
func coerceValue(p Param, value string) (string, error) {
	schemaType := p.SchemaType
	if schemaType == "array" {
		schemaType = p.ItemsType
	}

	switch schemaType {
	case "integer":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return "", fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidParam, p.Name, value)
		}
		return strconv.FormatInt(n, 10), nil
	case "number":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return "", fmt.Errorf("%w: %s must be a number, got %q", ErrInvalidParam, p.Name, value)
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	case "boolean":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return "", fmt.Errorf("%w: %s must be true or false, got %q", ErrInvalidParam, p.Name, value)
		}
		return strconv.FormatBool(b), nil
	default:
		return value, nil
	}
}

// ValuesFromJSON converts a flat JSON object into URL or form values.
// Arrays become repeated values; nested objects are rejected. Used for
// --form bodies and for the raw command's unvalidated --params.
func ValuesFromJSON(raw []byte) (url.Values, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrInvalidParam)
	}

	values := url.Values{}
	for key, val := range obj {
		flattened, err := jsonQueryValues(val)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %v", ErrInvalidParam, key, err)
		}
		for _, v := range flattened {
			values.Add(key, v)
		}
	}

	return values, nil
}

func buildBody(op *Operation, req Request) (body []byte, contentType string, err error) {
	hasBody := len(req.Body) > 0
	hasForm := len(req.Form) > 0

	if op.RequestBody == nil {
		if hasBody || hasForm {
			return nil, "", fmt.Errorf("%w: operation does not accept a request body", ErrInvalidParam)
		}
		return nil, "", nil
	}

	if op.AcceptsJSONBody() {
		if !hasBody {
			if op.RequestBody.Required {
				return nil, "", fmt.Errorf("%w: --body", ErrMissingParam)
			}
			return nil, "", nil
		}
		if !json.Valid(req.Body) {
			return nil, "", ErrMalformedBody
		}
		return req.Body, "application/json", nil
	}

	if op.AcceptsFormBody() {
		if !hasForm {
			if op.RequestBody.Required {
				return nil, "", fmt.Errorf("%w: --form", ErrMissingParam)
			}
			return nil, "", nil
		}
		return []byte(req.Form.Encode()), "application/x-www-form-urlencoded", nil
	}

	return nil, "", fmt.Errorf("%w: unsupported request content types: %s",
		ErrInvalidParam, strings.Join(op.RequestBody.ContentTypes, ", "))
}
