package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// bookmarkParam is the query parameter carrying the page cursor.
const bookmarkParam = "bookmark"

// PageOptions bounds an auto-paginated fetch. Zero values mean
// unbounded.
type PageOptions struct {
	// MaxItems caps the total number of items yielded. The final page
	// is truncated so the result never exceeds it.
	MaxItems int

	// MaxPages caps the number of dispatch calls as a safety bound.
	MaxPages int
}

// page is the envelope shape of every bookmark-paginated response.
type page struct {
	Items    []json.RawMessage `json:"items"`
	Bookmark string            `json:"bookmark"`
}

// Paginate follows the bookmark cursor across successive calls to a
// list operation and merges the pages into one item sequence. Calls
// are strictly sequential: each request depends on the cursor returned
// by the previous one.
//
// On a mid-stream error the items gathered so far are returned
// together with the error, so callers can distinguish "done" from
// "failed partway".
func (c *Client) Paginate(ctx context.Context, op *Operation, req Request, creds Credentials, opts PageOptions) ([]json.RawMessage, error) {
	if op.Method != http.MethodGet {
		return nil, fmt.Errorf("%w: auto-pagination only supported for GET operations", ErrInvalidParam)
	}

	// An explicit bookmark seeds the cursor; each page request carries
	// at most one cursor value, the most recently observed.
	var cursor string
	if vals := req.Params[bookmarkParam]; len(vals) > 0 {
		cursor = vals[0]
	}

	var items []json.RawMessage
	pages := 0

	for {
		if err := ctx.Err(); err != nil {
			return items, err
		}

		pages++
		if opts.MaxPages > 0 && pages > opts.MaxPages {
			return items, nil
		}

		pageReq := req
		pageReq.Params = cloneParams(req.Params)
		delete(pageReq.Params, bookmarkParam)
		if cursor != "" {
			pageReq.Params[bookmarkParam] = []string{cursor}
		}

		resp, err := c.Dispatch(ctx, op, pageReq, creds)
		if err != nil {
			return items, fmt.Errorf("pagination aborted on page %d: %w", pages, err)
		}

		var pg page
		if err := json.Unmarshal(resp, &pg); err != nil {
			return items, fmt.Errorf("pagination aborted on page %d: expected paginated response with items[]: %w", pages, err)
		}

		for _, item := range pg.Items {
			items = append(items, item)
			if opts.MaxItems > 0 && len(items) >= opts.MaxItems {
				return items, nil
			}
		}

		if pg.Bookmark == "" {
			return items, nil
		}
		cursor = pg.Bookmark
	}
}

func cloneParams(params map[string][]string) map[string][]string {
	out := make(map[string][]string, len(params))
	for k, v := range params {
		out[k] = v
	}
	return out
}
