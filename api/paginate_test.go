package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pageServer serves a fixed sequence of bookmark pages and records the
// cursor each request carried.
type pageServer struct {
	mu       sync.Mutex
	pages    []string
	cursors  []string
	requests int
}

func (s *pageServer) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.cursors = append(s.cursors, r.URL.Query().Get("bookmark"))
		if s.requests >= len(s.pages) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"code": 0, "message": "no more pages"}`))
			return
		}
		w.Write([]byte(s.pages[s.requests]))
		s.requests++
	}
}

func listOp(t *testing.T) *Operation {
	t.Helper()
	op, err := fixtureTree(t).Resolve("boards", "list")
	require.NoError(t, err)
	return op
}

func TestPaginate(t *testing.T) {
	server := &pageServer{pages: []string{
		`{"items": [{"id": "1"}, {"id": "2"}], "bookmark": "pageB"}`,
		`{"items": [{"id": "3"}], "bookmark": "pageC"}`,
		`{"items": [{"id": "4"}], "bookmark": ""}`,
	}}
	client, _ := testClient(t, server.handler())

	op := listOp(t)
	items, err := client.Paginate(context.Background(), op, Request{}, Credentials{AccessToken: "tok"}, PageOptions{})
	require.NoError(t, err)

	require.Len(t, items, 4)
	assert.JSONEq(t, `{"id": "1"}`, string(items[0]))
	assert.JSONEq(t, `{"id": "4"}`, string(items[3]))

	// Each request carries exactly the cursor from the previous page.
	assert.Equal(t, []string{"", "pageB", "pageC"}, server.cursors)
}

func TestPaginate_SeedBookmark(t *testing.T) {
	server := &pageServer{pages: []string{
		`{"items": [{"id": "5"}], "bookmark": ""}`,
	}}
	client, _ := testClient(t, server.handler())

	op := listOp(t)
	items, err := client.Paginate(context.Background(), op, Request{
		Params: map[string][]string{"bookmark": {"resume-here"}},
	}, Credentials{AccessToken: "tok"}, PageOptions{})
	require.NoError(t, err)

	assert.Len(t, items, 1)
	assert.Equal(t, []string{"resume-here"}, server.cursors)
}

func TestPaginate_MaxItems(t *testing.T) {
	server := &pageServer{pages: []string{
		`{"items": [{"id": "1"}, {"id": "2"}, {"id": "3"}], "bookmark": "next"}`,
		`{"items": [{"id": "4"}], "bookmark": ""}`,
	}}
	client, _ := testClient(t, server.handler())

	op := listOp(t)
	items, err := client.Paginate(context.Background(), op, Request{}, Credentials{AccessToken: "tok"}, PageOptions{MaxItems: 2})
	require.NoError(t, err)

	// Truncated mid-page, and the second page is never fetched.
	assert.Len(t, items, 2)
	assert.Equal(t, 1, server.requests)
}

func TestPaginate_MaxPages(t *testing.T) {
	server := &pageServer{pages: []string{
		`{"items": [{"id": "1"}], "bookmark": "b"}`,
		`{"items": [{"id": "2"}], "bookmark": "c"}`,
		`{"items": [{"id": "3"}], "bookmark": "d"}`,
	}}
	client, _ := testClient(t, server.handler())

	op := listOp(t)
	items, err := client.Paginate(context.Background(), op, Request{}, Credentials{AccessToken: "tok"}, PageOptions{MaxPages: 2})
	require.NoError(t, err)

	assert.Len(t, items, 2)
	assert.Equal(t, 2, server.requests)
}

func TestPaginate_PartialResultsOnError(t *testing.T) {
	server := &pageServer{pages: []string{
		`{"items": [{"id": "1"}, {"id": "2"}], "bookmark": "pageB"}`,
	}}
	client, _ := testClient(t, server.handler())

	op := listOp(t)
	items, err := client.Paginate(context.Background(), op, Request{}, Credentials{AccessToken: "tok"}, PageOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pagination aborted on page 2")

	apiErr, ok := IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)

	// The first page's items survive the failure.
	assert.Len(t, items, 2)
}

func TestPaginate_NonGETRejected(t *testing.T) {
	client := &Client{BaseURL: "https://api.pinterest.com/v5"}

	op := &Operation{Name: "create", Method: http.MethodPost, Path: "/boards", Paginated: true}
	_, err := client.Paginate(context.Background(), op, Request{}, Credentials{}, PageOptions{})
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestPaginate_ContextCancelled(t *testing.T) {
	server := &pageServer{pages: []string{
		`{"items": [{"id": "1"}], "bookmark": "b"}`,
	}}
	client, _ := testClient(t, server.handler())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	op := listOp(t)
	_, err := client.Paginate(ctx, op, Request{}, Credentials{AccessToken: "tok"}, PageOptions{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, server.requests)
}

func TestPaginate_NonPaginatedResponse(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[1, 2, 3]`)
	}))

	op := listOp(t)
	_, err := client.Paginate(context.Background(), op, Request{}, Credentials{AccessToken: "tok"}, PageOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "items[]")
}
