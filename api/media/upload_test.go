package media

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/pinterest-ads-cli/api"
)

// mediaServer fakes the register, upload, and status endpoints.
type mediaServer struct {
	mu sync.Mutex

	registerStatus int
	uploadStatus   int
	statuses       []string

	uploads     int
	statusPolls int
	lastUpload  struct {
		fileName string
		fields   map[string][]string
	}
}

func (s *mediaServer) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /media", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.registerStatus != 0 {
			w.WriteHeader(s.registerStatus)
			w.Write([]byte(`{"code": 0, "message": "register failed"}`))
			return
		}
		fmt.Fprintf(w, `{
			"media_id": "mid-1",
			"media_type": "image",
			"upload_url": "http://%s/upload",
			"upload_parameters": {"key": "uploads/mid-1", "policy": "signed"}
		}`, r.Host)
	})

	mux.HandleFunc("POST /upload", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.uploads++
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		s.lastUpload.fields = r.MultipartForm.Value
		if files := r.MultipartForm.File["file"]; len(files) > 0 {
			s.lastUpload.fileName = files[0].Filename
		}
		if s.uploadStatus != 0 {
			w.WriteHeader(s.uploadStatus)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /media/mid-1", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		status := s.statuses[len(s.statuses)-1]
		if s.statusPolls < len(s.statuses) {
			status = s.statuses[s.statusPolls]
		}
		s.statusPolls++
		fmt.Fprintf(w, `{"media_id": "mid-1", "media_type": "image", "status": %q}`, status)
	})

	return mux
}

func newTestClient(t *testing.T, srv *mediaServer) *Client {
	t.Helper()
	server := httptest.NewServer(srv.handler())
	t.Cleanup(server.Close)

	apiClient, err := api.New(api.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})
	require.NoError(t, err)

	client, err := New(apiClient, api.Credentials{AccessToken: "tok"})
	require.NoError(t, err)
	return client
}

func tempMediaFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "photo.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpegbytes"), 0600))
	return path
}

func fastPoll() PollConfig {
	return PollConfig{Interval: time.Millisecond, MaxAttempts: 5}
}

func TestNew_RequiresAccessToken(t *testing.T) {
	apiClient, err := api.New(api.ClientConfig{})
	require.NoError(t, err)

	_, err = New(apiClient, api.Credentials{})
	assert.True(t, api.IsMissingCredential(err))
}

func TestUpload_NoWait(t *testing.T) {
	srv := &mediaServer{statuses: []string{"registered"}}
	client := newTestClient(t, srv)

	job, err := client.Upload(context.Background(), UploadConfig{
		MediaType: "image",
		FilePath:  tempMediaFile(t),
	})
	require.NoError(t, err)

	assert.Equal(t, StateRegistered, job.State)
	assert.Equal(t, "mid-1", job.MediaID)
	assert.Equal(t, 1, srv.uploads)

	// Without --wait the status endpoint is never polled.
	assert.Equal(t, 0, srv.statusPolls)

	// The upload carries the registration fields plus the file part.
	assert.Equal(t, "photo.jpg", srv.lastUpload.fileName)
	assert.Equal(t, []string{"uploads/mid-1"}, srv.lastUpload.fields["key"])
	assert.Equal(t, []string{"signed"}, srv.lastUpload.fields["policy"])
}

func TestUpload_WaitUntilReady(t *testing.T) {
	srv := &mediaServer{statuses: []string{"registered", "processing", "succeeded"}}
	client := newTestClient(t, srv)

	job, err := client.Upload(context.Background(), UploadConfig{
		MediaType: "image",
		FilePath:  tempMediaFile(t),
		Wait:      true,
		Poll:      fastPoll(),
	})
	require.NoError(t, err)

	assert.Equal(t, StateReady, job.State)
	assert.Equal(t, "succeeded", job.LastStatus)
	assert.Equal(t, 3, srv.statusPolls)
}

func TestUpload_WaitProcessingFailed(t *testing.T) {
	srv := &mediaServer{statuses: []string{"processing", "failed"}}
	client := newTestClient(t, srv)

	job, err := client.Upload(context.Background(), UploadConfig{
		MediaType: "video",
		FilePath:  tempMediaFile(t),
		Wait:      true,
		Poll:      fastPoll(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "media processing failed")
	assert.Equal(t, StateFailed, job.State)
}

func TestUpload_PollTimeout(t *testing.T) {
	// Status never leaves processing; the loop must stop at the bound.
	srv := &mediaServer{statuses: []string{"processing"}}
	client := newTestClient(t, srv)

	job, err := client.Upload(context.Background(), UploadConfig{
		MediaType: "video",
		FilePath:  tempMediaFile(t),
		Wait:      true,
		Poll:      PollConfig{Interval: time.Millisecond, MaxAttempts: 3},
	})
	require.Error(t, err)
	assert.True(t, api.IsPollTimeout(err))
	assert.Equal(t, StateFailed, job.State)
	assert.Equal(t, 3, srv.statusPolls)
}

func TestUpload_UnexpectedStatus(t *testing.T) {
	srv := &mediaServer{statuses: []string{"exploded"}}
	client := newTestClient(t, srv)

	job, err := client.Upload(context.Background(), UploadConfig{
		MediaType: "image",
		FilePath:  tempMediaFile(t),
		Wait:      true,
		Poll:      fastPoll(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unexpected media status "exploded"`)
	assert.Equal(t, StateFailed, job.State)
}

func TestUpload_RegisterFailure(t *testing.T) {
	srv := &mediaServer{registerStatus: http.StatusForbidden}
	client := newTestClient(t, srv)

	job, err := client.Upload(context.Background(), UploadConfig{
		MediaType: "image",
		FilePath:  tempMediaFile(t),
	})
	require.Error(t, err)
	assert.Nil(t, job)
	assert.Equal(t, 0, srv.uploads)
}

func TestUpload_TransferFailureNotRetried(t *testing.T) {
	srv := &mediaServer{uploadStatus: http.StatusBadRequest}
	client := newTestClient(t, srv)

	job, err := client.Upload(context.Background(), UploadConfig{
		MediaType: "image",
		FilePath:  tempMediaFile(t),
		Wait:      true,
		Poll:      fastPoll(),
	})
	require.Error(t, err)
	assert.Equal(t, StateFailed, job.State)
	assert.Equal(t, "mid-1", job.MediaID)

	// A failed transfer is terminal: one attempt, no status polls.
	assert.Equal(t, 1, srv.uploads)
	assert.Equal(t, 0, srv.statusPolls)
}

func TestUpload_MissingFile(t *testing.T) {
	srv := &mediaServer{}
	client := newTestClient(t, srv)

	job, err := client.Upload(context.Background(), UploadConfig{
		MediaType: "image",
		FilePath:  filepath.Join(t.TempDir(), "nope.jpg"),
	})
	require.Error(t, err)
	assert.Equal(t, StateFailed, job.State)
}

func TestRegister_MissingFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"media_type": "image"}`))
	}))
	t.Cleanup(server.Close)

	apiClient, err := api.New(api.ClientConfig{BaseURL: server.URL, HTTPClient: server.Client()})
	require.NoError(t, err)
	client, err := New(apiClient, api.Credentials{AccessToken: "tok"})
	require.NoError(t, err)

	_, err = client.Register(context.Background(), "image")
	assert.ErrorContains(t, err, "media_id")
}

func TestGetStatus(t *testing.T) {
	srv := &mediaServer{statuses: []string{"processing"}}
	client := newTestClient(t, srv)

	status, err := client.GetStatus(context.Background(), "mid-1")
	require.NoError(t, err)
	assert.Equal(t, "mid-1", status.MediaID)
	assert.Equal(t, "processing", status.Status)
}
