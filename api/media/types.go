package media

import "time"

// State is the local lifecycle state of an upload job.
type State string

// Upload job states. Ready and Failed are terminal; Registered is also
// a valid final report when the caller did not ask to wait.
const (
	StateRegistered   State = "registered"
	StateTransferring State = "transferring"
	StateProcessing   State = "processing"
	StateReady        State = "ready"
	StateFailed       State = "failed"
)

// Remote processing statuses reported by GET /media/{media_id}.
const (
	remoteStatusRegistered = "registered"
	remoteStatusProcessing = "processing"
	remoteStatusSucceeded  = "succeeded"
	remoteStatusFailed     = "failed"
)

// Registration is the response to POST /media: where to send the bytes
// and the form fields the upload endpoint expects.
type Registration struct {
	MediaID          string            `json:"media_id"`
	MediaType        string            `json:"media_type"`
	UploadURL        string            `json:"upload_url"`
	UploadParameters map[string]string `json:"upload_parameters"`
}

// Status is one poll response for a registered media id.
type Status struct {
	MediaID   string `json:"media_id"`
	MediaType string `json:"media_type"`
	Status    string `json:"status"`
}

// Job tracks one upload through its phases.
type Job struct {
	State        State
	MediaID      string
	LastStatus   string
	Registration *Registration
}

// PollConfig bounds the processing poll loop.
type PollConfig struct {
	// Interval is the fixed sleep between status checks.
	Interval time.Duration

	// MaxAttempts caps the number of status checks.
	MaxAttempts int
}

// DefaultPollConfig polls every 2 seconds for up to 90 attempts,
// matching the API's typical processing time for video.
func DefaultPollConfig() PollConfig {
	return PollConfig{
		Interval:    2 * time.Second,
		MaxAttempts: 90,
	}
}

// UploadConfig describes one upload request.
type UploadConfig struct {
	// MediaType is "image" or "video".
	MediaType string

	// FilePath is the local file holding the media bytes.
	FilePath string

	// FileName is the name reported to the upload endpoint. Defaults
	// to the base name of FilePath.
	FileName string

	// Wait polls the processing status until a terminal state.
	Wait bool

	// Poll bounds the wait loop (defaults to DefaultPollConfig).
	Poll PollConfig
}
