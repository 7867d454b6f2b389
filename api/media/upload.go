package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/open-cli-collective/pinterest-ads-cli/api"
)

// Upload runs the full upload workflow. A registration failure aborts
// before any job exists; a transfer failure leaves the returned job in
// StateFailed. When cfg.Wait is false the job is returned right after
// the transfer with the media id and an unknown processing status.
func (c *Client) Upload(ctx context.Context, cfg UploadConfig) (*Job, error) {
	reg, err := c.Register(ctx, cfg.MediaType)
	if err != nil {
		return nil, fmt.Errorf("failed to register upload: %w", err)
	}

	job := &Job{
		State:        StateRegistered,
		MediaID:      reg.MediaID,
		Registration: reg,
	}

	job.State = StateTransferring
	if err := c.transfer(ctx, reg, cfg); err != nil {
		job.State = StateFailed
		return job, fmt.Errorf("failed to upload media bytes: %w", err)
	}

	if !cfg.Wait {
		job.State = StateRegistered
		return job, nil
	}

	job.State = StateProcessing
	return job, c.waitForProcessing(ctx, job, cfg.Poll)
}

// transfer posts the file as a multipart form to the upload URL using
// the form fields returned at registration. Never retried.
func (c *Client) transfer(ctx context.Context, reg *Registration, cfg UploadConfig) error {
	f, err := os.Open(cfg.FilePath)
	if err != nil {
		return err
	}
	defer f.Close()

	fileName := cfg.FileName
	if fileName == "" {
		fileName = filepath.Base(cfg.FilePath)
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	for k, v := range reg.UploadParameters {
		if err := form.WriteField(k, v); err != nil {
			return err
		}
	}

	// The upload endpoint expects the bytes in a part named "file".
	part, err := form.CreateFormFile("file", fileName)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, f); err != nil {
		return err
	}
	if err := form.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reg.UploadURL, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.api.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload failed (status %d): %s", resp.StatusCode, string(body))
	}

	return nil
}

// waitForProcessing polls the status endpoint on a fixed interval until
// the media reaches a terminal status or the attempt bound is hit.
// Only the status check is retried; registration and transfer never are.
func (c *Client) waitForProcessing(ctx context.Context, job *Job, cfg PollConfig) error {
	if cfg.Interval == 0 || cfg.MaxAttempts == 0 {
		cfg = DefaultPollConfig()
	}

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		status, err := c.GetStatus(ctx, job.MediaID)
		if err != nil {
			job.State = StateFailed
			return err
		}
		job.LastStatus = status.Status

		switch status.Status {
		case remoteStatusSucceeded:
			job.State = StateReady
			return nil
		case remoteStatusFailed:
			job.State = StateFailed
			return fmt.Errorf("media processing failed (media_id %s)", job.MediaID)
		case remoteStatusRegistered, remoteStatusProcessing:
			// keep polling
		default:
			job.State = StateFailed
			return fmt.Errorf("unexpected media status %q (media_id %s)", status.Status, job.MediaID)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}

	job.State = StateFailed
	return fmt.Errorf("%w: media %s still %s after %d attempts",
		api.ErrPollTimeout, job.MediaID, job.LastStatus, cfg.MaxAttempts)
}
