// Package mediacmd provides the media upload command: register an
// upload slot, transfer the file, and optionally wait for processing.
package mediacmd

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/pinterest-ads-cli/api/media"
	"github.com/open-cli-collective/pinterest-ads-cli/internal/cmd/root"
	"github.com/open-cli-collective/pinterest-ads-cli/internal/sources"
)

// NewUploadCommand returns the 'media upload' command.
func NewUploadCommand(opts *root.Options) *cobra.Command {
	var (
		mediaType string
		file      string
		wait      bool
	)

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Register and upload media, optionally waiting for processing",
		Long: `Register a media upload, transfer the file to the returned upload
URL, and optionally poll until processing completes.

Without --wait the command returns right after the transfer with the
media id; processing status is unknown at that point and can be checked
later with 'pinads media get --media-id <id>'.

Examples:
  pinads media upload --media-type image --file photo.jpg
  pinads media upload --media-type video --file s3://bucket/clip.mp4 --wait`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpload(cmd, opts, mediaType, file, wait)
		},
	}

	cmd.Flags().StringVar(&mediaType, "media-type", "", "Media type: image or video")
	cmd.Flags().StringVar(&file, "file", "", "File to upload (path, @FILE, file://, http(s)://, or s3://)")
	cmd.Flags().BoolVar(&wait, "wait", false, "Wait for processing to complete")
	_ = cmd.MarkFlagRequired("media-type")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runUpload(cmd *cobra.Command, opts *root.Options, mediaType, file string, wait bool) error {
	ctx := cmd.Context()

	client, err := opts.MediaClient()
	if err != nil {
		return err
	}

	src, err := sources.Resolve(ctx, file)
	if err != nil {
		return err
	}
	defer src.Cleanup()

	v := opts.View()

	job, err := client.Upload(ctx, media.UploadConfig{
		MediaType: mediaType,
		FilePath:  src.Path,
		FileName:  src.FileName,
		Wait:      wait,
	})
	if err != nil {
		if job != nil && job.MediaID != "" {
			v.Error("upload of media %s failed", job.MediaID)
		}
		return err
	}

	switch job.State {
	case media.StateReady:
		v.Success("media %s processed", job.MediaID)
	default:
		v.Success("media %s uploaded (processing status unknown, use 'media get' to check)", job.MediaID)
	}

	return v.JSON(map[string]string{
		"media_id": job.MediaID,
		"state":    string(job.State),
	})
}
