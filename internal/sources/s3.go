package sources

import (
	"context"
	"fmt"
	"path"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ParseS3URL splits an s3://bucket/key URL into bucket and key.
func ParseS3URL(url string) (bucket, key string, err error) {
	trimmed, ok := strings.CutPrefix(url, "s3://")
	if !ok {
		return "", "", fmt.Errorf("invalid s3 url: %s", url)
	}

	bucket, key, _ = strings.Cut(trimmed, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 url: %s", url)
	}

	return bucket, key, nil
}

func downloadS3(ctx context.Context, url string) (*File, error) {
	bucket, key, err := ParseS3URL(url)
	if err != nil {
		return nil, err
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	obj, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get s3 object %s: %w", url, err)
	}
	defer obj.Body.Close()

	name := path.Base(key)
	if name == "" || name == "/" || name == "." {
		name = "s3-object"
	}

	return writeTemp(obj.Body, name)
}
