package photo

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Uploader stores photos in an S3 bucket.
type S3Uploader struct {
	client *s3.Client
	bucket string
	region string
}

// NewS3Uploader creates an uploader against the given bucket.
// PRE: region and bucket are non-empty; AWS credentials come from the environment
// POST: Returns a ready-to-use uploader
func NewS3Uploader(ctx context.Context, region, bucket string) (*S3Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &S3Uploader{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}, nil
}

// Upload decodes a base64 image (with or without a data-URI prefix),
// puts it in the bucket, and returns the public object URL.
// PRE: base64Data is a non-empty base64 or data-URI image
// POST: Object exists at the returned URL
func (u *S3Uploader) Upload(ctx context.Context, base64Data string) (string, error) {
	contentType := "image/jpeg"
	if strings.HasPrefix(base64Data, "data:") {
		header, rest, ok := strings.Cut(base64Data, ",")
		if !ok {
			return "", fmt.Errorf("malformed data URI")
		}
		if ct, found := strings.CutPrefix(header, "data:"); found {
			contentType = strings.TrimSuffix(strings.SplitN(ct, ";", 2)[0], ";")
		}
		base64Data = rest
	}

	data, err := base64.StdEncoding.DecodeString(base64Data)
	if err != nil {
		return "", fmt.Errorf("failed to decode photo data: %w", err)
	}

	key := fmt.Sprintf("counselor-photos/%s%s", uuid.New().String(), extensionFor(contentType))
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key)
	slog.Info("photo_uploaded", "key", key, "bytes", len(data))
	return url, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
