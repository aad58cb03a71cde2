package blob

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"eventful/internal/domain"
)

// S3Config holds configuration for the S3 backdrop bucket.
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	// PublicURLBase overrides the default virtual-hosted bucket URL, e.g. a
	// CDN in front of the bucket. Optional.
	PublicURLBase string
}

// StoreConfig holds configuration for creating a blob store.
type StoreConfig struct {
	Provider string
	S3       S3Config
}

// NewStore creates a blob store from config. Provider "s3" uploads to AWS S3;
// "noop" or unknown uses a no-op store that returns a placeholder URL.
func NewStore(config StoreConfig) (domain.BlobStore, error) {
	switch config.Provider {
	case "s3":
		awsCfg := aws.Config{
			Region: config.S3.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(
					config.S3.AccessKeyID,
					config.S3.SecretAccessKey,
					"",
				),
			),
		}
		return &s3Store{
			client: s3.NewFromConfig(awsCfg),
			config: config.S3,
		}, nil
	case "noop":
		return &noopStore{}, nil
	default:
		log.Printf("[BLOB] Unknown blob provider %q, using noop", config.Provider)
		return &noopStore{}, nil
	}
}

type s3Store struct {
	client *s3.Client
	config S3Config
}

func (s *s3Store) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	key := "backdrops/" + uuid.NewString() + strings.ToLower(path.Ext(filename))
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	if s.config.PublicURLBase != "" {
		return strings.TrimSuffix(s.config.PublicURLBase, "/") + "/" + key, nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.config.Bucket, s.config.Region, key), nil
}

type noopStore struct{}

func (n *noopStore) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	log.Printf("[BLOB] Backdrop would be uploaded (noop): filename=%s bytes=%d", filename, len(data))
	return "https://example.invalid/backdrops/" + uuid.NewString(), nil
}
