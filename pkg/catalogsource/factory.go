package catalogsource

import (
	"context"
	"fmt"

	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/config"
)

// SourceType represents the type of catalogue storage backend.
type SourceType string

const (
	SourceTypeFS  SourceType = "fs"
	SourceTypeS3  SourceType = "s3"
	SourceTypeGCS SourceType = "gcs"
)

// NewSourceFromEnv creates a catalogue source based on environment variables.
//
// Environment variables:
//   - CATALOGUE_SOURCE_TYPE: "fs" (default), "s3", or "gcs"
//   - CATALOGUE_DIR: directory for the filesystem source (default: "policies")
//
// For S3:
//   - CATALOGUE_S3_REGION or AWS_REGION
//   - CATALOGUE_S3_BUCKET (required)
//   - CATALOGUE_S3_ENDPOINT (optional, for MinIO/LocalStack)
//   - CATALOGUE_S3_PREFIX (optional)
//
// For GCS:
//   - CATALOGUE_GCS_BUCKET (required)
//   - CATALOGUE_GCS_PREFIX (optional)
func NewSourceFromEnv(ctx context.Context) (Source, error) {
	return NewSource(ctx, config.Load().Source)
}

// NewSource creates a catalogue source from explicit settings.
func NewSource(ctx context.Context, cfg config.SourceConfig) (Source, error) {
	st := SourceType(cfg.Type)
	if st == "" {
		st = SourceTypeFS
	}

	switch st {
	case SourceTypeFS:
		return NewFileSource(cfg.Dir)
	case SourceTypeS3:
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("catalogsource: CATALOGUE_S3_BUCKET is required for S3 sources")
		}
		return NewS3Source(ctx, S3SourceConfig{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3Endpoint,
			Prefix:   cfg.S3Prefix,
		})
	case SourceTypeGCS:
		return newGCSSource(ctx, cfg)
	default:
		return nil, fmt.Errorf("catalogsource: unsupported source type: %s", st)
	}
}
