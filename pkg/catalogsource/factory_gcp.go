//go:build gcp

package catalogsource

import (
	"context"
	"fmt"

	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/config"
)

func newGCSSource(ctx context.Context, cfg config.SourceConfig) (Source, error) {
	if cfg.GCSBucket == "" {
		return nil, fmt.Errorf("catalogsource: CATALOGUE_GCS_BUCKET is required for GCS sources")
	}
	return NewGCSSource(ctx, GCSSourceConfig{Bucket: cfg.GCSBucket, Prefix: cfg.GCSPrefix})
}
