//go:build !gcp

package catalogsource

import (
	"context"
	"fmt"

	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/config"
)

func newGCSSource(_ context.Context, _ config.SourceConfig) (Source, error) {
	return nil, fmt.Errorf("catalogsource: GCS sources are not enabled in this build (use -tags gcp)")
}
