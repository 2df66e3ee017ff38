package catalogsource

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/config"
)

func TestNewSourceFromEnv_Default(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CATALOGUE_SOURCE_TYPE", "")
	t.Setenv("CATALOGUE_DIR", dir)

	src, err := NewSourceFromEnv(context.Background())
	require.NoError(t, err)

	fs, ok := src.(*FileSource)
	require.True(t, ok, "expected *FileSource, got %T", src)
	assert.Equal(t, dir, fs.dir)
}

func TestNewSource_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.SourceConfig
		msg  string
	}{
		{"s3 without bucket", config.SourceConfig{Type: "s3"}, "CATALOGUE_S3_BUCKET is required"},
		{"unsupported", config.SourceConfig{Type: "azure"}, "unsupported source type"},
		{"missing dir", config.SourceConfig{Type: "fs", Dir: "/nonexistent/policies"}, "stat"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSource(context.Background(), tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestNewSource_GCSMissingBucket(t *testing.T) {
	_, err := NewSource(context.Background(), config.SourceConfig{Type: "gcs"})
	require.Error(t, err)
	// Builds without the gcp tag reject GCS outright.
	if strings.Contains(err.Error(), "not enabled in this build") {
		return
	}
	assert.Contains(t, err.Error(), "CATALOGUE_GCS_BUCKET is required")
}
