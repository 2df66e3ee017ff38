//go:build gcp

package catalogsource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// GCSSource reads catalogue documents from a Google Cloud Storage bucket.
type GCSSource struct {
	client *storage.Client
	bucket string
	prefix string
}

// GCSSourceConfig holds configuration for GCSSource.
type GCSSourceConfig struct {
	Bucket string
	Prefix string // Optional object prefix
}

// NewGCSSource creates a GCS-backed catalogue source (uses ADC by default).
func NewGCSSource(ctx context.Context, cfg GCSSourceConfig) (*GCSSource, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalogsource: create GCS client: %w", err)
	}
	return &GCSSource{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (s *GCSSource) List(ctx context.Context) ([]string, error) {
	var names []string
	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: s.prefix})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalogsource: gcs list %s: %w", s.bucket, err)
		}
		name := strings.TrimPrefix(attrs.Name, s.prefix)
		if name == "" || strings.Contains(name, "/") || !IsDocument(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *GCSSource) Read(ctx context.Context, name string) ([]byte, error) {
	reader, err := s.client.Bucket(s.bucket).Object(s.prefix + name).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("catalogsource: %s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("catalogsource: gcs get %s: %w", name, err)
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("catalogsource: gcs read %s: %w", name, err)
	}
	return data, nil
}

// Close closes the GCS client.
func (s *GCSSource) Close() error {
	return s.client.Close()
}
