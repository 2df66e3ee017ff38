package catalogsource

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string]string
	pages   [][]string
	listErr error
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	page := 0
	if in.ContinuationToken != nil {
		page = len(*in.ContinuationToken)
	}
	out := &s3.ListObjectsV2Output{}
	for _, k := range f.pages[page] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	if page+1 < len(f.pages) {
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String(strings.Repeat("x", page+1))
	}
	return out, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestS3Source_ListPagesAndFilters(t *testing.T) {
	fake := &fakeS3{pages: [][]string{
		{"policies/3.0.yaml", "policies/notes.txt"},
		{"policies/1.0.json", "policies/old/2.0.yaml", "policies/"},
	}}
	src := NewS3SourceWithClient(fake, "bucket", "policies/")

	names, err := src.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"1.0.json", "3.0.yaml"}, names)
}

func TestS3Source_ListError(t *testing.T) {
	fake := &fakeS3{listErr: errors.New("denied")}
	src := NewS3SourceWithClient(fake, "bucket", "")

	_, err := src.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "denied")
}

func TestS3Source_Read(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{"policies/2.1.yaml": "version: \"2.1\""}}
	src := NewS3SourceWithClient(fake, "bucket", "policies/")

	data, err := src.Read(context.Background(), "2.1.yaml")
	require.NoError(t, err)
	assert.Equal(t, "version: \"2.1\"", string(data))

	_, err = src.Read(context.Background(), "3.0.yaml")
	require.ErrorIs(t, err, ErrNotFound)
}
