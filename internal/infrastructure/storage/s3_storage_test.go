package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	puts  map[string][]byte
	pages []*s3.ListObjectsV2Output
	calls int
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, _ := io.ReadAll(in.Body)
	if f.puts == nil {
		f.puts = map[string][]byte{}
	}
	f.puts[aws.ToString(in.Key)] = b
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, _ *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := f.pages[f.calls]
	f.calls++
	return out, nil
}

func TestS3Storage_Put(t *testing.T) {
	fake := &fakeS3{}
	s := newS3Storage(fake, "comprobantes", nil)

	require.NoError(t, s.Put(context.Background(), "c1/2024-03/x.xml", []byte("<Invoice/>"), "application/xml"))
	assert.Equal(t, []byte("<Invoice/>"), fake.puts["c1/2024-03/x.xml"])

	fake.err = errors.New("AccessDenied")
	assert.Error(t, s.Put(context.Background(), "k", nil, "application/xml"))
}

func TestS3Storage_UsagePaginado(t *testing.T) {
	fake := &fakeS3{pages: []*s3.ListObjectsV2Output{
		{
			Contents:              []types.Object{{Size: aws.Int64(100)}, {Size: aws.Int64(50)}},
			IsTruncated:           aws.Bool(true),
			NextContinuationToken: aws.String("tok"),
		},
		{
			Contents:    []types.Object{{Size: aws.Int64(25)}},
			IsTruncated: aws.Bool(false),
		},
	}}
	s := newS3Storage(fake, "comprobantes", nil)

	bytes, objects, err := s.Usage(context.Background(), "c1/")
	require.NoError(t, err)
	assert.Equal(t, int64(175), bytes)
	assert.Equal(t, 3, objects)
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "c1/2024-03/20131312955-01-F001-123.xml",
		ObjectKey("c1", "2024-03", "20131312955", "01", "F001-123"))
}
