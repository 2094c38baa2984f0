package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrmaturity-backend/internal/shared/storage/object"
)

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "results.json", want: "results.json"},
		{name: "simple prefix", prefix: "hr", key: "results.json", want: "hr/results.json"},
		{name: "prefix trailing slash", prefix: "hr/", key: "results.json", want: "hr/results.json"},
		{name: "prefix and key slashes", prefix: "/hr/", key: "/results.json", want: "hr/results.json"},
		{name: "nested prefix", prefix: "hr/prod", key: "questions.json", want: "hr/prod/questions.json"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, applyPrefix(tt.prefix, tt.key))
		})
	}
}

// fakeS3 emulates conditional puts on an in-memory bucket.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	etags   map[string]string
	seq     int
	puts    []*s3.PutObjectInput
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, etags: map[string]string{}}
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{
		Body: io.NopCloser(bytes.NewReader(data)),
		ETag: aws.String(f.etags[aws.ToString(in.Key)]),
	}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts = append(f.puts, in)
	key := aws.ToString(in.Key)
	current, exists := f.etags[key]
	if in.IfNoneMatch != nil && exists {
		return nil, &smithy.GenericAPIError{Code: "PreconditionFailed", Message: "exists"}
	}
	if in.IfMatch != nil && (!exists || aws.ToString(in.IfMatch) != current) {
		return nil, &smithy.GenericAPIError{Code: "PreconditionFailed", Message: "etag mismatch"}
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.seq++
	etag := fmt.Sprintf(`"etag-%d"`, f.seq)
	f.objects[key] = data
	f.etags[key] = etag
	return &s3.PutObjectOutput{ETag: aws.String(etag)}, nil
}

func TestStoreConditionalWrites(t *testing.T) {
	ctx := context.Background()
	fake := newFakeS3()
	store := NewWithClient(fake, "bucket", "hr")

	_, err := store.Get(ctx, "results.json")
	require.ErrorIs(t, err, object.ErrNotFound)

	v1, err := store.Put(ctx, "results.json", []byte("[]"), "")
	require.NoError(t, err)
	require.Len(t, fake.puts, 1)
	assert.Equal(t, "hr/results.json", aws.ToString(fake.puts[0].Key))
	assert.Equal(t, "*", aws.ToString(fake.puts[0].IfNoneMatch))

	_, err = store.Put(ctx, "results.json", []byte("[1]"), "")
	assert.ErrorIs(t, err, object.ErrVersionConflict)

	doc, err := store.Get(ctx, "results.json")
	require.NoError(t, err)
	assert.Equal(t, v1, doc.Version)
	assert.Equal(t, "[]", string(doc.Data))

	v2, err := store.Put(ctx, "results.json", []byte("[1]"), v1)
	require.NoError(t, err)
	assert.NotEqual(t, v1, v2)

	_, err = store.Put(ctx, "results.json", []byte("[2]"), v1)
	assert.ErrorIs(t, err, object.ErrVersionConflict)
}

func TestIsNotFoundRecognizesAPIErrorCodes(t *testing.T) {
	assert.True(t, isNotFound(&smithy.GenericAPIError{Code: "NotFound"}))
	assert.False(t, isNotFound(&smithy.GenericAPIError{Code: "AccessDenied"}))
	assert.True(t, isPreconditionFailure(&smithy.GenericAPIError{Code: "ConditionalRequestConflict"}))
}
