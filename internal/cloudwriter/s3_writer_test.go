package cloudwriter

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	bucket, key string
	body        []byte
	err         error
}

func (f *fakePutter) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.bucket, f.key = *in.Bucket, *in.Key
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestS3WriterUploadsOnClose(t *testing.T) {
	putter := &fakePutter{}
	factory := NewS3WriterFactoryWithClient(context.Background(), putter)

	w, err := factory.NewWriter("reports", "insights/data.parquet")
	require.NoError(t, err)
	_, err = w.Write([]byte("PAR1"))
	require.NoError(t, err)
	_, err = w.Write([]byte("rest"))
	require.NoError(t, err)
	assert.Empty(t, putter.body, "nothing uploaded before close")

	require.NoError(t, w.Close())
	assert.Equal(t, "reports", putter.bucket)
	assert.Equal(t, "insights/data.parquet", putter.key)
	assert.Equal(t, "PAR1rest", string(putter.body))
}

func TestS3WriterErrors(t *testing.T) {
	factory := NewS3WriterFactoryWithClient(context.Background(), &fakePutter{err: errors.New("denied")})

	_, err := factory.NewWriter("", "x")
	assert.Error(t, err)

	w, err := factory.NewWriter("reports", "x")
	require.NoError(t, err)
	assert.ErrorContains(t, w.Close(), "denied")
}
