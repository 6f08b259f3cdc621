package export

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/xitongsys/parquet-go/source"
)

// s3ParquetFile buffers parquet output in memory and uploads the
// object on Close. S3 objects are write-once, so Read and seek-from-
// end are unsupported.
type s3ParquetFile struct {
	ctx    context.Context
	client *s3.Client
	bucket string
	key    string
	buffer bytes.Buffer
	offset int64
}

func newS3ParquetFile(ctx context.Context, region, bucket, key string) (*s3ParquetFile, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return &s3ParquetFile{
		ctx:    ctx,
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		key:    key,
	}, nil
}

func (f *s3ParquetFile) Open(name string) (source.ParquetFile, error) {
	// The object is implicitly created on upload; the current
	// instance is already set up for writing.
	return f, nil
}

func (f *s3ParquetFile) Create(name string) (source.ParquetFile, error) {
	return f, nil
}

func (f *s3ParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		f.offset = offset
	case io.SeekCurrent:
		f.offset += offset
	case io.SeekEnd:
		return 0, fmt.Errorf("seek from end not supported for S3 upload")
	}
	return f.offset, nil
}

func (f *s3ParquetFile) Read(p []byte) (n int, err error) {
	return 0, fmt.Errorf("read not supported for S3 upload")
}

func (f *s3ParquetFile) Write(p []byte) (n int, err error) {
	return f.buffer.Write(p)
}

func (f *s3ParquetFile) Close() error {
	_, err := f.client.PutObject(f.ctx, &s3.PutObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key),
		Body:   bytes.NewReader(f.buffer.Bytes()),
	})
	if err != nil {
		return fmt.Errorf("unable to upload export to S3: %w", err)
	}
	return nil
}
