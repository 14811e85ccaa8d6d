package export

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/oklog/ulid/v2"
)

// PutObjectAPI is the subset of the S3 client used for publishing.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Storage publishes exports to S3.
type Storage struct {
	client  PutObjectAPI
	bucket  string
	baseURL string // e.g. "https://cdn.example.com"; empty uses the S3 URL
}

// NewStorage creates an S3 storage handler.
func NewStorage(client PutObjectAPI, bucket, baseURL string) *Storage {
	return &Storage{client: client, bucket: bucket, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Upload writes a text export and returns its key and public URL.
func (s *Storage) Upload(ctx context.Context, kind Kind, body string) (key, url string, err error) {
	id := ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader)
	key = fmt.Sprintf("exports/%s/%s.txt", kind, strings.ToLower(id.String()))

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             &s.bucket,
		Key:                &key,
		Body:               strings.NewReader(body),
		ContentType:        aws.String("text/plain; charset=utf-8"),
		ContentLength:      aws.Int64(int64(len(body))),
		ContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", kind.Filename())),
	})
	if err != nil {
		return "", "", fmt.Errorf("upload to s3: %w", err)
	}

	base := s.baseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.amazonaws.com", s.bucket)
	}
	return key, base + "/" + key, nil
}
