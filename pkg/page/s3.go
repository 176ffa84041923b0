package page

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/vmihailenco/msgpack/v5"
)

// s3Entry is the stored representation of one published script.
type s3Entry struct {
	Script      []byte    `msgpack:"script"`
	ContentType string    `msgpack:"content_type"`
	CreatedAt   time.Time `msgpack:"created_at"`
}

// S3Store persists published page scripts in an S3 bucket so a script
// published by one node can be served by any other.
//
// The client is injected by the caller:
//
//	cfg, _ := config.LoadDefaultConfig(context.Background())
//	store := page.NewS3Store(s3.NewFromConfig(cfg), "my-bucket", "page-scripts/")
type S3Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Store creates an S3-backed script store.
func NewS3Store(client *s3.Client, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

func (s *S3Store) key(version string) string {
	return s.prefix + version
}

// Put implements ScriptStore.
func (s *S3Store) Put(ctx context.Context, version string, script []byte) error {
	payload, err := msgpack.Marshal(s3Entry{
		Script:      script,
		ContentType: "application/javascript",
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode script entry: %w", err)
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(version)),
		Body:   bytes.NewReader(payload),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", version, err)
	}
	return nil
}

// Get implements ScriptStore.
func (s *S3Store) Get(ctx context.Context, version string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(version)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ScriptNotFoundError{Version: version}
		}
		return nil, fmt.Errorf("s3 get %s: %w", version, err)
	}
	defer out.Body.Close()

	payload, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 read %s: %w", version, err)
	}
	var entry s3Entry
	if err := msgpack.Unmarshal(payload, &entry); err != nil {
		return nil, fmt.Errorf("decode script entry %s: %w", version, err)
	}
	return entry.Script, nil
}

// Delete implements ScriptStore.
func (s *S3Store) Delete(ctx context.Context, version string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(version)),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s: %w", version, err)
	}
	return nil
}
