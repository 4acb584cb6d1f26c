package s3blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Writer uploads objects under an optional key prefix.
type Writer struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewWriter creates a Writer for the client's bucket. Keys are joined under prefix.
func NewWriter(c *Client, prefix string) *Writer {
	return &Writer{
		client: c.s3,
		bucket: c.bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

// Key returns the object key used for name.
func (w *Writer) Key(name string) string {
	if w.prefix == "" {
		return name
	}
	return path.Join(w.prefix, name)
}

// Put uploads data as a single PutObject request.
func (w *Writer) Put(ctx context.Context, name string, data io.Reader, contentType string) error {
	key := w.Key(name)
	input := &s3.PutObjectInput{
		Bucket:      aws.String(w.bucket),
		Key:         aws.String(key),
		Body:        data,
		ContentType: aws.String(contentType),
	}

	if _, err := w.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("s3blob: put object %s: %w", key, err)
	}
	return nil
}

// PutBytes uploads an in-memory payload.
func (w *Writer) PutBytes(ctx context.Context, name string, data []byte, contentType string) error {
	return w.Put(ctx, name, bytes.NewReader(data), contentType)
}
