package port

import "context"

// ObjectStorage abstracts the S3-compatible blob store holding image variants.
type ObjectStorage interface {
	// PutObject stores body under bucket/key, overwriting any existing object.
	PutObject(ctx context.Context, bucket, key string, body []byte, contentType string) error
	DeleteObject(ctx context.Context, bucket, key string) error
	// PublicURL returns the externally reachable base URL for objects in bucket,
	// ending in a slash so a key can be appended directly.
	PublicURL(bucket string) string
}
