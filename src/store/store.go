package store

import (
	"context"
	"errors"
)

// Bucket and key constants shared by the API server and the seeder.
const (
	CustomersBucket = "customer_data"
	ProductsBucket  = "products"
	SalesBucket     = "sales_cache"

	SalesStatsKey = "total_sales_stats"
)

// ErrNotFound is returned by Get when no document exists under the key.
var ErrNotFound = errors.New("store: document not found")

// Store is a document store keyed by (bucket, key). Documents are JSON;
// Get and Upsert marshal through the caller's type.
type Store interface {
	// Get decodes the document at (bucket, key) into out. ErrNotFound when absent.
	Get(ctx context.Context, bucket, key string, out any) error
	// Upsert writes doc at (bucket, key), replacing any previous version.
	Upsert(ctx context.Context, bucket, key string, doc any) error
	// Query returns up to limit documents in bucket whose top-level field
	// equals value, skipping excludeKey. Results decode into raw JSON.
	Query(ctx context.Context, bucket, field, value, excludeKey string, limit int) ([][]byte, error)
}
