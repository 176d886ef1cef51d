package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Document is the gorm model backing the MySQL store. One row per document;
// the body is stored as a JSON column so category lookups can use
// JSON_EXTRACT without a per-bucket schema.
type Document struct {
	ID        uint   `gorm:"primaryKey"`
	Bucket    string `gorm:"size:64;uniqueIndex:idx_bucket_key;not null"`
	DocKey    string `gorm:"size:128;uniqueIndex:idx_bucket_key;not null"`
	Doc       string `gorm:"type:json;not null"`
	UpdatedAt time.Time
}

// MySQL implements Store on a gorm MySQL connection.
type MySQL struct {
	db *gorm.DB
}

func NewMySQL(db *gorm.DB) *MySQL {
	return &MySQL{db: db}
}

// Migrate creates the documents table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Document{})
}

func (s *MySQL) Get(ctx context.Context, bucket, key string, out any) error {
	var row Document
	err := s.db.WithContext(ctx).
		First(&row, "bucket = ? AND doc_key = ?", bucket, key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("store: get %s/%s: %w", bucket, key, err)
	}
	if err := json.Unmarshal([]byte(row.Doc), out); err != nil {
		return fmt.Errorf("store: decode %s/%s: %w", bucket, key, err)
	}
	return nil
}

func (s *MySQL) Upsert(ctx context.Context, bucket, key string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("store: encode %s/%s: %w", bucket, key, err)
	}
	row := Document{Bucket: bucket, DocKey: key, Doc: string(body)}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "bucket"}, {Name: "doc_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"doc", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("store: upsert %s/%s: %w", bucket, key, err)
	}
	return nil
}

func (s *MySQL) Query(ctx context.Context, bucket, field, value, excludeKey string, limit int) ([][]byte, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []Document
	err := s.db.WithContext(ctx).
		Where("bucket = ?", bucket).
		Where("doc_key <> ?", excludeKey).
		Where(fmt.Sprintf("JSON_UNQUOTE(JSON_EXTRACT(doc, '$.%s')) = ?", field), value).
		Order("doc_key asc").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("store: query %s.%s=%s: %w", bucket, field, value, err)
	}
	out := make([][]byte, 0, len(rows))
	for _, r := range rows {
		out = append(out, []byte(r.Doc))
	}
	return out, nil
}
