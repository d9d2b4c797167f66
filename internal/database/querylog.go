package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a query id does not exist.
var ErrNotFound = errors.New("query not found")

// QueryLogStore provides the append-only lookup history.
type QueryLogStore struct {
	db *gorm.DB
}

// NewQueryLogStore creates a store backed by the given database handle.
func NewQueryLogStore(db *gorm.DB) *QueryLogStore {
	return &QueryLogStore{db: db}
}

// Append inserts one query log row and returns its id. Each append is an
// independent atomic insert.
func (s *QueryLogStore) Append(entry *QueryLog) (uint, error) {
	if err := s.db.Create(entry).Error; err != nil {
		return 0, fmt.Errorf("failed to append query log: %w", err)
	}
	return entry.ID, nil
}

// ListRecent returns up to limit rows, newest first.
func (s *QueryLogStore) ListRecent(limit int) ([]QueryLog, error) {
	var entries []QueryLog
	err := s.db.
		Order("query_time DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list query logs: %w", err)
	}
	return entries, nil
}

// ClearAll removes every logged query.
func (s *QueryLogStore) ClearAll() error {
	err := s.db.
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Unscoped().
		Delete(&QueryLog{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear query logs: %w", err)
	}
	return nil
}

// GetRawResponse returns the stored raw response text for a query id.
func (s *QueryLogStore) GetRawResponse(id uint) (string, error) {
	var entry QueryLog
	err := s.db.Select("raw_response").First(&entry, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to fetch raw response: %w", err)
	}
	return entry.RawResponse, nil
}

// Count returns the number of logged queries. Used by the health check.
func (s *QueryLogStore) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&QueryLog{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
