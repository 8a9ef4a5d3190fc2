// Package history keeps one row per refresh in SQL.
package history

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"tf2-trader/internal/models"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Record saves the summary of snap.
func (s *Store) Record(ctx context.Context, snap *models.DashboardSnapshot) error {
	rec := models.NewValuationRecord(snap)
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("record valuation: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]models.ValuationRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var records []models.ValuationRecord
	err := s.db.WithContext(ctx).
		Order("saved_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list valuations: %w", err)
	}
	return records, nil
}
