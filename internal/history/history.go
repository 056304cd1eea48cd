// Package history persists recent calculations to a local sqlite file.
//
// The store is a bounded log: it keeps the most recent N calculations
// (default 10) and evicts the oldest on overflow. It is presentation-side
// convenience state, not part of the engine's contract.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/couchcryptid/ac-cost-service/internal/domain"
)

// storedCalculation is the sqlite row. The full calculation is kept as a
// JSON payload; seq gives a total insertion order independent of clock
// resolution.
type storedCalculation struct {
	Seq       int64  `gorm:"primaryKey;autoIncrement"`
	CalcID    string `gorm:"uniqueIndex;column:calc_id"`
	CreatedAt time.Time
	Payload   []byte
}

// Store is a bounded calculation log backed by sqlite.
type Store struct {
	db    *gorm.DB
	limit int
}

// New opens (or creates) the sqlite database at path and migrates the
// schema. limit is the maximum number of calculations retained.
func New(path string, limit int) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if err := db.AutoMigrate(&storedCalculation{}); err != nil {
		return nil, fmt.Errorf("migrate history database: %w", err)
	}
	return &Store{db: db, limit: limit}, nil
}

// Save appends a calculation and evicts the oldest entries beyond the
// retention limit.
func (s *Store) Save(ctx context.Context, calc domain.Calculation) error {
	payload, err := json.Marshal(calc)
	if err != nil {
		return fmt.Errorf("serialize calculation: %w", err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := storedCalculation{
			CalcID:    calc.ID,
			CreatedAt: calc.CreatedAt,
			Payload:   payload,
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("insert calculation: %w", err)
		}

		// Evict everything older than the newest `limit` rows.
		var cutoff storedCalculation
		err := tx.Order("seq desc").Offset(s.limit - 1).First(&cutoff).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("find eviction cutoff: %w", err)
		}
		if err := tx.Where("seq < ?", cutoff.Seq).Delete(&storedCalculation{}).Error; err != nil {
			return fmt.Errorf("evict old calculations: %w", err)
		}
		return nil
	})
}

// Recent returns up to limit calculations, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]domain.Calculation, error) {
	if limit <= 0 || limit > s.limit {
		limit = s.limit
	}

	var rows []storedCalculation
	if err := s.db.WithContext(ctx).Order("seq desc").Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}

	calcs := make([]domain.Calculation, 0, len(rows))
	for _, row := range rows {
		var calc domain.Calculation
		if err := json.Unmarshal(row.Payload, &calc); err != nil {
			return nil, fmt.Errorf("deserialize calculation %s: %w", row.CalcID, err)
		}
		calcs = append(calcs, calc)
	}
	return calcs, nil
}

// Get returns one calculation by ID.
func (s *Store) Get(ctx context.Context, id string) (domain.Calculation, error) {
	var row storedCalculation
	err := s.db.WithContext(ctx).Where("calc_id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Calculation{}, fmt.Errorf("calculation %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Calculation{}, fmt.Errorf("query calculation %s: %w", id, err)
	}

	var calc domain.Calculation
	if err := json.Unmarshal(row.Payload, &calc); err != nil {
		return domain.Calculation{}, fmt.Errorf("deserialize calculation %s: %w", id, err)
	}
	return calc, nil
}
