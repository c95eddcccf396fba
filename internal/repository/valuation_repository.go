package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/valuai/valuai/internal/model"
)

// ValuationRepository persists valuation records and serves read-only
// history projections.
type ValuationRepository interface {
	Create(ctx context.Context, record *model.ValuationRecord) error
	ListPage(ctx context.Context, limit, page int) ([]model.ValuationRecord, error)
	Count(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

type gormValuationRepository struct {
	db *gorm.DB
}

func NewGormValuationRepository(db *gorm.DB) ValuationRepository {
	return &gormValuationRepository{db: db}
}

func (r *gormValuationRepository) Create(ctx context.Context, record *model.ValuationRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("create valuation record: %w", err)
	}
	return nil
}

func (r *gormValuationRepository) ListPage(ctx context.Context, limit, page int) ([]model.ValuationRecord, error) {
	var records []model.ValuationRecord
	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list valuation records: %w", err)
	}
	return records, nil
}

func (r *gormValuationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.ValuationRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count valuation records: %w", err)
	}
	return count, nil
}

func (r *gormValuationRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
