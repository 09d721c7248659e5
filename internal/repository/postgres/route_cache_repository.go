package postgres

import (
	"context"
	"errors"

	"simToDec/business/features"
	"simToDec/domain"

	"gorm.io/gorm"
)

type RouteCacheRepository struct {
	DB *gorm.DB
}

var _ features.RouteCache = (*RouteCacheRepository)(nil)

func NewRouteCacheRepository(db *gorm.DB) *RouteCacheRepository {
	return &RouteCacheRepository{DB: db}
}

func (r *RouteCacheRepository) Get(ctx context.Context, origin, destination string) (*domain.RouteCacheEntry, error) {
	var row domain.RouteCacheEntry

	err := r.DB.WithContext(ctx).
		Where("origin = ? AND destination = ?", origin, destination).
		Order("id ASC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *RouteCacheRepository) Save(ctx context.Context, entry domain.RouteCacheEntry) error {
	entry.ID = 0
	return r.DB.WithContext(ctx).Create(&entry).Error
}
