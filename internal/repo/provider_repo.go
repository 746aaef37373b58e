// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Provider
// and Receiver registries.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kaunkarega/taskmatch-backend/internal/domain"
)

// CreateProvider inserts a new provider row. The phone must already be in
// canonical form. Returns ErrDuplicate when the phone is already registered.
func CreateProvider(ctx context.Context, db *gorm.DB, name, canonicalPhone, categories, areas, status string) (*domain.Provider, error) {
	p := &domain.Provider{
		ID:         uuid.NewString(),
		Name:       name,
		Phone:      canonicalPhone,
		Categories: categories,
		Areas:      areas,
		Status:     status,
		CreatedAt:  time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return p, nil
}

// CreateReceiver inserts a new receiver row. Returns ErrDuplicate when the
// phone is already registered.
func CreateReceiver(ctx context.Context, db *gorm.DB, name, canonicalPhone, area string) (*domain.Receiver, error) {
	r := &domain.Receiver{
		ID:        uuid.NewString(),
		Name:      name,
		Phone:     canonicalPhone,
		Area:      area,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return r, nil
}

// ListActiveProviders returns every provider with Active status. The
// category/area filtering happens in the service layer against the
// comma-separated sets; the directory stays a dumb read.
func ListActiveProviders(ctx context.Context, db *gorm.DB) ([]domain.Provider, error) {
	var out []domain.Provider
	err := db.WithContext(ctx).
		Where("status = ?", domain.ProviderActive).
		Order("created_at asc").
		Find(&out).Error
	return out, err
}

// GetProviderByPhone fetches a provider by canonical phone, or ErrNotFound.
func GetProviderByPhone(ctx context.Context, db *gorm.DB, canonicalPhone string) (*domain.Provider, error) {
	var p domain.Provider
	if err := db.WithContext(ctx).Where("phone = ?", canonicalPhone).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
