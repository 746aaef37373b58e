// Package services – RegisterService
//
// This file implements directory registration for both roles. Phones are
// canonicalized before write so every later lookup (matching, chat
// participation, review authorization) compares canonical to canonical.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/kaunkarega/taskmatch-backend/internal/domain"
	"github.com/kaunkarega/taskmatch-backend/internal/phone"
	"github.com/kaunkarega/taskmatch-backend/internal/repo"
)

// RegisterService creates provider and receiver directory entries.
type RegisterService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// RegisterProvider creates an Active provider with normalized category and
// area sets. A second registration for the same phone reports
// ErrDuplicateRegistration.
func (s *RegisterService) RegisterProvider(ctx context.Context, rawPhone, name string, categories, areas []string) (*domain.Provider, error) {
	canonical, err := phone.Normalize(rawPhone)
	if err != nil {
		return nil, err
	}

	p, err := repo.CreateProvider(ctx, s.DB,
		strings.TrimSpace(name), canonical,
		JoinTerms(categories), JoinTerms(areas),
		domain.ProviderActive)
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, ErrDuplicateRegistration
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// RegisterReceiver creates a receiver entry. Duplicate phones report
// ErrDuplicateRegistration.
func (s *RegisterService) RegisterReceiver(ctx context.Context, rawPhone, name, area string) (*domain.Receiver, error) {
	canonical, err := phone.Normalize(rawPhone)
	if err != nil {
		return nil, err
	}

	r, err := repo.CreateReceiver(ctx, s.DB,
		strings.TrimSpace(name), canonical, NormalizeTerm(area))
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, ErrDuplicateRegistration
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}
