package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/kaunkarega/taskmatch-backend/internal/repo"
)

// AdminService serves the reporting aggregates behind the admin surface.
type AdminService struct {
	DB *gorm.DB
}

// Stats returns the marketplace totals in one pass.
func (s *AdminService) Stats(ctx context.Context) (*repo.AdminStats, error) {
	return repo.GetAdminStats(ctx, s.DB)
}
