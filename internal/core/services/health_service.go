package services

import (
	"context"
	"fmt"

	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
)

type healthService struct {
	BaseService
	checker portsrepo.HealthChecker
}

func NewHealthService(checker portsrepo.HealthChecker) portssvc.HealthSvc {
	return &healthService{BaseService: newBaseService(), checker: checker}
}

// CheckHealth pings the storage backend.
func (s *healthService) CheckHealth(ctx context.Context) error {
	if s.checker == nil {
		return fmt.Errorf("no storage health checker configured")
	}
	if err := s.checker.Ping(ctx); err != nil {
		s.LogError(ctx, err, "Storage health check failed")
		return fmt.Errorf("storage unreachable: %w", err)
	}
	return nil
}
