package services

import (
	"context"
)

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Project     ProjectSvcFacade
	Appointment AppointmentSvcFacade
	Health      HealthSvc
}

// HealthSvc reports whether the service can reach its dependencies.
type HealthSvc interface {
	CheckHealth(ctx context.Context) error
}
