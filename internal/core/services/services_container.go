package services

import (
	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, options ...Option) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Project:     NewProjectService(repos.ProjectRepo, options...),
		Appointment: NewAppointmentService(repos.AppointmentRepo, options...),
		Health:      NewHealthService(repos.Health),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.ProjectSvcFacade     = (*projectService)(nil)
	_ portssvc.AppointmentSvcFacade = (*appointmentService)(nil)
	_ portssvc.HealthSvc            = (*healthService)(nil)
)
