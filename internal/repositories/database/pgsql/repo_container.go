package pgsql

import (
	"time"

	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every PostgreSQL repository onto one pool.
// opTimeout bounds each repository call; zero selects DefaultOperationTimeout.
func NewRepositoryProvider(dbPool *pgxpool.Pool, opTimeout time.Duration) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ProjectRepo:     newPgxProjectRepository(dbPool, opTimeout),
		AppointmentRepo: newPgxAppointmentRepository(dbPool, opTimeout),
		Health:          &BaseRepository{Pool: dbPool, OpTimeout: opTimeout},
	}
}
