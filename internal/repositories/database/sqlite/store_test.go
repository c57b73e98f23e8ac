package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker_app/internal/repositories/database/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

var t0 = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

func openTestStore(t *testing.T) portsrepo.RepositoryProvider {
	t.Helper()

	path := filepath.Join(t.TempDir(), "finance.db")
	applied, err := sqlite.Migrate(path)
	require.NoError(t, err)
	require.True(t, applied)

	store, err := sqlite.Open(path, 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.Repositories()
}

func newProject(name string, at time.Time) domain.Project {
	return domain.Project{
		ProjectID:    uuid.NewString(),
		Name:         name,
		Transactions: []domain.Transaction{},
		AuditFields:  domain.NewAuditFields(at),
	}
}

func newTransaction(description string, amount string) domain.Transaction {
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		Description:   description,
		Kind:          domain.Income,
		Amount:        decimal.RequireFromString(amount),
		Date:          t0,
		AuditFields:   domain.NewAuditFields(t0.Add(time.Hour)),
	}
}

func TestMigrate_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finance.db")

	applied, err := sqlite.Migrate(path)
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = sqlite.Migrate(path)
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := sqlite.Open("  ", time.Second)
	assert.Error(t, err)
}

func TestProjectRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repos := openTestStore(t)
	p := newProject("Home", t0)

	require.NoError(t, repos.ProjectRepo.SaveProject(ctx, p))

	got, err := repos.ProjectRepo.FindProjectByID(ctx, p.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, "Home", got.Name)
	assert.NotNil(t, got.Transactions)
	assert.Empty(t, got.Transactions)
	assert.Equal(t, t0, got.CreatedAt)
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)
}

func TestProjectRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repos := openTestStore(t)
	missing := uuid.NewString()

	_, err := repos.ProjectRepo.FindProjectByID(ctx, missing)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = repos.ProjectRepo.DeleteProject(ctx, missing)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = repos.ProjectRepo.AppendTransaction(ctx, missing, newTransaction("Sale", "1"))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = repos.ProjectRepo.UpdateProjectDetails(ctx, missing, "x", "", t0)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestProjectRepository_SequentialAppendsAreIndexedInOrder(t *testing.T) {
	ctx := context.Background()
	repos := openTestStore(t)
	p := newProject("Home", t0)
	require.NoError(t, repos.ProjectRepo.SaveProject(ctx, p))

	const n = 5
	for i := 0; i < n; i++ {
		saved, err := repos.ProjectRepo.AppendTransaction(ctx, p.ProjectID, newTransaction("entry", "10.25"))
		require.NoError(t, err)
		assert.Equal(t, i, saved.Index)
	}

	got, err := repos.ProjectRepo.FindProjectByID(ctx, p.ProjectID)
	require.NoError(t, err)
	require.Len(t, got.Transactions, n)
	for i, txn := range got.Transactions {
		assert.Equal(t, i, txn.Index)
		assert.True(t, txn.Amount.Equal(decimal.RequireFromString("10.25")))
	}
	assert.Equal(t, t0.Add(time.Hour), got.UpdatedAt, "append refreshes the project's updatedAt")
}

func TestProjectRepository_ConcurrentAppendsGetDistinctIndices(t *testing.T) {
	ctx := context.Background()
	repos := openTestStore(t)
	p := newProject("Busy", t0)
	require.NoError(t, repos.ProjectRepo.SaveProject(ctx, p))

	const n = 20
	indices := make([]int, n)
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			saved, err := repos.ProjectRepo.AppendTransaction(ctx, p.ProjectID, newTransaction("parallel", "1"))
			if err != nil {
				return err
			}
			indices[i] = saved.Index
			return nil
		})
	}
	require.NoError(t, g.Wait())

	seen := make(map[int]bool, n)
	for _, idx := range indices {
		assert.False(t, seen[idx], "index %d assigned twice", idx)
		seen[idx] = true
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, n)
	}

	got, err := repos.ProjectRepo.FindProjectByID(ctx, p.ProjectID)
	require.NoError(t, err)
	assert.Len(t, got.Transactions, n)
}

func TestProjectRepository_ListOrderedByCreationDesc(t *testing.T) {
	ctx := context.Background()
	repos := openTestStore(t)

	older := newProject("Older", t0)
	newer := newProject("Newer", t0.Add(time.Minute))
	require.NoError(t, repos.ProjectRepo.SaveProject(ctx, older))
	require.NoError(t, repos.ProjectRepo.SaveProject(ctx, newer))
	_, err := repos.ProjectRepo.AppendTransaction(ctx, older.ProjectID, newTransaction("Sale", "3"))
	require.NoError(t, err)

	projects, err := repos.ProjectRepo.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Newer", projects[0].Name)
	assert.Empty(t, projects[0].Transactions)
	assert.Len(t, projects[1].Transactions, 1)
}

func TestProjectRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	repos := openTestStore(t)
	p := newProject("Temp", t0)
	require.NoError(t, repos.ProjectRepo.SaveProject(ctx, p))
	txn := newTransaction("Sale", "5")
	_, err := repos.ProjectRepo.AppendTransaction(ctx, p.ProjectID, txn)
	require.NoError(t, err)

	deleted, err := repos.ProjectRepo.DeleteProject(ctx, p.ProjectID)
	require.NoError(t, err)
	assert.Len(t, deleted.Transactions, 1)

	_, err = repos.ProjectRepo.FindProjectByID(ctx, p.ProjectID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// A new project with the same transaction id proves the old row is gone.
	other := newProject("Other", t0)
	require.NoError(t, repos.ProjectRepo.SaveProject(ctx, other))
	_, err = repos.ProjectRepo.AppendTransaction(ctx, other.ProjectID, txn)
	assert.NoError(t, err)
}

func TestProjectRepository_UpdateTransaction(t *testing.T) {
	ctx := context.Background()
	repos := openTestStore(t)
	p := newProject("Home", t0)
	require.NoError(t, repos.ProjectRepo.SaveProject(ctx, p))
	first, err := repos.ProjectRepo.AppendTransaction(ctx, p.ProjectID, newTransaction("Sale", "150.50"))
	require.NoError(t, err)
	_, err = repos.ProjectRepo.AppendTransaction(ctx, p.ProjectID, newTransaction("Refund", "-20"))
	require.NoError(t, err)

	fields := domain.TransactionFields{
		Description: "Corrected sale",
		Kind:        domain.Expense,
		Amount:      decimal.RequireFromString("99.99"),
		Date:        t0.AddDate(0, 0, 1),
	}
	later := t0.Add(2 * time.Hour)

	byID, err := repos.ProjectRepo.UpdateTransactionByID(ctx, p.ProjectID, first.TransactionID, fields, later)
	require.NoError(t, err)
	assert.Equal(t, 0, byID.Index)
	assert.Equal(t, "Corrected sale", byID.Description)
	assert.Equal(t, domain.Expense, byID.Kind)
	assert.Equal(t, first.CreatedAt, byID.CreatedAt)
	assert.Equal(t, later, byID.UpdatedAt)

	byIndex, err := repos.ProjectRepo.UpdateTransactionAt(ctx, p.ProjectID, 1, fields, later)
	require.NoError(t, err)
	assert.Equal(t, 1, byIndex.Index)

	_, err = repos.ProjectRepo.UpdateTransactionAt(ctx, p.ProjectID, 2, fields, later)
	assert.ErrorIs(t, err, apperrors.ErrIndexOutOfRange)

	_, err = repos.ProjectRepo.UpdateTransactionByID(ctx, p.ProjectID, uuid.NewString(), fields, later)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	got, err := repos.ProjectRepo.FindProjectByID(ctx, p.ProjectID)
	require.NoError(t, err)
	require.Len(t, got.Transactions, 2, "updates never create elements")
	assert.Equal(t, later, got.UpdatedAt)
}

func TestProjectRepository_UpdateDetails(t *testing.T) {
	ctx := context.Background()
	repos := openTestStore(t)
	p := newProject("Home", t0)
	require.NoError(t, repos.ProjectRepo.SaveProject(ctx, p))

	updated, err := repos.ProjectRepo.UpdateProjectDetails(ctx, p.ProjectID, "Flat", "rented", t0.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "Flat", updated.Name)
	assert.Equal(t, "rented", updated.Description)
	assert.Equal(t, t0, updated.CreatedAt)
	assert.Equal(t, t0.Add(time.Minute), updated.UpdatedAt)
}

func tuning(date time.Time) domain.Appointment {
	return domain.Appointment{
		AppointmentID:   uuid.NewString(),
		Client:          "Ana",
		Service:         "Tuning",
		Date:            date,
		Time:            "10:30",
		DurationMinutes: 90,
		Amount:          decimal.RequireFromString("80.00"),
		Status:          domain.StatusPending,
		Reminder:        "1 day before",
		Location:        "Downtown",
		PianoType:       domain.Grand,
		AuditFields:     domain.NewAuditFields(t0),
	}
}

func TestAppointmentRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repos := openTestStore(t)

	early := tuning(t0)
	late := tuning(t0.AddDate(0, 1, 0))
	require.NoError(t, repos.AppointmentRepo.SaveAppointment(ctx, early))
	require.NoError(t, repos.AppointmentRepo.SaveAppointment(ctx, late))

	list, err := repos.AppointmentRepo.ListAppointments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, late.AppointmentID, list[0].AppointmentID, "latest date first")

	replacement := early
	replacement.Status = domain.StatusCompleted
	replacement.DurationMinutes = 120
	replacement.CreatedAt = time.Time{}
	replacement.UpdatedAt = t0.Add(time.Hour)
	stored, err := repos.AppointmentRepo.ReplaceAppointment(ctx, replacement)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, stored.Status)
	assert.Equal(t, 120, stored.DurationMinutes)
	assert.Equal(t, t0, stored.CreatedAt, "createdAt is preserved")
	assert.True(t, stored.Amount.Equal(decimal.NewFromInt(80)))

	require.NoError(t, repos.AppointmentRepo.DeleteAppointment(ctx, early.AppointmentID))
	_, err = repos.AppointmentRepo.FindAppointmentByID(ctx, early.AppointmentID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, repos.AppointmentRepo.DeleteAppointment(ctx, early.AppointmentID), apperrors.ErrNotFound)

	missing := tuning(t0)
	_, err = repos.AppointmentRepo.ReplaceAppointment(ctx, missing)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStore_Ping(t *testing.T) {
	repos := openTestStore(t)
	assert.NoError(t, repos.Health.Ping(context.Background()))
}
