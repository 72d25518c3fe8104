package postgres

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/oksasatya/campus-doctor-directory/internal/domain/entity"
	"github.com/oksasatya/campus-doctor-directory/internal/domain/repository"
)

// newTestPool starts a disposable Postgres, applies the migrations and
// returns a pool on it. Skipped with -short or without a container runtime.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres container test skipped in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("doctordb"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if ctr != nil {
		t.Cleanup(func() { _ = ctr.Terminate(context.Background()) })
	}
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	migrateUp(t, dsn)

	pool, err := NewPool(ctx, dsn, 4, 1, time.Hour)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func migrateUp(t *testing.T, dsn string) {
	t.Helper()
	dir, err := filepath.Abs(filepath.Join("..", "..", "..", "db", "migrations"))
	require.NoError(t, err)

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	require.NoError(t, err)
	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	require.NoError(t, err)
	require.NoError(t, m.Up())
}

func integrationDirectory() entity.Directory {
	return entity.Directory{
		Specialties: []string{"Cardiology", "Internal Medicine", "Pediatrics"},
		Insurances:  []string{"Aetna", "Medicare", "Cigna"},
		Doctors: []entity.Doctor{
			{
				Name: "Dr. Zoe Adams", Address: "1 Peachtree St", City: "Atlanta", State: "GA",
				Zipcode: "30303", Phone: "404-555-0101", Email: "zoe@example.com",
				Specialties: []string{"Cardiology", "Internal Medicine"},
				Insurances:  []string{"Aetna", "Medicare"},
			},
			{
				Name: "Dr. Amy Brooks", Address: "2 Auburn Ave", City: "Atlanta", State: "GA",
				Zipcode: "30310", Phone: "404-555-0102", Email: "amy@example.com",
				Bio:         "Cardiologist.",
				Specialties: []string{"Cardiology"},
				Insurances:  []string{"Cigna"},
			},
			{
				Name: "Dr. Amy Brooks", Address: "3 Edgewood Ave", City: "Atlanta", State: "GA",
				Zipcode: "30310", Phone: "404-555-0103", Email: "amy.b@example.com",
				Specialties: []string{"Pediatrics"},
				Insurances:  []string{"Aetna", "Medicare", "Cigna"},
			},
		},
	}
}

func TestDirectoryRepositoryAgainstPostgres(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := NewDirectoryRepository(pool)

	stored, err := repo.Provision(ctx, integrationDirectory())
	require.NoError(t, err)
	require.Len(t, stored, 3)

	again, err := repo.Provision(ctx, integrationDirectory())
	require.NoError(t, err, "provisioning is repeatable")
	assert.Equal(t, stored[0].ID, again[0].ID)

	specs, err := repo.ListSpecialties(ctx)
	require.NoError(t, err)
	require.Len(t, specs, 3)
	assert.Equal(t, "Cardiology", specs[0].Name)

	names := func(ds []entity.Doctor) []string {
		out := make([]string, len(ds))
		for i, d := range ds {
			out[i] = d.Email
		}
		return out
	}

	t.Run("no filters returns every doctor once ordered by name then id", func(t *testing.T) {
		got, err := repo.SearchDoctors(ctx, entity.DoctorFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"amy@example.com", "amy.b@example.com", "zoe@example.com"}, names(got))
	})

	t.Run("doctor with several association rows appears once", func(t *testing.T) {
		got, err := repo.SearchDoctors(ctx, entity.DoctorFilter{Insurance: "Aetna"})
		require.NoError(t, err)
		assert.Equal(t, []string{"amy.b@example.com", "zoe@example.com"}, names(got))
	})

	t.Run("filters intersect", func(t *testing.T) {
		got, err := repo.SearchDoctors(ctx, entity.DoctorFilter{Specialty: "Cardiology", Insurance: "Medicare"})
		require.NoError(t, err)
		assert.Equal(t, []string{"zoe@example.com"}, names(got))

		got, err = repo.SearchDoctors(ctx, entity.DoctorFilter{Specialty: "Cardiology", Zipcode: "30310"})
		require.NoError(t, err)
		assert.Equal(t, []string{"amy@example.com"}, names(got))

		got, err = repo.SearchDoctors(ctx, entity.DoctorFilter{Specialty: "cardiology"})
		require.NoError(t, err)
		assert.Empty(t, got, "matching is case-sensitive")
	})

	t.Run("association names cover every row", func(t *testing.T) {
		got, err := repo.SearchDoctors(ctx, entity.DoctorFilter{Specialty: "Cardiology", Insurance: "Medicare"})
		require.NoError(t, err)
		require.Len(t, got, 1)

		specNames, err := repo.SpecialtyNames(ctx, []int64{got[0].ID})
		require.NoError(t, err)
		assert.Equal(t, []string{"Cardiology", "Internal Medicine"}, specNames[got[0].ID])

		insNames, err := repo.InsuranceNames(ctx, []int64{got[0].ID})
		require.NoError(t, err)
		assert.Equal(t, []string{"Aetna", "Medicare"}, insNames[got[0].ID])
	})

	t.Run("get by id", func(t *testing.T) {
		d, err := repo.GetDoctor(ctx, stored[1].ID)
		require.NoError(t, err)
		assert.Equal(t, "Cardiologist.", d.Bio)
		assert.Empty(t, d.Affiliation)

		_, err = repo.GetDoctor(ctx, 999999)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestUserRepositoryAgainstPostgres(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := NewUserRepository(pool)

	u := &entity.User{Name: "Jane", Email: "jane@spelman.edu", Password: "hash", VerificationCode: "123456"}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotZero(t, u.ID)

	err := repo.Create(ctx, &entity.User{Name: "Jane", Email: "jane@spelman.edu", Password: "hash", VerificationCode: "654321"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	_, err = repo.MarkVerified(ctx, "jane@spelman.edu", "000000")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	verified, err := repo.MarkVerified(ctx, "jane@spelman.edu", "123456")
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)

	got, err := repo.GetByEmail(ctx, "jane@spelman.edu")
	require.NoError(t, err)
	assert.True(t, got.IsVerified)

	_, err = repo.GetByEmail(ctx, "ghost@spelman.edu")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
