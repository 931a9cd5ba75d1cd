package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shakwa/backend/internal/domain/catalog"
	"github.com/shakwa/backend/internal/domain/identity"
	"github.com/shakwa/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupIdentityTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&identity.Citizen{}, &identity.Employee{}, &identity.Role{})
	require.NoError(t, err)

	return db
}

func TestCitizenRepository(t *testing.T) {
	db := setupIdentityTestDB(t)
	repo := NewGormCitizenRepository(db)
	ctx := context.Background()

	citizen, err := identity.NewCitizen("Ahmad", "Khalil", "ahmad@example.com", "password123")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, citizen))

	t.Run("find by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, citizen.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ahmad", found.FirstName)
		assert.True(t, found.CheckPassword("password123"))
	})

	t.Run("find by email is case insensitive", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "  AHMAD@example.COM ")
		require.NoError(t, err)
		assert.Equal(t, citizen.ID, found.ID)
	})

	t.Run("exists by email", func(t *testing.T) {
		exists, err := repo.ExistsByEmail(ctx, "ahmad@example.com")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("missing citizen maps to not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = repo.FindByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		other, err := identity.NewCitizen("Sara", "Nour", "sara@example.com", "password123")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, other))

		require.NoError(t, repo.Delete(ctx, other.ID))
		assert.ErrorIs(t, repo.Delete(ctx, other.ID), shared.ErrNotFound)
	})
}

func TestEmployeeRepository(t *testing.T) {
	db := setupIdentityTestDB(t)
	repo := NewGormEmployeeRepository(db)
	roleRepo := NewGormRoleRepository(db)
	ctx := context.Background()

	role, err := identity.NewRole("AGENT", "Handles citizen complaints")
	require.NoError(t, err)
	require.NoError(t, roleRepo.Save(ctx, role))

	emp, err := identity.NewEmployee("Omar", "Haddad", "omar.haddad.health@gov.sy",
		"password123", catalog.AgencyHealth, role.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, emp))

	t.Run("find by id and email", func(t *testing.T) {
		found, err := repo.FindByID(ctx, emp.ID)
		require.NoError(t, err)
		assert.Equal(t, catalog.AgencyHealth, found.Agency)
		assert.Equal(t, role.ID, found.RoleID)

		found, err = repo.FindByEmail(ctx, "omar.haddad.health@gov.sy")
		require.NoError(t, err)
		assert.Equal(t, emp.ID, found.ID)
	})

	t.Run("find by agency", func(t *testing.T) {
		other, err := identity.NewEmployee("Lina", "Saleh", "lina.saleh.water@gov.sy",
			"password123", catalog.AgencyWater, role.ID)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, other))

		health, err := repo.FindByAgency(ctx, catalog.AgencyHealth)
		require.NoError(t, err)
		require.Len(t, health, 1)
		assert.Equal(t, emp.ID, health[0].ID)

		none, err := repo.FindByAgency(ctx, catalog.AgencyJustice)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("exists by email", func(t *testing.T) {
		exists, err := repo.ExistsByEmail(ctx, "omar.haddad.health@gov.sy")
		require.NoError(t, err)
		assert.True(t, exists)
	})
}

func TestRoleRepository(t *testing.T) {
	db := setupIdentityTestDB(t)
	repo := NewGormRoleRepository(db)
	ctx := context.Background()

	role, err := identity.NewRole("SUPERVISOR", "Reviews agency responses")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, role))

	found, err := repo.FindByName(ctx, "SUPERVISOR")
	require.NoError(t, err)
	assert.Equal(t, role.ID, found.ID)

	_, err = repo.FindByName(ctx, "MISSING")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
