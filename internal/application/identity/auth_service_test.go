package identity

import (
	"context"
	"testing"
	"time"

	"github.com/shakwa/backend/internal/domain/catalog"
	"github.com/shakwa/backend/internal/domain/identity"
	"github.com/shakwa/backend/internal/domain/shared"
	"github.com/shakwa/backend/internal/infrastructure/auth"
	"github.com/shakwa/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService(citizenRepo *MockCitizenRepository, employeeRepo *MockEmployeeRepository, roleRepo *MockRoleRepository) (*AuthService, *auth.JWTService, *auth.InMemoryTokenBlacklist) {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "auth-service-test-secret-long-enough",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "shakwa-test",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()
	svc := NewAuthService(citizenRepo, employeeRepo, roleRepo, jwtService, blacklist, zap.NewNop())
	return svc, jwtService, blacklist
}

func testCitizen(t *testing.T, email, password string) *identity.Citizen {
	t.Helper()
	citizen, err := identity.NewCitizen("سامر", "خليل", email, password)
	require.NoError(t, err)
	return citizen
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("new citizen gets citizen tokens", func(t *testing.T) {
		citizenRepo := new(MockCitizenRepository)
		svc, jwtService, _ := newAuthService(citizenRepo, new(MockEmployeeRepository), new(MockRoleRepository))

		citizenRepo.On("ExistsByEmail", ctx, "samer@example.com").Return(false, nil)
		citizenRepo.On("Save", ctx, mock.AnythingOfType("*identity.Citizen")).Return(nil)

		result, err := svc.Register(ctx, RegisterRequest{
			FirstName: "سامر",
			LastName:  "خليل",
			Email:     "samer@example.com",
			Password:  "password123",
		})
		require.NoError(t, err)
		assert.Equal(t, string(identity.CallerKindCitizen), result.User.Kind)

		claims, err := jwtService.ValidateAccessToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, string(identity.CallerKindCitizen), claims.Kind)
		assert.Empty(t, claims.Agency)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		citizenRepo := new(MockCitizenRepository)
		svc, _, _ := newAuthService(citizenRepo, new(MockEmployeeRepository), new(MockRoleRepository))

		citizenRepo.On("ExistsByEmail", ctx, "taken@example.com").Return(true, nil)

		_, err := svc.Register(ctx, RegisterRequest{
			FirstName: "سامر",
			LastName:  "خليل",
			Email:     "taken@example.com",
			Password:  "password123",
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		citizenRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("citizen login", func(t *testing.T) {
		citizenRepo := new(MockCitizenRepository)
		svc, _, _ := newAuthService(citizenRepo, new(MockEmployeeRepository), new(MockRoleRepository))
		citizen := testCitizen(t, "samer@example.com", "password123")

		citizenRepo.On("FindByEmail", ctx, "samer@example.com").Return(citizen, nil)

		result, err := svc.Login(ctx, LoginRequest{Email: "samer@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, string(identity.CallerKindCitizen), result.User.Kind)
		assert.Equal(t, citizen.ID, result.User.ID)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		citizenRepo := new(MockCitizenRepository)
		svc, _, _ := newAuthService(citizenRepo, new(MockEmployeeRepository), new(MockRoleRepository))
		citizen := testCitizen(t, "samer@example.com", "password123")

		citizenRepo.On("FindByEmail", ctx, "samer@example.com").Return(citizen, nil)

		_, err := svc.Login(ctx, LoginRequest{Email: "samer@example.com", Password: "wrong-password"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("unknown email rejected with same error", func(t *testing.T) {
		citizenRepo := new(MockCitizenRepository)
		employeeRepo := new(MockEmployeeRepository)
		svc, _, _ := newAuthService(citizenRepo, employeeRepo, new(MockRoleRepository))

		citizenRepo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, shared.ErrNotFound)
		employeeRepo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, shared.ErrNotFound)

		_, err := svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "password123"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("employee login carries agency", func(t *testing.T) {
		citizenRepo := new(MockCitizenRepository)
		employeeRepo := new(MockEmployeeRepository)
		roleRepo := new(MockRoleRepository)
		svc, jwtService, _ := newAuthService(citizenRepo, employeeRepo, roleRepo)

		role := testRole("agent")
		employee, err := identity.NewEmployee("أحمد", "علي", "ahmad.water@gov.sy", "password123", catalog.AgencyWater, role.ID)
		require.NoError(t, err)

		citizenRepo.On("FindByEmail", ctx, "ahmad.water@gov.sy").Return(nil, shared.ErrNotFound)
		employeeRepo.On("FindByEmail", ctx, "ahmad.water@gov.sy").Return(employee, nil)
		roleRepo.On("FindByID", ctx, role.ID).Return(role, nil)

		result, err := svc.Login(ctx, LoginRequest{Email: "ahmad.water@gov.sy", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, string(identity.CallerKindEmployee), result.User.Kind)
		assert.Equal(t, string(catalog.AgencyWater), result.User.Agency)

		claims, err := jwtService.ValidateAccessToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, string(catalog.AgencyWater), claims.Agency)
	})

	t.Run("role lookup failure fails the login", func(t *testing.T) {
		citizenRepo := new(MockCitizenRepository)
		employeeRepo := new(MockEmployeeRepository)
		roleRepo := new(MockRoleRepository)
		svc, _, _ := newAuthService(citizenRepo, employeeRepo, roleRepo)

		role := testRole(AdminRoleName)
		employee, err := identity.NewEmployee("مدير", "النظام", "admin@gov.sy", "password123", catalog.AgencyInterior, role.ID)
		require.NoError(t, err)

		citizenRepo.On("FindByEmail", ctx, "admin@gov.sy").Return(nil, shared.ErrNotFound)
		employeeRepo.On("FindByEmail", ctx, "admin@gov.sy").Return(employee, nil)
		roleRepo.On("FindByID", ctx, role.ID).Return(nil, assert.AnError)

		// A transient store error must not downgrade an admin to an
		// employee token.
		_, err = svc.Login(ctx, LoginRequest{Email: "admin@gov.sy", Password: "password123"})
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("missing role still yields employee kind", func(t *testing.T) {
		citizenRepo := new(MockCitizenRepository)
		employeeRepo := new(MockEmployeeRepository)
		roleRepo := new(MockRoleRepository)
		svc, _, _ := newAuthService(citizenRepo, employeeRepo, roleRepo)

		role := testRole("agent")
		employee, err := identity.NewEmployee("أحمد", "علي", "ahmad.water@gov.sy", "password123", catalog.AgencyWater, role.ID)
		require.NoError(t, err)

		citizenRepo.On("FindByEmail", ctx, "ahmad.water@gov.sy").Return(nil, shared.ErrNotFound)
		employeeRepo.On("FindByEmail", ctx, "ahmad.water@gov.sy").Return(employee, nil)
		roleRepo.On("FindByID", ctx, role.ID).Return(nil, shared.ErrNotFound)

		result, err := svc.Login(ctx, LoginRequest{Email: "ahmad.water@gov.sy", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, string(identity.CallerKindEmployee), result.User.Kind)
	})

	t.Run("admin role yields admin kind", func(t *testing.T) {
		citizenRepo := new(MockCitizenRepository)
		employeeRepo := new(MockEmployeeRepository)
		roleRepo := new(MockRoleRepository)
		svc, jwtService, _ := newAuthService(citizenRepo, employeeRepo, roleRepo)

		role := testRole(AdminRoleName)
		employee, err := identity.NewEmployee("مدير", "النظام", "admin@gov.sy", "password123", catalog.AgencyInterior, role.ID)
		require.NoError(t, err)

		citizenRepo.On("FindByEmail", ctx, "admin@gov.sy").Return(nil, shared.ErrNotFound)
		employeeRepo.On("FindByEmail", ctx, "admin@gov.sy").Return(employee, nil)
		roleRepo.On("FindByID", ctx, role.ID).Return(role, nil)

		result, err := svc.Login(ctx, LoginRequest{Email: "admin@gov.sy", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, string(identity.CallerKindAdmin), result.User.Kind)

		claims, err := jwtService.ValidateAccessToken(result.AccessToken)
		require.NoError(t, err)
		caller, err := claims.ToCaller()
		require.NoError(t, err)
		assert.True(t, caller.IsAdmin())
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("refresh rotates the pair and revokes the old token", func(t *testing.T) {
		citizenRepo := new(MockCitizenRepository)
		svc, _, _ := newAuthService(citizenRepo, new(MockEmployeeRepository), new(MockRoleRepository))
		citizen := testCitizen(t, "samer@example.com", "password123")

		citizenRepo.On("FindByEmail", ctx, "samer@example.com").Return(citizen, nil)
		citizenRepo.On("FindByID", ctx, citizen.ID).Return(citizen, nil)

		login, err := svc.Login(ctx, LoginRequest{Email: "samer@example.com", Password: "password123"})
		require.NoError(t, err)

		refreshed, err := svc.Refresh(ctx, RefreshRequest{RefreshToken: login.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)

		// Second use of the same refresh token must fail
		_, err = svc.Refresh(ctx, RefreshRequest{RefreshToken: login.RefreshToken})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TOKEN_REVOKED", domainErr.Code)
	})

	t.Run("refresh for deleted account rejected", func(t *testing.T) {
		citizenRepo := new(MockCitizenRepository)
		svc, _, _ := newAuthService(citizenRepo, new(MockEmployeeRepository), new(MockRoleRepository))
		citizen := testCitizen(t, "samer@example.com", "password123")

		citizenRepo.On("FindByEmail", ctx, "samer@example.com").Return(citizen, nil)
		citizenRepo.On("FindByID", ctx, citizen.ID).Return(nil, shared.ErrNotFound)

		login, err := svc.Login(ctx, LoginRequest{Email: "samer@example.com", Password: "password123"})
		require.NoError(t, err)

		_, err = svc.Refresh(ctx, RefreshRequest{RefreshToken: login.RefreshToken})
		require.Error(t, err)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		svc, _, _ := newAuthService(new(MockCitizenRepository), new(MockEmployeeRepository), new(MockRoleRepository))

		_, err := svc.Refresh(ctx, RefreshRequest{RefreshToken: "not.a.token"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("logout blacklists both tokens", func(t *testing.T) {
		citizenRepo := new(MockCitizenRepository)
		svc, jwtService, blacklist := newAuthService(citizenRepo, new(MockEmployeeRepository), new(MockRoleRepository))
		citizen := testCitizen(t, "samer@example.com", "password123")

		citizenRepo.On("FindByEmail", ctx, "samer@example.com").Return(citizen, nil)

		login, err := svc.Login(ctx, LoginRequest{Email: "samer@example.com", Password: "password123"})
		require.NoError(t, err)

		accessClaims, err := jwtService.ValidateAccessToken(login.AccessToken)
		require.NoError(t, err)

		require.NoError(t, svc.Logout(ctx, accessClaims, login.RefreshToken))

		revoked, err := blacklist.IsBlacklisted(ctx, accessClaims.ID)
		require.NoError(t, err)
		assert.True(t, revoked)

		refreshClaims, err := jwtService.ValidateRefreshToken(login.RefreshToken)
		require.NoError(t, err)
		revoked, err = blacklist.IsBlacklisted(ctx, refreshClaims.ID)
		require.NoError(t, err)
		assert.True(t, revoked)
	})
}
