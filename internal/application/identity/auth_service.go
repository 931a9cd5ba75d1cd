// Package identity contains the application services for accounts:
// citizen registration, login for every account kind, token refresh and
// revocation, and admin-driven employee provisioning.
package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/shakwa/backend/internal/domain/identity"
	"github.com/shakwa/backend/internal/domain/shared"
	"github.com/shakwa/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AdminRoleName is the role whose holders authenticate as platform admins
const AdminRoleName = "admin"

// AuthService handles authentication for citizens, employees and admins
type AuthService struct {
	citizenRepo  identity.CitizenRepository
	employeeRepo identity.EmployeeRepository
	roleRepo     identity.RoleRepository
	jwtService   *auth.JWTService
	blacklist    auth.TokenBlacklist
	logger       *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	citizenRepo identity.CitizenRepository,
	employeeRepo identity.EmployeeRepository,
	roleRepo identity.RoleRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		citizenRepo:  citizenRepo,
		employeeRepo: employeeRepo,
		roleRepo:     roleRepo,
		jwtService:   jwtService,
		blacklist:    blacklist,
		logger:       logger,
	}
}

// Register creates a new citizen account and logs it in
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	exists, err := s.citizenRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	}

	citizen, err := identity.NewCitizen(req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	if err := s.citizenRepo.Save(ctx, citizen); err != nil {
		return nil, err
	}

	s.logger.Info("Citizen registered",
		zap.String("citizen_id", citizen.ID.String()))

	return s.issueTokens(auth.GenerateTokenInput{
		UserID: citizen.ID,
		Kind:   identity.CallerKindCitizen,
	}, UserInfo{
		ID:        citizen.ID,
		Kind:      string(identity.CallerKindCitizen),
		FirstName: citizen.FirstName,
		LastName:  citizen.LastName,
		Email:     citizen.Email,
	})
}

// Login authenticates by email and password. Citizens and employees share
// the same endpoint; an employee holding the admin role authenticates as
// an admin. The error message never reveals which lookup failed.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	citizen, err := s.citizenRepo.FindByEmail(ctx, req.Email)
	if err == nil {
		if !citizen.CheckPassword(req.Password) {
			s.logger.Warn("Invalid password for citizen login")
			return nil, invalidCredentials()
		}
		return s.issueTokens(auth.GenerateTokenInput{
			UserID: citizen.ID,
			Kind:   identity.CallerKindCitizen,
		}, UserInfo{
			ID:        citizen.ID,
			Kind:      string(identity.CallerKindCitizen),
			FirstName: citizen.FirstName,
			LastName:  citizen.LastName,
			Email:     citizen.Email,
		})
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	employee, err := s.employeeRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login attempt for unknown email")
			return nil, invalidCredentials()
		}
		return nil, err
	}
	if !employee.CheckPassword(req.Password) {
		s.logger.Warn("Invalid password for employee login")
		return nil, invalidCredentials()
	}

	// A missing role means a plain employee; any other store error must
	// fail the login rather than silently downgrade an admin.
	kind := identity.CallerKindEmployee
	role, err := s.roleRepo.FindByID(ctx, employee.RoleID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if err == nil && strings.EqualFold(role.Name, AdminRoleName) {
		kind = identity.CallerKindAdmin
	}

	info := UserInfo{
		ID:        employee.ID,
		Kind:      string(kind),
		FirstName: employee.FirstName,
		LastName:  employee.LastName,
		Email:     employee.Email,
		RoleID:    employee.RoleID.String(),
	}
	if kind == identity.CallerKindEmployee {
		info.Agency = string(employee.Agency)
	}

	return s.issueTokens(auth.GenerateTokenInput{
		UserID: employee.ID,
		Kind:   kind,
		Agency: employee.Agency,
		RoleID: employee.RoleID,
	}, info)
}

// Refresh exchanges a valid, unrevoked refresh token for a new pair
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*RefreshResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}

	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Token blacklist check failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to verify token")
	}
	if revoked {
		return nil, shared.NewDomainError("TOKEN_REVOKED", "Refresh token has been revoked")
	}

	// The account must still exist; a deleted employee keeps no access
	// through an old refresh token.
	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}
	switch identity.CallerKind(claims.Kind) {
	case identity.CallerKindCitizen:
		if _, err := s.citizenRepo.FindByID(ctx, userID); err != nil {
			return nil, shared.NewDomainError("TOKEN_INVALID", "Account no longer exists")
		}
	case identity.CallerKindEmployee, identity.CallerKindAdmin:
		if _, err := s.employeeRepo.FindByID(ctx, userID); err != nil {
			return nil, shared.NewDomainError("TOKEN_INVALID", "Account no longer exists")
		}
	default:
		return nil, shared.NewDomainError("TOKEN_INVALID", "Unknown account kind in token")
	}

	pair, err := s.jwtService.RefreshTokenPair(req.RefreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}

	// The old refresh token is single-use
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to revoke used refresh token", zap.Error(err))
	}

	return &RefreshResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}, nil
}

// Logout revokes the caller's tokens. The access token claims come from
// the JWT middleware; the refresh token is optional.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims, refreshToken string) error {
	if claims != nil && claims.ID != "" {
		if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
			s.logger.Error("Failed to blacklist access token", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke token")
		}
	}

	if refreshToken != "" {
		refreshClaims, err := s.jwtService.ValidateRefreshToken(refreshToken)
		if err == nil {
			if err := s.blacklist.AddToBlacklist(ctx, refreshClaims.ID, refreshClaims.GetRemainingTTL()); err != nil {
				s.logger.Error("Failed to blacklist refresh token", zap.Error(err))
				return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke token")
			}
		}
	}

	if claims != nil {
		s.logger.Info("User logged out", zap.String("user_id", claims.UserID))
	}
	return nil
}

// issueTokens generates a token pair and assembles the auth result
func (s *AuthService) issueTokens(input auth.GenerateTokenInput, user UserInfo) (*AuthResult, error) {
	pair, err := s.jwtService.GenerateTokenPair(input)
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	return &AuthResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  user,
	}, nil
}

func invalidCredentials() error {
	return shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
}

// mapTokenError converts JWT layer errors into domain errors
func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Token has expired")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidTokenType), errors.Is(err, auth.ErrInvalidClaims):
		return shared.NewDomainError("TOKEN_INVALID", "Invalid token")
	default:
		return shared.NewDomainError("TOKEN_ERROR", "Failed to validate token")
	}
}
