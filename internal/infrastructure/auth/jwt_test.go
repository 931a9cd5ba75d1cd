package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shakwa/backend/internal/domain/catalog"
	"github.com/shakwa/backend/internal/domain/identity"
	"github.com/shakwa/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-thats-long-enough",
		RefreshSecret:          "test-refresh-secret-thats-long-enough",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "shakwa-test",
	})
}

func TestGenerateTokenPair(t *testing.T) {
	svc := newTestJWTService()

	t.Run("citizen token carries kind without agency", func(t *testing.T) {
		userID := uuid.New()
		pair, err := svc.GenerateTokenPair(GenerateTokenInput{
			UserID: userID,
			Kind:   identity.CallerKindCitizen,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.Equal(t, "Bearer", pair.TokenType)

		claims, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, string(identity.CallerKindCitizen), claims.Kind)
		assert.Empty(t, claims.Agency)
	})

	t.Run("employee token carries agency and role", func(t *testing.T) {
		roleID := uuid.New()
		pair, err := svc.GenerateTokenPair(GenerateTokenInput{
			UserID: uuid.New(),
			Kind:   identity.CallerKindEmployee,
			Agency: catalog.AgencyWater,
			RoleID: roleID,
		})
		require.NoError(t, err)

		claims, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, string(catalog.AgencyWater), claims.Agency)
		assert.Equal(t, roleID.String(), claims.RoleID)
	})
}

func TestValidateToken(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID: uuid.New(),
		Kind:   identity.CallerKindCitizen,
	})
	require.NoError(t, err)

	t.Run("access token rejected as refresh", func(t *testing.T) {
		_, err := svc.ValidateRefreshToken(pair.AccessToken)
		assert.Error(t, err)
	})

	t.Run("refresh token rejected as access", func(t *testing.T) {
		_, err := svc.ValidateAccessToken(pair.RefreshToken)
		assert.Error(t, err)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with other secret rejected", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                 "a-completely-different-secret-value!!",
			AccessTokenExpiration:  time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "other",
		})
		otherPair, err := other.GenerateTokenPair(GenerateTokenInput{
			UserID: uuid.New(),
			Kind:   identity.CallerKindCitizen,
		})
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(otherPair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		short := NewJWTService(config.JWTConfig{
			Secret:                 "test-access-secret-thats-long-enough",
			AccessTokenExpiration:  -time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "shakwa-test",
		})
		expired, err := short.GenerateTokenPair(GenerateTokenInput{
			UserID: uuid.New(),
			Kind:   identity.CallerKindCitizen,
		})
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(expired.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestRefreshTokenPair(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID: userID,
		Kind:   identity.CallerKindEmployee,
		Agency: catalog.AgencyHealth,
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokenPair(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, string(catalog.AgencyHealth), claims.Agency)

	t.Run("access token cannot be used to refresh", func(t *testing.T) {
		_, err := svc.RefreshTokenPair(pair.AccessToken)
		assert.Error(t, err)
	})
}

func TestClaimsToCaller(t *testing.T) {
	svc := newTestJWTService()

	t.Run("citizen", func(t *testing.T) {
		userID := uuid.New()
		pair, _ := svc.GenerateTokenPair(GenerateTokenInput{UserID: userID, Kind: identity.CallerKindCitizen})
		claims, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)

		caller, err := claims.ToCaller()
		require.NoError(t, err)
		assert.True(t, caller.IsCitizen())
		assert.Equal(t, userID, caller.ID)
	})

	t.Run("employee requires valid agency", func(t *testing.T) {
		claims := &Claims{UserID: uuid.New().String(), Kind: string(identity.CallerKindEmployee), Agency: "NOT_AN_AGENCY"}
		_, err := claims.ToCaller()
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})

	t.Run("unknown kind fails closed", func(t *testing.T) {
		claims := &Claims{UserID: uuid.New().String(), Kind: "superuser"}
		_, err := claims.ToCaller()
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})

	t.Run("malformed user id fails", func(t *testing.T) {
		claims := &Claims{UserID: "nope", Kind: string(identity.CallerKindAdmin)}
		_, err := claims.ToCaller()
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})
}

func TestInMemoryTokenBlacklist(t *testing.T) {
	bl := NewInMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, bl.AddToBlacklist(ctx, "jti-1", time.Minute))

	blacklisted, err := bl.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, blacklisted)

	blacklisted, err = bl.IsBlacklisted(ctx, "jti-other")
	require.NoError(t, err)
	assert.False(t, blacklisted)

	t.Run("expired entries are dropped", func(t *testing.T) {
		require.NoError(t, bl.AddToBlacklist(ctx, "jti-2", -time.Second))
		blacklisted, err := bl.IsBlacklisted(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, blacklisted)
	})
}
