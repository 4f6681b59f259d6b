package jwt_test

import (
	"context"
	"testing"

	"mentorbook/config"
	"mentorbook/infras/jwt"
	"mentorbook/infras/otel/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "mentorbook"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return jwt.New(cfg, mocks.NewOtel())
}

func TestService_GenerateAndValidate(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "user@example.com", "user")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(15*60), pair.ExpiresIn)

	claims, err := svc.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)

	_, err = svc.ValidateToken(ctx, pair.AccessToken, jwt.RefreshToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = svc.ValidateToken(ctx, "not-a-token", jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestService_RefreshTokens(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "user@example.com", "admin")
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokens(ctx, pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, refreshed.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)

	_, err = svc.RefreshTokens(ctx, pair.AccessToken)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	_, err = jwt.ExtractTokenFromHeader("")
	assert.Error(t, err)

	_, err = jwt.ExtractTokenFromHeader("Basic abc")
	assert.Error(t, err)
}

func TestService_ValidateTokenRejections(t *testing.T) {
	ctx := context.Background()

	expired := &config.Config{}
	expired.App.Name = "mentorbook"
	expired.JWT.AccessSecret = "access-secret"
	expired.JWT.AccessExpireMin = -1

	foreign := &config.Config{}
	foreign.App.Name = "elsewhere"
	foreign.JWT.AccessSecret = "access-secret"
	foreign.JWT.AccessExpireMin = 15

	tests := []struct {
		name    string
		issuer  *config.Config
		wantErr error
	}{
		{name: "expired", issuer: expired, wantErr: jwt.ErrExpiredToken},
		{name: "other issuer", issuer: foreign, wantErr: jwt.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair, err := jwt.New(tt.issuer, mocks.NewOtel()).GenerateTokenPair(ctx, "user-1", "user@example.com", "user")
			require.NoError(t, err)

			_, err = newService().ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
