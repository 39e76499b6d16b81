package services_test

import (
	"testing"
	"time"

	"passkey_ms/config"
	"passkey_ms/domain"
	"passkey_ms/dtos/request"
	"passkey_ms/services"
	"passkey_ms/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokenStore struct {
	tokens map[uint]string
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[uint]string{}}
}

func (f *fakeTokenStore) SetRefreshToken(userId uint, refreshToken string) error {
	f.tokens[userId] = refreshToken
	return nil
}

func (f *fakeTokenStore) GetRefreshToken(userId uint) (string, error) {
	return f.tokens[userId], nil
}

func (f *fakeTokenStore) DelRefreshToken(userId uint) {
	delete(f.tokens, userId)
}

var _ services.ITokenStore = (*fakeTokenStore)(nil)

func userServiceFixture(t *testing.T) (services.IUserService, *fakeTokenStore) {
	t.Helper()
	config.Conf.Application.Security.TokenValidityInSeconds = 60
	config.Conf.Application.Security.TokenValidityInSecondsForRememberMe = 3600

	hashed, err := util.HashPassword("s3cret")
	require.NoError(t, err)

	users := newFakeUserRepo(&domain.User{Id: 42, Email: "alice@example.com", Password: hashed})
	store := newFakeTokenStore()
	return services.NewUserService(nil, users, store, newTestJWTService()), store
}

func TestLoginLocal(t *testing.T) {
	svc, store := userServiceFixture(t)

	tokens, err := svc.LoginLocal(&request.LoginRequest{Email: "alice@example.com", Password: "s3cret"})

	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.Equal(t, tokens.RefreshToken, store.tokens[42])
}

func TestLoginLocalWrongPassword(t *testing.T) {
	svc, _ := userServiceFixture(t)

	_, err := svc.LoginLocal(&request.LoginRequest{Email: "alice@example.com", Password: "wrong"})

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestLoginLocalUnknownEmail(t *testing.T) {
	svc, _ := userServiceFixture(t)

	_, err := svc.LoginLocal(&request.LoginRequest{Email: "ghost@example.com", Password: "s3cret"})

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestRefreshTokenRotates(t *testing.T) {
	svc, store := userServiceFixture(t)

	jwtSvc := newTestJWTService()
	refresh, err := jwtSvc.GenerateToken(42, time.Hour)
	require.NoError(t, err)
	store.tokens[42] = refresh

	tokens, err := svc.RefreshToken(&request.RefreshTokenRequest{RefreshToken: refresh})

	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.Equal(t, tokens.RefreshToken, store.tokens[42])
}

func TestRefreshTokenRejectsUnknownToken(t *testing.T) {
	svc, store := userServiceFixture(t)

	refresh, err := newTestJWTService().GenerateToken(42, time.Hour)
	require.NoError(t, err)
	store.tokens[42] = "something-else"

	_, err = svc.RefreshToken(&request.RefreshTokenRequest{RefreshToken: refresh})

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestRefreshTokenRejectsGarbage(t *testing.T) {
	svc, _ := userServiceFixture(t)

	_, err := svc.RefreshToken(&request.RefreshTokenRequest{RefreshToken: "not-a-jwt"})

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
