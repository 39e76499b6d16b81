package services_test

import (
	"testing"
	"time"

	"passkey_ms/domain"
	"passkey_ms/services"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func challengeStoreFixture(t *testing.T) (*miniredis.Miniredis, *services.RedisService) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() {
		client.Close()
	})
	return srv, services.NewRedisService(client)
}

func TestChallengeStoreConsumesExactlyOnce(t *testing.T) {
	srv, store := challengeStoreFixture(t)

	record := &services.ChallengeRecord{
		Kind:     services.ChallengeKindRegistration,
		Subject:  "42",
		IssuedAt: time.Now().UTC(),
	}
	require.NoError(t, store.PutChallenge("ceremony-1", record))
	assert.Greater(t, srv.TTL("webauthn:challenge:ceremony-1"), time.Duration(0))

	got, err := store.TakeChallenge("ceremony-1")
	require.NoError(t, err)
	assert.Equal(t, services.ChallengeKindRegistration, got.Kind)
	assert.Equal(t, "42", got.Subject)

	_, err = store.TakeChallenge("ceremony-1")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestChallengeStoreOverwritesPriorChallenge(t *testing.T) {
	_, store := challengeStoreFixture(t)

	require.NoError(t, store.PutChallenge("ceremony-1", &services.ChallengeRecord{Kind: services.ChallengeKindRegistration, Subject: "42"}))
	require.NoError(t, store.PutChallenge("ceremony-1", &services.ChallengeRecord{Kind: services.ChallengeKindAuthentication, Subject: "alice@example.com"}))

	got, err := store.TakeChallenge("ceremony-1")
	require.NoError(t, err)
	assert.Equal(t, services.ChallengeKindAuthentication, got.Kind)
	assert.Equal(t, "alice@example.com", got.Subject)
}

func TestChallengeStoreExpiresWithTTL(t *testing.T) {
	srv, store := challengeStoreFixture(t)

	require.NoError(t, store.PutChallenge("ceremony-1", &services.ChallengeRecord{Kind: services.ChallengeKindRegistration, Subject: "42"}))
	srv.FastForward(10 * time.Minute)

	_, err := store.TakeChallenge("ceremony-1")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestChallengeStoreTransportFault(t *testing.T) {
	// An unreachable redis must read as an outage, never as an absent
	// challenge.
	srv, store := challengeStoreFixture(t)
	srv.Close()

	_, err := store.TakeChallenge("ceremony-1")
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.NotErrorIs(t, err, domain.ErrInvalidState)

	err = store.PutChallenge("ceremony-1", &services.ChallengeRecord{Kind: services.ChallengeKindRegistration, Subject: "42"})
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}
