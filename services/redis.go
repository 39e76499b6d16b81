package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"passkey_ms/config"
	"passkey_ms/domain"

	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/redis/go-redis/v9"
)

var ctx = context.Background()

const (
	ChallengeKindRegistration   = "registration"
	ChallengeKindAuthentication = "authentication"
)

// ChallengeRecord binds an outstanding webauthn challenge to the ceremony
// kind and the subject it was issued for: the user id for registration, the
// claimed email for authentication.
type ChallengeRecord struct {
	Kind     string               `json:"kind"`
	Subject  string               `json:"subject"`
	Session  webauthn.SessionData `json:"session"`
	IssuedAt time.Time            `json:"issued_at"`
}

// IChallengeStore keeps at most one outstanding challenge per ceremony
// session. Put overwrites any prior unconsumed challenge; Take consumes
// exactly once.
type IChallengeStore interface {
	PutChallenge(ceremonyID string, record *ChallengeRecord) error
	TakeChallenge(ceremonyID string) (*ChallengeRecord, error)
	ClearChallenge(ceremonyID string) error
}

type ITokenStore interface {
	SetRefreshToken(userId uint, refreshToken string) error
	GetRefreshToken(userId uint) (string, error)
	DelRefreshToken(userId uint)
}

type IRedisService interface {
	IChallengeStore
	ITokenStore
}

type RedisService struct {
	rdb *redis.Client
}

func NewRedisService(rdb *redis.Client) *RedisService {
	return &RedisService{rdb: rdb}
}

func challengeKey(ceremonyID string) string {
	return fmt.Sprintf("webauthn:challenge:%s", ceremonyID)
}

func (s *RedisService) PutChallenge(ceremonyID string, record *ChallengeRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, challengeKey(ceremonyID), data, config.ChallengeTTL()).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// TakeChallenge reads and deletes atomically (GETDEL), so two concurrent
// verifies can never both observe the same challenge. Absence is
// ErrInvalidState: there is no active ceremony for this session.
func (s *RedisService) TakeChallenge(ceremonyID string) (*ChallengeRecord, error) {
	val, err := s.rdb.GetDel(ctx, challengeKey(ceremonyID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrInvalidState
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	var record ChallengeRecord
	if err := json.Unmarshal([]byte(val), &record); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return &record, nil
}

func (s *RedisService) ClearChallenge(ceremonyID string) error {
	return s.rdb.Del(ctx, challengeKey(ceremonyID)).Err()
}

func (s *RedisService) SetRefreshToken(userId uint, refreshToken string) error {
	return s.rdb.SetEx(ctx, fmt.Sprintf("refresh_%d", userId), refreshToken, time.Duration(config.Conf.Application.Security.TokenValidityInSecondsForRememberMe)*time.Second).Err()
}

func (s *RedisService) GetRefreshToken(userId uint) (string, error) {
	return s.rdb.Get(ctx, fmt.Sprintf("refresh_%d", userId)).Result()
}

func (s *RedisService) DelRefreshToken(userId uint) {
	s.rdb.Del(ctx, fmt.Sprintf("refresh_%d", userId))
}
