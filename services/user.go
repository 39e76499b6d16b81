package services

import (
	"errors"
	"fmt"
	"time"

	"passkey_ms/config"
	"passkey_ms/domain"
	"passkey_ms/dtos/request"
	"passkey_ms/dtos/response"
	"passkey_ms/repository"
	"passkey_ms/util"

	"gorm.io/gorm"
)

// IUserService is the password fallback the passkeys supplement: local login
// and refresh-token rotation.
type IUserService interface {
	LoginLocal(req *request.LoginRequest) (*response.Tokens, error)
	RefreshToken(req *request.RefreshTokenRequest) (*response.Tokens, error)
}

type UserService struct {
	db    *gorm.DB
	repo  repository.IUserRepository
	redis ITokenStore
	jwt   IJWTService
}

func NewUserService(db *gorm.DB, repo repository.IUserRepository, redis ITokenStore, jwt IJWTService) IUserService {
	return &UserService{db: db, repo: repo, redis: redis, jwt: jwt}
}

func (u *UserService) LoginLocal(req *request.LoginRequest) (*response.Tokens, error) {
	user, err := u.repo.GetUserByEmail(u.db, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	if !util.VerifyPassword(req.Password, user.Password) {
		return nil, domain.ErrUnauthenticated
	}

	tokens, err := u.jwt.GenerateTokens(user)
	if err != nil {
		return nil, err
	}
	if err := u.redis.SetRefreshToken(user.Id, tokens.RefreshToken); err != nil {
		return nil, err
	}
	return tokens, nil
}

func (u *UserService) RefreshToken(req *request.RefreshTokenRequest) (*response.Tokens, error) {
	token, err := u.jwt.ParseJWT(req.RefreshToken)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	claims, err := u.jwt.GetClaims(token)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	userID := uint(sub)

	storedToken, err := u.redis.GetRefreshToken(userID)
	if err != nil || storedToken != req.RefreshToken {
		return nil, domain.ErrUnauthenticated
	}

	newAccessToken, err := u.jwt.GenerateToken(userID, time.Duration(config.Conf.Application.Security.TokenValidityInSeconds)*time.Second)
	if err != nil {
		return nil, err
	}
	newRefreshToken, err := u.jwt.GenerateToken(userID, time.Duration(config.Conf.Application.Security.TokenValidityInSecondsForRememberMe)*time.Second)
	if err != nil {
		return nil, err
	}

	u.redis.DelRefreshToken(userID)
	if err := u.redis.SetRefreshToken(userID, newRefreshToken); err != nil {
		return nil, err
	}

	return &response.Tokens{AccessToken: newAccessToken, RefreshToken: newRefreshToken}, nil
}
