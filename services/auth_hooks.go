package services

import (
	"log"

	"passkey_ms/domain"
	"passkey_ms/dtos/request"
	"passkey_ms/dtos/response"
)

// IAuthHooks is what the embedding application runs after a passkey
// authentication verifies: session establishment for this service means a
// JWT token pair plus an event for downstream consumers. Invoked exactly
// once per successful verify.
type IAuthHooks interface {
	OnAuthenticated(user *domain.User, credentialID string) (*response.Tokens, error)
}

type AuthHooks struct {
	jwt   IJWTService
	redis ITokenStore
}

// NewAuthHooks panics on missing collaborators: a hook wired without its
// token services is a configuration error, not something to discover deep
// inside a ceremony.
func NewAuthHooks(jwt IJWTService, redis ITokenStore) IAuthHooks {
	if jwt == nil || redis == nil {
		panic("auth hooks require jwt and token store collaborators")
	}
	return &AuthHooks{jwt: jwt, redis: redis}
}

func (h *AuthHooks) OnAuthenticated(user *domain.User, credentialID string) (*response.Tokens, error) {
	tokens, err := h.jwt.GenerateTokens(user)
	if err != nil {
		return nil, err
	}
	if err := h.redis.SetRefreshToken(user.Id, tokens.RefreshToken); err != nil {
		return nil, err
	}

	// Event delivery is best-effort; a broker outage must not fail a login.
	if err := SendPasskeyAuthenticatedEventToKafka(&request.PasskeyAuthenticatedEvent{
		UserId:       user.Id,
		Email:        user.Email,
		CredentialId: credentialID,
	}); err != nil {
		log.Println("Failed to publish authenticated event:", err)
	}

	return tokens, nil
}
