package services

import (
	"strings"

	"passkey_ms/domain"
	"passkey_ms/dtos/response"
	"passkey_ms/repository"

	"gorm.io/gorm"
)

// ICredentialService covers a user's own credential management: list,
// rename, revoke. Ownership is enforced on every operation.
type ICredentialService interface {
	List(userID uint) (*response.CredentialListResponse, error)
	Rename(userID uint, credentialID uint, nickname string) (*response.UpdateCredentialResponse, error)
	Revoke(userID uint, credentialID uint) error
}

type CredentialService struct {
	db       *gorm.DB
	credRepo repository.ICredentialRepository
}

func NewCredentialService(db *gorm.DB, credRepo repository.ICredentialRepository) ICredentialService {
	return &CredentialService{db: db, credRepo: credRepo}
}

func projection(c *domain.WebauthnCredential) response.CredentialProjection {
	return response.CredentialProjection{
		ID:         c.ID,
		Nickname:   c.Nickname,
		CreatedAt:  c.CreatedAt,
		LastUsedAt: c.LastUsedAt,
	}
}

func (cs *CredentialService) List(userID uint) (*response.CredentialListResponse, error) {
	credentials, err := cs.credRepo.ListByUser(cs.db, userID)
	if err != nil {
		return nil, storageErr(err)
	}

	projections := make([]response.CredentialProjection, 0, len(credentials))
	for i := range credentials {
		projections = append(projections, projection(&credentials[i]))
	}
	return &response.CredentialListResponse{Credentials: projections, Count: len(projections)}, nil
}

func (cs *CredentialService) Rename(userID uint, credentialID uint, nickname string) (*response.UpdateCredentialResponse, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return nil, domain.ErrValidationFailed
	}

	rows, err := cs.credRepo.UpdateNickname(cs.db, userID, credentialID, nickname)
	if err != nil {
		return nil, storageErr(err)
	}
	if rows == 0 {
		return nil, domain.ErrNotFound
	}

	credential, err := cs.credRepo.GetByIDForUser(cs.db, userID, credentialID)
	if err != nil {
		return nil, storageErr(err)
	}
	return &response.UpdateCredentialResponse{
		Success:    true,
		Message:    "Passkey updated successfully",
		Credential: projection(credential),
	}, nil
}

func (cs *CredentialService) Revoke(userID uint, credentialID uint) error {
	rows, err := cs.credRepo.DeleteForUser(cs.db, userID, credentialID)
	if err != nil {
		return storageErr(err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
