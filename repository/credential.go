package repository

import (
	"time"

	"passkey_ms/domain"

	"gorm.io/gorm"
)

type ICredentialRepository interface {
	Create(db *gorm.DB, credential *domain.WebauthnCredential) error
	CountByUser(db *gorm.DB, userID uint) (int64, error)
	ListByUser(db *gorm.DB, userID uint) ([]domain.WebauthnCredential, error)
	GetByIDForUser(db *gorm.DB, userID uint, id uint) (*domain.WebauthnCredential, error)
	GetActiveByExternalIDForUser(db *gorm.DB, userID uint, externalID []byte) (*domain.WebauthnCredential, error)
	UpdateNickname(db *gorm.DB, userID uint, id uint, nickname string) (int64, error)
	DeleteForUser(db *gorm.DB, userID uint, id uint) (int64, error)
	AdvanceSignCount(db *gorm.DB, id uint, signCount uint32, authenticator []byte) (int64, error)
	TouchLastUsed(db *gorm.DB, id uint, authenticator []byte) error
}

type CredentialRepository struct {
}

func NewCredentialRepository() ICredentialRepository {
	return &CredentialRepository{}
}

// Create inserts the credential row; the unique index on external_id makes
// the ledger the arbiter of duplicate registrations (gorm.ErrDuplicatedKey).
func (c *CredentialRepository) Create(db *gorm.DB, credential *domain.WebauthnCredential) error {
	return db.Create(credential).Error
}

func (c *CredentialRepository) CountByUser(db *gorm.DB, userID uint) (int64, error) {
	var count int64
	err := db.Model(&domain.WebauthnCredential{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (c *CredentialRepository) ListByUser(db *gorm.DB, userID uint) ([]domain.WebauthnCredential, error) {
	var credentials []domain.WebauthnCredential
	err := db.Where("user_id = ?", userID).
		Order("id").
		Find(&credentials).Error
	return credentials, err
}

func (c *CredentialRepository) GetByIDForUser(db *gorm.DB, userID uint, id uint) (*domain.WebauthnCredential, error) {
	var credential domain.WebauthnCredential
	err := db.Where("id = ? AND user_id = ?", id, userID).
		First(&credential).Error
	if err != nil {
		return nil, err
	}
	return &credential, nil
}

func (c *CredentialRepository) GetActiveByExternalIDForUser(db *gorm.DB, userID uint, externalID []byte) (*domain.WebauthnCredential, error) {
	var credential domain.WebauthnCredential
	err := db.Where("user_id = ? AND external_id = ? AND active = ?", userID, externalID, true).
		First(&credential).Error
	if err != nil {
		return nil, err
	}
	return &credential, nil
}

func (c *CredentialRepository) UpdateNickname(db *gorm.DB, userID uint, id uint, nickname string) (int64, error) {
	res := db.Model(&domain.WebauthnCredential{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("nickname", nickname)
	return res.RowsAffected, res.Error
}

func (c *CredentialRepository) DeleteForUser(db *gorm.DB, userID uint, id uint) (int64, error) {
	res := db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.WebauthnCredential{})
	return res.RowsAffected, res.Error
}

// AdvanceSignCount is the anti-replay write: it only lands when the stored
// counter is still below the asserted one, so of two concurrent logins with
// a cloned credential at most one advances the counter.
func (c *CredentialRepository) AdvanceSignCount(db *gorm.DB, id uint, signCount uint32, authenticator []byte) (int64, error) {
	now := time.Now()
	res := db.Model(&domain.WebauthnCredential{}).
		Where("id = ? AND sign_count < ?", id, signCount).
		Updates(map[string]interface{}{
			"sign_count":    signCount,
			"authenticator": authenticator,
			"last_used_at":  now,
		})
	return res.RowsAffected, res.Error
}

// TouchLastUsed records a successful login for counters that never advance
// (sign count pinned at zero).
func (c *CredentialRepository) TouchLastUsed(db *gorm.DB, id uint, authenticator []byte) error {
	now := time.Now()
	return db.Model(&domain.WebauthnCredential{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"authenticator": authenticator,
			"last_used_at":  now,
		}).Error
}
