package repository

import (
	"passkey_ms/domain"

	"gorm.io/gorm"
)

type IUserRepository interface {
	GetByID(db *gorm.DB, id uint) (*domain.User, error)
	GetByIDWithCredentials(db *gorm.DB, id uint) (*domain.User, error)
	GetUserByEmail(db *gorm.DB, email string) (*domain.User, error)
	GetByEmailWithCredentials(db *gorm.DB, email string) (*domain.User, error)
	Create(db *gorm.DB, entity *domain.User) (*domain.User, error)
	SetWebauthnHandle(db *gorm.DB, userID uint, handle []byte) (int64, error)
}

type UserRepository struct {
}

func NewUserRepository() IUserRepository {
	return &UserRepository{}
}

func (u *UserRepository) GetByID(db *gorm.DB, id uint) (*domain.User, error) {
	var user domain.User
	err := db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserRepository) GetByIDWithCredentials(db *gorm.DB, id uint) (*domain.User, error) {
	var user domain.User
	err := db.Preload("Credentials").First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserRepository) GetUserByEmail(db *gorm.DB, email string) (*domain.User, error) {
	var user domain.User
	err := db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserRepository) GetByEmailWithCredentials(db *gorm.DB, email string) (*domain.User, error) {
	var user domain.User
	err := db.Preload("Credentials").Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserRepository) Create(db *gorm.DB, entity *domain.User) (*domain.User, error) {
	return entity, db.Create(entity).Error
}

// SetWebauthnHandle writes the handle only when none exists yet; the handle
// is immutable once assigned. Zero rows affected means another request
// persisted a handle first and the caller must re-read it.
func (u *UserRepository) SetWebauthnHandle(db *gorm.DB, userID uint, handle []byte) (int64, error) {
	res := db.Model(&domain.User{}).
		Where("id = ? AND (webauthn_handle IS NULL OR DATALENGTH(webauthn_handle) = 0)", userID).
		Update("webauthn_handle", handle)
	return res.RowsAffected, res.Error
}
