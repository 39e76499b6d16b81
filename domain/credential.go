package domain

import "time"

type WebauthnCredential struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"not null;index" json:"user_id"` // foreign key
	ExternalID      []byte     `gorm:"not null;uniqueIndex;size:255" json:"-"`
	PublicKey       []byte     `gorm:"not null" json:"-"`
	SignCount       uint32     `gorm:"not null;default:0" json:"sign_count"`
	Nickname        string     `gorm:"size:100;not null" json:"nickname"`
	Active          bool       `gorm:"not null;default:true" json:"active"`
	AAGUID          []byte     `gorm:"column:aaguid" json:"-"`
	AttestationType string     `json:"attestation_type"`
	Authenticator   []byte     `gorm:"type:json" json:"-"`
	BackupEligible  bool       `gorm:"not null;default:false" json:"backup_eligible"`
	BackupState     bool       `gorm:"not null;default:false" json:"backup_state"`
	CreatedAt       *time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       *time.Time `gorm:"default:null" json:"updated_at"`
	LastUsedAt      *time.Time `gorm:"default:null" json:"last_used_at"`
}

func (WebauthnCredential) TableName() string {
	return "webauthn_credentials"
}
