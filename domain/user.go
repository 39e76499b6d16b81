package domain

import (
	"time"

	"github.com/go-webauthn/webauthn/webauthn"
)

type User struct {
	Id             uint                 `gorm:"primaryKey" json:"id"`
	CreatedAt      *time.Time           `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      *time.Time           `gorm:"default:null" json:"updated_at"`
	Email          string               `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Name           string               `gorm:"size:100" json:"name"`
	Password       string               `gorm:"size:100" json:"-"`
	WebauthnHandle []byte               `gorm:"size:64" json:"-"`
	Credentials    []WebauthnCredential `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// ActiveCredentials filters out revoked credentials. Inactive rows never make
// it into challenge construction or authentication lookup.
func (u *User) ActiveCredentials() []WebauthnCredential {
	var active []WebauthnCredential
	for _, c := range u.Credentials {
		if c.Active {
			active = append(active, c)
		}
	}
	return active
}

// WebAuthnID returns the stable opaque user handle, never the DB primary key.
func (u User) WebAuthnID() []byte {
	return u.WebauthnHandle
}
func (u User) WebAuthnName() string {
	return u.Email
}
func (u User) WebAuthnDisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
func (u User) WebAuthnCredentials() []webauthn.Credential {
	var creds []webauthn.Credential
	for _, p := range u.Credentials {
		if !p.Active {
			continue
		}
		creds = append(creds, webauthn.Credential{
			ID:              p.ExternalID,
			PublicKey:       p.PublicKey,
			AttestationType: p.AttestationType,
			Authenticator: webauthn.Authenticator{
				AAGUID:    p.AAGUID,
				SignCount: p.SignCount,
			},
		})
	}
	return creds
}
