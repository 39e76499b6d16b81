package util

import (
	"encoding/base64"

	"github.com/hashicorp/go-uuid"
)

const userHandleSize = 32

// EncodeCredentialID renders a raw credential id the way it crosses the wire:
// base64url, no padding.
func EncodeCredentialID(raw []byte) string {
	return base64.RawURLEncoding.EncodeToString(raw)
}

func DecodeCredentialID(encoded string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(encoded)
}

// GenerateUserHandle produces the opaque protocol-level user identifier.
// Generated once per user and never derived from the DB primary key.
func GenerateUserHandle() ([]byte, error) {
	return uuid.GenerateRandomBytes(userHandleSize)
}

// GenerateCeremonyID produces the opaque id under which a browser session's
// outstanding challenge is stored.
func GenerateCeremonyID() (string, error) {
	return uuid.GenerateUUID()
}
