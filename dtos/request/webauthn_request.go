package request

import "encoding/json"

type CheckRegisteredRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type BeginAuthenticationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyRegistrationRequest carries the browser's credential-creation response
// verbatim; the webauthn protocol parser consumes the raw bytes.
type VerifyRegistrationRequest struct {
	Credential json.RawMessage `json:"credential" validate:"required"`
	Nickname   string          `json:"nickname"`
}

type VerifyAuthenticationRequest struct {
	Credential json.RawMessage `json:"credential" validate:"required"`
}

// UpdateCredentialRequest has no validate tag on purpose: an empty nickname is
// a domain validation failure (422), not a malformed request (400).
type UpdateCredentialRequest struct {
	Nickname string `json:"nickname"`
}
