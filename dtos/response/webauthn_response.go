package response

import "time"

type CheckRegisteredResponse struct {
	Registered       bool     `json:"registered"`
	HasPasskeys      bool     `json:"has_passkeys"`
	AllowCredentials []string `json:"allowCredentials"`
	Message          string   `json:"message"`
}

// CeremonyOptionsResponse wraps the webauthn creation/assertion options
// verbatim; the browser feeds them to navigator.credentials.
type CeremonyOptionsResponse struct {
	Options interface{} `json:"options"`
	Message string      `json:"message"`
}

type VerifyRegistrationResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	CredentialID string `json:"credential_id"`
}

type AuthenticatedUser struct {
	Id    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type VerifyAuthenticationResponse struct {
	Success bool              `json:"success"`
	User    AuthenticatedUser `json:"user"`
	Tokens  *Tokens           `json:"tokens"`
}

// CredentialProjection is the client-facing view of a stored credential.
// Never carries public_key or external_id.
type CredentialProjection struct {
	ID         uint       `json:"id"`
	Nickname   string     `json:"nickname"`
	CreatedAt  *time.Time `json:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
}

type CredentialListResponse struct {
	Credentials []CredentialProjection `json:"credentials"`
	Count       int                    `json:"count"`
}

type UpdateCredentialResponse struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	Credential CredentialProjection `json:"credential"`
}
