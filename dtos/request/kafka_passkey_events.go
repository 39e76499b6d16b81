package request

type PasskeyRegisteredEvent struct {
	UserId       uint   `json:"user_id"`
	Email        string `json:"email"`
	CredentialId string `json:"credential_id"`
	Nickname     string `json:"nickname"`
}

type PasskeyAuthenticatedEvent struct {
	UserId       uint   `json:"user_id"`
	Email        string `json:"email"`
	CredentialId string `json:"credential_id"`
}
