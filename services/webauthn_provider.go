package services

import (
	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"
)

// IWebAuthnProvider is the slice of go-webauthn the ceremonies need.
// *webauthn.WebAuthn satisfies it directly; tests substitute a fake.
type IWebAuthnProvider interface {
	BeginRegistration(user webauthn.User, opts ...webauthn.RegistrationOption) (*protocol.CredentialCreation, *webauthn.SessionData, error)
	CreateCredential(user webauthn.User, session webauthn.SessionData, response *protocol.ParsedCredentialCreationData) (*webauthn.Credential, error)
	BeginLogin(user webauthn.User, opts ...webauthn.LoginOption) (*protocol.CredentialAssertion, *webauthn.SessionData, error)
	BeginDiscoverableLogin(opts ...webauthn.LoginOption) (*protocol.CredentialAssertion, *webauthn.SessionData, error)
	ValidateLogin(user webauthn.User, session webauthn.SessionData, response *protocol.ParsedCredentialAssertionData) (*webauthn.Credential, error)
}

// ICredentialParser decodes the browser's ceremony responses.
type ICredentialParser interface {
	ParseCreation(data []byte) (*protocol.ParsedCredentialCreationData, error)
	ParseAssertion(data []byte) (*protocol.ParsedCredentialAssertionData, error)
}

type CredentialParser struct{}

func NewCredentialParser() ICredentialParser {
	return &CredentialParser{}
}

func (CredentialParser) ParseCreation(data []byte) (*protocol.ParsedCredentialCreationData, error) {
	return protocol.ParseCredentialCreationResponseBytes(data)
}

func (CredentialParser) ParseAssertion(data []byte) (*protocol.ParsedCredentialAssertionData, error) {
	return protocol.ParseCredentialRequestResponseBytes(data)
}
