package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"passkey_ms/config"
	"passkey_ms/domain"
	"passkey_ms/dtos/request"
	"passkey_ms/dtos/response"
	"passkey_ms/repository"
	"passkey_ms/util"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type IPasskeyService interface {
	CheckRegistered(req *request.CheckRegisteredRequest) (*response.CheckRegisteredResponse, error)
	RegisterStart(userID uint, ceremonyID string) (*protocol.CredentialCreation, error)
	RegisterFinish(ceremonyID string, authenticatedUserID uint, req *request.VerifyRegistrationRequest) (*response.VerifyRegistrationResponse, error)
	LoginStart(email string, ceremonyID string) (*protocol.CredentialAssertion, error)
	LoginFinish(ceremonyID string, req *request.VerifyAuthenticationRequest) (*response.VerifyAuthenticationResponse, error)
}

type PasskeyService struct {
	db         *gorm.DB
	wa         IWebAuthnProvider
	parser     ICredentialParser
	userRepo   repository.IUserRepository
	credRepo   repository.ICredentialRepository
	challenges IChallengeStore
	hooks      IAuthHooks
	logger     *zap.Logger
}

func NewPasskeyService(wa IWebAuthnProvider, parser ICredentialParser, db *gorm.DB, userRepo repository.IUserRepository, credRepo repository.ICredentialRepository, challenges IChallengeStore, hooks IAuthHooks, logger *zap.Logger) IPasskeyService {
	if wa == nil || parser == nil || userRepo == nil || credRepo == nil || challenges == nil || hooks == nil {
		panic("passkey service is missing a collaborator")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PasskeyService{wa: wa, parser: parser, db: db, userRepo: userRepo, credRepo: credRepo, challenges: challenges, hooks: hooks, logger: logger}
}

func storageErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
}

// CheckRegistered tells the login page whether an email owns passkeys, so it
// can decide between a passkey prompt and a password form.
func (ps *PasskeyService) CheckRegistered(req *request.CheckRegisteredRequest) (*response.CheckRegisteredResponse, error) {
	resp := &response.CheckRegisteredResponse{AllowCredentials: []string{}}

	user, err := ps.userRepo.GetByEmailWithCredentials(ps.db, req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storageErr(err)
	}
	if user != nil {
		resp.Registered = true
		for _, cred := range user.ActiveCredentials() {
			resp.AllowCredentials = append(resp.AllowCredentials, util.EncodeCredentialID(cred.ExternalID))
		}
		resp.HasPasskeys = len(resp.AllowCredentials) > 0
	}

	if resp.HasPasskeys {
		resp.Message = "User has Passkeys"
	} else {
		resp.Message = "User registered but no Passkeys"
	}
	return resp, nil
}

// RegisterStart issues registration options for the authenticated user and
// parks the challenge under the caller's ceremony session.
func (ps *PasskeyService) RegisterStart(userID uint, ceremonyID string) (*protocol.CredentialCreation, error) {
	user, err := ps.userRepo.GetByIDWithCredentials(ps.db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, storageErr(err)
	}

	if len(user.WebauthnHandle) == 0 {
		handle, err := util.GenerateUserHandle()
		if err != nil {
			return nil, err
		}
		rows, err := ps.userRepo.SetWebauthnHandle(ps.db, user.Id, handle)
		if err != nil {
			return nil, storageErr(err)
		}
		if rows == 0 {
			// A concurrent first registration persisted a handle before we
			// did; the options must carry that one, not our local candidate.
			user, err = ps.userRepo.GetByIDWithCredentials(ps.db, user.Id)
			if err != nil {
				return nil, storageErr(err)
			}
		} else {
			user.WebauthnHandle = handle
		}
	}

	opts := []webauthn.RegistrationOption{
		webauthn.WithAuthenticatorSelection(protocol.AuthenticatorSelection{
			AuthenticatorAttachment: protocol.Platform,
			UserVerification:        protocol.VerificationPreferred,
		}),
	}
	// Exclusion list keeps the browser from re-registering an authenticator
	// the user already enrolled.
	if active := user.ActiveCredentials(); len(active) > 0 {
		descriptors := make([]protocol.CredentialDescriptor, 0, len(active))
		for _, c := range active {
			descriptors = append(descriptors, protocol.CredentialDescriptor{
				Type:         protocol.PublicKeyCredentialType,
				CredentialID: c.ExternalID,
			})
		}
		opts = append(opts, webauthn.WithExclusions(descriptors))
	}

	creation, session, err := ps.wa.BeginRegistration(user, opts...)
	if err != nil {
		return nil, fmt.Errorf("begin registration: %w", err)
	}

	record := &ChallengeRecord{
		Kind:     ChallengeKindRegistration,
		Subject:  strconv.FormatUint(uint64(user.Id), 10),
		Session:  *session,
		IssuedAt: time.Now(),
	}
	if err := ps.challenges.PutChallenge(ceremonyID, record); err != nil {
		return nil, err
	}
	return creation, nil
}

// RegisterFinish verifies the browser's creation response against the stored
// challenge and inserts the credential. The challenge is consumed up front,
// so neither a failed verification nor a duplicate insert leaves it reusable.
func (ps *PasskeyService) RegisterFinish(ceremonyID string, authenticatedUserID uint, req *request.VerifyRegistrationRequest) (*response.VerifyRegistrationResponse, error) {
	record, takeErr := ps.challenges.TakeChallenge(ceremonyID)
	if takeErr != nil && !errors.Is(takeErr, domain.ErrInvalidState) {
		return nil, takeErr
	}
	if record != nil && record.Kind != ChallengeKindRegistration {
		record = nil
	}

	// Prefer the authenticated caller; fall back to the user the challenge
	// was issued for (registration started before a full session existed).
	userID := authenticatedUserID
	if userID == 0 && record != nil {
		if id, err := strconv.ParseUint(record.Subject, 10, 64); err == nil {
			userID = uint(id)
		}
	}
	if userID == 0 {
		return nil, domain.ErrNotFound
	}

	user, err := ps.userRepo.GetByIDWithCredentials(ps.db, userID)
	if err != nil {
		return nil, storageErr(err)
	}
	if record == nil {
		return nil, domain.ErrInvalidState
	}

	parsed, err := ps.parser.ParseCreation(req.Credential)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed credential payload", domain.ErrInvalidInput)
	}

	cred, err := ps.wa.CreateCredential(user, record.Session, parsed)
	if err != nil {
		// Library detail stays in the log; clients get a generic reason.
		ps.logger.Warn("registration verification rejected", zap.Uint("user_id", user.Id), zap.Error(err))
		return nil, domain.ErrVerificationFailed
	}

	nickname := strings.TrimSpace(req.Nickname)
	if nickname == "" {
		count, err := ps.credRepo.CountByUser(ps.db, user.Id)
		if err != nil {
			return nil, storageErr(err)
		}
		nickname = fmt.Sprintf("Passkey %d", count+1)
	}

	authBytes, err := json.Marshal(cred.Authenticator)
	if err != nil {
		return nil, err
	}
	row := &domain.WebauthnCredential{
		UserID:          user.Id,
		ExternalID:      cred.ID,
		PublicKey:       cred.PublicKey,
		SignCount:       cred.Authenticator.SignCount,
		Nickname:        nickname,
		Active:          true,
		AAGUID:          cred.Authenticator.AAGUID,
		AttestationType: cred.AttestationType,
		BackupEligible:  cred.Flags.BackupEligible,
		BackupState:     cred.Flags.BackupState,
		Authenticator:   authBytes,
	}
	if err := ps.credRepo.Create(ps.db, row); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	credentialID := util.EncodeCredentialID(cred.ID)
	if err := SendPasskeyRegisteredEventToKafka(&request.PasskeyRegisteredEvent{
		UserId:       user.Id,
		Email:        user.Email,
		CredentialId: credentialID,
		Nickname:     nickname,
	}); err != nil {
		log.Println("Failed to publish registered event:", err)
	}

	return &response.VerifyRegistrationResponse{
		Success:      true,
		Message:      "Passkey registered successfully",
		CredentialID: credentialID,
	}, nil
}

// LoginStart issues assertion options for the claimed email. Unknown emails
// and passkey-less accounts answer NotFound unless enumeration concealment
// is on, in which case an indistinguishable discoverable challenge goes out.
func (ps *PasskeyService) LoginStart(email string, ceremonyID string) (*protocol.CredentialAssertion, error) {
	user, err := ps.userRepo.GetByEmailWithCredentials(ps.db, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storageErr(err)
	}

	var active []domain.WebauthnCredential
	if user != nil {
		active = user.ActiveCredentials()
	}
	if len(active) == 0 {
		if !config.Conf.Application.WebAuthn.ConcealEnumeration {
			return nil, domain.ErrNotFound
		}
		assertion, session, err := ps.wa.BeginDiscoverableLogin(webauthn.WithUserVerification(protocol.VerificationRequired))
		if err != nil {
			return nil, fmt.Errorf("begin authentication: %w", err)
		}
		if err := ps.putAuthenticationChallenge(ceremonyID, email, session); err != nil {
			return nil, err
		}
		return assertion, nil
	}

	assertion, session, err := ps.wa.BeginLogin(user, webauthn.WithUserVerification(protocol.VerificationRequired))
	if err != nil {
		return nil, fmt.Errorf("begin authentication: %w", err)
	}
	if err := ps.putAuthenticationChallenge(ceremonyID, email, session); err != nil {
		return nil, err
	}
	return assertion, nil
}

func (ps *PasskeyService) putAuthenticationChallenge(ceremonyID string, email string, session *webauthn.SessionData) error {
	return ps.challenges.PutChallenge(ceremonyID, &ChallengeRecord{
		Kind:     ChallengeKindAuthentication,
		Subject:  email,
		Session:  *session,
		IssuedAt: time.Now(),
	})
}

// LoginFinish verifies the assertion against the identity that was actually
// challenged (the stored subject, never the request) and advances the
// credential's sign counter.
func (ps *PasskeyService) LoginFinish(ceremonyID string, req *request.VerifyAuthenticationRequest) (*response.VerifyAuthenticationResponse, error) {
	record, err := ps.challenges.TakeChallenge(ceremonyID)
	if err != nil {
		return nil, err
	}
	if record.Kind != ChallengeKindAuthentication {
		return nil, domain.ErrInvalidState
	}

	user, err := ps.userRepo.GetByEmailWithCredentials(ps.db, record.Subject)
	if err != nil {
		return nil, storageErr(err)
	}

	parsed, err := ps.parser.ParseAssertion(req.Credential)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed credential payload", domain.ErrInvalidInput)
	}

	owned, err := ps.credRepo.GetActiveByExternalIDForUser(ps.db, user.Id, parsed.RawID)
	if err != nil {
		return nil, storageErr(err)
	}

	validated, err := ps.wa.ValidateLogin(user, record.Session, parsed)
	if err != nil {
		ps.logger.Warn("authentication verification rejected", zap.Uint("user_id", user.Id), zap.Error(err))
		return nil, domain.ErrVerificationFailed
	}
	if validated.Authenticator.CloneWarning {
		ps.logger.Warn("possible cloned authenticator", zap.Uint("user_id", user.Id), zap.Uint("credential_id", owned.ID))
		return nil, domain.ErrVerificationFailed
	}

	// Counter policy runs against the freshest stored value, not the row
	// loaded before signature verification.
	fresh, err := ps.credRepo.GetActiveByExternalIDForUser(ps.db, user.Id, parsed.RawID)
	if err != nil {
		return nil, storageErr(err)
	}
	newCount := validated.Authenticator.SignCount
	authBytes, err := json.Marshal(validated.Authenticator)
	if err != nil {
		return nil, err
	}
	switch {
	case newCount > fresh.SignCount:
		rows, err := ps.credRepo.AdvanceSignCount(ps.db, fresh.ID, newCount, authBytes)
		if err != nil {
			return nil, storageErr(err)
		}
		if rows == 0 {
			// A concurrent login advanced the counter first.
			return nil, domain.ErrVerificationFailed
		}
	case newCount == 0 && fresh.SignCount == 0 && config.Conf.Application.WebAuthn.AllowZeroSignCount:
		if err := ps.credRepo.TouchLastUsed(ps.db, fresh.ID, authBytes); err != nil {
			return nil, storageErr(err)
		}
	default:
		ps.logger.Warn("sign count did not advance", zap.Uint("user_id", user.Id), zap.Uint32("stored", fresh.SignCount), zap.Uint32("asserted", newCount))
		return nil, domain.ErrVerificationFailed
	}

	tokens, err := ps.hooks.OnAuthenticated(user, util.EncodeCredentialID(owned.ExternalID))
	if err != nil {
		return nil, err
	}

	return &response.VerifyAuthenticationResponse{
		Success: true,
		User:    response.AuthenticatedUser{Id: user.Id, Email: user.Email, Name: user.Name},
		Tokens:  tokens,
	}, nil
}
