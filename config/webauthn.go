package config

import (
	"time"

	"github.com/go-webauthn/webauthn/webauthn"
)

func InitWebAuthn() *webauthn.WebAuthn {
	wa, err := webauthn.New(&webauthn.Config{
		RPDisplayName: Conf.Application.WebAuthn.RpDisplayName,
		RPID:          Conf.Application.WebAuthn.RpID,
		RPOrigins:     Conf.Application.WebAuthn.RpOrigins,
		Timeouts: webauthn.TimeoutsConfig{
			Login: webauthn.TimeoutConfig{
				Enforce: true,
				Timeout: 60 * time.Second,
			},
			Registration: webauthn.TimeoutConfig{
				Enforce: true,
				Timeout: ChallengeTTL(),
			},
		},
	})

	if err != nil {
		panic(err)
	}
	return wa
}
