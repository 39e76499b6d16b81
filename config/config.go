package config

import "time"

var Conf Config

type Config struct {
	Application Application `yaml:"application" json:"application"`
}

type Application struct {
	DisplayName string     `yaml:"display-name" json:"display_name"`
	Server      Server     `yaml:"server" json:"server"`
	Datasource  Datasource `yaml:"datasource" json:"datasource"`
	Migration   string     `yaml:"migration"`
	Security    Security   `yaml:"security" json:"security"`
	Redis       Redis      `yaml:"redis" json:"redis"`
	Kafka       Kafka      `yaml:"kafka" json:"kafka"`
	WebAuthn    WebAuthn   `yaml:"webauthn" json:"webauthn"`
}

type Server struct {
	ContextPath string `yaml:"context-path" json:"context_path"`
	ApiVersion  string `yaml:"api-version" json:"api_version"`
	Port        string `yaml:"port"`
}

type Datasource struct {
	PrimaryURL            string `yaml:"primary-url" json:"primary_url"`
	MaxIdleConnections    int    `yaml:"max-idle-connections" json:"max_idle_connections"`
	MaxOpenConnections    int    `yaml:"max-open-connections" json:"max_open_connections"`
	ConnectionMaxLifetime int    `yaml:"connection-max-lifetime" json:"connection_max_lifetime"`
}

type Security struct {
	Secret                              string `yaml:"secret" json:"-"`
	Issuer                              string `yaml:"issuer" json:"issuer"`
	TokenValidityInSeconds              int    `yaml:"token-validity-in-seconds" json:"token_validity_in_seconds"`
	TokenValidityInSecondsForRememberMe int    `yaml:"token-validity-in-seconds-for-remember-me" json:"token_validity_in_seconds_for_remember_me"`
}

type Redis struct {
	Host string `yaml:"address" json:"address"`
}

type Kafka struct {
	Brokers []string `yaml:"brokers" json:"brokers"`
	Topic   string   `yaml:"topic" json:"topic"`
}

type WebAuthn struct {
	RpDisplayName string   `yaml:"rp-display-name" json:"rp_display_name"`
	RpID          string   `yaml:"rp-id" json:"rp_id"`
	RpOrigins     []string `yaml:"rp-origins" json:"rp_origins"`
	// ChallengeTTLSeconds bounds the validity window of an outstanding
	// ceremony challenge. Zero falls back to 5 minutes.
	ChallengeTTLSeconds int `yaml:"challenge-ttl-seconds" json:"challenge_ttl_seconds"`
	// AllowZeroSignCount accepts authenticators that perpetually report a
	// sign count of 0 (synced/cloud passkeys without a usage counter).
	AllowZeroSignCount bool `yaml:"allow-zero-sign-count" json:"allow_zero_sign_count"`
	// ConcealEnumeration makes begin-authentication indistinguishable for
	// unknown emails instead of answering 404.
	ConcealEnumeration bool `yaml:"conceal-enumeration" json:"conceal_enumeration"`
}

func ChallengeTTL() time.Duration {
	if Conf.Application.WebAuthn.ChallengeTTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(Conf.Application.WebAuthn.ChallengeTTLSeconds) * time.Second
}
