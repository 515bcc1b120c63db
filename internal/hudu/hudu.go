// internal/hudu/hudu.go

// Package hudu maps a deployment Config onto the env file the Hudu
// containers read at startup.
package hudu

import (
	"fmt"
	"strconv"

	"github.com/pankajbeniwal/hudu-setup/internal/config"
	"github.com/pankajbeniwal/hudu-setup/internal/envfile"
)

const (
	SecretKeyBaseBytes = 64 // 128 hex chars
	PasswordKeyLength  = 32
	TwoFactorKeyLength = 32
)

const (
	dbHost       = "db"
	dbUsername   = "postgres"
	dbPassword   = "postgres"
	dbName       = "hudu_production"
	pgAuthMethod = "trust"
	puid         = "1000"
	pgid         = "1000"
	railsEnv     = "production"
	railsThreads = "5"
	redisURL     = "redis://redis:6379"
)

// Keys is every key the env file carries, in file order.
var Keys = []string{
	"SECRET_KEY_BASE", "PASSWORD_KEY", "TWO_FACTOR_KEY",
	"DOMAIN", "URL", "SUBDOMAINS", "ONLY_SUBDOMAINS", "VALIDATION", "STAGING",
	"DB_HOST", "DB_USERNAME", "DB_PASSWORD", "DB_NAME", "POSTGRES_HOST_AUTH_METHOD",
	"SMTP_DOMAIN", "SMTP_ADDRESS", "SMTP_PORT", "SMTP_STARTTLS_AUTO", "SMTP_USERNAME",
	"SMTP_PASSWORD", "SMTP_AUTHENTICATION", "SMTP_OPENSSL_VERIFY_MODE", "SMTP_FROM_ADDRESS",
	"USE_LOCAL_FILESYSTEM", "AUTHENTICATE_UPLOADS",
	"S3_ENDPOINT", "S3_BUCKET", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY", "S3_REGION",
	"PUID", "PGID", "RAILS_ENV", "RACK_ENV", "RAILS_MAX_THREADS", "REDIS_URL",
}

var secretKeys = map[string]bool{
	"SECRET_KEY_BASE":      true,
	"PASSWORD_KEY":         true,
	"TWO_FACTOR_KEY":       true,
	"DB_PASSWORD":          true,
	"SMTP_PASSWORD":        true,
	"S3_SECRET_ACCESS_KEY": true,
}

// IsSecret reports whether the value of key must not be displayed.
func IsSecret(key string) bool {
	return secretKeys[key]
}

type Secrets struct {
	SecretKeyBase string
	PasswordKey   string
	TwoFactorKey  string
}

// SecretSource is satisfied by *secret.Generator.
type SecretSource interface {
	Hex(nBytes int) (string, error)
	Alnum(length int) (string, error)
}

func NewSecrets(src SecretSource) (Secrets, error) {
	var s Secrets
	var err error
	if s.SecretKeyBase, err = src.Hex(SecretKeyBaseBytes); err != nil {
		return Secrets{}, fmt.Errorf("generate SECRET_KEY_BASE: %w", err)
	}
	if s.PasswordKey, err = src.Alnum(PasswordKeyLength); err != nil {
		return Secrets{}, fmt.Errorf("generate PASSWORD_KEY: %w", err)
	}
	if s.TwoFactorKey, err = src.Alnum(TwoFactorKeyLength); err != nil {
		return Secrets{}, fmt.Errorf("generate TWO_FACTOR_KEY: %w", err)
	}
	return s, nil
}

// SecretsFromEntries recovers the secrets of a previously written file.
// ok is false unless all three are present and non-empty.
func SecretsFromEntries(entries []envfile.Entry) (Secrets, bool) {
	var s Secrets
	var ok1, ok2, ok3 bool
	s.SecretKeyBase, ok1 = envfile.Lookup(entries, "SECRET_KEY_BASE")
	s.PasswordKey, ok2 = envfile.Lookup(entries, "PASSWORD_KEY")
	s.TwoFactorKey, ok3 = envfile.Lookup(entries, "TWO_FACTOR_KEY")
	if !ok1 || !ok2 || !ok3 || s.SecretKeyBase == "" || s.PasswordKey == "" || s.TwoFactorKey == "" {
		return Secrets{}, false
	}
	return s, true
}

// Document lays out the env file for cfg. cfg should already have been
// passed through WithDefaults and Validate.
func Document(cfg config.Config, s Secrets) envfile.Document {
	local := cfg.Storage != config.StorageS3
	s3 := cfg.S3
	if local {
		s3 = config.S3{}
	}

	return envfile.Document{
		Header: []string{
			"Hudu environment. Keep this file private: it holds encryption keys.",
			"Losing PASSWORD_KEY or TWO_FACTOR_KEY makes stored passwords unrecoverable.",
		},
		Sections: []envfile.Section{
			{
				Banner: []string{"Application secrets"},
				Entries: []envfile.Entry{
					{Key: "SECRET_KEY_BASE", Value: s.SecretKeyBase},
					{Key: "PASSWORD_KEY", Value: s.PasswordKey},
					{Key: "TWO_FACTOR_KEY", Value: s.TwoFactorKey},
				},
			},
			{
				Banner: []string{"Domain and TLS certificates"},
				Entries: []envfile.Entry{
					{Key: "DOMAIN", Value: cfg.Hostname()},
					{Key: "URL", Value: cfg.Domain},
					{Key: "SUBDOMAINS", Value: cfg.Subdomain},
					{Key: "ONLY_SUBDOMAINS", Value: strconv.FormatBool(cfg.Subdomain != "")},
					{Key: "VALIDATION", Value: cfg.Validation},
					{Key: "STAGING", Value: strconv.FormatBool(cfg.Staging)},
				},
			},
			{
				Banner: []string{"Database"},
				Entries: []envfile.Entry{
					{Key: "DB_HOST", Value: dbHost},
					{Key: "DB_USERNAME", Value: dbUsername},
					{Key: "DB_PASSWORD", Value: dbPassword},
					{Key: "DB_NAME", Value: dbName},
					{Key: "POSTGRES_HOST_AUTH_METHOD", Value: pgAuthMethod},
				},
			},
			{
				Banner: []string{"Outgoing mail (optional)"},
				Entries: []envfile.Entry{
					{Key: "SMTP_DOMAIN", Value: cfg.SMTP.Domain},
					{Key: "SMTP_ADDRESS", Value: cfg.SMTP.Address},
					{Key: "SMTP_PORT", Value: cfg.SMTP.Port},
					{Key: "SMTP_STARTTLS_AUTO", Value: cfg.SMTP.StartTLSAuto},
					{Key: "SMTP_USERNAME", Value: cfg.SMTP.Username},
					{Key: "SMTP_PASSWORD", Value: cfg.SMTP.Password},
					{Key: "SMTP_AUTHENTICATION", Value: cfg.SMTP.Authentication},
					{Key: "SMTP_OPENSSL_VERIFY_MODE", Value: cfg.SMTP.OpenSSLVerifyMode},
					{Key: "SMTP_FROM_ADDRESS", Value: cfg.SMTP.FromAddress},
				},
			},
			{
				Banner: []string{"File storage"},
				Entries: []envfile.Entry{
					{Key: "USE_LOCAL_FILESYSTEM", Value: strconv.FormatBool(local)},
					{Key: "AUTHENTICATE_UPLOADS", Value: strconv.FormatBool(local)},
					{Key: "S3_ENDPOINT", Value: s3.Endpoint},
					{Key: "S3_BUCKET", Value: s3.Bucket},
					{Key: "S3_ACCESS_KEY_ID", Value: s3.AccessKeyID},
					{Key: "S3_SECRET_ACCESS_KEY", Value: s3.SecretAccessKey},
					{Key: "S3_REGION", Value: s3.Region},
				},
			},
			{
				Banner: []string{"Runtime"},
				Entries: []envfile.Entry{
					{Key: "PUID", Value: puid},
					{Key: "PGID", Value: pgid},
					{Key: "RAILS_ENV", Value: railsEnv},
					{Key: "RACK_ENV", Value: railsEnv},
					{Key: "RAILS_MAX_THREADS", Value: railsThreads},
					{Key: "REDIS_URL", Value: redisURL},
				},
			},
		},
	}
}

// ConfigFromEntries rebuilds the operator's answers from an existing file so
// a re-run can offer them as defaults.
func ConfigFromEntries(entries []envfile.Entry) config.Config {
	get := func(key string) string {
		v, _ := envfile.Lookup(entries, key)
		return v
	}

	cfg := config.Config{
		Subdomain:  get("SUBDOMAINS"),
		Domain:     get("URL"),
		Validation: get("VALIDATION"),
		Staging:    get("STAGING") == "true",
		SMTP: config.SMTP{
			Domain:            get("SMTP_DOMAIN"),
			Address:           get("SMTP_ADDRESS"),
			Port:              get("SMTP_PORT"),
			StartTLSAuto:      get("SMTP_STARTTLS_AUTO"),
			Username:          get("SMTP_USERNAME"),
			Password:          get("SMTP_PASSWORD"),
			Authentication:    get("SMTP_AUTHENTICATION"),
			OpenSSLVerifyMode: get("SMTP_OPENSSL_VERIFY_MODE"),
			FromAddress:       get("SMTP_FROM_ADDRESS"),
		},
	}
	if cfg.Domain == "" {
		cfg.Domain = get("DOMAIN")
	}
	if get("USE_LOCAL_FILESYSTEM") == "false" {
		cfg.Storage = config.StorageS3
		cfg.S3 = config.S3{
			Endpoint:        get("S3_ENDPOINT"),
			Bucket:          get("S3_BUCKET"),
			AccessKeyID:     get("S3_ACCESS_KEY_ID"),
			SecretAccessKey: get("S3_SECRET_ACCESS_KEY"),
			Region:          get("S3_REGION"),
		}
	} else {
		cfg.Storage = config.StorageLocal
	}
	return cfg
}
