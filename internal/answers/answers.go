// internal/answers/answers.go

// Package answers loads pre-filled wizard answers for unattended runs.
//
// Two formats are accepted. YAML mirrors config.Config:
//
//	subdomain: hudu
//	domain: example.com
//	storage: s3
//	s3:
//	  bucket: hudu-uploads
//	  access_key_id: AKIA...
//	  secret_access_key: ...
//
// A dotenv file uses upper-case names (SUBDOMAIN, DOMAIN, STORAGE, S3_BUCKET,
// SMTP_ADDRESS, ...), which suits values injected by provisioning tools.
package answers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pankajbeniwal/hudu-setup/internal/config"
	"gopkg.in/yaml.v3"
)

// Parse picks the format from the file name: .yaml/.yml is YAML, anything
// else is dotenv.
func Parse(name string, data []byte) (config.Config, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseDotenv(data)
	}
}

// ParseYAML decodes YAML answers. A missing subdomain takes the same
// default as the prompt.
func ParseYAML(data []byte) (config.Config, error) {
	cfg := config.Config{Subdomain: config.DefaultSubdomain}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return config.Config{}, fmt.Errorf("invalid answers YAML: %w", err)
	}
	return finish(cfg)
}

// ParseDotenv decodes dotenv answers. A missing SUBDOMAIN takes the same
// default as the prompt.
func ParseDotenv(data []byte) (config.Config, error) {
	values, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return config.Config{}, fmt.Errorf("invalid answers file: %w", err)
	}

	cfg := config.Config{Subdomain: config.DefaultSubdomain}
	fields := map[string]*string{
		"SUBDOMAIN":                &cfg.Subdomain,
		"DOMAIN":                   &cfg.Domain,
		"VALIDATION":               &cfg.Validation,
		"S3_ENDPOINT":              &cfg.S3.Endpoint,
		"S3_BUCKET":                &cfg.S3.Bucket,
		"S3_ACCESS_KEY_ID":         &cfg.S3.AccessKeyID,
		"S3_SECRET_ACCESS_KEY":     &cfg.S3.SecretAccessKey,
		"S3_REGION":                &cfg.S3.Region,
		"SMTP_DOMAIN":              &cfg.SMTP.Domain,
		"SMTP_ADDRESS":             &cfg.SMTP.Address,
		"SMTP_PORT":                &cfg.SMTP.Port,
		"SMTP_STARTTLS_AUTO":       &cfg.SMTP.StartTLSAuto,
		"SMTP_USERNAME":            &cfg.SMTP.Username,
		"SMTP_PASSWORD":            &cfg.SMTP.Password,
		"SMTP_AUTHENTICATION":      &cfg.SMTP.Authentication,
		"SMTP_OPENSSL_VERIFY_MODE": &cfg.SMTP.OpenSSLVerifyMode,
		"SMTP_FROM_ADDRESS":        &cfg.SMTP.FromAddress,
	}

	var unknown []string
	for key, value := range values {
		switch key {
		case "STORAGE":
			if cfg.Storage, err = config.ParseStorage(value); err != nil {
				return config.Config{}, err
			}
		case "STAGING":
			if cfg.Staging, err = strconv.ParseBool(value); err != nil {
				return config.Config{}, fmt.Errorf("STAGING: %w", err)
			}
		default:
			dst, ok := fields[key]
			if !ok {
				unknown = append(unknown, key)
				continue
			}
			*dst = value
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return config.Config{}, fmt.Errorf("unknown answers: %s", strings.Join(unknown, ", "))
	}
	return finish(cfg)
}

func finish(cfg config.Config) (config.Config, error) {
	if cfg.Storage != "" {
		s, err := config.ParseStorage(string(cfg.Storage))
		if err != nil {
			return config.Config{}, err
		}
		cfg.Storage = s
	}
	cfg = cfg.Normalized().WithDefaults()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid answers: %w", err)
	}
	return cfg, nil
}
