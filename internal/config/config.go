// internal/config/config.go

// Package config holds the deployment parameters gathered by the wizard.
// A Config is built once, by the prompts or from an answers file, and
// passed by value from then on.
package config

import (
	"fmt"
	"strings"
)

type Storage string

const (
	StorageLocal Storage = "local"
	StorageS3    Storage = "s3"
)

// NoSubdomain is the answer that serves Hudu on the bare domain.
const NoSubdomain = "-"

const (
	DefaultSubdomain  = "hudu"
	DefaultRegion     = "us-east-1"
	DefaultValidation = "http"
)

// Storages lists the accepted storage choices in prompt order.
var Storages = []Storage{StorageLocal, StorageS3}

// ParseStorage accepts the storage names operators commonly type.
func ParseStorage(s string) (Storage, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "local", "disk", "filesystem":
		return StorageLocal, nil
	case "s3", "cloud", "aws", "minio":
		return StorageS3, nil
	}
	return "", fmt.Errorf("unknown storage %q (want local or s3)", s)
}

type S3 struct {
	Endpoint        string `yaml:"endpoint"`
	Bucket          string `yaml:"bucket"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Region          string `yaml:"region"`
}

type SMTP struct {
	Domain            string `yaml:"domain"`
	Address           string `yaml:"address"`
	Port              string `yaml:"port"`
	StartTLSAuto      string `yaml:"starttls_auto"`
	Username          string `yaml:"username"`
	Password          string `yaml:"password"`
	Authentication    string `yaml:"authentication"`
	OpenSSLVerifyMode string `yaml:"openssl_verify_mode"`
	FromAddress       string `yaml:"from_address"`
}

type Config struct {
	Subdomain  string  `yaml:"subdomain"`
	Domain     string  `yaml:"domain"`
	Storage    Storage `yaml:"storage"`
	S3         S3      `yaml:"s3"`
	SMTP       SMTP    `yaml:"smtp"`
	Validation string  `yaml:"validation"`
	Staging    bool    `yaml:"staging"`
}

// Hostname is the fully qualified name Hudu is served on.
func (c Config) Hostname() string {
	if c.Subdomain == "" {
		return c.Domain
	}
	return c.Subdomain + "." + c.Domain
}

// NormalizeHost strips a pasted scheme, path and trailing dot.
func NormalizeHost(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSuffix(s, ".")
}

// Normalized lowercases the host names and maps NoSubdomain to an empty
// subdomain. The wizard and answers files both pass through it.
func (c Config) Normalized() Config {
	c.Subdomain = strings.ToLower(strings.TrimSpace(c.Subdomain))
	if c.Subdomain == NoSubdomain {
		c.Subdomain = ""
	}
	c.Domain = NormalizeHost(c.Domain)
	return c
}

// WithDefaults fills the fields an operator may leave blank.
func (c Config) WithDefaults() Config {
	if c.Storage == "" {
		c.Storage = StorageLocal
	}
	if c.Validation == "" {
		c.Validation = DefaultValidation
	}
	if c.Storage == StorageS3 && c.S3.Region == "" {
		c.S3.Region = DefaultRegion
	}
	if c.Storage == StorageLocal {
		c.S3 = S3{}
	}
	return c
}

// ValidateSubdomain accepts an empty subdomain or a single DNS label.
func ValidateSubdomain(s string) error {
	if strings.ContainsAny(s, " \t/:.") {
		return fmt.Errorf("subdomain %q must be a single label like \"hudu\"", s)
	}
	if strings.HasPrefix(s, "-") || strings.HasSuffix(s, "-") {
		return fmt.Errorf("subdomain %q cannot start or end with '-'", s)
	}
	return nil
}

// Validate checks required fields only. Optional fields accept any string.
func (c Config) Validate() error {
	if c.Domain == "" {
		return fmt.Errorf("domain is required")
	}
	if strings.ContainsAny(c.Domain, " \t/:") {
		return fmt.Errorf("domain %q must be a bare host name", c.Domain)
	}
	if strings.HasPrefix(c.Domain, "-") || strings.HasSuffix(c.Domain, "-") {
		return fmt.Errorf("domain %q cannot start or end with '-'", c.Domain)
	}
	if err := ValidateSubdomain(c.Subdomain); err != nil {
		return err
	}
	switch c.Storage {
	case StorageLocal:
	case StorageS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("s3 bucket is required")
		}
		if c.S3.AccessKeyID == "" {
			return fmt.Errorf("s3 access key id is required")
		}
		if c.S3.SecretAccessKey == "" {
			return fmt.Errorf("s3 secret access key is required")
		}
	default:
		return fmt.Errorf("unknown storage %q", c.Storage)
	}
	return nil
}
