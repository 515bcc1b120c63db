// internal/wizard/wizard.go

// Package wizard walks an operator through the Hudu deployment questions.
package wizard

import (
	"fmt"
	"strings"

	"github.com/pankajbeniwal/hudu-setup/internal/config"
	"github.com/pankajbeniwal/hudu-setup/internal/prompt"
	"github.com/pankajbeniwal/hudu-setup/internal/ui"
)

const steps = 4

// none clears the optional S3 endpoint.
const none = "-"

// Run asks every question in order. prev supplies defaults, typically
// recovered from an env file written by an earlier run; pass the zero
// Config for a fresh install.
func Run(p *prompt.Prompter, prev config.Config) (config.Config, error) {
	var cfg config.Config
	var err error

	ui.Step(1, steps, "Domain")
	ui.Help(
		"Hudu is served on <subdomain>.<domain>, e.g. hudu.example.com.",
		"Enter "+config.NoSubdomain+" as the subdomain to serve on the bare domain.",
	)
	subDefault := config.DefaultSubdomain
	if prev.Domain != "" {
		subDefault = prev.Subdomain
	}
	if cfg.Subdomain, err = p.Validated("Subdomain", subDefault, false, validateLabel); err != nil {
		return config.Config{}, err
	}
	if cfg.Domain, err = p.Validated("Domain", prev.Domain, true, validateHost); err != nil {
		return config.Config{}, err
	}
	cfg = cfg.Normalized()

	ui.Step(2, steps, "File storage")
	ui.Help(
		"local: uploads live in a docker volume on this server.",
		"s3: uploads go to an S3-compatible bucket (AWS, MinIO, Wasabi, ...).",
	)
	storageDefault := prev.Storage
	if storageDefault == "" {
		storageDefault = config.StorageLocal
	}
	choice, err := p.Select("Where should uploads be stored?", storageNames(), string(storageDefault))
	if err != nil {
		return config.Config{}, err
	}
	if cfg.Storage, err = config.ParseStorage(choice); err != nil {
		return config.Config{}, err
	}
	if cfg.Storage == config.StorageS3 {
		if cfg.S3, err = askS3(p, prev.S3); err != nil {
			return config.Config{}, err
		}
	}

	ui.Step(3, steps, "Outgoing mail")
	ui.Help("Mail settings can also be added later in the Hudu admin panel.")
	wantSMTP, err := p.Confirm("Configure SMTP now?", prev.SMTP.Address != "")
	if err != nil {
		return config.Config{}, err
	}
	if wantSMTP {
		if cfg.SMTP, err = askSMTP(p, prev.SMTP, cfg.Domain); err != nil {
			return config.Config{}, err
		}
	}

	ui.Step(4, steps, "Certificates")
	ui.Help("Staging certificates are not trusted by browsers; use them only while testing DNS.")
	if cfg.Staging, err = p.Confirm("Use Let's Encrypt staging?", prev.Staging); err != nil {
		return config.Config{}, err
	}
	cfg.Validation = prev.Validation

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func askS3(p *prompt.Prompter, prev config.S3) (config.S3, error) {
	var s config.S3
	var err error

	ui.Help("Leave the endpoint empty for AWS S3.")
	if s.Endpoint, err = p.Text("S3 endpoint", prev.Endpoint, false); err != nil {
		return s, err
	}
	if s.Endpoint == none {
		s.Endpoint = ""
	}
	if s.Bucket, err = p.Text("S3 bucket", prev.Bucket, true); err != nil {
		return s, err
	}
	region := prev.Region
	if region == "" {
		region = config.DefaultRegion
	}
	if s.Region, err = p.Text("S3 region", region, true); err != nil {
		return s, err
	}
	if s.AccessKeyID, err = p.Text("S3 access key ID", prev.AccessKeyID, true); err != nil {
		return s, err
	}
	if s.SecretAccessKey, err = p.Secret("S3 secret access key", prev.SecretAccessKey, true); err != nil {
		return s, err
	}
	return s, nil
}

func askSMTP(p *prompt.Prompter, prev config.SMTP, domain string) (config.SMTP, error) {
	s := config.SMTP{}
	or := func(v, def string) string {
		if v != "" {
			return v
		}
		return def
	}

	fields := []struct {
		label    string
		def      string
		required bool
		dst      *string
	}{
		{"SMTP server address", prev.Address, true, &s.Address},
		{"SMTP port", or(prev.Port, "587"), false, &s.Port},
		{"SMTP HELO domain", or(prev.Domain, domain), false, &s.Domain},
		{"SMTP username", prev.Username, false, &s.Username},
	}
	for _, f := range fields {
		v, err := p.Text(f.label, f.def, f.required)
		if err != nil {
			return s, err
		}
		*f.dst = v
	}

	var err error
	if s.Password, err = p.Secret("SMTP password", prev.Password, false); err != nil {
		return s, err
	}

	fields = []struct {
		label    string
		def      string
		required bool
		dst      *string
	}{
		{"SMTP authentication (plain, login, cram_md5)", or(prev.Authentication, "plain"), false, &s.Authentication},
		{"Use STARTTLS (true/false)", or(prev.StartTLSAuto, "true"), false, &s.StartTLSAuto},
		{"OpenSSL verify mode (peer/none)", or(prev.OpenSSLVerifyMode, "peer"), false, &s.OpenSSLVerifyMode},
		{"From address", or(prev.FromAddress, "hudu@"+domain), false, &s.FromAddress},
	}
	for _, f := range fields {
		v, err := p.Text(f.label, f.def, f.required)
		if err != nil {
			return s, err
		}
		*f.dst = v
	}
	return s, nil
}

func storageNames() []string {
	names := make([]string, len(config.Storages))
	for i, s := range config.Storages {
		names[i] = string(s)
	}
	return names
}

func validateHost(s string) error {
	host := config.NormalizeHost(s)
	if host == "" || strings.ContainsAny(host, " \t:") || strings.HasPrefix(host, "-") || strings.HasSuffix(host, "-") {
		return fmt.Errorf("%q is not a host name", s)
	}
	return nil
}

func validateLabel(s string) error {
	if s == config.NoSubdomain {
		return nil
	}
	return config.ValidateSubdomain(strings.ToLower(s))
}
