// internal/answers/answers_test.go
package answers

import (
	"strings"
	"testing"

	"github.com/pankajbeniwal/hudu-setup/internal/config"
)

const testYAML = `
subdomain: hudu
domain: example.com
storage: cloud
s3:
  bucket: mybucket
  region: us-east-1
  access_key_id: AKIAEXAMPLE
  secret_access_key: "it's secret"
smtp:
  address: smtp.example.com
  port: "587"
staging: true
`

const testDotenv = `
SUBDOMAIN=hudu
DOMAIN=example.com
STORAGE=s3
S3_BUCKET=mybucket
S3_REGION=us-east-1
S3_ACCESS_KEY_ID=AKIAEXAMPLE
S3_SECRET_ACCESS_KEY="it's secret"
SMTP_ADDRESS=smtp.example.com
SMTP_PORT=587
STAGING=true
`

func TestParse_FormatsAgree(t *testing.T) {
	fromYAML, err := Parse("answers.yaml", []byte(testYAML))
	if err != nil {
		t.Fatalf("unexpected YAML error: %v", err)
	}
	fromEnv, err := Parse("answers.env", []byte(testDotenv))
	if err != nil {
		t.Fatalf("unexpected dotenv error: %v", err)
	}
	if fromYAML != fromEnv {
		t.Fatalf("formats disagree:\nyaml %+v\nenv  %+v", fromYAML, fromEnv)
	}

	if fromYAML.Storage != config.StorageS3 {
		t.Fatalf("expected s3 storage, got %s", fromYAML.Storage)
	}
	if fromYAML.S3.SecretAccessKey != "it's secret" {
		t.Fatalf("unexpected secret %q", fromYAML.S3.SecretAccessKey)
	}
	if fromYAML.Validation != "http" || !fromYAML.Staging {
		t.Fatalf("unexpected certificate settings: %+v", fromYAML)
	}
}

func TestParseYAML_Minimal(t *testing.T) {
	cfg, err := ParseYAML([]byte("domain: example.com\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage != config.StorageLocal || cfg.Hostname() != "hudu.example.com" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestParse_HostNormalization(t *testing.T) {
	tests := []struct {
		name string
		file string
		data string
		want string
	}{
		{"dotenv no subdomain", "answers.env", "SUBDOMAIN=-\nDOMAIN=example.com\n", "example.com"},
		{"dotenv empty subdomain", "answers.env", "SUBDOMAIN=\nDOMAIN=example.com\n", "example.com"},
		{"dotenv mixed case", "answers.env", "SUBDOMAIN=HUDU\nDOMAIN=Example.com\n", "hudu.example.com"},
		{"dotenv default subdomain", "answers.env", "DOMAIN=example.com\n", "hudu.example.com"},
		{"dotenv pasted URL", "answers.env", "DOMAIN=https://Example.com/\n", "hudu.example.com"},
		{"yaml no subdomain", "answers.yaml", "subdomain: \"-\"\ndomain: example.com\n", "example.com"},
		{"yaml mixed case", "answers.yml", "subdomain: Docs\ndomain: EXAMPLE.com.\n", "docs.example.com"},
		{"yaml default subdomain", "answers.yaml", "domain: example.com\n", "hudu.example.com"},
	}
	for _, tt := range tests {
		cfg, err := Parse(tt.file, []byte(tt.data))
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
			continue
		}
		if got := cfg.Hostname(); got != tt.want {
			t.Errorf("%s: got host %q; want %q", tt.name, got, tt.want)
		}
	}
}

func TestParseYAML_Errors(t *testing.T) {
	tests := map[string]string{
		"empty":         "",
		"unknown field": "domain: example.com\ndomian: typo\n",
		"bad storage":   "domain: example.com\nstorage: ftp\n",
		"missing creds": "domain: example.com\nstorage: s3\ns3:\n  bucket: b\n",
	}
	for name, data := range tests {
		if _, err := ParseYAML([]byte(data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestParseDotenv_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown key": "DOMAIN=example.com\nDOMIAN=typo\n",
		"bad staging": "DOMAIN=example.com\nSTAGING=maybe\n",
		"no domain":   "SUBDOMAIN=hudu\n",
		"hyphen edge": "SUBDOMAIN=hudu-\nDOMAIN=example.com\n",
	}
	for name, data := range tests {
		_, err := ParseDotenv([]byte(data))
		if err == nil {
			t.Errorf("%s: expected error", name)
			continue
		}
		if name == "unknown key" && !strings.Contains(err.Error(), "DOMIAN") {
			t.Errorf("expected unknown key to be named, got %v", err)
		}
	}
}
