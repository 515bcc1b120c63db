// internal/prompt/prompt_test.go
package prompt

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func newTest(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return New(strings.NewReader(input), &out), &out
}

func TestText(t *testing.T) {
	p, _ := newTest("example.com\r\n")
	v, err := p.Text("Domain", "", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "example.com" {
		t.Fatalf("expected example.com, got %q", v)
	}
}

func TestText_Default(t *testing.T) {
	p, out := newTest("\n")
	v, err := p.Text("Subdomain", "hudu", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "hudu" {
		t.Fatalf("expected default hudu, got %q", v)
	}
	if !strings.Contains(out.String(), "Subdomain [hudu]") {
		t.Fatalf("expected default in prompt, got %q", out.String())
	}
}

func TestText_RequiredReprompts(t *testing.T) {
	p, out := newTest("\n  \nexample.com\n")
	v, err := p.Text("Domain", "", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "example.com" {
		t.Fatalf("expected example.com, got %q", v)
	}
	if strings.Count(out.String(), "Domain is required") != 2 {
		t.Fatalf("expected two re-prompts, got %q", out.String())
	}
}

func TestText_OptionalEmpty(t *testing.T) {
	p, _ := newTest("\n")
	v, err := p.Text("Endpoint", "", false)
	if err != nil || v != "" {
		t.Fatalf("expected empty value, got %q, %v", v, err)
	}
}

func TestText_LastLineWithoutNewline(t *testing.T) {
	p, _ := newTest("example.com")
	v, err := p.Text("Domain", "", true)
	if err != nil || v != "example.com" {
		t.Fatalf("expected example.com, got %q, %v", v, err)
	}
}

func TestText_EOFCancels(t *testing.T) {
	p, _ := newTest("")
	if _, err := p.Text("Domain", "", true); !errors.Is(err, ErrInputCancelled) {
		t.Fatalf("expected ErrInputCancelled, got %v", err)
	}

	p, _ = newTest("\n")
	if _, err := p.Text("Domain", "", true); !errors.Is(err, ErrInputCancelled) {
		t.Fatalf("expected ErrInputCancelled after re-prompt, got %v", err)
	}
}

func TestValidated(t *testing.T) {
	p, out := newTest("bad value\ngood\n")
	v, err := p.Validated("Domain", "", true, func(s string) error {
		if strings.Contains(s, " ") {
			return errors.New("no spaces allowed")
		}
		return nil
	})
	if err != nil || v != "good" {
		t.Fatalf("expected good, got %q, %v", v, err)
	}
	if !strings.Contains(out.String(), "no spaces allowed") {
		t.Fatal("expected validation message")
	}
}

func TestSecret_Piped(t *testing.T) {
	p, _ := newTest("s3cr3t\r\n")
	if p.Interactive() {
		t.Fatal("expected non-interactive prompter for a string reader")
	}
	v, err := p.Secret("Secret access key", "", true)
	if err != nil || v != "s3cr3t" {
		t.Fatalf("expected s3cr3t, got %q, %v", v, err)
	}
}

func TestSecret_Masked(t *testing.T) {
	p, out := newTest("")
	calls := 0
	p.readSecret = func() ([]byte, error) {
		calls++
		if calls == 1 {
			return []byte(""), nil
		}
		return []byte("hunter2\r"), nil
	}
	v, err := p.Secret("SMTP password", "", true)
	if err != nil || v != "hunter2" {
		t.Fatalf("expected hunter2, got %q, %v", v, err)
	}
	if strings.Contains(out.String(), "hunter2") {
		t.Fatal("secret must not be echoed")
	}
}

func TestSecret_Keep(t *testing.T) {
	p, out := newTest("\n")
	v, err := p.Secret("Secret access key", "old", true)
	if err != nil || v != "old" {
		t.Fatalf("expected old, got %q, %v", v, err)
	}
	if strings.Contains(out.String(), "old") {
		t.Fatal("kept secret must not be shown")
	}
}

func TestSecret_EOF(t *testing.T) {
	p, _ := newTest("")
	p.readSecret = func() ([]byte, error) { return nil, io.EOF }
	if _, err := p.Secret("Password", "", true); !errors.Is(err, ErrInputCancelled) {
		t.Fatalf("expected ErrInputCancelled, got %v", err)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{"\n", true, true},
		{"\n", false, false},
		{"y\n", false, true},
		{"No\n", true, false},
		{"maybe\nyes\n", false, true},
	}
	for _, tt := range tests {
		p, _ := newTest(tt.input)
		got, err := p.Confirm("Overwrite?", tt.def)
		if err != nil {
			t.Fatalf("Confirm(%q): unexpected error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q, %v) = %v; want %v", tt.input, tt.def, got, tt.want)
		}
	}
}

func TestSelect(t *testing.T) {
	options := []string{"local", "s3"}
	tests := []struct {
		input string
		want  string
	}{
		{"\n", "local"},
		{"2\n", "s3"},
		{"S3\n", "s3"},
		{"9\nlocal\n", "local"},
	}
	for _, tt := range tests {
		p, _ := newTest(tt.input)
		got, err := p.Select("Storage", options, "local")
		if err != nil {
			t.Fatalf("Select(%q): unexpected error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Select(%q) = %s; want %s", tt.input, got, tt.want)
		}
	}
}
