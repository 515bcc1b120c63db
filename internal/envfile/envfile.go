// internal/envfile/envfile.go

// Package envfile renders and parses the dotenv files consumed by the Hudu
// containers. Values are always single-quoted so that the file can be read
// both by docker compose and by a POSIX shell without interpretation.
package envfile

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"
)

// FileMode is the permission applied to every env file written by Save.
const FileMode os.FileMode = 0600

var keyPattern = regexp.MustCompile(`^[A-Z_][A-Z0-9_]*$`)

type Entry struct {
	Key   string
	Value string
}

type Section struct {
	Banner  []string
	Entries []Entry
}

type Document struct {
	Header   []string
	Sections []Section
}

// FileWriter is the subset of executor.Executor that Save needs.
type FileWriter interface {
	WriteFile(ctx context.Context, path string, content []byte, mode os.FileMode) error
}

// ValidKey reports whether key can be emitted bare on the left of '='.
func ValidKey(key string) bool {
	return keyPattern.MatchString(key)
}

// Escape wraps value in single quotes, breaking out of the quotes around
// every embedded single quote: it's -> 'it'"'"'s'.
func Escape(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'"'"'`) + "'"
}

func FormatEntry(key, value string) string {
	return key + "=" + Escape(value) + "\n"
}

func WriteEntry(w io.Writer, key, value string) error {
	_, err := io.WriteString(w, FormatEntry(key, value))
	return err
}

// Entries returns every entry of the document in render order.
func (d Document) Entries() []Entry {
	var out []Entry
	for _, s := range d.Sections {
		out = append(out, s.Entries...)
	}
	return out
}

// Render produces the file contents. Sections and entries are emitted in
// the order given; nothing is sorted or deduplicated.
func Render(doc Document, now time.Time) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# Generated by hudu-setup on %s\n", now.UTC().Format(time.RFC3339))
	for _, line := range doc.Header {
		writeComment(&buf, line)
	}
	buf.WriteString("\n")

	for _, s := range doc.Sections {
		for _, line := range s.Banner {
			writeComment(&buf, line)
		}
		for _, e := range s.Entries {
			WriteEntry(&buf, e.Key, e.Value)
		}
		buf.WriteString("\n")
	}
	return buf.Bytes()
}

// writeComment keeps every physical line of a multi-line comment commented.
func writeComment(buf *bytes.Buffer, text string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			buf.WriteString("#\n")
			continue
		}
		buf.WriteString("# " + line + "\n")
	}
}

// CheckKeys rejects keys that cannot be written bare or appear twice.
func CheckKeys(doc Document) error {
	seen := make(map[string]bool)
	for _, e := range doc.Entries() {
		if !ValidKey(e.Key) {
			return fmt.Errorf("invalid key %q", e.Key)
		}
		if seen[e.Key] {
			return fmt.Errorf("duplicate key %s", e.Key)
		}
		seen[e.Key] = true
	}
	return nil
}

// Save renders doc and writes it to path with FileMode. Overwrites
// unconditionally; callers confirm beforehand. Nothing is written when
// CheckKeys fails.
func Save(ctx context.Context, w FileWriter, path string, doc Document, now time.Time) error {
	if err := CheckKeys(doc); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.WriteFile(ctx, path, Render(doc, now), FileMode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
