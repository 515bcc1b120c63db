// internal/envfile/parse.go
package envfile

import (
	"errors"
	"fmt"
	"strings"
)

var errUnterminated = errors.New("unterminated quoted value")

// Parse reads entries back from a rendered file. It accepts the subset of
// shell quoting that Escape produces plus bare and double-quoted segments,
// so hand edits made in the usual styles still load.
func Parse(data []byte) ([]Entry, error) {
	s := string(data)
	var entries []Entry
	pos := 0

	for pos < len(s) {
		pos = skipBlank(s, pos)
		if pos >= len(s) {
			break
		}
		switch s[pos] {
		case '\n', '\r':
			pos++
			continue
		case '#':
			pos = skipLine(s, pos)
			continue
		}

		eq := strings.IndexAny(s[pos:], "=\n")
		if eq < 0 || s[pos+eq] != '=' {
			return nil, fmt.Errorf("line %d: expected KEY=VALUE", lineAt(s, pos))
		}
		key := strings.TrimSpace(s[pos : pos+eq])
		key = strings.TrimSpace(strings.TrimPrefix(key, "export "))
		if key == "" {
			return nil, fmt.Errorf("line %d: empty key", lineAt(s, pos))
		}

		start := skipBlank(s, pos+eq+1)
		value, n, err := scanValue(s[start:])
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", lineAt(s, pos), key, err)
		}
		pos = skipBlank(s, start+n)
		if pos < len(s) && s[pos] == '#' {
			pos = skipLine(s, pos)
		} else if pos < len(s) && s[pos] != '\n' && s[pos] != '\r' {
			return nil, fmt.Errorf("line %d: %s: unexpected text after value", lineAt(s, pos), key)
		}

		entries = append(entries, Entry{Key: key, Value: value})
	}
	return entries, nil
}

// Unescape is the inverse of Escape for a single value.
func Unescape(raw string) (string, error) {
	trimmed := strings.TrimLeft(raw, " \t")
	value, n, err := scanValue(trimmed)
	if err != nil {
		return "", err
	}
	if rest := strings.TrimSpace(trimmed[n:]); rest != "" {
		return "", fmt.Errorf("unexpected text after value: %q", rest)
	}
	return value, nil
}

// scanValue consumes concatenated single-quoted, double-quoted and bare
// segments until unquoted whitespace or end of input. It returns the
// decoded value and the number of bytes consumed.
func scanValue(s string) (string, int, error) {
	var b strings.Builder
	i := 0
	for i < len(s) {
		switch c := s[i]; c {
		case '\'':
			j := strings.IndexByte(s[i+1:], '\'')
			if j < 0 {
				return "", i, errUnterminated
			}
			b.WriteString(s[i+1 : i+1+j])
			i += j + 2
		case '"':
			i++
			closed := false
			for i < len(s) {
				c := s[i]
				if c == '"' {
					i++
					closed = true
					break
				}
				if c == '\\' && i+1 < len(s) && strings.IndexByte("\"\\$`\n", s[i+1]) >= 0 {
					if s[i+1] != '\n' {
						b.WriteByte(s[i+1])
					}
					i += 2
					continue
				}
				b.WriteByte(c)
				i++
			}
			if !closed {
				return "", i, errUnterminated
			}
		case ' ', '\t', '\n', '\r':
			return b.String(), i, nil
		case '\\':
			if i+1 < len(s) {
				b.WriteByte(s[i+1])
				i += 2
			} else {
				i++
			}
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), i, nil
}

func skipBlank(s string, pos int) int {
	for pos < len(s) && (s[pos] == ' ' || s[pos] == '\t') {
		pos++
	}
	return pos
}

func skipLine(s string, pos int) int {
	if i := strings.IndexByte(s[pos:], '\n'); i >= 0 {
		return pos + i + 1
	}
	return len(s)
}

func lineAt(s string, pos int) int {
	return strings.Count(s[:pos], "\n") + 1
}

// Lookup returns the value of the last entry named key.
func Lookup(entries []Entry, key string) (string, bool) {
	value, ok := "", false
	for _, e := range entries {
		if e.Key == key {
			value, ok = e.Value, true
		}
	}
	return value, ok
}
