// internal/secret/secret.go

// Package secret generates key material for the generated env file.
package secret

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// maxByte is the largest multiple of len(alphabet) that fits in a byte.
// Bytes at or above it are rejected so every character is equally likely.
const maxByte = 256 - 256%len(alphabet)

// ErrEntropyUnavailable is returned when the random source fails. No partial
// secret is ever returned with it.
var ErrEntropyUnavailable = errors.New("secure random source unavailable")

// Generator draws secrets from Source, normally crypto/rand.Reader.
type Generator struct {
	Source io.Reader
}

// NewGenerator returns a Generator backed by the OS random source.
func NewGenerator() *Generator {
	return &Generator{Source: rand.Reader}
}

var defaultGenerator = NewGenerator()

// Hex is Generator.Hex on the OS random source.
func Hex(nBytes int) (string, error) {
	return defaultGenerator.Hex(nBytes)
}

// Alnum is Generator.Alnum on the OS random source.
func Alnum(length int) (string, error) {
	return defaultGenerator.Alnum(length)
}

// Hex returns 2*nBytes lowercase hex characters.
func (g *Generator) Hex(nBytes int) (string, error) {
	if nBytes <= 0 {
		return "", fmt.Errorf("secret length must be positive, got %d", nBytes)
	}
	b := make([]byte, nBytes)
	if err := g.read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Alnum returns exactly length characters from [A-Za-z0-9].
func (g *Generator) Alnum(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("secret length must be positive, got %d", length)
	}
	out := make([]byte, 0, length)
	buf := make([]byte, length+length/4+8)
	for len(out) < length {
		if err := g.read(buf); err != nil {
			return "", err
		}
		for _, c := range buf {
			if int(c) >= maxByte {
				continue
			}
			out = append(out, alphabet[int(c)%len(alphabet)])
			if len(out) == length {
				break
			}
		}
	}
	return string(out), nil
}

func (g *Generator) read(b []byte) error {
	src := g.Source
	if src == nil {
		src = rand.Reader
	}
	if _, err := io.ReadFull(src, b); err != nil {
		return fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
	}
	return nil
}
