// Package secret generates and checks the hex encoded OTP secret.
package secret

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"regexp"

	"otpsecret/internal/shared"
)

const (
	// ByteLength is the amount of random data in one secret (256 bits).
	ByteLength = 32
	// HexLength is the length of the rendered secret.
	HexLength = ByteLength * 2
	// Format describes the rendered alphabet.
	Format = "Hexadecimal (0-9, a-f)"
)

var shapeRe = regexp.MustCompile(`^[a-f0-9]{64}$`)

// Secret is a 64 character lowercase hex string.
type Secret string

func (s Secret) String() string { return string(s) }

// Bytes decodes the secret back into its raw key material.
func (s Secret) Bytes() ([]byte, error) {
	if !Validate(string(s)) {
		return nil, shared.ErrInvalidSecret
	}
	return hex.DecodeString(string(s))
}

// New creates a secret from crypto/rand.
func New() (Secret, error) {
	return Generate(rand.Reader)
}

// Generate reads ByteLength bytes from r and hex encodes them.
// r must be a cryptographically secure source outside of tests.
func Generate(r io.Reader) (Secret, error) {
	buf := make([]byte, ByteLength)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrEntropyUnavailable, err)
	}
	return Secret(hex.EncodeToString(buf)), nil
}

// Validate reports whether s has the exact shape of a generated secret.
func Validate(s string) bool {
	return shapeRe.MatchString(s)
}
