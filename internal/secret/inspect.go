package secret

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// MinUniqueChars is the diversity threshold below which a secret looks hand made.
// A random 64 char hex string uses fewer than 10 of the 16 digits with a
// probability around 1e-12.
const MinUniqueChars = 10

// Inspection is the result of checking an existing secret.
type Inspection struct {
	Length      int      `json:"length"`
	IsHex       bool     `json:"is_hex"`
	UniqueChars int      `json:"unique_chars"`
	Preview     string   `json:"preview"`
	Fingerprint string   `json:"fingerprint"`
	Problems    []string `json:"problems,omitempty"`
}

// Valid is true when no problem was found.
func (i Inspection) Valid() bool {
	return len(i.Problems) == 0
}

// Inspect checks an existing secret, e.g. one read from the environment.
func Inspect(s string) Inspection {
	in := Inspection{Length: len(s)}
	if s == "" {
		in.Problems = append(in.Problems, "not set")
		return in
	}

	in.Preview = Preview(s)
	in.Fingerprint = Fingerprint(s)
	in.IsHex = isLowerHex(s)

	seen := make(map[rune]struct{})
	for _, c := range s {
		seen[c] = struct{}{}
	}
	in.UniqueChars = len(seen)

	if in.Length != HexLength {
		in.Problems = append(in.Problems, fmt.Sprintf("length must be %d characters (current: %d)", HexLength, in.Length))
	}
	if !in.IsHex {
		in.Problems = append(in.Problems, "must only contain the characters a-f and 0-9")
	}
	if in.UniqueChars < MinUniqueChars {
		in.Problems = append(in.Problems, fmt.Sprintf("not enough distinct characters (unique: %d)", in.UniqueChars))
	}
	return in
}

// MinPreviewLength is the shortest value, in characters, whose ends are shown.
// Below it the 16 visible characters would give away most of the value.
const MinPreviewLength = 32

// Preview masks the middle of s, keeping 8 characters on each side.
// It cuts on rune boundaries so the result stays valid UTF-8.
func Preview(s string) string {
	r := []rune(s)
	if len(r) < MinPreviewLength {
		return "***"
	}
	return string(r[:8]) + "..." + string(r[len(r)-8:])
}

// Fingerprint is a short, non reversible identifier of s.
// Two fingerprints match when the operator pasted the same value.
func Fingerprint(s string) string {
	sum := blake2b.Sum256([]byte(s))
	return hex.EncodeToString(sum[:8])
}

func isLowerHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
