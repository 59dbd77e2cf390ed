package secret

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"time"
)

// DefaultStep matches the OTP lifetime of the backend consuming the secret.
const DefaultStep = 5 * time.Minute

// SampleCode derives a 6 digit code from s for the time step containing t.
// It proves the secret is usable as an HMAC key.
func SampleCode(s Secret, t time.Time, step time.Duration) (string, error) {
	key, err := s.Bytes()
	if err != nil {
		return "", err
	}
	if step < time.Second {
		step = DefaultStep
	}

	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], uint64(t.Unix()/int64(step/time.Second)))

	mac := hmac.New(sha256.New, key)
	mac.Write(msg[:])
	return truncate(mac.Sum(nil)), nil
}

// truncate is the dynamic truncation of RFC 4226, section 5.3.
func truncate(sum []byte) string {
	offset := sum[len(sum)-1] & 0x0f
	bin := uint32(sum[offset]&0x7f)<<24 |
		uint32(sum[offset+1])<<16 |
		uint32(sum[offset+2])<<8 |
		uint32(sum[offset+3])
	return fmt.Sprintf("%06d", bin%1000000)
}
