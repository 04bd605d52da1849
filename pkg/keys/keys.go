// Package keys derives practical secrets from generated bit sequences:
// opaque API tokens, RFC 4122 version 4 UUIDs, and HMAC-SHA256 digests.
package keys

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/google/uuid"

	"qrng-server/pkg/bitstring"
)

// ErrNotEnoughBits happens if a derivation needs more bits than the sequence has
var ErrNotEnoughBits = errors.New("not enough bits for this derivation")

// uuidBits is the number of random bits consumed by a version 4 UUID
const uuidBits = 128

// Token returns an opaque URL-safe token backed by the full bit sequence
func Token(b bitstring.Bits) (string, error) {
	if b.Len() == 0 {
		return "", ErrNotEnoughBits
	}

	return b.Base64(), nil
}

// UUID derives a version 4 UUID from the first 128 bits of the sequence.
// The version and variant bits are forced so the result is a valid UUIDv4.
func UUID(b bitstring.Bits) (uuid.UUID, error) {
	if b.Len() < uuidBits {
		return uuid.UUID{}, ErrNotEnoughBits
	}

	raw := b[:uuidBits].Bytes()
	raw[6] = (raw[6] & 0x0f) | 0x40
	raw[8] = (raw[8] & 0x3f) | 0x80

	return uuid.FromBytes(raw)
}

// HMAC returns the hex HMAC-SHA256 digest of the message, keyed with the
// bytes of the bit sequence
func HMAC(b bitstring.Bits, message string) (string, error) {
	if b.Len() == 0 {
		return "", ErrNotEnoughBits
	}

	mac := hmac.New(sha256.New, b.Bytes())
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil)), nil
}
