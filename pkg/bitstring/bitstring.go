package bitstring

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
)

// ErrInvalidBit happens if a bit sequence contains anything other than 0 or 1
var ErrInvalidBit = errors.New("bit sequence may only contain 0 and 1")

// Bits is an ordered sequence of zeros and ones, most-significant bit first
type Bits string

// FromString validates s and returns it as a Bits value
func FromString(s string) (Bits, error) {
	for _, r := range s {
		if r != '0' && r != '1' {
			return "", ErrInvalidBit
		}
	}

	return Bits(s), nil
}

// FromBytes returns the first n bits of b, reading each byte most-significant bit first
func FromBytes(b []byte, n int) (Bits, error) {
	if n < 0 {
		return "", fmt.Errorf("cannot take %d bits", n)
	}

	if n > len(b)*8 {
		return "", fmt.Errorf("need %d bits, but only have %d", n, len(b)*8)
	}

	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		if b[i/8]&(1<<(7-i%8)) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}

	return Bits(sb.String()), nil
}

// Read draws n bits from the reader
func Read(r io.Reader, n int) (Bits, error) {
	if n <= 0 {
		return "", fmt.Errorf("cannot read %d bits", n)
	}

	buf := make([]byte, (n+7)/8)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}

	return FromBytes(buf, n)
}

// Len returns the number of bits
func (b Bits) Len() int {
	return len(b)
}

// Count returns the number of zeros and ones
func (b Bits) Count() (zeros, ones int) {
	for _, r := range b {
		if r == '1' {
			ones++
		} else {
			zeros++
		}
	}

	return
}

// Int returns the big-endian integer value of the bits
// An empty sequence has the value 0
func (b Bits) Int() *big.Int {
	n := new(big.Int)
	if len(b) == 0 {
		return n
	}

	// can't fail; the type only holds 0s and 1s
	n.SetString(string(b), 2)
	return n
}

// Bytes packs the bits into big-endian bytes, zero-padded on the left
// to a whole number of bytes. An empty sequence yields nil.
func (b Bits) Bytes() []byte {
	if len(b) == 0 {
		return nil
	}

	buf := make([]byte, (len(b)+7)/8)
	b.Int().FillBytes(buf)
	return buf
}

// Hex returns the lowercase hex encoding of Bytes
func (b Bits) Hex() string {
	return hex.EncodeToString(b.Bytes())
}

// Base64 returns the URL-safe base64 encoding of Bytes, without padding
func (b Bits) Base64() string {
	return base64.RawURLEncoding.EncodeToString(b.Bytes())
}

func (b Bits) String() string {
	return string(b)
}
