package bitstring

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromString(t *testing.T) {
	a := assert.New(t)

	b, err := FromString("0110")
	a.NoError(err)
	a.Equal(Bits("0110"), b)

	_, err = FromString("01102")
	a.Equal(ErrInvalidBit, err)

	b, err = FromString("")
	a.NoError(err)
	a.Equal(0, b.Len())
}

func TestFromBytes(t *testing.T) {
	a := assert.New(t)

	b, err := FromBytes([]byte{0xab, 0xcd}, 12)
	a.NoError(err)
	a.Equal("101010111100", b.String())

	b, err = FromBytes([]byte{0x80}, 1)
	a.NoError(err)
	a.Equal("1", b.String())

	_, err = FromBytes([]byte{0x80}, 9)
	a.Error(err)

	b, err = FromBytes(nil, 0)
	a.NoError(err)
	a.Equal(0, b.Len())
}

func TestRead(t *testing.T) {
	a := assert.New(t)

	b, err := Read(rand.Reader, 100)
	a.NoError(err)
	a.Equal(100, b.Len())
	for _, r := range b.String() {
		a.Contains("01", string(r))
	}

	_, err = Read(rand.Reader, 0)
	a.Error(err)
}

func TestBits_Count(t *testing.T) {
	zeros, ones := Bits("001101").Count()
	assert.Equal(t, 3, zeros)
	assert.Equal(t, 3, ones)

	zeros, ones = Bits("").Count()
	assert.Equal(t, 0, zeros)
	assert.Equal(t, 0, ones)
}

func TestBits_Conversions(t *testing.T) {
	a := assert.New(t)

	b := Bits("00000001")
	a.Equal(int64(1), b.Int().Int64())
	a.Equal([]byte{0x01}, b.Bytes())
	a.Equal("01", b.Hex())
	a.Equal("AQ", b.Base64())

	// partial byte is padded on the left
	b = Bits("111")
	a.Equal(int64(7), b.Int().Int64())
	a.Equal([]byte{0x07}, b.Bytes())

	// 16 bits
	b = Bits("1010101111001101")
	a.True(bytes.Equal([]byte{0xab, 0xcd}, b.Bytes()))
	a.Equal("abcd", b.Hex())
	a.Equal(int64(0xabcd), b.Int().Int64())
}

func TestBits_Empty(t *testing.T) {
	a := assert.New(t)

	b := Bits("")
	a.Nil(b.Bytes())
	a.Equal("", b.Hex())
	a.Equal("", b.Base64())
	a.Equal(int64(0), b.Int().Int64())
}
