package otp

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"math/big"
)

var (
	// ErrInvalidLength is returned when a code length is less than one.
	ErrInvalidLength = errors.New("otp: code length must be at least 1")

	// ErrInvalidByteLength is returned when a token byte length is less than one.
	ErrInvalidByteLength = errors.New("otp: token byte length must be at least 1")
)

// Generator produces one-time codes and security tokens.
type Generator interface {
	// Code returns a numeric one-time code of the given length.
	Code(length int) (string, error)
	// Token returns a URL-safe single-use token built from byteLength random bytes.
	Token(byteLength int) (string, error)
}

// Rand implements Generator using crypto/rand.
type Rand struct{}

// NewRand returns a crypto/rand backed Generator.
func NewRand() *Rand {
	return &Rand{}
}

// Code returns a uniformly random decimal code of the given length.
//
// Each digit is drawn independently so the code space is exactly 10^length.
func (*Rand) Code(length int) (string, error) {
	if length < 1 {
		return "", ErrInvalidLength
	}

	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}

	return string(digits), nil
}

// Token returns a base64 URL-safe token (no padding) from byteLength random bytes.
func (*Rand) Token(byteLength int) (string, error) {
	if byteLength < 1 {
		return "", ErrInvalidByteLength
	}

	raw := make([]byte, byteLength)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(raw), nil
}
