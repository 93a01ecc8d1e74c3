package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	// ClientIDAlphabet omits characters that are easy to confuse when read aloud (I, O, 0, 1).
	ClientIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	ClientIDLength   = 6
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString returns a cryptographically secure, unbiased string of the requested length.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}

	return string(value), nil
}

// NewClientID returns a fresh client login code. Uniqueness is the caller's concern.
func NewClientID() (string, error) {
	return RandomString(ClientIDLength, ClientIDAlphabet)
}
