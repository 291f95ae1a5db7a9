package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var errNegativeLength = errors.New("length must be non-negative")

// RandomString returns a cryptographically secure, unbiased alphanumeric
// string of the requested length.
func RandomString(length int) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}

	limit := big.NewInt(int64(len(tokenAlphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = tokenAlphabet[position.Int64()]
	}

	return string(value), nil
}
