package security

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

const passwordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

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

// TemporaryPassword draws from an unambiguous alphabet until the result has an
// upper case letter, a lower case letter and a digit.
func TemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}
	for {
		candidate, err := RandomString(length, passwordAlphabet)
		if err != nil {
			return "", err
		}
		if strings.ContainsAny(candidate, "ABCDEFGHJKLMNPQRSTUVWXYZ") &&
			strings.ContainsAny(candidate, "abcdefghijkmnopqrstuvwxyz") &&
			strings.ContainsAny(candidate, "23456789") {
			return candidate, nil
		}
	}
}
