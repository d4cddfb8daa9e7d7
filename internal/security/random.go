package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// FilenameAlphabet is safe for URLs and case-insensitive filesystems.
const FilenameAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
	errEmptyRange     = errors.New("upper bound must be positive")
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

// RandomIndex returns an unbiased index in [0, upper).
func RandomIndex(upper int) (int, error) {
	if upper <= 0 {
		return 0, errEmptyRange
	}
	position, err := rand.Int(rand.Reader, big.NewInt(int64(upper)))
	if err != nil {
		return 0, err
	}
	return int(position.Int64()), nil
}
