package security

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

// Ambiguous glyphs (0/O, 1/l/I) are excluded.
const (
	temporaryLetters = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
	temporaryDigits  = "23456789"

	TemporaryPasswordAlphabet  = temporaryLetters + temporaryDigits
	MinTemporaryPasswordLength = 8
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString draws length characters uniformly from alphabet using crypto/rand.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	var builder strings.Builder
	builder.Grow(length)
	for i := 0; i < length; i++ {
		char, err := randomChar(alphabet)
		if err != nil {
			return "", err
		}
		builder.WriteByte(char)
	}
	return builder.String(), nil
}

// TemporaryPassword returns a password of at least MinTemporaryPasswordLength
// characters that contains both a letter and a digit.
func TemporaryPassword(length int) (string, error) {
	if length < MinTemporaryPasswordLength {
		length = MinTemporaryPasswordLength
	}

	body, err := RandomString(length-2, TemporaryPasswordAlphabet)
	if err != nil {
		return "", err
	}
	letter, err := randomChar(temporaryLetters)
	if err != nil {
		return "", err
	}
	digit, err := randomChar(temporaryDigits)
	if err != nil {
		return "", err
	}

	value := []byte(body + string(letter) + string(digit))
	if err := shuffle(value); err != nil {
		return "", err
	}
	return string(value), nil
}

func randomChar(alphabet string) (byte, error) {
	position, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
	if err != nil {
		return 0, err
	}
	return alphabet[position.Int64()], nil
}

// shuffle is a Fisher-Yates pass driven by crypto/rand.
func shuffle(value []byte) error {
	for index := len(value) - 1; index > 0; index-- {
		swap, err := rand.Int(rand.Reader, big.NewInt(int64(index+1)))
		if err != nil {
			return err
		}
		other := int(swap.Int64())
		value[index], value[other] = value[other], value[index]
	}
	return nil
}
