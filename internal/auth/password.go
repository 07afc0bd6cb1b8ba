package auth

import (
	"crypto/rand"
	"math/big"
)

const (
	passwordLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	passwordDigits  = "0123456789"
	passwordSpecial = "!#$%&*+-=?@^_"
)

// GeneratePassword returns a random password of the given length containing
// at least one letter, one digit and one special character. Used for
// admin-created accounts whose password is handed to the user out of band.
func GeneratePassword(length int) string {
	if length < 3 {
		length = 8
	}
	all := passwordLetters + passwordDigits + passwordSpecial

	chars := []byte{
		pick(passwordLetters),
		pick(passwordDigits),
		pick(passwordSpecial),
	}
	for i := 3; i < length; i++ {
		chars = append(chars, pick(all))
	}

	// Fisher-Yates with crypto randomness so the mandatory classes are not
	// always in the leading positions.
	for i := len(chars) - 1; i > 0; i-- {
		j := randInt(i + 1)
		chars[i], chars[j] = chars[j], chars[i]
	}
	return string(chars)
}

func pick(set string) byte {
	return set[randInt(len(set))]
}

func randInt(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails if the OS entropy source is broken.
		panic(err)
	}
	return int(v.Int64())
}
