package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor used for new password hashes
const BcryptCost = 12

// PasswordMinLength is the shortest accepted password
const PasswordMinLength = 8

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword reports whether password matches the stored hash
func CheckPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// IsStrongPassword applies the registration policy: at least eight
// characters with an upper case letter, a lower case letter, a digit and one
// character that is none of those.
func IsStrongPassword(password string) bool {
	if len([]rune(password)) < PasswordMinLength {
		return false
	}

	var upper, lower, digit, other bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			other = true
		}
	}
	return upper && lower && digit && other
}
