package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted bcrypt hash. Two calls on the same input
// yield different strings; both verify.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword returns false on mismatch and on malformed hashes alike.
func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
