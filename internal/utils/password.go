package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes an admin password for ADMIN_PASSWORD_HASH.  cost is
// passed to bcrypt unchanged; values outside bcrypt's range are reported
// as an error rather than clamped.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether password matches the stored admin hash.
// A malformed hash never matches.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
