package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted bcrypt hash of password. The salt is
// generated per call, so hashing the same password twice yields different
// strings.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether password is the plaintext behind hash.
// A corrupted or foreign hash is a plain mismatch, never a panic or error.
func CheckPassword(password string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
