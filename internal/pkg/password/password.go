package password

import "golang.org/x/crypto/bcrypt"

// Hash returns a salted bcrypt hash of the password. Two calls with the same
// input produce different hashes; both verify against the original password.
func Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether password matches the stored bcrypt hash.
// Malformed hashes verify as false rather than erroring.
func Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
