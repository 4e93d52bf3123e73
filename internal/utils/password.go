package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a signup or profile-update password with bcrypt at the
// configured cost. The resulting hash is what gets stored; the plain password
// never leaves the handler.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt hash. The
// comparison is constant-time; callers map a false result to the generic
// invalid-credentials response.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
