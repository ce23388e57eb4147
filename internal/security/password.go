package security

import "golang.org/x/crypto/bcrypt"

const passwordCost = 10

// ErrPasswordTooLong is returned for passwords bcrypt cannot hash (over 72 bytes).
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// decoyHash takes the compare when no account matched.
var decoyHash, _ = bcrypt.GenerateFromPassword([]byte("habits-decoy-password"), passwordCost)

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), passwordCost)
	return string(b), err
}

// CheckPassword reports whether pw matches hash. An empty hash still pays a full compare and never matches.
func CheckPassword(hash, pw string) bool {
	if hash == "" {
		_ = bcrypt.CompareHashAndPassword(decoyHash, []byte(pw))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
