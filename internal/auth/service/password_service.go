package service

import "golang.org/x/crypto/bcrypt"

// PasswordHasher wraps bcrypt behind the two operations the account workflows
// need. bcrypt embeds a random salt in each digest and compares in constant
// time, so callers get both properties for free. Stateless and safe for
// concurrent use.
type PasswordHasher struct{}

func NewPasswordHasher() PasswordHasher {
	return PasswordHasher{}
}

func (PasswordHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (PasswordHasher) Verify(digest, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(candidate)) == nil
}
