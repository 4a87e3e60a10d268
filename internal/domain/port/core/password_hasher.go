package core

// PasswordHasher hashes and verifies account passwords
type PasswordHasher interface {
	// Hash returns an encoded hash of the password
	Hash(password string) (string, error)
	// Compare returns nil when password matches hash
	Compare(hash, password string) error
}
