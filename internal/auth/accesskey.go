package auth

import "golang.org/x/crypto/bcrypt"

// HashAccessKey hashes a generated user access key with the configured cost.
func HashAccessKey(key string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(key), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CompareAccessKey verifies an access key against its stored hash.
func CompareAccessKey(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
