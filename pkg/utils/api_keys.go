package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const apiKeyAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateAPIKey returns a new bearer token. Only its hash is stored.
func GenerateAPIKey() (string, error) {
	id, err := gonanoid.Generate(apiKeyAlphabet, 40)
	if err != nil {
		return "", err
	}
	return "mp_" + id, nil
}

func HashAPIKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

func VerifyAPIKey(key, storedHash string) bool {
	return subtle.ConstantTimeCompare([]byte(HashAPIKey(key)), []byte(storedHash)) == 1
}
