package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var cryptoKey = []byte("0123456789abcdef0123456789abcdef")

func TestEncryptDecryptRoundTrip(t *testing.T) {
	enc, err := Encrypt([]byte("ya29.some-access-token"), cryptoKey)
	require.NoError(t, err)
	require.NotEqual(t, "ya29.some-access-token", enc)

	dec, err := Decrypt(enc, cryptoKey)
	require.NoError(t, err)
	require.Equal(t, "ya29.some-access-token", dec)
}

func TestEncrypt_NoncesDiffer(t *testing.T) {
	a, err := Encrypt([]byte("same"), cryptoKey)
	require.NoError(t, err)
	b, err := Encrypt([]byte("same"), cryptoKey)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestDecrypt_WrongKey(t *testing.T) {
	enc, err := Encrypt([]byte("secret"), cryptoKey)
	require.NoError(t, err)

	otherKey := []byte("fedcba9876543210fedcba9876543210")
	_, err = Decrypt(enc, otherKey)
	require.Error(t, err)
}

func TestDecrypt_Garbage(t *testing.T) {
	_, err := Decrypt("bm90LWEtY2lwaGVydGV4dA==", cryptoKey)
	require.Error(t, err)
}
