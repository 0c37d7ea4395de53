package aes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestEncryptDecrypt(t *testing.T) {
	plain := []byte("110101199001011234")

	cipher, err := Encrypt(plain, testKey)
	require.NoError(t, err)
	assert.NotEqual(t, string(plain), cipher)

	decrypted, err := Decrypt(cipher, testKey)
	require.NoError(t, err)
	assert.Equal(t, plain, decrypted)

	// GCM 每次加密 nonce 不同，密文不重复
	cipher2, err := Encrypt(plain, testKey)
	require.NoError(t, err)
	assert.NotEqual(t, cipher, cipher2)
}

func TestDecryptWrongKey(t *testing.T) {
	cipher, err := Encrypt([]byte("secret"), testKey)
	require.NoError(t, err)

	wrongKey := []byte("ffffffffffffffffffffffffffffffff")
	_, err = Decrypt(cipher, wrongKey)
	assert.Error(t, err)
}

func TestEncryptInvalidKeyLength(t *testing.T) {
	_, err := Encrypt([]byte("secret"), []byte("short"))
	assert.Error(t, err)
}

func TestDecryptGarbage(t *testing.T) {
	_, err := Decrypt("not-base64!!!", testKey)
	assert.Error(t, err)
}
