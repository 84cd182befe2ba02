package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cryptKey = []byte("0123456789abcdef0123456789abcdef")

func TestEncryptDecryptRoundtrip(t *testing.T) {
	encrypted, err := Encrypt("platform-access-token", cryptKey)
	require.NoError(t, err)
	assert.NotEqual(t, "platform-access-token", encrypted)

	decrypted, err := Decrypt(encrypted, cryptKey)
	require.NoError(t, err)
	assert.Equal(t, "platform-access-token", decrypted)
}

func TestDecryptWrongKey(t *testing.T) {
	encrypted, err := Encrypt("secret", cryptKey)
	require.NoError(t, err)

	other := []byte("ffffffffffffffffffffffffffffffff")
	_, err = Decrypt(encrypted, other)
	assert.Error(t, err)
}

func TestDecryptGarbage(t *testing.T) {
	_, err := Decrypt("not-base64!!", cryptKey)
	assert.Error(t, err)
}

func TestTokenRoundtrip(t *testing.T) {
	token, err := GenerateToken("signing-key", 42, "EMPLOYEE", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken("signing-key", token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "EMPLOYEE", claims.Role)
}

func TestValidateTokenWrongKey(t *testing.T) {
	token, err := GenerateToken("signing-key", 42, "EMPLOYEE", time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken("other-key", token)
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	token, err := GenerateToken("signing-key", 42, "EMPLOYEE", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken("signing-key", token)
	assert.Error(t, err)
}
