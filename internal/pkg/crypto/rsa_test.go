package crypto

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	keyPath := filepath.Join(t.TempDir(), "private.pem")
	svc, err := NewService(keyPath, zerolog.Nop())
	require.NoError(t, err)
	return svc
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	svc := newTestService(t)

	encrypted, err := svc.Encrypt("S3cretPassw0rd!")
	require.NoError(t, err)
	assert.NotEqual(t, "S3cretPassw0rd!", encrypted)

	decrypted, err := svc.Decrypt(encrypted)
	require.NoError(t, err)
	assert.Equal(t, "S3cretPassw0rd!", decrypted)
}

func TestDecryptPassesThroughPlaintext(t *testing.T) {
	svc := newTestService(t)

	// A value that never went through Encrypt comes back unchanged.
	decrypted, err := svc.Decrypt("plain-password")
	require.NoError(t, err)
	assert.Equal(t, "plain-password", decrypted)
}

func TestKeyIsPersistedAndReloaded(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "keys", "private.pem")

	first, err := NewService(keyPath, zerolog.Nop())
	require.NoError(t, err)

	info, err := os.Stat(keyPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	encrypted, err := first.Encrypt("carry-over")
	require.NoError(t, err)

	// A second service on the same path loads the same key and can decrypt.
	second, err := NewService(keyPath, zerolog.Nop())
	require.NoError(t, err)

	decrypted, err := second.Decrypt(encrypted)
	require.NoError(t, err)
	assert.Equal(t, "carry-over", decrypted)
}

func TestPublicKeyPEM(t *testing.T) {
	svc := newTestService(t)

	pemStr, err := svc.PublicKeyPEM()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(pemStr, "-----BEGIN PUBLIC KEY-----"))
}
