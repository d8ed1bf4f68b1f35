package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

const keyBits = 2048

// Service holds the process-wide RSA keypair used to protect passwords in
// transit. The private key is generated on first run and persisted to disk;
// clients fetch the public key and encrypt passwords before sending them.
// This is not a substitute for TLS.
type Service struct {
	privateKey *rsa.PrivateKey
	logger     zerolog.Logger
}

// NewService loads the private key from keyPath, generating and persisting a
// new keypair when no key file exists yet.
func NewService(keyPath string, logger zerolog.Logger) (*Service, error) {
	key, err := loadPrivateKey(keyPath)
	if err == nil {
		logger.Info().Str("path", keyPath).Msg("RSA private key loaded")
		return &Service{privateKey: key, logger: logger}, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load RSA private key: %w", err)
	}

	key, err = rsa.GenerateKey(rand.Reader, keyBits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA keypair: %w", err)
	}

	if err := savePrivateKey(keyPath, key); err != nil {
		return nil, err
	}

	logger.Info().Str("path", keyPath).Msg("RSA keypair generated and persisted")
	return &Service{privateKey: key, logger: logger}, nil
}

func loadPrivateKey(keyPath string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, err
	}

	block, _ := pem.Decode(data)
	if block == nil || block.Type != "RSA PRIVATE KEY" {
		return nil, fmt.Errorf("invalid PEM data in %s", keyPath)
	}

	return x509.ParsePKCS1PrivateKey(block.Bytes)
}

func savePrivateKey(keyPath string, key *rsa.PrivateKey) error {
	if dir := filepath.Dir(keyPath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create key directory: %w", err)
		}
	}

	block := &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}

	if err := os.WriteFile(keyPath, pem.EncodeToMemory(block), 0o600); err != nil {
		return fmt.Errorf("failed to persist RSA private key: %w", err)
	}
	return nil
}

// PublicKeyPEM returns the public half of the keypair, PEM encoded, for the
// anonymous public-key endpoint.
func (s *Service) PublicKeyPEM() (string, error) {
	der, err := x509.MarshalPKIXPublicKey(&s.privateKey.PublicKey)
	if err != nil {
		return "", fmt.Errorf("failed to marshal public key: %w", err)
	}

	block := &pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: der,
	}
	return string(pem.EncodeToMemory(block)), nil
}

// Decrypt decodes a base64 PKCS1v15 ciphertext produced with the public key.
// Input that is not valid base64 or does not decrypt is returned unchanged so
// clients that skip client-side encryption keep working.
func (s *Service) Decrypt(encoded string) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return encoded, nil
	}

	plaintext, err := rsa.DecryptPKCS1v15(rand.Reader, s.privateKey, ciphertext)
	if err != nil {
		s.logger.Debug().Err(err).Msg("RSA decryption failed, treating value as plaintext")
		return encoded, nil
	}

	return string(plaintext), nil
}

// Encrypt encrypts plaintext with the public key. Exists for tests and
// tooling; production clients encrypt in the browser.
func (s *Service) Encrypt(plaintext string) (string, error) {
	ciphertext, err := rsa.EncryptPKCS1v15(rand.Reader, &s.privateKey.PublicKey, []byte(plaintext))
	if err != nil {
		return "", fmt.Errorf("failed to encrypt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}
