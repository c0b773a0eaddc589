// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package security provides encrypted at-rest storage for the DeepSeek API key.
//
// Credentials are sealed with AES-256-GCM. The cipher key is stretched from a
// machine-local random seed with PBKDF2-SHA-256, so the credential file is
// useless without the seed file next to it.
package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	"github.com/jeranaias/simchat-tui/internal/util"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// EncryptedPrefix marks a value as encrypted (format: ENC:base64(nonce|ciphertext|tag))
const EncryptedPrefix = "ENC:"

// NonceSize is the size of the nonce/IV for AES-GCM (12 bytes / 96 bits)
const NonceSize = 12

// KeySize is the size of the AES-256 key (32 bytes / 256 bits)
const KeySize = 32

// SaltSize is the size of the salt for key derivation (32 bytes)
const SaltSize = 32

// PBKDF2Iterations is the number of iterations for PBKDF2 key derivation.
// OWASP 2023 recommends 600,000+ for PBKDF2-SHA-256.
const PBKDF2Iterations = 600000

const (
	seedFile       = "master.seed"
	saltFile       = "master.salt"
	credentialFile = "credential.enc"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNoCredential indicates no API key has been stored yet
	ErrNoCredential = errors.New("no stored credential: run 'simchat login'")
	// ErrInvalidCiphertext indicates the credential file format is invalid
	ErrInvalidCiphertext = errors.New("invalid ciphertext format")
	// ErrDecryptionFailed indicates decryption failed (wrong seed or tampered data)
	ErrDecryptionFailed = errors.New("decryption failed: authentication tag mismatch")
)

// =============================================================================
// HELPERS
// =============================================================================

// ZeroBytes zeros sensitive byte slices to limit key material lifetime in memory.
func ZeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// DeriveKey stretches a seed and salt into an AES-256 key using PBKDF2-SHA-256.
func DeriveKey(seed, salt []byte) []byte {
	return pbkdf2.Key(seed, salt, PBKDF2Iterations, KeySize, sha256.New)
}

// randomBytes fills a fresh slice of n bytes from crypto/rand.
func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return b, nil
}

// =============================================================================
// CREDENTIAL STORE
// =============================================================================

// CredentialStore seals and unseals the API key under a directory, normally
// ~/.simchat. Seed, salt, and credential all live in that directory with
// owner-only permissions.
type CredentialStore struct {
	dir string
}

// NewCredentialStore creates a store rooted at dir.
func NewCredentialStore(dir string) *CredentialStore {
	return &CredentialStore{dir: dir}
}

// DefaultStoreDir returns the default credential directory (~/.simchat).
func DefaultStoreDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".simchat"), nil
}

func (s *CredentialStore) seedPath() string       { return filepath.Join(s.dir, seedFile) }
func (s *CredentialStore) saltPath() string       { return filepath.Join(s.dir, saltFile) }
func (s *CredentialStore) credentialPath() string { return filepath.Join(s.dir, credentialFile) }

// Exists checks whether a sealed credential is present.
func (s *CredentialStore) Exists() bool {
	_, err := os.Stat(s.credentialPath())
	return err == nil
}

// Store seals the API key and writes it to disk. The seed and salt are
// generated on first use.
func (s *CredentialStore) Store(apiKey string) error {
	key, err := s.loadOrCreateKey()
	if err != nil {
		return err
	}
	defer ZeroBytes(key)

	gcm, err := newGCM(key)
	if err != nil {
		return err
	}

	nonce, err := randomBytes(NonceSize)
	if err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := gcm.Seal(nonce, nonce, []byte(apiKey), nil)
	encoded := EncryptedPrefix + base64.StdEncoding.EncodeToString(sealed)

	if err := util.AtomicWriteFile(s.credentialPath(), []byte(encoded), 0o600); err != nil {
		return fmt.Errorf("failed to write credential file: %w", err)
	}
	return nil
}

// Retrieve unseals and returns the stored API key.
func (s *CredentialStore) Retrieve() (string, error) {
	data, err := os.ReadFile(s.credentialPath())
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoCredential
		}
		return "", fmt.Errorf("failed to read credential file: %w", err)
	}

	content := strings.TrimSpace(string(data))
	if !strings.HasPrefix(content, EncryptedPrefix) {
		return "", ErrInvalidCiphertext
	}

	sealed, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(content, EncryptedPrefix))
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	if len(sealed) < NonceSize {
		return "", ErrInvalidCiphertext
	}

	key, err := s.loadKey()
	if err != nil {
		return "", err
	}
	defer ZeroBytes(key)

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	plaintext, err := gcm.Open(nil, sealed[:NonceSize], sealed[NonceSize:], nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	return string(plaintext), nil
}

// Delete removes the sealed credential. The seed and salt stay so a new
// login reuses them.
func (s *CredentialStore) Delete() error {
	if err := os.Remove(s.credentialPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete credential file: %w", err)
	}
	return nil
}

// =============================================================================
// KEY MATERIAL
// =============================================================================

// loadOrCreateKey derives the cipher key, generating seed and salt files on
// first use.
func (s *CredentialStore) loadOrCreateKey() ([]byte, error) {
	seed, err := os.ReadFile(s.seedPath())
	if os.IsNotExist(err) {
		if seed, err = randomBytes(KeySize); err != nil {
			return nil, err
		}
		if err = util.AtomicWriteFile(s.seedPath(), seed, 0o600); err != nil {
			return nil, fmt.Errorf("failed to write seed file: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	defer ZeroBytes(seed)

	salt, err := os.ReadFile(s.saltPath())
	if os.IsNotExist(err) {
		if salt, err = randomBytes(SaltSize); err != nil {
			return nil, err
		}
		if err = util.AtomicWriteFile(s.saltPath(), salt, 0o600); err != nil {
			return nil, fmt.Errorf("failed to write salt file: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to read salt file: %w", err)
	}

	return DeriveKey(seed, salt), nil
}

// loadKey derives the cipher key from existing seed and salt files.
func (s *CredentialStore) loadKey() ([]byte, error) {
	seed, err := os.ReadFile(s.seedPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	defer ZeroBytes(seed)

	salt, err := os.ReadFile(s.saltPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read salt file: %w", err)
	}

	return DeriveKey(seed, salt), nil
}

// newGCM builds the AEAD cipher for a derived key.
func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM cipher: %w", err)
	}
	return gcm, nil
}
