// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package security provides encrypted at-rest storage for the DeepSeek API key.
//
// Credentials are sealed with AES-256-GCM. The cipher key is stretched from
// a machine-local random seed with PBKDF2-SHA-256, so the credential file is
// useless without the seed file next to it. All three files live under the
// store directory with owner-only permissions.
//
// # Key Types
//
//   - CredentialStore: stores, retrieves, and deletes the sealed key
//
// # Usage
//
// Open the default store and read the key:
//
//	dir, err := security.DefaultStoreDir()
//	if err != nil {
//	    return err
//	}
//	store := security.NewCredentialStore(dir)
//	if store.Exists() {
//	    apiKey, err := store.Retrieve()
//	    // ...
//	}
//
// Store a new key from `simchat login`:
//
//	err := store.Store(apiKey)
//
// Retrieve returns ErrNoCredential when nothing is stored, and
// ErrDecryptionFailed when the seed no longer matches the ciphertext.
package security
