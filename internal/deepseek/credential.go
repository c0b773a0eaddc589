// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package deepseek implements the DeepSeek chat-completion client and the
// background fetch worker used by the chat session.
package deepseek

import (
	"os"
	"strings"

	"github.com/jeranaias/simchat-tui/internal/security"
)

// APIKeyEnvVar is the environment variable consulted first for the DeepSeek
// API key. The key is never read from the config file.
const APIKeyEnvVar = "DEEPSEEK_API_KEY"

// ResolveAPIKey returns the DeepSeek API key, or ErrMissingCredential if
// none is available.
//
// Resolution order: the DEEPSEEK_API_KEY environment variable, then the
// encrypted credential store written by `simchat login`. The key is resolved
// fresh on every fetch so exported variables take effect without a restart.
func ResolveAPIKey() (string, error) {
	if key := strings.TrimSpace(os.Getenv(APIKeyEnvVar)); key != "" {
		return key, nil
	}

	dir, err := security.DefaultStoreDir()
	if err != nil {
		return "", ErrMissingCredential
	}
	key, err := security.NewCredentialStore(dir).Retrieve()
	if err != nil || strings.TrimSpace(key) == "" {
		return "", ErrMissingCredential
	}
	return strings.TrimSpace(key), nil
}
