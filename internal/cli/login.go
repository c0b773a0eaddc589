// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// login.go - API key management (simchat login).
//
// The key is read with echo disabled and sealed into the encrypted
// credential store under ~/.simchat. It is never written to the config
// file and never printed back; confirmations show a fingerprint only.

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/jeranaias/simchat-tui/internal/deepseek"
	"github.com/jeranaias/simchat-tui/internal/security"
)

// RunLogin handles the "login" command.
func RunLogin(args Args) error {
	store, dir, err := openCredentialStore()
	if err != nil {
		return err
	}

	switch strings.ToLower(args.Subcommand) {
	case "", "set":
		return loginPrompt(store, dir)
	case "status", "show":
		return loginStatus(store, dir)
	case "clear", "delete", "logout":
		return loginClear(store)
	default:
		return fmt.Errorf("unknown login command: %s (usage: simchat login [status|clear])", args.Subcommand)
	}
}

// openCredentialStore opens the credential store at the default directory.
func openCredentialStore() (*security.CredentialStore, string, error) {
	dir, err := security.DefaultStoreDir()
	if err != nil {
		return nil, "", fmt.Errorf("resolve credential directory: %w", err)
	}
	return security.NewCredentialStore(dir), dir, nil
}

// loginPrompt reads the API key without echo and seals it to disk.
func loginPrompt(store *security.CredentialStore, dir string) error {
	if err := RequiresTTY("enter the API key"); err != nil {
		return err
	}

	if store.Exists() {
		fmt.Println(dimStyle.Render("A credential is already stored; it will be replaced."))
	}

	fmt.Print("DeepSeek API key: ")
	keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to read API key: %w", err)
	}
	fmt.Println() // newline after hidden input

	apiKey := strings.TrimSpace(string(keyBytes))
	security.ZeroBytes(keyBytes)
	if apiKey == "" {
		return fmt.Errorf("API key required")
	}

	if err := store.Store(apiKey); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}

	fingerprint := deepseek.NewClient(apiKey).KeyFingerprint()
	fmt.Printf("%s Credential stored (fingerprint %s)\n", commandStyle.Render("[OK]"), fingerprint)
	fmt.Println(dimStyle.Render("  Location: " + dir))
	if os.Getenv(deepseek.APIKeyEnvVar) != "" {
		fmt.Println(warningStyle.Render("  Note: " + deepseek.APIKeyEnvVar + " is set and takes precedence over the stored key."))
	}
	return nil
}

// loginStatus reports where the next fetch would take its key from.
func loginStatus(store *security.CredentialStore, dir string) error {
	fmt.Println(headerStyle.Render("Credential Status"))
	fmt.Println(separatorLine(30))

	if key := strings.TrimSpace(os.Getenv(deepseek.APIKeyEnvVar)); key != "" {
		fmt.Printf("  %s %s (fingerprint %s)\n",
			infoStyle.Render("Environment:"),
			commandStyle.Render("set"),
			deepseek.NewClient(key).KeyFingerprint())
	} else {
		fmt.Printf("  %s %s\n", infoStyle.Render("Environment:"), dimStyle.Render(deepseek.APIKeyEnvVar+" not set"))
	}

	if !store.Exists() {
		fmt.Printf("  %s %s\n", infoStyle.Render("Stored:"), warningStyle.Render("none"))
		fmt.Println()
		fmt.Println(dimStyle.Render("  Run 'simchat login' to store an API key."))
		return nil
	}

	key, err := store.Retrieve()
	if err != nil {
		if errors.Is(err, security.ErrDecryptionFailed) || errors.Is(err, security.ErrInvalidCiphertext) {
			fmt.Printf("  %s %s\n", infoStyle.Render("Stored:"), errorStyle.Render("unreadable ("+err.Error()+")"))
			fmt.Println(dimStyle.Render("  Run 'simchat login' to store the key again."))
			return nil
		}
		return fmt.Errorf("failed to read credential: %w", err)
	}

	fmt.Printf("  %s %s (fingerprint %s)\n",
		infoStyle.Render("Stored:"),
		commandStyle.Render("configured"),
		deepseek.NewClient(key).KeyFingerprint())
	fmt.Printf("  %s %s\n", infoStyle.Render("Location:"), dimStyle.Render(dir))
	return nil
}

// loginClear deletes the stored credential.
func loginClear(store *security.CredentialStore) error {
	if !store.Exists() {
		fmt.Println(dimStyle.Render("No stored credential to clear."))
		return nil
	}
	if err := store.Delete(); err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	fmt.Printf("%s Stored credential deleted\n", commandStyle.Render("[OK]"))
	if os.Getenv(deepseek.APIKeyEnvVar) != "" {
		fmt.Println(warningStyle.Render("  Note: " + deepseek.APIKeyEnvVar + " is still set in the environment."))
	}
	return nil
}
