// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package deepseek implements the DeepSeek chat-completion client and the
// background fetch worker used by the chat session.
package deepseek

import "fmt"

// ErrorKind classifies client-side failures.
type ErrorKind int

// Client failure categories.
const (
	// ErrConfiguration indicates a missing or unusable credential or endpoint.
	ErrConfiguration ErrorKind = iota

	// ErrTransport indicates the request never produced a usable response
	// (connection refused, DNS failure, truncated body).
	ErrTransport

	// ErrProtocol indicates the server answered but the payload could not
	// be interpreted.
	ErrProtocol
)

// String returns a short label for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrConfiguration:
		return "configuration"
	case ErrTransport:
		return "transport"
	case ErrProtocol:
		return "protocol"
	default:
		return "unknown"
	}
}

// ClientError is a classified failure from the DeepSeek client. The message
// is written for direct display in the chat transcript, so it carries no
// kind prefix.
type ClientError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrMissingCredential is returned when no API key can be resolved from the
// DEEPSEEK_API_KEY environment variable or the credential store.
var ErrMissingCredential = &ClientError{
	Kind:    ErrConfiguration,
	Message: "Missing DEEPSEEK_API_KEY env var",
}

// APIError represents an error response reported by the DeepSeek API.
type APIError struct {
	Code    string
	Message string
	Status  int
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("DeepSeek error [%s] (HTTP %d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("DeepSeek error (HTTP %d): %s", e.Status, e.Message)
}

func transportErr(msg string, cause error) *ClientError {
	return &ClientError{Kind: ErrTransport, Message: msg, Cause: cause}
}

func protocolErr(msg string, cause error) *ClientError {
	return &ClientError{Kind: ErrProtocol, Message: msg, Cause: cause}
}
