// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package deepseek implements the DeepSeek chat-completion client and the
// background fetch worker used by the chat session.
//
// # Key Types
//
//   - Client: single-attempt HTTP client for the chat completions endpoint,
//     with bearer auth, a response size cap, and a client-side rate limiter.
//   - Worker: starts one fetch per submitted message on its own goroutine
//     and reports through a Pending mailbox.
//   - Pending: single-use, non-blocking mailbox polled by the session loop.
//   - ClientError / APIError: classified client failures and server-reported
//     error payloads.
//
// # Usage
//
//	worker := deepseek.NewWorker(cfg.DeepSeek.BaseURL, cfg.DeepSeek.Model, cfg.DeepSeek.Temperature)
//	pending := worker.Fetch(snapshot, "how heavy is traffic now?")
//	// later, once per frame:
//	if res, ok := pending.Poll(); ok {
//		// res.Reply or res.Err
//	}
//
// The API key is resolved per fetch from DEEPSEEK_API_KEY, falling back to
// the encrypted credential store. It is deliberately not a config field.
package deepseek
