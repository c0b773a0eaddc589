// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session implements the chat session controller that mediates
// between the input surface, the transcript, and the background fetch worker.
//
// # Key Types
//
//   - Controller: owns the transcript, the input buffer, the panel
//     percentages, and at most one outstanding fetch. Idle accepts submits;
//     AwaitingReply refuses them until the result has been polled.
//   - State: Idle or AwaitingReply.
//   - ResizeDirection: Shrink or Grow, one ResizeStep per click.
//
// # Usage
//
//	ctrl := session.NewController(worker, session.Config{Prefill: cfg.Chat.Prefill})
//	ctrl.Submit("how heavy is traffic?")
//	// once per frame:
//	if ctrl.PollCompletion() {
//		if d, ok := ctrl.TakeDirective(); ok {
//			clock.Apply(d)
//		}
//	}
//
// The controller is confined to the frame loop goroutine. The worker only
// touches the snapshot handed to it at submit time and reports through its
// mailbox, so the controller needs no locks.
package session
