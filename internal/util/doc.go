// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the simchat application.
//
// This package contains common helper functions used throughout the
// application for string measurement, wrapping, and file operations.
// String widths are measured in terminal cells via go-runewidth, so CJK
// and other double-width characters wrap and truncate correctly.
//
// # Key Functions
//
// String Utilities:
//   - WrapWidth: cell-width word wrapping that preserves newlines
//   - TruncateWidth: cell-width truncation with ellipsis
//   - TruncateRunes: UTF-8 safe rune-count truncation with ellipsis
//   - PadWidth: right-padding to an exact cell width
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	// Wrap transcript text to the panel width
//	wrapped := util.WrapWidth(reply, 42)
//
//	// Truncate long strings safely for display
//	display := util.TruncateWidth(longText, 50)
//
//	// Write files atomically to prevent data loss
//	err := util.AtomicWriteFile(path, data, 0o600)
package util
