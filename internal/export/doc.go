// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export renders saved chat transcripts to shareable documents.
//
// This package turns a stored transcript into a Markdown, HTML, or JSON
// document. Markdown and HTML are for reading and sharing; JSON is a
// faithful dump of the stored shape for tooling.
//
// # Key Types
//
//   - Exporter: render interface with file extension and MIME type
//   - Options: metadata, timestamp, and theme settings
//
// # Usage
//
// Render with a generated filename:
//
//	opts := export.DefaultOptions()
//	exporter, err := export.ExporterFor("html", opts)
//	if err != nil {
//	    return err
//	}
//	path, err := export.ExportToFile(history, exporter, opts)
//
// Render to an exact path:
//
//	path, err := export.ExportToPath(history, exporter, "notes/session.md")
package export
