// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"

	"github.com/jeranaias/simchat-tui/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports transcripts to JSON format.
// NOTE: JSON exports always include the complete transcript and do not
// respect filtering options. This keeps the exported JSON a faithful
// representation of the stored transcript that can be re-imported.
type JSONExporter struct {
	// Options are accepted for consistency with the other exporters but
	// JSON exports always include complete data.
	options *Options
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

// Export renders a transcript as indented JSON.
func (e *JSONExporter) Export(h *model.History) ([]byte, error) {
	if h == nil {
		return nil, fmt.Errorf("transcript is nil")
	}

	return json.MarshalIndent(h, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
