// Copyright Draftwise Labs, 2026. All rights reserved.

package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// UnmarshalObject decodes a JSON object from a model reply. It tries a
// strict parse of the whole reply first, then strips Markdown code fences
// and retries, then falls back to the outermost {...} span. Callers apply
// their own neutral defaults when it fails.
func UnmarshalObject(reply string, v any) error {
	return unmarshalSpan(reply, '{', '}', v)
}

// UnmarshalArray is UnmarshalObject for replies whose top-level value is a
// JSON array.
func UnmarshalArray(reply string, v any) error {
	return unmarshalSpan(reply, '[', ']', v)
}

func unmarshalSpan(reply string, open, closing byte, v any) error {
	text := strings.TrimSpace(reply)
	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}

	text = stripFences(text)
	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}

	start := strings.IndexByte(text, open)
	end := strings.LastIndexByte(text, closing)
	if start < 0 || end <= start {
		return fmt.Errorf("no JSON %c...%c span in reply", open, closing)
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), v); err != nil {
		return fmt.Errorf("parsing reply JSON: %w", err)
	}
	return nil
}

// stripFences removes a surrounding Markdown code fence (``` or ```json).
func stripFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
