// Copyright Draftwise Labs, 2026. All rights reserved.

// Package source loads a secondary document and normalizes it into a plain
// text blob for the extractor. A read failure is fatal to the pipeline; the
// caller receives a *ReadError and no partial result.
package source

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// csvMaxLines bounds how much of a CSV file is passed downstream. Wide
// exports would otherwise dominate the prompt budget.
const csvMaxLines = 100

// ReadError reports a document that could not be loaded or decoded.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading source %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Read loads the document at path and normalizes it by extension:
// .txt and .md verbatim, .json pretty-printed when the root is an object
// or array, .csv truncated to its first 100 lines, anything else raw.
func Read(path string) (string, error) {
	return ReadWithExt(path, filepath.Ext(path))
}

// ReadWithExt is Read with the extension declared by the caller, for
// uploaded documents whose stored name does not carry one.
func ReadWithExt(path, ext string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ReadError{Path: path, Err: err}
	}
	content := string(data)

	switch strings.ToLower(ext) {
	case ".txt", ".md":
		return content, nil
	case ".json":
		normalized, err := normalizeJSON(content)
		if err != nil {
			return "", &ReadError{Path: path, Err: err}
		}
		return normalized, nil
	case ".csv":
		return headLines(content, csvMaxLines), nil
	default:
		return content, nil
	}
}

// normalizeJSON pretty-prints a JSON document whose root is an object or
// array, and unwraps a root-level string to its value. Scalar roots pass
// through as-is.
func normalizeJSON(content string) (string, error) {
	var root any
	if err := json.Unmarshal([]byte(content), &root); err != nil {
		return "", fmt.Errorf("decoding JSON: %w", err)
	}

	switch v := root.(type) {
	case string:
		return v, nil
	case map[string]any, []any:
		pretty, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", fmt.Errorf("re-serializing JSON: %w", err)
		}
		return string(pretty), nil
	default:
		return content, nil
	}
}

// headLines returns the first n lines of content.
func headLines(content string, n int) string {
	lines := strings.Split(content, "\n")
	if len(lines) <= n {
		return content
	}
	return strings.Join(lines[:n], "\n")
}
