// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Error types shared by the scanner, parser and composer stages.
// Every fatal error carries at least one Mark so callers get positional
// information without having to re-walk the input.

package libyaml

import (
	"fmt"
	"strings"
)

// MarkedYAMLError represents a YAML error with position information.
type MarkedYAMLError struct {
	// optional context
	ContextMark    Mark
	ContextMessage string

	Mark    Mark
	Message string
}

// Error returns the error message with position information.
func (e MarkedYAMLError) Error() string {
	var builder strings.Builder
	builder.WriteString("yaml: ")
	if len(e.ContextMessage) > 0 {
		fmt.Fprintf(&builder, "%s at %s: ", e.ContextMessage, e.ContextMark)
	}
	if len(e.ContextMessage) == 0 || e.ContextMark != e.Mark {
		fmt.Fprintf(&builder, "%s: ", e.Mark)
	}
	builder.WriteString(e.Message)
	return builder.String()
}

// ParserError represents an error that occurred during parsing.
type ParserError MarkedYAMLError

// Error returns the error message.
func (e ParserError) Error() string {
	return MarkedYAMLError(e).Error()
}

// ScannerError represents an error that occurred during scanning.
type ScannerError MarkedYAMLError

// Error returns the error message.
func (e ScannerError) Error() string {
	return MarkedYAMLError(e).Error()
}

// ComposerError represents a semantic error detected while composing events
// into nodes: an undefined or recursive alias, a duplicate anchor, a
// duplicate mapping key, or a malformed merge value.
type ComposerError MarkedYAMLError

// Error returns the error message.
func (e ComposerError) Error() string {
	return MarkedYAMLError(e).Error()
}

// ReaderError represents an error that occurred while reading input.
type ReaderError struct {
	Offset int
	Value  int
	Err    error
}

// Error returns the error message with offset information.
func (e ReaderError) Error() string {
	return fmt.Sprintf("yaml: offset %d: %s", e.Offset, e.Err)
}

// Unwrap returns the underlying error.
func (e ReaderError) Unwrap() error {
	return e.Err
}
