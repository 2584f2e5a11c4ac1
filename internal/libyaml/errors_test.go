// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"errors"
	"testing"

	"github.com/kiith-sa/yamlcore/internal/testutil/assert"
)

func TestMarkedYAMLErrorFormatting(t *testing.T) {
	err := MarkedYAMLError{
		Mark:    Mark{Line: 2, Column: 5},
		Message: "found character that cannot start any token",
	}
	assert.ErrorMatches(t, `^yaml: .*found character that cannot start any token$`, err)
}

func TestMarkedYAMLErrorWithContext(t *testing.T) {
	err := MarkedYAMLError{
		ContextMessage: "while scanning a quoted scalar",
		ContextMark:    Mark{Line: 1, Column: 1},
		Mark:           Mark{Line: 2, Column: 1},
		Message:        "found unexpected end of stream",
	}
	assert.ErrorMatches(t, `^yaml: while scanning a quoted scalar at .*: .*found unexpected end of stream$`, err)
}

func TestParserErrorIsMarkedYAMLError(t *testing.T) {
	var err error = &ParserError{Message: "bad token"}
	var target *ParserError
	assert.ErrorAs(t, err, &target)
	assert.Equal(t, "bad token", target.Message)
}

func TestReaderErrorUnwrap(t *testing.T) {
	inner := errors.New("invalid utf-8 byte sequence")
	err := ReaderError{Offset: 3, Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.ErrorMatches(t, "offset 3", err)
}
