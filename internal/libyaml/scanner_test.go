// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"testing"

	"github.com/kiith-sa/yamlcore/internal/testutil/assert"
)

func containsType(types []TokenType, want TokenType) bool {
	for _, tt := range types {
		if tt == want {
			return true
		}
	}
	return false
}

func scanTypes(t *testing.T, src string) []TokenType {
	t.Helper()
	p := NewParser()
	p.SetInputString([]byte(src))

	var types []TokenType
	for {
		var tok *Token
		if err := p.peekToken(&tok); err != nil {
			t.Fatalf("peekToken: %v", err)
		}
		types = append(types, tok.Type)
		if tok.Type == STREAM_END_TOKEN {
			break
		}
		p.skipToken()
	}
	return types
}

func TestScanPlainScalarStream(t *testing.T) {
	types := scanTypes(t, "hello\n")
	assert.Equal(t, STREAM_START_TOKEN, types[0])
	assert.Equal(t, SCALAR_TOKEN, types[1])
	assert.Equal(t, STREAM_END_TOKEN, types[len(types)-1])
}

func TestScanBlockMapping(t *testing.T) {
	types := scanTypes(t, "a: 1\nb: 2\n")
	want := []TokenType{
		STREAM_START_TOKEN,
		BLOCK_MAPPING_START_TOKEN,
		KEY_TOKEN, SCALAR_TOKEN, VALUE_TOKEN, SCALAR_TOKEN,
		KEY_TOKEN, SCALAR_TOKEN, VALUE_TOKEN, SCALAR_TOKEN,
		BLOCK_END_TOKEN,
		STREAM_END_TOKEN,
	}
	assert.Equal(t, len(want), len(types))
	for i := range want {
		assert.Equalf(t, want[i], types[i], "token[%d]", i)
	}
}

func TestScanBlockSequence(t *testing.T) {
	types := scanTypes(t, "- a\n- b\n")
	want := []TokenType{
		STREAM_START_TOKEN,
		BLOCK_SEQUENCE_START_TOKEN,
		BLOCK_ENTRY_TOKEN, SCALAR_TOKEN,
		BLOCK_ENTRY_TOKEN, SCALAR_TOKEN,
		BLOCK_END_TOKEN,
		STREAM_END_TOKEN,
	}
	assert.Equal(t, len(want), len(types))
	for i := range want {
		assert.Equalf(t, want[i], types[i], "token[%d]", i)
	}
}

func TestScanFlowCollection(t *testing.T) {
	types := scanTypes(t, "[1, 2, {a: 1}]\n")
	assert.Equal(t, STREAM_START_TOKEN, types[0])
	assert.Equal(t, FLOW_SEQUENCE_START_TOKEN, types[1])
	assert.True(t, containsType(types, FLOW_MAPPING_START_TOKEN))
	assert.True(t, containsType(types, FLOW_MAPPING_END_TOKEN))
	assert.Equal(t, FLOW_SEQUENCE_END_TOKEN, types[len(types)-2])
}

func TestScanAnchorAndAlias(t *testing.T) {
	types := scanTypes(t, "[&a 1, *a]\n")
	assert.True(t, containsType(types, ANCHOR_TOKEN))
	assert.True(t, containsType(types, ALIAS_TOKEN))
}

func TestScanQuotedScalars(t *testing.T) {
	types := scanTypes(t, "['it''s', \"line\\nbreak\"]\n")
	count := 0
	for _, tt := range types {
		if tt == SCALAR_TOKEN {
			count++
		}
	}
	assert.Equal(t, 2, count)
}

func TestScanBlockLiteralScalar(t *testing.T) {
	p := NewParser()
	p.SetInputString([]byte("a: |\n  line one\n  line two\n"))
	var scalarValue []byte
	for {
		var tok *Token
		assert.NoError(t, p.peekToken(&tok))
		if tok.Type == SCALAR_TOKEN && tok.Style == LITERAL_SCALAR_STYLE {
			scalarValue = tok.Value
		}
		if tok.Type == STREAM_END_TOKEN {
			break
		}
		p.skipToken()
	}
	assert.Equal(t, "line one\nline two\n", string(scalarValue))
}

func TestScanDirectiveAndDocumentMarkers(t *testing.T) {
	types := scanTypes(t, "%YAML 1.1\n---\nA\n...\n")
	assert.True(t, containsType(types, VERSION_DIRECTIVE_TOKEN))
	assert.True(t, containsType(types, DOCUMENT_START_TOKEN))
	assert.True(t, containsType(types, DOCUMENT_END_TOKEN))
}

func TestScanSimpleKeyRetroactiveInsertion(t *testing.T) {
	// Plain scalar "a" starts as a candidate simple key; only once ':'
	// is reached does KEY (and BLOCK-MAPPING-START) get inserted before it.
	types := scanTypes(t, "a: 1\n")
	assert.Equal(t, BLOCK_MAPPING_START_TOKEN, types[1])
	assert.Equal(t, KEY_TOKEN, types[2])
}

func TestScanErrorOnBadCharacter(t *testing.T) {
	p := NewParser()
	p.SetInputString([]byte("\x01\n"))
	var tok *Token
	assert.NoError(t, p.peekToken(&tok))
	assert.Equal(t, STREAM_START_TOKEN, tok.Type)
	p.skipToken()
	err := p.peekToken(&tok)
	assert.NotNil(t, err)
}
