// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"testing"

	"github.com/kiith-sa/yamlcore/internal/testutil/assert"
)

func TestNewParserDefaults(t *testing.T) {
	p := NewParser()
	assert.Equal(t, 1024, p.cfg.maxSimpleKeyLength)
	assert.Equal(t, 1000, p.cfg.maxAliasExpansion)
	assert.True(t, p.simple_key_allowed)
	assert.Equal(t, PARSE_STREAM_START_STATE, p.state)
}

func TestParserDelete(t *testing.T) {
	p := NewParser()
	p.SetInputString([]byte("a\n"))
	p.Delete()
	assert.IsNil(t, p.reader)
	assert.Equal(t, 0, p.cfg.maxSimpleKeyLength)
}

func TestSetInputStringPanicsOnSecondCall(t *testing.T) {
	p := NewParser()
	p.SetInputString([]byte("a\n"))
	assert.PanicMatches(t, "only once", func() {
		p.SetInputString([]byte("b\n"))
	})
}

func TestSetInputReaderPanicsAfterSetInputString(t *testing.T) {
	p := NewParser()
	p.SetInputString([]byte("a\n"))
	assert.PanicMatches(t, "only once", func() {
		p.SetInputReader(nil)
	})
}

func TestInsertTokenAppendsAtEnd(t *testing.T) {
	p := NewParser()
	tok := &Token{Type: SCALAR_TOKEN}
	p.insertToken(-1, tok)
	assert.Equal(t, 1, len(p.tokens))
	assert.Equal(t, SCALAR_TOKEN, p.tokens[0].Type)
}

func TestInsertTokenAtPosition(t *testing.T) {
	p := NewParser()
	p.insertToken(-1, &Token{Type: SCALAR_TOKEN})
	p.insertToken(-1, &Token{Type: VALUE_TOKEN})
	p.insertToken(0, &Token{Type: KEY_TOKEN})

	assert.Equal(t, 3, len(p.tokens))
	assert.Equal(t, KEY_TOKEN, p.tokens[0].Type)
	assert.Equal(t, SCALAR_TOKEN, p.tokens[1].Type)
	assert.Equal(t, VALUE_TOKEN, p.tokens[2].Type)
}

func TestNewScalarEventFields(t *testing.T) {
	ev := NewScalarEvent([]byte("x"), []byte("!!str"), []byte("hi"), true, false, PLAIN_SCALAR_STYLE)
	assert.Equal(t, SCALAR_EVENT, ev.Type)
	assert.Equal(t, "x", string(ev.Anchor))
	assert.Equal(t, "!!str", string(ev.Tag))
	assert.Equal(t, "hi", string(ev.Value))
	assert.True(t, ev.Implicit)
	assert.Equal(t, PLAIN_SCALAR_STYLE, ev.ScalarStyle())
}

func TestNewSequenceStartEventFields(t *testing.T) {
	ev := NewSequenceStartEvent([]byte("s"), []byte("!!seq"), true, FLOW_SEQUENCE_STYLE)
	assert.Equal(t, SEQUENCE_START_EVENT, ev.Type)
	assert.Equal(t, FLOW_SEQUENCE_STYLE, ev.SequenceStyle())
}

func TestNewMappingStartEventFields(t *testing.T) {
	ev := NewMappingStartEvent(nil, nil, false, BLOCK_MAPPING_STYLE)
	assert.Equal(t, MAPPING_START_EVENT, ev.Type)
	assert.Equal(t, BLOCK_MAPPING_STYLE, ev.MappingStyle())
	assert.False(t, ev.Implicit)
}

func TestNewDocumentStartEventCarriesDirectives(t *testing.T) {
	tags := []TagDirective{{[]byte("!"), []byte("!")}}
	ev := NewDocumentStartEvent(nil, tags, true)
	assert.Equal(t, DOCUMENT_START_EVENT, ev.Type)
	assert.Equal(t, 1, len(ev.GetTagDirectives()))
	assert.True(t, ev.Implicit)
}

func TestAliasAndStreamEvents(t *testing.T) {
	alias := NewAliasEvent([]byte("a"))
	assert.Equal(t, ALIAS_EVENT, alias.Type)
	assert.Equal(t, "a", string(alias.Anchor))

	start := NewStreamStartEvent(UTF8_ENCODING)
	assert.Equal(t, STREAM_START_EVENT, start.Type)
	assert.Equal(t, UTF8_ENCODING, start.GetEncoding())

	end := NewStreamEndEvent()
	assert.Equal(t, STREAM_END_EVENT, end.Type)
}

func TestEventDelete(t *testing.T) {
	ev := NewScalarEvent(nil, nil, []byte("v"), true, false, PLAIN_SCALAR_STYLE)
	ev.Delete()
	assert.Equal(t, NO_EVENT, ev.Type)
	assert.IsNil(t, ev.Value)
}
