// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package yamlcore

import (
	"strings"
	"testing"

	"github.com/kiith-sa/yamlcore/internal/testutil/assert"
)

func TestDecodeSingleDocument(t *testing.T) {
	n, err := Decode([]byte("a: 1\nb: 2\n"))
	assert.NoError(t, err)
	assert.Equal(t, 1, len(n))
	assert.Equal(t, DocumentNode, n[0].Kind)
	assert.Equal(t, MappingNode, n[0].Content[0].Kind)
}

func TestDecodeAllMultiDocument(t *testing.T) {
	nodes, err := DecodeAll(strings.NewReader("---\nA\n...\n---\nB\n...\n"))
	assert.NoError(t, err)
	assert.Equal(t, 2, len(nodes))
	assert.Equal(t, "A", nodes[0].Content[0].Value)
	assert.Equal(t, "B", nodes[1].Content[0].Value)
}

func TestDecodeSingleRejectsExtraDocument(t *testing.T) {
	_, err := DecodeSingle([]byte("---\nA\n---\nB\n"))
	assert.NotNil(t, err)
	assert.ErrorMatches(t, "more", err)
}

func TestDecodeSingleRejectsEmptyStream(t *testing.T) {
	_, err := DecodeSingle([]byte(""))
	assert.NotNil(t, err)
	assert.ErrorMatches(t, "empty stream", err)
}

func TestDecoderMoreAndDecode(t *testing.T) {
	dec := NewDecoderBytes([]byte("---\nA\n...\n"))
	more, err := dec.More()
	assert.NoError(t, err)
	assert.True(t, more)

	n, err := dec.Decode()
	assert.NoError(t, err)
	assert.Equal(t, "A", n.Content[0].Value)

	more, err = dec.More()
	assert.NoError(t, err)
	assert.False(t, more)

	n, err = dec.Decode()
	assert.NoError(t, err)
	assert.IsNil(t, n)
}

type upperResolver struct{}

func (upperResolver) Resolve(value string) string { return "!!str" }

func TestDecoderSetResolverOverridesImplicitTag(t *testing.T) {
	dec := NewDecoderBytes([]byte("42\n"))
	dec.SetResolver(upperResolver{})
	n, err := dec.Decode()
	assert.NoError(t, err)
	assert.Equal(t, "!!str", n.Content[0].Tag)
	assert.Equal(t, "42", n.Content[0].Value)
}

type countingConstructor struct{ calls int }

func (c *countingConstructor) NewNode(kind Kind, tag, value string, style Style) *Node {
	c.calls++
	return &Node{Kind: kind, Tag: tag, Value: value, Style: style}
}

func TestDecoderSetConstructorIsUsed(t *testing.T) {
	cc := &countingConstructor{}
	dec := NewDecoderBytes([]byte("a: 1\n"))
	dec.SetConstructor(cc)
	n, err := dec.Decode()
	assert.NoError(t, err)
	assert.NotNil(t, n)
	assert.True(t, cc.calls > 0)
}

func TestWithMaxAliasExpansionOptionPropagates(t *testing.T) {
	_, err := Decode([]byte("[ &a 1, *a, *a, *a ]\n"), WithMaxAliasExpansion(2))
	assert.NotNil(t, err)
	assert.ErrorMatches(t, "too many aliases", err)
}
