// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"testing"

	"github.com/kiith-sa/yamlcore/internal/testutil/assert"
)

func root(t *testing.T, src string) *Node {
	t.Helper()
	doc, err := NewComposer([]byte(src)).GetNode()
	assert.NoError(t, err)
	assert.NotNil(t, doc)
	assert.Equal(t, DocumentNode, doc.Kind)
	assert.Equal(t, 1, len(doc.Content))
	return doc.Content[0]
}

func TestComposeScalarResolvesImplicitInt(t *testing.T) {
	n := root(t, "42\n")
	assert.Equal(t, ScalarNode, n.Kind)
	assert.Equal(t, intTag, n.Tag)
	assert.Equal(t, "42", n.Value)
}

func TestComposeMappingPreservesInsertionOrder(t *testing.T) {
	n := root(t, "red: '#ff0000'\ngreen: '#00ff00'\n")
	assert.Equal(t, MappingNode, n.Kind)
	pairs := n.Pairs()
	assert.Equal(t, 2, len(pairs))
	assert.Equal(t, "red", pairs[0][0].Value)
	assert.Equal(t, "#ff0000", pairs[0][1].Value)
	assert.Equal(t, "green", pairs[1][0].Value)
	assert.Equal(t, "#00ff00", pairs[1][1].Value)
}

func TestComposeTwoDocumentStream(t *testing.T) {
	c := NewComposer([]byte("---\nA\n...\n---\nB\n...\n"))

	doc1, err := c.GetNode()
	assert.NoError(t, err)
	assert.NotNil(t, doc1)
	assert.Equal(t, "A", doc1.Content[0].Value)

	doc2, err := c.GetNode()
	assert.NoError(t, err)
	assert.NotNil(t, doc2)
	assert.Equal(t, "B", doc2.Content[0].Value)

	doc3, err := c.GetNode()
	assert.NoError(t, err)
	assert.IsNil(t, doc3)
}

func TestComposeMergeKey(t *testing.T) {
	src := "base: &b { x: 1, y: 2 }\nover: { <<: *b, y: 9 }\n"
	n := root(t, src)
	pairs := n.Pairs()
	assert.Equal(t, 2, len(pairs))
	assert.Equal(t, "over", pairs[1][0].Value)

	over := pairs[1][1]
	assert.Equal(t, MappingNode, over.Kind)
	overPairs := over.Pairs()

	values := map[string]string{}
	for _, p := range overPairs {
		if p[0].Value != "<<" {
			values[p[0].Value] = p[1].Value
		}
	}
	assert.Equal(t, "9", values["y"])
	assert.Equal(t, "1", values["x"])
}

func TestComposeRecursiveAliasErrors(t *testing.T) {
	_, err := NewComposer([]byte("&a [ *a ]\n")).GetNode()
	assert.NotNil(t, err)
	assert.ErrorMatches(t, "recursive alias", err)
}

func TestComposeDuplicateKeyErrors(t *testing.T) {
	_, err := NewComposer([]byte("{a: 1, a: 2}\n")).GetNode()
	assert.NotNil(t, err)
	assert.ErrorMatches(t, "duplicate key", err)
}

func TestComposeDuplicateAnchorErrors(t *testing.T) {
	_, err := NewComposer([]byte("[ &a 1, &a 2 ]\n")).GetNode()
	assert.NotNil(t, err)
	assert.ErrorMatches(t, "duplicate anchor", err)
}

func TestComposeUnknownAliasErrors(t *testing.T) {
	_, err := NewComposer([]byte("*nope\n")).GetNode()
	assert.NotNil(t, err)
	assert.ErrorMatches(t, "unknown anchor", err)
}

func TestComposeAliasExpansionLimit(t *testing.T) {
	c := NewComposer([]byte("[ &a 1, *a, *a, *a ]\n"), WithMaxAliasExpansion(2))
	_, err := c.GetNode()
	assert.NotNil(t, err)
	assert.ErrorMatches(t, "too many aliases", err)
}

func TestGetSingleNodeErrorsOnExtraDocument(t *testing.T) {
	c := NewComposer([]byte("---\nA\n---\nB\n"))
	_, err := c.GetSingleNode()
	assert.NotNil(t, err)
	assert.ErrorMatches(t, "more", err)
}

func TestCheckNodeReflectsAvailability(t *testing.T) {
	c := NewComposer([]byte("A\n"))
	ok, err := c.CheckNode()
	assert.NoError(t, err)
	assert.True(t, ok)

	_, err = c.GetNode()
	assert.NoError(t, err)

	ok, err = c.CheckNode()
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestAliasResolvesToSameNodeIdentity(t *testing.T) {
	n := root(t, "a: &x foo\nb: *x\n")
	pairs := n.Pairs()
	aValue := pairs[0][1]
	bValue := pairs[1][1]
	assert.Equal(t, AliasNode, bValue.Kind)
	assert.True(t, bValue.Alias == aValue)
}
