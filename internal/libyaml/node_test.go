// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"testing"

	"github.com/kiith-sa/yamlcore/internal/testutil/assert"
)

func TestNodeIsZero(t *testing.T) {
	var n Node
	assert.True(t, n.IsZero())

	n.Value = "x"
	assert.False(t, n.IsZero())
}

func TestNodePairs(t *testing.T) {
	k1 := &Node{Kind: ScalarNode, Value: "a"}
	v1 := &Node{Kind: ScalarNode, Value: "1"}
	k2 := &Node{Kind: ScalarNode, Value: "b"}
	v2 := &Node{Kind: ScalarNode, Value: "2"}
	m := &Node{Kind: MappingNode, Content: []*Node{k1, v1, k2, v2}}

	pairs := m.Pairs()
	assert.Equal(t, 2, len(pairs))
	assert.Equal(t, "a", pairs[0][0].Value)
	assert.Equal(t, "1", pairs[0][1].Value)
	assert.Equal(t, "b", pairs[1][0].Value)
	assert.Equal(t, "2", pairs[1][1].Value)
}

func TestNodePairsPanicsOnNonMapping(t *testing.T) {
	assert.PanicMatches(t, "non-mapping", func() {
		(&Node{Kind: SequenceNode}).Pairs()
	})
}

func TestNodePairsPanicsOnOddContent(t *testing.T) {
	assert.PanicMatches(t, "odd number", func() {
		(&Node{Kind: MappingNode, Content: []*Node{{Kind: ScalarNode}}}).Pairs()
	})
}

func TestShortTag(t *testing.T) {
	cases := []struct{ in, want string }{
		{"tag:yaml.org,2002:str", "!!str"},
		{"tag:yaml.org,2002:int", "!!int"},
		{"!mytag", "!mytag"},
		{"!!str", "!!str"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, shortTag(tc.in), "shortTag(%q)", tc.in)
	}
}
