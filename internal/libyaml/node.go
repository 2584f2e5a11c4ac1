// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Node is the tree the Composer builds out of a libyaml event stream.
// A Node's shape mirrors the stage that produced it: Kind distinguishes
// documents, scalars, sequences, mappings and aliases; Style records the
// surface syntax the Parser saw so round-tripping tools can tell a plain
// "42" from a quoted "42".

package libyaml

// Kind identifies the shape of a Node.
type Kind uint32

const (
	DocumentNode Kind = 1 << iota
	SequenceNode
	MappingNode
	ScalarNode
	AliasNode
)

// Node style bits. These live in the same Style type as ScalarStyle,
// SequenceStyle and MappingStyle but occupy independent bit positions:
// a Node's Style can carry both a quoting flag and FlowStyle at once.
const (
	TaggedStyle Style = 1 << iota
	DoubleQuotedStyle
	SingleQuotedStyle
	LiteralStyle
	FoldedStyle
	FlowStyle
)

// Node represents a single node in a YAML document, the result of
// composing one Parser event (plus, for collections, its children).
type Node struct {
	// Kind is the node kind: DocumentNode, SequenceNode, MappingNode,
	// ScalarNode or AliasNode.
	Kind Kind

	// Style describes the node's original formatting.
	Style Style

	// Tag holds the node's resolved or explicit tag in short form
	// (e.g. "!!str"), or a custom "!foo" tag verbatim.
	Tag string

	// Value holds the scalar value for ScalarNode, or the anchor name
	// referenced for AliasNode.
	Value string

	// Anchor holds this node's own anchor name, if it was anchored.
	Anchor string

	// Alias points at the node this AliasNode refers to, once resolved.
	Alias *Node

	// Content holds child nodes: the single document root for
	// DocumentNode, element nodes for SequenceNode, and flattened
	// (key, value, key, value, ...) pairs for MappingNode.
	Content []*Node

	// HeadComment, LineComment and FootComment hold comments the
	// scanner captured immediately around this node, if any.
	HeadComment string
	LineComment string
	FootComment string

	// Line and Column give the node's 1-indexed starting position.
	Line, Column int
}

// IsZero reports whether n is the zero Node.
func (n *Node) IsZero() bool {
	return n.Kind == 0 && n.Style == 0 && n.Tag == "" && n.Value == "" &&
		n.Anchor == "" && n.Alias == nil && n.Content == nil &&
		n.HeadComment == "" && n.LineComment == "" && n.FootComment == "" &&
		n.Line == 0 && n.Column == 0
}

// Pairs returns a MappingNode's Content as (key, value) pairs. It panics
// if n is not a MappingNode or has an odd number of content entries,
// which would indicate a composer bug rather than a malformed document
// (the composer always appends keys and values together).
func (n *Node) Pairs() [][2]*Node {
	if n.Kind != MappingNode {
		panic("Pairs called on a non-mapping node")
	}
	if len(n.Content)%2 != 0 {
		panic("mapping node has an odd number of content entries")
	}
	pairs := make([][2]*Node, len(n.Content)/2)
	for i := range pairs {
		pairs[i] = [2]*Node{n.Content[i*2], n.Content[i*2+1]}
	}
	return pairs
}

const (
	nullTag      = "!!null"
	boolTag      = "!!bool"
	strTag       = "!!str"
	intTag       = "!!int"
	floatTag     = "!!float"
	timestampTag = "!!timestamp"
	seqTag       = "!!seq"
	mapTag       = "!!map"
	binaryTag    = "!!binary"
	mergeTag     = "!!merge"

	longTagPrefix = "tag:yaml.org,2002:"
)

// shortTag normalizes a tag from its long "tag:yaml.org,2002:foo" form to
// the short "!!foo" form used throughout this package's Node trees. Tags
// that aren't in the long form (custom "!foo" tags, or tags already
// short) are returned unchanged; the reverse conversion is not attempted,
// since re-expanding tags is an emitter concern outside this module's scope.
func shortTag(tag string) string {
	if len(tag) > len(longTagPrefix) && tag[:len(longTagPrefix)] == longTagPrefix {
		return "!!" + tag[len(longTagPrefix):]
	}
	return tag
}
