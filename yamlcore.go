//
// Copyright (c) 2011-2019 Canonical Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package yamlcore exposes the Scanner/Parser/Composer front end that
// turns a YAML 1.1 byte stream into a tree of Nodes. It stops at the
// Node boundary: decoding a Node into a typed Go value, emitting YAML
// back out, and file/BOM handling are left to a caller built on top of
// this package.
//
// Source code and other details for the project are available at GitHub:
//
//	https://github.com/kiith-sa/yamlcore
package yamlcore

import (
	"io"

	"github.com/kiith-sa/yamlcore/internal/libyaml"
)

// Re-export types from internal/libyaml.
type (
	Node        = libyaml.Node
	Kind        = libyaml.Kind
	Style       = libyaml.Style
	Resolver    = libyaml.Resolver
	Constructor = libyaml.Constructor
	Option      = libyaml.Option
)

// Re-export error types so callers can errors.As against the stage that
// failed.
type (
	MarkedError   = libyaml.MarkedYAMLError
	ScannerError  = libyaml.ScannerError
	ParserError   = libyaml.ParserError
	ComposerError = libyaml.ComposerError
	ReaderError   = libyaml.ReaderError
)

// Re-export Kind constants.
const (
	DocumentNode = libyaml.DocumentNode
	SequenceNode = libyaml.SequenceNode
	MappingNode  = libyaml.MappingNode
	ScalarNode   = libyaml.ScalarNode
	AliasNode    = libyaml.AliasNode
)

// Re-export Style constants.
const (
	TaggedStyle       = libyaml.TaggedStyle
	DoubleQuotedStyle = libyaml.DoubleQuotedStyle
	SingleQuotedStyle = libyaml.SingleQuotedStyle
	LiteralStyle      = libyaml.LiteralStyle
	FoldedStyle       = libyaml.FoldedStyle
	FlowStyle         = libyaml.FlowStyle
)

// Re-export the functional options that configure a Decoder's limits
// (see internal/libyaml/config.go).
var (
	WithMaxSimpleKeyLength = libyaml.WithMaxSimpleKeyLength
	WithMaxAliasExpansion  = libyaml.WithMaxAliasExpansion
	WithYAMLVersionWarner  = libyaml.WithYAMLVersionWarner
)

// Decoder reads a sequence of YAML documents out of a byte stream,
// composing each into a Node tree. A Decoder is not safe for concurrent
// use; each Decoder pulls from its own Scanner/Parser/Composer chain.
type Decoder struct {
	composer *libyaml.Composer
}

// NewDecoder returns a Decoder that reads successive YAML documents from
// r, applying any Options to the underlying Scanner/Parser/Composer.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{composer: libyaml.NewComposerFromReader(r, opts...)}
}

// NewDecoderBytes returns a Decoder that reads successive YAML documents
// out of an in-memory buffer, applying any Options.
func NewDecoderBytes(b []byte, opts ...Option) *Decoder {
	return &Decoder{composer: libyaml.NewComposer(b, opts...)}
}

// SetResolver overrides the implicit-tag resolution table consulted for
// plain scalars that carry no explicit tag; collections always get their
// default tag. It must be called before the first
// call to Decode/More.
func (d *Decoder) SetResolver(r Resolver) {
	d.composer.Resolver = r
}

// SetConstructor overrides how a (kind, tag, value, style) tuple is
// turned into a *Node. It must be called before the first call to
// Decode/More.
func (d *Decoder) SetConstructor(c Constructor) {
	d.composer.Constructor = c
}

// More reports whether another document is available in the stream,
// without consuming it.
func (d *Decoder) More() (bool, error) {
	return d.composer.CheckNode()
}

// Decode composes and returns the next document's root Node. It returns
// (nil, nil) once the stream is exhausted.
func (d *Decoder) Decode() (*Node, error) {
	return d.composer.GetNode()
}

// DecodeAll reads every document out of r and returns their root Nodes
// in order. A well-formed but empty stream returns (nil, nil), not an
// error.
func DecodeAll(r io.Reader, opts ...Option) ([]*Node, error) {
	dec := NewDecoder(r, opts...)
	var nodes []*Node
	for {
		n, err := dec.Decode()
		if err != nil {
			return nil, err
		}
		if n == nil {
			return nodes, nil
		}
		nodes = append(nodes, n)
	}
}

// Decode reads and composes every document out of b and returns their
// root Nodes in order.
func Decode(b []byte, opts ...Option) ([]*Node, error) {
	dec := NewDecoderBytes(b, opts...)
	var nodes []*Node
	for {
		n, err := dec.Decode()
		if err != nil {
			return nil, err
		}
		if n == nil {
			return nodes, nil
		}
		nodes = append(nodes, n)
	}
}

// DecodeSingle reads exactly one document out of b. It is an error for
// the stream to hold more than one document; an empty stream returns
// (nil, an error), matching §7's "requesting a single document from an
// empty stream is an error".
func DecodeSingle(b []byte, opts ...Option) (*Node, error) {
	dec := NewDecoderBytes(b, opts...)
	n, err := dec.composer.GetSingleNode()
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, &ComposerError{Message: "no document found in empty stream"}
	}
	return n, nil
}
