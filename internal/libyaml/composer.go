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

// Composer stage: builds a Node tree from a Parser event stream. Handles
// document structure, anchors and aliases, merge keys, duplicate-key
// detection, and comment attachment.

package libyaml

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Composer produces a Node tree out of a Parser event stream. Resolver
// and Constructor are exported so a caller can swap in their own implicit
// typing or Node construction before the first call to Parse/GetNode.
type Composer struct {
	Parser      Parser
	Resolver    Resolver
	Constructor Constructor
	Textless    bool

	event      Event
	doc        *Node
	anchors    map[string]*Node
	doneInit   bool
	aliasCount int
}

// NewComposer creates a new composer from a byte slice. opts configure
// the underlying Parser/Scanner (simple-key length, alias-expansion
// limit, version warner); see config.go.
func NewComposer(b []byte, opts ...Option) *Composer {
	p := Composer{
		Parser:      NewParser(opts...),
		Resolver:    defaultResolver,
		Constructor: defaultConstructor,
	}
	if len(b) == 0 {
		b = []byte{'\n'}
	}
	p.Parser.SetInputString(b)
	return &p
}

// NewComposerFromReader creates a new composer from an io.Reader. opts
// are as in NewComposer.
func NewComposerFromReader(r io.Reader, opts ...Option) *Composer {
	p := Composer{
		Parser:      NewParser(opts...),
		Resolver:    defaultResolver,
		Constructor: defaultConstructor,
	}
	p.Parser.SetInputReader(r)
	return &p
}

func (p *Composer) init() {
	if p.doneInit {
		return
	}
	p.anchors = make(map[string]*Node)
	p.expect(STREAM_START_EVENT)
	p.doneInit = true
}

func (p *Composer) Destroy() {
	if p.event.Type != NO_EVENT {
		p.event.Delete()
	}
	p.Parser.Delete()
}

// expect consumes an event from the event stream and
// checks that it's of the expected type.
func (p *Composer) expect(e EventType) {
	if p.event.Type == NO_EVENT {
		if err := p.Parser.Parse(&p.event); err != nil {
			p.fail(err)
		}
	}
	if p.event.Type == STREAM_END_EVENT {
		failf("attempted to go past the end of stream; corrupted value?")
	}
	if p.event.Type != e {
		p.fail(fmt.Errorf("expected %s event but got %s", e, p.event.Type))
	}
	p.event.Delete()
	p.event.Type = NO_EVENT
}

// peek peeks at the next event in the event stream,
// puts the results into p.event and returns the event type.
func (p *Composer) peek() EventType {
	if p.event.Type != NO_EVENT {
		return p.event.Type
	}
	if err := p.Parser.Parse(&p.event); err != nil {
		p.fail(err)
	}
	return p.event.Type
}

func (p *Composer) fail(err error) {
	Fail(err)
}

// composing is a sentinel placed in p.anchors for the duration of
// composing an anchored node's children, so that an alias reached while
// still composing that same node (a recursive alias) can be told apart
// from one reached afterward.
var composing = &Node{}

// anchor reserves n's anchor name. A document that reuses an anchor name
// is rejected with a ComposerError rather than silently rebinding it,
// since a reused name almost always indicates a typo rather than a
// deliberate rebind. The name resolves to the composing sentinel until
// resolveAnchor replaces it with n once n is fully built.
func (p *Composer) anchor(n *Node, anchor []byte) {
	if anchor == nil {
		return
	}
	name := string(anchor)
	if _, exists := p.anchors[name]; exists {
		Fail(&ComposerError{
			Mark:    Mark{Line: n.Line, Column: n.Column},
			Message: fmt.Sprintf("found duplicate anchor %q; first defined", name),
		})
	}
	n.Anchor = name
	p.anchors[name] = composing
}

// resolveAnchor stores the fully composed node n under its own anchor,
// replacing the composing sentinel anchor() placed there.
func (p *Composer) resolveAnchor(n *Node) {
	if n.Anchor != "" {
		p.anchors[n.Anchor] = n
	}
}

// Parse parses the next YAML node from the event stream.
func (p *Composer) Parse() *Node {
	p.init()

	switch p.peek() {
	case SCALAR_EVENT:
		return p.scalar()
	case ALIAS_EVENT:
		return p.alias()
	case MAPPING_START_EVENT:
		return p.mapping()
	case SEQUENCE_START_EVENT:
		return p.sequence()
	case DOCUMENT_START_EVENT:
		return p.document()
	case STREAM_END_EVENT:
		// Happens when attempting to decode an empty buffer, or when the
		// stream has been fully consumed.
		return nil
	case TAIL_COMMENT_EVENT:
		panic("internal error: unexpected tail comment event (please report)")
	default:
		panic("internal error: attempted to parse unknown event (please report): " + p.event.Type.String())
	}
}

// GetNode parses and returns the next top-level node from the stream
// (nil at the end of the stream), converting any internal scanner,
// parser or composer failure into a returned error instead of a panic.
func (p *Composer) GetNode() (node *Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ye, ok := r.(*YAMLError); ok {
				err = ye.Err
				return
			}
			panic(r)
		}
	}()
	return p.Parse(), nil
}

// CheckNode reports whether another node is available without consuming it.
func (p *Composer) CheckNode() (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ye, yok := r.(*YAMLError); yok {
				err = ye.Err
				return
			}
			panic(r)
		}
	}()
	p.init()
	return p.peek() != STREAM_END_EVENT, nil
}

// GetSingleNode parses exactly one document from the stream and reports
// an error if the stream holds more than one document.
func (p *Composer) GetSingleNode() (*Node, error) {
	n, err := p.GetNode()
	if err != nil || n == nil {
		return n, err
	}
	extra, err := p.GetNode()
	if err != nil {
		return nil, err
	}
	if extra != nil {
		return nil, &ComposerError{Message: "expected a single document in the stream but found more"}
	}
	return n, nil
}

func (p *Composer) node(kind Kind, defaultTag, tag, value string) *Node {
	var style Style
	if tag != "" && tag != "!" {
		tag = shortTag(tag)
		style = TaggedStyle
	} else if defaultTag != "" {
		tag = defaultTag
	} else if kind == ScalarNode {
		tag = p.Resolver.Resolve(value)
	}
	n := p.Constructor.NewNode(kind, tag, value, style)
	if !p.Textless {
		n.Line = p.event.StartMark.Line + 1
		n.Column = p.event.StartMark.Column + 1
		n.HeadComment = string(p.event.HeadComment)
		n.LineComment = string(p.event.LineComment)
		n.FootComment = string(p.event.FootComment)
	}
	return n
}

func (p *Composer) parseChild(parent *Node) *Node {
	child := p.Parse()
	parent.Content = append(parent.Content, child)
	return child
}

func (p *Composer) document() *Node {
	n := p.node(DocumentNode, "", "", "")
	p.doc = n
	p.anchors = make(map[string]*Node)
	p.aliasCount = 0
	p.expect(DOCUMENT_START_EVENT)
	p.parseChild(n)
	if p.peek() == DOCUMENT_END_EVENT {
		n.FootComment = string(p.event.FootComment)
	}
	p.expect(DOCUMENT_END_EVENT)
	return n
}

func (p *Composer) alias() *Node {
	n := p.node(AliasNode, "", "", string(p.event.Anchor))
	target, exists := p.anchors[n.Value]
	if !exists {
		Fail(&ComposerError{
			Mark:    Mark{Line: n.Line, Column: n.Column},
			Message: fmt.Sprintf("unknown anchor %q referenced", n.Value),
		})
	}
	if target == composing {
		Fail(&ComposerError{
			Mark:    Mark{Line: n.Line, Column: n.Column},
			Message: fmt.Sprintf("found recursive alias %q", n.Value),
		})
	}
	n.Alias = target
	p.aliasCount++
	if limit := p.Parser.cfg.maxAliasExpansion; limit > 0 && p.aliasCount > limit {
		Fail(&ComposerError{
			Mark:    Mark{Line: n.Line, Column: n.Column},
			Message: "too many aliases for this document",
		})
	}
	p.expect(ALIAS_EVENT)
	return n
}

func (p *Composer) scalar() *Node {
	parsedStyle := p.event.ScalarStyle()
	var nodeStyle Style
	switch {
	case parsedStyle&DOUBLE_QUOTED_SCALAR_STYLE != 0:
		nodeStyle = DoubleQuotedStyle
	case parsedStyle&SINGLE_QUOTED_SCALAR_STYLE != 0:
		nodeStyle = SingleQuotedStyle
	case parsedStyle&LITERAL_SCALAR_STYLE != 0:
		nodeStyle = LiteralStyle
	case parsedStyle&FOLDED_SCALAR_STYLE != 0:
		nodeStyle = FoldedStyle
	}
	nodeValue := string(p.event.Value)
	nodeTag := string(p.event.Tag)
	var defaultTag string
	if nodeStyle != 0 {
		defaultTag = strTag
	}
	n := p.node(ScalarNode, defaultTag, nodeTag, nodeValue)
	n.Style |= nodeStyle
	p.anchor(n, p.event.Anchor)
	p.expect(SCALAR_EVENT)
	p.resolveAnchor(n)
	return n
}

func (p *Composer) sequence() *Node {
	n := p.node(SequenceNode, seqTag, string(p.event.Tag), "")
	if p.event.SequenceStyle()&FLOW_SEQUENCE_STYLE != 0 {
		n.Style |= FlowStyle
	}
	p.anchor(n, p.event.Anchor)
	p.expect(SEQUENCE_START_EVENT)
	for p.peek() != SEQUENCE_END_EVENT {
		p.parseChild(n)
	}
	n.LineComment = string(p.event.LineComment)
	n.FootComment = string(p.event.FootComment)
	p.expect(SEQUENCE_END_EVENT)
	p.resolveAnchor(n)
	return n
}

func (p *Composer) mapping() *Node {
	n := p.node(MappingNode, mapTag, string(p.event.Tag), "")
	block := true
	if p.event.MappingStyle()&FLOW_MAPPING_STYLE != 0 {
		block = false
		n.Style |= FlowStyle
	}
	p.anchor(n, p.event.Anchor)
	p.expect(MAPPING_START_EVENT)

	seen := make(map[string]bool)
	var merges []*Node
	for p.peek() != MAPPING_END_EVENT {
		k := p.parseChild(n)
		if block && k.FootComment != "" {
			// Must be a foot comment for the prior value when being dedented.
			if len(n.Content) > 2 {
				n.Content[len(n.Content)-3].FootComment = k.FootComment
				k.FootComment = ""
			}
		}
		v := p.parseChild(n)
		if k.FootComment == "" && v.FootComment != "" {
			k.FootComment = v.FootComment
			v.FootComment = ""
		}
		if p.peek() == TAIL_COMMENT_EVENT {
			if k.FootComment == "" {
				k.FootComment = string(p.event.FootComment)
			}
			p.expect(TAIL_COMMENT_EVENT)
		}

		if k.Tag == mergeTag {
			merges = append(merges, v)
			continue
		}
		key := nodeKey(k)
		if seen[key] {
			Fail(&ComposerError{
				Mark:    Mark{Line: k.Line, Column: k.Column},
				Message: fmt.Sprintf("found duplicate key %q in mapping", keyLabel(k)),
			})
		}
		seen[key] = true
	}
	n.LineComment = string(p.event.LineComment)
	n.FootComment = string(p.event.FootComment)
	if n.Style&FlowStyle == 0 && n.FootComment != "" && len(n.Content) > 1 {
		n.Content[len(n.Content)-2].FootComment = n.FootComment
		n.FootComment = ""
	}
	p.expect(MAPPING_END_EVENT)

	if len(merges) > 0 {
		p.applyMerges(n, merges, seen)
	}
	p.resolveAnchor(n)
	return n
}

// resolveAlias follows an AliasNode to the node it refers to, so merge
// handling can inspect the shape of a merge value given as "*anchor"
// instead of a literal mapping/sequence.
func resolveAlias(n *Node) *Node {
	for n.Kind == AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// nodeKey builds a canonical, structurally-unique string for a mapping
// key node, so duplicate-key detection isn't limited to scalar keys: two
// sequence or mapping keys compare equal here exactly when they'd
// serialize identically, per the structural-equality requirement on
// complex mapping keys. Aliases are resolved first, so "*a: 1" and a
// literal repeat of whatever *a points to collide as duplicates too.
// Every part is length-prefixed so concatenation can't let one node's
// content bleed into the next and produce a false collision.
func nodeKey(n *Node) string {
	var b strings.Builder
	writeNodeKey(&b, n)
	return b.String()
}

func writeNodeKey(b *strings.Builder, n *Node) {
	n = resolveAlias(n)
	switch n.Kind {
	case ScalarNode:
		b.WriteByte('s')
		writeLenPrefixed(b, n.Tag)
		writeLenPrefixed(b, n.Value)
	case SequenceNode:
		b.WriteByte('q')
		b.WriteString(strconv.Itoa(len(n.Content)))
		b.WriteByte(':')
		for _, c := range n.Content {
			writeNodeKey(b, c)
		}
	case MappingNode:
		b.WriteByte('m')
		b.WriteString(strconv.Itoa(len(n.Content)))
		b.WriteByte(':')
		for _, c := range n.Content {
			writeNodeKey(b, c)
		}
	default:
		b.WriteByte('?')
	}
}

func writeLenPrefixed(b *strings.Builder, s string) {
	b.WriteString(strconv.Itoa(len(s)))
	b.WriteByte(':')
	b.WriteString(s)
}

// keyLabel renders a mapping key for a duplicate-key error message: the
// scalar value itself, or a short tag for a complex key since a full
// sequence/mapping doesn't read well inline in an error string.
func keyLabel(k *Node) string {
	switch k.Kind {
	case ScalarNode:
		return k.Value
	case SequenceNode:
		return "<sequence key>"
	case MappingNode:
		return "<mapping key>"
	default:
		return "<key>"
	}
}

// applyMerges flattens one or more "<<" merge values into n's Content,
// honoring YAML 1.1 merge-key precedence (§9 "<< merge key"): keys
// already present in n (explicit, or from an earlier merge source) are
// never overwritten, and merge sources listed earlier in a sequence
// value win over later ones. The literal "<<" key/value pair itself is
// left in n.Content, matching how an explicit key is represented.
func (p *Composer) applyMerges(n *Node, merges []*Node, seen map[string]bool) {
	var keys, values []*Node
	for _, m := range merges {
		m = resolveAlias(m)
		var sources []*Node
		switch m.Kind {
		case MappingNode:
			sources = []*Node{m}
		case SequenceNode:
			sources = m.Content
		default:
			Fail(&ComposerError{
				Mark:    Mark{Line: m.Line, Column: m.Column},
				Message: "map merge requires map or sequence of maps as the value",
			})
		}
		for _, src := range sources {
			src = resolveAlias(src)
			if src.Kind != MappingNode {
				Fail(&ComposerError{
					Mark:    Mark{Line: src.Line, Column: src.Column},
					Message: "map merge requires map or sequence of maps as the value",
				})
			}
			for _, pair := range src.Pairs() {
				k, v := pair[0], pair[1]
				key := nodeKey(k)
				if seen[key] {
					continue
				}
				seen[key] = true
				keys = append(keys, k)
				values = append(values, v)
			}
		}
	}
	for i := range keys {
		n.Content = append(n.Content, keys[i], values[i])
	}
}

// YAMLError is an internal error wrapper type, used to distinguish a
// deliberate Fail/failf panic from an unrelated runtime panic when it's
// recovered at a public entry point (GetNode, CheckNode, GetSingleNode).
type YAMLError struct {
	Err error
}

func (e *YAMLError) Error() string {
	return e.Err.Error()
}

func Fail(err error) {
	panic(&YAMLError{err})
}

func failf(format string, args ...any) {
	panic(&YAMLError{fmt.Errorf("yaml: "+format, args...)})
}
