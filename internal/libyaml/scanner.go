// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0 AND MIT

// Scanner stage: turns a decoded byte stream into a queue of Tokens
// (§4.1). Tracks indentation, flow/block context and simple-key
// candidates, and retroactively inserts KEY/BLOCK-MAPPING-START tokens
// once a ':' confirms a pending simple key.

package libyaml

import (
	"strconv"
	"strings"
)

const scannerMaxFlowLevel = 10000 // guards against pathological nesting (§9 Resource limits)

// fetchMoreTokens keeps producing tokens until at least one is available
// at the head of the queue and that token is not a pending simple key that
// a later ':' could still turn into a KEY, mirroring libyaml's
// yaml_parser_fetch_more_tokens.
func (parser *Parser) fetchMoreTokens() error {
	if !parser.stream_start_produced {
		return parser.fetchStreamStart()
	}

	for {
		if err := parser.staleSimpleKeys(); err != nil {
			return err
		}

		if err := parser.scanToNextToken(); err != nil {
			return err
		}

		if err := parser.unrollIndent(parser.reader.Mark().Column); err != nil {
			return err
		}

		needMore := len(parser.tokens) == 0 || parser.tokensNeedMore()
		if !needMore {
			parser.token_available = true
			return nil
		}

		if err := parser.fetchNextToken(); err != nil {
			return err
		}
		if parser.token_available {
			return nil
		}
	}
}

// tokensNeedMore reports whether more tokens must be fetched before the
// head of the queue can be handed to the parser: either nothing is left
// unconsumed, or the head token is still a possible simple key.
func (parser *Parser) tokensNeedMore() bool {
	if parser.tokens_head >= len(parser.tokens) {
		return true
	}
	for i := range parser.simple_keys {
		key := &parser.simple_keys[i]
		if key.possible && key.token_number == parser.tokens_parsed {
			return true
		}
	}
	return false
}

func (parser *Parser) fetchStreamStart() error {
	if br, ok := parser.reader.(*byteReader); ok && br.Err() != nil {
		return ReaderError{Offset: len(br.data), Err: br.Err()}
	}
	mark := parser.reader.Mark()
	parser.indent = -1
	parser.stream_start_produced = true
	parser.simple_key_allowed = true
	parser.tokens = append(parser.tokens, Token{
		Type:      STREAM_START_TOKEN,
		StartMark: mark,
		EndMark:   mark,
		encoding:  parser.reader.Encoding(),
	})
	parser.token_available = true
	return nil
}

func (parser *Parser) fetchStreamEnd() error {
	if err := parser.unrollIndent(-1); err != nil {
		return err
	}
	if err := parser.removeSimpleKey(); err != nil {
		return err
	}
	parser.simple_key_allowed = false
	mark := parser.reader.Mark()
	parser.tokens = append(parser.tokens, Token{
		Type:      STREAM_END_TOKEN,
		StartMark: mark,
		EndMark:   mark,
	})
	parser.token_available = true
	return nil
}

// fetchNextToken scans exactly one token (or zero, if scanning a comment
// or directive consumed input without yet yielding a token) and appends
// it to parser.tokens.
func (parser *Parser) fetchNextToken() error {
	ru, ok := parser.reader.Front()
	if !ok {
		return parser.fetchStreamEnd()
	}

	if parser.reader.Mark().Column == 0 && ru == '%' {
		return parser.checkDirective()
	}

	if parser.isDocumentIndicator("---") {
		return parser.fetchDocumentIndicator(DOCUMENT_START_TOKEN)
	}
	if parser.isDocumentIndicator("...") {
		return parser.fetchDocumentIndicator(DOCUMENT_END_TOKEN)
	}

	switch ru {
	case '[':
		return parser.fetchFlowCollectionStart(FLOW_SEQUENCE_START_TOKEN)
	case '{':
		return parser.fetchFlowCollectionStart(FLOW_MAPPING_START_TOKEN)
	case ']':
		return parser.fetchFlowCollectionEnd(FLOW_SEQUENCE_END_TOKEN)
	case '}':
		return parser.fetchFlowCollectionEnd(FLOW_MAPPING_END_TOKEN)
	case ',':
		return parser.fetchFlowEntry()
	case '-':
		if parser.isPlainScalarStart(1) {
			return parser.fetchPlainScalar()
		}
		return parser.fetchBlockEntry()
	case '?':
		if parser.flow_level > 0 || parser.followedByWhitespace(1) {
			return parser.fetchKey()
		}
		return parser.fetchPlainScalar()
	case ':':
		if parser.flow_level > 0 || parser.followedByWhitespace(1) {
			return parser.fetchValue()
		}
		return parser.fetchPlainScalar()
	case '*':
		return parser.fetchAnchor(ALIAS_TOKEN)
	case '&':
		return parser.fetchAnchor(ANCHOR_TOKEN)
	case '!':
		return parser.fetchTag()
	case '|':
		if parser.flow_level == 0 {
			return parser.fetchBlockScalar(true)
		}
		return parser.fetchPlainScalar()
	case '>':
		if parser.flow_level == 0 {
			return parser.fetchBlockScalar(false)
		}
		return parser.fetchPlainScalar()
	case '\'':
		return parser.fetchFlowScalar(true)
	case '"':
		return parser.fetchFlowScalar(false)
	case '%', '@', '`':
		// A '%' outside of column 0 is not a directive; '@' and '`' are
		// reserved indicators. Both fall through to a plain scalar.
		return parser.fetchPlainScalar()
	default:
		if parser.isPlainScalarCandidate(ru) {
			return parser.fetchPlainScalar()
		}
		return parser.setScannerError("while scanning for the next token",
			parser.reader.Mark(), "found character that cannot start any token", parser.reader.Mark())
	}
}

// --- character classification -------------------------------------------------

func isBreak(r rune) bool { return r == '\r' || r == '\n' || r == 0x85 || r == 0x2028 || r == 0x2029 }
func isBlank(r rune) bool { return r == ' ' || r == '\t' }
func isBlankOrBreak(r rune) bool { return isBlank(r) || isBreak(r) }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }
func isAlpha(r rune) bool {
	return r >= '0' && r <= '9' || r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r == '_' || r == '-'
}

func (parser *Parser) followedByWhitespace(n int) bool {
	r, ok := parser.reader.At(n)
	if !ok {
		return true // end of input behaves like whitespace
	}
	return isBlankOrBreak(r)
}

func (parser *Parser) isPlainScalarStart(n int) bool {
	// '-' starts a plain scalar (rather than a block entry) unless it's
	// followed by whitespace or end of input.
	return !parser.followedByWhitespace(n)
}

func (parser *Parser) isPlainScalarCandidate(r rune) bool {
	if r < ' ' || r == 0x7F {
		return false
	}
	switch r {
	case ',', '[', ']', '{', '}', '#', '&', '*', '!', '|', '>', '\'', '"', '%', '@', '`':
		return false
	}
	return true
}

func (parser *Parser) isDocumentIndicator(marker string) bool {
	if parser.reader.Mark().Column != 0 {
		return false
	}
	for i, want := range marker {
		r, ok := parser.reader.At(i)
		if !ok || r != want {
			return false
		}
	}
	return parser.followedByWhitespace(len(marker))
}

// --- indentation -----------------------------------------------------------

// rollIndent pushes a new indentation level and emits the matching
// BLOCK-SEQUENCE-START or BLOCK-MAPPING-START token (§4.1.2).
func (parser *Parser) rollIndent(column, number int, tokenType TokenType, mark Mark) {
	if parser.flow_level > 0 {
		return
	}
	if parser.indent >= column {
		return
	}
	parser.indents = append(parser.indents, parser.indent)
	parser.indent = column

	token := Token{
		Type:      tokenType,
		StartMark: mark,
		EndMark:   mark,
	}
	if number < 0 {
		parser.tokens = append(parser.tokens, token)
	} else {
		parser.insertToken(number-parser.tokens_parsed, &token)
	}
}

// unrollIndent pops indentation levels deeper than column, emitting a
// BLOCK-END token for each.
func (parser *Parser) unrollIndent(column int) error {
	if parser.flow_level > 0 {
		return nil
	}
	for parser.indent > column {
		mark := parser.reader.Mark()
		parser.tokens = append(parser.tokens, Token{
			Type:      BLOCK_END_TOKEN,
			StartMark: mark,
			EndMark:   mark,
		})
		parser.indent = parser.indents[len(parser.indents)-1]
		parser.indents = parser.indents[:len(parser.indents)-1]
	}
	return nil
}

// --- simple keys -------------------------------------------------------------

func (parser *Parser) simpleKeyIsPossible() bool {
	for i := range parser.simple_keys {
		if parser.simple_keys[i].possible {
			return true
		}
	}
	return false
}

// staleSimpleKeys expires simple-key candidates that have fallen too far
// behind the cursor to still be confirmed (§4.1.3).
func (parser *Parser) staleSimpleKeys() error {
	mark := parser.reader.Mark()
	for i := range parser.simple_keys {
		key := &parser.simple_keys[i]
		if key.possible && (key.mark.Line < mark.Line ||
			mark.Index-key.mark.Index > parser.cfg.maxSimpleKeyLength) {
			if key.required {
				return parser.setScannerError("while scanning a simple key", key.mark,
					"could not find expected ':'", mark)
			}
			key.possible = false
		}
	}
	return nil
}

func (parser *Parser) saveSimpleKey() error {
	required := parser.flow_level == 0 && parser.indent == parser.reader.Mark().Column
	if parser.simple_key_allowed {
		if err := parser.removeSimpleKey(); err != nil {
			return err
		}
		key := simpleKey{
			possible:     true,
			required:     required,
			token_number: parser.tokens_parsed + len(parser.tokens) - parser.tokens_head,
			mark:         parser.reader.Mark(),
		}
		if len(parser.simple_keys) == 0 {
			parser.simple_keys = append(parser.simple_keys, key)
		} else {
			parser.simple_keys[len(parser.simple_keys)-1] = key
		}
	}
	return nil
}

func (parser *Parser) removeSimpleKey() error {
	if len(parser.simple_keys) == 0 {
		return nil
	}
	key := &parser.simple_keys[len(parser.simple_keys)-1]
	if key.possible && key.required {
		return parser.setScannerError("while scanning a simple key", key.mark,
			"could not find expected ':'", parser.reader.Mark())
	}
	key.possible = false
	return nil
}

func (parser *Parser) increaseFlowLevel() error {
	parser.simple_keys = append(parser.simple_keys, simpleKey{})
	parser.flow_level++
	if parser.flow_level > scannerMaxFlowLevel {
		return parser.setScannerError("while scanning a flow collection", parser.reader.Mark(),
			"flow collections nested too deeply", parser.reader.Mark())
	}
	return nil
}

func (parser *Parser) decreaseFlowLevel() {
	if parser.flow_level > 0 {
		parser.flow_level--
		if len(parser.simple_keys) > 0 {
			parser.simple_keys = parser.simple_keys[:len(parser.simple_keys)-1]
		}
	}
}

// --- scan_to_next_token ------------------------------------------------------

// scanToNextToken skips whitespace, line breaks and comments, recording
// head/line/foot comments as it goes (a feature kept from the teacher;
// see SPEC_FULL.md's SUPPLEMENTED FEATURES).
func (parser *Parser) scanToNextToken() error {
	for {
		for {
			r, ok := parser.reader.Front()
			if !ok {
				return nil
			}
			if r == ' ' {
				parser.reader.Advance()
				continue
			}
			// A tab is only separator whitespace in flow context, or once no
			// block-context simple key is still a candidate at this column —
			// YAML forbids tabs as block indentation (§4.1.1).
			if r == '\t' && (parser.flow_level > 0 || !parser.simple_key_allowed) {
				parser.reader.Advance()
				continue
			}
			break
		}

		r, ok := parser.reader.Front()
		if !ok {
			return nil
		}

		if r == '#' {
			if err := parser.scanComment(); err != nil {
				return err
			}
			continue
		}

		if isBreak(r) {
			parser.reader.Advance()
			if parser.flow_level == 0 {
				parser.simple_key_allowed = true
			}
			continue
		}

		break
	}
	return nil
}

// scanComment consumes a '#' comment to end of line and files it as a
// head, line or foot comment depending on what's already been seen on
// this token.
func (parser *Parser) scanComment() error {
	var text strings.Builder
	for {
		r, ok := parser.reader.Front()
		if !ok || isBreak(r) {
			break
		}
		text.WriteRune(r)
		parser.reader.Advance()
	}
	line := strings.TrimRight(strings.TrimPrefix(strings.TrimLeft(text.String(), "#"), " "), " \t")
	if line == "" && text.Len() <= 1 {
		line = ""
	}
	c := Comment{token_mark: parser.reader.Mark()}
	if parser.tokens_parsed+len(parser.tokens)-parser.tokens_head == 0 {
		c.head = []byte(line)
	} else {
		c.line = []byte(line)
	}
	parser.comments = append(parser.comments, c)
	return nil
}

// --- directives --------------------------------------------------------------

func (parser *Parser) checkDirective() error {
	r, ok := parser.reader.Front()
	if !ok || r != '%' {
		return nil
	}
	return parser.scanDirective()
}

func (parser *Parser) scanDirective() error {
	startMark := parser.reader.Mark()
	parser.reader.Advance() // '%'

	var name strings.Builder
	for {
		r, ok := parser.reader.Front()
		if !ok || isBlankOrBreak(r) {
			break
		}
		name.WriteRune(r)
		parser.reader.Advance()
	}

	switch name.String() {
	case "YAML":
		return parser.scanVersionDirectiveValue(startMark)
	case "TAG":
		return parser.scanTagDirectiveValue(startMark)
	default:
		// Unknown directive: skip to end of line, as libyaml does.
		for {
			r, ok := parser.reader.Front()
			if !ok || isBreak(r) {
				break
			}
			parser.reader.Advance()
		}
		if r, ok := parser.reader.Front(); ok && isBreak(r) {
			parser.reader.Advance()
		}
		parser.simple_key_allowed = false
		return nil
	}
}

func (parser *Parser) skipBlanks() {
	for {
		r, ok := parser.reader.Front()
		if !ok || !isBlank(r) {
			return
		}
		parser.reader.Advance()
	}
}

func (parser *Parser) scanVersionDirectiveValue(startMark Mark) error {
	parser.skipBlanks()
	major, err := parser.scanVersionDirectiveNumber(startMark)
	if err != nil {
		return err
	}
	r, ok := parser.reader.Front()
	if !ok || r != '.' {
		return parser.setScannerError("while scanning a %YAML directive", startMark,
			"did not find expected '.'", parser.reader.Mark())
	}
	parser.reader.Advance()
	minor, err := parser.scanVersionDirectiveNumber(startMark)
	if err != nil {
		return err
	}
	endMark := parser.reader.Mark()
	parser.scanDirectiveLineEnd(startMark)

	parser.tokens = append(parser.tokens, Token{
		Type:      VERSION_DIRECTIVE_TOKEN,
		StartMark: startMark,
		EndMark:   endMark,
		major:     int8(major),
		minor:     int8(minor),
	})
	parser.simple_key_allowed = false
	return nil
}

func (parser *Parser) scanVersionDirectiveNumber(startMark Mark) (int, error) {
	var digits strings.Builder
	for {
		r, ok := parser.reader.Front()
		if !ok || !isDigit(r) {
			break
		}
		digits.WriteRune(r)
		parser.reader.Advance()
		if digits.Len() > 9 {
			return 0, parser.setScannerError("while scanning a %YAML directive", startMark,
				"found extremely long version number", parser.reader.Mark())
		}
	}
	if digits.Len() == 0 {
		return 0, parser.setScannerError("while scanning a %YAML directive", startMark,
			"did not find expected version number", parser.reader.Mark())
	}
	n, _ := strconv.Atoi(digits.String())
	return n, nil
}

func (parser *Parser) scanTagDirectiveValue(startMark Mark) error {
	parser.skipBlanks()
	handle, err := parser.scanTagHandle(true, startMark)
	if err != nil {
		return err
	}
	parser.skipBlanks()
	prefix, err := parser.scanTagUri(true, startMark)
	if err != nil {
		return err
	}
	endMark := parser.reader.Mark()
	parser.scanDirectiveLineEnd(startMark)

	parser.tokens = append(parser.tokens, Token{
		Type:      TAG_DIRECTIVE_TOKEN,
		StartMark: startMark,
		EndMark:   endMark,
		Value:     handle,
		prefix:    prefix,
	})
	parser.simple_key_allowed = false
	return nil
}

func (parser *Parser) scanDirectiveLineEnd(startMark Mark) {
	parser.skipBlanks()
	r, ok := parser.reader.Front()
	if ok && r == '#' {
		for {
			r, ok = parser.reader.Front()
			if !ok || isBreak(r) {
				break
			}
			parser.reader.Advance()
		}
	}
	if ok, _ := parser.reader.Front(); isBreak(ok) {
		parser.reader.Advance()
	}
}

// --- document indicators, flow punctuation ----------------------------------

func (parser *Parser) fetchDocumentIndicator(tokenType TokenType) error {
	if err := parser.unrollIndent(-1); err != nil {
		return err
	}
	if err := parser.removeSimpleKey(); err != nil {
		return err
	}
	parser.simple_key_allowed = false

	startMark := parser.reader.Mark()
	for i := 0; i < 3; i++ {
		parser.reader.Advance()
	}
	endMark := parser.reader.Mark()
	parser.tokens = append(parser.tokens, Token{Type: tokenType, StartMark: startMark, EndMark: endMark})
	return nil
}

func (parser *Parser) fetchFlowCollectionStart(tokenType TokenType) error {
	if err := parser.saveSimpleKey(); err != nil {
		return err
	}
	if err := parser.increaseFlowLevel(); err != nil {
		return err
	}
	parser.simple_key_allowed = true
	mark := parser.reader.Mark()
	parser.reader.Advance()
	parser.tokens = append(parser.tokens, Token{Type: tokenType, StartMark: mark, EndMark: parser.reader.Mark()})
	return nil
}

func (parser *Parser) fetchFlowCollectionEnd(tokenType TokenType) error {
	if err := parser.removeSimpleKey(); err != nil {
		return err
	}
	parser.decreaseFlowLevel()
	parser.simple_key_allowed = false
	mark := parser.reader.Mark()
	parser.reader.Advance()
	parser.tokens = append(parser.tokens, Token{Type: tokenType, StartMark: mark, EndMark: parser.reader.Mark()})
	return nil
}

func (parser *Parser) fetchFlowEntry() error {
	parser.simple_key_allowed = true
	if err := parser.removeSimpleKey(); err != nil {
		return err
	}
	mark := parser.reader.Mark()
	parser.reader.Advance()
	parser.tokens = append(parser.tokens, Token{Type: FLOW_ENTRY_TOKEN, StartMark: mark, EndMark: parser.reader.Mark()})
	return nil
}

func (parser *Parser) fetchBlockEntry() error {
	mark := parser.reader.Mark()
	if parser.flow_level == 0 {
		if !parser.simple_key_allowed {
			return parser.setScannerError("", Mark{}, "block sequence entries are not allowed in this context", mark)
		}
		parser.rollIndent(mark.Column, -1, BLOCK_SEQUENCE_START_TOKEN, mark)
	}
	if err := parser.removeSimpleKey(); err != nil {
		return err
	}
	parser.simple_key_allowed = true
	parser.reader.Advance()
	parser.tokens = append(parser.tokens, Token{Type: BLOCK_ENTRY_TOKEN, StartMark: mark, EndMark: parser.reader.Mark()})
	return nil
}

func (parser *Parser) fetchKey() error {
	mark := parser.reader.Mark()
	if parser.flow_level == 0 {
		if !parser.simple_key_allowed {
			return parser.setScannerError("", Mark{}, "mapping keys are not allowed in this context", mark)
		}
		parser.rollIndent(mark.Column, -1, BLOCK_MAPPING_START_TOKEN, mark)
	}
	if err := parser.removeSimpleKey(); err != nil {
		return err
	}
	parser.simple_key_allowed = parser.flow_level == 0
	parser.reader.Advance()
	parser.tokens = append(parser.tokens, Token{Type: KEY_TOKEN, StartMark: mark, EndMark: parser.reader.Mark()})
	return nil
}

func (parser *Parser) fetchValue() error {
	mark := parser.reader.Mark()

	if len(parser.simple_keys) > 0 {
		key := &parser.simple_keys[len(parser.simple_keys)-1]
		if key.possible {
			keyToken := Token{Type: KEY_TOKEN, StartMark: key.mark, EndMark: key.mark}
			parser.insertToken(key.token_number-parser.tokens_parsed, &keyToken)
			tokenType := BLOCK_MAPPING_START_TOKEN
			parser.rollIndent(key.mark.Column, key.token_number, tokenType, key.mark)
			key.possible = false
			parser.simple_key_allowed = false
			parser.reader.Advance()
			parser.tokens = append(parser.tokens, Token{Type: VALUE_TOKEN, StartMark: mark, EndMark: parser.reader.Mark()})
			return nil
		}
	}

	if parser.flow_level == 0 {
		if !parser.simple_key_allowed {
			return parser.setScannerError("", Mark{}, "mapping values are not allowed in this context", mark)
		}
		parser.rollIndent(mark.Column, -1, BLOCK_MAPPING_START_TOKEN, mark)
	}
	parser.simple_key_allowed = parser.flow_level == 0
	parser.reader.Advance()
	parser.tokens = append(parser.tokens, Token{Type: VALUE_TOKEN, StartMark: mark, EndMark: parser.reader.Mark()})
	return nil
}

// --- anchors and tags --------------------------------------------------------

func (parser *Parser) fetchAnchor(tokenType TokenType) error {
	if err := parser.saveSimpleKey(); err != nil {
		return err
	}
	parser.simple_key_allowed = false

	startMark := parser.reader.Mark()
	parser.reader.Advance() // '&' or '*'

	var name strings.Builder
	for {
		r, ok := parser.reader.Front()
		if !ok || !isAlpha(r) {
			break
		}
		name.WriteRune(r)
		parser.reader.Advance()
	}
	if name.Len() == 0 {
		return parser.setScannerError("while scanning an anchor or alias", startMark,
			"did not find expected alphabetic or numeric character", parser.reader.Mark())
	}
	parser.tokens = append(parser.tokens, Token{
		Type:      tokenType,
		StartMark: startMark,
		EndMark:   parser.reader.Mark(),
		Value:     []byte(name.String()),
	})
	return nil
}

func (parser *Parser) fetchTag() error {
	if err := parser.saveSimpleKey(); err != nil {
		return err
	}
	parser.simple_key_allowed = false

	startMark := parser.reader.Mark()
	handle, err := parser.scanTagHandle(false, startMark)
	if err != nil {
		return err
	}
	suffix, err := parser.scanTagUri(false, startMark)
	if err != nil {
		return err
	}
	parser.tokens = append(parser.tokens, Token{
		Type:      TAG_TOKEN,
		StartMark: startMark,
		EndMark:   parser.reader.Mark(),
		Value:     handle,
		suffix:    suffix,
	})
	return nil
}

func (parser *Parser) scanTagHandle(directive bool, startMark Mark) ([]byte, error) {
	r, ok := parser.reader.Front()
	if !ok || r != '!' {
		return nil, parser.setScannerError("while scanning a tag", startMark,
			"did not find expected '!'", parser.reader.Mark())
	}
	var handle strings.Builder
	handle.WriteRune('!')
	parser.reader.Advance()

	r, ok = parser.reader.Front()
	if ok && isAlpha(r) {
		for {
			r, ok = parser.reader.Front()
			if !ok || !isAlpha(r) {
				break
			}
			handle.WriteRune(r)
			parser.reader.Advance()
		}
		r, ok = parser.reader.Front()
		if ok && r == '!' {
			handle.WriteRune('!')
			parser.reader.Advance()
		} else if directive && handle.String() != "!" {
			return nil, parser.setScannerError("while parsing a %TAG directive", startMark,
				"did not find expected '!'", parser.reader.Mark())
		}
	}
	return []byte(handle.String()), nil
}

func (parser *Parser) scanTagUri(directive bool, startMark Mark) ([]byte, error) {
	var uri strings.Builder
	for {
		r, ok := parser.reader.Front()
		if !ok || isBlankOrBreak(r) || r == ',' && !directive && parser.flow_level > 0 {
			break
		}
		if !isAlpha(r) && !strings.ContainsRune("#;/?:@&=+$,_.!~*'()[]", r) && r != '%' {
			break
		}
		if r == '%' {
			decoded, err := parser.scanURIEscape(startMark)
			if err != nil {
				return nil, err
			}
			uri.WriteRune(decoded)
			continue
		}
		uri.WriteRune(r)
		parser.reader.Advance()
	}
	if uri.Len() == 0 {
		return nil, parser.setScannerError("while parsing a tag", startMark,
			"did not find expected tag URI", parser.reader.Mark())
	}
	return []byte(uri.String()), nil
}

// scanURIEscape decodes one %XX escape (§4.1 "URI escapes").
func (parser *Parser) scanURIEscape(startMark Mark) (rune, error) {
	parser.reader.Advance() // '%'
	var value int
	for i := 0; i < 2; i++ {
		r, ok := parser.reader.Front()
		if !ok || !isHex(r) {
			return 0, parser.setScannerError("while parsing a tag", startMark,
				"did not find expected hexadecimal digit", parser.reader.Mark())
		}
		value = value*16 + hexValue(r)
		parser.reader.Advance()
	}
	return rune(value), nil
}

func isHex(r rune) bool {
	return r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F'
}

func hexValue(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	default:
		return int(r-'A') + 10
	}
}

// --- scalars ------------------------------------------------------------

func (parser *Parser) fetchBlockScalar(literal bool) error {
	if err := parser.removeSimpleKey(); err != nil {
		return err
	}
	parser.simple_key_allowed = true

	startMark := parser.reader.Mark()
	parser.reader.Advance() // '|' or '>'

	chomping := 0 // 0 = clip, 1 = strip, 2 = keep
	indent := 0
	for i := 0; i < 2; i++ {
		r, ok := parser.reader.Front()
		if !ok {
			break
		}
		switch {
		case r == '-':
			chomping = 1
			parser.reader.Advance()
		case r == '+':
			chomping = 2
			parser.reader.Advance()
		case isDigit(r):
			indent = int(r - '0')
			parser.reader.Advance()
		default:
			i = 2
		}
	}
	parser.scanDirectiveLineEnd(startMark)

	var value strings.Builder
	blockIndent := indent
	if blockIndent == 0 {
		blockIndent = parser.indent + 1
		if blockIndent < 1 {
			blockIndent = 1
		}
	}

	trailingBlanks := 0
	for {
		col := parser.scanBlockScalarLeadingBlanks(blockIndent)
		if parser.reader.Empty() || col < blockIndent {
			break
		}
		for i := 0; i < trailingBlanks; i++ {
			value.WriteByte('\n')
		}
		trailingBlanks = 0
		for {
			r, ok := parser.reader.Front()
			if !ok || isBreak(r) {
				break
			}
			value.WriteRune(r)
			parser.reader.Advance()
		}
		if r, ok := parser.reader.Front(); ok && isBreak(r) {
			parser.reader.Advance()
			trailingBlanks++
		} else {
			break
		}
	}

	text := value.String()
	switch chomping {
	case 1: // strip
		text = strings.TrimRight(text, "\n")
	case 0: // clip: exactly one trailing newline if there was content
		text = strings.TrimRight(text, "\n")
		if text != "" {
			text += "\n"
		}
	case 2: // keep: leave as scanned, but ensure at least one newline if any content
		if text != "" && !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
	}

	if !literal {
		text = foldScalar(text)
	}

	style := LITERAL_SCALAR_STYLE
	if !literal {
		style = FOLDED_SCALAR_STYLE
	}
	parser.tokens = append(parser.tokens, Token{
		Type:      SCALAR_TOKEN,
		StartMark: startMark,
		EndMark:   parser.reader.Mark(),
		Value:     []byte(text),
		Style:     style,
	})
	return nil
}

// scanBlockScalarLeadingBlanks skips blank lines and leading indentation
// before a block scalar's content line, returning the column reached.
func (parser *Parser) scanBlockScalarLeadingBlanks(blockIndent int) int {
	for {
		for {
			r, ok := parser.reader.Front()
			if !ok || r != ' ' {
				break
			}
			parser.reader.Advance()
		}
		r, ok := parser.reader.Front()
		if ok && isBreak(r) {
			parser.reader.Advance()
			continue
		}
		break
	}
	return parser.reader.Mark().Column
}

// foldScalar applies YAML folded-scalar line-folding: single line breaks
// become spaces, but a line break adjacent to a blank line or more
// indentation is preserved.
func foldScalar(text string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) <= 1 {
		return text
	}
	var b strings.Builder
	for i, line := range lines {
		b.WriteString(line)
		if i == len(lines)-1 {
			continue
		}
		if line == "" || lines[i+1] == "" {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}
	if strings.HasSuffix(text, "\n") {
		b.WriteByte('\n')
	}
	return b.String()
}

func (parser *Parser) fetchFlowScalar(single bool) error {
	if err := parser.saveSimpleKey(); err != nil {
		return err
	}
	parser.simple_key_allowed = false

	startMark := parser.reader.Mark()
	quote, _ := parser.reader.Front()
	parser.reader.Advance()

	var value strings.Builder
	for {
		r, ok := parser.reader.Front()
		if !ok {
			return parser.setScannerError("while scanning a quoted scalar", startMark,
				"found unexpected end of stream", parser.reader.Mark())
		}
		if r == quote {
			if single {
				if r2, ok2 := parser.reader.At(1); ok2 && r2 == '\'' {
					value.WriteByte('\'')
					parser.reader.Advance()
					parser.reader.Advance()
					continue
				}
			}
			parser.reader.Advance()
			break
		}
		if !single && r == '\\' {
			decoded, err := parser.scanEscape(startMark)
			if err != nil {
				return err
			}
			value.WriteString(decoded)
			continue
		}
		if isBreak(r) {
			parser.reader.Advance()
			parser.skipBlanks()
			value.WriteByte(' ')
			continue
		}
		value.WriteRune(r)
		parser.reader.Advance()
	}

	style := SINGLE_QUOTED_SCALAR_STYLE
	if !single {
		style = DOUBLE_QUOTED_SCALAR_STYLE
	}
	parser.tokens = append(parser.tokens, Token{
		Type:      SCALAR_TOKEN,
		StartMark: startMark,
		EndMark:   parser.reader.Mark(),
		Value:     []byte(value.String()),
		Style:     style,
	})
	return nil
}

// scanEscape decodes one backslash escape inside a double-quoted scalar.
func (parser *Parser) scanEscape(startMark Mark) (string, error) {
	parser.reader.Advance() // '\\'
	r, ok := parser.reader.Front()
	if !ok {
		return "", parser.setScannerError("while parsing a quoted scalar", startMark,
			"found unexpected end of stream", parser.reader.Mark())
	}
	simple := map[rune]string{
		'0': "\x00", 'a': "\a", 'b': "\b", 't': "\t", 'n': "\n", 'v': "\v",
		'f': "\f", 'r': "\r", 'e': "\x1b", ' ': " ", '"': "\"", '\\': "\\",
		'/': "/", 'N': "", '_': " ", 'L': " ", 'P': " ",
	}
	if s, ok := simple[r]; ok {
		parser.reader.Advance()
		return s, nil
	}
	var width int
	switch r {
	case 'x':
		width = 2
	case 'u':
		width = 4
	case 'U':
		width = 8
	default:
		return "", parser.setScannerError("while parsing a quoted scalar", startMark,
			"found unknown escape character", parser.reader.Mark())
	}
	parser.reader.Advance()
	var value rune
	for i := 0; i < width; i++ {
		r, ok := parser.reader.Front()
		if !ok || !isHex(r) {
			return "", parser.setScannerError("while parsing a quoted scalar", startMark,
				"did not find expected hexadecimal digit", parser.reader.Mark())
		}
		value = value*16 + rune(hexValue(r))
		parser.reader.Advance()
	}
	return string(value), nil
}

// fetchPlainScalar scans a plain (unquoted) scalar, which in block
// context may continue across lines as long as each continuation line
// is indented past the scalar's enclosing block (§4.1, "plain folding").
func (parser *Parser) fetchPlainScalar() error {
	if err := parser.saveSimpleKey(); err != nil {
		return err
	}
	parser.simple_key_allowed = false

	startMark := parser.reader.Mark()
	indent := parser.indent + 1
	if parser.flow_level > 0 {
		indent = 0
	}

	var value, whitespace, breaks strings.Builder
	leadingBlanks := false

	for {
		if r, ok := parser.reader.Front(); ok && r == '#' {
			break
		}

		for {
			r, ok := parser.reader.Front()
			if !ok || isBlankOrBreak(r) {
				break
			}
			if r == ':' {
				next, hasNext := parser.reader.At(1)
				if !hasNext || isBlankOrBreak(next) || (parser.flow_level > 0 && next == ',') {
					break
				}
			}
			if parser.flow_level > 0 && strings.ContainsRune(",[]{}", r) {
				break
			}
			if leadingBlanks {
				if breaks.Len() > 0 {
					if breaks.Len() == 1 {
						value.WriteByte(' ')
					}
					for i := 1; i < breaks.Len(); i++ {
						value.WriteByte('\n')
					}
					breaks.Reset()
				} else if whitespace.Len() > 0 {
					value.WriteString(whitespace.String())
					whitespace.Reset()
				}
				leadingBlanks = false
			} else if whitespace.Len() > 0 {
				value.WriteString(whitespace.String())
				whitespace.Reset()
			}
			value.WriteRune(r)
			parser.reader.Advance()
		}

		r, ok := parser.reader.Front()
		if !ok || !isBlankOrBreak(r) {
			break
		}

		for {
			r, ok := parser.reader.Front()
			if !ok {
				break
			}
			switch {
			case isBlank(r):
				if leadingBlanks {
					parser.reader.Advance()
				} else {
					whitespace.WriteRune(r)
					parser.reader.Advance()
				}
			case isBreak(r):
				if !leadingBlanks {
					whitespace.Reset()
					leadingBlanks = true
				}
				breaks.WriteByte('\n')
				parser.reader.Advance()
			default:
				r, ok = 0, false
			}
			if !ok {
				break
			}
		}

		if parser.isDocumentIndicator("---") || parser.isDocumentIndicator("...") {
			break
		}
		if parser.flow_level == 0 && parser.reader.Mark().Column < indent {
			break
		}
	}
	if leadingBlanks {
		parser.simple_key_allowed = true
	}

	parser.tokens = append(parser.tokens, Token{
		Type:      SCALAR_TOKEN,
		StartMark: startMark,
		EndMark:   parser.reader.Mark(),
		Value:     []byte(value.String()),
		Style:     PLAIN_SCALAR_STYLE,
	})
	return nil
}

// --- errors ---------------------------------------------------------------

func (parser *Parser) setScannerError(context string, context_mark Mark, problem string, problem_mark Mark) error {
	return &ScannerError{
		ContextMessage: context,
		ContextMark:    context_mark,
		Mark:           problem_mark,
		Message:        problem,
	}
}
