// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Parser state: the combined Reader cursor, Scanner token queue and
// Parser state-machine stack that together turn bytes into events.
// Mirrors libyaml's single yaml_parser_t: reading, scanning and parsing
// are three stages, but one struct's worth of bookkeeping.

package libyaml

// parserState names a state in the Parser's state machine (§4.2).
type parserState int

const (
	PARSE_STREAM_START_STATE parserState = iota
	PARSE_IMPLICIT_DOCUMENT_START_STATE
	PARSE_DOCUMENT_START_STATE
	PARSE_DOCUMENT_CONTENT_STATE
	PARSE_DOCUMENT_END_STATE
	PARSE_BLOCK_NODE_STATE
	PARSE_BLOCK_NODE_OR_INDENTLESS_SEQUENCE_STATE
	PARSE_FLOW_NODE_STATE
	PARSE_BLOCK_SEQUENCE_FIRST_ENTRY_STATE
	PARSE_BLOCK_SEQUENCE_ENTRY_STATE
	PARSE_INDENTLESS_SEQUENCE_ENTRY_STATE
	PARSE_BLOCK_MAPPING_FIRST_KEY_STATE
	PARSE_BLOCK_MAPPING_KEY_STATE
	PARSE_BLOCK_MAPPING_VALUE_STATE
	PARSE_FLOW_SEQUENCE_FIRST_ENTRY_STATE
	PARSE_FLOW_SEQUENCE_ENTRY_STATE
	PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_KEY_STATE
	PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_VALUE_STATE
	PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_END_STATE
	PARSE_FLOW_MAPPING_FIRST_KEY_STATE
	PARSE_FLOW_MAPPING_KEY_STATE
	PARSE_FLOW_MAPPING_VALUE_STATE
	PARSE_FLOW_MAPPING_EMPTY_VALUE_STATE
	PARSE_END_STATE
)

func (s parserState) String() string {
	names := [...]string{
		"stream-start", "implicit-document-start", "document-start",
		"document-content", "document-end", "block-node", "block-node-or-indentless-sequence",
		"flow-node", "block-sequence-first-entry", "block-sequence-entry",
		"indentless-sequence-entry", "block-mapping-first-key", "block-mapping-key",
		"block-mapping-value", "flow-sequence-first-entry", "flow-sequence-entry",
		"flow-sequence-entry-mapping-key", "flow-sequence-entry-mapping-value",
		"flow-sequence-entry-mapping-end", "flow-mapping-first-key", "flow-mapping-key",
		"flow-mapping-value", "flow-mapping-empty-value", "end",
	}
	if int(s) < 0 || int(s) >= len(names) {
		return "unknown"
	}
	return names[s]
}

// simpleKey tracks one candidate simple key (§4.1.3): a position in the
// token stream that could still turn into a KEY token if a ':' shows up
// before the key goes stale.
type simpleKey struct {
	possible     bool
	required     bool
	token_number int
	mark         Mark
}

// Parser holds the combined Reader, Scanner and Parser (grammar)
// state for a single YAML stream.
type Parser struct {
	cfg config

	// --- reader ---
	reader Reader

	// --- scanner ---
	stream_start_produced bool
	stream_end_produced   bool
	hadError              bool

	indent  int
	indents []int

	flow_level int

	simple_key_allowed bool
	simple_keys        []simpleKey

	tokens        []Token
	tokens_head   int
	tokens_parsed int
	token_available bool

	tag_directives []TagDirective

	// comments captured by the scanner, consumed by the parser's
	// unfoldComments as tokens are peeked.
	comments      []Comment
	comments_head int

	head_comment []byte
	line_comment []byte
	foot_comment []byte
	tail_comment []byte
	stem_comment []byte

	blank_lines_before int // not set by the scanner; always zero

	// --- parser (grammar) ---
	state  parserState
	states []parserState
	marks  []Mark
}
