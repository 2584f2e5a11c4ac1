// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Reader is the Scanner's input collaborator: it turns a byte source into
// a decoded rune cursor with position tracking, and is one of the three
// external interfaces alongside Resolver and Constructor. Unlike those two,
// it cannot be replaced by a caller: SetInputString and SetInputReader
// always install the default implementation, backed by either an in-memory
// buffer or an io.Reader and defined in reader.go next to the Scanner that
// drives it.

package libyaml

// Reader exposes a decoded, position-tracked cursor over a YAML byte
// stream. The Scanner only ever looks one or a handful of runes ahead, so
// every method here is cheap to call in the scanner's inner loop.
type Reader interface {
	// Front returns the rune at the cursor without consuming it. It
	// returns false once the stream is exhausted.
	Front() (rune, bool)

	// At returns the rune n positions ahead of the cursor (At(0) is
	// equivalent to Front) without consuming anything.
	At(n int) (rune, bool)

	// Advance consumes the rune at the cursor, updating line/column
	// bookkeeping.
	Advance()

	// Empty reports whether the cursor has reached the end of input.
	Empty() bool

	// Mark returns the cursor's current position.
	Mark() Mark

	// Encoding returns the stream's encoding, once known. Detecting it
	// from a byte-order mark is out of scope for this module: callers
	// that need BOM sniffing decode it themselves before handing bytes
	// to the Reader.
	Encoding() Encoding
}
