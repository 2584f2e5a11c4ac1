// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Default Reader implementation: a decoded rune cursor over an in-memory
// byte slice. SetInputReader drains an io.Reader into one of these
// up front rather than streaming it, since nothing in this pipeline needs
// to start scanning before the whole document has arrived.

package libyaml

import (
	"io"
	"unicode/utf8"
)

type byteReader struct {
	data   []byte
	pos    int // byte offset of the cursor
	index  int // rune count consumed so far
	line   int // 0-indexed line count consumed so far
	column int // 0-indexed column on the current line

	err error
}

func newByteReader(data []byte) *byteReader {
	return &byteReader{data: data}
}

// newIOReader drains r eagerly. A read failure is not reported until the
// first time the Scanner asks this Reader for input, at which point it
// surfaces as a ReaderError wrapping the underlying error.
func newIOReader(r io.Reader) *byteReader {
	data, err := io.ReadAll(r)
	return &byteReader{data: data, err: err}
}

func (r *byteReader) Front() (rune, bool) { return r.At(0) }

func (r *byteReader) At(n int) (rune, bool) {
	pos := r.pos
	var ru rune
	var size int
	for i := 0; i <= n; i++ {
		if pos >= len(r.data) {
			return 0, false
		}
		ru, size = utf8.DecodeRune(r.data[pos:])
		if ru == utf8.RuneError && size <= 1 {
			return 0, false
		}
		pos += size
	}
	return ru, true
}

func (r *byteReader) Advance() {
	if r.pos >= len(r.data) {
		return
	}
	ru, size := utf8.DecodeRune(r.data[r.pos:])
	r.pos += size
	r.index++
	if ru == '\n' {
		r.line++
		r.column = 0
	} else {
		r.column++
	}
}

func (r *byteReader) Empty() bool { return r.pos >= len(r.data) }

func (r *byteReader) Mark() Mark {
	return Mark{Index: r.index, Line: r.line + 1, Column: r.column}
}

func (r *byteReader) Encoding() Encoding { return UTF8_ENCODING }

// Err returns the error, if any, from draining an io.Reader source.
func (r *byteReader) Err() error { return r.err }
