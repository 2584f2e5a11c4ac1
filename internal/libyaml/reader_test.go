// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"strings"
	"testing"

	"github.com/kiith-sa/yamlcore/internal/testutil/assert"
)

func TestByteReaderFrontAdvance(t *testing.T) {
	r := newByteReader([]byte("ab"))
	assert.False(t, r.Empty())

	ru, ok := r.Front()
	assert.True(t, ok)
	assert.Equal(t, 'a', ru)

	r.Advance()
	ru, ok = r.Front()
	assert.True(t, ok)
	assert.Equal(t, 'b', ru)

	r.Advance()
	assert.True(t, r.Empty())
	_, ok = r.Front()
	assert.False(t, ok)
}

func TestByteReaderAt(t *testing.T) {
	r := newByteReader([]byte("xyz"))
	ru, ok := r.At(2)
	assert.True(t, ok)
	assert.Equal(t, 'z', ru)

	_, ok = r.At(3)
	assert.False(t, ok)
}

func TestByteReaderLineColumnTracking(t *testing.T) {
	r := newByteReader([]byte("ab\ncd"))
	for i := 0; i < 3; i++ {
		r.Advance()
	}
	m := r.Mark()
	assert.Equal(t, 2, m.Line)
	assert.Equal(t, 0, m.Column)
}

func TestByteReaderUnicode(t *testing.T) {
	r := newByteReader([]byte("héllo"))
	ru, ok := r.At(1)
	assert.True(t, ok)
	assert.Equal(t, 'é', ru)
}

func TestByteReaderEncoding(t *testing.T) {
	r := newByteReader(nil)
	assert.Equal(t, UTF8_ENCODING, r.Encoding())
}

func TestNewIOReaderDrainsEagerly(t *testing.T) {
	r := newIOReader(strings.NewReader("hello"))
	assert.NoError(t, r.Err())
	ru, ok := r.Front()
	assert.True(t, ok)
	assert.Equal(t, 'h', ru)
}
