// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"testing"

	"github.com/kiith-sa/yamlcore/internal/testutil/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, 1024, cfg.maxSimpleKeyLength)
	assert.Equal(t, 1000, cfg.maxAliasExpansion)
	assert.IsNil(t, cfg.versionWarner)
}

func TestWithMaxSimpleKeyLength(t *testing.T) {
	cfg := defaultConfig()
	WithMaxSimpleKeyLength(16)(&cfg)
	assert.Equal(t, 16, cfg.maxSimpleKeyLength)
}

func TestWithMaxAliasExpansion(t *testing.T) {
	cfg := defaultConfig()
	WithMaxAliasExpansion(3)(&cfg)
	assert.Equal(t, 3, cfg.maxAliasExpansion)
}

func TestWithYAMLVersionWarner(t *testing.T) {
	var gotMajor, gotMinor int
	cfg := defaultConfig()
	WithYAMLVersionWarner(func(major, minor int) {
		gotMajor, gotMinor = major, minor
	})(&cfg)
	cfg.versionWarner(2, 0)
	assert.Equal(t, 2, gotMajor)
	assert.Equal(t, 0, gotMinor)
}

func TestNewParserAppliesOptions(t *testing.T) {
	p := NewParser(WithMaxSimpleKeyLength(7), WithMaxAliasExpansion(9))
	assert.Equal(t, 7, p.cfg.maxSimpleKeyLength)
	assert.Equal(t, 9, p.cfg.maxAliasExpansion)
}
