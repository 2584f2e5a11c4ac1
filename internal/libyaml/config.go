// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Functional-options configuration for the Parser/Composer pipeline,
// grounded on the teacher's option/option.go pattern: an Option mutates a
// private config, With... constructors build one, defaults apply when no
// option touches a given field.

package libyaml

// config holds the tunable limits and hooks for a Parser/Composer pair.
type config struct {
	maxSimpleKeyLength int
	maxAliasExpansion  int
	versionWarner      func(major, minor int)
}

func defaultConfig() config {
	return config{
		maxSimpleKeyLength: 1024,
		maxAliasExpansion:  1000,
	}
}

// Option configures a Parser or Composer at construction time.
type Option func(*config)

// WithMaxSimpleKeyLength bounds how many characters a simple key candidate
// (§4.1.3) may span before the Scanner gives up treating it as a key and
// lets it fall through as a plain scalar. The YAML 1.1 spec fixes this at
// 1024; this option exists for callers parsing deliberately non-conformant
// input.
func WithMaxSimpleKeyLength(n int) Option {
	return func(c *config) { c.maxSimpleKeyLength = n }
}

// WithMaxAliasExpansion bounds how many nodes the Composer will build
// while resolving aliases before it fails with a ComposerError, guarding
// against billion-laughs-style alias amplification.
func WithMaxAliasExpansion(n int) Option {
	return func(c *config) { c.maxAliasExpansion = n }
}

// WithYAMLVersionWarner installs a callback invoked when a document's
// %YAML directive names a major version other than 1. Without this
// option, any major version is accepted silently (§9 Open Question):
// this core doesn't reject documents over a version mismatch, but a
// caller that cares can find out.
func WithYAMLVersionWarner(fn func(major, minor int)) Option {
	return func(c *config) { c.versionWarner = fn }
}
