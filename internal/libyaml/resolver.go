// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Resolver assigns an implicit tag to a plain scalar the Composer is about
// to attach to a Node, the way a YAML 1.1 core schema would: "42" resolves
// to !!int, "true" to !!bool, "~" to !!null, and anything else falls back
// to !!str.

package libyaml

import "regexp"

// Resolver picks the implicit tag for a scalar value that wasn't given an
// explicit tag in the document. Composer calls it once per plain scalar
// that has no tag or only the non-specific "!" tag; untagged quoted and
// block scalars get !!str without consulting it. A custom Resolver can
// tighten or loosen the core schema (for
// example, to opt into or out of YAML 1.1's sexagesimal floats).
type Resolver interface {
	Resolve(value string) (tag string)
}

// resolverFunc adapts a plain function to the Resolver interface.
type resolverFunc func(string) string

func (f resolverFunc) Resolve(value string) string { return f(value) }

// Patterns grounded on the teacher's representer.go implicit-tag regexes
// (base60float, yaml11CommaNumber), extended to cover the rest of the
// YAML 1.1 core schema's implicit typing rules.
var (
	nullPattern      = regexp.MustCompile(`^(?:~|null|Null|NULL|)$`)
	boolPattern      = regexp.MustCompile(`^(?:true|True|TRUE|false|False|FALSE|yes|Yes|YES|no|No|NO|on|On|ON|off|Off|OFF)$`)
	intPattern       = regexp.MustCompile(`^(?:[-+]?0b[0-1_]+|[-+]?0[0-7_]+|[-+]?(?:0|[1-9][0-9_]*)|[-+]?0x[0-9a-fA-F_]+|[-+]?[1-9][0-9_]*(?::[0-5]?[0-9])+)$`)
	floatPattern     = regexp.MustCompile(`^(?:[-+]?(?:[0-9][0-9_]*)\.[0-9_]*(?:[eE][-+]?[0-9]+)?|\.[0-9][0-9_]*(?:[eE][-+]?[0-9]+)?|[-+]?[0-9][0-9_]*(?::[0-5]?[0-9])+\.[0-9_]*|[-+]?\.(?:inf|Inf|INF)|\.(?:nan|NaN|NAN))$`)
	timestampPattern = regexp.MustCompile(`^[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]([Tt]|[ \t]+)[0-9][0-9]?:[0-9][0-9]:[0-9][0-9](\.[0-9]*)?(([ \t]*)Z|[-+][0-9][0-9]?(:[0-9][0-9])?)?$|^[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]$`)
	mergePattern     = regexp.MustCompile(`^<<$`)
)

// defaultResolve implements the YAML 1.1 core schema's implicit typing.
func defaultResolve(value string) string {
	switch {
	case mergePattern.MatchString(value):
		return mergeTag
	case nullPattern.MatchString(value):
		return nullTag
	case boolPattern.MatchString(value):
		return boolTag
	case intPattern.MatchString(value):
		return intTag
	case floatPattern.MatchString(value):
		return floatTag
	case timestampPattern.MatchString(value):
		return timestampTag
	default:
		return strTag
	}
}

// defaultResolver is the Resolver used when a Composer isn't configured
// with one of its own.
var defaultResolver Resolver = resolverFunc(defaultResolve)
