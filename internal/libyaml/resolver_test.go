// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"testing"

	"github.com/kiith-sa/yamlcore/internal/testutil/assert"
)

func TestDefaultResolve(t *testing.T) {
	cases := []struct {
		value string
		want  string
	}{
		{"", nullTag},
		{"~", nullTag},
		{"null", nullTag},
		{"Null", nullTag},
		{"NULL", nullTag},
		{"true", boolTag},
		{"False", boolTag},
		{"YES", boolTag},
		{"off", boolTag},
		{"42", intTag},
		{"-17", intTag},
		{"0x1A", intTag},
		{"0b101", intTag},
		{"3.14", floatTag},
		{"-.inf", floatTag},
		{".nan", floatTag},
		{"2026-07-30", timestampTag},
		{"2026-07-30T10:00:00Z", timestampTag},
		{"<<", mergeTag},
		{"hello world", strTag},
		{"yes please", strTag},
	}
	for _, tc := range cases {
		got := defaultResolve(tc.value)
		assert.Equalf(t, tc.want, got, "defaultResolve(%q)", tc.value)
	}
}

func TestResolverFuncAdapter(t *testing.T) {
	var r Resolver = resolverFunc(func(v string) string { return "!!custom" })
	assert.Equal(t, "!!custom", r.Resolve("anything"))
}
