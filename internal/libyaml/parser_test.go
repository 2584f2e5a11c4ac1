// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"testing"

	"github.com/kiith-sa/yamlcore/internal/testutil/assert"
)

func parseEvents(t *testing.T, src string) []Event {
	t.Helper()
	p := NewParser()
	p.SetInputString([]byte(src))

	var events []Event
	for {
		var ev Event
		if err := p.Parse(&ev); err != nil {
			t.Fatalf("Parse: %v", err)
		}
		events = append(events, ev)
		if ev.Type == STREAM_END_EVENT {
			break
		}
	}
	return events
}

func TestParseScalarDocumentEvents(t *testing.T) {
	events := parseEvents(t, "hello\n")
	want := []EventType{
		STREAM_START_EVENT,
		DOCUMENT_START_EVENT,
		SCALAR_EVENT,
		DOCUMENT_END_EVENT,
		STREAM_END_EVENT,
	}
	assert.Equal(t, len(want), len(events))
	for i := range want {
		assert.Equalf(t, want[i], events[i].Type, "event[%d]", i)
	}
	assert.Equal(t, "hello", string(events[2].Value))
}

func TestParseBlockSequenceEvents(t *testing.T) {
	events := parseEvents(t, "- a\n- b\n")
	want := []EventType{
		STREAM_START_EVENT,
		DOCUMENT_START_EVENT,
		SEQUENCE_START_EVENT,
		SCALAR_EVENT,
		SCALAR_EVENT,
		SEQUENCE_END_EVENT,
		DOCUMENT_END_EVENT,
		STREAM_END_EVENT,
	}
	assert.Equal(t, len(want), len(events))
	for i := range want {
		assert.Equalf(t, want[i], events[i].Type, "event[%d]", i)
	}
}

func TestParseBlockMappingEvents(t *testing.T) {
	events := parseEvents(t, "a: 1\nb: 2\n")
	want := []EventType{
		STREAM_START_EVENT,
		DOCUMENT_START_EVENT,
		MAPPING_START_EVENT,
		SCALAR_EVENT, SCALAR_EVENT,
		SCALAR_EVENT, SCALAR_EVENT,
		MAPPING_END_EVENT,
		DOCUMENT_END_EVENT,
		STREAM_END_EVENT,
	}
	assert.Equal(t, len(want), len(events))
	for i := range want {
		assert.Equalf(t, want[i], events[i].Type, "event[%d]", i)
	}
}

func TestParseFlowCollectionEvents(t *testing.T) {
	events := parseEvents(t, "[1, {a: 2}]\n")
	var types []EventType
	for _, ev := range events {
		types = append(types, ev.Type)
	}
	assert.True(t, containsEventType(types, SEQUENCE_START_EVENT))
	assert.True(t, containsEventType(types, MAPPING_START_EVENT))
	assert.True(t, containsEventType(types, MAPPING_END_EVENT))
	assert.True(t, containsEventType(types, SEQUENCE_END_EVENT))
}

func containsEventType(types []EventType, want EventType) bool {
	for _, tt := range types {
		if tt == want {
			return true
		}
	}
	return false
}

func TestParseAliasEvent(t *testing.T) {
	events := parseEvents(t, "[&a 1, *a]\n")
	var aliasEv *Event
	for i := range events {
		if events[i].Type == ALIAS_EVENT {
			aliasEv = &events[i]
		}
	}
	assert.NotNil(t, aliasEv)
	assert.Equal(t, "a", string(aliasEv.Anchor))
}

func TestParseEmptyScalarInMapping(t *testing.T) {
	// "a:" with nothing after it produces an implicit empty scalar value.
	events := parseEvents(t, "a:\n")
	var sawEmptyValue bool
	for i, ev := range events {
		if ev.Type == SCALAR_EVENT && string(ev.Value) == "a" {
			next := events[i+1]
			if next.Type == SCALAR_EVENT && string(next.Value) == "" {
				sawEmptyValue = true
			}
		}
	}
	assert.True(t, sawEmptyValue)
}

func TestParseDuplicateYAMLDirectiveErrors(t *testing.T) {
	p := NewParser()
	p.SetInputString([]byte("%YAML 1.1\n%YAML 1.1\n---\nA\n"))
	var err error
	for {
		var ev Event
		if err = p.Parse(&ev); err != nil {
			break
		}
		if ev.Type == STREAM_END_EVENT {
			break
		}
	}
	assert.NotNil(t, err)
	assert.ErrorMatches(t, "YAML directive", err)
}

func TestParseExplicitDocumentMarkers(t *testing.T) {
	events := parseEvents(t, "---\nA\n...\n")
	assert.Equal(t, DOCUMENT_START_EVENT, events[1].Type)
	assert.False(t, events[1].Implicit)
}

func TestParseVersionDirectiveCarried(t *testing.T) {
	events := parseEvents(t, "%YAML 1.1\n---\nA\n")
	doc := events[1]
	assert.Equal(t, DOCUMENT_START_EVENT, doc.Type)
	vd := doc.GetVersionDirective()
	assert.NotNil(t, vd)
	assert.Equal(t, 1, vd.Major())
	assert.Equal(t, 1, vd.Minor())
}
