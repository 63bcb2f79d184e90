package vkdebug

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDebugDescriptorSelectsEverything(t *testing.T) {
	d := NewDebugDescriptor(func(*Event, interface{}) bool { return false })
	for _, s := range []Severity{SeverityVerbose, SeverityInfo, SeverityWarning, SeverityError} {
		for _, ty := range []MessageType{TypeGeneral, TypeValidation, TypePerformance} {
			assert.True(t, d.Wants(s, ty), "%s %s", s, ty)
		}
	}
}

func TestDebugDescriptorDispatch(t *testing.T) {
	var got []string
	d := NewDebugDescriptor(func(ev *Event, userData interface{}) bool {
		got = append(got, string(ev.Message)+"/"+userData.(string))
		return false
	})
	d.UserData = "ctx"
	d.Severities = SeverityFlags(SeverityWarning | SeverityError)
	d.Types = TypeValidation

	d.Dispatch(&Event{Severity: SeverityError, Types: TypeValidation, Message: []byte("a")})
	d.Dispatch(&Event{Severity: SeverityInfo, Types: TypeValidation, Message: []byte("b")})
	d.Dispatch(&Event{Severity: SeverityError, Types: TypePerformance, Message: []byte("c")})
	d.Dispatch(&Event{Severity: SeverityWarning, Types: TypeValidation | TypePerformance, Message: []byte("d")})

	assert.Equal(t, []string{"a/ctx", "d/ctx"}, got)

	var nilDesc *DebugDescriptor
	assert.False(t, nilDesc.Dispatch(&Event{}))
}

func TestInstanceDescriptorChain(t *testing.T) {
	desc := &InstanceDescriptor{}
	assert.Nil(t, desc.DebugDescriptor())

	desc.Push(nil)
	assert.Nil(t, desc.Next)

	first := NewDebugDescriptor(nil)
	desc.Push(first)
	require.Same(t, first, desc.DebugDescriptor())

	second := NewDebugDescriptor(nil)
	desc.Push(second)
	assert.Same(t, second, desc.DebugDescriptor())
	assert.Same(t, first, second.Next)
}

func TestMessageTypeString(t *testing.T) {
	assert.Equal(t, "NONE", MessageType(0).String())
	assert.Equal(t, "GENERAL", TypeGeneral.String())
	assert.Equal(t, "GENERAL|VALIDATION|PERFORMANCE", AllMessageTypes.String())
	assert.Equal(t, "VALIDATION|0x10", (TypeValidation | 0x10).String())

	assert.True(t, AllMessageTypes.Has(TypeValidation))
	assert.False(t, TypeGeneral.Has(TypeValidation))
	assert.False(t, TypeGeneral.Has(0))
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "ERROR", SeverityError.String())
	assert.Equal(t, "VERBOSE", SeverityVerbose.String())
	assert.Equal(t, "SEVERITY(0x2)", Severity(2).String())
	assert.True(t, SeverityVerbose < SeverityInfo && SeverityInfo < SeverityWarning && SeverityWarning < SeverityError)
}
