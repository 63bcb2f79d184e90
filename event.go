package vkdebug

import (
	"fmt"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Severity is the severity of a diagnostic message. The values are the
// VkDebugUtilsMessageSeverityFlagBitsEXT bits, so they order the same way.
type Severity uint32

const (
	SeverityVerbose Severity = 0x00000001
	SeverityInfo    Severity = 0x00000010
	SeverityWarning Severity = 0x00000100
	SeverityError   Severity = 0x00001000
)

func (s Severity) String() string {
	switch s {
	case SeverityVerbose:
		return "VERBOSE"
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	}
	return fmt.Sprintf("SEVERITY(%#x)", uint32(s))
}

// SeverityFlags is a mask of severities a messenger wants to receive
type SeverityFlags uint32

// AllSeverities selects every severity
const AllSeverities = SeverityFlags(SeverityVerbose | SeverityInfo | SeverityWarning | SeverityError)

// Has reports whether s is selected by the mask
func (f SeverityFlags) Has(s Severity) bool {
	return uint32(f)&uint32(s) != 0
}

// MessageType is the category bitset of a diagnostic message, the bits are
// not mutually exclusive.
type MessageType uint32

const (
	TypeGeneral     MessageType = 0x00000001
	TypeValidation  MessageType = 0x00000002
	TypePerformance MessageType = 0x00000004
)

// AllMessageTypes selects every category
const AllMessageTypes = TypeGeneral | TypeValidation | TypePerformance

var messageTypeNames = []struct {
	bit  MessageType
	name string
}{
	{TypeGeneral, "GENERAL"},
	{TypeValidation, "VALIDATION"},
	{TypePerformance, "PERFORMANCE"},
}

// Has reports whether every bit of o is set in t
func (t MessageType) Has(o MessageType) bool {
	return t&o == o && o != 0
}

func (t MessageType) String() string {
	if t == 0 {
		return "NONE"
	}
	parts := make([]string, 0, 3)
	rest := t
	for _, n := range messageTypeNames {
		if t&n.bit != 0 {
			parts = append(parts, n.name)
			rest &^= n.bit
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("%#x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// ObjectInfo describes an object a diagnostic message refers to
type ObjectInfo struct {
	Type   string
	Handle uint64
	Name   []byte
}

// Event is a diagnostic message as the platform delivers it. Message, Objects
// and the object names are only valid for the duration of the callback.
type Event struct {
	Severity        Severity
	Types           MessageType
	MessageIDName   string
	MessageIDNumber int32
	Message         []byte
	Objects         []ObjectInfo
}

// Record is an owned copy of an Event which is safe to keep
type Record struct {
	Severity        Severity
	Types           MessageType
	MessageIDName   string
	MessageIDNumber int32
	Message         string
	Objects         []RecordObject
}

// RecordObject is an owned copy of an ObjectInfo
type RecordObject struct {
	Type   string
	Handle uint64
	Name   string
}

func (o RecordObject) String() string {
	if o.Name != "" {
		return fmt.Sprintf("%s %#x %q", o.Type, o.Handle, o.Name)
	}
	return fmt.Sprintf("%s %#x", o.Type, o.Handle)
}

const emptyMessage = "<empty message>"

// Own copies everything out of e. Invalid UTF-8 is replaced with U+FFFD.
func (e *Event) Own() Record {
	r := Record{
		Severity:        e.Severity,
		Types:           e.Types,
		MessageIDName:   decodeLossy([]byte(e.MessageIDName)),
		MessageIDNumber: e.MessageIDNumber,
		Message:         decodeLossy(e.Message),
	}
	if r.Message == "" {
		r.Message = emptyMessage
	}
	if len(e.Objects) > 0 {
		r.Objects = make([]RecordObject, len(e.Objects))
		for i, o := range e.Objects {
			r.Objects[i] = RecordObject{
				Type:   decodeLossy([]byte(o.Type)),
				Handle: o.Handle,
				Name:   decodeLossy(o.Name),
			}
		}
	}
	return r
}

// decodeLossy always returns a freshly allocated string
func decodeLossy(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	s, _, err := transform.Bytes(runes.ReplaceIllFormed(), b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�")
	}
	return string(s)
}
