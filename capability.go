package vkdebug

import (
	"bytes"
	"fmt"
)

// MaxNameSize matches VK_MAX_EXTENSION_NAME_SIZE, the fixed size of layer and
// extension names in the Vulkan ABI, terminator included.
const MaxNameSize = 256

// ValidationLayer is the layer name of the Khronos validation layer
var ValidationLayer = MustCapabilityName("VK_LAYER_KHRONOS_validation")

// CapabilityName is a NUL terminated layer or extension name in the fixed
// size layout Vulkan reports them in. Two names are equal when their bytes are.
type CapabilityName [MaxNameSize]byte

// NewCapabilityName converts s into a CapabilityName
func NewCapabilityName(s string) (CapabilityName, error) {
	var n CapabilityName
	s = trimTerminator(s)
	if len(s) == 0 {
		return n, fmt.Errorf("capability name is empty")
	}
	if len(s) >= MaxNameSize {
		return n, fmt.Errorf("capability name %q is longer than %d bytes", s, MaxNameSize-1)
	}
	if bytes.IndexByte([]byte(s), endChar) >= 0 {
		return n, fmt.Errorf("capability name %q contains a NUL byte", s)
	}
	copy(n[:], s)
	return n, nil
}

// MustCapabilityName is like NewCapabilityName but panics on an invalid name,
// it is meant for package level constants.
func MustCapabilityName(s string) CapabilityName {
	n, err := NewCapabilityName(s)
	if err != nil {
		panic(err)
	}
	return n
}

// CapabilityNameFromBytes converts a name as stored in a Vulkan properties
// struct, everything from the first NUL on is ignored.
func CapabilityNameFromBytes(b []byte) (CapabilityName, error) {
	if i := bytes.IndexByte(b, endChar); i >= 0 {
		b = b[:i]
	}
	return NewCapabilityName(string(b))
}

func (n CapabilityName) String() string {
	if i := bytes.IndexByte(n[:], endChar); i >= 0 {
		return string(n[:i])
	}
	return string(n[:])
}

// CString returns the name NUL terminated, the form the vulkan bindings expect
func (n CapabilityName) CString() string {
	return SafeString(n.String())
}

// IsZero reports whether n was never set
func (n CapabilityName) IsZero() bool {
	return n[0] == endChar
}

// CapabilitySet is the set of names a platform reports as installed
type CapabilitySet map[CapabilityName]struct{}

// NewCapabilitySet builds a set from the names reported by the platform.
// Names which cannot be represented are skipped.
func NewCapabilitySet(names []string) CapabilitySet {
	set := make(CapabilitySet, len(names))
	for _, name := range names {
		n, err := NewCapabilityName(name)
		if err != nil {
			continue
		}
		set[n] = struct{}{}
	}
	return set
}

// Has reports whether name is in the set
func (s CapabilitySet) Has(name CapabilityName) bool {
	_, ok := s[name]
	return ok
}

// EnabledCapabilityList is the ordered list of names handed to instance creation
type EnabledCapabilityList []CapabilityName

// Contains reports whether name is already in the list
func (l EnabledCapabilityList) Contains(name CapabilityName) bool {
	for _, n := range l {
		if n == name {
			return true
		}
	}
	return false
}

// Strings returns the names as plain Go strings
func (l EnabledCapabilityList) Strings() []string {
	ret := make([]string, len(l))
	for i, n := range l {
		ret[i] = n.String()
	}
	return ret
}

// CStrings returns the names NUL terminated
func (l EnabledCapabilityList) CStrings() []string {
	ret := make([]string, len(l))
	for i, n := range l {
		ret[i] = n.CString()
	}
	return ret
}
