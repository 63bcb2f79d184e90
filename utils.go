package vkdebug

import "strings"

var end = "\x00"
var endChar byte = '\x00'

// SafeString NUL terminates s unless it already is
func SafeString(s string) string {
	if len(s) == 0 {
		return end
	}
	if s[len(s)-1] != endChar {
		return s + end
	}
	return s
}

// SafeStrings returns a copy of list with every entry NUL terminated
func SafeStrings(list []string) []string {
	ret := make([]string, len(list))
	for i := range list {
		ret[i] = SafeString(list[i])
	}
	return ret
}

func trimTerminator(s string) string {
	return strings.TrimRight(s, end)
}

func containsString(list []string, s string) bool {
	s = trimTerminator(s)
	for _, l := range list {
		if trimTerminator(l) == s {
			return true
		}
	}
	return false
}
