package normalize

import (
	"strings"
	"unicode/utf8"
)

// Sanitize drops what must never reach a TEXT column or a JSON body:
// NUL, ASCII controls other than \n \r \t, DEL, C1 controls and invalid UTF-8 bytes
// s is returned unchanged (no allocation) when it is already clean
func Sanitize(s string) string {
	if utf8.ValidString(s) && strings.IndexFunc(s, dropped) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if dropped(r) {
			return -1
		}
		return r
	}, strings.ToValidUTF8(s, ""))
}

func dropped(r rune) bool {
	switch {
	case r == '\n' || r == '\r' || r == '\t':
		return false
	case r < 0x20, r == 0x7F:
		return true
	case r >= 0x80 && r <= 0x9F:
		return true
	}
	return false
}
