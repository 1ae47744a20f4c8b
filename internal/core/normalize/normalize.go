// Package normalize cleans untrusted text (request input, model output) before it is validated or stored
// Summary pipeline
// 1 drop control bytes and invalid UTF-8 (Sanitize)
// 2 Unicode NFC composition
// 3 remove format characters (zero width space, ZWJ, BOM)
// 4 collapse whitespace runs to single spaces and trim
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// chains are not safe for concurrent use, so each caller borrows one
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFC,
			runes.Remove(runes.In(unicode.Cf)),
		)
	},
}

func transformString(s string) string {
	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		return s
	}
	return out
}

// Text runs the full pipeline; the result is single line, trimmed and valid UTF-8
func Text(s string) string {
	if s == "" {
		return ""
	}
	return Collapse(transformString(Sanitize(s)))
}

// Blank reports whether s has no visible content once controls, format characters and whitespace are gone
func Blank(s string) bool { return Text(s) == "" }

// Collapse turns every whitespace run (newlines included) into one ASCII space and trims the ends
func Collapse(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			pending = b.Len() > 0
			continue
		}
		if pending {
			b.WriteByte(' ')
			pending = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
