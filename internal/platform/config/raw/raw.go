// Package raw reads bootstrap settings before the logger exists
// config proper logs through the logger, so the logger reads LOG_ keys through here
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Source resolves one variable; os.LookupEnv in production
type Source func(key string) (string, bool)

// Conf is a prefixed, silent view over a Source
type Conf struct {
	prefix string
	src    Source
}

// New reads the process environment
func New() Conf { return Conf{src: os.LookupEnv} }

// FromMap reads a fixed set of values, for tests and for callers that already parsed a file
func FromMap(m map[string]string) Conf {
	return Conf{src: func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}}
}

// Prefix narrows the view, e.g. raw.New().Prefix("LOG_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p, src: c.src} }

func (c Conf) value(key string) string {
	if c.src == nil {
		return ""
	}
	v, _ := c.src(c.prefix + key)
	return strings.TrimSpace(v)
}

// String returns the trimmed value or def when unset or blank
func (c Conf) String(key, def string) string {
	if v := c.value(key); v != "" {
		return v
	}
	return def
}

// Lower is String folded to lower case, for enum-ish settings like levels and formats
func (c Conf) Lower(key, def string) string { return strings.ToLower(c.String(key, def)) }

// Bool accepts strconv.ParseBool spellings plus yes/no and on/off; anything else is def
func (c Conf) Bool(key string, def bool) bool {
	switch v := strings.ToLower(c.value(key)); v {
	case "":
		return def
	case "yes", "on":
		return true
	case "no", "off":
		return false
	default:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return def
		}
		return b
	}
}

// Int returns a non negative integer or def
func (c Conf) Int(key string, def int) int {
	n, err := strconv.Atoi(c.value(key))
	if err != nil || n < 0 {
		return def
	}
	return n
}
