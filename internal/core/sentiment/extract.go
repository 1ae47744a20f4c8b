package sentiment

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoJSON means the model text holds no balanced {...} span
	ErrNoJSON = errors.New("AI did not return valid JSON")

	// ErrDecode means the first balanced span is not a JSON object
	ErrDecode = errors.New("AI returned malformed JSON")
)

// ExtractObject returns the first balanced {...} span in text
// braces inside JSON strings do not count, escaped quotes do not end a string;
// when the braces opened at one '{' never close the scan restarts at the next '{'
func ExtractObject(text string) (string, error) {
	from := 0
	for {
		i := strings.IndexByte(text[from:], '{')
		if i < 0 {
			return "", ErrNoJSON
		}
		start := from + i
		if end, ok := balancedEnd(text, start); ok {
			return text[start : end+1], nil
		}
		from = start + 1
	}
}

// balancedEnd returns the index of the '}' closing the '{' at start
func balancedEnd(text string, start int) (int, bool) {
	depth := 0
	inString, escaped := false, false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// Raw is the loosely decoded model object; either field may hold any JSON value or be nil
type Raw struct {
	Summary   json.RawMessage `json:"summary"`
	Sentiment json.RawMessage `json:"sentiment"`
}

// Decode parses an extracted span; wrong field types survive and are handled by Normalize
// keys match exactly ("Sentiment" is not "sentiment") and a repeated key keeps its last value
func Decode(span string) (Raw, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(span), &fields); err != nil {
		return Raw{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return Raw{Summary: fields["summary"], Sentiment: fields["sentiment"]}, nil
}

// Parse is ExtractObject followed by Decode
func Parse(text string) (Raw, error) {
	span, err := ExtractObject(text)
	if err != nil {
		return Raw{}, err
	}
	return Decode(span)
}
