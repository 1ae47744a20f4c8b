package sentiment

import (
	"encoding/json"
	"strings"

	"feedbackd/internal/core/normalize"
)

// Normalize never fails: unknown labels become Neutral and unusable summaries become NoSummary
// a usable summary is kept as the model wrote it, only trimmed
func Normalize(raw Raw) Result {
	return Result{
		Summary:   summaryOf(raw.Summary),
		Sentiment: labelOf(raw.Sentiment),
	}
}

func labelOf(m json.RawMessage) Label {
	var s string
	if len(m) == 0 || json.Unmarshal(m, &s) != nil {
		return Neutral
	}
	if l := Label(s); l.Valid() {
		return l
	}
	return Neutral
}

func summaryOf(m json.RawMessage) string {
	var s string
	if len(m) == 0 || json.Unmarshal(m, &s) != nil {
		return NoSummary
	}
	if normalize.Blank(s) {
		return NoSummary
	}
	return strings.TrimSpace(strings.ToValidUTF8(s, "\uFFFD"))
}
