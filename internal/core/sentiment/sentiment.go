// Package sentiment holds the pure parts of feedback analysis:
// the prompt, extraction of the model's JSON object, and normalization of the result
package sentiment

// Label is the normalized sentiment of a piece of feedback
type Label string

// The only labels that are ever stored; matching is case sensitive
const (
	Positive Label = "Positive"
	Negative Label = "Negative"
	Neutral  Label = "Neutral"
)

// NoSummary replaces an empty, missing or non string summary
const NoSummary = "No summary available"

// Labels lists the accepted labels in prompt order
func Labels() []Label { return []Label{Positive, Negative, Neutral} }

// Valid reports whether l is one of the three labels
func (l Label) Valid() bool {
	switch l {
	case Positive, Negative, Neutral:
		return true
	}
	return false
}

func (l Label) String() string { return string(l) }

// Result is the normalized analysis; Sentiment is always Valid and Summary never empty
type Result struct {
	Summary   string `json:"summary"`
	Sentiment Label  `json:"sentiment"`
}
