package sentiment

import "strings"

const promptHead = `Analyze the following feedback and return a JSON object with two fields: "summary" (a short summary in 1-2 sentences) and "sentiment" (one of: "Positive", "Negative", or "Neutral").

Feedback: `

const promptTail = `

Return only valid JSON in this exact format:
{
  "summary": "your summary here",
  "sentiment": "Positive|Negative|Neutral"
}`

// BuildPrompt embeds feedback verbatim into the classification template
func BuildPrompt(feedback string) string {
	var b strings.Builder
	b.Grow(len(promptHead) + len(feedback) + len(promptTail))
	b.WriteString(promptHead)
	b.WriteString(feedback)
	b.WriteString(promptTail)
	return b.String()
}
