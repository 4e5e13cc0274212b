package generate

import (
	"errors"
	"strings"
)

// Delimiter separates cards in the model's reply. The prompt pins it down
// and the parser splits on nothing else.
const Delimiter = "---"

// ErrNoCards reports a reply that contained no usable card at all.
var ErrNoCards = errors.New("could not generate flashcards")

// Draft is a generated card that has not been saved yet. Drafts only become
// flashcards through the normal create path, so a half-parsed reply can
// never end up in a topic.
type Draft struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ParseCards extracts question/answer pairs from a delimiter-separated
// reply. Each segment is scanned line by line for the "Question:" and
// "Answer:" prefixes, ignoring case. Segments missing either part are
// dropped silently; the caller decides whether an empty result is an error.
func ParseCards(raw string) []Draft {
	var drafts []Draft
	for _, segment := range strings.Split(raw, Delimiter) {
		question, answer := "", ""
		for _, line := range strings.Split(segment, "\n") {
			line = strings.TrimSpace(line)
			lower := strings.ToLower(line)
			switch {
			case strings.HasPrefix(lower, "question:"):
				question = strings.TrimSpace(line[len("question:"):])
			case strings.HasPrefix(lower, "answer:"):
				answer = strings.TrimSpace(line[len("answer:"):])
			}
		}
		if question != "" && answer != "" {
			drafts = append(drafts, Draft{Question: question, Answer: answer})
		}
	}
	return drafts
}
