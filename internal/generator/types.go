// Package generator turns a module request into validated learning content
// by prompting the text-generation collaborator and parsing its XML reply.
package generator

import "fmt"

// Topic is the kind of baseball concept a module is about.
type Topic string

const (
	TopicPlayer     Topic = "player"
	TopicTeam       Topic = "team"
	TopicRule       Topic = "rule"
	TopicTournament Topic = "tournament"
	TopicPosition   Topic = "position"
)

// valid reports whether t is one of the known topics.
func (t Topic) valid() bool {
	switch t {
	case TopicPlayer, TopicTeam, TopicRule, TopicTournament, TopicPosition:
		return true
	}
	return false
}

// Request describes one generation call. Immutable, constructed per call.
type Request struct {
	Topic      Topic
	Concept    string
	Difficulty int // 0=beginner, 1=intermediate, 2=advanced
	Count      int // flashcards and questions to generate
}

// Validate checks the request fields before any generation work begins.
func (r Request) Validate() error {
	if !r.Topic.valid() {
		return &ValidationError{Field: "topic", Reason: fmt.Sprintf("unknown topic %q", r.Topic)}
	}
	if r.Concept == "" {
		return &ValidationError{Field: "concept", Reason: "must not be empty"}
	}
	if r.Difficulty < 0 || r.Difficulty > 2 {
		return &ValidationError{Field: "difficulty", Reason: "must be 0, 1 or 2"}
	}
	if r.Count <= 0 {
		return &ValidationError{Field: "count", Reason: "must be positive"}
	}
	return nil
}

// Flashcard is one generated term/definition pair.
type Flashcard struct {
	Term       string
	Definition string
}

// Question is one generated four-option multiple-choice question.
type Question struct {
	Prompt             string
	Options            [4]string
	CorrectOptionIndex int
}

// Result is a validated generation payload: exactly Count flashcards and
// Count questions, in the order the generator produced them.
type Result struct {
	Flashcards []Flashcard
	Questions  []Question
}
