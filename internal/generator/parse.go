package generator

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// The response grammar has two top-level sections, so the raw text is
// wrapped in a synthetic root before decoding.
type xmlOutput struct {
	Flashcards *xmlFlashcards `xml:"flashcards"`
	Questions  *xmlQuestions  `xml:"questions"`
}

type xmlFlashcards struct {
	Cards []xmlFlashcard `xml:"flashcard"`
}

type xmlFlashcard struct {
	Term       string `xml:"term"`
	Definition string `xml:"definition"`
}

type xmlQuestions struct {
	Questions []xmlQuestion `xml:"question"`
}

type xmlQuestion struct {
	Prompt  string      `xml:"prompt"`
	Options []xmlOption `xml:"options>option"`
}

type xmlOption struct {
	Correct string `xml:"correct,attr"`
	Text    string `xml:",chardata"`
}

// parseResponse decodes the collaborator's XML reply and validates its
// shape against the requested count. It returns a ParseError for malformed
// XML and a SchemaError for a well-formed reply with the wrong shape.
func parseResponse(raw string, count int) (*Result, error) {
	var out xmlOutput
	wrapped := "<output>" + raw + "</output>"
	if err := xml.Unmarshal([]byte(wrapped), &out); err != nil {
		return nil, &ParseError{Err: err}
	}

	if out.Flashcards == nil {
		return nil, &SchemaError{Reason: "missing flashcards section"}
	}
	if out.Questions == nil {
		return nil, &SchemaError{Reason: "missing questions section"}
	}

	if got := len(out.Flashcards.Cards); got != count {
		return nil, &SchemaError{Reason: fmt.Sprintf("expected %d flashcards, got %d", count, got)}
	}
	if got := len(out.Questions.Questions); got != count {
		return nil, &SchemaError{Reason: fmt.Sprintf("expected %d questions, got %d", count, got)}
	}

	result := &Result{
		Flashcards: make([]Flashcard, 0, count),
		Questions:  make([]Question, 0, count),
	}

	for _, card := range out.Flashcards.Cards {
		result.Flashcards = append(result.Flashcards, Flashcard{
			Term:       strings.TrimSpace(card.Term),
			Definition: strings.TrimSpace(card.Definition),
		})
	}

	for i, q := range out.Questions.Questions {
		question, err := mapQuestion(i, q)
		if err != nil {
			return nil, err
		}
		result.Questions = append(result.Questions, question)
	}

	return result, nil
}

// mapQuestion converts a parsed question into the fixed 4-option shape,
// scanning the correct attribute for the flagged answer.
func mapQuestion(index int, q xmlQuestion) (Question, error) {
	if got := len(q.Options); got != 4 {
		return Question{}, &SchemaError{Reason: fmt.Sprintf("question %d has %d options, expected 4", index+1, got)}
	}

	question := Question{
		Prompt:             strings.TrimSpace(q.Prompt),
		CorrectOptionIndex: -1,
	}

	for i, opt := range q.Options {
		question.Options[i] = strings.TrimSpace(opt.Text)
		if question.CorrectOptionIndex == -1 && strings.TrimSpace(opt.Correct) == "true" {
			question.CorrectOptionIndex = i
		}
	}

	// No flagged option means the reply is malformed and the attempt is
	// retried; a partial result is never returned.
	if question.CorrectOptionIndex == -1 {
		return Question{}, &SchemaError{Reason: fmt.Sprintf("question %d has no option flagged correct", index+1)}
	}

	return question, nil
}
