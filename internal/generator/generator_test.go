package generator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"sportiq/internal/llm"
)

func newRequest() Request {
	return Request{
		Topic:      TopicRule,
		Concept:    "the infield fly rule",
		Difficulty: 1,
		Count:      3,
	}
}

func TestGenerateSuccessFirstAttempt(t *testing.T) {
	mock := &llm.MockClient{Script: []llm.MockResult{{Response: validPayload(3)}}}
	gen := New(mock, Config{Attempts: 3})

	result, err := gen.Generate(context.Background(), newRequest())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if mock.Calls != 1 {
		t.Errorf("calls = %d, want 1", mock.Calls)
	}
	if len(result.Flashcards) != 3 || len(result.Questions) != 3 {
		t.Errorf("result shape = %d/%d, want 3/3", len(result.Flashcards), len(result.Questions))
	}
}

func TestGenerateRetriesThenSucceeds(t *testing.T) {
	mock := &llm.MockClient{Script: []llm.MockResult{
		{Response: "not xml"},
		{Err: errors.New("rate limited")},
		{Response: validPayload(3)},
	}}
	gen := New(mock, Config{Attempts: 3})

	result, err := gen.Generate(context.Background(), newRequest())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if mock.Calls != 3 {
		t.Errorf("calls = %d, want 3", mock.Calls)
	}
	if len(result.Questions) != 3 {
		t.Errorf("questions = %d, want 3", len(result.Questions))
	}
}

func TestGenerateExhaustsAttempts(t *testing.T) {
	mock := &llm.MockClient{Script: llm.Repeat(llm.MockResult{Response: "garbage"}, 10)}
	gen := New(mock, Config{Attempts: 4})

	_, err := gen.Generate(context.Background(), newRequest())
	if err == nil {
		t.Fatal("Generate() error = nil, want ExhaustedError")
	}

	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("error = %v, want ExhaustedError", err)
	}
	if exhausted.Attempts != 4 {
		t.Errorf("attempts = %d, want 4", exhausted.Attempts)
	}
	// The retry bound is exact: no extra calls past the configured limit.
	if mock.Calls != 4 {
		t.Errorf("calls = %d, want 4", mock.Calls)
	}

	// Plain text parses as character data, so the last cause is a schema
	// failure for the missing sections.
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Errorf("ExhaustedError does not wrap the underlying cause: %v", err)
	}
}

func TestGenerateRejectsInvalidRequest(t *testing.T) {
	mock := &llm.MockClient{}
	gen := New(mock, Config{Attempts: 3})

	tests := []struct {
		name string
		req  Request
	}{
		{"unknown topic", Request{Topic: "stadium", Concept: "x", Difficulty: 1, Count: 3}},
		{"empty concept", Request{Topic: TopicTeam, Concept: "", Difficulty: 1, Count: 3}},
		{"difficulty out of range", Request{Topic: TopicTeam, Concept: "x", Difficulty: 3, Count: 3}},
		{"zero count", Request{Topic: TopicTeam, Concept: "x", Difficulty: 1, Count: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gen.Generate(context.Background(), tt.req)

			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("error = %v, want ValidationError", err)
			}
		})
	}

	// Validation failures never reach the collaborator.
	if mock.Calls != 0 {
		t.Errorf("calls = %d, want 0", mock.Calls)
	}
}

func TestGenerateStopsOnDeadContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := &llm.MockClient{Script: llm.Repeat(llm.MockResult{Response: "garbage"}, 10)}
	gen := New(mock, Config{Attempts: 5, AttemptTimeout: time.Second})

	_, err := gen.Generate(ctx, newRequest())
	if err == nil {
		t.Fatal("Generate() error = nil, want error")
	}
	if mock.Calls > 1 {
		t.Errorf("calls = %d, want at most 1 with a cancelled context", mock.Calls)
	}
}

func TestGenerateShufflePreservesCorrectAnswer(t *testing.T) {
	mock := &llm.MockClient{Script: llm.Repeat(llm.MockResult{Response: validPayload(3)}, 20)}
	gen := New(mock, Config{Attempts: 1})

	// Shuffling is random, so check the invariant over many runs: the
	// flagged answer text always sits at the correct index.
	for run := 0; run < 20; run++ {
		result, err := gen.Generate(context.Background(), newRequest())
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		for i, q := range result.Questions {
			answer := q.Options[q.CorrectOptionIndex]
			if !strings.HasPrefix(answer, "Right ") {
				t.Fatalf("run %d question %d: correct option %q is not the flagged answer", run, i, answer)
			}
		}
	}
}

func TestBuildPromptContents(t *testing.T) {
	prompt := buildPrompt(Request{
		Topic:      TopicPlayer,
		Concept:    "Shohei Ohtani",
		Difficulty: 2,
		Count:      5,
	})

	for _, want := range []string{
		"<topic>player</topic>",
		"<concept>Shohei Ohtani</concept>",
		"<difficulty>2</difficulty>",
		"<numFlashcards>5</numFlashcards>",
		`<option correct="true|false">`,
		"Create exactly 5 flashcards and 5 corresponding practice questions",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
