package llm

import (
	"context"
	"errors"
)

// ErrScriptExhausted is returned by MockClient when Complete is called more
// times than the script has entries.
var ErrScriptExhausted = errors.New("mock llm client: script exhausted")

// MockResult is one scripted outcome for MockClient.
type MockResult struct {
	Response string
	Err      error
}

// MockClient replays a scripted sequence of completion results. Each call
// to Complete consumes the next entry. Used by tests and by the "mock"
// provider in development.
type MockClient struct {
	Script []MockResult

	// Calls counts Complete invocations, including ones past the script.
	Calls int

	// Prompts records the prompt of every call.
	Prompts []string
}

func (m *MockClient) Complete(ctx context.Context, prompt string) (string, error) {
	m.Calls++
	m.Prompts = append(m.Prompts, prompt)
	if m.Calls > len(m.Script) {
		return "", ErrScriptExhausted
	}
	r := m.Script[m.Calls-1]
	return r.Response, r.Err
}

// Repeat builds a script that returns the same result n times.
func Repeat(r MockResult, n int) []MockResult {
	script := make([]MockResult, n)
	for i := range script {
		script[i] = r
	}
	return script
}
