// Package testutil holds hand-written mocks shared by the test suites.
package testutil

import (
	"context"
	"sync"

	"github.com/FrenchMajesty/classifier-eval/adapters/openai"
	"github.com/FrenchMajesty/classifier-eval/utils/disjoint_set"
)

// MockTextClassifier is a mock implementation of TextClassifier for testing
type MockTextClassifier struct {
	ClassifyFunc func(ctx context.Context, text string) (string, error)

	mu        sync.Mutex
	CallCount int
	LastText  string
}

func (m *MockTextClassifier) Classify(ctx context.Context, text string) (string, error) {
	m.mu.Lock()
	m.CallCount++
	m.LastText = text
	m.mu.Unlock()

	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, text)
	}

	// Default: echo the text back as its own label
	return text, nil
}

// Calls returns the recorded call count.
func (m *MockTextClassifier) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CallCount
}

// MockAliasPersistence is a mock implementation of AliasPersistence for testing
type MockAliasPersistence struct {
	LoadFunc func() (*disjoint_set.AliasSet, error)
	SaveFunc func(aliases *disjoint_set.AliasSet) error

	mu        sync.Mutex
	SaveCount int
	LastSaved *disjoint_set.AliasSet
}

func (m *MockAliasPersistence) Load() (*disjoint_set.AliasSet, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc()
	}

	// Default: return an empty alias table
	return disjoint_set.NewAliasSet(nil), nil
}

func (m *MockAliasPersistence) Save(aliases *disjoint_set.AliasSet) error {
	m.mu.Lock()
	m.SaveCount++
	m.LastSaved = aliases
	m.mu.Unlock()

	if m.SaveFunc != nil {
		return m.SaveFunc(aliases)
	}

	return nil
}

// MockLanguageModelClient is a mock implementation of the chat client for testing
type MockLanguageModelClient struct {
	ChatCompletionFunc func(ctx context.Context, req openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error)

	mu          sync.Mutex
	CallCount   int
	LastRequest openai.ChatCompletionRequest
}

func (m *MockLanguageModelClient) ChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
	m.mu.Lock()
	m.CallCount++
	m.LastRequest = req
	m.mu.Unlock()

	if m.ChatCompletionFunc != nil {
		return m.ChatCompletionFunc(ctx, req)
	}

	content := "unlabeled"
	return &openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatMessage{Role: openai.MessageRoleAssistant, Content: &content}},
		},
	}, nil
}
