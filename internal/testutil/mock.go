// Package testutil provides test doubles shared across agentsim packages.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/tmc/langchaingo/llms"
)

// FakeModel is an llms.Model that returns a canned response.
// When Block is set, calls wait until their context is done.
type FakeModel struct {
	Response string
	Err      error
	Block    bool

	mu       sync.Mutex
	calls    int
	messages []llms.MessageContent
	options  llms.CallOptions
}

// NewFakeModel returns a model that answers every call with response.
func NewFakeModel(response string) *FakeModel {
	return &FakeModel{Response: response}
}

// GenerateContent records the request and returns the canned response.
func (f *FakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.mu.Lock()
	f.calls++
	f.messages = messages
	f.options = llms.CallOptions{}
	for _, opt := range options {
		opt(&f.options)
	}
	f.mu.Unlock()

	if f.Block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.Err != nil {
		return nil, f.Err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.Response}},
	}, nil
}

// Call implements the single-prompt form of llms.Model.
func (f *FakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

// Calls returns the number of GenerateContent invocations.
func (f *FakeModel) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// LastMessages returns the messages of the most recent call.
func (f *FakeModel) LastMessages() []llms.MessageContent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.messages
}

// LastOptions returns the call options of the most recent call.
func (f *FakeModel) LastOptions() llms.CallOptions {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.options
}

// SetupTestDir creates a temp directory, resolves symlinks (for macOS),
// changes to it, and registers cleanup to restore the original working directory.
// Returns the resolved temp directory path.
func SetupTestDir(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	if resolved, err := filepath.EvalSymlinks(tmpDir); err != nil {
		t.Logf("warning: could not resolve symlinks for temp dir: %v", err)
	} else {
		tmpDir = resolved
	}

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change to temp dir: %v", err)
	}
	t.Cleanup(func() {
		os.Chdir(originalWd)
	})

	return tmpDir
}
