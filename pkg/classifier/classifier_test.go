package classifier

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"ai-moderouter-be/pkg/llm"
)

// stubProvider returns a scripted completion (or error) and records calls.
type stubProvider struct {
	response string
	err      error
	calls    int
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	s.calls++
	return s.response, s.err
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestClassifyNilProviderFallsBack(t *testing.T) {
	c := NewClassifier(nil, testLogger())

	got := c.Classify(context.Background(), "what is this?", true, "files: report.pdf")
	if got.Mode != ModeQA {
		t.Errorf("with selection: Mode = %q, want %q", got.Mode, ModeQA)
	}
	if got.Reason != fallbackReasonSelection {
		t.Errorf("with selection: Reason = %q, want %q", got.Reason, fallbackReasonSelection)
	}

	got = c.Classify(context.Background(), "write a poem", false, "")
	if got.Mode != ModeBasic {
		t.Errorf("no selection: Mode = %q, want %q", got.Mode, ModeBasic)
	}
	if got.Reason != fallbackReasonNoSelection {
		t.Errorf("no selection: Reason = %q, want %q", got.Reason, fallbackReasonNoSelection)
	}
}

func TestClassifyBackendErrorFallsBack(t *testing.T) {
	provider := &stubProvider{err: errors.New("connection refused")}
	c := NewClassifier(provider, testLogger())

	got := c.Classify(context.Background(), "anything", true, "files: notes.txt")
	if got.Mode != ModeQA || got.Reason != fallbackReasonSelection {
		t.Errorf("got %+v, want fallback QA verdict", got)
	}
}

func TestClassifyUnparseableFallsBack(t *testing.T) {
	provider := &stubProvider{response: "I would go with vector search here."}
	c := NewClassifier(provider, testLogger())

	got := c.Classify(context.Background(), "anything", false, "")
	if got.Mode != ModeBasic || got.Reason != fallbackReasonNoSelection {
		t.Errorf("got %+v, want fallback BASIC verdict", got)
	}
}

func TestClassifyParsesVerdict(t *testing.T) {
	provider := &stubProvider{response: `{"mode": "SEARCH", "reason": "check current weather"}`}
	c := NewClassifier(provider, testLogger())

	got := c.Classify(context.Background(), "What's the weather today?", false, "")
	if got.Mode != ModeSearch {
		t.Errorf("Mode = %q, want %q", got.Mode, ModeSearch)
	}
	if got.Reason != "check current weather" {
		t.Errorf("Reason = %q, want %q", got.Reason, "check current weather")
	}
	if provider.calls != 1 {
		t.Errorf("backend calls = %d, want 1", provider.calls)
	}
}

func TestClassifySearchWithSelectionCoerced(t *testing.T) {
	provider := &stubProvider{response: `{"mode": "SEARCH", "reason": "look it up online"}`}
	c := NewClassifier(provider, testLogger())

	got := c.Classify(context.Background(), "latest figures?", true, "datastores: Finance")
	if got.Mode != ModeQA {
		t.Errorf("Mode = %q, want %q (SEARCH is invalid with a selection)", got.Mode, ModeQA)
	}
	if got.Reason != "searching folder" {
		t.Errorf("Reason = %q, want synthesized folder reason", got.Reason)
	}
}

func TestClassifyQAWithoutSelectionCoerced(t *testing.T) {
	provider := &stubProvider{response: `{"mode": "QA", "reason": "search the docs"}`}
	c := NewClassifier(provider, testLogger())

	got := c.Classify(context.Background(), "explain monads", false, "")
	if got.Mode != ModeBasic {
		t.Errorf("Mode = %q, want %q (QA is invalid without a selection)", got.Mode, ModeBasic)
	}
}

func TestClassifySynthesizesMissingReason(t *testing.T) {
	tests := []struct {
		name          string
		response      string
		hasSelection  bool
		selectionDesc string
		wantMode      Mode
		wantReason    string
	}{
		{
			name:          "QA against a file selection",
			response:      `{"mode": "QA"`,
			hasSelection:  true,
			selectionDesc: "files: report.pdf",
			wantMode:      ModeQA,
			wantReason:    "searching file",
		},
		{
			name:          "BASIC against a datastore selection",
			response:      `{"mode": "BASIC"`,
			hasSelection:  true,
			selectionDesc: "datastores: Archive",
			wantMode:      ModeBasic,
			wantReason:    "analyzing folder",
		},
		{
			name:       "SEARCH without selection",
			response:   `{"mode": "SEARCH"`,
			wantMode:   ModeSearch,
			wantReason: "searching the web",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier(&stubProvider{response: tt.response}, testLogger())

			got := c.Classify(context.Background(), "query", tt.hasSelection, tt.selectionDesc)
			if got.Mode != tt.wantMode {
				t.Errorf("Mode = %q, want %q", got.Mode, tt.wantMode)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", got.Reason, tt.wantReason)
			}
		})
	}
}
