package classifier

import (
	"context"
	"log"

	"ai-moderouter-be/pkg/llm"
)

// Low temperature for consistent verdicts; generous output cap so the JSON
// is rarely truncated mid-object.
const (
	classifyTemperature = 0.1
	classifyMaxTokens   = 1024
)

// Fallback reasons when the backend is unavailable or unparseable.
const (
	fallbackReasonSelection   = "selection present - default to retrieval"
	fallbackReasonNoSelection = "default to chat"
)

// Result is the intermediate {mode, reason} pair handed back to the decision
// engine, which applies its own invariant pass on top.
type Result struct {
	Mode   Mode
	Reason string
}

// Classifier asks the text-completion backend which mode fits a query and
// parses a best-effort verdict out of the free-text reply. It never returns
// an error: every failure resolves to a deterministic fallback.
type Classifier struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

// NewClassifier creates a classifier over the given backend. A nil provider
// is valid and puts the classifier in permanent fallback mode.
func NewClassifier(provider llm.LLMProvider, logger *log.Logger) *Classifier {
	return &Classifier{
		provider: provider,
		logger:   logger,
	}
}

// Classify resolves the candidate mode for a query. With a selection the
// candidates are {QA, BASIC}; without one they are {SEARCH, BASIC}.
func (c *Classifier) Classify(ctx context.Context, query string, hasSelection bool, selectionDesc string) Result {
	if c.provider == nil {
		c.logger.Printf("[CLASSIFIER] Backend not available, using fallback")
		return c.fallback(hasSelection)
	}

	target := selectionTarget(selectionDesc)

	var prompt string
	if hasSelection {
		prompt = buildSelectionPrompt(query, selectionDesc, target)
	} else {
		prompt = buildNoSelectionPrompt(query)
	}

	c.logger.Printf("[CLASSIFIER] Calling backend, prompt length: %d", len(prompt))
	response, err := c.provider.Generate(ctx, prompt,
		llm.WithTemperature(classifyTemperature),
		llm.WithMaxTokens(classifyMaxTokens),
	)
	if err != nil {
		c.logger.Printf("[CLASSIFIER] Backend call failed: %v", err)
		return c.fallback(hasSelection)
	}

	parsed := ParseResponse(response)
	c.logger.Printf("[CLASSIFIER] Parse tier: %s, mode: %s", parsed.Tier, parsed.Mode)
	if parsed.Tier == TierNoMatch {
		c.logger.Printf("[CLASSIFIER] No mode tag in response: %s", truncate(response, 200))
		return c.fallback(hasSelection)
	}

	mode := parsed.Mode
	reason := parsed.Reason
	if reason == "" {
		reason = defaultReason(mode, hasSelection, target)
	}

	// Safety net; the decision engine re-checks these independently.
	if hasSelection && mode == ModeSearch {
		mode = ModeQA
		reason = defaultReason(ModeQA, hasSelection, target)
	}
	if !hasSelection && mode == ModeQA {
		mode = ModeBasic
		reason = defaultReason(ModeBasic, hasSelection, target)
	}

	return Result{Mode: mode, Reason: reason}
}

// fallback is the deterministic verdict used whenever the backend cannot be
// asked or its reply cannot be parsed.
func (c *Classifier) fallback(hasSelection bool) Result {
	if hasSelection {
		return Result{Mode: ModeQA, Reason: fallbackReasonSelection}
	}
	return Result{Mode: ModeBasic, Reason: fallbackReasonNoSelection}
}

// defaultReason synthesizes a justification when the reply carried a mode
// but no recoverable reason.
func defaultReason(mode Mode, hasSelection bool, target string) string {
	switch mode {
	case ModeQA:
		return "searching " + target
	case ModeSearch:
		return "searching the web"
	case ModeBasic:
		if hasSelection {
			return "analyzing " + target
		}
		return "answering in chat"
	}
	return "handling request"
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
