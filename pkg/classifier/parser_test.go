package classifier

import (
	"testing"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantTier   Tier
		wantMode   Mode
		wantReason string
	}{
		{
			name:       "clean JSON object",
			text:       `{"mode": "QA", "reason": "find author"}`,
			wantTier:   TierFullParse,
			wantMode:   ModeQA,
			wantReason: "find author",
		},
		{
			name:       "JSON wrapped in markdown fences",
			text:       "```json\n{\"mode\": \"SEARCH\", \"reason\": \"check current weather\"}\n```",
			wantTier:   TierFullParse,
			wantMode:   ModeSearch,
			wantReason: "check current weather",
		},
		{
			name:       "JSON embedded in prose",
			text:       `Sure, here is my verdict: {"mode": "BASIC", "reason": "summarize the file"} Hope that helps!`,
			wantTier:   TierFullParse,
			wantMode:   ModeBasic,
			wantReason: "summarize the file",
		},
		{
			name:       "truncated JSON recovers mode and partial reason",
			text:       `{"mode": "BASIC", "reason": "summar`,
			wantTier:   TierPartialRecovery,
			wantMode:   ModeBasic,
			wantReason: "summar",
		},
		{
			name:       "truncated JSON with mode only",
			text:       `{"mode": "QA"`,
			wantTier:   TierPartialRecovery,
			wantMode:   ModeQA,
			wantReason: "",
		},
		{
			name:       "lowercase mode tag outside JSON object",
			text:       `the verdict is "mode": "search" and "reason": "live prices"`,
			wantTier:   TierPartialRecovery,
			wantMode:   ModeSearch,
			wantReason: "live prices",
		},
		{
			name:     "no mode pattern anywhere",
			text:     "I think you should use vector search for this one.",
			wantTier: TierNoMatch,
		},
		{
			name:     "valid JSON with out-of-enum mode",
			text:     `{"mode": "MAYBE", "reason": "unsure"}`,
			wantTier: TierNoMatch,
		},
		{
			name:     "empty response",
			text:     "",
			wantTier: TierNoMatch,
		},
		{
			name:       "whitespace inside the mode tag",
			text:       `{"mode" : "QA" , "reason" : "lookup figures"}`,
			wantTier:   TierFullParse,
			wantMode:   ModeQA,
			wantReason: "lookup figures",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseResponse(tt.text)

			if got.Tier != tt.wantTier {
				t.Errorf("Tier = %v, want %v", got.Tier, tt.wantTier)
			}
			if got.Tier == TierNoMatch {
				return
			}
			if got.Mode != tt.wantMode {
				t.Errorf("Mode = %q, want %q", got.Mode, tt.wantMode)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", got.Reason, tt.wantReason)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in     string
		want   Mode
		wantOk bool
	}{
		{"QA", ModeQA, true},
		{"basic", ModeBasic, true},
		{" Search ", ModeSearch, true},
		{"WEB", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseMode(tt.in)
		if ok != tt.wantOk || got != tt.want {
			t.Errorf("ParseMode(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOk)
		}
	}
}
