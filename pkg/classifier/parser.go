package classifier

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Tier tags how much of the model reply could be recovered.
type Tier int

const (
	// TierFullParse means the reply contained a well-formed JSON object.
	TierFullParse Tier = iota
	// TierPartialRecovery means the JSON was malformed or truncated but a
	// mode tag (and possibly a reason fragment) was still recoverable.
	TierPartialRecovery
	// TierNoMatch means no mode tag was found anywhere in the reply.
	TierNoMatch
)

func (t Tier) String() string {
	switch t {
	case TierFullParse:
		return "FULL_PARSE"
	case TierPartialRecovery:
		return "PARTIAL_RECOVERY"
	default:
		return "NO_MATCH"
	}
}

// ParseResult is the outcome of one parsing attempt.
type ParseResult struct {
	Tier   Tier
	Mode   Mode
	Reason string
}

var (
	fencePattern = regexp.MustCompile("```(?:json)?\\s*")
	modePattern  = regexp.MustCompile(`(?i)"mode"\s*:\s*"(QA|BASIC|SEARCH)"`)
	// Open-ended on purpose: a truncated reply may never close the quote.
	reasonPattern = regexp.MustCompile(`"reason"\s*:\s*"([^"]*)`)
)

// ParseResponse extracts a mode verdict from free-text model output.
// It degrades through three stages: strict JSON parse of the largest
// brace-delimited substring, regex recovery of the mode and reason tags,
// and finally NoMatch. Markdown code fences are stripped up front.
func ParseResponse(text string) ParseResult {
	clean := strings.TrimSpace(fencePattern.ReplaceAllString(text, ""))

	if raw := extractJSON(clean); raw != "" {
		var payload struct {
			Mode   string `json:"mode"`
			Reason string `json:"reason"`
		}
		if err := json.Unmarshal([]byte(raw), &payload); err == nil {
			if mode, ok := ParseMode(payload.Mode); ok {
				return ParseResult{
					Tier:   TierFullParse,
					Mode:   mode,
					Reason: strings.TrimSpace(payload.Reason),
				}
			}
			// Parsed JSON carrying an out-of-enum mode falls through to the
			// regex stage, which only ever matches the three valid tags.
		}
	}

	m := modePattern.FindStringSubmatch(clean)
	if m == nil {
		return ParseResult{Tier: TierNoMatch}
	}
	mode, _ := ParseMode(m[1])

	result := ParseResult{Tier: TierPartialRecovery, Mode: mode}
	if r := reasonPattern.FindStringSubmatch(clean); r != nil {
		result.Reason = strings.TrimSpace(r[1])
	}
	return result
}

// extractJSON returns the largest brace-delimited substring, or "" when the
// text holds no complete object.
func extractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}

	return response[startIdx : endIdx+1]
}
