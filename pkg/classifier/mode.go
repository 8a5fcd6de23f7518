package classifier

import "strings"

// Mode is the routing verdict for a chat query.
type Mode string

const (
	ModeBasic  Mode = "BASIC"  // Direct chat (or chat with the document in context)
	ModeQA     Mode = "QA"     // Retrieval-augmented document search
	ModeSearch Mode = "SEARCH" // Live web search
)

// ParseMode maps a raw string onto the closed mode enumeration.
// Anything outside the three tags is a parse failure, not a near-miss.
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToUpper(strings.TrimSpace(s))) {
	case ModeBasic:
		return ModeBasic, true
	case ModeQA:
		return ModeQA, true
	case ModeSearch:
		return ModeSearch, true
	default:
		return "", false
	}
}

func (m Mode) String() string {
	return string(m)
}
