package classifier

import (
	"fmt"
	"strings"
)

// selectionTarget picks the word used for the selection in generated reasons.
func selectionTarget(selectionDesc string) string {
	lower := strings.ToLower(selectionDesc)
	if strings.Contains(lower, "datastore") || strings.Contains(lower, "folder") {
		return "folder"
	}
	return "file"
}

// buildSelectionPrompt asks the model to choose between QA (specific,
// answerable-from-documents questions) and BASIC (whole-document synthesis).
func buildSelectionPrompt(query, selectionDesc, target string) string {
	if selectionDesc == "" {
		selectionDesc = "selection"
	}

	var prompt strings.Builder

	prompt.WriteString("You are a query analyzer for a RAG system. Analyze the user query and decide which mode to use.\n\n")

	prompt.WriteString("CONTEXT:\n")
	prompt.WriteString(fmt.Sprintf("- Selected: %s\n", target))
	prompt.WriteString(fmt.Sprintf("- Details: %s\n\n", selectionDesc))

	prompt.WriteString("MODES:\n")
	prompt.WriteString("1. **QA** (RAG/Vector Search): For specific questions answerable from the documents\n")
	prompt.WriteString("   - \"What does the document say about X?\"\n")
	prompt.WriteString("   - \"Find information on Y\"\n")
	prompt.WriteString("   - \"What data is there on Z?\"\n")
	prompt.WriteString("   - General questions about document contents\n\n")
	prompt.WriteString("2. **BASIC** (Chat with the document in context): ONLY for questions that need the ENTIRE document\n")
	prompt.WriteString("   - \"Summarize the document\"\n")
	prompt.WriteString("   - \"What are the main topics?\"\n")
	prompt.WriteString("   - \"Explain how all the chapters relate\"\n")
	prompt.WriteString("   - \"Give me an overview of the whole document\"\n\n")

	prompt.WriteString("IMPORTANT RULES:\n")
	prompt.WriteString("- Prefer QA (RAG is more efficient)\n")
	prompt.WriteString("- BASIC only when the ENTIRE document is explicitly needed (summary, overview)\n")
	prompt.WriteString("- When in doubt, choose QA\n\n")

	prompt.WriteString(fmt.Sprintf("USER QUERY: %q\n\n", query))

	prompt.WriteString("Answer ONLY as JSON:\n")
	prompt.WriteString("- \"mode\": \"QA\" or \"BASIC\"\n")
	prompt.WriteString(fmt.Sprintf("- \"reason\": short action description (max 8 words), refer to the %s when it fits\n\n", target))

	prompt.WriteString("Examples:\n")
	prompt.WriteString(fmt.Sprintf("- QA + \"Who is the author?\" -> \"searching the %s for the author\"\n", target))
	prompt.WriteString(fmt.Sprintf("- BASIC + \"Summarize it\" -> \"summarizing the whole %s\"\n\n", target))

	prompt.WriteString("{\"mode\": \"QA or BASIC\", \"reason\": \"context-aware action description\"}")

	return prompt.String()
}

// buildNoSelectionPrompt asks the model to choose between SEARCH (needs
// current/external information) and BASIC (everything else).
func buildNoSelectionPrompt(query string) string {
	var prompt strings.Builder

	prompt.WriteString("You are a query analyzer. Decide whether the query needs a web search.\n\n")

	prompt.WriteString("MODES:\n")
	prompt.WriteString("1. **SEARCH** (Web search): For current information from the internet\n")
	prompt.WriteString("   - Weather, news, stock prices\n")
	prompt.WriteString("   - \"Search the internet for...\"\n")
	prompt.WriteString("   - Current events, prices, opening hours\n")
	prompt.WriteString("   - Anything that needs current/external data\n\n")
	prompt.WriteString("2. **BASIC** (Normal chat): For everything else\n")
	prompt.WriteString("   - General questions, explanations\n")
	prompt.WriteString("   - Creative tasks (writing text, code)\n")
	prompt.WriteString("   - Knowledge that needs no internet\n\n")

	prompt.WriteString(fmt.Sprintf("USER QUERY: %q\n\n", query))

	prompt.WriteString("Answer ONLY as JSON:\n")
	prompt.WriteString("- \"mode\": \"SEARCH\" or \"BASIC\"\n")
	prompt.WriteString("- \"reason\": a short context-aware action description (max 8 words)\n\n")

	prompt.WriteString("Examples of good \"reason\" answers:\n")
	prompt.WriteString("- SEARCH + \"What's the weather?\" -> \"searching current weather data\"\n")
	prompt.WriteString("- SEARCH + \"News about Tesla\" -> \"searching current Tesla news\"\n")
	prompt.WriteString("- BASIC + \"Explain photosynthesis\" -> \"explaining the photosynthesis process\"\n")
	prompt.WriteString("- BASIC + \"Write a poem\" -> \"writing a creative poem\"\n\n")

	prompt.WriteString("{\"mode\": \"SEARCH or BASIC\", \"reason\": \"context-aware action description\"}")

	return prompt.String()
}
