package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:8000/api"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func detect(label string, payload map[string]interface{}) {
	color.Yellow("\n%s", label)
	resp, body, err := sendRequest("POST", "/qr/detect-mode", payload)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var parsed map[string]interface{}
	json.Unmarshal(body, &parsed)
	prettyPrint(parsed)
}

func main() {
	color.Cyan("🚀 Starting Mode Detection API Test\n")

	// 1. No selection, everyday question -> expect BASIC
	detect("[1] Casual chat, no selection (expect BASIC)", map[string]interface{}{
		"query": "Explain the difference between a slice and an array in Go",
	})

	// 2. No selection, time-sensitive question -> expect SEARCH
	detect("[2] Weather query, no selection (expect SEARCH)", map[string]interface{}{
		"query": "What's the weather in Jakarta today?",
	})

	// 3. Small file selected, document question -> expect QA
	detect("[3] Small file, document question (expect QA)", map[string]interface{}{
		"query": "Who is the author mentioned in chapter 2?",
		"selectedFiles": []map[string]interface{}{
			{"id": "f1", "name": "thesis.pdf", "tokenSize": 12000},
		},
	})

	// 4. Small file selected, casual question -> expect BASIC
	detect("[4] Small file, casual question (expect BASIC)", map[string]interface{}{
		"query": "Thanks, that was helpful!",
		"selectedFiles": []map[string]interface{}{
			{"id": "f1", "name": "thesis.pdf", "tokenSize": 12000},
		},
	})

	// 5. Oversized selection -> forced QA without any LLM call
	detect("[5] Oversized selection (expect forced QA, confidence 0.95)", map[string]interface{}{
		"query":      "Summarize everything",
		"tokenLimit": 980000,
		"selectedFiles": []map[string]interface{}{
			{"id": "f1", "name": "corpus.txt", "tokenSize": 900000},
		},
	})

	// 6. Bare ids, size unknown -> forced QA (worst case)
	detect("[6] Bare file ids, unknown size (expect forced QA)", map[string]interface{}{
		"query":           "What does this say?",
		"selectedFileIds": []string{"f1", "f2"},
	})

	// 7. Selection + search-shaped query -> must stay QA, never SEARCH
	detect("[7] Search-shaped query with selection (expect QA)", map[string]interface{}{
		"query": "Find the latest news about this topic",
		"selectedDatastores": []map[string]interface{}{
			{"id": "d1", "name": "Research", "totalTokenSize": 5000},
		},
	})

	// 8. Validation: empty query -> 400
	detect("[8] Empty query (expect 400)", map[string]interface{}{
		"query": "",
	})

	color.Cyan("\n✅ Done")
}
