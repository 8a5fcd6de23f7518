package dto

// HistoryMessage is one turn of the chat history.
type HistoryMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content"`
}

// SelectedFileInfo describes a selected file with its token size.
type SelectedFileInfo struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	TokenSize int    `json:"tokenSize"`
}

// SelectedDatastoreInfo describes a selected datastore with its total token size.
type SelectedDatastoreInfo struct {
	Id             string `json:"id"`
	Name           string `json:"name"`
	TotalTokenSize int    `json:"totalTokenSize"`
}

// DetectModeRequest is the body of POST /api/qr/detect-mode.
// Bare identifier lists and descriptor lists are independent: descriptors
// carry token sizes, the id lists do not.
type DetectModeRequest struct {
	Query              string                  `json:"query" validate:"required"`
	History            []HistoryMessage        `json:"history" validate:"omitempty,dive"`
	TokenLimit         int                     `json:"tokenLimit"`
	SelectedFolderId   string                  `json:"selectedFolderId"`
	SelectedFileIds    []string                `json:"selectedFileIds"`
	SelectedFiles      []SelectedFileInfo      `json:"selectedFiles"`
	SelectedDatastores []SelectedDatastoreInfo `json:"selectedDatastores"`
}

// DetectModeResponse is the routing verdict: "BASIC" | "QA" | "SEARCH".
type DetectModeResponse struct {
	Mode       string   `json:"mode"`
	Confidence *float64 `json:"confidence"`
	Reason     *string  `json:"reason"`
}
