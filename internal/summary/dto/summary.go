package dto

import "time"

// ParseFileResponse is returned by POST /parse-file.
type ParseFileResponse struct {
	Text     string `json:"text"`
	Filename string `json:"filename"`
	FileType string `json:"fileType"`
	Length   int    `json:"length"`
}

// GenerateSummaryRequest is the body of POST /generate-summary.
type GenerateSummaryRequest struct {
	Transcript   string `json:"transcript"`
	CustomPrompt string `json:"customPrompt"`
}

// GenerateSummaryResponse carries Warning only when the placeholder was used.
type GenerateSummaryResponse struct {
	Summary   string `json:"summary"`
	SummaryID string `json:"summaryId"`
	Warning   string `json:"warning,omitempty"`
}

// ShareSummaryRequest is the body of POST /share-summary.
type ShareSummaryRequest struct {
	SummaryID string   `json:"summaryId"`
	Emails    []string `json:"emails"`
	Summary   string   `json:"summary"`
}

// ShareSummaryResponse is returned after a successful send.
type ShareSummaryResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SummaryResponse is returned by GET /api/summaries/:id.
type SummaryResponse struct {
	ID                 string    `json:"id"`
	OriginalTranscript string    `json:"originalTranscript"`
	CustomPrompt       string    `json:"customPrompt"`
	GeneratedSummary   string    `json:"generatedSummary"`
	EditedSummary      string    `json:"editedSummary,omitempty"`
	EmailsSent         []string  `json:"emailsSent"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
