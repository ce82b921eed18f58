package domain

import (
	"time"

	"github.com/lib/pq"
)

// Summary is one summarization request and its share history.
// OriginalTranscript, CustomPrompt and GeneratedSummary are set once at
// creation; EmailsSent only grows.
type Summary struct {
	ID                 string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OriginalTranscript string         `json:"originalTranscript" gorm:"type:text;not null"`
	CustomPrompt       string         `json:"customPrompt" gorm:"type:text;not null"`
	GeneratedSummary   string         `json:"generatedSummary" gorm:"type:text;not null"`
	EditedSummary      string         `json:"editedSummary,omitempty" gorm:"type:text"`
	EmailsSent         pq.StringArray `json:"emailsSent" gorm:"type:text[];not null;default:'{}'"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}

// TableName specifies the table name for GORM
func (Summary) TableName() string {
	return "summaries"
}

// LatestText is the edited text if the summary was ever shared, else the
// generated one.
func (s *Summary) LatestText() string {
	if s.EditedSummary != "" {
		return s.EditedSummary
	}
	return s.GeneratedSummary
}

// SummaryUpdate is the partial update applied on share.
type SummaryUpdate struct {
	EditedSummary *string
	AppendEmails  []string
}
