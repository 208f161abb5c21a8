package model

import "time"

// SummaryRecord is one persisted generate interaction. Transcript and
// GeneratedSummary are immutable once stored; EditedSummary is the user's
// working copy and, when present, supersedes GeneratedSummary for display
// and sharing only.
type SummaryRecord struct {
	ID               string    `json:"id"`
	Transcript       string    `json:"transcript"`
	CustomPrompt     string    `json:"custom_prompt"`
	GeneratedSummary string    `json:"generated_summary"`
	EditedSummary    *string   `json:"edited_summary"`
	ModelUsed        *string   `json:"model_used"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DisplaySummary returns the edited working copy when one exists,
// otherwise the generated text.
func (r SummaryRecord) DisplaySummary() string {
	if r.EditedSummary != nil && *r.EditedSummary != "" {
		return *r.EditedSummary
	}
	return r.GeneratedSummary
}
