package model

import "time"

// Action records what tjl did with a worklog.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
)

// JournalEntry is a local record of a worklog submitted to Jira.
type JournalEntry struct {
	// WorklogID is Jira's worklog id; entries are keyed by it within a day.
	WorklogID string  `json:"worklog_id"`
	Issue     string  `json:"issue"`
	Server    string  `json:"server"`
	Action    Action  `json:"action"`
	Comment   *string `json:"comment"`
	// Started is when the work began, as sent to Jira.
	Started         time.Time `json:"started"`
	DurationSeconds int64     `json:"duration_seconds"`
	RecordedAt      time.Time `json:"recorded_at"`
}

// DayFile is the top-level structure stored in each daily JSON file.
type DayFile struct {
	Date    string         `json:"date"`
	Entries []JournalEntry `json:"entries"`
}
