package model

import "time"

// Poll is a set of questions published to workspace members for voting.
// Unpublished polls are drafts: hidden from regular members and closed to
// ballots.
type Poll struct {
	ID          string     `json:"id"`
	WorkspaceID string     `json:"workspace_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Published   bool       `json:"published"`
	Questions   []Question `json:"questions,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Question is a single prompt within a poll with a fixed ordered option list.
type Question struct {
	ID       string   `json:"id"`
	PollID   string   `json:"poll_id"`
	Prompt   string   `json:"prompt"`
	Position int      `json:"position"`
	Options  []Option `json:"options,omitempty"`
}

// Option is one selectable answer for a question.
type Option struct {
	ID         string `json:"id"`
	QuestionID string `json:"question_id"`
	Label      string `json:"label"`
	Position   int    `json:"position"`
}
