package model

import "time"

// Vote records one account's answer to one question. A ballot is the set of
// votes an account casts for a whole poll; each account gets at most one vote
// per question.
type Vote struct {
	ID         string    `json:"id"`
	PollID     string    `json:"poll_id"`
	QuestionID string    `json:"question_id"`
	OptionID   string    `json:"option_id"`
	AccountID  string    `json:"account_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// OptionCount is a per-option tally used in poll results.
type OptionCount struct {
	QuestionID string `json:"question_id"`
	OptionID   string `json:"option_id"`
	Count      int    `json:"count"`
}
