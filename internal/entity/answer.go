package entity

import "time"

// Answer links a user's selection to a choice.
type Answer struct {
	ID        int64     `json:"id"`
	ChoiceID  int64     `json:"choice"`
	UserID    int64     `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// ChoiceTally is one row of a question's results: a choice together with
// its denormalized vote counter.
type ChoiceTally struct {
	ChoiceID   int64  `json:"choice_id"`
	ChoiceText string `json:"choice_text"`
	Votes      int64  `json:"votes"`
}
