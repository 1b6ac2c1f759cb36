package entity

import "time"

type Question struct {
	ID           int64     `json:"id"`
	QuestionText string    `json:"question_text"`
	PubDate      time.Time `json:"pub_date"`
	CreatedBy    *int64    `json:"created_by"`
}

// WasPublishedRecently reports whether the question was published within
// the last day. Future publication dates do not count as recent.
func (q Question) WasPublishedRecently() bool {
	now := time.Now()
	return !q.PubDate.Before(now.Add(-24*time.Hour)) && !q.PubDate.After(now)
}
