package entity

type Choice struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"question"`
	ChoiceText string `json:"choice_text"`
	Votes      int64  `json:"votes"`
}
