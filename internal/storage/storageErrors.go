package storage

import "errors"

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrChoiceNotFound   = errors.New("choice not found")
	ErrAnswerNotFound   = errors.New("answer not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")
	ErrTokenNotFound    = errors.New("token not found")
)
