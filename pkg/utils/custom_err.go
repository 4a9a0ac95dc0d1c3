package utils

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrQuestionNotFound = errors.New("question not found")
	ErrNoResults        = errors.New("no results stored")
	ErrStorageError     = errors.New("storage error")
	ErrFortuneRejected  = errors.New("fortune rejected by validator")
)
