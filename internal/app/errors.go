package app

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUsernameExists    = errors.New("username already exists")
	ErrEmailExists       = errors.New("email already exists")
	ErrInvalidCredential = errors.New("invalid username or password")

	ErrTranscriptNotFound = errors.New("transcript not found")
	ErrEmptyTranscript    = errors.New("document contains no transcript text")
	ErrDemoNotFound       = errors.New("demo transcript not found")
	ErrInvalidSection     = errors.New("section must be opening or qa")
	ErrInvalidQuestion    = errors.New("invalid question")
)
