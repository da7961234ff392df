package service

import "errors"

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidAnswer      = errors.New("answer out of range")
	ErrUnknownQuestion    = errors.New("unknown question")
	ErrInvalidSelection   = errors.New("invalid mastery selection")
	ErrMasteryNotSelected = errors.New("mastery selections not made")
	ErrProfileNotFound    = errors.New("profile not found")
)
