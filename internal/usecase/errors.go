package usecase

import "errors"

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
	ErrEmptySelection = errors.New("empty selection")
	ErrBadHeader      = errors.New("invalid CSV header")
	ErrNoRows         = errors.New("no valid data found")
	ErrInternal       = errors.New("internal error")
)
