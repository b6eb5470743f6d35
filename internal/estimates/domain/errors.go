package domain

import "errors"

var (
	ErrInvalidUnit     = errors.New("unit is not one of the supported units")
	ErrItemNotFound    = errors.New("estimate item not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrEmptyPrompt     = errors.New("prompt is empty")
)
