package entity

import "errors"

var (
	ErrAuthRequired     = errors.New("authentication required")
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrHierarchyCycle   = errors.New("note hierarchy contains a cycle")
	ErrHierarchyTooDeep = errors.New("note hierarchy exceeds maximum depth")
	ErrAIUnavailable    = errors.New("failed to enhance text")
)
