package entity

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrSlugTaken  = errors.New("slug already in use")
	ErrDuplicate  = errors.New("duplicate record")
	ErrInUse      = errors.New("record is still referenced")
	ErrValidation = errors.New("validation failed")
)
