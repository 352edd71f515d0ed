package store

import "errors"

var (
	ErrNotExist   = errors.New("item does not exist")
	ErrArgInvalid = errors.New("invalid argument")
)
