package users

import "errors"

var (
	ErrNotFound     = errors.New("users: user not found")
	ErrDuplicate    = errors.New("users: email already registered")
	ErrInvalidID    = errors.New("users: invalid user id")
	ErrStoreFailure = errors.New("users: store failure")
)
