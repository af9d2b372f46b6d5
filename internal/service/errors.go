package service

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalid        = errors.New("invalid input")
	ErrSelfAction     = errors.New("cannot target yourself")
	ErrAlreadyClaimed = errors.New("referral already claimed")
)
