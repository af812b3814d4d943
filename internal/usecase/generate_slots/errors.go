package generate_slots

import "errors"

var (
	ErrGroundNotFound = errors.New("ground not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternal       = errors.New("internal error")
)
