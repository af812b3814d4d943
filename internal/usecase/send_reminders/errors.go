package send_reminders

import "errors"

var (
	ErrInternal = errors.New("internal error")
)
