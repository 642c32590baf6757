package reminder

import (
	"time"
	e "voiceremind/internal/core/domain/errors"
	"voiceremind/internal/core/domain/user"
)

type ID int64

type Reminder struct {
	ID           ID
	UserID       user.ID
	EventTime    time.Time
	EventContent string
	IsSent       bool
	CreatedAt    time.Time
}

func (r *Reminder) Validate() error {
	if r.UserID == "" {
		return e.NewInvalidStateError("UserID must be set")
	}
	if r.EventTime.IsZero() {
		return e.NewInvalidStateError("EventTime must be set")
	}
	if r.EventContent == "" {
		return e.NewInvalidStateError("EventContent must be set")
	}
	return nil
}
