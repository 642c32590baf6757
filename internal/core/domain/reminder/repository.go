package reminder

import (
	"context"
	"time"
	c "voiceremind/internal/core/domain/common"
	"voiceremind/internal/core/domain/user"
)

type CreateInput struct {
	UserID       user.ID
	EventTime    time.Time
	EventContent string
	CreatedAt    time.Time
}

type FindUnsentInput struct {
	UserID       user.ID
	EventTime    time.Time
	EventContent string
}

type ReadOptions struct {
	UserIDEquals   c.Optional[user.ID]
	IsSentEquals   c.Optional[bool]
	EventTimeAfter c.Optional[time.Time]
	OrderBy        OrderBy
	Limit          c.Optional[uint]
}

type ReminderRepository interface {
	Create(ctx context.Context, input CreateInput) (Reminder, error)
	// FindUnsent returns the first unsent reminder matching all three fields,
	// or ErrReminderDoesNotExist.
	FindUnsent(ctx context.Context, input FindUnsentInput) (Reminder, error)
	// MarkSent flips IsSent to true. The transition happens at most once:
	// a reminder that is already sent yields ErrReminderDoesNotExist.
	MarkSent(ctx context.Context, id ID) (Reminder, error)
	Read(ctx context.Context, options ReadOptions) ([]Reminder, error)
}
