package reminder

import "context"

// Sender delivers a due reminder to its user.
type Sender interface {
	SendReminder(ctx context.Context, rem Reminder) error
}
