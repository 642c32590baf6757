package reminder

import "context"

// Scheduler registers a one-shot job that fires at the reminder's event time.
type Scheduler interface {
	ScheduleReminder(ctx context.Context, rem Reminder) error
}
