package schedulependingreminders

import (
	"context"
	"time"
	c "voiceremind/internal/core/domain/common"
	e "voiceremind/internal/core/domain/errors"
	"voiceremind/internal/core/domain/logging"
	"voiceremind/internal/core/domain/reminder"
	"voiceremind/internal/core/services"
)

type Input struct{}

type Result struct {
	ScheduledCount int
	PastDueCount   int
}

// service re-registers in-memory jobs for unsent reminders after a process
// restart. The scheduler itself keeps no state across restarts, so the
// reminder table is the source of truth at startup. Unsent reminders whose
// event time has already passed are left alone: there is no retroactive
// delivery.
type service struct {
	log                logging.Logger
	reminderRepository reminder.ReminderRepository
	scheduler          reminder.Scheduler
	now                func() time.Time
}

func New(
	log logging.Logger,
	reminderRepository reminder.ReminderRepository,
	scheduler reminder.Scheduler,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if reminderRepository == nil {
		panic(e.NewNilArgumentError("reminderRepository"))
	}
	if scheduler == nil {
		panic(e.NewNilArgumentError("scheduler"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                log,
		reminderRepository: reminderRepository,
		scheduler:          scheduler,
		now:                now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	unsent, err := s.reminderRepository.Read(ctx, reminder.ReadOptions{
		IsSentEquals: c.NewOptional(false, true),
		OrderBy:      reminder.OrderByEventTimeAsc,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	now := s.now()
	for _, rem := range unsent {
		if !rem.EventTime.After(now) {
			s.log.Warning(
				ctx,
				"Unsent reminder is past due, skip scheduling.",
				logging.Entry("reminderID", rem.ID),
				logging.Entry("eventTime", rem.EventTime),
			)
			result.PastDueCount++
			continue
		}
		if err := s.scheduler.ScheduleReminder(ctx, rem); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID))
			return result, err
		}
		result.ScheduledCount++
	}

	s.log.Info(
		ctx,
		"Pending reminders have been scheduled.",
		logging.Entry("scheduled", result.ScheduledCount),
		logging.Entry("pastDue", result.PastDueCount),
	)
	return result, nil
}
