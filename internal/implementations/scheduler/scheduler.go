package scheduler

import (
	"context"
	"sync"
	"time"
	e "voiceremind/internal/core/domain/errors"
	"voiceremind/internal/core/domain/logging"
	"voiceremind/internal/core/domain/reminder"
	"voiceremind/internal/core/services"
	sendreminder "voiceremind/internal/core/services/send_reminder"
)

// InMemory is a process-local one-shot scheduler. Each registered reminder
// gets a timer that fires the send service at the reminder's event time.
// Jobs do not survive a restart; the startup recovery scan re-registers
// them from the reminder table.
type InMemory struct {
	log         logging.Logger
	sendService services.Service[sendreminder.Input, sendreminder.Result]
	now         func() time.Time

	lock    sync.Mutex
	timers  map[*time.Timer]struct{}
	stopped bool
}

func NewInMemory(
	log logging.Logger,
	sendService services.Service[sendreminder.Input, sendreminder.Result],
	now func() time.Time,
) *InMemory {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sendService == nil {
		panic(e.NewNilArgumentError("sendService"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &InMemory{
		log:         log,
		sendService: sendService,
		now:         now,
		timers:      make(map[*time.Timer]struct{}),
	}
}

var ErrSchedulerStopped = e.NewInvalidStateError("scheduler is stopped")

func (s *InMemory) ScheduleReminder(ctx context.Context, rem reminder.Reminder) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.stopped {
		return ErrSchedulerStopped
	}

	delay := rem.EventTime.Sub(s.now())
	if delay < 0 {
		delay = 0
	}

	// The callback reads the timer variable under the lock, which also
	// orders it after the assignment below even for a zero delay.
	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		s.lock.Lock()
		delete(s.timers, timer)
		s.lock.Unlock()
		s.fire(rem)
	})
	s.timers[timer] = struct{}{}

	s.log.Info(
		ctx,
		"Reminder job has been scheduled.",
		logging.Entry("reminderID", rem.ID),
		logging.Entry("eventTime", rem.EventTime),
		logging.Entry("delay", delay),
	)
	return nil
}

// Stop releases all pending timers. Already firing jobs run to completion.
func (s *InMemory) Stop() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.stopped = true
	for timer := range s.timers {
		timer.Stop()
		delete(s.timers, timer)
	}
}

func (s *InMemory) fire(rem reminder.Reminder) {
	ctx := context.Background()
	_, err := s.sendService.Run(ctx, sendreminder.Input{
		UserID:       rem.UserID,
		EventTime:    rem.EventTime,
		EventContent: rem.EventContent,
	})
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send reminder, service returned an error.",
			logging.Entry("reminderID", rem.ID),
			logging.Entry("err", err),
		)
	}
}
