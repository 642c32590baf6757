package services

import (
	"voiceremind/internal/app/deps"
	drl "voiceremind/internal/core/domain/rate_limiter"
	"voiceremind/internal/core/services"
	createreminderfromvoice "voiceremind/internal/core/services/create_reminder_from_voice"
	ratelimiting "voiceremind/internal/core/services/rate_limiting"
	schedulependingreminders "voiceremind/internal/core/services/schedule_pending_reminders"
	sendreminder "voiceremind/internal/core/services/send_reminder"
	"voiceremind/internal/implementations/scheduler"
)

type Services struct {
	SendReminder             services.Service[sendreminder.Input, sendreminder.Result]
	CreateReminderFromVoice  services.Service[createreminderfromvoice.Input, createreminderfromvoice.Result]
	SchedulePendingReminders services.Service[schedulependingreminders.Input, schedulependingreminders.Result]

	// Scheduler is kept here so main can stop pending timers on shutdown.
	Scheduler *scheduler.InMemory
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SendReminder = sendreminder.New(
		deps.Logger,
		deps.ReminderRepository,
		deps.ReminderSender,
	)

	s.Scheduler = scheduler.NewInMemory(deps.Logger, s.SendReminder, deps.Now)

	s.CreateReminderFromVoice = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: deps.Config.CreateReminderHourlyLimit},
		createreminderfromvoice.New(
			deps.Logger,
			deps.MessageContentFetcher,
			deps.Transcriber,
			deps.EventExtractor,
			deps.ReminderRepository,
			s.Scheduler,
			deps.MessageSender,
			deps.Now,
		),
	)

	s.SchedulePendingReminders = schedulependingreminders.New(
		deps.Logger,
		deps.ReminderRepository,
		s.Scheduler,
		deps.Now,
	)

	return s
}
