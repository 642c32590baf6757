package sendreminder

import (
	"context"
	"errors"
	"time"
	e "voiceremind/internal/core/domain/errors"
	"voiceremind/internal/core/domain/logging"
	"voiceremind/internal/core/domain/reminder"
	"voiceremind/internal/core/domain/user"
	"voiceremind/internal/core/services"
)

// Input identifies the reminder by its value triple rather than by its
// identifier: delivery looks up the first unsent record matching the values
// scheduled earlier, which makes firing the same job twice a no-op.
type Input struct {
	UserID       user.ID
	EventTime    time.Time
	EventContent string
}

type Result struct {
	Reminder reminder.Reminder
	Skipped  bool
}

type service struct {
	log                logging.Logger
	reminderRepository reminder.ReminderRepository
	sender             reminder.Sender
}

func New(
	log logging.Logger,
	reminderRepository reminder.ReminderRepository,
	sender reminder.Sender,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if reminderRepository == nil {
		panic(e.NewNilArgumentError("reminderRepository"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	return &service{
		log:                log,
		reminderRepository: reminderRepository,
		sender:             sender,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	rem, err := s.reminderRepository.FindUnsent(ctx, reminder.FindUnsentInput{
		UserID:       input.UserID,
		EventTime:    input.EventTime,
		EventContent: input.EventContent,
	})
	if errors.Is(err, reminder.ErrReminderDoesNotExist) {
		s.log.Info(
			ctx,
			"No unsent reminder matches the fired job, skip sending.",
			logging.Entry("input", input),
		)
		result.Skipped = true
		return result, nil
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	if err := s.sender.SendReminder(ctx, rem); err != nil {
		// The record stays unsent. There is no retry or dead-letter here.
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID))
		return result, err
	}

	sent, err := s.reminderRepository.MarkSent(ctx, rem.ID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID))
		return result, err
	}

	s.log.Info(
		ctx,
		"Reminder has been sent.",
		logging.Entry("reminderID", sent.ID),
		logging.Entry("userID", sent.UserID),
	)
	result.Reminder = sent
	return result, nil
}
