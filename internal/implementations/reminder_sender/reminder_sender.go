package remindersender

import (
	"context"
	"fmt"
	"voiceremind/internal/core/domain/bot"
	e "voiceremind/internal/core/domain/errors"
	"voiceremind/internal/core/domain/reminder"
)

// PushSender delivers a due reminder as a push message on the messaging
// platform.
type PushSender struct {
	messageSender bot.MessageSender
}

func New(messageSender bot.MessageSender) *PushSender {
	if messageSender == nil {
		panic(e.NewNilArgumentError("messageSender"))
	}
	return &PushSender{messageSender: messageSender}
}

func (s *PushSender) SendReminder(ctx context.Context, rem reminder.Reminder) error {
	return s.messageSender.PushMessage(ctx, bot.PushMessage{
		To:   rem.UserID,
		Text: PushText(rem),
	})
}

func PushText(rem reminder.Reminder) string {
	return fmt.Sprintf(
		"Reminder: %s - %s",
		rem.EventTime.Format(reminder.EventTimeLayout),
		rem.EventContent,
	)
}
