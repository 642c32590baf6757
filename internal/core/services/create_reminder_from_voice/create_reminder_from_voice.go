package createreminderfromvoice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
	"voiceremind/internal/core/domain/bot"
	e "voiceremind/internal/core/domain/errors"
	"voiceremind/internal/core/domain/logging"
	"voiceremind/internal/core/domain/reminder"
	"voiceremind/internal/core/domain/user"
	"voiceremind/internal/core/domain/voice"
	"voiceremind/internal/core/services"
)

const (
	ConfirmationReply = "Reminder set for %s: %s"
	ApologyReply      = "Sorry, I couldn't understand the event details. Please try again."
	FailureReply      = "Sorry, something went wrong. Please try again later."
)

type Input struct {
	UserID     user.ID
	MessageID  bot.MessageID
	ReplyToken bot.ReplyToken
}

func (i Input) GetRateLimitKey() string {
	return fmt.Sprintf("create_reminder_from_voice::%s", i.UserID)
}

type Result struct {
	Reminder   reminder.Reminder
	Transcript string
	Ambiguous  bool
}

type service struct {
	log                logging.Logger
	contentFetcher     bot.MessageContentFetcher
	transcriber        voice.Transcriber
	eventExtractor     voice.EventExtractor
	reminderRepository reminder.ReminderRepository
	scheduler          reminder.Scheduler
	messageSender      bot.MessageSender
	now                func() time.Time
}

func New(
	log logging.Logger,
	contentFetcher bot.MessageContentFetcher,
	transcriber voice.Transcriber,
	eventExtractor voice.EventExtractor,
	reminderRepository reminder.ReminderRepository,
	scheduler reminder.Scheduler,
	messageSender bot.MessageSender,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if contentFetcher == nil {
		panic(e.NewNilArgumentError("contentFetcher"))
	}
	if transcriber == nil {
		panic(e.NewNilArgumentError("transcriber"))
	}
	if eventExtractor == nil {
		panic(e.NewNilArgumentError("eventExtractor"))
	}
	if reminderRepository == nil {
		panic(e.NewNilArgumentError("reminderRepository"))
	}
	if scheduler == nil {
		panic(e.NewNilArgumentError("scheduler"))
	}
	if messageSender == nil {
		panic(e.NewNilArgumentError("messageSender"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                log,
		contentFetcher:     contentFetcher,
		transcriber:        transcriber,
		eventExtractor:     eventExtractor,
		reminderRepository: reminderRepository,
		scheduler:          scheduler,
		messageSender:      messageSender,
		now:                now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	audio, err := s.contentFetcher.FetchMessageContent(ctx, input.MessageID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		s.reply(ctx, input.ReplyToken, FailureReply)
		return result, err
	}

	transcript, err := s.transcribe(ctx, audio)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		s.reply(ctx, input.ReplyToken, FailureReply)
		return result, err
	}
	result.Transcript = transcript

	completion, err := s.eventExtractor.ExtractEvent(ctx, transcript)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input), logging.Entry("transcript", transcript))
		s.reply(ctx, input.ReplyToken, FailureReply)
		return result, err
	}

	parsed, err := reminder.ParseExtraction(completion)
	if errors.Is(err, reminder.ErrExtractionAmbiguous) {
		s.log.Info(
			ctx,
			"Could not extract event details from voice message.",
			logging.Entry("userID", input.UserID),
			logging.Entry("completion", completion),
		)
		s.reply(ctx, input.ReplyToken, ApologyReply)
		result.Ambiguous = true
		return result, nil
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		s.reply(ctx, input.ReplyToken, FailureReply)
		return result, err
	}

	created, err := s.reminderRepository.Create(ctx, reminder.CreateInput{
		UserID:       input.UserID,
		EventTime:    parsed.At,
		EventContent: parsed.Content,
		CreatedAt:    s.now(),
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		s.reply(ctx, input.ReplyToken, FailureReply)
		return result, err
	}
	result.Reminder = created

	if err := s.scheduler.ScheduleReminder(ctx, created); err != nil {
		// The record is persisted, so delivery is recovered by the startup
		// scan rather than by asking the user to repeat the message.
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", created.ID))
	}

	s.log.Info(
		ctx,
		"Reminder has been created and scheduled.",
		logging.Entry("reminderID", created.ID),
		logging.Entry("userID", created.UserID),
		logging.Entry("eventTime", created.EventTime),
	)
	s.reply(ctx, input.ReplyToken, fmt.Sprintf(ConfirmationReply, parsed.RawTime, parsed.Content))
	return result, nil
}

// transcribe spools the audio bytes into a temporary file for the duration
// of the transcription call. The file is removed regardless of outcome.
func (s *service) transcribe(ctx context.Context, audio []byte) (transcript string, err error) {
	tempAudio, err := os.CreateTemp("", "voiceremind-*.m4a")
	if err != nil {
		return "", err
	}
	defer func() {
		tempAudio.Close()
		if removeErr := os.Remove(tempAudio.Name()); removeErr != nil {
			s.log.Warning(
				ctx,
				"Could not remove temporary audio file.",
				logging.Entry("path", tempAudio.Name()),
				logging.Entry("err", removeErr),
			)
		}
	}()

	if _, err := tempAudio.Write(audio); err != nil {
		return "", err
	}
	if _, err := tempAudio.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return s.transcriber.Transcribe(ctx, tempAudio, filepath.Base(tempAudio.Name()))
}

func (s *service) reply(ctx context.Context, token bot.ReplyToken, text string) {
	err := s.messageSender.ReplyMessage(ctx, bot.ReplyMessage{ReplyToken: token, Text: text})
	if err != nil {
		s.log.Error(
			ctx,
			"Could not reply to the user.",
			logging.Entry("replyToken", token),
			logging.Entry("text", text),
			logging.Entry("err", err),
		)
	}
}
