package createreminderfromvoice

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
	"voiceremind/internal/core/domain/bot"
	"voiceremind/internal/core/domain/logging"
	"voiceremind/internal/core/domain/reminder"
	"voiceremind/internal/core/domain/user"
	"voiceremind/internal/core/domain/voice"
	"voiceremind/internal/core/services"

	"github.com/stretchr/testify/require"
)

const USER_ID = user.ID("U4af4980629abcdef")
const MESSAGE_ID = bot.MessageID("444573844083572737")
const REPLY_TOKEN = bot.ReplyToken("nHuyWiB7yP5Zw52FIkcQobQuGDXCTA")
const TRANSCRIPT = "Meeting with Bob at 3pm tomorrow"

var Now = time.Date(2024, 6, 4, 10, 0, 0, 0, time.UTC)

type env struct {
	log            *logging.FakeLogger
	contentFetcher *bot.TestMessageContentFetcher
	transcriber    *voice.TestTranscriber
	eventExtractor *voice.TestEventExtractor
	reminderRepo   *reminder.TestReminderRepository
	scheduler      *reminder.TestReminderScheduler
	messageSender  *bot.TestMessageSender
}

func newEnv() *env {
	return &env{
		log:            logging.NewFakeLogger(),
		contentFetcher: bot.NewTestMessageContentFetcher([]byte("audio-bytes")),
		transcriber:    voice.NewTestTranscriber(TRANSCRIPT),
		eventExtractor: voice.NewTestEventExtractor("15:00 2024-06-05\nMeeting with Bob"),
		reminderRepo:   reminder.NewTestReminderRepository(),
		scheduler:      reminder.NewTestReminderScheduler(),
		messageSender:  bot.NewTestMessageSender(),
	}
}

func (e *env) service() services.Service[Input, Result] {
	return New(
		e.log,
		e.contentFetcher,
		e.transcriber,
		e.eventExtractor,
		e.reminderRepo,
		e.scheduler,
		e.messageSender,
		func() time.Time { return Now },
	)
}

func testInput() Input {
	return Input{UserID: USER_ID, MessageID: MESSAGE_ID, ReplyToken: REPLY_TOKEN}
}

func TestReminderCreatedFromVoiceMessage(t *testing.T) {
	// Setup ---
	env := newEnv()
	service := env.service()

	// Exercise ---
	result, err := service.Run(context.Background(), testInput())

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.False(result.Ambiguous)
	assert.Equal(TRANSCRIPT, result.Transcript)

	assert.Len(env.reminderRepo.CreatedWith, 1)
	created := env.reminderRepo.CreatedWith[0]
	assert.Equal(USER_ID, created.UserID)
	assert.True(created.EventTime.Equal(time.Date(2024, 6, 5, 15, 0, 0, 0, time.UTC)))
	assert.Equal("Meeting with Bob", created.EventContent)
	assert.True(created.CreatedAt.Equal(Now))
	assert.False(result.Reminder.IsSent)

	assert.Len(env.scheduler.Scheduled, 1)
	assert.True(env.scheduler.Scheduled[0].EventTime.Equal(time.Date(2024, 6, 5, 15, 0, 0, 0, time.UTC)))

	assert.Len(env.messageSender.Replies, 1)
	assert.Equal(REPLY_TOKEN, env.messageSender.Replies[0].ReplyToken)
	assert.Equal("Reminder set for 15:00 2024-06-05: Meeting with Bob", env.messageSender.Replies[0].Text)
}

func TestTranscriptPassedToExtractor(t *testing.T) {
	// Setup ---
	env := newEnv()
	service := env.service()

	// Exercise ---
	_, err := service.Run(context.Background(), testInput())

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.Equal([][]byte{[]byte("audio-bytes")}, env.transcriber.TranscribedData)
	assert.Equal([]string{TRANSCRIPT}, env.eventExtractor.ExtractedFrom)
}

func TestAmbiguousExtractionRepliesWithApology(t *testing.T) {
	cases := []struct {
		id         string
		completion string
	}{
		{id: "single line", completion: "15:00 2024-06-05"},
		{id: "three lines", completion: "15:00 2024-06-05\nMeeting with Bob\nBring the slides"},
		{id: "unparseable time", completion: "tomorrow afternoon\nMeeting with Bob"},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			// Setup ---
			env := newEnv()
			env.eventExtractor.Completion = testcase.completion
			service := env.service()

			// Exercise ---
			result, err := service.Run(context.Background(), testInput())

			// Verify ---
			assert := require.New(t)
			assert.Nil(err)
			assert.True(result.Ambiguous)
			assert.Len(env.reminderRepo.CreatedWith, 0)
			assert.Len(env.scheduler.Scheduled, 0)
			assert.Len(env.messageSender.Replies, 1)
			assert.Equal(ApologyReply, env.messageSender.Replies[0].Text)
		})
	}
}

func TestAdapterFailuresReplyWithFailureMessage(t *testing.T) {
	cases := []struct {
		id    string
		setup func(env *env, err error)
	}{
		{
			id:    "content fetching fails",
			setup: func(env *env, err error) { env.contentFetcher.Error = err },
		},
		{
			id:    "transcription fails",
			setup: func(env *env, err error) { env.transcriber.Error = err },
		},
		{
			id:    "extraction fails",
			setup: func(env *env, err error) { env.eventExtractor.Error = err },
		},
		{
			id:    "reminder creation fails",
			setup: func(env *env, err error) { env.reminderRepo.CreateError = err },
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			// Setup ---
			env := newEnv()
			expectedErr := fmt.Errorf("%s: %w", testcase.id, errors.New("test error"))
			testcase.setup(env, expectedErr)
			service := env.service()

			// Exercise ---
			_, err := service.Run(context.Background(), testInput())

			// Verify ---
			assert := require.New(t)
			assert.ErrorIs(err, expectedErr)
			assert.Len(env.scheduler.Scheduled, 0)
			assert.Len(env.messageSender.Replies, 1)
			assert.Equal(FailureReply, env.messageSender.Replies[0].Text)
		})
	}
}

func TestSchedulerErrorDoesNotFailTheRequest(t *testing.T) {
	// Setup ---
	env := newEnv()
	env.scheduler.Error = errors.New("test error")
	service := env.service()

	// Exercise ---
	result, err := service.Run(context.Background(), testInput())

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.Len(env.reminderRepo.CreatedWith, 1)
	assert.False(result.Ambiguous)
	assert.Len(env.messageSender.Replies, 1)
	assert.Equal("Reminder set for 15:00 2024-06-05: Meeting with Bob", env.messageSender.Replies[0].Text)
}

func TestReplyErrorIsLoggedOnly(t *testing.T) {
	// Setup ---
	env := newEnv()
	env.messageSender.ReplyError = errors.New("test error")
	service := env.service()

	// Exercise ---
	_, err := service.Run(context.Background(), testInput())

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.Len(env.reminderRepo.CreatedWith, 1)
	assert.Len(env.scheduler.Scheduled, 1)
}
