package sendreminder

import (
	"context"
	"errors"
	"testing"
	"time"
	"voiceremind/internal/core/domain/logging"
	"voiceremind/internal/core/domain/reminder"
	"voiceremind/internal/core/domain/user"

	"github.com/stretchr/testify/require"
)

const USER_ID = user.ID("U4af4980629abcdef")
const EVENT_CONTENT = "Meeting with Bob"

var EventTime = time.Date(2024, 6, 5, 15, 0, 0, 0, time.UTC)

func testInput() Input {
	return Input{UserID: USER_ID, EventTime: EventTime, EventContent: EVENT_CONTENT}
}

func createReminder(t *testing.T, repo *reminder.TestReminderRepository) reminder.Reminder {
	t.Helper()
	rem, err := repo.Create(context.Background(), reminder.CreateInput{
		UserID:       USER_ID,
		EventTime:    EventTime,
		EventContent: EVENT_CONTENT,
		CreatedAt:    EventTime.Add(-24 * time.Hour),
	})
	require.Nil(t, err)
	return rem
}

func TestReminderSentAndMarked(t *testing.T) {
	// Setup ---
	log := logging.NewFakeLogger()
	repo := reminder.NewTestReminderRepository()
	sender := reminder.NewTestReminderSender()
	created := createReminder(t, repo)
	service := New(log, repo, sender)

	// Exercise ---
	result, err := service.Run(context.Background(), testInput())

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.False(result.Skipped)
	assert.True(result.Reminder.IsSent)
	assert.Equal(created.ID, result.Reminder.ID)
	assert.Len(sender.Sent, 1)
	assert.Equal(created.ID, sender.Sent[0].ID)
}

func TestSecondDeliveryIsNoOp(t *testing.T) {
	// Setup ---
	log := logging.NewFakeLogger()
	repo := reminder.NewTestReminderRepository()
	sender := reminder.NewTestReminderSender()
	createReminder(t, repo)
	service := New(log, repo, sender)

	// Exercise ---
	first, errFirst := service.Run(context.Background(), testInput())
	second, errSecond := service.Run(context.Background(), testInput())

	// Verify ---
	assert := require.New(t)
	assert.Nil(errFirst)
	assert.Nil(errSecond)
	assert.True(first.Reminder.IsSent)
	assert.True(second.Skipped)
	assert.Len(sender.Sent, 1)
}

func TestNoMatchingReminderIsNoOp(t *testing.T) {
	// Setup ---
	log := logging.NewFakeLogger()
	repo := reminder.NewTestReminderRepository()
	sender := reminder.NewTestReminderSender()
	service := New(log, repo, sender)

	// Exercise ---
	result, err := service.Run(context.Background(), testInput())

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.True(result.Skipped)
	assert.Len(sender.Sent, 0)
}

func TestPushFailureLeavesReminderUnsent(t *testing.T) {
	// Setup ---
	log := logging.NewFakeLogger()
	repo := reminder.NewTestReminderRepository()
	sender := reminder.NewTestReminderSender()
	sender.SentError = errors.New("test error")
	created := createReminder(t, repo)
	service := New(log, repo, sender)

	// Exercise ---
	_, err := service.Run(context.Background(), testInput())

	// Verify ---
	assert := require.New(t)
	assert.ErrorIs(err, sender.SentError)
	found, findErr := repo.FindUnsent(context.Background(), reminder.FindUnsentInput{
		UserID:       USER_ID,
		EventTime:    EventTime,
		EventContent: EVENT_CONTENT,
	})
	assert.Nil(findErr)
	assert.Equal(created.ID, found.ID)
	assert.False(found.IsSent)
}

func TestRepositoryErrorPropagates(t *testing.T) {
	// Setup ---
	log := logging.NewFakeLogger()
	repo := reminder.NewTestReminderRepository()
	repo.FindUnsentError = errors.New("test error")
	sender := reminder.NewTestReminderSender()
	service := New(log, repo, sender)

	// Exercise ---
	_, err := service.Run(context.Background(), testInput())

	// Verify ---
	assert := require.New(t)
	assert.ErrorIs(err, repo.FindUnsentError)
	assert.Len(sender.Sent, 0)
}
