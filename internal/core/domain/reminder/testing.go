package reminder

import (
	"context"
	"sync"
)

type TestReminderRepository struct {
	CreateError     error
	FindUnsentError error
	MarkSentError   error
	ReadError       error
	Reminders       []Reminder
	CreatedWith     []CreateInput
	ReadWith        []ReadOptions
	nextID          ID
	lock            sync.Mutex
}

func NewTestReminderRepository() *TestReminderRepository {
	return &TestReminderRepository{}
}

func (r *TestReminderRepository) Create(ctx context.Context, input CreateInput) (rem Reminder, err error) {
	if r.CreateError != nil {
		return rem, r.CreateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.nextID++
	rem = Reminder{
		ID:           r.nextID,
		UserID:       input.UserID,
		EventTime:    input.EventTime,
		EventContent: input.EventContent,
		CreatedAt:    input.CreatedAt,
	}
	r.Reminders = append(r.Reminders, rem)
	r.CreatedWith = append(r.CreatedWith, input)
	return rem, nil
}

func (r *TestReminderRepository) FindUnsent(ctx context.Context, input FindUnsentInput) (rem Reminder, err error) {
	if r.FindUnsentError != nil {
		return rem, r.FindUnsentError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, candidate := range r.Reminders {
		if candidate.IsSent {
			continue
		}
		if candidate.UserID != input.UserID ||
			!candidate.EventTime.Equal(input.EventTime) ||
			candidate.EventContent != input.EventContent {
			continue
		}
		return candidate, nil
	}
	return rem, ErrReminderDoesNotExist
}

func (r *TestReminderRepository) MarkSent(ctx context.Context, id ID) (rem Reminder, err error) {
	if r.MarkSentError != nil {
		return rem, r.MarkSentError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, candidate := range r.Reminders {
		if candidate.ID != id || candidate.IsSent {
			continue
		}
		r.Reminders[ix].IsSent = true
		return r.Reminders[ix], nil
	}
	return rem, ErrReminderDoesNotExist
}

func (r *TestReminderRepository) Read(ctx context.Context, options ReadOptions) ([]Reminder, error) {
	if r.ReadError != nil {
		return nil, r.ReadError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.ReadWith = append(r.ReadWith, options)
	reminders := make([]Reminder, 0, len(r.Reminders))
	for _, candidate := range r.Reminders {
		if options.UserIDEquals.IsPresent && candidate.UserID != options.UserIDEquals.Value {
			continue
		}
		if options.IsSentEquals.IsPresent && candidate.IsSent != options.IsSentEquals.Value {
			continue
		}
		if options.EventTimeAfter.IsPresent && !candidate.EventTime.After(options.EventTimeAfter.Value) {
			continue
		}
		reminders = append(reminders, candidate)
	}
	if options.Limit.IsPresent && uint(len(reminders)) > options.Limit.Value {
		reminders = reminders[:options.Limit.Value]
	}
	return reminders, nil
}

type TestReminderScheduler struct {
	Scheduled []Reminder
	Error     error
	lock      sync.Mutex
}

func NewTestReminderScheduler() *TestReminderScheduler {
	return &TestReminderScheduler{}
}

func (s *TestReminderScheduler) ScheduleReminder(ctx context.Context, rem Reminder) error {
	if s.Error != nil {
		return s.Error
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Scheduled = append(s.Scheduled, rem)
	return nil
}

type TestReminderSender struct {
	Sent      []Reminder
	SentError error
	lock      sync.Mutex
}

func NewTestReminderSender() *TestReminderSender {
	return &TestReminderSender{}
}

func (s *TestReminderSender) SendReminder(ctx context.Context, rem Reminder) error {
	if s.SentError != nil {
		return s.SentError
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, rem)
	return nil
}
