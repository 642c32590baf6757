package bot

import (
	"context"
	"sync"
)

type TestMessageSender struct {
	Replies    []ReplyMessage
	Pushed     []PushMessage
	ReplyError error
	PushError  error
	lock       sync.Mutex
}

func NewTestMessageSender() *TestMessageSender {
	return &TestMessageSender{}
}

func (s *TestMessageSender) ReplyMessage(ctx context.Context, m ReplyMessage) error {
	if s.ReplyError != nil {
		return s.ReplyError
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Replies = append(s.Replies, m)
	return nil
}

func (s *TestMessageSender) PushMessage(ctx context.Context, m PushMessage) error {
	if s.PushError != nil {
		return s.PushError
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Pushed = append(s.Pushed, m)
	return nil
}

type TestMessageContentFetcher struct {
	Content     []byte
	Error       error
	FetchedWith []MessageID
	lock        sync.Mutex
}

func NewTestMessageContentFetcher(content []byte) *TestMessageContentFetcher {
	return &TestMessageContentFetcher{Content: content}
}

func (f *TestMessageContentFetcher) FetchMessageContent(ctx context.Context, id MessageID) ([]byte, error) {
	if f.Error != nil {
		return nil, f.Error
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	f.FetchedWith = append(f.FetchedWith, id)
	return f.Content, nil
}
