package bot

import (
	"context"
	"voiceremind/internal/core/domain/user"
)

// MessageID identifies a message delivered by the platform webhook.
type MessageID string

// ReplyToken is a one-time token bound to a webhook event; replies must
// quote it instead of addressing the user directly.
type ReplyToken string

type ReplyMessage struct {
	ReplyToken ReplyToken
	Text       string
}

type PushMessage struct {
	To   user.ID
	Text string
}

type MessageSender interface {
	ReplyMessage(ctx context.Context, m ReplyMessage) error
	PushMessage(ctx context.Context, m PushMessage) error
}

// MessageContentFetcher downloads the binary content of a platform message,
// e.g. the audio bytes of a voice message.
type MessageContentFetcher interface {
	FetchMessageContent(ctx context.Context, id MessageID) ([]byte, error)
}
