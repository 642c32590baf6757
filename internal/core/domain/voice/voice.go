package voice

import (
	"context"
	"io"
)

// Transcriber turns recorded speech into plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}

// EventExtractor asks a language model to extract event details from a
// transcript. It returns the raw model completion; parsing is up to the
// caller.
type EventExtractor interface {
	ExtractEvent(ctx context.Context, transcript string) (string, error)
}
