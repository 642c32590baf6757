package voice

import (
	"context"
	"io"
	"sync"
)

type TestTranscriber struct {
	Transcript      string
	Error           error
	TranscribedData [][]byte
	lock            sync.Mutex
}

func NewTestTranscriber(transcript string) *TestTranscriber {
	return &TestTranscriber{Transcript: transcript}
}

func (t *TestTranscriber) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	if t.Error != nil {
		return "", t.Error
	}
	data, err := io.ReadAll(audio)
	if err != nil {
		return "", err
	}
	t.lock.Lock()
	defer t.lock.Unlock()
	t.TranscribedData = append(t.TranscribedData, data)
	return t.Transcript, nil
}

type TestEventExtractor struct {
	Completion    string
	Error         error
	ExtractedFrom []string
	lock          sync.Mutex
}

func NewTestEventExtractor(completion string) *TestEventExtractor {
	return &TestEventExtractor{Completion: completion}
}

func (e *TestEventExtractor) ExtractEvent(ctx context.Context, transcript string) (string, error) {
	if e.Error != nil {
		return "", e.Error
	}
	e.lock.Lock()
	defer e.lock.Unlock()
	e.ExtractedFrom = append(e.ExtractedFrom, transcript)
	return e.Completion, nil
}
