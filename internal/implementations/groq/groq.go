package groq

import (
	"context"
	"fmt"
	"io"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const DefaultBaseURL = "https://api.groq.com/openai/v1"
const DefaultTranscriptionModel = "whisper-large-v3"
const DefaultExtractionModel = "llama3-8b-8192"

const systemPrompt = "You are a helpful assistant that extracts event information."
const extractionPromptTemplate = "Extract the event time and content from this text: %s. " +
	"Format the response as two lines: first line is the event time in 'HH:MM YYYY-MM-DD' format, " +
	"second line is the event content."

// Client implements transcription and event extraction over Groq's
// OpenAI-compatible API.
type Client struct {
	client             openai.Client
	transcriptionModel string
	extractionModel    string
}

func New(apiKey string, baseURL string, transcriptionModel string, extractionModel string) *Client {
	if apiKey == "" {
		panic("apiKey must not be empty")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if transcriptionModel == "" {
		transcriptionModel = DefaultTranscriptionModel
	}
	if extractionModel == "" {
		extractionModel = DefaultExtractionModel
	}
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
	)
	return &Client{
		client:             client,
		transcriptionModel: transcriptionModel,
		extractionModel:    extractionModel,
	}
}

func (c *Client) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	transcription, err := c.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:           openai.File(audio, filename, "audio/m4a"),
		Model:          openai.AudioModel(c.transcriptionModel),
		ResponseFormat: openai.AudioResponseFormatJSON,
	})
	if err != nil {
		return "", fmt.Errorf("transcribe audio: %w", err)
	}
	return transcription.Text, nil
}

func (c *Client) ExtractEvent(ctx context.Context, transcript string) (string, error) {
	prompt := fmt.Sprintf(extractionPromptTemplate, transcript)
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.extractionModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		MaxTokens: openai.Int(200),
	})
	if err != nil {
		return "", fmt.Errorf("extract event: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no completion received for transcript %q", transcript)
	}
	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
