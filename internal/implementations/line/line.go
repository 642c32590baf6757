package line

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
	"voiceremind/internal/core/domain/bot"
)

type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type replyRequest struct {
	ReplyToken string        `json:"replyToken"`
	Messages   []textMessage `json:"messages"`
}

type pushRequest struct {
	To       string        `json:"to"`
	Messages []textMessage `json:"messages"`
}

// Client talks to the LINE Messaging API. Message content (audio bytes)
// lives on a separate data endpoint, hence the second base URL.
type Client struct {
	httpClient         http.Client
	apiEndpoint        url.URL
	dataEndpoint       url.URL
	channelAccessToken string
}

func New(
	apiEndpoint url.URL,
	dataEndpoint url.URL,
	channelAccessToken string,
	timeout time.Duration,
) *Client {
	return &Client{
		apiEndpoint:        apiEndpoint,
		dataEndpoint:       dataEndpoint,
		channelAccessToken: channelAccessToken,
		httpClient:         http.Client{Timeout: timeout},
	}
}

func (c *Client) ReplyMessage(ctx context.Context, m bot.ReplyMessage) error {
	url := c.apiEndpoint.JoinPath("v2", "bot", "message", "reply")
	body := replyRequest{
		ReplyToken: string(m.ReplyToken),
		Messages:   []textMessage{{Type: "text", Text: m.Text}},
	}
	return c.post(ctx, url.String(), body)
}

func (c *Client) PushMessage(ctx context.Context, m bot.PushMessage) error {
	url := c.apiEndpoint.JoinPath("v2", "bot", "message", "push")
	body := pushRequest{
		To:       string(m.To),
		Messages: []textMessage{{Type: "text", Text: m.Text}},
	}
	return c.post(ctx, url.String(), body)
}

func (c *Client) FetchMessageContent(ctx context.Context, id bot.MessageID) ([]byte, error) {
	url := c.dataEndpoint.JoinPath("v2", "bot", "message", string(id), "content")
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url.String(), nil)
	if err != nil {
		return nil, err
	}
	request.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.channelAccessToken))
	resp, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("got unsuccessful response from LINE: %s", string(body))
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) post(ctx context.Context, url string, payload interface{}) error {
	var body bytes.Buffer
	encoder := json.NewEncoder(&body)
	if err := encoder.Encode(payload); err != nil {
		return err
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return err
	}
	request.Header.Add("content-type", "application/json")
	request.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.channelAccessToken))
	resp, err := c.httpClient.Do(request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		return fmt.Errorf("got unsuccessful response from LINE: %s", string(body))
	}
	return nil
}

// SignatureValidator checks webhook request signatures: LINE signs the raw
// request body with the channel secret (HMAC-SHA256, base64-encoded).
type SignatureValidator struct {
	channelSecret []byte
}

func NewSignatureValidator(channelSecret string) *SignatureValidator {
	return &SignatureValidator{channelSecret: []byte(channelSecret)}
}

func (v *SignatureValidator) Validate(body []byte, signature string) bool {
	decoded, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, v.channelSecret)
	mac.Write(body)
	return hmac.Equal(decoded, mac.Sum(nil))
}
