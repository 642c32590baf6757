package callback

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"voiceremind/internal/core/domain/logging"
	createreminderservice "voiceremind/internal/core/services/create_reminder_from_voice"

	"github.com/stretchr/testify/require"
)

const VALID_SIGNATURE = "valid-signature"

type stubSignatureValidator struct{}

func (v stubSignatureValidator) Validate(body []byte, signature string) bool {
	return signature == VALID_SIGNATURE
}

type stubCreateReminderService struct {
	inputs []createreminderservice.Input
	err    error
}

func (s *stubCreateReminderService) Run(
	ctx context.Context,
	input createreminderservice.Input,
) (createreminderservice.Result, error) {
	s.inputs = append(s.inputs, input)
	return createreminderservice.Result{}, s.err
}

func newHandler() (*Handler, *stubCreateReminderService) {
	service := &stubCreateReminderService{}
	handler := New(logging.NewFakeLogger(), stubSignatureValidator{}, service)
	return handler, service
}

func serve(handler *Handler, body string, signature string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(body))
	if signature != "" {
		request.Header.Set(SignatureHeader, signature)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

const audioEventBody = `{
	"events": [
		{
			"type": "message",
			"replyToken": "nHuyWiB7yP5Zw52FIkcQobQuGDXCTA",
			"source": {"type": "user", "userId": "U4af4980629abcdef"},
			"message": {"id": "444573844083572737", "type": "audio"}
		}
	]
}`

func TestAudioMessageEventDispatched(t *testing.T) {
	// Setup ---
	handler, service := newHandler()

	// Exercise ---
	recorder := serve(handler, audioEventBody, VALID_SIGNATURE)

	// Verify ---
	assert := require.New(t)
	assert.Equal(http.StatusOK, recorder.Code)
	assert.Equal("OK", recorder.Body.String())
	assert.Len(service.inputs, 1)
	assert.Equal("U4af4980629abcdef", string(service.inputs[0].UserID))
	assert.Equal("444573844083572737", string(service.inputs[0].MessageID))
	assert.Equal("nHuyWiB7yP5Zw52FIkcQobQuGDXCTA", string(service.inputs[0].ReplyToken))
}

func TestInvalidSignature(t *testing.T) {
	cases := []struct {
		id        string
		signature string
	}{
		{id: "missing header", signature: ""},
		{id: "wrong signature", signature: "tampered"},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			// Setup ---
			handler, service := newHandler()

			// Exercise ---
			recorder := serve(handler, audioEventBody, testcase.signature)

			// Verify ---
			assert := require.New(t)
			assert.Equal(http.StatusBadRequest, recorder.Code)
			assert.Len(service.inputs, 0)
		})
	}
}

func TestNonAudioEventsAreSkipped(t *testing.T) {
	cases := []struct {
		id   string
		body string
	}{
		{
			id: "text message",
			body: `{"events": [{"type": "message", "replyToken": "token",
				"source": {"type": "user", "userId": "U1"},
				"message": {"id": "1", "type": "text"}}]}`,
		},
		{
			id:   "follow event",
			body: `{"events": [{"type": "follow", "replyToken": "token", "source": {"type": "user", "userId": "U1"}}]}`,
		},
		{
			id:   "no events",
			body: `{"events": []}`,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			// Setup ---
			handler, service := newHandler()

			// Exercise ---
			recorder := serve(handler, testcase.body, VALID_SIGNATURE)

			// Verify ---
			assert := require.New(t)
			assert.Equal(http.StatusOK, recorder.Code)
			assert.Equal("OK", recorder.Body.String())
			assert.Len(service.inputs, 0)
		})
	}
}

func TestMalformedBodyStillAccepted(t *testing.T) {
	// Setup ---
	handler, service := newHandler()

	// Exercise ---
	recorder := serve(handler, "{not json", VALID_SIGNATURE)

	// Verify ---
	assert := require.New(t)
	assert.Equal(http.StatusOK, recorder.Code)
	assert.Len(service.inputs, 0)
}

func TestInvalidAudioEventIsNotDispatched(t *testing.T) {
	// Setup ---
	handler, service := newHandler()
	body := `{"events": [{"type": "message", "replyToken": "",
		"source": {"type": "user", "userId": "U1"},
		"message": {"id": "1", "type": "audio"}}]}`

	// Exercise ---
	recorder := serve(handler, body, VALID_SIGNATURE)

	// Verify ---
	assert := require.New(t)
	assert.Equal(http.StatusOK, recorder.Code)
	assert.Len(service.inputs, 0)
}

func TestServiceErrorStillAccepted(t *testing.T) {
	// Setup ---
	handler, service := newHandler()
	service.err = context.DeadlineExceeded

	// Exercise ---
	recorder := serve(handler, audioEventBody, VALID_SIGNATURE)

	// Verify ---
	assert := require.New(t)
	assert.Equal(http.StatusOK, recorder.Code)
	assert.Equal("OK", recorder.Body.String())
	assert.Len(service.inputs, 1)
}
