package callback

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"voiceremind/internal/core/domain/bot"
	e "voiceremind/internal/core/domain/errors"
	"voiceremind/internal/core/domain/logging"
	"voiceremind/internal/core/domain/user"
	"voiceremind/internal/core/services"
	createreminderservice "voiceremind/internal/core/services/create_reminder_from_voice"
	"voiceremind/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

const SignatureHeader = "X-Line-Signature"

const eventTypeMessage = "message"
const messageTypeAudio = "audio"

// SignatureValidator authenticates a webhook request body against the
// platform signature header.
type SignatureValidator interface {
	Validate(body []byte, signature string) bool
}

type Handler struct {
	log                logging.Logger
	signatureValidator SignatureValidator
	createReminder     services.Service[createreminderservice.Input, createreminderservice.Result]
}

func New(
	log logging.Logger,
	signatureValidator SignatureValidator,
	createReminder services.Service[createreminderservice.Input, createreminderservice.Result],
) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if signatureValidator == nil {
		panic(e.NewNilArgumentError("signatureValidator"))
	}
	if createReminder == nil {
		panic(e.NewNilArgumentError("createReminder"))
	}
	return &Handler{
		log:                log,
		signatureValidator: signatureValidator,
		createReminder:     createReminder,
	}
}

type source struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

func (s source) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.UserID, validation.Required),
	)
}

type message struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

func (m message) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.ID, validation.Required),
	)
}

type event struct {
	Type       string  `json:"type"`
	ReplyToken string  `json:"replyToken"`
	Source     source  `json:"source"`
	Message    message `json:"message"`
}

func (e event) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.ReplyToken, validation.Required),
		validation.Field(&e.Source),
		validation.Field(&e.Message),
	)
}

func (e event) isAudioMessage() bool {
	return e.Type == eventTypeMessage && e.Message.Type == messageTypeAudio
}

type webhookRequest struct {
	Events []event `json:"events"`
}

func (r *webhookRequest) FromJSON(reader io.Reader) error {
	d := json.NewDecoder(reader)
	return d.Decode(r)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		response.RenderError(rw, "could not read request body", http.StatusBadRequest)
		return
	}
	if !h.signatureValidator.Validate(body, r.Header.Get(SignatureHeader)) {
		h.log.Warning(r.Context(), "Got webhook request with invalid signature.")
		response.RenderError(rw, "invalid signature", http.StatusBadRequest)
		return
	}

	// The platform only needs to know the webhook was accepted; handling
	// errors must not turn into webhook redeliveries.
	defer response.RenderText(rw, "OK", http.StatusOK)

	request := webhookRequest{}
	if err := request.FromJSON(bytes.NewReader(body)); err != nil {
		h.log.Error(r.Context(), "Could not decode webhook request.", logging.Entry("err", err))
		return
	}

	for _, event := range request.Events {
		h.handleEvent(r, event)
	}
}

func (h *Handler) handleEvent(r *http.Request, ev event) {
	if !ev.isAudioMessage() {
		h.log.Info(
			r.Context(),
			"Skip webhook event.",
			logging.Entry("eventType", ev.Type),
			logging.Entry("messageType", ev.Message.Type),
		)
		return
	}
	if err := ev.Validate(); err != nil {
		h.log.Error(r.Context(), "Got invalid webhook event.", logging.Entry("err", err))
		return
	}

	_, err := h.createReminder.Run(
		r.Context(),
		createreminderservice.Input{
			UserID:     user.ID(ev.Source.UserID),
			MessageID:  bot.MessageID(ev.Message.ID),
			ReplyToken: bot.ReplyToken(ev.ReplyToken),
		},
	)
	if err != nil {
		h.log.Error(
			r.Context(),
			"Could not handle audio message event.",
			logging.Entry("messageID", ev.Message.ID),
			logging.Entry("err", err),
		)
	}
}
