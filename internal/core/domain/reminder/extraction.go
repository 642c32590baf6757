package reminder

import (
	"strings"
	"time"

	"github.com/golang-module/carbon/v2"
)

// EventTimeLayout is the time format the extraction model is instructed
// to answer with ("HH:MM YYYY-MM-DD").
const EventTimeLayout = "15:04 2006-01-02"

// ParsedEvent is the structured result of a successful extraction.
// RawTime keeps the literal time string from the model output so that
// user-facing replies echo it verbatim.
type ParsedEvent struct {
	At      time.Time
	RawTime string
	Content string
}

// ParseExtraction parses the raw model completion into an event.
// The completion is accepted only if it consists of exactly two non-empty
// lines, the first of which matches EventTimeLayout. Anything else is an
// ambiguous extraction, which is a normal outcome rather than a failure.
func ParseExtraction(raw string) (parsed ParsedEvent, err error) {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	if len(lines) != 2 {
		return parsed, ErrExtractionAmbiguous
	}

	rawTime := strings.TrimSpace(lines[0])
	content := strings.TrimSpace(lines[1])
	if rawTime == "" || content == "" {
		return parsed, ErrExtractionAmbiguous
	}

	at := carbon.ParseByLayout(rawTime, EventTimeLayout, carbon.UTC)
	if at.Error != nil {
		return parsed, ErrExtractionAmbiguous
	}

	return ParsedEvent{At: at.Carbon2Time(), RawTime: rawTime, Content: content}, nil
}
