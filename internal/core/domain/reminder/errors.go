package reminder

import "errors"

var ErrReminderDoesNotExist = errors.New("reminder does not exist")
var ErrExtractionAmbiguous = errors.New("could not understand the event details")
