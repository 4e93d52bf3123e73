package handler

import "strings"

// Input validation for activity creation lives in one place so every route
// applies the same rules: title, location and timeAndDate must be
// non-blank, maxAttendees must be present and an integer >= 1. An absent
// maxAttendees is a missing field; a present but non-positive one is an
// invalid value. The two cases produce different error messages.

const (
	msgMissingFields      = "Missing fields"
	msgInvalidMaxAttendee = "Maximum attendees must be greater than 0"
)

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// validateActivity returns an empty string when the input is valid,
// otherwise the error message to send back with a 400.
func validateActivity(title, location, timeAndDate string, maxAttendees *int) string {
	if blank(title) || blank(location) || blank(timeAndDate) || maxAttendees == nil {
		return msgMissingFields
	}
	if *maxAttendees < 1 {
		return msgInvalidMaxAttendee
	}
	return ""
}
