// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by
// someone else, while ErrActivityFull signals that a join cannot
// proceed because the activity already has the maximum number of
// participants.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own, such as deleting an activity
// created by someone else. Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrActivityNotFound is returned when no activity matches the
// requested id. Handlers should translate this into an HTTP 404
// response.
var ErrActivityNotFound = errors.New("activity not found")

// ErrAlreadyJoined is returned when a user tries to join an
// activity they already participate in. The creator counts as a
// participant from the moment the activity is created.
var ErrAlreadyJoined = errors.New("already joined")

// ErrActivityFull is returned when a join would push the number of
// participants past the activity's max_attendees.
var ErrActivityFull = errors.New("activity full")
