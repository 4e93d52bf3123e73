package handler

import (
	"strconv"

	"github.com/iliyamo/linkedup/internal/repository"
)

// placeholderAvatar is the avatar assigned to every participant snapshot.
// Custom avatars never made it past the design stage of the front end.
const placeholderAvatar = "/lemon_drink.jpeg"

// dbTimeoutSeconds bounds every storage call made from a handler.
const dbTimeoutSeconds = 5

type participantJSON struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// activityJSON is the public shape of an activity. IDs go out as decimal
// strings and participants default to an empty array, never null.
type activityJSON struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Time         string            `json:"time"`
	Location     string            `json:"location"`
	Creator      participantJSON   `json:"creator"`
	MaxAttendees int               `json:"maxAttendees"`
	Participants []participantJSON `json:"participants"`
}

func toActivityJSON(a repository.Activity) activityJSON {
	parts := make([]participantJSON, 0, len(a.Participants))
	for _, p := range a.Participants {
		parts = append(parts, participantJSON{Username: p.Username, Avatar: p.Avatar})
	}
	return activityJSON{
		ID:           strconv.FormatUint(a.ID, 10),
		Title:        a.Title,
		Time:         a.Time,
		Location:     a.Location,
		Creator:      participantJSON{Username: a.Creator.Username, Avatar: a.Creator.Avatar},
		MaxAttendees: a.MaxAttendees,
		Participants: parts,
	}
}
