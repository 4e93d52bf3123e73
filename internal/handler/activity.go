package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/linkedup/internal/queue"
	"github.com/iliyamo/linkedup/internal/repository"
	"github.com/iliyamo/linkedup/internal/service"
)

// ActivityHandler bundles the repository behind the activity feed
// endpoints.
type ActivityHandler struct {
	Activities *repository.ActivityRepo
}

func NewActivityHandler(a *repository.ActivityRepo) *ActivityHandler {
	if a == nil {
		panic("nil repository passed to NewActivityHandler")
	}
	return &ActivityHandler{Activities: a}
}

type createActivityReq struct {
	Title            string `json:"title"`
	Location         string `json:"location"`
	TimeAndDate      string `json:"timeAndDate"`
	MaxAttendees     *int   `json:"maxAttendees"`
	CurrentUserEmail string `json:"currentUserEmail"`
}

// CreateActivity handles POST /api/activity. The creator is built from
// currentUserEmail (or the "anonymous" placeholder when absent) and joins
// the new activity automatically.
func (h *ActivityHandler) CreateActivity(c echo.Context) error {
	var req createActivityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgMissingFields})
	}
	if msg := validateActivity(req.Title, req.Location, req.TimeAndDate, req.MaxAttendees); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	creator := repository.Participant{
		Username: strings.TrimSpace(req.CurrentUserEmail),
		Avatar:   placeholderAvatar,
	}
	if creator.Username == "" {
		creator.Username = "anonymous"
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	a, err := h.Activities.Create(ctx, req.Title, req.Location, req.TimeAndDate, *req.MaxAttendees, creator)
	if err != nil {
		c.Logger().Errorf("create activity: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}

	// Best effort: feed events are informational only.
	_ = service.PublishActivityEvent(ctx, queue.ActivityEvent{
		Type:       queue.EventActivityCreated,
		ActivityID: a.ID,
		Title:      a.Title,
		Username:   creator.Username,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, toActivityJSON(a))
}

// ListActivities handles GET /api/activity and returns the whole feed.
func (h *ActivityHandler) ListActivities(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	activities, err := h.Activities.List(ctx)
	if err != nil {
		c.Logger().Errorf("list activities: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}
	out := make([]activityJSON, 0, len(activities))
	for _, a := range activities {
		out = append(out, toActivityJSON(a))
	}
	return c.JSON(http.StatusOK, out)
}
