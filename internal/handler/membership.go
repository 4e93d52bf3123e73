package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/linkedup/internal/queue"
	"github.com/iliyamo/linkedup/internal/repository"
	"github.com/iliyamo/linkedup/internal/service"
)

// MembershipHandler bundles the repository behind join, leave and delete.
type MembershipHandler struct {
	Activities *repository.ActivityRepo
}

func NewMembershipHandler(a *repository.ActivityRepo) *MembershipHandler {
	if a == nil {
		panic("nil repository passed to NewMembershipHandler")
	}
	return &MembershipHandler{Activities: a}
}

type membershipReq struct {
	ActivityID string `json:"activityId"`
	UserEmail  string `json:"userEmail"`
}

// parseMembership binds and validates the common join/leave/delete body.
// A malformed id is reported as not-found, matching how the original
// treated unparseable identifiers.
func parseMembership(c echo.Context) (id uint64, email string, errMsg string, status int) {
	var req membershipReq
	if err := c.Bind(&req); err != nil {
		return 0, "", "Activity ID and User Email required", http.StatusBadRequest
	}
	req.ActivityID = strings.TrimSpace(req.ActivityID)
	req.UserEmail = strings.TrimSpace(req.UserEmail)
	if req.ActivityID == "" || req.UserEmail == "" {
		return 0, "", "Activity ID and User Email required", http.StatusBadRequest
	}
	id, err := strconv.ParseUint(req.ActivityID, 10, 64)
	if err != nil || id == 0 {
		return 0, "", "Activity not found", http.StatusNotFound
	}
	return id, req.UserEmail, "", 0
}

// JoinActivity handles POST /api/join-activity. Duplicate-join and
// capacity checks happen inside the repository transaction, so the
// participants.length <= maxAttendees invariant holds even for concurrent
// joins on the same activity.
func (h *MembershipHandler) JoinActivity(c echo.Context) error {
	id, email, msg, status := parseMembership(c)
	if msg != "" {
		return c.JSON(status, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	a, err := h.Activities.Join(ctx, id, email, placeholderAvatar)
	if err != nil {
		switch err {
		case repository.ErrActivityNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Activity not found"})
		case repository.ErrAlreadyJoined:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Already joined this activity"})
		case repository.ErrActivityFull:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Activity is full"})
		}
		c.Logger().Errorf("join activity: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}

	_ = service.PublishActivityEvent(ctx, queue.ActivityEvent{
		Type:       queue.EventActivityJoined,
		ActivityID: a.ID,
		Title:      a.Title,
		Username:   email,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"message":  "Successfully joined activity",
		"activity": toActivityJSON(a),
	})
}

// LeaveActivity handles POST /api/leave-activity. Leaving an activity the
// user never joined is still a 200; the removal is a no-op.
func (h *MembershipHandler) LeaveActivity(c echo.Context) error {
	id, email, msg, status := parseMembership(c)
	if msg != "" {
		return c.JSON(status, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	a, err := h.Activities.Leave(ctx, id, email)
	if err != nil {
		if err == repository.ErrActivityNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Activity not found"})
		}
		c.Logger().Errorf("leave activity: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}

	_ = service.PublishActivityEvent(ctx, queue.ActivityEvent{
		Type:       queue.EventActivityLeft,
		ActivityID: a.ID,
		Title:      a.Title,
		Username:   email,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"message":  "Successfully left activity",
		"activity": toActivityJSON(a),
	})
}

// DeleteActivity handles POST /api/delete-activity. Only the creator may
// delete; participant rows cascade with the activity.
func (h *MembershipHandler) DeleteActivity(c echo.Context) error {
	id, email, msg, status := parseMembership(c)
	if msg != "" {
		return c.JSON(status, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	if err := h.Activities.Delete(ctx, id, email); err != nil {
		switch err {
		case repository.ErrActivityNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Activity not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "Only creator can delete activity"})
		}
		c.Logger().Errorf("delete activity: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}

	_ = service.PublishActivityEvent(ctx, queue.ActivityEvent{
		Type:       queue.EventActivityDeleted,
		ActivityID: id,
		Username:   email,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
