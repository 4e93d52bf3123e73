package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/linkedup/internal/config"
	"github.com/iliyamo/linkedup/internal/repository"
	"github.com/iliyamo/linkedup/internal/utils"
)

// ProfileHandler bundles dependencies for the profile endpoints.
type ProfileHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewProfileHandler(cfg config.Config, u *repository.UserRepo) *ProfileHandler {
	if u == nil {
		panic("nil repository passed to NewProfileHandler")
	}
	return &ProfileHandler{Cfg: cfg, Users: u}
}

type patchProfileReq struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	NewPassword string `json:"newPassword"`
}

// GetProfile handles GET /api/profile?email=. It returns the display name
// and email. Credentials are stored hashed and are never part of any read
// response.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	email := strings.TrimSpace(c.QueryParam("email"))
	if email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		c.Logger().Errorf("get profile: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"username": u.Username.String,
		"email":    u.Email,
	})
}

// PatchProfile handles PATCH /api/profile. Whichever of username and
// newPassword carries a non-blank value is applied; a new password is
// bcrypt-hashed before it is stored.
func (h *ProfileHandler) PatchProfile(c echo.Context) error {
	var req patchProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email is required"})
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email is required"})
	}

	var username, passwordHash *string
	if v := strings.TrimSpace(req.Username); v != "" {
		username = &v
	}
	if strings.TrimSpace(req.NewPassword) != "" {
		// The password is hashed as sent; only blank-detection trims.
		hash, err := utils.HashPassword(req.NewPassword, h.Cfg.BcryptCost)
		if err != nil {
			c.Logger().Errorf("hash password: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
		}
		passwordHash = &hash
	}
	if username == nil && passwordHash == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Nothing to update"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	if err := h.Users.UpdateProfile(ctx, req.Email, username, passwordHash); err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		c.Logger().Errorf("patch profile: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
