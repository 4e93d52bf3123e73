package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/linkedup/internal/handler" // import the handlers that implement business logic
)

// RegisterRoutes registers routes that do not belong to the /api surface on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAPI registers the LinkedUp endpoints under the /api prefix.  The
// rate limiter applies to the whole group; the response cache wraps only
// the two list GETs, which are the endpoints the front end polls.  Both
// middlewares are pass-through no-ops when Redis is unavailable, so this
// wiring is safe regardless of environment.
func RegisterAPI(e *echo.Echo, u *handler.UserHandler, a *handler.ActivityHandler, m *handler.MembershipHandler, p *handler.ProfileHandler, cacheMW, rateMW echo.MiddlewareFunc) {
	api := e.Group("/api")
	api.Use(rateMW)

	// Account endpoints: sign-up, account listing and login.
	api.POST("/users", u.CreateUser)
	api.GET("/users", u.ListUsers, cacheMW)
	api.POST("/login", u.Login)

	// Activity feed: create and browse.
	api.POST("/activity", a.CreateActivity)
	api.GET("/activity", a.ListActivities, cacheMW)

	// Membership operations.  These are POSTs in the original client, so
	// they stay POSTs here.
	api.POST("/join-activity", m.JoinActivity)
	api.POST("/leave-activity", m.LeaveActivity)
	api.POST("/delete-activity", m.DeleteActivity)

	// Profile read and patch.
	api.GET("/profile", p.GetProfile)
	api.PATCH("/profile", p.PatchProfile)
}
