package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campusjobs/board/api/http/handlers"
	"github.com/campusjobs/board/pkg/identity"
	"github.com/campusjobs/board/pkg/security/jwt"
)

// Handlers bundles everything Register wires onto the Fiber app.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Health       *handlers.HealthHandler
	Jobs         *handlers.JobsHandler
	Moderation   *handlers.ModerationHandler
	Analytics    *handlers.AnalyticsHandler
	Tracking     *handlers.TrackingHandler
	Profile      *handlers.ProfileHandler
	Account      *handlers.AccountHandler
	Settings     *handlers.SettingsHandler
	Applications *handlers.ApplicationsHandler
}

// Register wires all HTTP routes onto the given Fiber app. Role checks
// happen once here via jwt.RequireRole instead of inside each handler.
func Register(app *fiber.App, h Handlers, authMW fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", h.Auth.Register)
	a.Post("/register-rep", h.Auth.RegisterRep)
	a.Post("/login", h.Auth.Login)
	a.Post("/password-reset", h.Auth.RequestPasswordReset)
	a.Put("/password", authMW, h.Auth.UpdatePassword)

	poster := jwt.RequireRole(identity.RoleFaculty, identity.RoleRep, identity.RoleAdmin)
	browser := jwt.RequireRole(identity.RoleStudent, identity.RoleStaff, identity.RoleAdmin)
	admin := jwt.RequireRole(identity.RoleAdmin)

	jobs := v1.Group("/jobs", authMW)
	// fixed paths before the :id wildcard
	jobs.Get("/mine", poster, h.Jobs.Mine)
	jobs.Post("/track-click", h.Tracking.TrackClick)
	jobs.Get("/", browser, h.Jobs.List)
	jobs.Post("/", poster, h.Jobs.Create)
	jobs.Get("/:id", h.Jobs.Get)
	jobs.Put("/:id", poster, h.Jobs.Update)
	jobs.Delete("/:id", poster, h.Jobs.Remove)
	jobs.Post("/:id/reactivate", poster, h.Jobs.Reactivate)
	jobs.Post("/:id/apply", jwt.RequireRole(identity.RoleStudent), h.Applications.Apply)
	jobs.Post("/:id/approve", admin, h.Moderation.Approve)
	jobs.Post("/:id/reject", admin, h.Moderation.Reject)

	adm := v1.Group("/admin", authMW, admin)
	adm.Get("/jobs", h.Moderation.All)
	adm.Get("/jobs/pending", h.Moderation.Pending)
	adm.Get("/settings", h.Settings.Get)
	adm.Patch("/settings", h.Settings.Patch)
	adm.Get("/analytics", h.Analytics.ForAll)

	fac := v1.Group("/faculty", authMW, jwt.RequireRole(identity.RoleFaculty, identity.RoleRep))
	fac.Get("/analytics", h.Analytics.ForOwner)
	fac.Get("/applications", h.Applications.ListForOwner)
	fac.Put("/applications/:id/status", h.Applications.UpdateStatus)

	prof := v1.Group("/profile", authMW)
	prof.Get("/", h.Profile.Get)
	prof.Put("/", h.Profile.Update)
	prof.Get("/preferences", jwt.RequireRole(identity.RoleStudent), h.Profile.GetPreferences)
	prof.Put("/preferences", jwt.RequireRole(identity.RoleStudent), h.Profile.SavePreferences)

	v1.Get("/applications/mine", authMW, jwt.RequireRole(identity.RoleStudent), h.Applications.Mine)
	v1.Delete("/account", authMW, h.Account.Delete)
}
