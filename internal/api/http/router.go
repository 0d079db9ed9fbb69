package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-portal/internal/api/http/handlers"
	"github.com/spec-kit/job-portal/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Jobs           *handlers.JobsHandler
	Applications   *handlers.ApplicationsHandler
	Chat           *handlers.ChatHandler
	Notifications  *handlers.NotificationsHandler
	AdminAccounts  *handlers.AdminAccountsHandler
	AdminJobs      *handlers.AdminJobsHandler
	AuthMiddleware *auth.Middleware
	Gate           *auth.Gate
}

// RegisterRoutes wires HTTP routes. The edge gate runs before every route
// and owns admission control for the admin surface.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Gate.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	required := cfg.AuthMiddleware.Required()

	authGroup := app.Group("/api/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/admin/login", cfg.Auth.AdminLogin)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/me", required, cfg.Auth.Me)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)
	authGroup.Post("/password/change", required, cfg.Auth.ChangePassword)

	// Public job board.
	app.Get("/api/jobs", cfg.Jobs.Browse)
	app.Get("/api/jobs/:id", cfg.Jobs.Get)

	employer := app.Group("/api/employer", required)
	employer.Post("/jobs", cfg.Jobs.Create)
	employer.Get("/jobs", cfg.Jobs.ListMine)
	employer.Put("/jobs/:id", cfg.Jobs.Update)
	employer.Post("/jobs/:id/close", cfg.Jobs.Close)
	employer.Get("/jobs/:id/applications", cfg.Applications.ListForJob)
	employer.Patch("/applications/:id/status", cfg.Applications.UpdateStatus)

	candidate := app.Group("/api/candidate", required)
	candidate.Post("/applications", cfg.Applications.Apply)
	candidate.Get("/applications", cfg.Applications.ListMine)

	chat := app.Group("/api/chat", required)
	chat.Post("/conversations", cfg.Chat.StartConversation)
	chat.Get("/conversations", cfg.Chat.ListConversations)
	chat.Get("/conversations/:id/messages", cfg.Chat.ListMessages)
	chat.Post("/conversations/:id/messages", cfg.Chat.SendMessage)

	notifications := app.Group("/api/notifications", required)
	notifications.Get("/", cfg.Notifications.List)
	notifications.Post("/:id/read", cfg.Notifications.MarkRead)
	notifications.Post("/read-all", cfg.Notifications.MarkAllRead)

	// The gate has already verified token and role for this group; handlers
	// behind it still re-check the role themselves.
	admin := app.Group("/api/admin", required)
	admin.Get("/users", cfg.AdminAccounts.List)
	admin.Get("/users/:id", cfg.AdminAccounts.Get)
	admin.Patch("/users/:id/status", cfg.AdminAccounts.SetStatus)
	admin.Post("/users/:id/approve", cfg.AdminAccounts.ApproveEmployer)
	admin.Delete("/users/:id", cfg.AdminAccounts.Delete)
	admin.Get("/jobs/pending", cfg.AdminJobs.ListPending)
	admin.Post("/jobs/:id/approve", cfg.AdminJobs.Approve)
	admin.Post("/jobs/:id/reject", cfg.AdminJobs.Reject)
}
