package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/marketing-planner/internal/api/handlers"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	User      *handlers.UserHandler
	Settings  *handlers.SettingsHandler
	ApiKeys   *handlers.ApiKeyHandler
	Strategy  *handlers.StrategyHandler
	Outline   *handlers.OutlineHandler
	Calendar  *handlers.CalendarHandler
	Dashboard *handlers.DashboardHandler
}

// Register mounts the public login routes and the authenticated /api group.
func Register(app *fiber.App, h Handlers, auth fiber.Handler) {
	if h.Auth != nil {
		app.Get("/login", h.Auth.Login)
		app.Get("/login/callback", h.Auth.LoginCallbackHandler)
		app.Post("/logout", h.Auth.Logout)
	}

	api := app.Group("/api")
	api.Use(auth)

	api.Get("/user/info", h.User.GetUserInfo)

	api.Get("/settings", h.Settings.GetSettingsInfo)
	api.Post("/settings", h.Settings.UpdateSettings)

	api.Post("/api_key/new", h.ApiKeys.CreateApiKey)
	api.Get("/api_key/list", h.ApiKeys.ListKeys)
	api.Post("/api_key/remove", h.ApiKeys.RemoveAPIKey)

	api.Post("/strategies/generate", h.Strategy.Generate)
	api.Post("/strategies/suggestions", h.Strategy.Suggestions)
	api.Post("/strategies/refine", h.Strategy.Refine)
	api.Post("/strategies", h.Strategy.Create)
	api.Get("/strategies", h.Strategy.List)
	api.Get("/strategies/:id", h.Strategy.Get)
	api.Put("/strategies/:id", h.Strategy.Update)
	api.Delete("/strategies/:id", h.Strategy.Remove)

	api.Post("/strategies/:id/themes", h.Outline.Themes)
	api.Post("/strategies/:id/outline/generate", h.Outline.Generate)
	api.Post("/strategies/:id/outline/week", h.Outline.Week)
	api.Post("/strategies/:id/outlines", h.Outline.Save)
	api.Get("/strategies/:id/outline", h.Outline.Current)
	api.Delete("/outlines/:id", h.Outline.Remove)

	api.Post("/calendars", h.Calendar.Create)
	api.Get("/calendars", h.Calendar.List)
	api.Get("/calendars/:id", h.Calendar.Get)
	api.Delete("/calendars/:id", h.Calendar.Remove)
	api.Post("/calendars/:id/posts", h.Calendar.AddPost)
	api.Get("/calendars/:id/engagement", h.Calendar.Engagement)

	api.Post("/calendar-posts/bulk-status", h.Calendar.BulkStatus)
	api.Post("/calendar-posts/bulk-delete", h.Calendar.BulkDelete)
	api.Post("/calendar-posts/swap", h.Calendar.Swap)
	api.Put("/calendar-posts/:id/status", h.Calendar.UpdateStatus)
	api.Put("/calendar-posts/:id/engagement", h.Calendar.UpdateEngagement)
	api.Post("/calendar-posts/:id/media", h.Calendar.UploadMedia)
	api.Get("/calendar-posts/:id/media", h.Calendar.ListMedia)

	api.Get("/dashboard", h.Dashboard.GetDashboard)
}
