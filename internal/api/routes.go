package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Post("/change-password", handler.AuthRequired, handler.ChangePassword)

	challenges := api.Group("/challenges", handler.AuthRequired)
	challenges.Get("", handler.ListChallenges)
	challenges.Get("/current", handler.CurrentChallenge)
	challenges.Post("", handler.CreateChallenge)
	challenges.Get("/:id", handler.GetChallenge)
	challenges.Put("/:id", handler.UpdateChallenge)
	challenges.Get("/:id/calendar", handler.ChallengeCalendar)

	deposits := api.Group("/deposits", handler.AuthRequired)
	deposits.Get("", handler.ListDeposits)
	deposits.Post("", handler.RecordDeposit)
	deposits.Delete("/:id", handler.DeleteDeposit)

	api.Get("/progress/:challengeId", handler.AuthRequired, handler.GetProgress)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/:challengeId/csv", handler.ExportCSV)
	export.Get("/:challengeId/json", handler.ExportJSON)
}
