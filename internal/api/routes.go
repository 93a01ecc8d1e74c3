package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Get("/session", handler.AuthRequired, handler.Session)

	api.Get("/packages", handler.ListPackages)

	me := api.Group("/me", handler.AuthRequired, handler.ClientOnly)
	me.Get("", handler.Me)
	me.Put("/profile", handler.UpdateProfile)
	me.Post("/weight", handler.LogWeight)
	me.Get("/plans", handler.Plans)
	me.Post("/plans/diet/regenerate", handler.RegenerateDiet)
	me.Post("/chat", handler.Chat)
	me.Post("/subscription/request", handler.RequestSubscription)
	me.Post("/promo/quote", handler.QuotePromo)
	me.Get("/offers", handler.ActiveOffers)
	me.Get("/offers/next", handler.NextOffer)
	me.Post("/offers/:id/seen", handler.MarkOfferSeen)

	admin := api.Group("/admin", handler.AuthRequired, handler.AdminOnly)

	users := admin.Group("/users")
	users.Get("", handler.AdminListUsers)
	users.Get("/:id", handler.AdminGetUser)
	users.Put("/:id", handler.AdminUpdateUser)
	users.Delete("/:id", handler.AdminDeleteUser)
	users.Post("/:id/approve", handler.AdminApproveRequest)
	users.Post("/:id/active", handler.AdminSetActive)

	packages := admin.Group("/packages")
	packages.Get("", handler.ListPackages)
	packages.Post("", handler.AdminCreatePackage)
	packages.Put("/:id", handler.AdminUpdatePackage)
	packages.Delete("/:id", handler.AdminDeletePackage)

	promos := admin.Group("/promos")
	promos.Get("", handler.AdminListPromos)
	promos.Post("", handler.AdminCreatePromo)
	promos.Delete("/:id", handler.AdminDeletePromo)

	offers := admin.Group("/offers")
	offers.Get("", handler.AdminListOffers)
	offers.Post("", handler.AdminCreateOffer)
	offers.Post("/:id/toggle", handler.AdminToggleOffer)
	offers.Delete("/:id", handler.AdminDeleteOffer)

	admin.Get("/profile", handler.AdminProfile)
	admin.Put("/profile", handler.AdminUpdateProfile)
	admin.Get("/export", handler.AdminExport)
}
