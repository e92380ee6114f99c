package routes

import (
	"net/http"

	"velour/admin"
	"velour/assistant"
	"velour/booking"
	"velour/catalog"
	"velour/checkout"
	"velour/content"
	"velour/feeds"
	"velour/middleware"
	"velour/ratelim"
	"velour/voucher"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/fleetpic/*filepath", http.Dir("static/fleetpic"))
}

func AddBookingRoutes(router *httprouter.Router) {
	router.POST("/api/bookings", ratelim.RateLimit(booking.CreateBookingHandler))
	router.GET("/api/bookings", middleware.Authenticate(booking.ListBookingsHandler))
	router.PATCH("/api/bookings/:id/status", middleware.Authenticate(booking.UpdateStatusHandler))
	router.PATCH("/api/bookings/:id/payment", middleware.Authenticate(booking.UpdatePaymentHandler))
	router.GET("/api/bookings/:id/voucher", ratelim.RateLimit(voucher.PrintVoucher))
}

func AddFleetRoutes(router *httprouter.Router) {
	router.GET("/api/fleet", catalog.GetFleetHandler)
	router.POST("/api/fleet/image", middleware.Authenticate(catalog.UploadImageHandler))
}

func AddContentRoutes(router *httprouter.Router) {
	router.GET("/api/content", content.GetContentHandler)
	router.PUT("/api/content", middleware.Authenticate(content.SaveContentHandler))
	router.GET("/api/content/versions", middleware.Authenticate(content.ListVersionsHandler))
	router.POST("/api/content/versions/:id/restore", middleware.Authenticate(content.RestoreVersionHandler))
}

func AddAdminRoutes(router *httprouter.Router) {
	router.POST("/api/admin/unlock", ratelim.RateLimit(admin.UnlockHandler))
	router.POST("/api/admin/lock", middleware.Authenticate(admin.LockHandler))
	router.GET("/api/admin/stats", middleware.Authenticate(admin.StatsHandler))
}

func AddCheckoutRoutes(router *httprouter.Router) {
	router.POST("/api/checkout", ratelim.RateLimit(checkout.CreateSessionHandler))
	router.GET("/api/checkout/return", checkout.ReturnHandler)
}

func AddAssistantRoutes(router *httprouter.Router) {
	router.POST("/api/chat", ratelim.RateLimit(assistant.ChatHandler))
}

func AddFeedRoutes(router *httprouter.Router, hub *feeds.Hub) {
	router.GET("/ws/feeds/:topic", feeds.HandleWS(hub))
}
