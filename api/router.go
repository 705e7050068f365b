package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/flightdesk/internal/service/booking"
	"github.com/Domenick1991/flightdesk/internal/service/flights"
	"github.com/Domenick1991/flightdesk/internal/service/wallet"
)

// NewRouter wires every handler under /api. A nil limiter leaves the write
// routes unthrottled.
func NewRouter(fs flights.FlightUseCase, bs booking.BookingUseCase, ws wallet.WalletUseCase, limiter *RateLimiter) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	var limited []gin.HandlerFunc
	if limiter != nil {
		limited = append(limited, limiter.Middleware())
	}

	apiGroup := router.Group("/api")
	NewFlightHandler(fs).Register(apiGroup, limited...)
	NewBookingHandler(bs).Register(apiGroup.Group("/bookings"), limited...)
	NewWalletHandler(ws).Register(apiGroup.Group("/wallet"))

	return router
}
