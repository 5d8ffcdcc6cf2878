package wire

import (
	"taskturf/internal/adaptor"
	"taskturf/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, log *zap.Logger) {
	// All booking routes require an authenticated actor from the gateway
	r.Route("/api/bookings", func(r chi.Router) {
		r.Use(middleware.Identity(log))

		// POST /api/bookings - Create new booking request (customer)
		r.Post("/", bookingHandler.CreateBooking)

		// GET /api/bookings?workerId=&customerId=&status= - List bookings
		r.Get("/", bookingHandler.ListBookings)

		// GET /api/bookings/{id} - Booking details
		r.Get("/{id}", bookingHandler.GetBooking)

		// PATCH /api/bookings/{id}/accept - Assigned worker accepts
		r.Patch("/{id}/accept", bookingHandler.AcceptBooking)

		// PATCH /api/bookings/{id}/reject - Assigned worker rejects
		r.Patch("/{id}/reject", bookingHandler.RejectBooking)

		// PATCH /api/bookings/{id}/cancel - Customer cancels
		r.Patch("/{id}/cancel", bookingHandler.CancelBooking)

		// PATCH /api/bookings/{id}/complete - Worker or operator completes
		r.Patch("/{id}/complete", bookingHandler.CompleteBooking)
	})
}
