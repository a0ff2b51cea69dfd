package getbookings

import (
	"context"
	"log/slog"
	"net/http"

	resp "booking_service/internal/lib/api/response"
	"booking_service/internal/lib/logger/sl"
	"booking_service/internal/models"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type BookingLister interface {
	Bookings(ctx context.Context, barber, date string) ([]models.Booking, error)
}

// New lists bookings, optionally narrowed by the barber and date query
// parameters.
func New(log *slog.Logger, service BookingLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.get_bookings.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		barber := r.URL.Query().Get("barber")
		date := r.URL.Query().Get("date")

		bookings, err := service.Bookings(r.Context(), barber, date)
		if err != nil {
			log.Error("failed to list bookings", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to list bookings"))

			return
		}

		render.JSON(w, r, resp.OKWithData(bookings))
	}
}
