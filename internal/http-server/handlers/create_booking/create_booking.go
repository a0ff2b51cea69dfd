package createbooking

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"booking_service/internal/booking"
	resp "booking_service/internal/lib/api/response"
	"booking_service/internal/lib/logger/sl"
	"booking_service/internal/models"
	"booking_service/internal/storage"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
)

type Request struct {
	ClientEmail string `json:"client_email" validate:"required,email"`
	Barber      string `json:"barber" validate:"required"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time" validate:"required"`
}

// Response reports only that the request was accepted for processing. The
// conflict check runs asynchronously and its outcome is not reflected here.
type Response struct {
	resp.Response
	Booking models.BookingRequest `json:"booking"`
}

type Submitter interface {
	Submit(ctx context.Context, email, barber, date, slot string) (models.BookingRequest, error)
}

func New(log *slog.Logger, service Submitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.create_booking.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Failed to decode request"))

			return
		}

		if err := validator.New().Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)

			log.Error("invalid request", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.ValidationError(validateErr))

			return
		}

		envelope, err := service.Submit(r.Context(), req.ClientEmail, req.Barber, req.Date, req.Time)
		if err != nil {
			switch {
			case errors.Is(err, booking.ErrBadDate), errors.Is(err, booking.ErrBadTime):
				log.Warn("malformed date or time", sl.Err(err))

				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, resp.Error(err.Error()))
			case errors.Is(err, storage.ErrClientNotFound):
				log.Warn("client is not registered", slog.String("email", req.ClientEmail))

				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, resp.Error("Client with this email is not registered"))
			default:
				log.Error("failed to submit booking", sl.Err(err))

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, resp.Error("Failed to submit booking"))
			}

			return
		}

		log.Info("booking accepted for processing",
			slog.String("barber", req.Barber),
			slog.String("date", req.Date),
			slog.String("time", req.Time),
		)

		render.Status(r, http.StatusAccepted)
		render.JSON(w, r, Response{
			Response: resp.OK(),
			Booking:  envelope,
		})
	}
}
