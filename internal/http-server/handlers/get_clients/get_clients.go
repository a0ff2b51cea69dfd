package getclients

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

type ClientLister interface {
	Clients(ctx context.Context) ([]models.Client, error)
}

func New(log *slog.Logger, service ClientLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.get_clients.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		clients, err := service.Clients(r.Context())
		if err != nil {
			log.Error("failed to list clients", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to list clients"))

			return
		}

		render.JSON(w, r, resp.OKWithData(clients))
	}
}
