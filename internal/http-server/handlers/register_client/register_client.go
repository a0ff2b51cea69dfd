package registerclient

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	resp "booking_service/internal/lib/api/response"
	"booking_service/internal/lib/logger/sl"
	"booking_service/internal/models"
	"booking_service/internal/storage"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
)

type Request struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
}

type Response struct {
	resp.Response
	ClientID int64  `json:"client_id,omitempty"`
	Email    string `json:"email,omitempty"`
}

type ClientRegistrar interface {
	RegisterClient(ctx context.Context, client models.Client) (int64, error)
}

func New(log *slog.Logger, service ClientRegistrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.register_client.New"

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

		id, err := service.RegisterClient(r.Context(), models.Client{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
		})
		if err != nil {
			if errors.Is(err, storage.ErrClientExists) {
				log.Warn("client already registered", slog.String("email", req.Email))

				render.Status(r, http.StatusConflict)
				render.JSON(w, r, resp.Error("Client with this email is already registered"))

				return
			}

			log.Error("failed to register client", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to register client"))

			return
		}

		log.Info("client registered",
			slog.Int64("client_id", id),
			slog.String("email", req.Email),
		)

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, Response{
			Response: resp.OK(),
			ClientID: id,
			Email:    req.Email,
		})
	}
}
