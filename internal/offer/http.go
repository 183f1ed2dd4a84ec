// Copyright (c) 2026 Wishare. All rights reserved.

package offer

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wisharehq/wishare/internal/platform/middleware"
	requestutil "github.com/wisharehq/wishare/internal/platform/request"
	"github.com/wisharehq/wishare/internal/platform/respond"
	"github.com/wisharehq/wishare/pkg/pagination"
)

// Handler implements the offer HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for the offer resource. All endpoints require
// authentication: contributions are a members-only feature.
//
// # Endpoints
//   - POST /      : Records a contribution.
//   - GET  /      : Lists contributions (paginated).
//   - GET  /{id}  : A single contribution.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)
	router.Post("/", handler.create)
	router.Get("/", handler.list)
	router.Get("/{id}", handler.getByID)

	return router
}

type createRequest struct {
	ItemID int64 `json:"item_id"`
	Amount int64 `json:"amount"`
	Hidden bool  `json:"hidden"`
}

// create handles POST /offers.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), CreateInput{
		ItemID: input.ItemID,
		Amount: input.Amount,
		Hidden: input.Hidden,
	}, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

// list handles GET /offers.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	offers, meta, err := handler.service.FindAll(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, offers, meta)
}

// getByID handles GET /offers/{id}.
func (handler *Handler) getByID(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.service.FindByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}
