// Copyright (c) 2026 Wishare. All rights reserved.

package wish

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wisharehq/wishare/internal/platform/middleware"
	requestutil "github.com/wisharehq/wishare/internal/platform/request"
	"github.com/wisharehq/wishare/internal/platform/respond"
)

// Handler implements the wish HTTP endpoints.
//
// This layer is strictly responsible for transport concerns
// (status codes, headers, JSON). Business rules live in [Service].
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for the wish resource.
//
// # Endpoints
//   - GET    /last      : Newest wishes (public feed).
//   - GET    /top       : Most-copied wishes (public feed).
//   - GET    /{id}      : A single wish with owner and offers.
//   - POST   /          : Creates a wish (auth).
//   - PATCH  /{id}      : Partially updates an owned wish (auth).
//   - DELETE /{id}      : Removes an owned wish (auth).
//   - POST   /{id}/copy : Duplicates a wish into the caller's list (auth).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/last", handler.latest)
	router.Get("/top", handler.top)
	router.Get("/{id}", handler.getByID)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.create)
		r.Patch("/{id}", handler.update)
		r.Delete("/{id}", handler.remove)
		r.Post("/{id}/copy", handler.copy)
	})

	return router
}

// # Request Payloads

type createRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Image       string `json:"image"`
	Price       int64  `json:"price"`
}

type updateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Link        *string `json:"link"`
	Image       *string `json:"image"`
	Price       *int64  `json:"price"`
}

// # Handlers

// create handles POST /wishes.
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
		Title:       input.Title,
		Description: input.Description,
		Link:        input.Link,
		Image:       input.Image,
		Price:       input.Price,
	}, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

// getByID handles GET /wishes/{id}.
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

// latest handles GET /wishes/last.
func (handler *Handler) latest(writer http.ResponseWriter, request *http.Request) {
	wishes, err := handler.service.FindLatest(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, wishes)
}

// top handles GET /wishes/top.
func (handler *Handler) top(writer http.ResponseWriter, request *http.Request) {
	wishes, err := handler.service.FindTop(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, wishes)
}

// update handles PATCH /wishes/{id}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.Update(request.Context(), id, UpdateInput{
		Title:       input.Title,
		Description: input.Description,
		Link:        input.Link,
		Image:       input.Image,
		Price:       input.Price,
	}, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

// remove handles DELETE /wishes/{id}. The removed snapshot is returned.
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	removed, err := handler.service.Remove(request.Context(), id, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, removed)
}

// copy handles POST /wishes/{id}/copy.
func (handler *Handler) copy(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	duplicate, err := handler.service.Copy(request.Context(), id, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, duplicate)
}
