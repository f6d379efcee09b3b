// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorite

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bibliotheca/internal/platform/constants"
	"github.com/taibuivan/bibliotheca/internal/platform/middleware"
	requestutil "github.com/taibuivan/bibliotheca/internal/platform/request"
	"github.com/taibuivan/bibliotheca/internal/platform/respond"
)

// Handler exposes the favorites ledger over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates the favorites HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the /favorites router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.listFavorites)
	return router
}

// RegisterBookRoutes attaches the toggle endpoint to the router mounted at /books.
func (handler *Handler) RegisterBookRoutes(router chi.Router) {
	router.With(middleware.RequireAuth).Post("/{id}/favorite", handler.toggleFavorite)
}

func (handler *Handler) toggleFavorite(writer http.ResponseWriter, request *http.Request) {
	isFavorite, err := handler.service.Toggle(request.Context(), requestutil.Claims(request), requestutil.Int64Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	message := "Book removed from favorites"
	if isFavorite {
		message = "Book added to favorites"
	}

	respond.OK(writer, respond.Fields{
		constants.FieldMessage: message,
		"isFavorite":           isFavorite,
	})
}

func (handler *Handler) listFavorites(writer http.ResponseWriter, request *http.Request) {
	bookIDs, err := handler.service.ListForUser(request.Context(), requestutil.Claims(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, respond.Fields{"bookIds": bookIDs})
}
