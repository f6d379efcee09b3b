// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bibliotheca/internal/platform/constants"
	"github.com/taibuivan/bibliotheca/internal/platform/middleware"
	requestutil "github.com/taibuivan/bibliotheca/internal/platform/request"
	"github.com/taibuivan/bibliotheca/internal/platform/respond"
)

// Handler exposes the catalog over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates the catalog HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the catalog endpoints to a router mounted at /books.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listBooks)
	router.Get("/{id}", handler.getBook)
	router.Post("/{id}/downloads", handler.incrementDownloads)

	// Admin (role enforced by the service)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAuth)

		admin.Post("/", handler.addBook)
		admin.Delete("/{id}", handler.deleteBook)
	})
}

func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	books, err := handler.service.ListBooks(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, respond.Fields{"books": books})
}

func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	book, err := handler.service.GetBook(request.Context(), requestutil.Int64Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, respond.Fields{"book": book})
}

func (handler *Handler) addBook(writer http.ResponseWriter, request *http.Request) {
	var input AddInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := handler.service.AddBook(request.Context(), requestutil.Claims(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, respond.Fields{
		constants.FieldMessage: "Book added successfully",
		"bookId":               id,
	})
}

func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	affected, err := handler.service.DeleteBook(request.Context(), requestutil.Claims(request), requestutil.Int64Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Fields{
		constants.FieldMessage: "Book deleted successfully",
		"affectedRows":         affected,
	})
}

func (handler *Handler) incrementDownloads(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.IncrementDownloads(request.Context(), requestutil.Int64Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, respond.Fields{constants.FieldMessage: "Download counter updated"})
}
