// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package telegram

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/openreader/storefront/internal/platform/request"
	"github.com/openreader/storefront/internal/platform/respond"
)

// Handler implements the Telegram sign-in endpoint.
type Handler struct {
	service *Service
}

// NewHandler constructs a new Telegram [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] mounted under /auth.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/telegram", handler.signIn)
	return router
}

type signInRequest struct {
	InitData string `json:"initData" validate:"required"`
}

/*
POST /api/v1/auth/telegram.

Request (Body):
  - initData: string (raw Telegram.WebApp.initData)

Response:
  - 200: Session
  - 400: VALIDATION_ERROR
  - 401: UNAUTHORIZED: Forged or stale init data
*/
func (handler *Handler) signIn(writer http.ResponseWriter, request *http.Request) {
	var input signInRequest
	if err := requestutil.DecodeAndValidate(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.SignIn(request.Context(), input.InitData)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}
