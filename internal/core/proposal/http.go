// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package proposal

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openreader/storefront/internal/platform/middleware"
	requestutil "github.com/openreader/storefront/internal/platform/request"
	"github.com/openreader/storefront/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for book proposals.
type Handler struct {
	service *Service
}

// NewHandler constructs a new proposal [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the proposal endpoints.
//
// # Routing Strategy
//
//   - Public: Anyone may submit and browse proposals.
//   - Voters: Voting and review need a voter token; the allow list is
//     enforced by the service.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listProposals)
	router.Post("/", handler.createProposal)
	router.Get("/{id}", handler.getProposal)

	router.Group(func(voter chi.Router) {
		voter.Use(middleware.RequireVoter)

		voter.Post("/{id}/votes", handler.voteProposal)
		voter.Patch("/{id}/review", handler.reviewProposal)
	})

	return router
}

// # Request Payloads

type fileRequest struct {
	Name     string `json:"name" validate:"required,max=512"`
	MimeType string `json:"mimeType" validate:"omitempty,max=128"`
	Size     *int64 `json:"size" validate:"omitempty,gte=0,lte=26214400"`
	Content  string `json:"content" validate:"required"`
}

type createRequest struct {
	Title       string      `json:"title" validate:"required,max=512"`
	Author      string      `json:"author" validate:"required,max=512"`
	Description string      `json:"description" validate:"required"`
	File        fileRequest `json:"file"`
}

type voteRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
}

type reviewRequest struct {
	Status string  `json:"status" validate:"required,oneof=APPROVED REJECTED"`
	Notes  *string `json:"notes" validate:"omitempty,max=4096"`
}

// # Endpoints

/*
GET /api/v1/proposals.

Response:
  - 200: []Proposal: Newest first
*/
func (handler *Handler) listProposals(writer http.ResponseWriter, request *http.Request) {
	proposals, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, proposals)
}

/*
GET /api/v1/proposals/{id}.

Response:
  - 200: Proposal
  - 404: NOT_FOUND
*/
func (handler *Handler) getProposal(writer http.ResponseWriter, request *http.Request) {
	proposal, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, proposal)
}

/*
POST /api/v1/proposals.

Request (Body):
  - createRequest: title, author, description and a base64 file (max 25 MiB)

Response:
  - 201: Proposal
  - 400: VALIDATION_ERROR
  - 502: UPSTREAM_FAILURE: File storage failed (retryable)
*/
func (handler *Handler) createProposal(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeAndValidate(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	proposal, err := handler.service.Create(request.Context(), CreateInput{
		Title:       input.Title,
		Author:      input.Author,
		Description: input.Description,
		File: FileInput{
			Name:     input.File.Name,
			MimeType: input.File.MimeType,
			Size:     input.File.Size,
			Content:  input.File.Content,
		},
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, proposal)
}

/*
POST /api/v1/proposals/{id}/votes.

Request (Body):
  - decision: string (approve, reject)

Response:
  - 200: Proposal: With the updated tally
  - 401: UNAUTHORIZED: No voter token
  - 403: FORBIDDEN: Voter not on the allow list
*/
func (handler *Handler) voteProposal(writer http.ResponseWriter, request *http.Request) {
	voter, err := requestutil.RequiredVoter(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input voteRequest
	if err := requestutil.DecodeAndValidate(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	proposal, err := handler.service.Vote(request.Context(), requestutil.Param(request, "id"), voter.TelegramID, Decision(input.Decision))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, proposal)
}

/*
PATCH /api/v1/proposals/{id}/review.

Request (Body):
  - status: string (APPROVED, REJECTED)
  - notes: string (optional)

Response:
  - 200: Proposal
  - 401: UNAUTHORIZED
  - 403: FORBIDDEN
*/
func (handler *Handler) reviewProposal(writer http.ResponseWriter, request *http.Request) {
	voter, err := requestutil.RequiredVoter(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input reviewRequest
	if err := requestutil.DecodeAndValidate(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	proposal, err := handler.service.Review(request.Context(), requestutil.Param(request, "id"), voter.TelegramID, Status(input.Status), input.Notes)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, proposal)
}
