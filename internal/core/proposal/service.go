// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package proposal

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/openreader/storefront/internal/platform/apperr"
	"github.com/openreader/storefront/internal/platform/config"
	"github.com/openreader/storefront/internal/platform/ctxutil"
	"github.com/openreader/storefront/internal/platform/storage"
	"github.com/openreader/storefront/internal/platform/validate"
	"github.com/openreader/storefront/pkg/uuid"
)

// ErrVoterNotAllowed is returned when a Telegram user outside the allow list
// tries to vote or review.
var ErrVoterNotAllowed = apperr.Forbidden("Voting is not available for this Telegram user")

// # Service Layer

// Service orchestrates proposal submission, voting and review.
type Service struct {
	repo   Repository
	files  storage.FileStorage
	voters config.AllowList
	now    func() time.Time
}

// NewService constructs a proposal [Service].
//
// voters is the immutable set of Telegram ids allowed to vote and review.
func NewService(repo Repository, files storage.FileStorage, voters config.AllowList) *Service {
	return &Service{
		repo:   repo,
		files:  files,
		voters: voters,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// # Submission

/*
Create validates, uploads and persists a new proposal.

Description: The file content is base64-decoded and must be non-empty and at
most [MaxFileSize], whether judged by the declared size or the decoded bytes.
Upload failures are reported as a retryable upstream error; nothing is
persisted in that case.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Proposal: The stored proposal, status PENDING
  - error: VALIDATION_ERROR, UPSTREAM_FAILURE or persistence errors
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Proposal, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Author = strings.TrimSpace(input.Author)
	input.Description = strings.TrimSpace(input.Description)
	input.File.Name = strings.TrimSpace(input.File.Name)
	input.File.MimeType = strings.TrimSpace(input.File.MimeType)

	validator := &validate.Validator{}
	validator.
		Required("title", input.Title).MaxLen("title", input.Title, maxTextLength).
		Required("author", input.Author).MaxLen("author", input.Author, maxTextLength).
		Required("description", input.Description).
		Required("file.name", input.File.Name).MaxLen("file.name", input.File.Name, maxTextLength).
		MaxLen("file.mimeType", input.File.MimeType, maxMimeTypeLength).
		Required("file.content", input.File.Content)

	if input.File.Size != nil {
		validator.Custom("file.size", *input.File.Size < 0, "Must not be negative")
		validator.Custom("file.size", *input.File.Size > MaxFileSize, "File size exceeds the allowed limit")
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	data, err := base64.StdEncoding.DecodeString(input.File.Content)
	if err != nil {
		return nil, validate.RequiredError("file.content", "Must be valid base64")
	}
	if len(data) == 0 {
		return nil, validate.RequiredError("file.content", "Uploaded file is empty")
	}
	if len(data) > MaxFileSize {
		return nil, validate.RequiredError("file.content", "File size exceeds the allowed limit")
	}

	stored, err := service.files.Upload(context, storage.Object{
		Name:     input.File.Name,
		MimeType: input.File.MimeType,
		Data:     data,
	})
	if err != nil {
		if ctxErr := context.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, err
		}
		return nil, apperr.Upstream("File storage is unavailable, please retry", err)
	}

	now := service.now()
	proposal := &Proposal{
		ID:          uuid.New(),
		Title:       input.Title,
		Author:      input.Author,
		Description: input.Description,
		StorageKey:  stored.Key,
		StorageURL:  stored.URL,
		FileName:    input.File.Name,
		FileSize:    stored.Size,
		MimeType:    input.File.MimeType,
		Checksum:    stored.Checksum,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := service.repo.Create(context, proposal); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "proposal_created",
		slog.String("proposal_id", proposal.ID),
		slog.String("storage_key", proposal.StorageKey),
		slog.Int64("file_size", proposal.FileSize),
	)

	return proposal, nil
}

// # Lookups

// List returns every proposal, newest first.
func (service *Service) List(context context.Context) ([]*Proposal, error) {
	return service.repo.List(context)
}

/*
Get fetches one proposal.

Returns:
  - error: NOT_FOUND for unknown or malformed ids
*/
func (service *Service) Get(context context.Context, id string) (*Proposal, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Proposal")
	}
	return service.repo.FindByID(context, id)
}

// # Voting & Review

/*
Vote records voterID's decision on a proposal.

Parameters:
  - context: context.Context
  - id: string (Proposal UUID)
  - voterID: int64 (Telegram user id)
  - decision: Decision

Returns:
  - *Proposal: The proposal with its updated tally
  - error: FORBIDDEN for voters off the allow list, NOT_FOUND, VALIDATION_ERROR
*/
func (service *Service) Vote(context context.Context, id string, voterID int64, decision Decision) (*Proposal, error) {
	if err := service.authorize(voterID); err != nil {
		return nil, err
	}

	if err := (&validate.Validator{}).OneOf("decision", string(decision), string(DecisionApprove), string(DecisionReject)).Err(); err != nil {
		return nil, err
	}

	if _, err := service.Get(context, id); err != nil {
		return nil, err
	}

	err := service.repo.UpsertVote(context, Vote{
		ProposalID: id,
		VoterID:    voterID,
		Decision:   decision,
		CreatedAt:  service.now(),
	})
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "proposal_voted",
		slog.String("proposal_id", id),
		slog.Int64("voter_id", voterID),
		slog.String("decision", string(decision)),
	)

	return service.repo.FindByID(context, id)
}

/*
Review settles a proposal as APPROVED or REJECTED.

Parameters:
  - context: context.Context
  - id: string (Proposal UUID)
  - reviewerID: int64 (Telegram user id)
  - status: Status (APPROVED or REJECTED)
  - notes: *string (optional; nil clears previous notes)

Returns:
  - *Proposal: The reviewed proposal
  - error: FORBIDDEN, NOT_FOUND, VALIDATION_ERROR
*/
func (service *Service) Review(context context.Context, id string, reviewerID int64, status Status, notes *string) (*Proposal, error) {
	if err := service.authorize(reviewerID); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.OneOf("status", string(status), string(StatusApproved), string(StatusRejected))
	if notes != nil {
		validator.MaxLen("notes", *notes, maxNotesLength)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Proposal")
	}

	err := service.repo.UpdateReview(context, id, Review{
		Status:     status,
		Notes:      notes,
		ReviewerID: reviewerID,
		ReviewedAt: service.now(),
	})
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "proposal_reviewed",
		slog.String("proposal_id", id),
		slog.Int64("reviewer_id", reviewerID),
		slog.String("status", string(status)),
	)

	return service.repo.FindByID(context, id)
}

// CanVote reports whether telegramID is on the voter allow list.
func (service *Service) CanVote(telegramID int64) bool {
	return service.voters.Contains(strconv.FormatInt(telegramID, 10))
}

func (service *Service) authorize(voterID int64) error {
	if !service.CanVote(voterID) {
		return ErrVoterNotAllowed
	}
	return nil
}
