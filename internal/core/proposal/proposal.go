// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package proposal lets readers suggest books for the catalog.

A proposal carries the book's metadata and an uploaded manuscript file. It
starts PENDING; allow-listed Telegram users vote on it and eventually review
it into APPROVED or REJECTED.

Core Responsibility:

  - Submission: Validates metadata, stores the file, persists the proposal.
  - Voting: One vote per voter per proposal; re-voting replaces the decision.
  - Review: Allow-listed reviewers settle the status with optional notes.
*/
package proposal

import "time"

// # Domain Enums

// Status is the review state of a proposal.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// IsReviewed reports whether s is a final review outcome.
func (s Status) IsReviewed() bool {
	return s == StatusApproved || s == StatusRejected
}

// Decision is a voter's opinion on a proposal.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// IsValid reports whether d is a recognised [Decision].
func (d Decision) IsValid() bool {
	return d == DecisionApprove || d == DecisionReject
}

// # Limits

const (
	// MaxFileSize is the largest accepted upload (25 MiB).
	MaxFileSize = 25 << 20

	maxTextLength     = 512
	maxMimeTypeLength = 128
	maxNotesLength    = 4096
)

// # Domain Entities

// Tally counts the votes of a proposal.
type Tally struct {
	Approve int `json:"approve"`
	Reject  int `json:"reject"`
}

// Proposal is a reader-submitted book suggestion.
type Proposal struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Description   string    `json:"description"`
	StorageKey    string    `json:"storageKey"`
	StorageURL    string    `json:"storageUrl"`
	FileName      string    `json:"fileName"`
	FileSize      int64     `json:"fileSize"`
	MimeType      string    `json:"mimeType,omitempty"`
	Checksum      string    `json:"checksum"`
	Status        Status    `json:"status"`
	ReviewerNotes *string   `json:"reviewerNotes"`
	ReviewedBy    *int64    `json:"reviewedBy,omitempty"`
	Votes         Tally     `json:"votes"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Vote is one voter's decision on one proposal.
type Vote struct {
	ProposalID string    `json:"proposalId"`
	VoterID    int64     `json:"voterId"`
	Decision   Decision  `json:"decision"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Review is the outcome a reviewer applies to a proposal.
type Review struct {
	Status     Status
	Notes      *string
	ReviewerID int64
	ReviewedAt time.Time
}

// # Inputs

// FileInput is an uploaded file as received from the client.
type FileInput struct {
	Name     string
	MimeType string
	Size     *int64
	Content  string // base64
}

// CreateInput holds the fields of a new proposal.
type CreateInput struct {
	Title       string
	Author      string
	Description string
	File        FileInput
}
