// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package proposal

import "context"

// # Proposal Data Access

// Repository defines the persistence contract for proposals and their votes.
type Repository interface {

	/*
		Create persists a new proposal.

		Parameters:
		  - context: context.Context
		  - proposal: *Proposal (ID and timestamps already set)

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, proposal *Proposal) error

	// List returns every proposal, newest first, with vote tallies.
	List(context context.Context) ([]*Proposal, error)

	/*
		FindByID returns one proposal with its vote tally.

		Returns:
		  - *Proposal: The proposal
		  - error: apperr NOT_FOUND when missing
	*/
	FindByID(context context.Context, id string) (*Proposal, error)

	// UpsertVote records a vote, replacing the voter's previous decision.
	UpsertVote(context context.Context, vote Vote) error

	/*
		UpdateReview applies a review outcome.

		Returns:
		  - error: apperr NOT_FOUND when the proposal does not exist
	*/
	UpdateReview(context context.Context, id string, review Review) error
}
