// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package proposal

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/openreader/storefront/internal/platform/apperr"
)

// MemoryRepository keeps proposals in process memory. It backs the API when
// no database is configured.
type MemoryRepository struct {
	mu        sync.RWMutex
	proposals map[string]Proposal
	votes     map[string]map[int64]Vote
}

// NewMemoryRepository returns an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		proposals: make(map[string]Proposal),
		votes:     make(map[string]map[int64]Vote),
	}
}

func (repository *MemoryRepository) Create(_ context.Context, proposal *Proposal) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, exists := repository.proposals[proposal.ID]; exists {
		return apperr.Conflict("Proposal already exists")
	}

	repository.proposals[proposal.ID] = *proposal
	return nil
}

func (repository *MemoryRepository) List(_ context.Context) ([]*Proposal, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	proposals := make([]*Proposal, 0, len(repository.proposals))
	for id := range repository.proposals {
		proposals = append(proposals, repository.hydrate(id))
	}

	slices.SortFunc(proposals, func(a, b *Proposal) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	return proposals, nil
}

func (repository *MemoryRepository) FindByID(_ context.Context, id string) (*Proposal, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	if _, ok := repository.proposals[id]; !ok {
		return nil, apperr.NotFound("Proposal")
	}
	return repository.hydrate(id), nil
}

func (repository *MemoryRepository) UpsertVote(_ context.Context, vote Vote) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.proposals[vote.ProposalID]; !ok {
		return apperr.NotFound("Proposal")
	}

	ballots, ok := repository.votes[vote.ProposalID]
	if !ok {
		ballots = make(map[int64]Vote)
		repository.votes[vote.ProposalID] = ballots
	}
	ballots[vote.VoterID] = vote

	return nil
}

func (repository *MemoryRepository) UpdateReview(_ context.Context, id string, review Review) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	proposal, ok := repository.proposals[id]
	if !ok {
		return apperr.NotFound("Proposal")
	}

	reviewer := review.ReviewerID
	proposal.Status = review.Status
	proposal.ReviewerNotes = review.Notes
	proposal.ReviewedBy = &reviewer
	proposal.UpdatedAt = review.ReviewedAt
	repository.proposals[id] = proposal

	return nil
}

// hydrate copies a stored proposal and attaches its tally. Callers hold mu.
func (repository *MemoryRepository) hydrate(id string) *Proposal {
	proposal := repository.proposals[id]
	proposal.Votes = Tally{}

	for _, vote := range repository.votes[id] {
		switch vote.Decision {
		case DecisionApprove:
			proposal.Votes.Approve++
		case DecisionReject:
			proposal.Votes.Reject++
		}
	}

	return &proposal
}
