// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package proposal

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openreader/storefront/internal/platform/apperr"
	"github.com/openreader/storefront/internal/platform/database/schema"
	"github.com/openreader/storefront/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL-backed proposal repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// selectProposal reads a proposal row with its vote tally. The caller
// appends WHERE/ORDER clauses.
var selectProposal = fmt.Sprintf(`
	SELECT p.%[2]s::text, p.%[3]s, p.%[4]s, p.%[5]s, p.%[6]s, p.%[7]s, p.%[8]s, p.%[9]s,
	       p.%[10]s, p.%[11]s, p.%[12]s, p.%[13]s, p.%[14]s, p.%[15]s, p.%[16]s,
	       (SELECT COUNT(*) FROM %[17]s v WHERE v.%[18]s = p.%[2]s AND v.%[19]s = 'approve'),
	       (SELECT COUNT(*) FROM %[17]s v WHERE v.%[18]s = p.%[2]s AND v.%[19]s = 'reject')
	FROM %[1]s p`,
	schema.StoreProposal.Table,
	schema.StoreProposal.ID, schema.StoreProposal.Title, schema.StoreProposal.Author, schema.StoreProposal.Description,
	schema.StoreProposal.StorageKey, schema.StoreProposal.StorageURL, schema.StoreProposal.FileName, schema.StoreProposal.FileSize,
	schema.StoreProposal.MimeType, schema.StoreProposal.Checksum, schema.StoreProposal.Status, schema.StoreProposal.ReviewerNotes,
	schema.StoreProposal.ReviewedBy, schema.StoreProposal.CreatedAt, schema.StoreProposal.UpdatedAt,
	schema.StoreProposalVote.Table, schema.StoreProposalVote.ProposalID, schema.StoreProposalVote.Decision,
)

func scanProposal(row pgx.Row) (*Proposal, error) {
	proposal := &Proposal{}
	var mimeType *string

	err := row.Scan(
		&proposal.ID, &proposal.Title, &proposal.Author, &proposal.Description,
		&proposal.StorageKey, &proposal.StorageURL, &proposal.FileName, &proposal.FileSize,
		&mimeType, &proposal.Checksum, &proposal.Status, &proposal.ReviewerNotes,
		&proposal.ReviewedBy, &proposal.CreatedAt, &proposal.UpdatedAt,
		&proposal.Votes.Approve, &proposal.Votes.Reject,
	)
	if err != nil {
		return nil, err
	}

	if mimeType != nil {
		proposal.MimeType = *mimeType
	}
	return proposal, nil
}

func (repository *PostgresRepository) Create(context context.Context, proposal *Proposal) error {
	columns := schema.StoreProposal.Columns()
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		schema.StoreProposal.Table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))

	_, err := repository.pool.Exec(context, query,
		proposal.ID, proposal.Title, proposal.Author, proposal.Description,
		proposal.StorageKey, proposal.StorageURL, proposal.FileName, proposal.FileSize,
		proposal.MimeType, proposal.Checksum, proposal.Status, proposal.ReviewerNotes,
		proposal.ReviewedBy, proposal.CreatedAt, proposal.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Proposal", "create_proposal")
	}

	return nil
}

func (repository *PostgresRepository) List(context context.Context) ([]*Proposal, error) {
	query := selectProposal + fmt.Sprintf(` ORDER BY p.%s DESC, p.%s DESC`,
		schema.StoreProposal.CreatedAt, schema.StoreProposal.ID)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "Proposal", "list_proposals")
	}
	defer rows.Close()

	proposals := make([]*Proposal, 0)
	for rows.Next() {
		proposal, err := scanProposal(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "Proposal", "scan_proposal")
		}
		proposals = append(proposals, proposal)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Proposal", "iterate_proposals")
	}

	return proposals, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Proposal, error) {
	query := selectProposal + fmt.Sprintf(` WHERE p.%s = $1`, schema.StoreProposal.ID)

	proposal, err := scanProposal(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Proposal", "find_proposal")
	}

	return proposal, nil
}

func (repository *PostgresRepository) UpsertVote(context context.Context, vote Vote) error {
	query := fmt.Sprintf(`
		INSERT INTO %[1]s (%[2]s, %[3]s, %[4]s, %[5]s) VALUES ($1, $2, $3, $4)
		ON CONFLICT (%[2]s, %[3]s) DO UPDATE SET %[4]s = EXCLUDED.%[4]s, %[5]s = EXCLUDED.%[5]s`,
		schema.StoreProposalVote.Table,
		schema.StoreProposalVote.ProposalID, schema.StoreProposalVote.VoterID,
		schema.StoreProposalVote.Decision, schema.StoreProposalVote.CreatedAt,
	)

	_, err := repository.pool.Exec(context, query, vote.ProposalID, vote.VoterID, vote.Decision, vote.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "Proposal", "upsert_vote")
	}

	return nil
}

func (repository *PostgresRepository) UpdateReview(context context.Context, id string, review Review) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5 WHERE %s = $1`,
		schema.StoreProposal.Table,
		schema.StoreProposal.Status, schema.StoreProposal.ReviewerNotes,
		schema.StoreProposal.ReviewedBy, schema.StoreProposal.UpdatedAt,
		schema.StoreProposal.ID,
	)

	tag, err := repository.pool.Exec(context, query, id, review.Status, review.Notes, review.ReviewerID, review.ReviewedAt)
	if err != nil {
		return dberr.Wrap(err, "Proposal", "update_review")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Proposal")
	}

	return nil
}
