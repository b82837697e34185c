package schema

// StoreProposalVoteTable represents the 'store.proposalvote' table
type StoreProposalVoteTable struct {
	Table      string
	ProposalID string
	VoterID    string
	Decision   string
	CreatedAt  string
}

// StoreProposalVote is the schema definition for store.proposalvote
var StoreProposalVote = StoreProposalVoteTable{
	Table:      "store.proposalvote",
	ProposalID: "proposalid",
	VoterID:    "voterid",
	Decision:   "decision",
	CreatedAt:  "createdat",
}

func (t StoreProposalVoteTable) Columns() []string {
	return []string{t.ProposalID, t.VoterID, t.Decision, t.CreatedAt}
}
