package schema

// StoreProposalTable represents the 'store.proposal' table
type StoreProposalTable struct {
	Table         string
	ID            string
	Title         string
	Author        string
	Description   string
	StorageKey    string
	StorageURL    string
	FileName      string
	FileSize      string
	MimeType      string
	Checksum      string
	Status        string
	ReviewerNotes string
	ReviewedBy    string
	CreatedAt     string
	UpdatedAt     string
}

// StoreProposal is the schema definition for store.proposal
var StoreProposal = StoreProposalTable{
	Table:         "store.proposal",
	ID:            "id",
	Title:         "title",
	Author:        "author",
	Description:   "description",
	StorageKey:    "storagekey",
	StorageURL:    "storageurl",
	FileName:      "filename",
	FileSize:      "filesize",
	MimeType:      "mimetype",
	Checksum:      "checksum",
	Status:        "status",
	ReviewerNotes: "reviewernotes",
	ReviewedBy:    "reviewedby",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

func (t StoreProposalTable) Columns() []string {
	return []string{t.ID, t.Title, t.Author, t.Description, t.StorageKey, t.StorageURL, t.FileName, t.FileSize, t.MimeType, t.Checksum, t.Status, t.ReviewerNotes, t.ReviewedBy, t.CreatedAt, t.UpdatedAt}
}
