// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package proposal_test

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openreader/storefront/internal/core/proposal"
	"github.com/openreader/storefront/internal/platform/apperr"
	"github.com/openreader/storefront/internal/platform/config"
	"github.com/openreader/storefront/internal/platform/storage"
)

const (
	allowedVoter  int64 = 1001
	strangerVoter int64 = 4242
)

type failingStorage struct{}

func (failingStorage) Upload(context.Context, storage.Object) (*storage.Stored, error) {
	return nil, errors.New("disk full")
}

func newService(t *testing.T) *proposal.Service {
	t.Helper()
	files, err := storage.NewLocalStorage(t.TempDir(), "https://files.test")
	require.NoError(t, err)
	return proposal.NewService(proposal.NewMemoryRepository(), files, config.NewAllowList("1001", "1002"))
}

func validInput() proposal.CreateInput {
	return proposal.CreateInput{
		Title:       "Дюна",
		Author:      "Фрэнк Герберт",
		Description: "Пустынная планета Арракис.",
		File: proposal.FileInput{
			Name:     "dune.epub",
			MimeType: "application/epub+zip",
			Content:  base64.StdEncoding.EncodeToString([]byte("epub bytes")),
		},
	}
}

func requireCode(t *testing.T, err error, status int, code string) *apperr.AppError {
	t.Helper()
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae, "expected AppError, got %v", err)
	assert.Equal(t, status, ae.HTTPStatus)
	assert.Equal(t, code, ae.Code)
	return ae
}

func TestCreate(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, validInput())
	require.NoError(t, err)

	assert.Equal(t, proposal.StatusPending, created.Status)
	assert.Equal(t, int64(len("epub bytes")), created.FileSize)
	assert.True(t, strings.HasSuffix(created.StorageKey, ".epub"))
	assert.Equal(t, "https://files.test/"+created.StorageKey, created.StorageURL)
	assert.Len(t, created.Checksum, 64)
	assert.Nil(t, created.ReviewerNotes)

	fetched, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, fetched.Title)
}

func TestCreate_Validation(t *testing.T) {
	tooBig := int64(proposal.MaxFileSize + 1)

	tests := []struct {
		name   string
		mutate func(*proposal.CreateInput)
		field  string
	}{
		{"missing_title", func(in *proposal.CreateInput) { in.Title = " " }, "title"},
		{"long_author", func(in *proposal.CreateInput) { in.Author = strings.Repeat("я", 513) }, "author"},
		{"missing_description", func(in *proposal.CreateInput) { in.Description = "" }, "description"},
		{"long_mime", func(in *proposal.CreateInput) { in.File.MimeType = strings.Repeat("x", 129) }, "file.mimeType"},
		{"declared_too_big", func(in *proposal.CreateInput) { in.File.Size = &tooBig }, "file.size"},
		{"not_base64", func(in *proposal.CreateInput) { in.File.Content = "%%%" }, "file.content"},
		{"empty_file", func(in *proposal.CreateInput) { in.File.Content = "" }, "file.content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)

			_, err := newService(t).Create(context.Background(), input)
			ae := requireCode(t, err, http.StatusBadRequest, "VALIDATION_ERROR")
			require.NotEmpty(t, ae.Details)
			assert.Equal(t, tt.field, ae.Details[0].Field)
		})
	}
}

func TestCreate_ActualSizeTooBig(t *testing.T) {
	input := validInput()
	input.File.Content = base64.StdEncoding.EncodeToString(make([]byte, proposal.MaxFileSize+1))

	_, err := newService(t).Create(context.Background(), input)
	requireCode(t, err, http.StatusBadRequest, "VALIDATION_ERROR")
}

func TestCreate_UploadFailureIsRetryable(t *testing.T) {
	repo := proposal.NewMemoryRepository()
	service := proposal.NewService(repo, failingStorage{}, config.NewAllowList())

	_, err := service.Create(context.Background(), validInput())
	ae := requireCode(t, err, http.StatusBadGateway, "UPSTREAM_FAILURE")
	assert.True(t, ae.Retryable)

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all, "nothing is persisted when the upload fails")
}

func TestGet_NotFound(t *testing.T) {
	service := newService(t)

	_, err := service.Get(context.Background(), "not-a-uuid")
	requireCode(t, err, http.StatusNotFound, "NOT_FOUND")

	_, err = service.Get(context.Background(), "0190d6a4-8d3b-7c1e-9a2b-3c4d5e6f7a8b")
	requireCode(t, err, http.StatusNotFound, "NOT_FOUND")
}

func TestList_NewestFirst(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	var created []string
	for i := 0; i < 3; i++ {
		p, err := service.Create(ctx, validInput())
		require.NoError(t, err)
		created = append(created, p.ID)
	}

	all, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, created[2], all[0].ID)
	assert.Equal(t, created[0], all[2].ID)
}

func TestVote(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, validInput())
	require.NoError(t, err)

	voted, err := service.Vote(ctx, created.ID, allowedVoter, proposal.DecisionApprove)
	require.NoError(t, err)
	assert.Equal(t, proposal.Tally{Approve: 1}, voted.Votes)

	// Re-voting replaces the previous decision.
	voted, err = service.Vote(ctx, created.ID, allowedVoter, proposal.DecisionReject)
	require.NoError(t, err)
	assert.Equal(t, proposal.Tally{Reject: 1}, voted.Votes)

	voted, err = service.Vote(ctx, created.ID, 1002, proposal.DecisionApprove)
	require.NoError(t, err)
	assert.Equal(t, proposal.Tally{Approve: 1, Reject: 1}, voted.Votes)
}

func TestVote_Rejections(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, validInput())
	require.NoError(t, err)

	_, err = service.Vote(ctx, created.ID, strangerVoter, proposal.DecisionApprove)
	requireCode(t, err, http.StatusForbidden, "FORBIDDEN")

	_, err = service.Vote(ctx, created.ID, allowedVoter, "maybe")
	requireCode(t, err, http.StatusBadRequest, "VALIDATION_ERROR")

	_, err = service.Vote(ctx, "0190d6a4-8d3b-7c1e-9a2b-3c4d5e6f7a8b", allowedVoter, proposal.DecisionApprove)
	requireCode(t, err, http.StatusNotFound, "NOT_FOUND")
}

func TestReview(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, validInput())
	require.NoError(t, err)

	notes := "Добавим в каталог"
	reviewed, err := service.Review(ctx, created.ID, allowedVoter, proposal.StatusApproved, &notes)
	require.NoError(t, err)
	assert.Equal(t, proposal.StatusApproved, reviewed.Status)
	require.NotNil(t, reviewed.ReviewerNotes)
	assert.Equal(t, notes, *reviewed.ReviewerNotes)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, allowedVoter, *reviewed.ReviewedBy)

	_, err = service.Review(ctx, created.ID, strangerVoter, proposal.StatusRejected, nil)
	requireCode(t, err, http.StatusForbidden, "FORBIDDEN")

	_, err = service.Review(ctx, created.ID, allowedVoter, proposal.StatusPending, nil)
	requireCode(t, err, http.StatusBadRequest, "VALIDATION_ERROR")
}

func TestCanVote(t *testing.T) {
	service := newService(t)

	assert.True(t, service.CanVote(allowedVoter))
	assert.False(t, service.CanVote(strangerVoter))
}
