package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/kairos-api/internal/models"
	appErrors "github.com/noah-isme/kairos-api/pkg/errors"
)

func boolPtr(v bool) *bool { return &v }

func TestAdminServiceSetApproval(t *testing.T) {
	main := &models.Admin{ID: adminMainID, Email: "main@example.com", IsApproved: true, IsMainAdmin: true}
	pending := &models.Admin{ID: adminPendingID, Email: "p@example.com"}
	repo := newFakeAdminRepo(main, pending)
	svc := NewAdminService(repo, nil, nil)

	updated, err := svc.SetApproval(context.Background(), main, adminPendingID, ApprovalRequest{IsApproved: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, updated.IsApproved)
	assert.True(t, repo.approved[adminPendingID])
}

func TestAdminServiceSetApprovalGuards(t *testing.T) {
	main := &models.Admin{ID: adminMainID, IsApproved: true, IsMainAdmin: true}
	other := &models.Admin{ID: adminOtherID, IsApproved: true, IsMainAdmin: true}
	repo := newFakeAdminRepo(main, other)
	svc := NewAdminService(repo, nil, nil)
	ctx := context.Background()

	_, err := svc.SetApproval(ctx, main, adminMainID, ApprovalRequest{IsApproved: boolPtr(false)})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrPreconditionFailed))

	_, err = svc.SetApproval(ctx, main, adminOtherID, ApprovalRequest{IsApproved: boolPtr(false)})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrPreconditionFailed))

	_, err = svc.SetApproval(ctx, main, unknownResourceID, ApprovalRequest{IsApproved: boolPtr(true)})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))

	_, err = svc.SetApproval(ctx, main, adminOtherID, ApprovalRequest{})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))

	assert.Empty(t, repo.approved)
}

func TestAdminServiceSetApprovalMalformedID(t *testing.T) {
	main := &models.Admin{ID: adminMainID, IsApproved: true, IsMainAdmin: true}
	repo := newFakeAdminRepo(main)
	svc := NewAdminService(repo, nil, nil)

	_, err := svc.SetApproval(context.Background(), main, "42", ApprovalRequest{IsApproved: boolPtr(true)})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))
	assert.Empty(t, repo.approved)
}
