package app

import (
	"context"

	apperrors "github.com/collabhub/coordinator/internal/platform/errors"
	"github.com/collabhub/coordinator/internal/services/coordinator/domain"
	"github.com/collabhub/coordinator/internal/services/coordinator/storage"
)

// Invite creates a pending invitation after normalizing input and checking
// the duplicate policy: a pending invitation for the same project and
// invitee blocks a new one, while resolved invitations allow re-inviting.
func (c *Coordinator) Invite(ctx context.Context, input domain.CreateInvitationInput) (domain.Invitation, error) {
	ctx, span := c.tracer.Start(ctx, "coordinator.Invite")
	defer span.End()

	input, err := domain.NormalizeCreateInvitationInput(input)
	if err != nil {
		return domain.Invitation{}, err
	}

	existing, err := c.backend.InvitesByInvitee(ctx, input.InviteeEmail)
	if err != nil {
		return domain.Invitation{}, err
	}
	for _, invite := range existing {
		if invite.ProjectID == input.ProjectID && invite.Status == domain.InviteStatusPending {
			return domain.Invitation{}, apperrors.WithMetadata(apperrors.CodeInviteDuplicatePending,
				"a pending invitation for this project and invitee already exists",
				map[string]string{"projectId": input.ProjectID, "inviteeEmail": input.InviteeEmail})
		}
	}

	return c.backend.CreateInvite(ctx, input)
}

// ListForInvitee returns every invitation addressed to email, any status,
// snapshot-backed for offline reads.
func (c *Coordinator) ListForInvitee(ctx context.Context, email string) ([]domain.Invitation, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, apperrors.New(apperrors.CodeUserEmptyEmail, "email is required")
	}
	return readThroughCache(ctx, c, storage.KindInvites, email, func(ctx context.Context) ([]domain.Invitation, error) {
		return c.backend.InvitesByInvitee(ctx, email)
	})
}

// Accept resolves the invitation and merges the invitee onto the project
// roster. The status change is a single remote check-and-set: of two racing
// accepts exactly one passes, the other gets INVITE_INVALID_TRANSITION.
//
// When the status flips but the roster merge fails to persist, Accept
// returns INVITE_ACCEPT_INCOMPLETE. The invitation is accepted at that
// point; the caller repairs the roster with CompleteAccept, which is safe to
// retry because the merge is an idempotent union.
func (c *Coordinator) Accept(ctx context.Context, invite domain.Invitation) (domain.Invitation, error) {
	ctx, span := c.tracer.Start(ctx, "coordinator.Accept")
	defer span.End()

	accepted, err := c.backend.SetInviteStatus(ctx, invite.ID, domain.InviteStatusAccepted)
	if err != nil {
		return domain.Invitation{}, err
	}

	if err := c.CompleteAccept(ctx, accepted.ProjectID, accepted.InviteeEmail); err != nil {
		return accepted, apperrors.Wrap(apperrors.CodeInviteAcceptIncomplete,
			"invitation accepted but roster update did not persist", err)
	}
	return accepted, nil
}

// CompleteAccept merges email onto the project roster and persists it. It
// finishes an interrupted accept and may be called repeatedly: a roster
// that already contains the invitee is left unchanged.
func (c *Coordinator) CompleteAccept(ctx context.Context, projectID, email string) error {
	project, err := c.backend.Project(ctx, projectID)
	if err != nil {
		return err
	}
	merged := domain.MergeCollaborator(project.Collaborators, email)
	if len(merged) == len(project.Collaborators) && project.HasCollaborator(email) {
		return nil
	}
	project.Collaborators = merged
	if _, err := c.backend.UpdateProject(ctx, project); err != nil {
		return err
	}
	return nil
}

// Decline resolves the invitation as declined. The project roster is never
// touched.
func (c *Coordinator) Decline(ctx context.Context, invite domain.Invitation) (domain.Invitation, error) {
	return c.backend.SetInviteStatus(ctx, invite.ID, domain.InviteStatusDeclined)
}
